package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventure-app/eventure-api/internal/api/handler/v1/request"
	"github.com/eventure-app/eventure-api/internal/api/handler/v1/response"
	"github.com/eventure-app/eventure-api/internal/domain"
	"github.com/eventure-app/eventure-api/internal/service"
)

type AdmissionService interface {
	CreateAdmission(ctx context.Context, actor domain.Actor, name string, amount int) (domain.Admission, error)
	ListAdmissions(ctx context.Context) ([]domain.Admission, error)
}

type AdmissionHandler struct {
	svc  AdmissionService
	uSvc UserService
}

func NewAdmissionHandler(svc AdmissionService, uSvc UserService) *AdmissionHandler {
	return &AdmissionHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateAdmission godoc
// @Summary      Create an admission tier
// @Description  Defines a shared price tier events may attach. Moderators and administrators only.
// @Tags         admissions
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateAdmissionRequest  true  "request body"
// @Success      201  {object}  domain.Admission
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admissions [post]
// @Security     BearerAuth
func (h *AdmissionHandler) HandleCreateAdmission(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateAdmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateAdmission(ctx.Request.Context(), user.Actor(), req.Name, req.Amount)
	if err != nil {
		if errors.Is(err, service.ErrApprovalForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrApprovalForbidden))
			return
		}

		err = fmt.Errorf("v1.HandleCreateAdmission -> h.svc.CreateAdmission -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleListAdmissions godoc
// @Summary      List admission tiers
// @Tags         admissions
// @Produce      json
// @Success      200  {array}   domain.Admission
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admissions [get]
// @Security     BearerAuth
func (h *AdmissionHandler) HandleListAdmissions(ctx *gin.Context) {
	if _, respErr := getUserFromContext(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	admissions, err := h.svc.ListAdmissions(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListAdmissions -> h.svc.ListAdmissions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, admissions)
}
