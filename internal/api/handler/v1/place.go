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

type PlaceService interface {
	ProposePlace(ctx context.Context, name, address, description string) (domain.Place, error)
	ApprovePlace(ctx context.Context, actor domain.Actor, id uint) error
	ListPlaces(ctx context.Context, actor domain.Actor) ([]domain.Place, error)
}

type PlaceHandler struct {
	svc  PlaceService
	uSvc UserService
}

func NewPlaceHandler(svc PlaceService, uSvc UserService) *PlaceHandler {
	return &PlaceHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleProposePlace godoc
// @Summary      Propose a new place
// @Description  Creates an unapproved place. Addresses are unique across places.
// @Tags         places
// @Accept       json
// @Produce      json
// @Param        request  body      request.ProposePlaceRequest  true  "request body"
// @Success      201  {object}  domain.Place
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /places [post]
// @Security     BearerAuth
func (h *PlaceHandler) HandleProposePlace(ctx *gin.Context) {
	if _, respErr := getUserFromContext(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ProposePlaceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.ProposePlace(ctx.Request.Context(), req.Name, req.Address, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrPlaceAddressExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrPlaceAddressExists))
			return
		}

		err = fmt.Errorf("v1.HandleProposePlace -> h.svc.ProposePlace -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleListPlaces godoc
// @Summary      List places
// @Description  Lists approved places. Moderators and administrators also see pending proposals.
// @Tags         places
// @Produce      json
// @Success      200  {array}   domain.Place
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /places [get]
// @Security     BearerAuth
func (h *PlaceHandler) HandleListPlaces(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	places, err := h.svc.ListPlaces(ctx.Request.Context(), user.Actor())
	if err != nil {
		err = fmt.Errorf("v1.HandleListPlaces -> h.svc.ListPlaces -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, places)
}

// HandleApprovePlace godoc
// @Summary      Approve a place
// @Description  Marks a place as approved, making it visible to regular users. Moderators and administrators only.
// @Tags         places
// @Produce      json
// @Param        placeID  path  int  true  "Place ID"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /places/{placeID}/approve [post]
// @Security     BearerAuth
func (h *PlaceHandler) HandleApprovePlace(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	placeID, err := parseUintParam(ctx, "placeID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err = h.svc.ApprovePlace(ctx.Request.Context(), user.Actor(), placeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrApprovalForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrApprovalForbidden))
		case errors.Is(err, service.ErrPlaceNotFound):
			response.RenderErr(ctx, response.ErrNotFound("place", "ID", placeID))
		case errors.Is(err, domain.ErrAlreadyApproved):
			response.RenderErr(ctx, response.ErrConflict(domain.ErrAlreadyApproved))
		default:
			err = fmt.Errorf("v1.HandleApprovePlace -> h.svc.ApprovePlace -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "place approved"})
}
