package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventure-app/eventure-api/internal/api/handler/v1/request"
	"github.com/eventure-app/eventure-api/internal/api/handler/v1/response"
	"github.com/eventure-app/eventure-api/internal/domain"
	"github.com/eventure-app/eventure-api/internal/service"
)

type CategoryService interface {
	ProposeCategory(ctx context.Context, name, description string, parentID *uint) (domain.Category, error)
	ApproveCategory(ctx context.Context, actor domain.Actor, id uint) error
	CategoryChoices(ctx context.Context, actor domain.Actor, includeNone bool) ([]domain.CategoryChoice, error)
}

type CategoryHandler struct {
	svc  CategoryService
	uSvc UserService
}

func NewCategoryHandler(svc CategoryService, uSvc UserService) *CategoryHandler {
	return &CategoryHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleProposeCategory godoc
// @Summary      Propose a new category
// @Description  Creates an unapproved category, optionally under an existing parent. The parent cannot change afterwards.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request  body      request.ProposeCategoryRequest  true  "request body"
// @Success      201  {object}  domain.Category
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /categories [post]
// @Security     BearerAuth
func (h *CategoryHandler) HandleProposeCategory(ctx *gin.Context) {
	if _, respErr := getUserFromContext(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ProposeCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.ProposeCategory(ctx.Request.Context(), req.Name, req.Description, req.ParentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNameExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrCategoryNameExists))
		case errors.Is(err, service.ErrCategoryParentNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrCategoryParentNotFound))
		default:
			err = fmt.Errorf("v1.HandleProposeCategory -> h.svc.ProposeCategory -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleListCategoryChoices godoc
// @Summary      List category choices
// @Description  Flattens the category forest into a selection list, children indented under their parents. Unapproved branches appear only to moderators and administrators.
// @Tags         categories
// @Produce      json
// @Param        include_none  query  bool  false  "prepend the empty choice"
// @Success      200  {array}   domain.CategoryChoice
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /categories [get]
// @Security     BearerAuth
func (h *CategoryHandler) HandleListCategoryChoices(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	includeNone := false
	if raw := ctx.Query("include_none"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid include_none")))
			return
		}
		includeNone = parsed
	}

	choices, err := h.svc.CategoryChoices(ctx.Request.Context(), user.Actor(), includeNone)
	if err != nil {
		err = fmt.Errorf("v1.HandleListCategoryChoices -> h.svc.CategoryChoices -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, choices)
}

// HandleApproveCategory godoc
// @Summary      Approve a category
// @Description  Marks a category as approved, making it visible in regular users' choice lists. Moderators and administrators only.
// @Tags         categories
// @Produce      json
// @Param        categoryID  path  int  true  "Category ID"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /categories/{categoryID}/approve [post]
// @Security     BearerAuth
func (h *CategoryHandler) HandleApproveCategory(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	categoryID, err := parseUintParam(ctx, "categoryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err = h.svc.ApproveCategory(ctx.Request.Context(), user.Actor(), categoryID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrApprovalForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrApprovalForbidden))
		case errors.Is(err, service.ErrCategoryNotFound):
			response.RenderErr(ctx, response.ErrNotFound("category", "ID", categoryID))
		case errors.Is(err, domain.ErrAlreadyApproved):
			response.RenderErr(ctx, response.ErrConflict(domain.ErrAlreadyApproved))
		default:
			err = fmt.Errorf("v1.HandleApproveCategory -> h.svc.ApproveCategory -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "category approved"})
}
