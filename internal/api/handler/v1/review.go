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

type ReviewService interface {
	CreateReview(ctx context.Context, userID, eventID uint, comment string, rating int) (domain.Review, error)
	ListReviews(ctx context.Context, eventID uint) ([]domain.Review, error)
	DeleteReview(ctx context.Context, actor domain.Actor, reviewID uint) error
}

type ReviewHandler struct {
	svc  ReviewService
	uSvc UserService
}

func NewReviewHandler(svc ReviewService, uSvc UserService) *ReviewHandler {
	return &ReviewHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateReview godoc
// @Summary      Review an event
// @Description  Stores the authenticated user's review of an event they attended. One review per user per event.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                          true  "Event ID"
// @Param        request  body      request.CreateReviewRequest  true  "request body"
// @Success      201  {object}  domain.Review
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/reviews [post]
// @Security     BearerAuth
func (h *ReviewHandler) HandleCreateReview(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateReview(ctx.Request.Context(), user.ID, eventID, req.Comment, req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotConfirmedAttendee):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotConfirmedAttendee))
		case errors.Is(err, service.ErrAlreadyReviewed):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyReviewed))
		default:
			err = fmt.Errorf("v1.HandleCreateReview -> h.svc.CreateReview -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleListReviews godoc
// @Summary      List reviews for an event
// @Tags         reviews
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200  {array}   domain.Review
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/reviews [get]
// @Security     BearerAuth
func (h *ReviewHandler) HandleListReviews(ctx *gin.Context) {
	if _, respErr := getUserFromContext(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	reviews, err := h.svc.ListReviews(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListReviews -> h.svc.ListReviews -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, reviews)
}

// HandleDeleteReview godoc
// @Summary      Delete a review
// @Description  Removes a review. Allowed for its author and for moderators and administrators.
// @Tags         reviews
// @Produce      json
// @Param        reviewID  path  int  true  "Review ID"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reviews/{reviewID} [delete]
// @Security     BearerAuth
func (h *ReviewHandler) HandleDeleteReview(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	reviewID, err := parseUintParam(ctx, "reviewID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err = h.svc.DeleteReview(ctx.Request.Context(), user.Actor(), reviewID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			response.RenderErr(ctx, response.ErrNotFound("review", "ID", reviewID))
		case errors.Is(err, service.ErrReviewDeleteDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrReviewDeleteDenied))
		default:
			err = fmt.Errorf("v1.HandleDeleteReview -> h.svc.DeleteReview -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}
