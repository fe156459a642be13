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

type EventService interface {
	CreateEvent(ctx context.Context, ownerID uint, draft domain.EventDraft) (domain.Event, error)
	EditEvent(ctx context.Context, actor domain.Actor, eventID uint, draft domain.EventDraft) error
	ApproveEvent(ctx context.Context, actor domain.Actor, eventID uint) error
	GetEvent(ctx context.Context, actor domain.Actor, eventID uint) (domain.Event, error)
	ListEvents(ctx context.Context, actor domain.Actor, filter domain.EventFilter) ([]domain.Event, error)
}

type EventHandler struct {
	svc  EventService
	uSvc UserService
}

func NewEventHandler(svc EventService, uSvc UserService) *EventHandler {
	return &EventHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateEvent godoc
// @Summary      Propose a new event
// @Description  Creates an unapproved event owned by the authenticated user. A moderator must approve it before it becomes publicly visible.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateEventRequest  true  "request body"
// @Success      201  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [post]
// @Security     BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateEvent(ctx.Request.Context(), user.ID, domain.EventDraft{
		Name:          req.Name,
		StartDatetime: req.StartDatetime,
		EndDatetime:   req.EndDatetime,
		Capacity:      req.Capacity,
		Description:   req.Description,
		Image:         req.Image,
		PlaceID:       req.PlaceID,
		CategoryIDs:   req.CategoryIDs,
		AdmissionIDs:  req.AdmissionIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDateRange):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidDateRange))
		case errors.Is(err, service.ErrEventNameExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrEventNameExists))
		case errors.Is(err, service.ErrEventReferenceNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrEventReferenceNotFound))
		default:
			err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleListEvents godoc
// @Summary      List events
// @Description  Lists events the authenticated user may see. Unapproved events appear only to their owner, moderators and administrators.
// @Tags         events
// @Produce      json
// @Param        name           query  string  false  "name substring"
// @Param        category       query  []int   false  "category IDs"
// @Param        place          query  []int   false  "place IDs"
// @Param        approved       query  bool    false  "only approved events"
// @Param        has_admission  query  bool    false  "only events with admission tiers"
// @Success      200  {array}   domain.Event
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [get]
// @Security     BearerAuth
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	filter := domain.EventFilter{
		NameSubstring: ctx.Query("name"),
	}

	categoryIDs, err := parseUintQueryArray(ctx, "category")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	filter.CategoryIDs = categoryIDs

	placeIDs, err := parseUintQueryArray(ctx, "place")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	filter.PlaceIDs = placeIDs

	if raw := ctx.Query("approved"); raw != "" {
		onlyApproved, err := strconv.ParseBool(raw)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid approved")))
			return
		}
		filter.OnlyApproved = onlyApproved
	}

	if raw := ctx.Query("has_admission"); raw != "" {
		hasAdmission, err := strconv.ParseBool(raw)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid has_admission")))
			return
		}
		filter.HasAdmission = hasAdmission
	}

	events, err := h.svc.ListEvents(ctx.Request.Context(), user.Actor(), filter)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetEvent godoc
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID} [get]
// @Security     BearerAuth
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
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

	event, err := h.svc.GetEvent(ctx.Request.Context(), user.Actor(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleEditEvent godoc
// @Summary      Edit an event
// @Description  Replaces the mutable fields of an unapproved event. Only the owner may edit, and approval freezes the event.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                       true  "Event ID"
// @Param        request  body      request.EditEventRequest  true  "request body"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID} [put]
// @Security     BearerAuth
func (h *EventHandler) HandleEditEvent(ctx *gin.Context) {
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

	var req request.EditEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err = h.svc.EditEvent(ctx.Request.Context(), user.Actor(), eventID, domain.EventDraft{
		StartDatetime: req.StartDatetime,
		EndDatetime:   req.EndDatetime,
		Capacity:      req.Capacity,
		Description:   req.Description,
		Image:         req.Image,
		PlaceID:       req.PlaceID,
		CategoryIDs:   req.CategoryIDs,
		AdmissionIDs:  req.AdmissionIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrNotEventOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotEventOwner))
		case errors.Is(err, service.ErrEventFrozen):
			response.RenderErr(ctx, response.ErrConflict(service.ErrEventFrozen))
		case errors.Is(err, service.ErrInvalidDateRange):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidDateRange))
		case errors.Is(err, service.ErrEventReferenceNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrEventReferenceNotFound))
		default:
			err = fmt.Errorf("v1.HandleEditEvent -> h.svc.EditEvent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "event updated"})
}

// HandleApproveEvent godoc
// @Summary      Approve an event
// @Description  Marks an event as approved, making it publicly visible and freezing its fields. Moderators and administrators only.
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/approve [post]
// @Security     BearerAuth
func (h *EventHandler) HandleApproveEvent(ctx *gin.Context) {
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

	err = h.svc.ApproveEvent(ctx.Request.Context(), user.Actor(), eventID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrApprovalForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrApprovalForbidden))
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrEventFrozen):
			response.RenderErr(ctx, response.ErrConflict(service.ErrEventFrozen))
		default:
			err = fmt.Errorf("v1.HandleApproveEvent -> h.svc.ApproveEvent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "event approved"})
}
