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

type AttendanceService interface {
	RequestAttendance(ctx context.Context, userID, eventID uint, admissionID *uint) (domain.Attendance, error)
	ApproveRequest(ctx context.Context, actor domain.Actor, eventID, targetUserID uint) error
	RejectRequest(ctx context.Context, actor domain.Actor, eventID, targetUserID uint) error
	CancelAttendance(ctx context.Context, userID, eventID uint) error
	ListAttendees(ctx context.Context, actor domain.Actor, eventID uint) ([]domain.Attendance, error)
}

type AttendanceHandler struct {
	svc  AttendanceService
	uSvc UserService
}

func NewAttendanceHandler(svc AttendanceService, uSvc UserService) *AttendanceHandler {
	return &AttendanceHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleAttend godoc
// @Summary      Request attendance for an event
// @Description  Registers the authenticated user for an event. Events with admission tiers create a pending request the owner must approve; other events confirm immediately, subject to capacity.
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                    true   "Event ID"
// @Param        request  body      request.AttendRequest  false  "request body"
// @Success      201  {object}  domain.Attendance
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/attend [post]
// @Security     BearerAuth
func (h *AttendanceHandler) HandleAttend(ctx *gin.Context) {
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

	var req request.AttendRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		if err := req.Validate(); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
	}

	attendance, err := h.svc.RequestAttendance(ctx.Request.Context(), user.ID, eventID, req.AdmissionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrEventFull):
			response.RenderErr(ctx, response.ErrConflict(service.ErrEventFull))
		case errors.Is(err, service.ErrAlreadyAttending):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyAttending))
		case errors.Is(err, service.ErrAdmissionNotOffered):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrAdmissionNotOffered))
		default:
			err = fmt.Errorf("v1.HandleAttend -> h.svc.RequestAttendance -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, attendance)
}

// HandleCancelAttendance godoc
// @Summary      Cancel attendance
// @Description  Removes the authenticated user's attendance record for an event, whether pending or confirmed. Cancelling a confirmed seat frees it.
// @Tags         attendance
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/attend [delete]
// @Security     BearerAuth
func (h *AttendanceHandler) HandleCancelAttendance(ctx *gin.Context) {
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

	err = h.svc.CancelAttendance(ctx.Request.Context(), user.ID, eventID)
	if err != nil {
		if errors.Is(err, service.ErrNotAttending) {
			response.RenderErr(ctx, response.ErrNotFound("attendance", "eventID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleCancelAttendance -> h.svc.CancelAttendance -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "attendance cancelled"})
}

// HandleApproveRequest godoc
// @Summary      Approve a pending attendance request
// @Description  Confirms a pending request on a gated event. Only the event owner may approve, and capacity is re-checked at approval time.
// @Tags         attendance
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Param        userID   path      int  true  "Requesting user ID"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/requests/{userID}/approve [post]
// @Security     BearerAuth
func (h *AttendanceHandler) HandleApproveRequest(ctx *gin.Context) {
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

	targetUserID, err := parseUintParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err = h.svc.ApproveRequest(ctx.Request.Context(), user.Actor(), eventID, targetUserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, domain.ErrNotOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(domain.ErrNotOwner))
		case errors.Is(err, service.ErrNotAttending):
			response.RenderErr(ctx, response.ErrNotFound("attendance request", "userID", targetUserID))
		case errors.Is(err, service.ErrRequestNotPending):
			response.RenderErr(ctx, response.ErrConflict(service.ErrRequestNotPending))
		case errors.Is(err, service.ErrEventFull):
			response.RenderErr(ctx, response.ErrConflict(service.ErrEventFull))
		default:
			err = fmt.Errorf("v1.HandleApproveRequest -> h.svc.ApproveRequest -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "request approved"})
}

// HandleRejectRequest godoc
// @Summary      Reject a pending attendance request
// @Description  Removes a pending request on a gated event. Only the event owner may reject; confirmed attendances are not affected.
// @Tags         attendance
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Param        userID   path      int  true  "Requesting user ID"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/requests/{userID} [delete]
// @Security     BearerAuth
func (h *AttendanceHandler) HandleRejectRequest(ctx *gin.Context) {
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

	targetUserID, err := parseUintParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err = h.svc.RejectRequest(ctx.Request.Context(), user.Actor(), eventID, targetUserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, domain.ErrNotOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(domain.ErrNotOwner))
		case errors.Is(err, service.ErrNotAttending):
			response.RenderErr(ctx, response.ErrNotFound("attendance request", "userID", targetUserID))
		case errors.Is(err, service.ErrRequestNotPending):
			response.RenderErr(ctx, response.ErrConflict(service.ErrRequestNotPending))
		default:
			err = fmt.Errorf("v1.HandleRejectRequest -> h.svc.RejectRequest -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "request rejected"})
}

// HandleListAttendees godoc
// @Summary      List attendees of an event
// @Description  Lists attendance records, pending and confirmed, in request order. Restricted to the event owner, moderators and administrators.
// @Tags         attendance
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200  {array}   domain.Attendance
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/attendees [get]
// @Security     BearerAuth
func (h *AttendanceHandler) HandleListAttendees(ctx *gin.Context) {
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

	attendees, err := h.svc.ListAttendees(ctx.Request.Context(), user.Actor(), eventID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, domain.ErrNotOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(domain.ErrNotOwner))
		default:
			err = fmt.Errorf("v1.HandleListAttendees -> h.svc.ListAttendees -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, attendees)
}
