package seats

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"seatwise/internal/shared/utils/response"
)

// EventChecker lets the controller verify an event exists without importing
// the events package (avoids a circular dependency; the events service
// implements it).
type EventChecker interface {
	EventExists(ctx context.Context, eventID uuid.UUID) (bool, error)
}

type Controller interface {
	GetEventSeats(c *gin.Context)
	BookSeats(c *gin.Context)
	ApproveSeats(c *gin.Context)
	RejectSeats(c *gin.Context)
	BlockSeats(c *gin.Context)
	UnblockSeats(c *gin.Context)
	ResetSeats(c *gin.Context)
}

type controller struct {
	service Service
	events  EventChecker
}

func NewController(service Service, events EventChecker) Controller {
	return &controller{service: service, events: events}
}

func (ctrl *controller) GetEventSeats(c *gin.Context) {
	eventID, ok := ctrl.eventIDParam(c)
	if !ok {
		return
	}

	seats, err := ctrl.service.ListByEvent(c.Request.Context(), eventID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	responses := make([]SeatResponse, len(seats))
	for i := range seats {
		responses[i] = seats[i].ToResponse()
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seats retrieved successfully", responses, nil)
}

func (ctrl *controller) BookSeats(c *gin.Context) {
	eventID, ok := ctrl.eventIDParam(c)
	if !ok {
		return
	}

	var req BulkSeatActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	// Caller identity from the auth middleware becomes the requesting user
	callerID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}
	userID, err := uuid.Parse(callerID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return
	}

	updated, err := ctrl.service.Book(c.Request.Context(), eventID, req.SeatIDs, userID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seats requested successfully",
		NewSeatActionResponse(len(req.SeatIDs), updated), nil)
}

func (ctrl *controller) ApproveSeats(c *gin.Context) {
	ctrl.adminAction(c, "Seats approved successfully", ctrl.service.Approve)
}

func (ctrl *controller) RejectSeats(c *gin.Context) {
	ctrl.adminAction(c, "Seats rejected successfully", ctrl.service.Reject)
}

func (ctrl *controller) BlockSeats(c *gin.Context) {
	ctrl.adminAction(c, "Seats blocked successfully", ctrl.service.Block)
}

func (ctrl *controller) UnblockSeats(c *gin.Context) {
	ctrl.adminAction(c, "Seats unblocked successfully", ctrl.service.Unblock)
}

func (ctrl *controller) ResetSeats(c *gin.Context) {
	eventID, ok := ctrl.eventIDParam(c)
	if !ok {
		return
	}

	reset, err := ctrl.service.Reset(c.Request.Context(), eventID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seats reset successfully",
		NewSeatActionResponse(len(reset), reset), nil)
}

// adminAction factors the shared shape of the admin bulk transitions.
func (ctrl *controller) adminAction(c *gin.Context, message string, action func(context.Context, uuid.UUID, []string) ([]Seat, error)) {
	eventID, ok := ctrl.eventIDParam(c)
	if !ok {
		return
	}

	var req BulkSeatActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	updated, err := action(c.Request.Context(), eventID, req.SeatIDs)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, message,
		NewSeatActionResponse(len(req.SeatIDs), updated), nil)
}

// eventIDParam parses the :eventId path parameter and verifies the event
// exists, writing the error response itself when it does not.
func (ctrl *controller) eventIDParam(c *gin.Context) (uuid.UUID, bool) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return uuid.Nil, false
	}

	exists, err := ctrl.events.EventExists(c.Request.Context(), eventID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return uuid.Nil, false
	}
	if !exists {
		response.RespondJSON(c, "error", http.StatusNotFound, "Event not found", nil, nil)
		return uuid.Nil, false
	}

	return eventID, true
}
