package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/school-community-platform/internal/model"
	"github.com/iliyamo/school-community-platform/internal/queue"
	"github.com/iliyamo/school-community-platform/internal/repository"
	"github.com/iliyamo/school-community-platform/internal/service"
)

// EventHandler serves tutoring events and bookings. Every listing
// runs the expiry sweep first, so clients never see an event whose
// end time has passed.
type EventHandler struct {
	Events *repository.EventRepo
	Notify *service.Notifier
	Log    *zap.Logger
}

func NewEventHandler(e *repository.EventRepo, n *service.Notifier, log *zap.Logger) *EventHandler {
	return &EventHandler{Events: e, Notify: n, Log: log}
}

func (h *EventHandler) reap(c echo.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if n, err := h.Events.ReapExpired(ctx); err != nil {
		h.Log.Warn("expired event sweep failed", zap.Error(err))
	} else if n > 0 {
		h.Log.Info("expired events removed", zap.Int64("count", n))
	}
}

// List returns all live events with host and participant counts.
func (h *EventHandler) List(c echo.Context) error {
	h.reap(c)
	ctx, cancel := reqCtx(c)
	defer cancel()

	events, err := h.Events.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list events failed"})
	}
	return c.JSON(http.StatusOK, events)
}

// Hosting returns events the caller hosts.
func (h *EventHandler) Hosting(c echo.Context) error {
	h.reap(c)
	ctx, cancel := reqCtx(c)
	defer cancel()

	events, err := h.Events.ListByHost(ctx, currentUserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list events failed"})
	}
	return c.JSON(http.StatusOK, events)
}

// Booked returns events the caller holds a booking for.
func (h *EventHandler) Booked(c echo.Context) error {
	h.reap(c)
	ctx, cancel := reqCtx(c)
	defer cancel()

	events, err := h.Events.ListBooked(ctx, currentUserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list events failed"})
	}
	return c.JSON(http.StatusOK, events)
}

type createEventReq struct {
	Title           string  `json:"title" validate:"required,max=200"`
	Description     *string `json:"description"`
	Subject         *string `json:"subject"`
	StartTime       string  `json:"start_time" validate:"required"`
	EndTime         string  `json:"end_time" validate:"required"`
	LocationURL     *string `json:"location_url"`
	MaxParticipants *int    `json:"max_participants" validate:"omitempty,min=1"`
}

// Create schedules an event with the caller as host. The end must be
// after the start and in the future; a nil max_participants means
// unlimited seats. Everyone else is notified best effort.
func (h *EventHandler) Create(c echo.Context) error {
	var req createEventReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time"})
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_time"})
	}
	if !end.After(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be after start_time"})
	}
	if end.Before(time.Now()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event already over"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	uid := currentUserID(c)
	ev := model.Event{
		Title: req.Title, Description: req.Description, HostID: uid, Subject: req.Subject,
		StartTime: start, EndTime: end, LocationURL: req.LocationURL, MaxParticipants: req.MaxParticipants,
	}
	if err := h.Events.Create(ctx, &ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}

	h.Notify.EventCreated(ctx, uid, ev.ID, ev.Title)
	return c.JSON(http.StatusCreated, ev)
}

// Delete cancels an event. The host or an admin may delete; all
// bookings go with it.
func (h *EventHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		return writeRepoErr(c, err, "load event failed")
	}
	if ev.HostID != currentUserID(c) && currentRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Events.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete event failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Book reserves one seat for the caller. Hosts cannot book their own
// event, a second booking is refused, and a full event is refused;
// the capacity check and the insert run atomically.
func (h *EventHandler) Book(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	uid := currentUserID(c)
	switch err := h.Events.Book(ctx, id, uid); err {
	case nil:
	case repository.ErrHostBooking:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "host cannot book own event"})
	case repository.ErrAlreadyBooked:
		return c.JSON(http.StatusConflict, echo.Map{"error": "already booked"})
	case repository.ErrEventFull:
		return c.JSON(http.StatusConflict, echo.Map{"error": "event is full"})
	default:
		return writeRepoErr(c, err, "booking failed")
	}

	if err := service.PublishAudit(ctx, queue.AuditEvent{
		Kind: "event.booked", ActorID: uid, SubjectID: id,
	}); err != nil {
		h.Log.Warn("audit publish failed", zap.Uint64("event", id), zap.Error(err))
	}
	return c.JSON(http.StatusCreated, echo.Map{"event_id": id, "status": "booked"})
}

// CancelBooking frees the caller's seat; cancelling a booking that
// does not exist succeeds silently.
func (h *EventHandler) CancelBooking(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Events.CancelBooking(ctx, id, currentUserID(c)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel booking failed"})
	}
	// Cancelling an absent booking is treated as success.
	return c.JSON(http.StatusOK, echo.Map{"event_id": id, "status": "cancelled"})
}
