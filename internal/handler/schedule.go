package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kids-activity-tracker/backend/internal/domain"
	"github.com/kids-activity-tracker/backend/internal/schedule"
	"github.com/kids-activity-tracker/backend/internal/utils"
)

// loadAccessibleChild resolves a child referenced in a request body and
// enforces the same ownership rule as requireChildAccess. Writes the error
// response itself and returns nil when access is denied or the child is
// missing.
func (h *Handler) loadAccessibleChild(w http.ResponseWriter, r *http.Request, childID int64) *domain.Child {
	child, err := h.repository.GetChildByID(childID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "child not found")
		default:
			h.internalServerError(w, r, err)
		}
		return nil
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	if myInfo.Role != domain.RoleAdmin && child.UserID != myInfo.ID {
		h.errorResponse(w, r, "insufficient permissions")
		return nil
	}

	return child
}

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChildID       int64  `json:"childId" validate:"required"`
		ActivityID    int64  `json:"activityId" validate:"required"`
		ScheduledDate string `json:"scheduledDate" validate:"required"`
		StartTime     string `json:"startTime"`
		EndTime       string `json:"endTime"`
		Force         bool   `json:"force"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	child := h.loadAccessibleChild(w, r, req.ChildID)
	if child == nil {
		return
	}

	activity, err := h.repository.GetActivityByID(req.ActivityID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "activity not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	day := schedule.ParseDateFlexible(req.ScheduledDate)
	if day == nil {
		h.errorResponse(w, r, "scheduled date is not a valid date")
		return
	}
	date := schedule.FormatDate(*day)

	// times fall back to the activity's own schedule
	startTime := req.StartTime
	if startTime == "" {
		startTime = activity.StartTime
	}
	endTime := req.EndTime
	if endTime == "" {
		endTime = activity.EndTime
	}

	if startTime != "" && endTime != "" {
		if err := utils.ValidateSlotTimes(startTime, endTime); err != nil {
			h.errorResponse(w, r, err.Error())
			return
		}
	}

	existing, err := h.repository.GetScheduledActivitiesByChildAndDate(child.ID, date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	slot := schedule.TimeSlot{Date: date, StartTime: startTime, EndTime: endTime}
	conflicts := schedule.DetectConflicts(slot, child.ID, existing)
	if len(conflicts) > 0 && !req.Force {
		h.errorResponseWithData(w, r, "the slot conflicts with existing bookings", map[string]any{
			"conflicts":   conflicts,
			"suggestions": schedule.SuggestAlternativeTimes(slot, child.ID, existing, slotDuration(startTime, endTime)),
		})
		return
	}

	booking := &domain.ScheduledActivity{
		ChildID:       child.ID,
		ActivityID:    activity.ID,
		ActivityName:  activity.Name,
		ScheduledDate: date,
		StartTime:     startTime,
		EndTime:       endTime,
	}

	if err := h.repository.CreateScheduledActivity(booking); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "booking created", booking)
}

// slotDuration derives a suggestion length from the requested slot; falls back
// to the default when the times are absent or unusable.
func slotDuration(startTime, endTime string) int {
	d := schedule.TimeToMinutes(endTime) - schedule.TimeToMinutes(startTime)
	if d <= 0 {
		return schedule.DefaultSuggestionMinutes
	}
	return d
}

func (h *Handler) CheckConflicts(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChildID   int64  `json:"childId" validate:"required"`
		Date      string `json:"date" validate:"required"`
		StartTime string `json:"startTime" validate:"required"`
		EndTime   string `json:"endTime" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	child := h.loadAccessibleChild(w, r, req.ChildID)
	if child == nil {
		return
	}

	if err := utils.ValidateSlotTimes(req.StartTime, req.EndTime); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	date := schedule.CanonicalDate(req.Date)
	existing, err := h.repository.GetScheduledActivitiesByChildAndDate(child.ID, date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	slot := schedule.TimeSlot{Date: date, StartTime: req.StartTime, EndTime: req.EndTime}
	conflicts := schedule.DetectConflicts(slot, child.ID, existing)

	h.successResponse(w, r, "checked conflicts", map[string]any{
		"conflicts":   conflicts,
		"suggestions": schedule.SuggestAlternativeTimes(slot, child.ID, existing, slotDuration(req.StartTime, req.EndTime)),
	})
}

// GetDayConflicts scans every booking on a date and reports the overlapping
// pairs per child. Admins see the whole day; parents only their own children.
func (h *Handler) GetDayConflicts(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "date")
	day := schedule.ParseDateFlexible(raw)
	if day == nil {
		h.errorResponse(w, r, "invalid date")
		return
	}
	date := schedule.FormatDate(*day)

	bookings, err := h.repository.GetScheduledActivitiesByDate(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	conflicts := schedule.DetectDayConflicts(date, bookings)

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	if myInfo.Role != domain.RoleAdmin {
		children, err := h.repository.GetChildrenByUserID(myInfo.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		mine := make(map[int64]bool, len(children))
		for _, child := range children {
			mine[child.ID] = true
		}
		for childID := range conflicts {
			if !mine[childID] {
				delete(conflicts, childID)
			}
		}
	}

	h.successResponse(w, r, "scanned day for conflicts", conflicts)
}

func (h *Handler) SuggestTimes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChildID         int64  `json:"childId" validate:"required"`
		Date            string `json:"date" validate:"required"`
		DurationMinutes int    `json:"durationMinutes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	child := h.loadAccessibleChild(w, r, req.ChildID)
	if child == nil {
		return
	}

	date := schedule.CanonicalDate(req.Date)
	existing, err := h.repository.GetScheduledActivitiesByChildAndDate(child.ID, date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	slot := schedule.TimeSlot{Date: date}
	suggestions := schedule.SuggestAlternativeTimes(slot, child.ID, existing, req.DurationMinutes)

	h.successResponse(w, r, "suggested free slots", suggestions)
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking := r.Context().Value(BookingCtx).(*domain.ScheduledActivity)
	h.successResponse(w, r, "fetched booking", booking)
}

func (h *Handler) RescheduleBooking(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScheduledDate *string `json:"scheduledDate"`
		StartTime     *string `json:"startTime"`
		EndTime       *string `json:"endTime"`
		Force         bool    `json:"force"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	booking := r.Context().Value(BookingCtx).(*domain.ScheduledActivity)

	if req.ScheduledDate != nil {
		day := schedule.ParseDateFlexible(*req.ScheduledDate)
		if day == nil {
			h.errorResponse(w, r, "scheduled date is not a valid date")
			return
		}
		booking.ScheduledDate = schedule.FormatDate(*day)
	}
	if req.StartTime != nil {
		booking.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		booking.EndTime = *req.EndTime
	}

	if booking.StartTime != "" && booking.EndTime != "" {
		if err := utils.ValidateSlotTimes(booking.StartTime, booking.EndTime); err != nil {
			h.errorResponse(w, r, err.Error())
			return
		}
	}

	existing, err := h.repository.GetScheduledActivitiesByChildAndDate(booking.ChildID, booking.ScheduledDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	slot := schedule.TimeSlot{Date: booking.ScheduledDate, StartTime: booking.StartTime, EndTime: booking.EndTime}
	conflicts := schedule.DetectRescheduleConflicts(booking.ID, slot, booking.ChildID, existing)
	if len(conflicts) > 0 && !req.Force {
		h.errorResponseWithData(w, r, "the new slot conflicts with existing bookings", map[string]any{
			"conflicts":   conflicts,
			"suggestions": schedule.SuggestAlternativeTimes(slot, booking.ChildID, existing, slotDuration(booking.StartTime, booking.EndTime)),
		})
		return
	}

	if err := h.repository.UpdateScheduledActivity(booking); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "booking rescheduled", booking)
}

func (h *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	booking := r.Context().Value(BookingCtx).(*domain.ScheduledActivity)

	if err := h.repository.DeleteScheduledActivity(booking.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "booking deleted", nil)
}
