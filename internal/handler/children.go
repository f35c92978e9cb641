package handler

import (
	"net/http"
	"time"

	"github.com/kids-activity-tracker/backend/internal/domain"
	"github.com/kids-activity-tracker/backend/internal/ical"
	"github.com/kids-activity-tracker/backend/internal/schedule"
)

func (h *Handler) CreateChild(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name" validate:"required"`
		DateOfBirth string `json:"dateOfBirth"`
		ColorHex    string `json:"colorHex" validate:"omitempty,hexcolor"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.DateOfBirth != "" && schedule.ParseDateFlexible(req.DateOfBirth) == nil {
		h.errorResponse(w, r, "date of birth is not a valid date")
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	child := &domain.Child{
		UserID:      myInfo.ID,
		Name:        req.Name,
		DateOfBirth: req.DateOfBirth,
		ColorHex:    req.ColorHex,
	}
	if child.ColorHex == "" {
		// deterministic default keeps siblings visually distinct
		siblings, err := h.repository.GetChildrenByUserID(myInfo.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		child.ColorHex = domain.ChildColorPalette[len(siblings)%len(domain.ChildColorPalette)]
	}

	if err := h.repository.CreateChild(child); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "child added", child)
}

func (h *Handler) GetMyChildren(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	children, err := h.repository.GetChildrenByUserID(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched children", children)
}

func (h *Handler) GetChild(w http.ResponseWriter, r *http.Request) {
	child := r.Context().Value(ChildCtx).(*domain.Child)
	h.successResponse(w, r, "fetched child", child)
}

func (h *Handler) UpdateChild(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string `json:"name"`
		DateOfBirth *string `json:"dateOfBirth"`
		ColorHex    *string `json:"colorHex" validate:"omitempty,hexcolor"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	child := r.Context().Value(ChildCtx).(*domain.Child)

	if req.Name != nil {
		child.Name = *req.Name
	}
	if req.DateOfBirth != nil {
		if *req.DateOfBirth != "" && schedule.ParseDateFlexible(*req.DateOfBirth) == nil {
			h.errorResponse(w, r, "date of birth is not a valid date")
			return
		}
		child.DateOfBirth = *req.DateOfBirth
	}
	if req.ColorHex != nil {
		child.ColorHex = *req.ColorHex
	}

	if err := h.repository.UpdateChild(child); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "child updated", child)
}

func (h *Handler) DeleteChild(w http.ResponseWriter, r *http.Request) {
	child := r.Context().Value(ChildCtx).(*domain.Child)

	if err := h.repository.DeleteChild(child.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "child deleted", nil)
}

// GetChildCalendarFeed exports the child's upcoming bookings as an iCalendar
// feed suitable for calendar-app subscriptions.
func (h *Handler) GetChildCalendarFeed(w http.ResponseWriter, r *http.Request) {
	child := r.Context().Value(ChildCtx).(*domain.Child)

	now := time.Now()
	from := schedule.FormatDate(now)
	to := schedule.FormatDate(now.AddDate(0, 0, h.config.ICal.HorizonDays))

	bookings, err := h.repository.GetScheduledActivitiesByChildBetween(child.ID, from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="schedule.ics"`)
	if _, err := w.Write([]byte(ical.BuildChildCalendar(child, bookings, now))); err != nil {
		h.logInternalServerError(r, err)
	}
}
