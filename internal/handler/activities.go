package handler

import (
	"net/http"
	"time"

	"github.com/kids-activity-tracker/backend/internal/domain"
	"github.com/kids-activity-tracker/backend/internal/schedule"
	"github.com/kids-activity-tracker/backend/internal/utils"
)

type activityRequest struct {
	Name          string   `json:"name" validate:"required"`
	Provider      string   `json:"provider"`
	Location      string   `json:"location"`
	ScheduledDate string   `json:"scheduledDate"`
	SessionDates  []string `json:"sessionDates"`
	DateStart     string   `json:"dateStart"`
	DateEnd       string   `json:"dateEnd"`
	DaysOfWeek    []string `json:"daysOfWeek"`
	StartTime     string   `json:"startTime"`
	EndTime       string   `json:"endTime"`
}

func (h *Handler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req activityRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	activity := &domain.Activity{
		Name:          req.Name,
		Provider:      req.Provider,
		Location:      req.Location,
		ScheduledDate: req.ScheduledDate,
		SessionDates:  req.SessionDates,
		DateStart:     req.DateStart,
		DateEnd:       req.DateEnd,
		DaysOfWeek:    req.DaysOfWeek,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
	}

	if err := utils.ValidateActivitySchedule(activity); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.CreateActivity(activity); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "activity created", activity)
}

func (h *Handler) GetAllActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.repository.GetAllActivities()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched activities", activities)
}

func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	activity := r.Context().Value(ActivityCtx).(*domain.Activity)
	h.successResponse(w, r, "fetched activity", activity)
}

// GetActivityOccurrences expands the activity's schedule into the concrete
// dates it occurs on. The window defaults to the next 90 days and can be
// overridden with ?start= and ?end= query parameters.
func (h *Handler) GetActivityOccurrences(w http.ResponseWriter, r *http.Request) {
	activity := r.Context().Value(ActivityCtx).(*domain.Activity)

	from := time.Now()
	to := from.AddDate(0, 0, h.config.ICal.HorizonDays)

	if raw := r.URL.Query().Get("start"); raw != "" {
		parsed := schedule.ParseDateFlexible(raw)
		if parsed == nil {
			h.errorResponse(w, r, "start is not a valid date")
			return
		}
		from = *parsed
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		parsed := schedule.ParseDateFlexible(raw)
		if parsed == nil {
			h.errorResponse(w, r, "end is not a valid date")
			return
		}
		to = *parsed
	}

	dates := schedule.ExpandActivityDates(activity, from, to)

	h.successResponse(w, r, "expanded activity occurrences", dates)
}

func (h *Handler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          *string   `json:"name"`
		Provider      *string   `json:"provider"`
		Location      *string   `json:"location"`
		ScheduledDate *string   `json:"scheduledDate"`
		SessionDates  *[]string `json:"sessionDates"`
		DateStart     *string   `json:"dateStart"`
		DateEnd       *string   `json:"dateEnd"`
		DaysOfWeek    *[]string `json:"daysOfWeek"`
		StartTime     *string   `json:"startTime"`
		EndTime       *string   `json:"endTime"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	activity := r.Context().Value(ActivityCtx).(*domain.Activity)

	if req.Name != nil {
		activity.Name = *req.Name
	}
	if req.Provider != nil {
		activity.Provider = *req.Provider
	}
	if req.Location != nil {
		activity.Location = *req.Location
	}
	if req.ScheduledDate != nil {
		activity.ScheduledDate = *req.ScheduledDate
	}
	if req.SessionDates != nil {
		activity.SessionDates = *req.SessionDates
	}
	if req.DateStart != nil {
		activity.DateStart = *req.DateStart
	}
	if req.DateEnd != nil {
		activity.DateEnd = *req.DateEnd
	}
	if req.DaysOfWeek != nil {
		activity.DaysOfWeek = *req.DaysOfWeek
	}
	if req.StartTime != nil {
		activity.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		activity.EndTime = *req.EndTime
	}

	if err := utils.ValidateActivitySchedule(activity); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.UpdateActivity(activity); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "activity updated", activity)
}

func (h *Handler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	activity := r.Context().Value(ActivityCtx).(*domain.Activity)

	if err := h.repository.DeleteActivity(activity.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "activity deleted", nil)
}
