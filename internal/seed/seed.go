// Package seed fills a development database with a small, recognizable data
// set: one parent, two children, a handful of activities and a booking pair
// that deliberately overlaps so the conflict endpoints have something to show.
package seed

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/kids-activity-tracker/backend/internal/domain"
	"github.com/kids-activity-tracker/backend/internal/repository"
)

func SeedDemoData(repo *repository.Repository, password string, emailDomain string) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("unable to hash the demo password", slog.String("error", err.Error()))
		return
	}

	parent := &domain.User{
		Username:     "demo.parent",
		PasswordHash: string(passwordHash),
		FullName:     "Demo Parent",
		Email:        "demo.parent@" + emailDomain,
		Role:         domain.RoleParent,
	}
	if err := repo.CreateUser(parent); err != nil {
		slog.Error("unable to insert the demo parent", slog.String("error", err.Error()))
		return
	}

	children := []*domain.Child{
		{UserID: parent.ID, Name: "Maya", DateOfBirth: "2018-04-12", ColorHex: domain.ChildColorPalette[0]},
		{UserID: parent.ID, Name: "Leo", DateOfBirth: "2016-09-30", ColorHex: domain.ChildColorPalette[1]},
	}
	for _, child := range children {
		if err := repo.CreateChild(child); err != nil {
			slog.Error("unable to insert a demo child", slog.String("error", err.Error()))
			return
		}
	}

	activities := []*domain.Activity{
		{
			Name:      "Swim Lessons",
			Provider:  "Community Rec Center",
			Location:  "Pool A",
			DateStart: "2026-09-07",
			DateEnd:   "2026-12-14",
			DaysOfWeek: []string{
				"monday", "wednesday",
			},
			StartTime: "16:00",
			EndTime:   "17:00",
		},
		{
			Name:         "Art Camp",
			Provider:     "Little Stars Academy",
			Location:     "Studio 2",
			SessionDates: []string{"2026-09-12", "2026-09-19", "2026-09-26"},
			StartTime:    "10:00",
			EndTime:      "12:00",
		},
		{
			Name:          "Soccer Tryouts",
			Provider:      "City Sports League",
			Location:      "Field 3",
			ScheduledDate: "2026-09-12",
			StartTime:     "11:00",
			EndTime:       "12:30",
		},
	}
	for _, activity := range activities {
		if err := repo.CreateActivity(activity); err != nil {
			slog.Error("unable to insert a demo activity", slog.String("error", err.Error()))
			return
		}
	}

	// the two 2026-09-12 bookings for Maya overlap on purpose
	bookings := []*domain.ScheduledActivity{
		{ChildID: children[0].ID, ActivityID: activities[1].ID, ScheduledDate: "2026-09-12", StartTime: "10:00", EndTime: "12:00"},
		{ChildID: children[0].ID, ActivityID: activities[2].ID, ScheduledDate: "2026-09-12", StartTime: "11:00", EndTime: "12:30"},
		{ChildID: children[1].ID, ActivityID: activities[0].ID, ScheduledDate: "2026-09-09", StartTime: "16:00", EndTime: "17:00"},
	}
	for _, booking := range bookings {
		if err := repo.CreateScheduledActivity(booking); err != nil {
			slog.Error("unable to insert a demo booking", slog.String("error", err.Error()))
			return
		}
	}

	slog.Info("demo data inserted",
		slog.Int("children", len(children)),
		slog.Int("activities", len(activities)),
		slog.Int("bookings", len(bookings)),
	)
}
