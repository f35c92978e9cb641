package repository

import (
	"context"
	"time"

	"github.com/kids-activity-tracker/backend/internal/domain"
)

// Bookings carry their activity's display name via a JOIN; scheduled_date is
// stored as a DATE and rendered to the canonical yyyy-MM-dd form on read.

const scheduledActivityColumns = `
	sa.id,
	sa.child_id,
	sa.activity_id,
	a.name,
	to_char(sa.scheduled_date, 'YYYY-MM-DD'),
	COALESCE(sa.start_time, ''),
	COALESCE(sa.end_time, ''),
	sa.created_at,
	sa.version
`

const scheduledActivityFrom = `
	FROM scheduled_activities sa
	JOIN activities a ON a.id = sa.activity_id
`

func scanScheduledActivity(scan func(dst ...any) error) (*domain.ScheduledActivity, error) {
	booking := &domain.ScheduledActivity{}
	dst := []any{
		&booking.ID,
		&booking.ChildID,
		&booking.ActivityID,
		&booking.ActivityName,
		&booking.ScheduledDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.CreatedAt,
		&booking.Version,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *Repository) queryScheduledActivities(where string, params ...any) ([]*domain.ScheduledActivity, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `SELECT ` + scheduledActivityColumns + scheduledActivityFrom + where + ` ORDER BY sa.id`

	rows, err := r.dbpool.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]*domain.ScheduledActivity, 0)
	for rows.Next() {
		booking, err := scanScheduledActivity(rows.Scan)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *Repository) CreateScheduledActivity(booking *domain.ScheduledActivity) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO scheduled_activities (child_id, activity_id, scheduled_date, start_time, end_time)
		VALUES ($1, $2, $3::date, NULLIF($4, ''), NULLIF($5, ''))
		RETURNING id, created_at, version
	`

	params := []any{booking.ChildID, booking.ActivityID, booking.ScheduledDate, booking.StartTime, booking.EndTime}
	return r.dbpool.QueryRowContext(ctx, query, params...).Scan(&booking.ID, &booking.CreatedAt, &booking.Version)
}

func (r *Repository) GetScheduledActivityByID(id int64) (*domain.ScheduledActivity, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `SELECT ` + scheduledActivityColumns + scheduledActivityFrom + ` WHERE sa.id = $1`

	booking, err := scanScheduledActivity(r.dbpool.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *Repository) GetScheduledActivitiesByChildAndDate(childID int64, date string) ([]*domain.ScheduledActivity, error) {
	return r.queryScheduledActivities(` WHERE sa.child_id = $1 AND sa.scheduled_date = $2::date`, childID, date)
}

func (r *Repository) GetScheduledActivitiesByDate(date string) ([]*domain.ScheduledActivity, error) {
	return r.queryScheduledActivities(` WHERE sa.scheduled_date = $1::date`, date)
}

func (r *Repository) GetScheduledActivitiesByChildBetween(childID int64, from, to string) ([]*domain.ScheduledActivity, error) {
	return r.queryScheduledActivities(
		` WHERE sa.child_id = $1 AND sa.scheduled_date BETWEEN $2::date AND $3::date`,
		childID, from, to,
	)
}

func (r *Repository) UpdateScheduledActivity(booking *domain.ScheduledActivity) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE scheduled_activities
		SET
			scheduled_date = $1::date,
			start_time = NULLIF($2, ''),
			end_time = NULLIF($3, ''),
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	params := []any{booking.ScheduledDate, booking.StartTime, booking.EndTime, booking.ID, booking.Version}
	return r.dbpool.QueryRowContext(ctx, query, params...).Scan(&booking.Version)
}

func (r *Repository) DeleteScheduledActivity(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `DELETE FROM scheduled_activities WHERE id = $1`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}

// ChildIDsWithBookingsOn lists the distinct children booked on a date; the
// digest worker uses it to fan out per-parent conflict emails.
func (r *Repository) ChildIDsWithBookingsOn(date string) ([]int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `SELECT DISTINCT child_id FROM scheduled_activities WHERE scheduled_date = $1::date ORDER BY child_id`

	rows, err := r.dbpool.QueryContext(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
