package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/kids-activity-tracker/backend/internal/domain"
)

// Activities keep their explicit session dates and weekday names in child
// tables (activity_session_dates, activity_days_of_week) and are assembled
// from a LEFT JOIN so an activity with neither still comes back whole.

type activityRow struct {
	ID            int64
	Name          string
	Provider      string
	Location      string
	ScheduledDate string
	DateStart     string
	DateEnd       string
	StartTime     string
	EndTime       string
	CreatedAt     time.Time
	Version       int32

	SessionDate sql.NullString
	DayOfWeek   sql.NullString
}

const activityJoinQuery = `
	SELECT
		a.id,
		a.name,
		a.provider,
		a.location,
		COALESCE(a.scheduled_date, ''),
		COALESCE(a.date_start, ''),
		COALESCE(a.date_end, ''),
		COALESCE(a.start_time, ''),
		COALESCE(a.end_time, ''),
		a.created_at,
		a.version,
		asd.session_date,
		adw.day_name
	FROM activities a
	LEFT JOIN activity_session_dates asd ON a.id = asd.activity_id
	LEFT JOIN activity_days_of_week adw ON a.id = adw.activity_id
`

func collectActivities(rows *sql.Rows) ([]*domain.Activity, error) {
	activitiesMap := make(map[int64]*domain.Activity)
	order := make([]int64, 0)
	seenSessions := make(map[int64]map[string]bool)
	seenDays := make(map[int64]map[string]bool)

	for rows.Next() {
		var row activityRow
		dst := []any{
			&row.ID,
			&row.Name,
			&row.Provider,
			&row.Location,
			&row.ScheduledDate,
			&row.DateStart,
			&row.DateEnd,
			&row.StartTime,
			&row.EndTime,
			&row.CreatedAt,
			&row.Version,
			&row.SessionDate,
			&row.DayOfWeek,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		activity, exists := activitiesMap[row.ID]
		if !exists {
			activity = &domain.Activity{
				ID:            row.ID,
				Name:          row.Name,
				Provider:      row.Provider,
				Location:      row.Location,
				ScheduledDate: row.ScheduledDate,
				SessionDates:  make([]string, 0),
				DateStart:     row.DateStart,
				DateEnd:       row.DateEnd,
				DaysOfWeek:    make([]string, 0),
				StartTime:     row.StartTime,
				EndTime:       row.EndTime,
				CreatedAt:     row.CreatedAt,
				Version:       row.Version,
			}
			activitiesMap[row.ID] = activity
			order = append(order, row.ID)
			seenSessions[row.ID] = make(map[string]bool)
			seenDays[row.ID] = make(map[string]bool)
		}

		// the cross join repeats each session date once per weekday row and
		// vice versa, so dedupe while collecting
		if row.SessionDate.Valid && !seenSessions[row.ID][row.SessionDate.String] {
			seenSessions[row.ID][row.SessionDate.String] = true
			activity.SessionDates = append(activity.SessionDates, row.SessionDate.String)
		}
		if row.DayOfWeek.Valid && !seenDays[row.ID][row.DayOfWeek.String] {
			seenDays[row.ID][row.DayOfWeek.String] = true
			activity.DaysOfWeek = append(activity.DaysOfWeek, row.DayOfWeek.String)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	activities := make([]*domain.Activity, 0, len(order))
	for _, id := range order {
		activities = append(activities, activitiesMap[id])
	}
	return activities, nil
}

func (r *Repository) GetAllActivities() ([]*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, activityJoinQuery+` ORDER BY a.id, asd.session_date, adw.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectActivities(rows)
}

func (r *Repository) GetActivityByID(id int64) (*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, activityJoinQuery+` WHERE a.id = $1 ORDER BY asd.session_date, adw.id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities, err := collectActivities(rows)
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return nil, sql.ErrNoRows
	}
	return activities[0], nil
}

func (r *Repository) CreateActivity(activity *domain.Activity) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO activities (name, provider, location, scheduled_date, date_start, date_end, start_time, end_time)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
		RETURNING id, created_at, version
	`
	params := []any{
		activity.Name,
		activity.Provider,
		activity.Location,
		activity.ScheduledDate,
		activity.DateStart,
		activity.DateEnd,
		activity.StartTime,
		activity.EndTime,
	}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&activity.ID, &activity.CreatedAt, &activity.Version); err != nil {
		return err
	}

	if err := insertActivityChildren(ctx, tx, activity); err != nil {
		return err
	}

	return tx.Commit()
}

func insertActivityChildren(ctx context.Context, tx *sql.Tx, activity *domain.Activity) error {
	for _, session := range activity.SessionDates {
		query := `INSERT INTO activity_session_dates (activity_id, session_date) VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, query, activity.ID, session); err != nil {
			return err
		}
	}

	for _, day := range activity.DaysOfWeek {
		query := `INSERT INTO activity_days_of_week (activity_id, day_name) VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, query, activity.ID, day); err != nil {
			return err
		}
	}

	return nil
}

func (r *Repository) UpdateActivity(activity *domain.Activity) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE activities
		SET
			name = $1,
			provider = $2,
			location = $3,
			scheduled_date = NULLIF($4, ''),
			date_start = NULLIF($5, ''),
			date_end = NULLIF($6, ''),
			start_time = NULLIF($7, ''),
			end_time = NULLIF($8, ''),
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING version
	`
	params := []any{
		activity.Name,
		activity.Provider,
		activity.Location,
		activity.ScheduledDate,
		activity.DateStart,
		activity.DateEnd,
		activity.StartTime,
		activity.EndTime,
		activity.ID,
		activity.Version,
	}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&activity.Version); err != nil {
		return err
	}

	// replace the child rows wholesale, the lists are tiny
	if _, err := tx.ExecContext(ctx, `DELETE FROM activity_session_dates WHERE activity_id = $1`, activity.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM activity_days_of_week WHERE activity_id = $1`, activity.ID); err != nil {
		return err
	}
	if err := insertActivityChildren(ctx, tx, activity); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) DeleteActivity(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `DELETE FROM activities WHERE id = $1`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
