package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"

	"github.com/kids-activity-tracker/backend/internal/config"
	"github.com/kids-activity-tracker/backend/internal/domain"
	"github.com/kids-activity-tracker/backend/internal/repository"
	"github.com/kids-activity-tracker/backend/internal/schedule"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// The digest worker scans the next day's bookings on a cron schedule and
// emails each parent whose children have overlapping bookings.

func main() {
	/**********************************************
	 * set up the logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * load configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", "error", err)
		return
	}

	/**********************************************
	 * connect to the database
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create the database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to reach the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * connect to rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("unable to connect to rabbitmq", "error", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("unable to open a channel", "error", err)
		return
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		"email_queue",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("unable to declare the queue", "error", err)
		return
	}

	/**********************************************
	 * schedule the nightly scan
	 **********************************************/
	c := cron.New()
	if _, err := c.AddFunc(cfg.Digest.CronSpec, func() {
		date := schedule.FormatDate(time.Now().AddDate(0, 0, 1))
		if err := runDigest(cfg, repo, ch, date); err != nil {
			logger.Error("digest run failed", "date", date, "error", err)
		}
	}); err != nil {
		logger.Error("invalid cron spec", "spec", cfg.Digest.CronSpec, "error", err)
		return
	}
	c.Start()

	logger.Info("digest worker started", "spec", cfg.Digest.CronSpec)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down the digest worker...")
	<-c.Stop().Done()
	logger.Info("digest worker shut down")
}

func runDigest(cfg *config.Config, repo *repository.Repository, ch *amqp.Channel, date string) error {
	bookings, err := repo.GetScheduledActivitiesByDate(date)
	if err != nil {
		return err
	}

	conflicts := schedule.DetectDayConflicts(date, bookings)
	if len(conflicts) == 0 {
		slog.Info("no conflicts found", "date", date)
		return nil
	}

	// group the per-child conflicts under the parent who gets the email
	type digest struct {
		user  *domain.User
		items []domain.DigestConflictItem
	}
	byParent := make(map[int64]*digest)

	for childID, childConflicts := range conflicts {
		child, err := repo.GetChildByID(childID)
		if err != nil {
			slog.Error("unable to load child", "childID", childID, "error", err)
			continue
		}

		d, ok := byParent[child.UserID]
		if !ok {
			user, err := repo.GetUserByID(child.UserID)
			if err != nil {
				slog.Error("unable to load parent", "userID", child.UserID, "error", err)
				continue
			}
			d = &digest{user: user}
			byParent[child.UserID] = d
		}

		for _, conflict := range childConflicts {
			d.items = append(d.items, domain.DigestConflictItem{
				ChildName:    child.Name,
				ActivityName: conflict.ExistingActivity.ActivityName,
				Description:  conflict.Description,
			})
		}
	}

	for _, d := range byParent {
		msg := domain.MailMessage{
			Type: "conflict_digest",
			To:   d.user.Email,
			Data: domain.ConflictDigestMailData{
				FullName:  d.user.FullName,
				Date:      date,
				Conflicts: d.items,
			},
		}

		if err := publishMail(cfg, ch, msg); err != nil {
			slog.Error("unable to publish the digest mail", "to", d.user.Email, "error", err)
			continue
		}
		slog.Info("digest queued", "to", d.user.Email, "conflicts", len(d.items))
	}

	return nil
}

func publishMail(cfg *config.Config, ch *amqp.Channel, msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return ch.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
