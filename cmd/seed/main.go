package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/kids-activity-tracker/backend/internal/config"
	"github.com/kids-activity-tracker/backend/internal/repository"
	"github.com/kids-activity-tracker/backend/internal/seed"
	"github.com/kids-activity-tracker/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var userID int64

	flag.IntVar(&op, "op", 0, "operation (1: random parents, 2: random children for a user, 3: random activities, 4: random bookings, 5: demo data)")
	flag.IntVar(&n, "n", 5, "number of rows to insert")
	flag.Int64Var(&userID, "user-id", 0, "user the random children are attached to")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

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

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("please give a valid number of users")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("unable to generate a random user", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("unable to insert the user", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("users inserted", slog.Int("count", n-cnt))
		}
	case 2:
		if userID <= 0 {
			slog.Error("please give a valid user ID")
			return
		}
		if n <= 0 {
			slog.Error("please give a valid number of children")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			child := utils.GenerateRandomChild(userID)
			if err := repo.CreateChild(child); err != nil {
				slog.Error("unable to insert the child", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("children inserted", slog.Int("count", n-cnt))
	case 3:
		if n <= 0 {
			slog.Error("please give a valid number of activities")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				activity := utils.GenerateRandomActivity()
				if err := repo.CreateActivity(activity); err != nil {
					slog.Error("unable to insert the activity", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("activities inserted", slog.Int("count", n-cnt))
		}
	case 4:
		if userID <= 0 {
			slog.Error("please give a valid user ID")
			return
		}

		children, err := repo.GetChildrenByUserID(userID)
		if err != nil {
			slog.Error("unable to fetch the user's children", slog.String("error", err.Error()))
			return
		}
		if len(children) == 0 {
			slog.Error("the user has no children to book for")
			return
		}

		activities, err := repo.GetAllActivities()
		if err != nil {
			slog.Error("unable to fetch activities", slog.String("error", err.Error()))
			return
		}
		if len(activities) == 0 {
			slog.Error("no activities to book")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			child := children[rand.Intn(len(children))]
			activity := activities[rand.Intn(len(activities))]

			booking := utils.GenerateRandomBooking(child, activity)
			if booking == nil {
				// the activity has no upcoming occurrence, try another draw
				continue
			}

			if err := repo.CreateScheduledActivity(booking); err != nil {
				slog.Error("unable to insert the booking", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("bookings inserted", slog.Int("count", cnt))
	case 5:
		seed.SeedDemoData(repo, cfg.Seed.User.Password, cfg.Email.UserDomain)
	default:
		slog.Error("unknown operation")
	}
}
