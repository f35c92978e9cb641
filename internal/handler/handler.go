package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/kids-activity-tracker/backend/internal/config"
	"github.com/kids-activity-tracker/backend/internal/domain"
	"github.com/kids-activity-tracker/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestID)
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a logged-in user
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
			r.Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
			})
		})

		r.Route("/children", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Post("/", h.CreateChild)
			r.Get("/", h.GetMyChildren)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.childInfo)
				r.Use(h.requireChildAccess)
				r.Get("/", h.GetChild)
				r.Patch("/", h.UpdateChild)
				r.Delete("/", h.DeleteChild)
				r.Get("/calendar.ics", h.GetChildCalendarFeed)
			})
		})

		r.Route("/activities", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateActivity)
			r.Get("/", h.GetAllActivities)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.activityInfo)
				r.Get("/", h.GetActivity)
				r.Get("/occurrences", h.GetActivityOccurrences)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateActivity)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteActivity)
			})
		})

		r.Route("/schedule", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Post("/", h.CreateBooking)
			r.Post("/conflicts", h.CheckConflicts)
			r.Get("/conflicts/day/{date}", h.GetDayConflicts)
			r.Post("/suggestions", h.SuggestTimes)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.bookingInfo)
				r.Use(h.requireBookingAccess)
				r.Get("/", h.GetBooking)
				r.Patch("/", h.RescheduleBooking)
				r.Delete("/", h.DeleteBooking)
			})
		})
	})
}
