package server

import (
	"context"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-contrib/cors"
	limits "github.com/gin-contrib/size"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/jugehoerig/vereinsapi/config"
	"github.com/jugehoerig/vereinsapi/internal/auth"
	"github.com/jugehoerig/vereinsapi/internal/handlers"
	"github.com/jugehoerig/vereinsapi/internal/helpers"
	"github.com/jugehoerig/vereinsapi/internal/mailer"
	"github.com/jugehoerig/vereinsapi/internal/metrics"
	"github.com/jugehoerig/vereinsapi/internal/middleware"
	"github.com/jugehoerig/vereinsapi/internal/repository"
	"github.com/jugehoerig/vereinsapi/internal/services"
)

const shutdownTimeout = 10 * time.Second

// Version is reported through the app_info metric.
var Version = "dev"

// Start wires the application, serves until ctx is cancelled and then
// drains in-flight requests.
func Start(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	db, err := config.InitDatabase(cfg.Database, log)
	if err != nil {
		return errors.Wrap(err, "failed to initialize database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to access connection pool")
	}
	defer sqlDB.Close()

	metrics.Init(Version, cfg.Environment, sqlDB)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := NewRouter(cfg, log, db, mailer.NewMailService(cfg.Mail))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	case err := <-serverErr:
		if err != nil {
			return errors.Wrap(err, "server failed")
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "graceful shutdown failed")
	}
	log.Info().Msg("shutdown complete")
	return nil
}

// Mailer delivers inquiry notifications and newsletters.
type Mailer interface {
	services.AnfrageNotifier
	services.NewsletterSender
}

// NewRouter builds the gin engine with all routes. The services are built
// on one shared repository. A nil mailer disables outgoing mail.
func NewRouter(cfg *config.Config, log zerolog.Logger, db *gorm.DB, mail Mailer) *gin.Engine {
	repo := repository.New(db)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.JWTIssuer)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(metrics.Middleware())
	r.Use(corsMiddleware(cfg.AllowedOrigins))
	r.Use(limits.RequestSizeLimiter(cfg.MaxBodyBytes))

	r.GET("/healthz", healthHandler(db))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	setupRoutes(r.Group("/api"), routeHandlers{
		events:        handlers.NewEventHandler(services.NewEventService(repo)),
		forms:         handlers.NewFormHandler(services.NewFormService(repo)),
		registrations: handlers.NewRegistrationHandler(services.NewRegistrationService(repo)),
		donations:     handlers.NewDonationHandler(services.NewDonationService(repo)),
		anfragen:      handlers.NewAnfrageHandler(services.NewAnfrageService(repo, mail)),
		newsletters:   handlers.NewNewsletterHandler(services.NewNewsletterService(repo, mail)),
		board:         handlers.NewBoardHandler(services.NewBoardService(repo)),
	}, middleware.JWTAuthMiddleware(jwtManager))

	return r
}

type routeHandlers struct {
	events        *handlers.EventHandler
	forms         *handlers.FormHandler
	registrations *handlers.RegistrationHandler
	donations     *handlers.DonationHandler
	anfragen      *handlers.AnfrageHandler
	newsletters   *handlers.NewsletterHandler
	board         *handlers.BoardHandler
}

func setupRoutes(api *gin.RouterGroup, h routeHandlers, guard gin.HandlerFunc) {
	events := api.Group("/events")
	{
		events.GET("", h.events.ListEvents)
		events.GET("/next-id", h.events.NextEventID)
		events.GET("/:id", h.events.GetEvent)
		events.GET("/:id/formular", h.forms.GetFormSchema)
		events.POST("/:id/anmeldung", h.registrations.Register)
		events.POST("/:id/anmelden", h.registrations.Register)
	}

	eventsProtected := api.Group("/events", guard)
	{
		eventsProtected.POST("", h.events.CreateEvent)
		eventsProtected.PUT("/:id", h.events.UpdateEvent)
		eventsProtected.DELETE("/:id", h.events.DeleteEvent)
		eventsProtected.POST("/:id/formular", h.forms.SetFormSchema)
		eventsProtected.GET("/:id/anmeldungen", h.registrations.ListRegistrations)
		eventsProtected.POST("/:id/anmeldungen", h.registrations.AddManualRegistration)
	}

	api.GET("/spenden", h.donations.GetDonation)
	spenden := api.Group("/spenden", guard)
	{
		spenden.POST("", h.donations.CreateDonation)
		spenden.PUT("", h.donations.UpdateDonation)
		spenden.DELETE("", h.donations.DeleteDonation)
	}

	api.POST("/anfragen", h.anfragen.CreateAnfrage)
	anfragen := api.Group("/anfragen", guard)
	{
		anfragen.GET("", h.anfragen.ListAnfragen)
		anfragen.GET("/:id", h.anfragen.GetAnfrage)
	}

	newsletter := api.Group("/newsletter")
	{
		newsletter.GET("", h.newsletters.ListNewsletters)
		newsletter.POST("/subscribe", h.newsletters.Subscribe)
		newsletter.GET("/unsubscribe", h.newsletters.Unsubscribe)
		newsletter.GET("/:id", h.newsletters.GetNewsletter)
	}

	newsletterProtected := api.Group("/newsletter", guard)
	{
		newsletterProtected.POST("", h.newsletters.CreateNewsletter)
		newsletterProtected.POST("/:id/versand", h.newsletters.SendNewsletter)
		newsletterProtected.GET("/subscribers", h.newsletters.ListSubscribers)
		newsletterProtected.POST("/subscribers/import", h.newsletters.ImportSubscribers)
	}

	api.GET("/vorstand", h.board.ListBoardMembers)
	api.GET("/vorstand/fotos", h.board.ListBoardPhotos)
	vorstand := api.Group("/vorstand", guard)
	{
		vorstand.POST("", h.board.CreateBoardMember)
		vorstand.GET("/logins", h.board.ListBoardLogins)
		vorstand.GET("/me", h.board.GetMyProfile)
		vorstand.PUT("/me", h.board.UpdateMyProfile)
	}
}

// corsMiddleware allows every origin unless an allow list is configured.
func corsMiddleware(origins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if len(origins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AddAllowHeaders("Authorization", middleware.RequestIDHeader)
	corsConfig.AddExposeHeaders(middleware.RequestIDHeader)
	return cors.New(corsConfig)
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("health check failed")
			helpers.RespondWithError(c, http.StatusServiceUnavailable, "Database unavailable.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
