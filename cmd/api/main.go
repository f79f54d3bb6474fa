package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"campusevents/config"
	"campusevents/internal/adapters/auth"
	"campusevents/internal/adapters/email"
	"campusevents/internal/adapters/storage"
	delivery "campusevents/internal/delivery/http"
	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/repository/mongodb"
	"campusevents/internal/repository/postgres"
	"campusevents/internal/services"
)

const (
	serviceTimeout   = 5 * time.Second
	signedURLExpiry  = time.Hour
	shutdownDeadline = 10 * time.Second
)

// @title Campus Events API
// @version 1.0
// @description Event listing and publishing backend for the campus app.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(cfg.Environment)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("postgres open: %v", err)
	}
	defer db.Close()
	pingCtx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
	if err := db.PingContext(pingCtx); err != nil {
		cancel()
		log.Fatalf("postgres ping: %v", err)
	}
	cancel()

	mongoClient, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(ctx)
	}()
	mongoDB := mongoClient.Database(cfg.MongoDatabase)

	loc, err := time.LoadLocation(cfg.EventTimezone)
	if err != nil {
		log.Fatalf("load timezone %q: %v", cfg.EventTimezone, err)
	}

	hasher := auth.NewBcryptHasher(0)
	tokens := auth.NewJWTSigner(cfg.JWTSecret)
	store := storage.NewObjectStore(storage.S3Config{
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		Bucket:          cfg.S3Bucket,
	})
	signer, err := storage.NewURLSigner(storage.SignerConfig{
		Domain:        cfg.CDNDomain,
		KeyPairID:     cfg.CDNKeyPairID,
		PrivateKeyPEM: cfg.CDNPrivateKey,
		Expiry:        signedURLExpiry,
	})
	if err != nil {
		log.Fatalf("url signer: %v", err)
	}
	mailer := email.NewMailer(email.MailerConfig{
		Provider:        cfg.EmailProvider,
		FromAddress:     cfg.EmailFrom,
		FromName:        cfg.EmailFromName,
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
	})

	eventRepo := postgres.NewEventRepository(db)
	publisherRepo := postgres.NewPublisherRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(mongoDB)

	eventSvc := services.NewEventService(eventRepo, publisherRepo, store, signer, loc, serviceTimeout, logger)
	authSvc := services.NewAuthService(publisherRepo, hasher, tokens, mailer, serviceTimeout, logger)
	profileSvc := services.NewProfileService(publisherRepo, eventRepo, signer, loc, serviceTimeout)
	notificationSvc := services.NewNotificationService(notificationRepo, serviceTimeout)

	mux := delivery.NewRouter(delivery.RouterConfig{
		Logger:                 logger,
		Verifier:               tokens,
		EventController:        controllers.NewEventController(logger, eventSvc),
		AuthController:         controllers.NewAuthController(logger, authSvc),
		ProfileController:      controllers.NewProfileController(logger, profileSvc),
		NotificationController: controllers.NewNotificationController(logger, notificationSvc),
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	handler := limiter.Middleware(middleware.CORS(cfg.FrontendOrigin, middleware.LoggingMiddleware(logger, mux)))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownDeadline)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
