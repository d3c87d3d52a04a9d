package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"sportfolio/backend/internal/cache"
	"sportfolio/backend/internal/config"
	"sportfolio/backend/internal/domain/approval"
	"sportfolio/backend/internal/domain/evaluation"
	"sportfolio/backend/internal/domain/event"
	"sportfolio/backend/internal/domain/facility"
	"sportfolio/backend/internal/domain/membership"
	"sportfolio/backend/internal/domain/notifications"
	"sportfolio/backend/internal/domain/organization"
	"sportfolio/backend/internal/domain/subscription"
	"sportfolio/backend/internal/domain/user"
	"sportfolio/backend/internal/firebase"
	apihttp "sportfolio/backend/internal/http"
	"sportfolio/backend/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	app, err := firebase.NewApp(ctx, cfg)
	if err != nil {
		logger.Fatal("firebase app init failed", zap.Error(err))
	}

	authClient, err := firebase.NewAuthClient(ctx, app)
	if err != nil {
		logger.Fatal("firebase auth client init failed", zap.Error(err))
	}

	fs, err := firebase.NewFirestore(ctx, app)
	if err != nil {
		logger.Fatal("firestore init failed", zap.Error(err))
	}
	defer fs.Close()

	// Cache (optional - only if configured)
	var c *cache.Cache
	if cfg.RedisAddr != "" {
		c = cache.New(cfg.RedisAddr, cfg.RedisPassword, logger)
		if err := c.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, running without cache", zap.Error(err))
			c = nil
		} else {
			defer c.Close()
			logger.Info("cache initialized", zap.String("addr", cfg.RedisAddr))
		}
	} else {
		logger.Info("REDIS_ADDR not set, running without cache")
	}

	// Repositories
	userRepo := user.NewRepo(fs.Client)
	orgRepo := organization.NewRepo(fs.Client)

	// Services
	notificationsSvc := notifications.NewService(fs.Client)
	approvalSvc := approval.NewService(fs.Client, notificationsSvc, c, logger)
	userSvc := user.NewService(fs.Client, notificationsSvc, logger)
	orgSvc := organization.NewService(orgRepo, userRepo)
	membershipSvc := membership.NewService(fs.Client, orgRepo, notificationsSvc, c, logger)
	facilitySvc := facility.NewService(fs.Client)
	eventSvc := event.NewService(fs.Client)
	evaluationSvc := evaluation.NewService(fs.Client)

	// Stripe service (optional - only if configured)
	var subscriptionSvc *subscription.Service
	stripeCfg := subscription.LoadConfig()
	if stripeCfg.SecretKey != "" {
		subscriptionSvc = subscription.NewService(fs.Client, stripeCfg, logger)
		logger.Info("stripe service initialized")
	} else {
		logger.Info("STRIPE_SECRET_KEY not set, subscription features disabled")
	}

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Cfg:              cfg,
		Logger:           logger,
		AuthClient:       authClient,
		FirestoreClient:  fs.Client,
		UserRepo:         userRepo,
		UserSvc:          userSvc,
		ApprovalSvc:      approvalSvc,
		OrgRepo:          orgRepo,
		OrgSvc:           orgSvc,
		MembershipSvc:    membershipSvc,
		FacilitySvc:      facilitySvc,
		EventSvc:         eventSvc,
		EvaluationSvc:    evaluationSvc,
		NotificationsSvc: notificationsSvc,
		SubscriptionSvc:  subscriptionSvc,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	go func() {
		logger.Info("API listening", zap.String("port", cfg.Port), zap.String("project", cfg.ProjectID))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down...")
	_ = srv.Shutdown(ctxShutdown)
}
