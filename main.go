package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"powerup/config"
	"powerup/cron"
	"powerup/database"
	"powerup/database/repository"
	"powerup/database/repository/memory"
	"powerup/handlers"
	"powerup/routes"
	"powerup/services/admin"
	"powerup/services/booking"
	"powerup/services/notification"
	"powerup/services/trainer"
	"powerup/services/user"
	"powerup/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Storage.
	var (
		repos *repository.Repositories
		store utils.Pinger
	)
	switch config.AppConfig.StorageDriver {
	case "memory":
		mem := memory.NewStore()
		repos, store = mem.Repositories(), mem
		logger.Warn("main: using in-memory storage; data is lost on restart")
	default:
		if err := database.InitDB(ctx); err != nil {
			logger.Fatal("main: failed to connect to database", zap.Error(err))
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = database.CloseDB(closeCtx)
		}()
		repos, store = repository.NewMongoRepositories(), database.MongoPinger{}
		for _, ib := range repos.Indexed() {
			if err := ib.EnsureIndexes(ctx); err != nil {
				logger.Fatal("main: failed to ensure indexes", zap.Error(err))
			}
		}
	}

	// Sweep lock: shared through Redis when reachable, process-local otherwise.
	var (
		locker      cron.Locker = &cron.LocalLocker{}
		redisPinger []utils.Pinger
	)
	if lockClient, err := utils.NewLockClient(ctx); err != nil {
		logger.Warn("main: redis unavailable, sweep lock is process-local", zap.Error(err))
	} else {
		defer lockClient.Close()
		locker = &cron.RedisLocker{Client: lockClient}
		redisPinger = append(redisPinger, utils.RedisPinger{Client: lockClient})
	}

	// Services.
	notificationService := notification.NewDefaultNotificationService(repos, logger.Named("notification"))
	var pushWorker *asynq.Server
	if config.AppConfig.PushEnabled {
		fcm, err := utils.FirebaseMessaging(ctx)
		if err != nil {
			logger.Fatal("main: failed to initialize firebase messaging", zap.Error(err))
		}
		queue := asynq.NewClient(utils.QueueRedisOpt())
		defer queue.Close()
		notificationService.Queue = queue
		notificationService.Push = fcm
		pushWorker = cron.InitPushWorker(notificationService, logger)
	}

	userService := user.NewDefaultUserService(repos.Users)
	adminService := admin.NewDefaultAdminService(repos, logger.Named("admin"))

	trainerService, err := trainer.NewDefaultTrainerService(repos, notificationService, logger.Named("trainer"))
	if err != nil {
		logger.Fatal("main: failed to initialize trainer service", zap.Error(err))
	}
	bookingService, err := booking.NewDefaultBookingService(repos, notificationService, config.SweepLocation(), logger.Named("booking"))
	if err != nil {
		logger.Fatal("main: failed to initialize booking service", zap.Error(err))
	}

	// Overdue sweep.
	sweeper := &cron.Sweeper{
		Finalizer: bookingService,
		Locker:    locker,
		LockTTL:   config.AppConfig.SweepLockTTL,
		Logger:    logger.Named("sweep"),
	}
	scheduler, err := cron.StartSweepScheduler(config.AppConfig.SweepSchedule, config.SweepLocation(), sweeper, logger)
	if err != nil {
		logger.Fatal("main: failed to schedule sweep", zap.Error(err))
	}

	utils.StartHealthMonitor(ctx, store, redisPinger)

	// HTTP.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	handlerBundle := handlers.NewHandlerBundle(
		adminService,
		trainerService,
		bookingService,
		notificationService,
		sweeper,
		utils.GetHealthStatus,
	)
	routes.RegisterRoutes(router, handlerBundle, routes.NewGuards(userService, trainerService), config.AppConfig.MaxRequestsPerMin)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	<-scheduler.Stop().Done()
	if pushWorker != nil {
		pushWorker.Shutdown()
	}
	stop()

	logger.Sugar().Info("main: server stopped gracefully")
}
