package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campusmate/reminder-api/api/swagger"
	"github.com/campusmate/reminder-api/internal/handler"
	"github.com/campusmate/reminder-api/internal/middleware"
	"github.com/campusmate/reminder-api/internal/repository"
	"github.com/campusmate/reminder-api/internal/service"
	"github.com/campusmate/reminder-api/internal/taskqueue"
	"github.com/campusmate/reminder-api/pkg/cache"
	"github.com/campusmate/reminder-api/pkg/config"
	"github.com/campusmate/reminder-api/pkg/database"
	"github.com/campusmate/reminder-api/pkg/logger"
	corsmiddleware "github.com/campusmate/reminder-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusmate/reminder-api/pkg/middleware/requestid"
	"github.com/campusmate/reminder-api/pkg/push"
)

// @title CampusMate Reminder API
// @version 1.0.0
// @description Class, task and advising reminder scheduler
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		logr.Sugar().Fatalw("invalid operational timezone", "timezone", cfg.Scheduler.Timezone, "error", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Stores.
	users := repository.NewUserRepository(db)
	exceptions := repository.NewExceptionRepository(db)
	tasks := repository.NewTaskRepository(db)
	advising := repository.NewAdvisingRepository(db)
	notifications := repository.NewNotificationRepository(db)

	// Queue and delivery.
	queue := taskqueue.NewRedisQueue(redisClient, cfg.Queue.Name)
	sender := push.NewHTTPSender(cfg.Push)
	dispatcher := taskqueue.NewDispatcher(queue, sender, notifications, taskqueue.DispatcherConfig{
		PollInterval: cfg.Queue.PollInterval,
		Logger:       logr,
	})
	dispatcher.Start(ctx)
	defer dispatcher.Stop()

	// Core services.
	validate := validator.New()
	metrics := service.NewMetricsService()
	policy := service.NewReminderPolicy(cfg.Scheduler, loc)
	resolver := service.NewResolver(cfg.Scheduler.StrictParse, logr)
	dispatch := service.NewDispatchService(queue, logr)
	runService := service.NewSchedulerRunService(users, exceptions, tasks, dispatch, queue,
		resolver, policy, cfg.Scheduler.Concurrency, logr, metrics)
	taskService := service.NewTaskService(tasks, users, dispatch, policy, validate, logr)
	advisingService := service.NewAdvisingService(advising, users, notifications, sender, dispatch, policy, validate, logr)
	exceptionService := service.NewExceptionService(exceptions, validate, logr)
	userService := service.NewUserService(users, logr)

	// Nightly run targets tomorrow so reminders are queued before midnight.
	nightly := cron.New(cron.WithLocation(loc))
	if _, err := nightly.AddFunc(cfg.Scheduler.NightlyCron, func() {
		if _, err := runService.RunForAllUsers(ctx, service.RunTargetTomorrow); err != nil {
			logr.Sugar().Errorw("nightly scheduler run failed", "error", err)
		}
	}); err != nil {
		logr.Sugar().Fatalw("invalid nightly cron expression", "cron", cfg.Scheduler.NightlyCron, "error", err)
	}
	nightly.Start()
	defer nightly.Stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	adminHandler := handler.NewAdminHandler(runService, cfg.Admin.Secret)
	taskHandler := handler.NewTaskHandler(taskService)
	advisingHandler := handler.NewAdvisingHandler(advisingService)
	exceptionHandler := handler.NewExceptionHandler(exceptionService)
	userHandler := handler.NewUserHandler(userService)

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/admin/schedule/run", adminHandler.Run)
		api.POST("/admin/schedule/reset", adminHandler.Reset)
		api.POST("/users/:id/tasks", taskHandler.Create)
		api.DELETE("/users/:id/tasks/:taskId", taskHandler.Complete)
		api.POST("/users/:id/exceptions", exceptionHandler.Create)
		api.PUT("/users/:id/timetable", userHandler.ReplaceTimetable)
		api.PUT("/users/:id/advising/:semester", advisingHandler.Assign)
		api.GET("/users/:id/advising/:semester", advisingHandler.Get)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "timezone", cfg.Scheduler.Timezone)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown failed", "error", err)
	}
}
