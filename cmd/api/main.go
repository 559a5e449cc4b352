package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/fleetops/fleet-scheduler/internal/calendar"
	"github.com/fleetops/fleet-scheduler/internal/config"
	dbpkg "github.com/fleetops/fleet-scheduler/internal/db"
	"github.com/fleetops/fleet-scheduler/internal/logging"
	"github.com/fleetops/fleet-scheduler/internal/routes"
	"github.com/fleetops/fleet-scheduler/internal/worker"
)

func main() {

	cfg := config.Load()
	log := logging.New(cfg)

	db := dbpkg.NewDB(cfg)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, falling back to in-process queue")
			redisClient = nil
		}
	}

	var calClient calendar.Client = calendar.Noop{}
	if cfg.CalendarSyncURL != "" {
		calClient = calendar.NewHTTPClient(cfg.CalendarSyncURL)
	}

	calWorker := worker.NewCalendarWorker(db, calClient, redisClient, worker.RetryPolicy{
		MaxRetries:    5,
		InitialDelay:  2 * time.Second,
		MaxDelay:      time.Minute,
		BackoffFactor: 2,
	}, log)
	go calWorker.Start(context.Background())

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log, calWorker)

	log.Info().Str("addr", cfg.Addr()).Msg("server listening")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
