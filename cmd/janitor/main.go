// The janitor purges expired sessions and dead auth tokens on a schedule.
// It runs as its own process so purges keep happening across API restarts.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"translationportal/internal/infra"
	"translationportal/internal/sqlinline"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("janitor: failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)

	schedule := os.Getenv("JANITOR_SCHEDULE")
	if schedule == "" {
		schedule = "@every 15m"
	}

	c := cron.New()
	_, err = c.AddFunc(schedule, func() {
		if tag, err := runner.Exec(ctx, sqlinline.QPurgeExpiredSessions); err != nil {
			logger.Error().Err(err).Msg("janitor: purge sessions failed")
		} else {
			logger.Info().Int64("rows", tag.RowsAffected()).Msg("janitor: purged expired sessions")
		}
		if tag, err := runner.Exec(ctx, sqlinline.QPurgeDeadAuthTokens); err != nil {
			logger.Error().Err(err).Msg("janitor: purge auth tokens failed")
		} else {
			logger.Info().Int64("rows", tag.RowsAffected()).Msg("janitor: purged dead auth tokens")
		}
	})
	if err != nil {
		logger.Fatal().Err(err).Str("schedule", schedule).Msg("janitor: invalid schedule")
	}

	c.Start()
	logger.Info().Str("schedule", schedule).Msg("janitor: started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	<-c.Stop().Done()
	logger.Info().Msg("janitor: stopped")
}
