package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"scorebet/chain"
	"scorebet/config"
	"scorebet/database"
	"scorebet/indexer"
	"scorebet/infrastructure"
	"scorebet/infrastructure/observability"
	"scorebet/repository"
)

func main() {
	replayPath := flag.String("replay", "", "path to a JSON block file to replay")
	flag.Parse()

	cfg := config.Load()

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	}

	ctx := context.Background()

	bus := infrastructure.NewEventBus()

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	bus.Subscribe(metrics)

	healthFn := observability.HealthFunc(nil)
	if cfg.DatabaseURL != "" {
		if err := database.RunMigrationsWithURL(cfg.DatabaseURL); err != nil {
			log.WithError(err).Fatal("failed to migrate index database")
		}
		db, err := database.NewConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to index database")
		}
		defer db.Close()

		bus.Subscribe(indexer.NewIndexer(indexer.NewRepository(db)))
		healthFn = func(ctx context.Context) error { return db.Ping(ctx) }
		log.Info("postgres index enabled")
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher := infrastructure.NewKafkaEventPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer publisher.Close()
		bus.Subscribe(publisher)
		log.WithField("topic", cfg.KafkaTopic).Info("kafka event stream enabled")
	}

	store := repository.NewMemoryStore()
	clock := chain.NewHeadTimeClock(time.Unix(0, 0).UTC())
	accounts := infrastructure.NewStaticAccountService(cfg.KnownAccounts, cfg.BettingModerators)
	processor := chain.NewProcessor(store, clock, accounts, bus)

	metricsServer := observability.StartMetricsServer(cfg.MetricsAddr, healthFn)
	defer metricsServer.Close()

	if *replayPath != "" {
		file, err := os.Open(*replayPath)
		if err != nil {
			log.WithError(err).Fatal("failed to open replay file")
		}
		blocks, err := chain.ReadBlocks(file)
		file.Close()
		if err != nil {
			log.WithError(err).Fatal("failed to read replay file")
		}
		if err := processor.Replay(ctx, blocks); err != nil {
			log.WithError(err).Fatal("replay failed")
		}
		return
	}

	log.WithField("metrics", cfg.MetricsAddr).Info("scorebetd running")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("shutting down")
}
