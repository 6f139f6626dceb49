package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/fitplan/internal"
	"github.com/2beens/fitplan/internal/config"
	"github.com/2beens/fitplan/internal/logging"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	fmt.Println("starting plan worker ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	metricsPort := flag.Int("metrics-port", 2113, "port of the worker metrics server")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Printf("no .env file loaded: %s\n", err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}
	cfg.MetricsPort = *metricsPort

	flushLogs := logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "fitplan-plan-worker",
	})
	defer flushLogs()

	openAIAPIKey := os.Getenv("OPENAI_API_KEY")
	if openAIAPIKey == "" {
		log.Fatalln("openai api key not set. use OPENAI_API_KEY")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	planWorker, err := internal.NewPlanWorker(ctx, internal.NewPlanWorkerParams{
		Config:                  cfg,
		RedisPassword:           os.Getenv("FIT_REDIS_PASS"),
		PostgresPassword:        os.Getenv("FIT_POSTGRES_PASS"),
		OpenAIAPIKey:            openAIAPIKey,
		HoneycombTracingEnabled: os.Getenv("HONEYCOMB_ENABLED") == "true",
	})
	if err != nil {
		log.Fatalf("new plan worker: %s", err)
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return planWorker.Run(gCtx)
	})
	g.Go(func() error {
		select {
		case receivedSig := <-chOsInterrupt:
			log.Warnf("signal [%s] received, stopping plan worker ...", receivedSig)
			cancel()
		case <-gCtx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Errorf("plan worker: %s", err)
	}

	if err := planWorker.Shutdown(); err != nil {
		log.Errorf("plan worker shutdown: %s", err)
	}
	log.Infoln("plan worker stopped")
}
