package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"repair/cmd"
	httpin "repair/internal/adapters/in/http"
	"repair/internal/adapters/out/codestore"
	"repair/internal/adapters/out/gormdb"
	"repair/internal/adapters/out/jwttoken"
	"repair/internal/adapters/out/kafka"
	"repair/internal/adapters/out/sms"
	"repair/internal/core/ports"
	"repair/internal/jobs"
	"repair/internal/pkg/metrics"
	"repair/internal/pkg/tracing"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

const (
	serviceName     = "repair"
	shutdownTimeout = 10 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	if err := run(logger); err != nil {
		logger.Error("service stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	configs, err := cmd.ConfigFromEnv(os.Getenv)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	db, err := gormdb.Open(gormdb.Options{Driver: configs.DBDriver, DSN: configs.DSN(), Log: logger})
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	if err = gormdb.Migrate(db); err != nil {
		return err
	}

	tp := tracing.Init(serviceName)
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Warn("tracer shutdown", "error", err)
		}
	}()

	m := metrics.New()
	store := newCodeStore(configs, m, logger)
	defer store.Close()

	tokens, err := jwttoken.NewService(configs.JWTSecret, configs.TokenTTL)
	if err != nil {
		return err
	}

	events, closeEvents := newEventPublisher(configs, m, logger)
	defer closeEvents()

	app := cmd.NewCompositionRoot(configs, db, cmd.Adapters{
		CodeStore: store,
		Notifier:  sms.NewInstrumentedNotifier(newNotifier(configs), m.CodesSent),
		Issuer:    tokens,
		Verifier:  tokens,
		Events:    events,
	}, logger)

	jobManager := jobs.NewJobManager(logger,
		jobs.NewCodeStoreProbeJob(store, configs.CodeProbeSchedule, configs.CacheTimeout, logger),
	)
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	doc, err := httpin.LoadOpenAPI()
	if err != nil {
		return err
	}
	e, err := httpin.NewServer(app.HTTPHandlers(), logger).Router(httpin.RouterOptions{Metrics: m, OpenAPI: doc})
	if err != nil {
		return err
	}
	e.Logger.SetLevel(log.WARN)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server started", "port", configs.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("http server stopping")
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newCodeStore puts Redis in front of process memory when REDIS_ADDR is set.
func newCodeStore(configs cmd.Config, m *metrics.Metrics, logger *slog.Logger) *codestore.Store {
	memory := codestore.NewMemoryTier(codestore.WithSweepInterval(configs.CodeSweepInterval))
	var primary codestore.Primary
	if configs.RedisAddr != "" {
		client := codestore.NewRedisClient(configs.RedisAddr, configs.RedisPassword, configs.RedisDB, configs.CacheTimeout)
		primary = codestore.NewRedisTier(client, configs.CacheTimeout)
	} else {
		logger.Warn("REDIS_ADDR is empty, verification codes live in process memory only")
	}
	return codestore.NewStore(primary, memory, logger,
		codestore.WithMetrics(m.CodeStoreFailover, m.CodeStorePrimary))
}

func newNotifier(configs cmd.Config) ports.Notifier {
	if configs.SMSAPIURL == "" {
		return sms.NewConsoleNotifier(os.Stdout)
	}
	return sms.NewGatewayNotifier(configs.SMSAPIURL, configs.SMSAPIKey, sms.DefaultTimeout)
}

func newEventPublisher(configs cmd.Config, m *metrics.Metrics, logger *slog.Logger) (ports.OrderEventPublisher, func()) {
	var next ports.OrderEventPublisher = kafka.NewLogPublisher(logger)
	closeFn := func() {}
	if brokers := configs.KafkaBrokers(); len(brokers) > 0 {
		publisher := kafka.NewOrderEventsPublisher(kafka.NewWriter(brokers, configs.KafkaOrderChangedTopic))
		next = publisher
		closeFn = func() {
			if err := publisher.Close(); err != nil {
				logger.Warn("closing kafka writer", "error", err)
			}
		}
	}
	return kafka.NewInstrumentedPublisher(next, m.OrderTransitions, m.EventsPublished), closeFn
}
