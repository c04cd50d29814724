package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/dataverse/internal/config"
	"github.com/umalmyha/dataverse/internal/model"
	"github.com/umalmyha/dataverse/internal/repository"
	"github.com/umalmyha/dataverse/internal/service"
	"github.com/umalmyha/dataverse/internal/tracker"
	"github.com/umalmyha/dataverse/internal/transport"
	"github.com/umalmyha/dataverse/internal/validation"
)

const DefaultRedisConnectTimeout = 30 * time.Second
const DefaultRedisPingTimeout = 3 * time.Second

func main() {
	logger := logrus.StandardLogger()

	cfg, err := config.Build()
	if err != nil {
		logger.Fatalf("failed to build configuration - %v", err)
	}

	if err := cfg.LogCfg.Apply(logger); err != nil {
		logger.Fatalf("failed to configure logging - %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	trk, closeTracker, err := runTracker(ctx, cfg.TrackerCfg, logger)
	if err != nil {
		logger.Fatal(err.Error())
	}
	defer closeTracker()

	if err := start(ctx, cfg, trk, logger); err != nil {
		logger.Fatal(err.Error())
	}
}

func runTracker(ctx context.Context, cfg config.TrackerCfg, logger logrus.FieldLogger) (tracker.Tracker, func(), error) {
	if !cfg.UseRedis() {
		logger.Info("runs are tracked in memory")
		return tracker.NewMemoryTracker(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ping := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, DefaultRedisPingTimeout)
		defer cancel()
		return client.Ping(pingCtx).Err()
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = DefaultRedisConnectTimeout

	notify := func(err error, next time.Duration) {
		logger.Warnf("redis is not reachable, retrying in %s - %v", next, err)
	}

	if err := backoff.RetryNotify(ping, backoff.WithContext(policy, ctx), notify); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("didn't get response from redis after sending ping request - %w", err)
	}

	logger.WithField("addr", cfg.RedisAddr).Info("runs are tracked in redis")
	return tracker.NewRedisTracker(client, cfg.TimeToLive), func() { _ = client.Close() }, nil
}

func start(ctx context.Context, cfg config.Config, trk tracker.Tracker, logger *logrus.Logger) error {
	v, err := validation.New()
	if err != nil {
		return err
	}

	client := transport.NewClient(cfg.DataverseCfg.Timeout, logger)
	rpsCfg := cfg.RepositoryConfig()

	manager := service.NewEntityManager(
		repository.NewAccountRepository(client, rpsCfg),
		repository.NewContactRepository(client, rpsCfg),
		repository.NewIncidentRepository(client, rpsCfg),
		trk,
		v,
		logger,
	)

	token := cfg.DataverseCfg.Token

	if err := manager.CleanupPending(ctx, token); err != nil {
		logger.Warnf("failed to clean up pending runs - %v", err)
	}

	run, runErr := manager.Run(ctx, service.DefaultScenario(), token)
	if run != nil {
		logger.WithFields(logrus.Fields{
			"accountId":      run.Account.ID,
			"contactId":      run.Contact.ID,
			"contactEmail":   run.Contact.Email,
			"primaryContact": primaryContactName(run.Account),
		}).Info("run state")
		if run.Incident != nil {
			logger.Infof("incident:\n%s", run.Incident)
		}
	}

	if runErr == nil {
		snapshot, err := manager.ListAll(ctx, token)
		if err != nil {
			logger.Warnf("failed to list entities - %v", err)
		} else {
			logger.WithFields(logrus.Fields{
				"accounts":  len(snapshot.Accounts),
				"contacts":  len(snapshot.Contacts),
				"incidents": len(snapshot.Incidents),
			}).Info("entities visible")
		}
	}

	if run != nil && !cfg.RunCfg.KeepEntities {
		// cancellation must not leave created entities behind
		cleanupCtx, cancel := context.WithTimeout(context.Background(), cfg.DataverseCfg.Timeout)
		defer cancel()

		if err := manager.Cleanup(cleanupCtx, run.ID, token); err != nil {
			logger.Errorf("failed to clean up run %s - %v", run.ID, err)
		}
	}

	if runErr != nil {
		return fmt.Errorf("run failed - %w", runErr)
	}
	return nil
}

func primaryContactName(a model.Account) string {
	if a.PrimaryContact == nil {
		return ""
	}
	return a.PrimaryContact.FullName
}
