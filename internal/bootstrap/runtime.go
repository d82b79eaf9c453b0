// Package bootstrap wires the configured stores and event publisher.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"postboard/internal/config"
	"postboard/internal/database"
	"postboard/internal/middleware"
	"postboard/internal/notifications"
	"postboard/internal/repository"
	"postboard/internal/store"
	"postboard/internal/store/mongostore"
)

// Runtime holds the backends selected by configuration.
type Runtime struct {
	Posts     store.PostStore
	Profiles  store.ProfileStore
	Publisher notifications.Publisher

	closers []func(context.Context) error
}

// InitRuntime connects the store chosen by STORE_DRIVER and the publisher
// chosen by EVENTS_DRIVER. An unreachable Redis downgrades to no events.
func InitRuntime(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	rt := &Runtime{}

	if err := rt.initStore(ctx, cfg); err != nil {
		_ = rt.Close(context.Background())
		return nil, err
	}
	rt.initPublisher(cfg)
	if cfg.EventsLogTap {
		if err := rt.startEventTap(notifications.LogEvent); err != nil {
			middleware.Logger.Warn("post event log tap disabled", slog.String("error", err.Error()))
		}
	}

	return rt, nil
}

func (rt *Runtime) initStore(ctx context.Context, cfg *config.Config) error {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := database.Connect(cfg)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		rt.Posts = repository.NewPostRepository(db)
		rt.Profiles = repository.NewProfileRepository(db)
		rt.closers = append(rt.closers, func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
	default:
		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return err
		}
		rt.closers = append(rt.closers, client.Disconnect)

		db := client.Database(cfg.MongoDatabase)
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		rt.Posts = mongostore.NewPostStore(db)
		rt.Profiles = mongostore.NewProfileStore(db)
	}
	return nil
}

func (rt *Runtime) initPublisher(cfg *config.Config) {
	switch cfg.EventsDriver {
	case config.EventsRedis:
		client, err := notifications.NewRedisClient(cfg.RedisURL)
		if err != nil {
			middleware.Logger.Warn("Redis unavailable, post events disabled", slog.String("error", err.Error()))
			rt.Publisher = notifications.Noop{}
			return
		}
		rt.Publisher = notifications.NewNotifier(client)
	case config.EventsKafka:
		rt.Publisher = notifications.NewKafkaPublisher(cfg.Brokers(), cfg.KafkaTopic)
	default:
		rt.Publisher = notifications.Noop{}
	}
	rt.closers = append(rt.closers, func(context.Context) error { return rt.Publisher.Close() })
}

// startEventTap subscribes onEvent to the Redis post channel. Only the Redis
// publisher can be tapped; other drivers are left alone.
func (rt *Runtime) startEventTap(onEvent func(payload string)) error {
	n, ok := rt.Publisher.(*notifications.Notifier)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := n.Subscribe(ctx, onEvent); err != nil {
		cancel()
		return err
	}
	rt.closers = append(rt.closers, func(context.Context) error {
		cancel()
		return nil
	})
	return nil
}

// Close releases every backend in reverse order of acquisition.
func (rt *Runtime) Close(ctx context.Context) error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}
