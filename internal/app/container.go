package app

import (
	"context"
	"errors"
	"fmt"

	"job-board/internal/config"
	"job-board/internal/database"
	"job-board/internal/database/migration"
	dbmongo "job-board/internal/database/mongo"
	dbpostgres "job-board/internal/database/postgres"
	"job-board/internal/domain/job"
	"job-board/internal/domain/user"
	"job-board/internal/infrastructure/cache"
	"job-board/internal/infrastructure/messaging"
	"job-board/internal/repository"
	"job-board/internal/ws"

	"go.uber.org/zap"
)

// Container owns every long-lived resource the server needs.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB    database.DB
	Mongo *dbmongo.Client
	Cache *cache.Redis
	NATS  *messaging.NATSPublisher
	Hub   *ws.Hub

	Jobs   job.Repository
	Users  user.Repository
	Events job.EventPublisher

	stopHub context.CancelFunc
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (_ *Container, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Container{Config: cfg, Logger: logger}
	defer func() {
		if err != nil {
			_ = c.Close(context.Background())
		}
	}()

	db, err := dbpostgres.Connect(ctx, cfg.Database, cfg.App.AppName, logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	c.DB = db
	if err := (migration.Runner{}).Run(ctx, db.SQLDB()); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	c.Users = repository.NewPostgresUserRepository(db)

	switch cfg.App.JobStore {
	case config.JobStoreMemory:
		logger.Warn("using in-memory job store; postings are lost on restart")
		c.Jobs = repository.NewMemoryJobRepository()
	default:
		mc, err := dbmongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		c.Mongo = mc
		jobs := repository.NewMongoJobRepository(mc.Database())
		if err := jobs.EnsureIndexes(ctx); err != nil {
			logger.Warn("ensure job indexes failed", zap.Error(err))
		}
		c.Jobs = jobs
	}

	c.Cache = cache.NewRedis(ctx, cfg.Redis, logger)

	hubCtx, stop := context.WithCancel(context.Background())
	c.Hub = ws.NewHub(logger)
	c.stopHub = stop
	go c.Hub.Run(hubCtx)

	sinks := messaging.Fanout{c.Hub}
	if cfg.NATS.Enabled() {
		pub, err := messaging.NewNATSPublisher(cfg.NATS, cfg.App.AppName, logger)
		if err != nil {
			return nil, err
		}
		c.NATS = pub
		sinks = append(sinks, pub)
	}
	c.Events = sinks

	return c, nil
}

func (c *Container) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.stopHub != nil {
		c.stopHub()
		<-c.Hub.Done()
	}
	if c.NATS != nil {
		c.NATS.Close()
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.Mongo != nil {
		errs = append(errs, c.Mongo.Close(ctx))
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
