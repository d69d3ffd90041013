package mongo

import (
	"context"
	"errors"
	"strings"

	"job-board/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, cfg config.MongoConfig) (*Client, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, errors.New("mongo: empty URI")
	}

	opts := options.Client().ApplyURI(uri)
	if cfg.Timeout > 0 {
		opts.SetTimeout(cfg.Timeout)
		opts.SetConnectTimeout(cfg.Timeout)
		opts.SetServerSelectionTimeout(cfg.Timeout)
	}

	c, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := c.Ping(ctx, readpref.Primary()); err != nil {
		_ = c.Disconnect(context.Background())
		return nil, err
	}

	return &Client{client: c, db: c.Database(cfg.Database)}, nil
}

func (c *Client) Database() *mongo.Database {
	if c == nil {
		return nil
	}
	return c.db
}

func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errors.New("mongo: not connected")
	}
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Disconnect(ctx)
}
