package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrMissingURI is returned when no MongoDB connection string is configured.
var ErrMissingURI = errors.New("missing MONGODB_URI environment variable")

const connectTimeout = 10 * time.Second

// Connector owns the process-wide MongoDB client. The client is created on first use;
// concurrent first callers share a single in-flight connect, and a failed connect is
// not cached so the next caller tries again.
type Connector struct {
	uri    string
	dbName string
	logger *zap.Logger

	// dial is swapped out in tests.
	dial func(ctx context.Context, uri string) (*mongo.Client, error)

	group  singleflight.Group
	mu     sync.RWMutex
	client *mongo.Client
}

// NewConnector creates a Connector for the given URI and database name.
func NewConnector(uri, dbName string, logger *zap.Logger) *Connector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Connector{
		uri:    uri,
		dbName: dbName,
		logger: logger,
		dial:   dialMongo,
	}
}

// dialMongo connects and pings MongoDB.
func dialMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

func (c *Connector) cached() *mongo.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}

// Client returns the shared client, connecting on first use.
func (c *Connector) Client(ctx context.Context) (*mongo.Client, error) {
	if client := c.cached(); client != nil {
		return client, nil
	}
	if c.uri == "" {
		return nil, ErrMissingURI
	}

	v, err, _ := c.group.Do("connect", func() (interface{}, error) {
		if client := c.cached(); client != nil {
			return client, nil
		}
		// The connect outlives the request that triggered it.
		client, err := c.dial(context.WithoutCancel(ctx), c.uri)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.client = client
		c.mu.Unlock()
		c.logger.Info("Connected to MongoDB successfully", zap.String("database", c.dbName))
		return client, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*mongo.Client), nil
}

// Database returns the configured database handle, connecting on first use.
func (c *Connector) Database(ctx context.Context) (*mongo.Database, error) {
	client, err := c.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(c.dbName), nil
}

// Ping checks the connection, establishing it if needed.
func (c *Connector) Ping(ctx context.Context) error {
	client, err := c.Client(ctx)
	if err != nil {
		return err
	}
	return client.Ping(ctx, nil)
}

// Disconnect closes the client if one was established.
func (c *Connector) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	client := c.client
	c.client = nil
	c.mu.Unlock()
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
