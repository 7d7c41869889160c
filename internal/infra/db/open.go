package db

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ConnectionConfig holds MongoDB connection and pool configuration.
type ConnectionConfig struct {
	URI             string
	Database        string
	AppName         string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// DefaultConnectionConfig returns the default connection configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		URI:             "mongodb://localhost:27017",
		Database:        "shiba-beta",
		AppName:         "content-api",
		MaxPoolSize:     50,               // Maximum number of pooled connections
		MinPoolSize:     0,                // Connections are opened lazily
		MaxConnIdleTime: 30 * time.Minute, // Maximum idle time of a connection
		ConnectTimeout:  10 * time.Second, // Connect + initial ping
	}
}

func clientOptions(cfg ConnectionConfig) *options.ClientOptions {
	return options.Client().
		ApplyURI(cfg.URI).
		SetAppName(cfg.AppName).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)
}

// Open connects to MongoDB, verifies the connection with a ping and returns
// the client together with the configured database handle.
// The client is process-wide and must be disconnected on shutdown.
func Open(ctx context.Context, cfg ConnectionConfig) (*mongo.Client, *mongo.Database, error) {
	if cfg.URI == "" {
		return nil, nil, fmt.Errorf("mongo uri not set")
	}
	if cfg.Database == "" {
		return nil, nil, fmt.Errorf("mongo database name not set")
	}

	opts := clientOptions(cfg)
	if err := opts.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid mongo options: %w", err)
	}

	slog.Info("mongodb connection pool configured",
		slog.String("uri", RedactURI(cfg.URI)),
		slog.String("database", cfg.Database),
		slog.Uint64("max_pool_size", cfg.MaxPoolSize),
		slog.Uint64("min_pool_size", cfg.MinPoolSize),
		slog.Duration("max_conn_idle_time", cfg.MaxConnIdleTime))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongodb: %w", err)
	}

	// Verify connection
	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongodb: %w", err)
	}

	slog.Info("mongodb connection established successfully")
	return client, client.Database(cfg.Database), nil
}

// Close disconnects the client, waiting at most timeout for in-use connections.
func Close(client *mongo.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// RedactURI masks the password of a connection string so it can be logged.
func RedactURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.User == nil {
		return uri
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
