// Package mongo is the document-store backend: one collection per account
// kind plus helper_recommendations, user_actions and an id counters collection.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
	"github.com/SoftGuar/Account-Management-Service/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// NewStores builds every store on db.
func NewStores(db *mongo.Database) ports.Stores {
	helpers := NewAccountStore(db, domain.KindHelper)
	users := NewUserStore(db, helpers)

	accounts := make(map[domain.Kind]ports.AccountStore, len(domain.Kinds))
	for _, kind := range domain.Kinds {
		switch kind {
		case domain.KindUser:
			accounts[kind] = users
		case domain.KindHelper:
			accounts[kind] = helpers
		default:
			accounts[kind] = NewAccountStore(db, kind)
		}
	}
	return ports.Stores{
		Accounts:        accounts,
		Users:           users,
		Recommendations: NewRecommendationStore(db),
		Actions:         NewUserActionStore(db),
	}
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// EnsureIndexes creates the indexes of every store built by NewStores.
func EnsureIndexes(ctx context.Context, stores ports.Stores) error {
	targets := []any{stores.Recommendations, stores.Actions}
	for _, kind := range domain.Kinds {
		targets = append(targets, stores.Accounts[kind])
	}
	for _, t := range targets {
		if ix, ok := t.(indexer); ok {
			if err := ix.EnsureIndexes(ctx); err != nil {
				return fmt.Errorf("ensure indexes: %w", err)
			}
		}
	}
	return nil
}
