// Package postgres is the relational backend built on GORM. Every account
// kind has its own table with the same columns; the user↔helper association
// lives in the user_helpers join table.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
	"github.com/SoftGuar/Account-Management-Service/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	DSN     string
	Timeout time.Duration
}

// Open connects with GORM and verifies connectivity with a ping.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*gorm.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), gormConfig(log))
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return db, nil
}

// gormConfig translates driver errors into gorm sentinels (ErrDuplicatedKey)
// and routes GORM's own logging through zerolog at warn level.
func gormConfig(log zerolog.Logger) *gorm.Config {
	return &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger: gormlogger.New(zerologWriter{log}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

type zerologWriter struct{ log zerolog.Logger }

func (w zerologWriter) Printf(format string, args ...any) {
	w.log.Warn().Str("component", "gorm").Msgf(format, args...)
}

// Migrate creates or updates every table and the unique email indexes.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	for _, kind := range domain.Kinds {
		table := kind.Collection()
		if err := db.Table(table).AutoMigrate(&accountRow{}); err != nil {
			return fmt.Errorf("migrate %s: %w", table, err)
		}
		// created by hand: GORM derives index names from the struct, which
		// would collide across the per-kind tables.
		stmt := fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS "idx_%s_email" ON %q ("email")`, table, table)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("index %s: %w", table, err)
		}
	}
	if err := db.AutoMigrate(&userHelperRow{}, &recommendationRow{}, &userActionRow{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// NewStores builds every store on db.
func NewStores(db *gorm.DB) ports.Stores {
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
