package database

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/muhammad-yeasin/wave2-attendance/config"
)

// Conn hands repositories the shared database handle.
type Conn interface {
	DB(ctx context.Context) (*gorm.DB, error)
}

// Pool owns the process-wide connection pool. The pool is opened and
// migrated on the first DB call; a failed open is retried by the next caller.
type Pool struct {
	open   func(ctx context.Context) (*gorm.DB, error)
	logger *zap.Logger

	mu sync.Mutex
	db atomic.Pointer[gorm.DB]
}

// NewPool creates a lazily connected Pool. Nothing is dialed here.
func NewPool(cfg *config.DatabaseConfig, logLevel string, logger *zap.Logger) *Pool {
	p := &Pool{logger: logger}
	p.open = func(ctx context.Context) (*gorm.DB, error) {
		db, err := NewDB(ctx, cfg, logLevel, logger)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql.DB: %w", err)
		}
		if err := RunMigrations(sqlDB, logger); err != nil {
			sqlDB.Close()
			return nil, err
		}
		return db, nil
	}
	return p
}

// DB returns the shared handle, connecting on first use.
func (p *Pool) DB(ctx context.Context) (*gorm.DB, error) {
	if db := p.db.Load(); db != nil {
		return db.WithContext(ctx), nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if db := p.db.Load(); db != nil {
		return db.WithContext(ctx), nil
	}

	db, err := p.open(ctx)
	if err != nil {
		p.logger.Warn("database unavailable", zap.Error(err))
		return nil, err
	}
	p.db.Store(db)
	return db.WithContext(ctx), nil
}

// Close releases the pool if it was ever opened.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	db := p.db.Swap(nil)
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type static struct {
	db *gorm.DB
}

// Static wraps an already opened handle.
func Static(db *gorm.DB) Conn {
	return static{db: db}
}

func (s static) DB(ctx context.Context) (*gorm.DB, error) {
	return s.db.WithContext(ctx), nil
}
