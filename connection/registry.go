package connection

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/singleflight"

	// database/sql drivers reachable through Config.Driver
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

var (
	// ErrUnsupportedDriver unsupported driver
	ErrUnsupportedDriver = errors.New("unsupported driver")
	// ErrRegistryClosed registry closed
	ErrRegistryClosed = errors.New("connection registry closed")
)

// Opener opens and verifies a connection, sqlx.ConnectContext by default
type Opener func(ctx context.Context, driverName, dsn string) (*sqlx.DB, error)

// Registry keeps at most one live connection per Config.Key
type Registry struct {
	mu      sync.RWMutex
	conns   map[string]*sqlx.DB
	lastErr error
	closed  bool

	group  singleflight.Group
	opener Opener
}

// NewRegistry creates an empty registry, opener may be nil
func NewRegistry(opener Opener) *Registry {
	if opener == nil {
		opener = sqlx.ConnectContext
	}
	return &Registry{
		conns:  map[string]*sqlx.DB{},
		opener: opener,
	}
}

// Connection returns the connection of cfg, opening it on first use.
// Failures are returned and kept for LastError.
func (r *Registry) Connection(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	key := cfg.Key()

	r.mu.RLock()
	db, ok := r.conns[key]
	closed := r.closed
	r.mu.RUnlock()

	if closed {
		return nil, ErrRegistryClosed
	}
	if ok {
		return db, nil
	}

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		r.mu.RLock()
		db, ok := r.conns[key]
		r.mu.RUnlock()
		if ok {
			return db, nil
		}

		dsn, err := cfg.DSN()
		if err != nil {
			return nil, err
		}

		db, err = r.opener(ctx, cfg.DriverName(), dsn)
		if err != nil {
			return nil, fmt.Errorf("connect %s: %w", key, err)
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed {
			db.Close()
			return nil, ErrRegistryClosed
		}
		r.conns[key] = db
		return db, nil
	})

	if err != nil {
		r.mu.Lock()
		r.lastErr = err
		r.mu.Unlock()
		return nil, err
	}
	return v.(*sqlx.DB), nil
}

// Register stores an already opened connection under the identity of cfg
func (r *Registry) Register(cfg Config, db *sqlx.DB) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[cfg.Key()] = db
}

// LastError most recent connection failure, nil if none happened
func (r *Registry) LastError() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

// Len number of live connections
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Close closes every connection, the registry can't be used afterwards
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for key, db := range r.conns {
		if err := db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", key, err))
		}
		delete(r.conns, key)
	}
	r.closed = true
	return errors.Join(errs...)
}
