package stmt_store

import (
	"context"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"gorm.io/datalayer/internal/lru"
)

// Stmt prepared statement shared by every execution of one query
type Stmt struct {
	*sqlx.Stmt
	prepared   chan struct{}
	prepareErr error
}

func (stmt *Stmt) Error() error {
	return stmt.prepareErr
}

func (stmt *Stmt) Close() error {
	<-stmt.prepared

	if stmt.Stmt != nil {
		return stmt.Stmt.Close()
	}
	return nil
}

// Preparer prepares statements, implemented by *sqlx.DB
type Preparer interface {
	PreparexContext(ctx context.Context, query string) (*sqlx.Stmt, error)
}

const defaultTTL = time.Hour * 24

// Store prepared statements keyed by query
type Store struct {
	mu  sync.Mutex
	lru *lru.LRU[string, *Stmt]
}

// New creates a store keeping at most size statements, size 0 is unlimited
func New(size int, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	onEvicted := func(k string, v *Stmt) {
		if v != nil {
			go v.Close()
		}
	}
	return &Store{lru: lru.NewLRU[string, *Stmt](size, onEvicted, ttl)}
}

// Prepare returns the statement of query, preparing it on first use.
// Concurrent callers of the same query wait for a single prepare.
func (s *Store) Prepare(ctx context.Context, conn Preparer, query string) (*Stmt, error) {
	s.mu.Lock()
	if stmt, ok := s.lru.Get(query); ok {
		s.mu.Unlock()
		<-stmt.prepared
		if stmt.prepareErr != nil {
			return nil, stmt.prepareErr
		}
		return stmt, nil
	}

	stmt := &Stmt{prepared: make(chan struct{})}
	s.lru.Add(query, stmt)
	s.mu.Unlock()
	defer close(stmt.prepared)

	var err error
	if stmt.Stmt, err = conn.PreparexContext(ctx, query); err != nil {
		stmt.prepareErr = err
		s.lru.Remove(query)
		return nil, err
	}
	return stmt, nil
}

// Keys cached queries, oldest first
func (s *Store) Keys() []string {
	return s.lru.Keys()
}

// Close closes every cached statement
func (s *Store) Close() {
	s.lru.Purge()
}
