package datalayer

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"gorm.io/datalayer/connection"
	"gorm.io/datalayer/dialect"
	"gorm.io/datalayer/errtranslator"
	"gorm.io/datalayer/internal/stmt_store"
	"gorm.io/datalayer/logger"
)

// Config datalayer config
type Config struct {
	// Logger traces every executed statement
	Logger logger.Interface
	// NowFunc the function to be used when creating a new timestamp
	NowFunc func() time.Time
	// Translator converts driver errors, chosen from the driver name by default
	Translator errtranslator.ErrTranslator
	// CreatedAtField, UpdatedAtField columns maintained for entities with timestamps
	CreatedAtField string
	UpdatedAtField string
	// PrepareStmt executes through cached prepared statements
	PrepareStmt        bool
	PrepareStmtMaxSize int
	PrepareStmtTTL     time.Duration
}

// ConfigOption use functional option for datalayer Config.
type ConfigOption func(c *Config)

// WithLogger set logger.
func WithLogger(logger logger.Interface) ConfigOption {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithNowFunc set NowFunc.
func WithNowFunc(nowFunc func() time.Time) ConfigOption {
	return func(c *Config) {
		c.NowFunc = nowFunc
	}
}

// WithTranslator set the driver error translator.
func WithTranslator(translator errtranslator.ErrTranslator) ConfigOption {
	return func(c *Config) {
		c.Translator = translator
	}
}

// WithTimestampFields set the created/updated columns.
func WithTimestampFields(createdAt, updatedAt string) ConfigOption {
	return func(c *Config) {
		c.CreatedAtField = createdAt
		c.UpdatedAtField = updatedAt
	}
}

// WithPrepareStmt enable PrepareStmt, keeping at most maxSize statements
// for ttl each; zero values mean unlimited size and a day.
func WithPrepareStmt(maxSize int, ttl time.Duration) ConfigOption {
	return func(c *Config) {
		c.PrepareStmt = true
		c.PrepareStmtMaxSize = maxSize
		c.PrepareStmtTTL = ttl
	}
}

// DB a connection handle shared by entities, together with its config
type DB struct {
	*Config
	Dialect dialect.Dialect

	conn  *sqlx.DB
	stmts *stmt_store.Store
}

// Open gets the connection of cfg from registry and wraps it
func Open(ctx context.Context, registry *connection.Registry, cfg connection.Config, opts ...ConfigOption) (*DB, error) {
	conn, err := registry.Connection(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(conn, opts...), nil
}

// New wraps an opened connection
func New(conn *sqlx.DB, opts ...ConfigOption) *DB {
	config := &Config{}
	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		config.Logger = logger.Default
	}
	if config.NowFunc == nil {
		config.NowFunc = func() time.Time { return time.Now().Local() }
	}
	if config.Translator == nil {
		config.Translator = errtranslator.ForDriver(conn.DriverName())
	}
	if config.CreatedAtField == "" {
		config.CreatedAtField = "created_at"
	}
	if config.UpdatedAtField == "" {
		config.UpdatedAtField = "updated_at"
	}

	db := &DB{Config: config, Dialect: dialect.New(conn.DriverName()), conn: conn}
	if config.PrepareStmt {
		db.stmts = stmt_store.New(config.PrepareStmtMaxSize, config.PrepareStmtTTL)
	}
	return db
}

// Close closes the cached prepared statements, the connection itself
// belongs to its registry
func (db *DB) Close() error {
	if db.stmts != nil {
		db.stmts.Close()
	}
	return nil
}

func (db *DB) queryx(ctx context.Context, query string, args []interface{}) (*sqlx.Rows, error) {
	if db.stmts == nil {
		return db.conn.QueryxContext(ctx, query, args...)
	}
	stmt, err := db.stmts.Prepare(ctx, db.conn, query)
	if err != nil {
		return nil, err
	}
	return stmt.QueryxContext(ctx, args...)
}

func (db *DB) queryRowx(ctx context.Context, query string, args []interface{}) *sqlx.Row {
	if db.stmts == nil {
		return db.conn.QueryRowxContext(ctx, query, args...)
	}
	stmt, err := db.stmts.Prepare(ctx, db.conn, query)
	if err != nil {
		return db.conn.QueryRowxContext(ctx, query, args...)
	}
	return stmt.QueryRowxContext(ctx, args...)
}

func (db *DB) exec(ctx context.Context, query string, args []interface{}) (sql.Result, error) {
	if db.stmts == nil {
		return db.conn.ExecContext(ctx, query, args...)
	}
	stmt, err := db.stmts.Prepare(ctx, db.conn, query)
	if err != nil {
		return nil, err
	}
	return stmt.ExecContext(ctx, args...)
}

// Conn underlying connection
func (db *DB) Conn() *sqlx.DB {
	return db.conn
}

// Dollar reports whether the driver uses $1 style bindvars
func (db *DB) Dollar() bool {
	return sqlx.BindType(db.conn.DriverName()) == sqlx.DOLLAR
}

// Entity creates an entity of meta bound to db
func (db *DB) Entity(meta *Metadata) *Entity {
	return NewEntity(db, meta)
}
