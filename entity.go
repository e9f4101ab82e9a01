package datalayer

import (
	"context"

	"gorm.io/datalayer/logger"
)

// Metadata describes one entity type, share a single value between instances
type Metadata struct {
	// Name entity type name, used to derive Table when empty
	Name string
	// Table database table
	Table string
	// Primary table primary key field, id by default
	Primary string
	// Required fields checked by Save
	Required []string
	// Timestamps maintain created and updated columns
	Timestamps bool
	// Accessors computed fields, keyed by camel cased name
	Accessors map[string]Accessor
}

// TableName table of the entity
func (m *Metadata) TableName() string {
	if m.Table != "" {
		return m.Table
	}
	return TableName(m.Name)
}

// PrimaryKey primary key column
func (m *Metadata) PrimaryKey() string {
	if m.Primary != "" {
		return m.Primary
	}
	return "id"
}

// Entity is embedded by persisted types. It owns one statement and one
// record, and is not safe for concurrent use.
type Entity struct {
	Statement *Statement

	db     *DB
	meta   *Metadata
	data   Record
	fail   error
	ctx    context.Context
	logger logger.Interface
}

// NewEntity creates an empty entity of meta bound to db
func NewEntity(db *DB, meta *Metadata) *Entity {
	return &Entity{
		Statement: newStatement(),
		db:        db,
		meta:      meta,
		ctx:       context.Background(),
		logger:    db.Logger,
	}
}

// Metadata of the entity type
func (e *Entity) Metadata() *Metadata {
	return e.meta
}

// WithContext sets the context used by following executions
func (e *Entity) WithContext(ctx context.Context) *Entity {
	e.ctx = ctx
	return e
}

// Fail last captured failure
func (e *Entity) Fail() error {
	return e.fail
}

func (e *Entity) addError(err error) error {
	e.fail = err
	return err
}

// hydrate creates a sibling entity holding rec
func (e *Entity) hydrate(rec Record) *Entity {
	return &Entity{
		Statement: newStatement(),
		db:        e.db,
		meta:      e.meta,
		data:      rec,
		ctx:       e.ctx,
		logger:    e.logger,
	}
}
