package datalayer

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"gorm.io/datalayer/logger"
)

// compile replaces :name placeholders by the bindvars of the driver
func (e *Entity) compile(query string, params map[string]interface{}) (string, []interface{}, error) {
	if params == nil {
		params = map[string]interface{}{}
	}
	bound, args, err := sqlx.Named(escapeLiterals(query), params)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return e.db.conn.Rebind(bound), args, nil
}

// escapeLiterals doubles the colons of quoted literals, which sqlx reads back
// as a single colon instead of a named parameter
func escapeLiterals(query string) string {
	if !strings.Contains(query, ":") || !strings.ContainsAny(query, "'\"`") {
		return query
	}

	var (
		buf     strings.Builder
		quote   rune
		escaped bool
	)
	buf.Grow(len(query) + 8)
	for _, r := range query {
		switch {
		case quote == 0:
			if r == '\'' || r == '"' || r == '`' {
				quote = r
			}
		case r == ':':
			buf.WriteRune(':')
			escaped = false
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == quote:
			quote = 0
		}
		buf.WriteRune(r)
	}
	return buf.String()
}

// prepare returns the statement to execute, or the error found while building it
func (e *Entity) prepare() (string, map[string]interface{}, error) {
	if e.Statement.Error != nil {
		return "", nil, e.Statement.Error
	}
	if e.Statement.Core == "" {
		return "", nil, ErrMissingStatement
	}
	return e.Statement.SQL(), e.Statement.Params, nil
}

func (e *Entity) query(op, query string, params map[string]interface{}) ([]Record, error) {
	bound, args, err := e.compile(query, params)
	if err != nil {
		return nil, err
	}

	begin := time.Now()
	rows, err := e.db.queryx(e.ctx, bound, args)
	if err != nil {
		err = e.persistenceError(op, query, err)
		e.trace(begin, bound, args, -1, err)
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec := Record{}
		if err = rows.MapScan(rec); err != nil {
			break
		}
		for name, value := range rec {
			if b, ok := value.([]byte); ok {
				rec[name] = string(b)
			}
		}
		records = append(records, rec)
	}
	if err == nil {
		err = rows.Err()
	}
	if err != nil {
		err = e.persistenceError(op, query, err)
		e.trace(begin, bound, args, int64(len(records)), err)
		return nil, err
	}

	e.trace(begin, bound, args, int64(len(records)), nil)
	return records, nil
}

func (e *Entity) count(query string, params map[string]interface{}) (int64, error) {
	bound, args, err := e.compile(query, params)
	if err != nil {
		return 0, err
	}

	begin := time.Now()
	rows, err := e.db.queryx(e.ctx, bound, args)
	if err != nil {
		err = e.persistenceError("count", query, err)
		e.trace(begin, bound, args, -1, err)
		return 0, err
	}
	defer rows.Close()

	var total int64
	for rows.Next() {
		total++
	}
	if err = rows.Err(); err != nil {
		err = e.persistenceError("count", query, err)
	}
	e.trace(begin, bound, args, total, err)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (e *Entity) exec(op, query string, params map[string]interface{}) (sql.Result, error) {
	bound, args, err := e.compile(query, params)
	if err != nil {
		return nil, err
	}

	begin := time.Now()
	result, err := e.db.exec(e.ctx, bound, args)
	if err != nil {
		err = e.persistenceError(op, query, err)
		e.trace(begin, bound, args, -1, err)
		return nil, err
	}

	rows, rowsErr := result.RowsAffected()
	if rowsErr != nil {
		rows = -1
	}
	e.trace(begin, bound, args, rows, nil)
	return result, nil
}

// returning runs an INSERT ... RETURNING and scans the single returned value
func (e *Entity) returning(query string, params map[string]interface{}) (interface{}, error) {
	bound, args, err := e.compile(query, params)
	if err != nil {
		return nil, err
	}

	begin := time.Now()
	var id interface{}
	if err = e.db.queryRowx(e.ctx, bound, args).Scan(&id); err != nil {
		err = e.persistenceError("create", query, err)
		e.trace(begin, bound, args, -1, err)
		return nil, err
	}
	if b, ok := id.([]byte); ok {
		id = string(b)
	}
	e.trace(begin, bound, args, 1, nil)
	return id, nil
}

func (e *Entity) persistenceError(op, query string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRecordNotFound
	}
	return &PersistenceError{Op: op, SQL: query, Err: e.db.Translator.Translate(err)}
}

func (e *Entity) trace(begin time.Time, query string, args []interface{}, rows int64, err error) {
	e.logger.Trace(e.ctx, begin, func() (string, int64) {
		vars := args
		if filter, ok := e.logger.(logger.ParamsFilter); ok {
			query, vars = filter.ParamsFilter(e.ctx, query, args...)
		}
		var placeholder *regexp.Regexp
		if e.db.Dollar() {
			placeholder = logger.NumericPlaceholder
		}
		return logger.ExplainSQL(query, placeholder, "'", vars...), rows
	}, err)
}

// finish captures err as the entity failure, a missing record is not a failure
func (e *Entity) finish(err error) error {
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		e.addError(err)
	}
	return err
}
