package datalayer

import (
	"strconv"
	"strings"
	"unicode"
)

// Expr raw sql fragment, inlined as is instead of being bound
type Expr string

// Statement pieces of one SQL statement being built
type Statement struct {
	// Core SELECT skeleton plus accumulated JOIN and WHERE text
	Core   string
	Params map[string]interface{}

	Group  string
	Having string
	Order  string
	Limit  string
	Offset string

	// PageSize, Page recorded by Paginator
	PageSize int
	Page     int

	// Error first failure while building, reported on execution
	Error error

	seq int
}

const defaultPageSize = 10

func newStatement() *Statement {
	return &Statement{Params: map[string]interface{}{}, PageSize: defaultPageSize}
}

func (stmt *Statement) reset(core string) {
	*stmt = Statement{Core: core, Params: map[string]interface{}{}, PageSize: defaultPageSize}
}

// SQL assembled statement
func (stmt *Statement) SQL() string {
	return stmt.Core + stmt.Group + stmt.Having + stmt.Order + stmt.Limit + stmt.Offset
}

// AddVar binds value under a generated name and returns its placeholder
func (stmt *Statement) AddVar(value interface{}) string {
	if stmt.Params == nil {
		stmt.Params = map[string]interface{}{}
	}
	for {
		stmt.seq++
		name := "v" + strconv.Itoa(stmt.seq)
		if _, ok := stmt.Params[name]; !ok {
			stmt.Params[name] = value
			return ":" + name
		}
	}
}

// Bind binds value under name when name is a free parameter name, under a
// generated one otherwise, and returns its placeholder
func (stmt *Statement) Bind(name string, value interface{}) string {
	if stmt.Params == nil {
		stmt.Params = map[string]interface{}{}
	}
	if _, taken := stmt.Params[name]; !taken && isParamName(name) {
		stmt.Params[name] = value
		return ":" + name
	}
	return stmt.AddVar(value)
}

// isParamName reports whether sqlx reads name as a single named parameter
func isParamName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '.' {
			return false
		}
	}
	return true
}

// AddError keeps the first building error
func (stmt *Statement) AddError(err error) {
	if stmt.Error == nil {
		stmt.Error = err
	}
}

// conjunction keyword for the next predicate, WHERE when none was written yet
func (stmt *Statement) conjunction(keyword string) string {
	if strings.Contains(stmt.Core, "WHERE") {
		return " " + keyword + " "
	}
	return " WHERE "
}

func (stmt *Statement) value(value interface{}) string {
	switch v := value.(type) {
	case Expr:
		return string(v)
	case nil:
		return "NULL"
	default:
		return stmt.AddVar(v)
	}
}

func (stmt *Statement) params() map[string]interface{} {
	params := make(map[string]interface{}, len(stmt.Params))
	for k, v := range stmt.Params {
		params[k] = v
	}
	return params
}
