package datalayer

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"gorm.io/datalayer/logger"
)

func (e *Entity) table(table []string) string {
	if len(table) > 0 && table[0] != "" {
		return table[0]
	}
	return e.meta.TableName()
}

// Select starts a new statement
//
//	user.Select("users.*, addresses.city").Join("addresses", "addresses.user_id", "=", "users.id")
func (e *Entity) Select(columns string, table ...string) *Entity {
	if columns == "" {
		columns = "*"
	}
	e.Statement.reset(fmt.Sprintf("SELECT %s FROM %s", columns, e.table(table)))
	return e
}

// Find starts a new statement filtered by terms, params is an url encoded list
// providing the named parameters of terms
//
//	user.Find("city = :city AND age > :age", "city=Recife&age=18")
func (e *Entity) Find(terms, params string, columns ...string) *Entity {
	cols := "*"
	if len(columns) > 0 && columns[0] != "" {
		cols = columns[0]
	}

	e.Select(cols)
	if terms == "" {
		return e
	}

	e.Statement.Core += " WHERE " + terms
	values, err := parseParams(params)
	if err != nil {
		e.Statement.AddError(err)
		return e
	}
	for name, value := range values {
		e.Statement.Params[name] = value
	}
	return e
}

// Max starts a new statement selecting the max value of column as alias
func (e *Entity) Max(column, alias string, table ...string) *Entity {
	e.Statement.reset(fmt.Sprintf("SELECT MAX(%s) AS %s FROM %s", column, alias, e.table(table)))
	return e
}

// Join appends an INNER join, or a join of joinType when given
func (e *Entity) Join(table, first, operator, second string, joinType ...string) *Entity {
	typ := "inner"
	if len(joinType) > 0 && joinType[0] != "" {
		typ = joinType[0]
	}
	return e.JoinWhere(table, first, operator, second, typ, "")
}

// JoinWhere appends a join whose ON condition is extended with AND extra
func (e *Entity) JoinWhere(table, first, operator, second, joinType, extra string) *Entity {
	var sql strings.Builder
	sql.WriteString(" ")
	sql.WriteString(strings.ToUpper(joinType))
	sql.WriteString(" JOIN ")
	sql.WriteString(table)
	sql.WriteString(" ON ")
	sql.WriteString(strings.Join(nonEmpty(first, operator, second), " "))
	if extra != "" {
		sql.WriteString(" AND ")
		sql.WriteString(extra)
	}
	e.Statement.Core += sql.String()
	return e
}

// Where appends a predicate, prefixed by WHERE when it is the first one and
// by AND otherwise. A nil value appends operator as is, which allows free
// form conditions, except for = and != which become IS NULL and IS NOT NULL.
// Expr values are inlined, any other value is bound.
//
//	user.Find("", "").Where("city", "=", "Recife").Where("age", ">", 18)
//	user.Find("", "").Where("id", "IN (SELECT user_id FROM addresses)", nil)
func (e *Entity) Where(column, operator string, value interface{}, replace ...Expr) *Entity {
	return e.where("AND", column, operator, value, replace)
}

// AndWhere same as Where
func (e *Entity) AndWhere(column, operator string, value interface{}, replace ...Expr) *Entity {
	return e.where("AND", column, operator, value, replace)
}

// OrWhere appends a predicate prefixed by OR, or WHERE when it is the first one
func (e *Entity) OrWhere(column, operator string, value interface{}, replace ...Expr) *Entity {
	return e.where("OR", column, operator, value, replace)
}

func (e *Entity) where(keyword, column, operator string, value interface{}, replace []Expr) *Entity {
	parts := []string{}
	if column != "" {
		parts = append(parts, column)
	}
	if value == nil {
		operator = nullOperator(operator)
	}
	if operator != "" {
		parts = append(parts, operator)
	}
	if value != nil {
		parts = append(parts, e.Statement.value(value))
	}
	for _, r := range replace {
		parts = append(parts, string(r))
	}

	e.appendCondition(keyword, column, strings.Join(parts, " "))
	return e
}

// nullOperator turns a bare comparison against nil into its IS NULL form
func nullOperator(operator string) string {
	switch strings.TrimSpace(operator) {
	case "=":
		return "IS NULL"
	case "!=", "<>":
		return "IS NOT NULL"
	}
	return operator
}

// appendCondition a missing column means a raw fragment, written without keyword
func (e *Entity) appendCondition(keyword, column, sql string) {
	if column == "" {
		e.Statement.Core += " " + sql
		return
	}
	e.Statement.Core += e.Statement.conjunction(keyword) + sql
}

// WhereIn appends column IN (values...); a single Expr value is inlined, e.g. a subquery
func (e *Entity) WhereIn(column string, values ...interface{}) *Entity {
	e.appendCondition("AND", column, column+" IN ("+e.inList(values)+")")
	return e
}

// WhereNotIn appends column NOT IN (values...)
func (e *Entity) WhereNotIn(column string, values ...interface{}) *Entity {
	e.appendCondition("AND", column, column+" NOT IN ("+e.inList(values)+")")
	return e
}

func (e *Entity) inList(values []interface{}) string {
	if len(values) == 0 {
		return "NULL"
	}
	placeholders := make([]string, len(values))
	for idx, value := range values {
		placeholders[idx] = e.Statement.value(value)
	}
	return strings.Join(placeholders, ", ")
}

// WhereIsNull appends column IS NULL
func (e *Entity) WhereIsNull(column string) *Entity {
	e.appendCondition("AND", column, column+" IS NULL")
	return e
}

// WhereIsNotNull appends column IS NOT NULL
func (e *Entity) WhereIsNotNull(column string) *Entity {
	e.appendCondition("AND", column, column+" IS NOT NULL")
	return e
}

// WhereLike appends column LIKE %value%
func (e *Entity) WhereLike(column string, value interface{}) *Entity {
	e.appendCondition("AND", column, column+" LIKE "+e.Statement.AddVar(fmt.Sprintf("%%%v%%", value)))
	return e
}

// Between appends AND column BETWEEN start AND end, it never starts the WHERE clause
func (e *Entity) Between(column string, start, end interface{}) *Entity {
	e.Statement.Core += fmt.Sprintf(" AND %s BETWEEN %s AND %s", column, e.Statement.value(start), e.Statement.value(end))
	return e
}

// BetweenDay appends AND column BETWEEN the first and last instant of day
func (e *Entity) BetweenDay(column string, day time.Time) *Entity {
	n := now.With(day)
	return e.Between(column, n.BeginningOfDay(), n.EndOfDay())
}

// Group sets GROUP BY, replacing any previous one
func (e *Entity) Group(column string) *Entity {
	e.Statement.Group = " GROUP BY " + column
	return e
}

// Having sets HAVING, replacing any previous one
func (e *Entity) Having(condition string) *Entity {
	e.Statement.Having = " HAVING " + condition
	return e
}

// Order sets ORDER BY, replacing any previous one
func (e *Entity) Order(column string, direction ...string) *Entity {
	e.Statement.Order = " ORDER BY " + column
	if len(direction) > 0 && direction[0] != "" {
		e.Statement.Order += " " + direction[0]
	}
	return e
}

// Limit sets LIMIT, and OFFSET when a positive offset is given
func (e *Entity) Limit(limit int, offset ...int) *Entity {
	e.Statement.Limit = " LIMIT " + strconv.Itoa(limit)
	if len(offset) > 0 && offset[0] > 0 {
		e.Offset(offset[0])
	}
	return e
}

// Offset sets OFFSET
func (e *Entity) Offset(offset int) *Entity {
	e.Statement.Offset = " OFFSET " + strconv.Itoa(offset)
	return e
}

// Paginator limits the statement to page, pages being limit records long.
// It starts a SELECT of columns when no statement was started.
func (e *Entity) Paginator(page, limit int, columns ...string) *Entity {
	if e.Statement.Core == "" {
		e.Select(strings.Join(columns, ", "))
	}
	if page < 1 {
		page = 1
	}

	e.Statement.PageSize = limit
	e.Statement.Page = page
	e.Statement.Limit = " LIMIT " + strconv.Itoa(limit)
	e.Statement.Offset = " OFFSET " + strconv.Itoa(page*limit-limit)
	return e
}

// ToSQL assembled statement and a copy of its parameters
func (e *Entity) ToSQL() (string, map[string]interface{}) {
	return e.Statement.SQL(), e.Statement.params()
}

// Debug logs the current statement and traces following executions at info level
func (e *Entity) Debug() *Entity {
	e.logger = e.logger.LogMode(logger.Info)
	sql, params := e.ToSQL()
	e.logger.Info(e.ctx, "statement", sql, params)
	return e
}

func parseParams(params string) (map[string]interface{}, error) {
	values, err := url.ParseQuery(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	parsed := make(map[string]interface{}, len(values))
	for name := range values {
		parsed[name] = values.Get(name)
	}
	return parsed, nil
}

func nonEmpty(values ...string) []string {
	result := values[:0:0]
	for _, v := range values {
		if v != "" {
			result = append(result, v)
		}
	}
	return result
}
