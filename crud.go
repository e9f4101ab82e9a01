package datalayer

import (
	"fmt"
	"sort"
	"strings"
)

// Create inserts data into the entity table and returns the generated id
func (e *Entity) Create(data Record) (interface{}, error) {
	rec := data.clone()
	if e.meta.Timestamps {
		now := e.db.NowFunc()
		for _, field := range []string{e.db.CreatedAtField, e.db.UpdatedAtField} {
			if rec[field] == nil {
				rec[field] = now
			}
		}
	}

	columns := sortedColumns(rec)
	table := e.meta.TableName()

	query := e.db.Dialect.InsertDefaults(table)
	if len(columns) > 0 {
		query = fmt.Sprintf("INSERT INTO %s (%s) VALUES (:%s)", table, strings.Join(columns, ", "), strings.Join(columns, ", :"))
	}

	if !e.db.Dialect.SupportLastInsertId() {
		id, err := e.returning(query+" RETURNING "+e.meta.PrimaryKey(), rec)
		return id, e.finish(err)
	}

	result, err := e.exec("create", query, rec)
	if err != nil {
		return nil, e.finish(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, e.finish(&PersistenceError{Op: "create", SQL: query, Err: err})
	}
	return id, nil
}

// Update sets data on the rows matched by terms and returns the number of
// affected rows, params provides the named parameters of terms
//
//	user.Update(datalayer.Record{"city": "Natal"}, "city = :old", "old=Recife")
func (e *Entity) Update(data Record, terms, params string) (int64, error) {
	where, err := parseParams(params)
	if err != nil {
		return 0, e.finish(err)
	}
	return e.update(data, terms, where)
}

func (e *Entity) update(data Record, terms string, where map[string]interface{}) (int64, error) {
	if strings.TrimSpace(terms) == "" {
		return 0, e.finish(ErrMissingWhereClause)
	}

	rec := data.clone()
	if e.meta.Timestamps && rec[e.db.UpdatedAtField] == nil {
		rec[e.db.UpdatedAtField] = e.db.NowFunc()
	}

	columns := sortedColumns(rec)
	if len(columns) == 0 {
		return 0, nil
	}

	params := make(map[string]interface{}, len(rec)+len(where))
	assignments := make([]string, len(columns))
	for idx, column := range columns {
		assignments[idx] = column + " = :" + column
		params[column] = rec[column]
	}
	for name, value := range where {
		if _, ok := params[name]; ok {
			return 0, e.finish(fmt.Errorf("%w: %s", ErrParamConflict, name))
		}
		params[name] = value
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s", e.meta.TableName(), strings.Join(assignments, ", "), terms)
	result, err := e.exec("update", query, params)
	if err != nil {
		return 0, e.finish(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, e.finish(&PersistenceError{Op: "update", SQL: query, Err: err})
	}
	return rows, nil
}

// Delete removes the rows matched by terms
func (e *Entity) Delete(terms, params string) error {
	where, err := parseParams(params)
	if err != nil {
		return e.finish(err)
	}
	return e.delete(terms, where)
}

func (e *Entity) delete(terms string, where map[string]interface{}) error {
	if strings.TrimSpace(terms) == "" {
		return e.finish(ErrMissingWhereClause)
	}
	_, err := e.exec("delete", fmt.Sprintf("DELETE FROM %s WHERE %s", e.meta.TableName(), terms), where)
	return e.finish(err)
}

func sortedColumns(rec Record) []string {
	columns := make([]string, 0, len(rec))
	for column := range rec {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}
