package datalayer

import (
	"math"
)

// Pagination page math of a paginated statement
type Pagination struct {
	Page   int   `json:"page" yaml:"page"`
	Limit  int   `json:"limit" yaml:"limit"`
	Pages  int   `json:"pages" yaml:"pages"`
	Total  int64 `json:"total" yaml:"total"`
	Offset int   `json:"offset" yaml:"offset"`
}

// Get executes the statement and returns every row, nil when there is none
func (e *Entity) Get() ([]Record, error) {
	query, params, err := e.prepare()
	if err != nil {
		return nil, e.finish(err)
	}
	records, err := e.query("get", query, params)
	return records, e.finish(err)
}

// First executes the statement and returns the first row
func (e *Entity) First() (Record, error) {
	records, err := e.Get()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrRecordNotFound
	}
	return records[0], nil
}

// Fetch same as First, hydrated into an entity of the same type
func (e *Entity) Fetch() (*Entity, error) {
	rec, err := e.First()
	if err != nil {
		return nil, err
	}
	return e.hydrate(rec), nil
}

// FetchAll same as Get, every row hydrated into an entity of the same type
func (e *Entity) FetchAll() ([]*Entity, error) {
	records, err := e.Get()
	if err != nil || len(records) == 0 {
		return nil, err
	}

	entities := make([]*Entity, len(records))
	for idx, rec := range records {
		entities[idx] = e.hydrate(rec)
	}
	return entities, nil
}

// Count number of rows matched by the statement, ignoring grouping,
// ordering and limits
func (e *Entity) Count() (int64, error) {
	if _, _, err := e.prepare(); err != nil {
		return 0, e.finish(err)
	}
	total, err := e.count(e.Statement.Core, e.Statement.Params)
	return total, e.finish(err)
}

// Pagination counts the statement rows and computes the pages of the
// Paginator settings
//
//	user.Paginator(2, 20).Where("active", "=", 1).Pagination()
func (e *Entity) Pagination() (Pagination, error) {
	total, err := e.Count()
	if err != nil {
		return Pagination{}, err
	}

	page := e.Statement.Page
	if page < 1 {
		page = 1
	}
	limit := e.Statement.PageSize
	if limit < 1 {
		limit = defaultPageSize
	}

	return Pagination{
		Page:   page,
		Limit:  limit,
		Pages:  int(math.Ceil(float64(total) / float64(limit))),
		Total:  total,
		Offset: page*limit - limit,
	}, nil
}

// Columns describes the entity table columns
func (e *Entity) Columns() ([]Record, error) {
	query, params := e.db.Dialect.DescribeTable(e.meta.TableName())
	records, err := e.query("columns", query, params)
	return records, e.finish(err)
}
