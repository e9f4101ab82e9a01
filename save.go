package datalayer

import (
	"fmt"
	"sort"

	"gorm.io/datalayer/utils"
)

// FindBy fetches the single row whose columns equal criteria, each value
// bound under its column name; nil values match IS NULL
//
//	user.FindBy(map[string]interface{}{"city": "Recife", "active": 1})
func (e *Entity) FindBy(criteria map[string]interface{}, columns ...string) (*Entity, error) {
	cols := "*"
	if len(columns) > 0 && columns[0] != "" {
		cols = columns[0]
	}
	e.Select(cols)

	names := make([]string, 0, len(criteria))
	for name := range criteria {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		switch value := criteria[name].(type) {
		case nil, Expr:
			e.Where(name, "=", value)
		default:
			e.appendCondition("AND", name, name+" = "+e.Statement.Bind(name, value))
		}
	}
	return e.Fetch()
}

// FindByID fetches the row of primary key id
func (e *Entity) FindByID(id interface{}, columns ...string) (*Entity, error) {
	return e.FindBy(map[string]interface{}{e.meta.PrimaryKey(): id}, columns...)
}

// Save inserts the record when its primary key is blank, updates it
// otherwise, then reloads it from the database
func (e *Entity) Save() error {
	if missing := e.missing(); len(missing) > 0 {
		return e.addError(&ValidationError{Entity: e.meta.Name, Fields: missing})
	}

	primary := e.meta.PrimaryKey()
	id := e.data[primary]
	payload := e.safe()

	if !utils.IsBlank(id) {
		name := "id"
		for _, taken := payload[name]; taken; _, taken = payload[name] {
			name = "_" + name
		}
		if _, err := e.update(payload, primary+" = :"+name, map[string]interface{}{name: id}); err != nil {
			return err
		}
	} else {
		created, err := e.Create(payload)
		if err != nil {
			return err
		}
		id = created
	}

	if utils.IsBlank(id) {
		return e.addError(fmt.Errorf("%w: no id generated for %s", ErrPrimaryKeyRequired, e.meta.TableName()))
	}

	found, err := e.FindByID(id)
	if err != nil {
		return e.addError(err)
	}
	e.data = found.data
	return nil
}

// Destroy deletes the row of the record primary key and discards the record
func (e *Entity) Destroy() error {
	primary := e.meta.PrimaryKey()
	id := e.data[primary]
	if utils.IsBlank(id) {
		return e.addError(ErrPrimaryKeyRequired)
	}

	if err := e.delete(primary+" = :id", map[string]interface{}{"id": id}); err != nil {
		return err
	}
	e.data = nil
	return nil
}

// Required reports whether every required field holds a value, integers
// count as present even when zero
func (e *Entity) Required() bool {
	return len(e.missing()) == 0
}

func (e *Entity) missing() []string {
	var missing []string
	for _, field := range e.meta.Required {
		value := e.data[field]
		if utils.IsBlank(value) && !utils.IsInteger(value) {
			missing = append(missing, field)
		}
	}
	return missing
}
