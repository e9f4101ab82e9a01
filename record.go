package datalayer

// Record field bag of one row
type Record map[string]interface{}

// Accessor computes a field from the entity
type Accessor func(e *Entity) interface{}

func (r Record) clone() Record {
	cloned := make(Record, len(r))
	for k, v := range r {
		cloned[k] = v
	}
	return cloned
}

// Field resolves name through the accessor of its camel cased name, then the
// accessor of name itself, then the stored value; nil when nothing matches
func (e *Entity) Field(name string) interface{} {
	if accessor, ok := e.meta.Accessors[toCamelCase(name)]; ok {
		return accessor(e)
	}
	if accessor, ok := e.meta.Accessors[name]; ok {
		return accessor(e)
	}
	return e.data[name]
}

// Value stored value of name, accessors are ignored
func (e *Entity) Value(name string) interface{} {
	return e.data[name]
}

// Set stores value under name
func (e *Entity) Set(name string, value interface{}) *Entity {
	if e.data == nil {
		e.data = Record{}
	}
	e.data[name] = value
	return e
}

// Fill stores every value of values
func (e *Entity) Fill(values Record) *Entity {
	for name, value := range values {
		e.Set(name, value)
	}
	return e
}

// Has reports whether name holds a non nil value
func (e *Entity) Has(name string) bool {
	return e.data[name] != nil
}

// Data stored record, nil when nothing was set or fetched
func (e *Entity) Data() Record {
	return e.data
}

// safe record without the primary key
func (e *Entity) safe() Record {
	safe := e.data.clone()
	delete(safe, e.meta.PrimaryKey())
	return safe
}
