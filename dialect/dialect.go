// Package dialect holds the statements that differ between database drivers.
package dialect

// Dialect driver specific SQL
type Dialect interface {
	Name() string
	// SupportLastInsertId false means generated keys are read with RETURNING
	SupportLastInsertId() bool
	// InsertDefaults inserts a row made of default values only
	InsertDefaults(table string) string
	// DescribeTable returns the statement listing the columns of table and its named parameters
	DescribeTable(table string) (string, map[string]interface{})
}

// New returns the dialect of a database/sql driver name
func New(driver string) Dialect {
	switch driver {
	case "mysql":
		return mysql{}
	case "postgres", "pgx":
		return postgres{}
	case "sqlite3", "sqlite":
		return sqlite3{}
	}
	return common{name: driver}
}

// common ANSI statements, DESCRIBE aside
type common struct {
	name string
}

func (c common) Name() string {
	return c.name
}

func (common) SupportLastInsertId() bool {
	return true
}

func (common) InsertDefaults(table string) string {
	return "INSERT INTO " + table + " DEFAULT VALUES"
}

func (common) DescribeTable(table string) (string, map[string]interface{}) {
	return "DESCRIBE " + table, nil
}
