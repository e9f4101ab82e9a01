package errtranslator

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicatedKey occurs when there is a unique key constraint violation
	ErrDuplicatedKey = errors.New("duplicated key not allowed")
	// ErrForeignKeyViolated occurs when there is a foreign key constraint violation
	ErrForeignKeyViolated = errors.New("violates foreign key constraint")
)

// ErrTranslator converts driver specific errors into datalayer errors
type ErrTranslator interface {
	Translate(err error) error
}

// ConstraintError is a translated constraint violation, it matches
// ErrDuplicatedKey or ErrForeignKeyViolated with errors.Is
type ConstraintError struct {
	Kind    error
	Code    interface{}
	Message string
	Err     error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%v, code: %v, message: %s", e.Kind, e.Code, e.Message)
}

func (e *ConstraintError) Is(target error) bool {
	return target == e.Kind
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

type noopTranslator struct{}

func (noopTranslator) Translate(err error) error { return err }

// ForDriver returns the translator of a database/sql driver name, unknown drivers keep errors untouched
func ForDriver(driverName string) ErrTranslator {
	switch driverName {
	case "mysql":
		return &MysqlErrTranslator{}
	case "postgres", "pgx":
		return &PostgresErrTranslator{}
	case "sqlite3", "sqlite":
		return &SqliteErrTranslator{}
	}
	return noopTranslator{}
}
