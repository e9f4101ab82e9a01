package errtranslator

import (
	"errors"

	"github.com/mattn/go-sqlite3"
	"modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

var sqliteErrCodes = map[int]error{
	sqlitelib.SQLITE_CONSTRAINT_UNIQUE:     ErrDuplicatedKey,
	sqlitelib.SQLITE_CONSTRAINT_PRIMARYKEY: ErrDuplicatedKey,
	sqlitelib.SQLITE_CONSTRAINT_FOREIGNKEY: ErrForeignKeyViolated,
}

// SqliteErrTranslator handles both the cgo (sqlite3) and the pure Go (sqlite) drivers
type SqliteErrTranslator struct{}

func (s *SqliteErrTranslator) Translate(err error) error {
	var code int
	var message string

	var cgoErr sqlite3.Error
	var pureErr *sqlite.Error
	switch {
	case errors.As(err, &cgoErr):
		code, message = int(cgoErr.ExtendedCode), cgoErr.Error()
	case errors.As(err, &pureErr):
		code, message = pureErr.Code(), pureErr.Error()
	default:
		return err
	}

	if kind, ok := sqliteErrCodes[code]; ok {
		return &ConstraintError{Kind: kind, Code: code, Message: message, Err: err}
	}
	return err
}
