package errtranslator

import (
	"errors"

	"github.com/lib/pq"
)

var postgresErrCodes = map[pq.ErrorCode]error{
	"23505": ErrDuplicatedKey,
	"23503": ErrForeignKeyViolated,
}

type PostgresErrTranslator struct{}

func (p *PostgresErrTranslator) Translate(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	if kind, ok := postgresErrCodes[pqErr.Code]; ok {
		return &ConstraintError{Kind: kind, Code: string(pqErr.Code), Message: pqErr.Message, Err: err}
	}
	return err
}
