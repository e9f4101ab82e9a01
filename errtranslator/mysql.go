package errtranslator

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var mysqlErrCodes = map[uint16]error{
	1062: ErrDuplicatedKey,
	1451: ErrForeignKeyViolated,
	1452: ErrForeignKeyViolated,
}

type MysqlErrTranslator struct{}

func (m *MysqlErrTranslator) Translate(err error) error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return err
	}

	if kind, ok := mysqlErrCodes[mysqlErr.Number]; ok {
		return &ConstraintError{Kind: kind, Code: mysqlErr.Number, Message: mysqlErr.Message, Err: err}
	}
	return err
}
