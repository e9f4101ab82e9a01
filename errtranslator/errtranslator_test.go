package errtranslator

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestForDriver(t *testing.T) {
	assert.IsType(t, &MysqlErrTranslator{}, ForDriver("mysql"))
	assert.IsType(t, &PostgresErrTranslator{}, ForDriver("postgres"))
	assert.IsType(t, &SqliteErrTranslator{}, ForDriver("sqlite3"))
	assert.IsType(t, &SqliteErrTranslator{}, ForDriver("sqlite"))

	err := errors.New("boom")
	assert.Same(t, err, ForDriver("oracle").Translate(err))
}

func TestMysqlTranslate(t *testing.T) {
	translator := ForDriver("mysql")

	err := translator.Translate(fmt.Errorf("exec: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a' for key 'email'"}))
	assert.ErrorIs(t, err, ErrDuplicatedKey)
	assert.NotErrorIs(t, err, ErrForeignKeyViolated)

	var mysqlErr *mysql.MySQLError
	assert.True(t, errors.As(err, &mysqlErr), "original error should stay reachable")

	err = translator.Translate(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})
	assert.ErrorIs(t, err, ErrForeignKeyViolated)

	original := &mysql.MySQLError{Number: 1146, Message: "Table 'x' doesn't exist"}
	assert.Equal(t, error(original), translator.Translate(original))
}

func TestPostgresTranslate(t *testing.T) {
	translator := ForDriver("postgres")

	err := translator.Translate(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
	assert.ErrorIs(t, err, ErrDuplicatedKey)
	assert.Contains(t, err.Error(), "23505")

	err = translator.Translate(&pq.Error{Code: "23503", Message: "insert or update violates foreign key constraint"})
	assert.ErrorIs(t, err, ErrForeignKeyViolated)

	plain := errors.New("connection refused")
	assert.Equal(t, plain, translator.Translate(plain))
}

func TestSqliteTranslate(t *testing.T) {
	translator := ForDriver("sqlite3")

	err := translator.Translate(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique})
	assert.ErrorIs(t, err, ErrDuplicatedKey)

	err = translator.Translate(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey})
	assert.ErrorIs(t, err, ErrForeignKeyViolated)

	busy := sqlite3.Error{Code: sqlite3.ErrBusy}
	assert.Equal(t, error(busy), translator.Translate(busy))
}
