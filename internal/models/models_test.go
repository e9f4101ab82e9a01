package models

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/datalayer"
	"gorm.io/datalayer/logger"
)

var now = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

func newDB(t *testing.T) (*datalayer.DB, sqlmock.Sqlmock) {
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return datalayer.New(sqlx.NewDb(conn, "mysql"),
		datalayer.WithLogger(logger.Discard),
		datalayer.WithNowFunc(func() time.Time { return now }),
	), mock
}

func TestUserFullName(t *testing.T) {
	db, _ := newDB(t)

	user := NewUser(db)
	user.Set("first_name", "Ana").Set("last_name", "Lima")
	assert.Equal(t, "Ana Lima", user.Field("full_name"))

	user.Set("last_name", nil)
	assert.Equal(t, "Ana", user.Field("fullName"))
}

func TestUserSave(t *testing.T) {
	db, mock := newDB(t)

	mock.ExpectExec("INSERT INTO users (created_at, email, first_name, updated_at) VALUES (?, ?, ?, ?)").
		WithArgs(now, "ana@mail.com", "Ana", now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT * FROM users WHERE id = ?").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "email"}).AddRow(1, "Ana", "ana@mail.com"))

	user := NewUser(db)
	user.Set("first_name", "Ana").Set("email", "ana@mail.com")
	require.NoError(t, user.Save())
	assert.EqualValues(t, 1, user.Field("id"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWithAddresses(t *testing.T) {
	db, mock := newDB(t)

	sql, _ := NewUser(db).WithAddresses().ToSQL()
	assert.Equal(t, "SELECT users.id, users.first_name, users.last_name, users.email, addresses.street, addresses.city"+
		" FROM users LEFT JOIN addresses ON addresses.user_id = users.id", sql)

	mock.ExpectQuery("SELECT users.id, users.first_name, users.last_name, users.email, addresses.street, addresses.city"+
		" FROM users LEFT JOIN addresses ON addresses.user_id = users.id WHERE addresses.city = ?").
		WithArgs("Recife").
		WillReturnRows(sqlmock.NewRows([]string{"id", "city"}).AddRow(1, "Recife"))

	records, err := NewUser(db).WithAddresses().Where("addresses.city", "=", "Recife").Get()
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserAddresses(t *testing.T) {
	db, mock := newDB(t)

	_, err := NewUser(db).Addresses(db)
	assert.ErrorIs(t, err, datalayer.ErrPrimaryKeyRequired)

	mock.ExpectQuery("SELECT * FROM addresses WHERE user_id = ? ORDER BY id").
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "city"}).AddRow(1, 4, "Recife").AddRow(2, 4, "Natal"))
	mock.ExpectQuery("SELECT * FROM users WHERE id = ?").
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name"}).AddRow(4, "Ana"))

	user := NewUser(db)
	user.Set("id", 4)
	addresses, err := user.Addresses(db)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.Equal(t, "Natal", addresses[1].Field("city"))

	owner, err := addresses[0].User(db)
	require.NoError(t, err)
	assert.Equal(t, "Ana", owner.Field("full_name"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressValidation(t *testing.T) {
	db, mock := newDB(t)

	address := NewAddress(db)
	address.Set("user_id", 0).Set("street", "Rua A")
	assert.False(t, address.Required())
	assert.ErrorIs(t, address.Save(), datalayer.ErrValidation)

	address.Set("city", "Recife")
	assert.True(t, address.Required(), "integer zero counts as present")
	assert.NoError(t, mock.ExpectationsWereMet())
}
