package datalayer_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"gorm.io/datalayer"
	"gorm.io/datalayer/logger"
)

var testNow = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

var userMeta = &datalayer.Metadata{
	Name:     "User",
	Required: []string{"name", "email"},
	Accessors: map[string]datalayer.Accessor{
		"greeting": func(e *datalayer.Entity) interface{} {
			return "hello " + e.Value("name").(string)
		},
	},
}

func newTestDB(t *testing.T, driver string, opts ...datalayer.ConfigOption) (*datalayer.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	opts = append([]datalayer.ConfigOption{
		datalayer.WithLogger(logger.Discard),
		datalayer.WithNowFunc(func() time.Time { return testNow }),
	}, opts...)
	return datalayer.New(sqlx.NewDb(conn, driver), opts...), mock
}

func newUser(t *testing.T) (*datalayer.Entity, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t, "mysql")
	return db.Entity(userMeta), mock
}
