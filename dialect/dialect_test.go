package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	for driver, name := range map[string]string{
		"mysql":    "mysql",
		"postgres": "postgres",
		"pgx":      "postgres",
		"sqlite3":  "sqlite3",
		"sqlite":   "sqlite3",
		"oracle":   "oracle",
	} {
		assert.Equal(t, name, New(driver).Name(), driver)
	}
}

func TestInsertDefaults(t *testing.T) {
	assert.Equal(t, "INSERT INTO users () VALUES ()", New("mysql").InsertDefaults("users"))
	assert.Equal(t, "INSERT INTO users DEFAULT VALUES", New("postgres").InsertDefaults("users"))
	assert.Equal(t, "INSERT INTO users DEFAULT VALUES", New("sqlite").InsertDefaults("users"))

	assert.True(t, New("mysql").SupportLastInsertId())
	assert.True(t, New("sqlite3").SupportLastInsertId())
	assert.False(t, New("postgres").SupportLastInsertId())
}

func TestDescribeTable(t *testing.T) {
	query, params := New("mysql").DescribeTable("users")
	assert.Equal(t, "DESCRIBE users", query)
	assert.Nil(t, params)

	query, _ = New("sqlite3").DescribeTable("users")
	assert.Equal(t, "PRAGMA table_info(users)", query)

	query, params = New("postgres").DescribeTable("users")
	assert.Contains(t, query, "information_schema.columns WHERE table_name = :table")
	assert.Equal(t, map[string]interface{}{"table": "users"}, params)
}
