package connection

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Config describes one logical database target
type Config struct {
	Driver   string
	Host     string
	Port     int
	DBName   string
	Username string
	Password string
	Options  map[string]string
}

// Key identity used to memoize connections, driver-dbname@host
func (c Config) Key() string {
	return c.Driver + "-" + c.DBName + "@" + c.Host
}

// DriverName returns the database/sql driver registered for Driver
func (c Config) DriverName() string {
	switch strings.ToLower(c.Driver) {
	case "pgsql", "postgresql", "postgres":
		return "postgres"
	default:
		return strings.ToLower(c.Driver)
	}
}

func (c Config) addr(defaultPort int) string {
	port := c.Port
	if port == 0 {
		port = defaultPort
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

// DSN data source name for the configured driver
func (c Config) DSN() (string, error) {
	switch c.DriverName() {
	case "mysql":
		cfg := mysql.NewConfig()
		cfg.User = c.Username
		cfg.Passwd = c.Password
		cfg.Net = "tcp"
		cfg.Addr = c.addr(3306)
		cfg.DBName = c.DBName
		cfg.ParseTime = true
		if len(c.Options) > 0 {
			cfg.Params = make(map[string]string, len(c.Options))
			for k, v := range c.Options {
				cfg.Params[k] = v
			}
		}
		return cfg.FormatDSN(), nil
	case "postgres":
		dsn := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(c.Username, c.Password),
			Host:   c.addr(5432),
			Path:   "/" + c.DBName,
		}
		dsn.RawQuery = encodeOptions(c.Options)
		return dsn.String(), nil
	case "sqlite3", "sqlite":
		if len(c.Options) == 0 {
			return c.DBName, nil
		}
		return "file:" + c.DBName + "?" + encodeOptions(c.Options), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.Driver)
}

func encodeOptions(options map[string]string) string {
	query := url.Values{}
	for k, v := range options {
		query.Set(k, v)
	}
	return query.Encode()
}
