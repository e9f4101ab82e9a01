package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"gorm.io/datalayer/connection"
)

// RenderEnv renders the .env settings of a connection using driver
func RenderEnv(driver, dbName string) (string, error) {
	cfg := connection.Config{Driver: strings.ToLower(driver), Host: "localhost", DBName: dbName}

	switch cfg.DriverName() {
	case "mysql":
		cfg.Port, cfg.Username = 3306, "root"
	case "postgres":
		cfg.Port, cfg.Username = 5432, "postgres"
	case "sqlite3", "sqlite":
		cfg.Host = ""
		if !strings.Contains(cfg.DBName, ".") {
			cfg.DBName += ".db"
		}
	default:
		return "", fmt.Errorf("%w: %s", connection.ErrUnsupportedDriver, driver)
	}

	values := map[string]string{
		"DBDRIVER": cfg.Driver,
		"DBHOST":   cfg.Host,
		"DBNAME":   cfg.DBName,
		"DBUSER":   cfg.Username,
		"DBPASS":   "",
	}
	if cfg.Port != 0 {
		values["DBPORT"] = strconv.Itoa(cfg.Port)
	}
	return godotenv.Marshal(values)
}

// GenerateEnv writes the .env of driver into baseFolder
func GenerateEnv(fs afero.Fs, baseFolder, driver, dbName string, force bool) (string, error) {
	content, err := RenderEnv(driver, dbName)
	if err != nil {
		return "", err
	}

	filename := filepath.Join(baseFolder, ".env")
	if err := writeFile(fs, filename, []byte(content+"\n"), force); err != nil {
		return "", err
	}
	return filename, nil
}
