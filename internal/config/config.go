package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Data source kinds accepted in DATA_SOURCE.
const (
	DataSourceEmbedded  = "embedded"
	DataSourceFile      = "file"
	DataSourcePostgres  = "postgres"
	DataSourceDatastore = "datastore"
	DataSourceElastic   = "elasticsearch"
)

var DefaultEnvConfig *EnvConfig

type EnvConfig struct {
	// app config
	APP_PORT string
	// data source config
	DATA_SOURCE string
	DATA_FILE   string
	// database config, only read when DATA_SOURCE=postgres
	DB_HOST              string
	DB_PORT              int
	DB_USER              string
	DB_PASSWORD          string
	DB_NAME              string
	DB_SSL_MODE          string
	DB_CONN_MAX_LIFETIME time.Duration
	DB_MAX_IDLE_CONNS    int
	DB_MAX_OPEN_CONNS    int
	// datastore config, only read when DATA_SOURCE=datastore
	DATASTORE_PROJECT_ID string
	// elasticsearch config, only read when DATA_SOURCE=elasticsearch
	ELASTIC_URL              string
	ELASTIC_SNIFF            bool
	ELASTIC_DEPARTMENT_INDEX string
	ELASTIC_EMPLOYEE_INDEX   string
	// logger config
	LOG_FILE_PATH string
	LOG_LEVEL     string
}

// LoadEnvConfig reads .env, when present, and the process environment into
// DefaultEnvConfig.
func LoadEnvConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	DefaultEnvConfig = &EnvConfig{
		APP_PORT:                 getEnvString("APP_PORT", "8080"),
		DATA_SOURCE:              getEnvString("DATA_SOURCE", DataSourceEmbedded),
		DATA_FILE:                getEnvString("DATA_FILE", ""),
		DB_HOST:                  getEnvString("DB_HOST", "localhost"),
		DB_PORT:                  getEnvInt("DB_PORT", 5432),
		DB_USER:                  getEnvString("DB_USER", "postgres"),
		DB_PASSWORD:              getEnvString("DB_PASSWORD", "postgres"),
		DB_NAME:                  getEnvString("DB_NAME", "postgres"),
		DB_SSL_MODE:              getEnvString("DB_SSL_MODE", "disable"),
		DB_CONN_MAX_LIFETIME:     getEnvDuration("DB_CONN_MAX_LIFETIME", 20*time.Minute),
		DB_MAX_IDLE_CONNS:        getEnvInt("DB_MAX_IDLE_CONNS", 10),
		DB_MAX_OPEN_CONNS:        getEnvInt("DB_MAX_OPEN_CONNS", 100),
		DATASTORE_PROJECT_ID:     getEnvString("DATASTORE_PROJECT_ID", "employee-query"),
		ELASTIC_URL:              getEnvString("ELASTIC_URL", "http://localhost:9200"),
		ELASTIC_SNIFF:            getEnvBool("ELASTIC_SNIFF", false),
		ELASTIC_DEPARTMENT_INDEX: getEnvString("ELASTIC_DEPARTMENT_INDEX", "departments"),
		ELASTIC_EMPLOYEE_INDEX:   getEnvString("ELASTIC_EMPLOYEE_INDEX", "employees"),
		LOG_FILE_PATH:            getEnvString("LOG_FILE_PATH", ""),
		LOG_LEVEL:                getEnvString("LOG_LEVEL", "info"),
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
