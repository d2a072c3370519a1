package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/locvowork/employee_query_sample/internal/config"
	"github.com/locvowork/employee_query_sample/internal/database"
	"github.com/locvowork/employee_query_sample/internal/dataset"
	"github.com/locvowork/employee_query_sample/internal/domain"
	"github.com/locvowork/employee_query_sample/internal/logger"
	"github.com/locvowork/employee_query_sample/internal/repository"
)

// ErrSourceNotWritable is returned by Seed when DATA_SOURCE names a read-only source.
var ErrSourceNotWritable = errors.New("data source cannot be seeded")

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// NewDataSource picks the data source named by DATA_SOURCE. The returned
// closer is non-nil for sources holding a connection and must be closed by
// the caller.
func NewDataSource(ctx context.Context, cfg *config.EnvConfig) (domain.DataSource, io.Closer, error) {
	switch cfg.DATA_SOURCE {
	case config.DataSourceEmbedded, "":
		src, err := dataset.NewEmbeddedSource()
		return src, nil, err

	case config.DataSourceFile:
		if cfg.DATA_FILE == "" {
			return nil, nil, fmt.Errorf("DATA_FILE must be set when DATA_SOURCE=%s", config.DataSourceFile)
		}
		src, err := dataset.NewFileSource(cfg.DATA_FILE)
		return src, nil, err

	case config.DataSourcePostgres:
		db, err := database.NewPostgresDB(ctx, database.Config{
			Host:            cfg.DB_HOST,
			Port:            cfg.DB_PORT,
			User:            cfg.DB_USER,
			Password:        cfg.DB_PASSWORD,
			DBName:          cfg.DB_NAME,
			SSLMode:         cfg.DB_SSL_MODE,
			MaxOpenConns:    cfg.DB_MAX_OPEN_CONNS,
			MaxIdleConns:    cfg.DB_MAX_IDLE_CONNS,
			ConnMaxLifetime: cfg.DB_CONN_MAX_LIFETIME,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.InfoLog(ctx, "Database connection established successfully")
		return repository.NewPostgresSource(db), db, nil

	case config.DataSourceDatastore:
		client, err := database.NewDatastoreClient(ctx, cfg.DATASTORE_PROJECT_ID)
		if err != nil {
			return nil, nil, err
		}
		logger.InfoLog(ctx, "Datastore client created for project %s", cfg.DATASTORE_PROJECT_ID)
		return repository.NewDatastoreSource(client), client, nil

	case config.DataSourceElastic:
		client, err := database.NewElasticClient(database.ElasticConfig{URL: cfg.ELASTIC_URL, Sniff: cfg.ELASTIC_SNIFF})
		if err != nil {
			return nil, nil, err
		}
		logger.InfoLog(ctx, "Elasticsearch client connected to %s", cfg.ELASTIC_URL)
		src := repository.NewElasticSource(client, cfg.ELASTIC_DEPARTMENT_INDEX, cfg.ELASTIC_EMPLOYEE_INDEX)
		return src, closerFunc(func() error {
			client.Stop()
			return nil
		}), nil

	default:
		return nil, nil, fmt.Errorf("unknown data source %q", cfg.DATA_SOURCE)
	}
}

// SeedFrom copies the collections of from into sink.
func SeedFrom(ctx context.Context, from domain.DataSource, sink domain.DataSink) (*dataset.Snapshot, error) {
	snapshot, err := dataset.Load(ctx, from, dataset.WithStrictReferences(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load seed data: %w", err)
	}
	if err := sink.Save(ctx, snapshot.Departments(), snapshot.Employees()); err != nil {
		return nil, fmt.Errorf("failed to seed data: %w", err)
	}
	logger.InfoLog(ctx, "Seeded %d departments and %d employees",
		len(snapshot.Departments()), len(snapshot.Employees()))
	return snapshot, nil
}
