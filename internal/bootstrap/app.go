package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/locvowork/employee_query_sample/internal/config"
	"github.com/locvowork/employee_query_sample/internal/dataset"
	"github.com/locvowork/employee_query_sample/internal/domain"
	"github.com/locvowork/employee_query_sample/internal/handler"
	"github.com/locvowork/employee_query_sample/internal/logger"
	"github.com/locvowork/employee_query_sample/internal/service"
)

type App struct {
	Echo     *echo.Echo
	Snapshot *dataset.Snapshot
	Tasks    *service.TaskService

	// closer releases the connection behind the data source, if any.
	closer io.Closer
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

// Initialize loads configuration, sets up logging, loads the dataset once and
// wires the HTTP routes.
func (a *App) Initialize(ctx context.Context) error {
	if err := a.LoadData(ctx); err != nil {
		return err
	}

	taskHandler := handler.NewTaskHandler(a.Tasks)

	a.RegisterMiddlewares()
	a.RegisterRoutes(taskHandler)

	return nil
}

// LoadData performs everything Initialize does except HTTP wiring. The
// runner CLI uses it directly.
func (a *App) LoadData(ctx context.Context) error {
	src, err := a.openDataSource(ctx)
	if err != nil {
		return err
	}

	snapshot, err := dataset.Load(ctx, src)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	a.Snapshot = snapshot
	a.Tasks = service.NewTaskService(snapshot)
	return nil
}

// Seed writes the embedded dataset into the source named by DATA_SOURCE and
// serves it from there.
func (a *App) Seed(ctx context.Context) error {
	src, err := a.openDataSource(ctx)
	if err != nil {
		return err
	}
	sink, ok := src.(domain.DataSink)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSourceNotWritable, config.DefaultEnvConfig.DATA_SOURCE)
	}

	embedded, err := dataset.NewEmbeddedSource()
	if err != nil {
		return err
	}
	snapshot, err := SeedFrom(ctx, embedded, sink)
	if err != nil {
		return err
	}
	a.Snapshot = snapshot
	a.Tasks = service.NewTaskService(snapshot)
	return nil
}

func (a *App) openDataSource(ctx context.Context) (domain.DataSource, error) {
	if err := config.LoadEnvConfig(); err != nil {
		return nil, fmt.Errorf("failed to load env config: %w", err)
	}

	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH, config.DefaultEnvConfig.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	src, closer, err := NewDataSource(ctx, config.DefaultEnvConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create data source: %w", err)
	}
	a.closer = closer
	return src, nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(h *handler.TaskHandler) {
	RegisterRoutes(a.Echo, h)
}

// RegisterRoutes mounts the task endpoints on e.
func RegisterRoutes(e *echo.Echo, h *handler.TaskHandler) {
	e.GET("/departments", h.ListDepartmentsHandler)
	e.GET("/employees", h.ListEmployeesHandler)
	e.GET("/employees/managers", h.ManagersHandler)
	e.GET("/tasks", h.CatalogueHandler)
	e.GET("/tasks/:number", h.RunTaskHandler)
	e.POST("/odd-occurrence", h.OddOccurrenceHandler)

	exportGroup := e.Group("/export")
	exportGroup.GET("/tasks.xlsx", h.ExportTasksHandler)
}

func (a *App) Run() error {
	defer a.Close()
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}

// Close releases the data source connection, if one was opened.
func (a *App) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}
