package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/locvowork/employee_query_sample/internal/bootstrap"
	"github.com/locvowork/employee_query_sample/internal/logger"
)

func main() {
	ctx := context.Background()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		logger.ErrorLog(ctx, "Failed to initialize application", err)
		panic(err)
	}

	if err := app.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.ErrorLog(ctx, "Server stopped", err)
		panic(err)
	}
}
