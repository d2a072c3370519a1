package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/locvowork/employee_query_sample/internal/bootstrap"
	"github.com/locvowork/employee_query_sample/internal/logger"
	"github.com/locvowork/employee_query_sample/internal/report"
	"github.com/locvowork/employee_query_sample/internal/service"
)

func main() {
	task := flag.Int("task", 0, "Task number to run (0 runs every task)")
	export := flag.String("export", "", "Write every task result to this xlsx file")
	rawValues := flag.String("values", "", "Comma separated integers for the odd-occurrence task")
	seed := flag.Bool("seed", false, "Write the embedded dataset into DATA_SOURCE (datastore or elasticsearch) before running")

	flag.Parse()

	ctx := context.Background()

	values, err := parseValues(*rawValues)
	if err != nil {
		log.Fatal(err)
	}

	app := bootstrap.NewApp()
	load := app.LoadData
	if *seed {
		load = app.Seed
	}
	if err := load(ctx); err != nil {
		logger.ErrorLog(ctx, "Failed to load data", err)
		log.Fatal(err)
	}
	defer app.Close()

	if *seed {
		color.Green("Seeded %d departments and %d employees",
			len(app.Snapshot.Departments()), len(app.Snapshot.Employees()))
	}

	if *export != "" {
		if err := report.TaskWorkbook(ctx, app.Tasks, values).ExportToExcel(ctx, *export); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		color.Green("Wrote %s", *export)
		return
	}

	tasks := service.Catalogue()
	if *task != 0 {
		tasks = []service.Task{{Number: *task, Title: fmt.Sprintf("Task %d", *task)}}
		for _, t := range service.Catalogue() {
			if t.Number == *task {
				tasks[0] = t
			}
		}
	}

	failed := false
	for _, t := range tasks {
		color.New(color.FgCyan, color.Bold).Printf("%2d. %s\n", t.Number, t.Title)
		fmt.Println(strings.Repeat("-", 50))

		result, err := app.Tasks.Run(ctx, t.Number, values)
		if err != nil {
			color.Red("error: %v\n\n", err)
			failed = true
			continue
		}
		if err := printResult(result); err != nil {
			log.Fatal(err)
		}
		fmt.Println()
	}

	if failed {
		app.Close()
		os.Exit(1)
	}
}

func printResult(result interface{}) error {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func parseValues(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return service.DefaultOddValues, nil
	}
	var values []int
	for _, p := range strings.Split(raw, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid value %q", p)
		}
		values = append(values, v)
	}
	return values, nil
}
