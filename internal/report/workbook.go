package report

import (
	"context"
	"fmt"

	"github.com/locvowork/employee_query_sample/internal/domain"
	"github.com/locvowork/employee_query_sample/internal/logger"
	"github.com/locvowork/employee_query_sample/internal/service"
)

// scalar wraps a single value so it renders as a one-cell section.
type scalar struct {
	Value interface{}
}

var (
	employeeColumns = []ColumnConfig{
		{FieldName: "EmployeeNumber", Header: "No", Width: 6},
		{FieldName: "Name", Header: "Name", Width: 16},
		{FieldName: "JobTitle", Header: "Job", Width: 22},
		{FieldName: "Salary", Header: "Salary", Width: 10},
		{FieldName: "HireDate", Header: "Hire date", Width: 12},
		{FieldName: "DepartmentNumber", Header: "Dept", Width: 6},
		{FieldName: "Manager.Name", Header: "Manager", Width: 16},
	}
	departmentColumns = []ColumnConfig{
		{FieldName: "DepartmentNumber", Header: "No", Width: 6},
		{FieldName: "Name", Header: "Name", Width: 16},
	}
	valueColumns = []ColumnConfig{{FieldName: "Value", Header: "Value", Width: 12}}
)

// columnsFor picks the column layout matching a task result.
func columnsFor(result interface{}) ([]ColumnConfig, interface{}) {
	switch result.(type) {
	case []domain.Employee, domain.Employee:
		return employeeColumns, result
	case []domain.Department:
		return departmentColumns, result
	case []domain.NameJob:
		return []ColumnConfig{
			{FieldName: "Name", Header: "Name", Width: 16},
			{FieldName: "Job", Header: "Job", Width: 22},
		}, result
	case []domain.EmployeeDepartment:
		return []ColumnConfig{
			{FieldName: "Name", Header: "Name", Width: 16},
			{FieldName: "Job", Header: "Job", Width: 22},
			{FieldName: "DepartmentName", Header: "Department", Width: 16},
		}, result
	case []domain.JobHeadcount:
		return []ColumnConfig{
			{FieldName: "Job", Header: "Job", Width: 22},
			{FieldName: "Count", Header: "Employees", Width: 10},
		}, result
	case []domain.EmployeeSummary:
		return []ColumnConfig{
			{FieldName: "Name", Header: "Name", Width: 16},
			{FieldName: "Job", Header: "Job", Width: 22},
			{FieldName: "HireDate", Header: "Hire date", Width: 12},
		}, result
	case []domain.DepartmentHeadcount:
		return []ColumnConfig{
			{FieldName: "Name", Header: "Department", Width: 16},
			{FieldName: "NumOfEmployees", Header: "Employees", Width: 10},
		}, result
	default:
		return valueColumns, scalar{Value: result}
	}
}

// SheetName is the sheet title used for task n.
func SheetName(n int) string {
	return fmt.Sprintf("Task %02d", n)
}

// TaskWorkbook runs every catalogued task and lays out one sheet per task.
// values feeds the odd-occurrence task. A task that fails gets its error
// message as the sheet content instead of aborting the export.
func TaskWorkbook(ctx context.Context, ts *service.TaskService, values []int) *DataExporter {
	exporter := NewDataExporter()
	for _, task := range service.Catalogue() {
		sheet := exporter.AddSheet(SheetName(task.Number))

		result, err := ts.Run(ctx, task.Number, values)
		if err != nil {
			logger.WarnLog(ctx, "Exporting task %d without result: %v", task.Number, err)
			sheet.AddSection(&SectionConfig{
				Title:      task.Title,
				ShowHeader: true,
				Data:       scalar{Value: err.Error()},
				Columns:    []ColumnConfig{{FieldName: "Value", Header: "Error", Width: 40}},
			})
			continue
		}

		columns, data := columnsFor(result)
		sheet.AddSection(&SectionConfig{
			Title:      task.Title,
			ShowHeader: true,
			Data:       data,
			Columns:    columns,
		})
	}
	return exporter
}
