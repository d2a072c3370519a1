package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/locvowork/employee_query_sample/internal/domain"
	"github.com/locvowork/employee_query_sample/internal/repository/builder"
)

// PostgresSource loads departments and employees from PostgreSQL. It expects
// the tables
//
//	departments(dept_no, dept_name)
//	employees(emp_no, name, job_title, salary, hire_date, dept_no, mgr_no)
//
// where mgr_no is nullable.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource creates a new instance of PostgresSource
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func departmentsQuery() string {
	return builder.NewSQLBuilder().
		Select("dept_no", "dept_name").
		From("departments").
		OrderBy("dept_no ASC").
		Build()
}

func employeesQuery() string {
	return builder.NewSQLBuilder().
		Select("e.emp_no", "e.name", "e.job_title", "e.salary", "e.hire_date", "e.dept_no", "e.mgr_no", "m.name").
		From("employees e").
		Join("LEFT", "employees m", "m.emp_no = e.mgr_no").
		OrderBy("e.emp_no ASC").
		Build()
}

func (r *PostgresSource) LoadDepartments(ctx context.Context) ([]domain.Department, error) {
	rows, err := r.db.QueryContext(ctx, departmentsQuery())
	if err != nil {
		return nil, fmt.Errorf("query departments: %w", err)
	}
	defer rows.Close()

	departments := []domain.Department{}
	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.DepartmentNumber, &d.Name); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (r *PostgresSource) LoadEmployees(ctx context.Context) ([]domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, employeesQuery())
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		var (
			e       domain.Employee
			mgrNo   sql.NullInt64
			mgrName sql.NullString
		)
		if err := rows.Scan(&e.EmployeeNumber, &e.Name, &e.JobTitle, &e.Salary, &e.HireDate, &e.DepartmentNumber, &mgrNo, &mgrName); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		if mgrNo.Valid {
			e.Manager = &domain.ManagerRef{EmployeeNumber: int(mgrNo.Int64), Name: mgrName.String}
		}
		e.HireDate = e.HireDate.UTC()
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
