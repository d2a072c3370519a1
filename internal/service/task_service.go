package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/locvowork/employee_query_sample/internal/dataset"
	"github.com/locvowork/employee_query_sample/internal/domain"
	"github.com/locvowork/employee_query_sample/internal/logger"
	"github.com/locvowork/employee_query_sample/pkg/query"
)

const (
	JobBackendProgrammer  = "Backend programmer"
	JobFrontendProgrammer = "Frontend programmer"

	// PlaceholderName names the summary row that stands for "no value".
	PlaceholderName = "No value"
)

// DefaultOddValues feeds the odd-occurrence task when a caller gives none.
var DefaultOddValues = []int{1, 1, 1, 1, 1, 1, 10, 1, 1, 1, 1}

// ErrUnknownTask is returned by Run for task numbers outside the catalogue.
var ErrUnknownTask = errors.New("unknown task")

// TaskService runs the exercise queries against one snapshot.
type TaskService struct {
	snapshot *dataset.Snapshot
}

// NewTaskService creates a new TaskService instance
func NewTaskService(s *dataset.Snapshot) *TaskService {
	return &TaskService{snapshot: s}
}

// Snapshot returns the snapshot the service reads from.
func (ts *TaskService) Snapshot() *dataset.Snapshot {
	return ts.snapshot
}

func (ts *TaskService) employees() []domain.Employee {
	return ts.snapshot.Employees()
}

func hasJob(job string) func(domain.Employee) bool {
	return func(e domain.Employee) bool { return e.JobTitle == job }
}

func employeeName(e domain.Employee) string { return e.Name }
func employeeSalary(e domain.Employee) int  { return e.Salary }
func employeeHireDate(e domain.Employee) time.Time {
	return e.HireDate
}

// ==================== Filtering & Ordering ====================

// BackendProgrammers returns every backend programmer in source order.
func (ts *TaskService) BackendProgrammers() []domain.Employee {
	return query.ToSlice(query.Filter(query.From(ts.employees()), hasJob(JobBackendProgrammer)))
}

// FrontendProgrammersEarningOver returns frontend programmers paid more than
// minSalary, by name descending.
func (ts *TaskService) FrontendProgrammersEarningOver(minSalary int) []domain.Employee {
	matches := query.Filter(query.From(ts.employees()), func(e domain.Employee) bool {
		return e.JobTitle == JobFrontendProgrammer && e.Salary > minSalary
	})
	return query.Sort(matches, query.Desc(employeeName))
}

// ==================== Aggregates ====================

// MaxSalary returns the highest salary. It fails with query.ErrEmptyCollection
// when there are no employees.
func (ts *TaskService) MaxSalary() (int, error) {
	return query.MaxBy(query.From(ts.employees()), employeeSalary)
}

// TopEarners returns every employee paid the highest salary.
func (ts *TaskService) TopEarners() ([]domain.Employee, error) {
	emps := ts.employees()
	top, err := query.MaxBy(query.From(emps), employeeSalary)
	if err != nil {
		return nil, err
	}
	return query.ToSlice(query.Filter(query.From(emps), func(e domain.Employee) bool {
		return e.Salary == top
	})), nil
}

// HasBackendProgrammer reports whether anybody works as a backend programmer.
func (ts *TaskService) HasBackendProgrammer() bool {
	return query.Any(query.From(ts.employees()), hasJob(JobBackendProgrammer))
}

// LatestFrontendHire returns the most recently hired frontend programmer.
func (ts *TaskService) LatestFrontendHire() (domain.Employee, error) {
	frontend := query.Filter(query.From(ts.employees()), hasJob(JobFrontendProgrammer))
	sorted := query.Sort(frontend, query.DescFunc(employeeHireDate, time.Time.Compare))
	return query.First(query.From(sorted))
}

// ==================== Projections & Grouping ====================

// NamesAndJobs projects every employee onto name and job.
func (ts *TaskService) NamesAndJobs() []domain.NameJob {
	return query.ToSlice(query.Map(query.From(ts.employees()), func(e domain.Employee) domain.NameJob {
		return domain.NameJob{Name: e.Name, Job: e.JobTitle}
	}))
}

// HeadcountByJob counts employees per job title, in first-seen job order.
func (ts *TaskService) HeadcountByJob() []domain.JobHeadcount {
	groups := query.GroupBy(query.From(ts.employees()), func(e domain.Employee) string { return e.JobTitle })
	return query.ToSlice(query.Map(query.From(groups), func(g query.Group[string, domain.Employee]) domain.JobHeadcount {
		return domain.JobHeadcount{Job: g.Key, Count: g.Count()}
	}))
}

// ==================== Joins ====================

// EmployeesWithDepartments inner-joins employees with their department.
// Employees whose department is unknown are left out.
func (ts *TaskService) EmployeesWithDepartments() []domain.EmployeeDepartment {
	return query.ToSlice(query.Join(
		query.From(ts.employees()),
		query.From(ts.snapshot.Departments()),
		func(e domain.Employee) int { return e.DepartmentNumber },
		func(d domain.Department) int { return d.DepartmentNumber },
		func(e domain.Employee, d domain.Department) domain.EmployeeDepartment {
			return domain.EmployeeDepartment{Name: e.Name, Job: e.JobTitle, DepartmentName: d.Name}
		},
	))
}

type departmentStaff struct {
	department domain.Department
	staff      []domain.Employee
}

// departmentsWithStaff pairs every department with its employees, including
// departments nobody works in.
func (ts *TaskService) departmentsWithStaff() []departmentStaff {
	return query.ToSlice(query.GroupJoin(
		query.From(ts.snapshot.Departments()),
		query.From(ts.employees()),
		func(d domain.Department) int { return d.DepartmentNumber },
		func(e domain.Employee) int { return e.DepartmentNumber },
		func(d domain.Department, staff []domain.Employee) departmentStaff {
			return departmentStaff{department: d, staff: staff}
		},
	))
}

// DepartmentHeadcounts returns the headcount of every department with more
// than minEmployees employees, in department order.
func (ts *TaskService) DepartmentHeadcounts(minEmployees int) []domain.DepartmentHeadcount {
	counted := query.Map(query.From(ts.departmentsWithStaff()), func(ds departmentStaff) domain.DepartmentHeadcount {
		return domain.DepartmentHeadcount{Name: ds.department.Name, NumOfEmployees: len(ds.staff)}
	})
	return query.ToSlice(query.Filter(counted, func(h domain.DepartmentHeadcount) bool {
		return h.NumOfEmployees > minEmployees
	}))
}

// BusyDepartments returns departments with more than one employee.
func (ts *TaskService) BusyDepartments() []domain.DepartmentHeadcount {
	return ts.DepartmentHeadcounts(1)
}

// DepartmentsWithFiveOrNoEmployees returns departments with exactly five
// employees or none at all, by name ascending.
func (ts *TaskService) DepartmentsWithFiveOrNoEmployees() []domain.Department {
	return ts.DepartmentsWithHeadcount(0, 5)
}

// DepartmentsWithHeadcount returns departments whose headcount is one of
// counts, by name ascending.
func (ts *TaskService) DepartmentsWithHeadcount(counts ...int) []domain.Department {
	matching := query.Filter(query.From(ts.departmentsWithStaff()), func(ds departmentStaff) bool {
		return slices.Contains(counts, len(ds.staff))
	})
	depts := query.Map(matching, func(ds departmentStaff) domain.Department { return ds.department })
	return query.Sort(depts, query.Asc(func(d domain.Department) string { return d.Name }))
}

// ==================== Set Operations ====================

// SummariesWithPlaceholder projects employees onto name, job and hire date and
// unions the result with a single placeholder row that has neither job nor
// hire date.
func (ts *TaskService) SummariesWithPlaceholder() []domain.EmployeeSummary {
	summaries := query.Map(query.From(ts.employees()), func(e domain.Employee) domain.EmployeeSummary {
		return domain.EmployeeSummary{
			Name:     e.Name,
			Job:      sql.NullString{String: e.JobTitle, Valid: true},
			HireDate: sql.NullTime{Time: e.HireDate, Valid: true},
		}
	})
	placeholder := []domain.EmployeeSummary{{Name: PlaceholderName}}
	return query.ToSlice(query.Union(summaries, query.From(placeholder)))
}

// ==================== Frequency ====================

// OddOccurrence returns the value occurring an odd number of times.
func (ts *TaskService) OddOccurrence(values []int) (int, error) {
	return query.OddOccurrence(values)
}

// ==================== Dispatch ====================

// Task describes one entry of the catalogue.
type Task struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

var catalogue = []Task{
	{1, "Backend programmers"},
	{2, "Frontend programmers earning over 1000, by name descending"},
	{3, "Highest salary"},
	{4, "Employees with the highest salary"},
	{5, "Names and jobs"},
	{6, "Employees with their department"},
	{7, "Headcount by job"},
	{8, "Is there a backend programmer"},
	{9, "Most recently hired frontend programmer"},
	{10, "Employee summaries with placeholder row"},
	{11, "Departments with more than one employee"},
	{12, "Employees with subordinates"},
	{13, "Value occurring an odd number of times"},
	{14, "Departments with five or no employees"},
}

// Catalogue lists the tasks Run understands.
func Catalogue() []Task {
	out := make([]Task, len(catalogue))
	copy(out, catalogue)
	return out
}

// Run executes task n. values is only read by task 13.
func (ts *TaskService) Run(ctx context.Context, n int, values []int) (interface{}, error) {
	var (
		result interface{}
		err    error
	)

	switch n {
	case 1:
		result = ts.BackendProgrammers()
	case 2:
		result = ts.FrontendProgrammersEarningOver(1000)
	case 3:
		result, err = ts.MaxSalary()
	case 4:
		result, err = ts.TopEarners()
	case 5:
		result = ts.NamesAndJobs()
	case 6:
		result = ts.EmployeesWithDepartments()
	case 7:
		result = ts.HeadcountByJob()
	case 8:
		result = ts.HasBackendProgrammer()
	case 9:
		result, err = ts.LatestFrontendHire()
	case 10:
		result = ts.SummariesWithPlaceholder()
	case 11:
		result = ts.BusyDepartments()
	case 12:
		result = ts.EmployeesWithSubordinates()
	case 13:
		result, err = ts.OddOccurrence(values)
	case 14:
		result = ts.DepartmentsWithFiveOrNoEmployees()
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTask, n)
	}

	if err != nil {
		logger.WarnLog(ctx, "Task %d failed: %v", n, err)
		return nil, fmt.Errorf("task %d: %w", n, err)
	}
	logger.DebugLog(ctx, "Task %d completed", n)
	return result, nil
}
