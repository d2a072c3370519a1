package dataset

import (
	"context"
	"errors"
	"fmt"

	"github.com/locvowork/employee_query_sample/internal/domain"
	"github.com/locvowork/employee_query_sample/internal/logger"
)

var (
	ErrDuplicateEmployee   = errors.New("duplicate employee number")
	ErrDuplicateDepartment = errors.New("duplicate department number")
	ErrUnknownManager      = errors.New("unknown manager")
	ErrUnknownDepartment   = errors.New("unknown department")
)

// Snapshot holds the two collections loaded once from a DataSource. It is
// read-only: accessors hand out copies.
type Snapshot struct {
	departments []domain.Department
	employees   []domain.Employee
	byNumber    map[int]int
}

// New builds a snapshot from already loaded collections. Identifiers must be
// unique within their collection.
func New(departments []domain.Department, employees []domain.Employee) (*Snapshot, error) {
	s := &Snapshot{
		departments: make([]domain.Department, len(departments)),
		employees:   make([]domain.Employee, len(employees)),
		byNumber:    make(map[int]int, len(employees)),
	}

	seen := make(map[int]struct{}, len(departments))
	for i, d := range departments {
		if _, dup := seen[d.DepartmentNumber]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateDepartment, d.DepartmentNumber)
		}
		seen[d.DepartmentNumber] = struct{}{}
		s.departments[i] = d
	}

	for i, e := range employees {
		if _, dup := s.byNumber[e.EmployeeNumber]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateEmployee, e.EmployeeNumber)
		}
		s.byNumber[e.EmployeeNumber] = i
		s.employees[i] = e.Clone()
	}
	return s, nil
}

// Load calls src exactly once for each collection and builds a snapshot.
func Load(ctx context.Context, src domain.DataSource, opts ...Option) (*Snapshot, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}

	departments, err := src.LoadDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("load departments: %w", err)
	}
	employees, err := src.LoadEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}

	s, err := New(departments, employees)
	if err != nil {
		return nil, err
	}
	if cfg.strictReferences {
		if err := s.checkReferences(); err != nil {
			return nil, err
		}
	}

	logger.InfoLog(ctx, "Dataset loaded: %d departments, %d employees", len(departments), len(employees))
	return s, nil
}

func (s *Snapshot) checkReferences() error {
	depts := make(map[int]struct{}, len(s.departments))
	for _, d := range s.departments {
		depts[d.DepartmentNumber] = struct{}{}
	}
	for _, e := range s.employees {
		if _, ok := depts[e.DepartmentNumber]; !ok {
			return fmt.Errorf("employee %d: %w: %d", e.EmployeeNumber, ErrUnknownDepartment, e.DepartmentNumber)
		}
		if n, ok := e.ManagerNumber(); ok {
			if _, found := s.byNumber[n]; !found {
				return fmt.Errorf("employee %d: %w: %d", e.EmployeeNumber, ErrUnknownManager, n)
			}
		}
	}
	return nil
}

// Departments returns a copy of the department collection in source order.
func (s *Snapshot) Departments() []domain.Department {
	out := make([]domain.Department, len(s.departments))
	copy(out, s.departments)
	return out
}

// Employees returns a copy of the employee collection in source order.
func (s *Snapshot) Employees() []domain.Employee {
	out := make([]domain.Employee, len(s.employees))
	for i, e := range s.employees {
		out[i] = e.Clone()
	}
	return out
}

// EmployeeByNumber looks an employee up by number.
func (s *Snapshot) EmployeeByNumber(n int) (domain.Employee, bool) {
	i, ok := s.byNumber[n]
	if !ok {
		return domain.Employee{}, false
	}
	return s.employees[i].Clone(), true
}

// ManagerOf resolves e's manager reference.
func (s *Snapshot) ManagerOf(e domain.Employee) (domain.Employee, bool) {
	n, ok := e.ManagerNumber()
	if !ok {
		return domain.Employee{}, false
	}
	return s.EmployeeByNumber(n)
}
