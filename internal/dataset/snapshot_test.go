package dataset

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/locvowork/employee_query_sample/internal/domain"
)

type countingSource struct {
	depts, emps int
	departments []domain.Department
	employees   []domain.Employee
	err         error
}

func (c *countingSource) LoadDepartments(ctx context.Context) ([]domain.Department, error) {
	c.depts++
	return c.departments, c.err
}

func (c *countingSource) LoadEmployees(ctx context.Context) ([]domain.Employee, error) {
	c.emps++
	return c.employees, nil
}

func TestEmbeddedSource(t *testing.T) {
	src, err := NewEmbeddedSource()
	require.NoError(t, err)

	s, err := Load(context.Background(), src, WithStrictReferences(true))
	require.NoError(t, err)
	require.Len(t, s.Departments(), 4)
	require.Len(t, s.Employees(), 13)

	adams, ok := s.EmployeeByNumber(7)
	require.True(t, ok)
	require.Equal(t, "Adams", adams.Name)
	require.Equal(t, time.Date(2020, 1, 12, 0, 0, 0, 0, time.UTC), adams.HireDate)
	require.Equal(t, &domain.ManagerRef{EmployeeNumber: 5, Name: "Scott"}, adams.Manager)

	mgr, ok := s.ManagerOf(adams)
	require.True(t, ok)
	require.Equal(t, "Scott", mgr.Name)

	king, _ := s.EmployeeByNumber(1)
	_, ok = s.ManagerOf(king)
	require.False(t, ok)
}

func TestFileSource(t *testing.T) {
	src, err := NewFileSource("testdata/small.yaml")
	require.NoError(t, err)

	emps, err := src.LoadEmployees(context.Background())
	require.NoError(t, err)
	require.Len(t, emps, 2)
	require.Nil(t, emps[0].Manager)
	require.Equal(t, "Alice", emps[1].Manager.Name)

	_, err = NewFileSource("testdata/bad_manager.yaml")
	require.ErrorIs(t, err, ErrUnknownManager)

	_, err = NewFileSource("testdata/missing.yaml")
	require.Error(t, err)
}

func TestParseYAMLManagerNumberZero(t *testing.T) {
	src, err := ParseYAML([]byte(`
employees:
  - employee_number: 0
    name: Zero
    hire_date: "2015-11-17"
  - employee_number: 1
    name: One
    hire_date: "2016-01-04"
    manager: 0
`))
	require.NoError(t, err)

	emps, err := src.LoadEmployees(context.Background())
	require.NoError(t, err)
	require.Nil(t, emps[0].Manager)
	require.Equal(t, &domain.ManagerRef{EmployeeNumber: 0, Name: "Zero"}, emps[1].Manager)
}

func TestParseYAMLRejectsBadDate(t *testing.T) {
	_, err := ParseYAML([]byte(`
employees:
  - employee_number: 1
    name: X
    hire_date: "17/11/2015"
`))
	require.Error(t, err)
}

func TestLoadCallsSourceOnce(t *testing.T) {
	src := &countingSource{departments: []domain.Department{{DepartmentNumber: 1, Name: "SALES"}}}

	s, err := Load(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, 1, src.depts)
	require.Equal(t, 1, src.emps)
	require.Empty(t, s.Employees())
}

func TestLoadPropagatesSourceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Load(context.Background(), &countingSource{err: boom})
	require.ErrorIs(t, err, boom)
}

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New([]domain.Department{{DepartmentNumber: 1}, {DepartmentNumber: 1}}, nil)
	require.ErrorIs(t, err, ErrDuplicateDepartment)

	_, err = New(nil, []domain.Employee{{EmployeeNumber: 3}, {EmployeeNumber: 3}})
	require.ErrorIs(t, err, ErrDuplicateEmployee)
}

func TestStrictReferences(t *testing.T) {
	src := &countingSource{
		departments: []domain.Department{{DepartmentNumber: 1}},
		employees:   []domain.Employee{{EmployeeNumber: 1, DepartmentNumber: 2}},
	}
	_, err := Load(context.Background(), src)
	require.NoError(t, err)

	_, err = Load(context.Background(), src, WithStrictReferences(true))
	require.ErrorIs(t, err, ErrUnknownDepartment)

	src.employees = []domain.Employee{{EmployeeNumber: 1, DepartmentNumber: 1, Manager: &domain.ManagerRef{EmployeeNumber: 8}}}
	_, err = Load(context.Background(), src, WithStrictReferences(true))
	require.ErrorIs(t, err, ErrUnknownManager)
}

func TestSnapshotIsImmutable(t *testing.T) {
	emps := []domain.Employee{{EmployeeNumber: 1, Name: "Alice"}, {EmployeeNumber: 2, Name: "Bob", Manager: &domain.ManagerRef{EmployeeNumber: 1, Name: "Alice"}}}
	s, err := New(nil, emps)
	require.NoError(t, err)

	emps[0].Name = "changed"
	got := s.Employees()
	got[1].Manager.Name = "changed"

	require.Equal(t, "Alice", s.Employees()[0].Name)
	require.Equal(t, "Alice", s.Employees()[1].Manager.Name)
}
