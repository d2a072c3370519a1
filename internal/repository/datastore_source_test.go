package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/datastore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/employee_query_sample/internal/domain"
)

var (
	_ domain.DataSource = (*DatastoreSource)(nil)
	_ domain.DataSink   = (*DatastoreSource)(nil)
)

// fakeDatastore keeps entities per kind in insertion order.
type fakeDatastore struct {
	departments []departmentEntity
	employees   []employeeEntity
	putCalls    []int
	err         error
}

func (f *fakeDatastore) GetAll(ctx context.Context, q *datastore.Query, dst interface{}) ([]*datastore.Key, error) {
	if f.err != nil {
		return nil, f.err
	}
	switch d := dst.(type) {
	case *[]departmentEntity:
		*d = append(*d, f.departments...)
	case *[]employeeEntity:
		*d = append(*d, f.employees...)
	default:
		return nil, errors.New("unexpected destination")
	}
	return nil, nil
}

func (f *fakeDatastore) PutMulti(ctx context.Context, keys []*datastore.Key, src interface{}) ([]*datastore.Key, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.putCalls = append(f.putCalls, len(keys))
	switch s := src.(type) {
	case []departmentEntity:
		f.departments = append(f.departments, s...)
	case []employeeEntity:
		f.employees = append(f.employees, s...)
	default:
		return nil, errors.New("unexpected source")
	}
	return keys, nil
}

func TestDatastoreSourceRoundTrip(t *testing.T) {
	ctx := context.Background()
	fake := &fakeDatastore{}
	src := &DatastoreSource{client: fake}

	hired := time.Date(2017, 3, 1, 0, 0, 0, 0, time.UTC)
	depts := []domain.Department{{DepartmentNumber: 10, Name: "ACCOUNTING"}}
	emps := []domain.Employee{
		{EmployeeNumber: 0, Name: "Zero", JobTitle: "Boss", Salary: 5000, HireDate: hired, DepartmentNumber: 10},
		{EmployeeNumber: 1, Name: "One", JobTitle: "Clerk", Salary: 900, HireDate: hired, DepartmentNumber: 10,
			Manager: &domain.ManagerRef{EmployeeNumber: 0, Name: "Zero"}},
	}
	require.NoError(t, src.Save(ctx, depts, emps))
	assert.Equal(t, []int{1, 2}, fake.putCalls)

	gotDepts, err := src.LoadDepartments(ctx)
	require.NoError(t, err)
	assert.Equal(t, depts, gotDepts)

	gotEmps, err := src.LoadEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, emps, gotEmps)
}

func TestDatastoreSourceUnknownManagerKeepsNumber(t *testing.T) {
	fake := &fakeDatastore{employees: []employeeEntity{
		{EmployeeNumber: 2, Name: "Two", HasManager: true, ManagerNumber: 99},
	}}
	src := &DatastoreSource{client: fake}

	emps, err := src.LoadEmployees(context.Background())
	require.NoError(t, err)
	require.Len(t, emps, 1)
	assert.Equal(t, &domain.ManagerRef{EmployeeNumber: 99}, emps[0].Manager)
}

func TestDatastoreSourceSaveBatches(t *testing.T) {
	fake := &fakeDatastore{}
	src := &DatastoreSource{client: fake}

	emps := make([]domain.Employee, datastorePutLimit+1)
	for i := range emps {
		emps[i] = domain.Employee{EmployeeNumber: i + 1}
	}
	require.NoError(t, src.Save(context.Background(), nil, emps))
	assert.Equal(t, []int{datastorePutLimit, 1}, fake.putCalls)
}

func TestDatastoreSourceErrors(t *testing.T) {
	boom := errors.New("unavailable")
	src := &DatastoreSource{client: &fakeDatastore{err: boom}}

	_, err := src.LoadDepartments(context.Background())
	require.ErrorIs(t, err, boom)
	_, err = src.LoadEmployees(context.Background())
	require.ErrorIs(t, err, boom)
	err = src.Save(context.Background(), []domain.Department{{DepartmentNumber: 1}}, nil)
	require.ErrorIs(t, err, boom)
}

func TestEntityKey(t *testing.T) {
	key := entityKey(EmployeeKind, 0)
	assert.Equal(t, EmployeeKind, key.Kind)
	assert.Equal(t, "0", key.Name)
	assert.False(t, key.Incomplete())
}
