package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/datastore"

	"github.com/locvowork/employee_query_sample/internal/domain"
)

// Datastore kinds holding the two collections.
const (
	DepartmentKind = "Department"
	EmployeeKind   = "Employee"
)

// datastorePutLimit is the largest batch a single PutMulti accepts.
const datastorePutLimit = 500

// datastoreClient is the part of *datastore.Client the source needs.
type datastoreClient interface {
	GetAll(ctx context.Context, q *datastore.Query, dst interface{}) ([]*datastore.Key, error)
	PutMulti(ctx context.Context, keys []*datastore.Key, src interface{}) ([]*datastore.Key, error)
}

type departmentEntity struct {
	DepartmentNumber int    `datastore:"dept_no"`
	Name             string `datastore:"dept_name"`
}

// employeeEntity flattens the manager reference. HasManager separates "no
// manager" from a manager numbered 0.
type employeeEntity struct {
	EmployeeNumber   int       `datastore:"emp_no"`
	Name             string    `datastore:"name"`
	JobTitle         string    `datastore:"job_title"`
	Salary           int       `datastore:"salary"`
	HireDate         time.Time `datastore:"hire_date"`
	DepartmentNumber int       `datastore:"dept_no"`
	HasManager       bool      `datastore:"has_manager,noindex"`
	ManagerNumber    int       `datastore:"mgr_no,noindex"`
}

// DatastoreSource loads departments and employees from Cloud Datastore and
// can seed them. Keys are named after the entity number.
type DatastoreSource struct {
	client datastoreClient
}

// NewDatastoreSource creates a new instance of DatastoreSource
func NewDatastoreSource(client *datastore.Client) *DatastoreSource {
	return &DatastoreSource{client: client}
}

func entityKey(kind string, number int) *datastore.Key {
	return datastore.NameKey(kind, strconv.Itoa(number), nil)
}

func (s *DatastoreSource) LoadDepartments(ctx context.Context) ([]domain.Department, error) {
	var entities []departmentEntity
	q := datastore.NewQuery(DepartmentKind).Order("dept_no")
	if _, err := s.client.GetAll(ctx, q, &entities); err != nil {
		return nil, fmt.Errorf("query departments: %w", err)
	}

	departments := make([]domain.Department, 0, len(entities))
	for _, ent := range entities {
		departments = append(departments, domain.Department{DepartmentNumber: ent.DepartmentNumber, Name: ent.Name})
	}
	return departments, nil
}

// LoadEmployees reads every employee ordered by number. Datastore has no
// joins, so manager names are filled in from the loaded set; a manager
// outside it keeps an empty name.
func (s *DatastoreSource) LoadEmployees(ctx context.Context) ([]domain.Employee, error) {
	var entities []employeeEntity
	q := datastore.NewQuery(EmployeeKind).Order("emp_no")
	if _, err := s.client.GetAll(ctx, q, &entities); err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}

	names := make(map[int]string, len(entities))
	for _, ent := range entities {
		names[ent.EmployeeNumber] = ent.Name
	}

	employees := make([]domain.Employee, 0, len(entities))
	for _, ent := range entities {
		e := domain.Employee{
			EmployeeNumber:   ent.EmployeeNumber,
			Name:             ent.Name,
			JobTitle:         ent.JobTitle,
			Salary:           ent.Salary,
			HireDate:         ent.HireDate.UTC(),
			DepartmentNumber: ent.DepartmentNumber,
		}
		if ent.HasManager {
			e.Manager = &domain.ManagerRef{EmployeeNumber: ent.ManagerNumber, Name: names[ent.ManagerNumber]}
		}
		employees = append(employees, e)
	}
	return employees, nil
}

// Save upserts both collections, batching writes to the PutMulti limit.
func (s *DatastoreSource) Save(ctx context.Context, departments []domain.Department, employees []domain.Employee) error {
	deptKeys := make([]*datastore.Key, len(departments))
	deptEntities := make([]departmentEntity, len(departments))
	for i, d := range departments {
		deptKeys[i] = entityKey(DepartmentKind, d.DepartmentNumber)
		deptEntities[i] = departmentEntity{DepartmentNumber: d.DepartmentNumber, Name: d.Name}
	}
	if err := putBatched(ctx, s.client, deptKeys, deptEntities); err != nil {
		return fmt.Errorf("save departments: %w", err)
	}

	empKeys := make([]*datastore.Key, len(employees))
	empEntities := make([]employeeEntity, len(employees))
	for i, e := range employees {
		empKeys[i] = entityKey(EmployeeKind, e.EmployeeNumber)
		ent := employeeEntity{
			EmployeeNumber:   e.EmployeeNumber,
			Name:             e.Name,
			JobTitle:         e.JobTitle,
			Salary:           e.Salary,
			HireDate:         e.HireDate,
			DepartmentNumber: e.DepartmentNumber,
		}
		if n, ok := e.ManagerNumber(); ok {
			ent.HasManager = true
			ent.ManagerNumber = n
		}
		empEntities[i] = ent
	}
	if err := putBatched(ctx, s.client, empKeys, empEntities); err != nil {
		return fmt.Errorf("save employees: %w", err)
	}
	return nil
}

func putBatched[T any](ctx context.Context, client datastoreClient, keys []*datastore.Key, entities []T) error {
	for start := 0; start < len(keys); start += datastorePutLimit {
		end := min(start+datastorePutLimit, len(keys))
		if _, err := client.PutMulti(ctx, keys[start:end], entities[start:end]); err != nil {
			return err
		}
	}
	return nil
}
