package domain

import "context"

// DataSource loads the two collections the queries run on. It is called once
// per process; callers cache the result.
type DataSource interface {
	LoadDepartments(ctx context.Context) ([]Department, error)
	LoadEmployees(ctx context.Context) ([]Employee, error)
}

// DataSink writes both collections to a store that a DataSource can later
// read them back from.
type DataSink interface {
	Save(ctx context.Context, departments []Department, employees []Employee) error
}
