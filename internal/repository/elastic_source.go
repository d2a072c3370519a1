package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/olivere/elastic/v7"

	"github.com/locvowork/employee_query_sample/internal/domain"
)

const (
	elasticPageSize  = 1000
	elasticKeepAlive = "2m"
)

// ElasticSource loads departments and employees from two Elasticsearch
// indices whose documents use the JSON shape of the domain types.
type ElasticSource struct {
	client          *elastic.Client
	departmentIndex string
	employeeIndex   string
}

// NewElasticSource creates a new instance of ElasticSource
func NewElasticSource(client *elastic.Client, departmentIndex, employeeIndex string) *ElasticSource {
	return &ElasticSource{
		client:          client,
		departmentIndex: departmentIndex,
		employeeIndex:   employeeIndex,
	}
}

func (s *ElasticSource) LoadDepartments(ctx context.Context) ([]domain.Department, error) {
	departments, err := scrollAll[domain.Department](ctx, s.client, s.departmentIndex, "department_number")
	if err != nil {
		return nil, fmt.Errorf("load departments: %w", err)
	}
	return departments, nil
}

func (s *ElasticSource) LoadEmployees(ctx context.Context) ([]domain.Employee, error) {
	employees, err := scrollAll[domain.Employee](ctx, s.client, s.employeeIndex, "employee_number")
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	for i := range employees {
		employees[i].HireDate = employees[i].HireDate.UTC()
	}
	return employees, nil
}

// scrollAll reads every document of index, sorted by sortField.
func scrollAll[T any](ctx context.Context, client *elastic.Client, index, sortField string) ([]T, error) {
	scroll := client.Scroll(index).
		Size(elasticPageSize).
		KeepAlive(elasticKeepAlive).
		Sort(sortField, true)
	defer scroll.Clear(ctx)

	docs := make([]T, 0)
	for {
		results, err := scroll.Do(ctx)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("scroll %s: %w", index, err)
		}

		for _, hit := range results.Hits.Hits {
			var doc T
			if err := json.Unmarshal(hit.Source, &doc); err != nil {
				return nil, fmt.Errorf("decode %s/%s: %w", index, hit.Id, err)
			}
			docs = append(docs, doc)
		}
	}
}

// Save bulk-indexes both collections, using the entity number as document id.
func (s *ElasticSource) Save(ctx context.Context, departments []domain.Department, employees []domain.Employee) error {
	bulkRequest := s.client.Bulk()
	for _, d := range departments {
		bulkRequest.Add(elastic.NewBulkIndexRequest().
			Index(s.departmentIndex).
			Id(strconv.Itoa(d.DepartmentNumber)).
			Doc(d))
	}
	for _, e := range employees {
		bulkRequest.Add(elastic.NewBulkIndexRequest().
			Index(s.employeeIndex).
			Id(strconv.Itoa(e.EmployeeNumber)).
			Doc(e))
	}

	if bulkRequest.NumberOfActions() == 0 {
		return nil
	}

	bulkResponse, err := bulkRequest.Refresh("true").Do(ctx)
	if err != nil {
		return fmt.Errorf("bulk index failed: %w", err)
	}
	if failed := bulkResponse.Failed(); len(failed) > 0 {
		first := failed[0]
		reason := "unknown error"
		if first.Error != nil {
			reason = first.Error.Reason
		}
		return fmt.Errorf("bulk index: %d of %d items failed, first %s/%s: %s",
			len(failed), len(bulkResponse.Items), first.Index, first.Id, reason)
	}
	return nil
}
