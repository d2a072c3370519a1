package dataset

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/locvowork/employee_query_sample/internal/domain"
)

const hireDateLayout = "2006-01-02"

//go:embed data/company.yaml
var companyYAML []byte

// document is the YAML layout shared by the embedded dataset and data files.
type document struct {
	Departments []domain.Department `yaml:"departments"`
	Employees   []employeeRecord    `yaml:"employees"`
}

type employeeRecord struct {
	EmployeeNumber   int    `yaml:"employee_number"`
	Name             string `yaml:"name"`
	JobTitle         string `yaml:"job_title"`
	Salary           int    `yaml:"salary"`
	HireDate         string `yaml:"hire_date"`
	DepartmentNumber int    `yaml:"department_number"`
	Manager          *int   `yaml:"manager,omitempty"`
}

// YAMLSource serves both collections from a decoded YAML document.
type YAMLSource struct {
	departments []domain.Department
	employees   []domain.Employee
}

// NewEmbeddedSource returns the fixed dataset compiled into the binary.
func NewEmbeddedSource() (*YAMLSource, error) {
	return ParseYAML(companyYAML)
}

// NewFileSource reads a dataset from a YAML file.
func NewFileSource(path string) (*YAMLSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	src, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// ParseYAML decodes a dataset document. A manager number must name an
// employee of the same document.
func ParseYAML(data []byte) (*YAMLSource, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	names := make(map[int]string, len(doc.Employees))
	for _, rec := range doc.Employees {
		names[rec.EmployeeNumber] = rec.Name
	}

	employees := make([]domain.Employee, 0, len(doc.Employees))
	for _, rec := range doc.Employees {
		hired, err := time.Parse(hireDateLayout, rec.HireDate)
		if err != nil {
			return nil, fmt.Errorf("employee %d: hire_date: %w", rec.EmployeeNumber, err)
		}
		e := domain.Employee{
			EmployeeNumber:   rec.EmployeeNumber,
			Name:             rec.Name,
			JobTitle:         rec.JobTitle,
			Salary:           rec.Salary,
			HireDate:         hired,
			DepartmentNumber: rec.DepartmentNumber,
		}
		if rec.Manager != nil {
			name, ok := names[*rec.Manager]
			if !ok {
				return nil, fmt.Errorf("employee %d: %w: %d", rec.EmployeeNumber, ErrUnknownManager, *rec.Manager)
			}
			e.Manager = &domain.ManagerRef{EmployeeNumber: *rec.Manager, Name: name}
		}
		employees = append(employees, e)
	}

	if doc.Departments == nil {
		doc.Departments = []domain.Department{}
	}
	return &YAMLSource{departments: doc.Departments, employees: employees}, nil
}

func (s *YAMLSource) LoadDepartments(ctx context.Context) ([]domain.Department, error) {
	out := make([]domain.Department, len(s.departments))
	copy(out, s.departments)
	return out, nil
}

func (s *YAMLSource) LoadEmployees(ctx context.Context) ([]domain.Employee, error) {
	out := make([]domain.Employee, len(s.employees))
	for i, e := range s.employees {
		out[i] = e.Clone()
	}
	return out, nil
}
