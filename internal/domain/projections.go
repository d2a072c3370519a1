package domain

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Projected shapes returned by the task queries. Each one is comparable so
// that set operators can use structural equality.

// NameJob is the name/job projection of an employee.
type NameJob struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// EmployeeDepartment is one row of the employee × department join.
type EmployeeDepartment struct {
	Name           string `json:"name"`
	Job            string `json:"job"`
	DepartmentName string `json:"department_name"`
}

// JobHeadcount counts employees per job title.
type JobHeadcount struct {
	Job   string `json:"job"`
	Count int    `json:"count"`
}

// EmployeeSummary has optional job and hire date so a placeholder row can
// carry neither.
type EmployeeSummary struct {
	Name     string
	Job      sql.NullString
	HireDate sql.NullTime
}

// MarshalJSON writes absent fields as null.
func (s EmployeeSummary) MarshalJSON() ([]byte, error) {
	var out struct {
		Name     string     `json:"name"`
		Job      *string    `json:"job"`
		HireDate *time.Time `json:"hire_date"`
	}
	out.Name = s.Name
	if s.Job.Valid {
		out.Job = &s.Job.String
	}
	if s.HireDate.Valid {
		out.HireDate = &s.HireDate.Time
	}
	return json.Marshal(out)
}

// DepartmentHeadcount counts employees per department.
type DepartmentHeadcount struct {
	Name           string `json:"name"`
	NumOfEmployees int    `json:"num_of_employees"`
}
