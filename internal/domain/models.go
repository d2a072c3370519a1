package domain

import "time"

// ==================== EMPLOYEES & DEPARTMENTS ====================

// Department represents the departments collection
type Department struct {
	DepartmentNumber int    `json:"department_number" yaml:"department_number" db:"dept_no"`
	Name             string `json:"name" yaml:"name" db:"dept_name"`
}

// ManagerRef points at another employee by number. Name is cached for display;
// the referenced employee is resolved through a lookup, never owned.
type ManagerRef struct {
	EmployeeNumber int    `json:"employee_number" yaml:"employee_number" db:"mgr_no"`
	Name           string `json:"name" yaml:"name" db:"mgr_name"`
}

// Employee represents the employees collection
type Employee struct {
	EmployeeNumber   int         `json:"employee_number" db:"emp_no"`
	Name             string      `json:"name" db:"name"`
	JobTitle         string      `json:"job_title" db:"job_title"`
	Salary           int         `json:"salary" db:"salary"`
	HireDate         time.Time   `json:"hire_date" db:"hire_date"`
	DepartmentNumber int         `json:"department_number" db:"dept_no"`
	Manager          *ManagerRef `json:"manager,omitempty"`
}

// ManagerNumber returns the number of the employee's manager, if any.
func (e Employee) ManagerNumber() (int, bool) {
	if e.Manager == nil {
		return 0, false
	}
	return e.Manager.EmployeeNumber, true
}

// Clone returns a copy that shares no memory with e.
func (e Employee) Clone() Employee {
	if e.Manager != nil {
		m := *e.Manager
		e.Manager = &m
	}
	return e
}
