package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/locvowork/employee_query_sample/internal/domain"
)

var _ domain.DataSource = (*PostgresSource)(nil)

func TestDepartmentsQuery(t *testing.T) {
	assert.Equal(t, "SELECT dept_no, dept_name FROM departments ORDER BY dept_no ASC", departmentsQuery())
}

func TestEmployeesQuery(t *testing.T) {
	assert.Equal(t,
		"SELECT e.emp_no, e.name, e.job_title, e.salary, e.hire_date, e.dept_no, e.mgr_no, m.name "+
			"FROM employees e LEFT JOIN employees m ON m.emp_no = e.mgr_no ORDER BY e.emp_no ASC",
		employeesQuery())
}
