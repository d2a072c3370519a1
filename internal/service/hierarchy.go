package service

import (
	"github.com/locvowork/employee_query_sample/internal/domain"
	"github.com/locvowork/employee_query_sample/pkg/query"
)

// EmployeesWithSubordinates returns the employees that manage at least one
// other employee, ordered by name ascending then salary descending.
func EmployeesWithSubordinates(emps []domain.Employee) []domain.Employee {
	// Collect manager numbers in one pass. A self-reference does not count.
	managers := make(map[int]struct{})
	for _, e := range emps {
		if n, ok := e.ManagerNumber(); ok && n != e.EmployeeNumber {
			managers[n] = struct{}{}
		}
	}

	withReports := query.Filter(query.From(emps), func(e domain.Employee) bool {
		_, ok := managers[e.EmployeeNumber]
		return ok
	})
	return query.Sort(withReports,
		query.Asc(func(e domain.Employee) string { return e.Name }),
		query.Desc(func(e domain.Employee) int { return e.Salary }),
	)
}

// EmployeesWithSubordinates runs the hierarchy query on the snapshot.
func (ts *TaskService) EmployeesWithSubordinates() []domain.Employee {
	return EmployeesWithSubordinates(ts.employees())
}
