package builder

import (
	"testing"
)

func TestSQLBuilder(t *testing.T) {
	t.Run("Select", func(t *testing.T) {
		query := NewSQLBuilder().Select("dept_no", "dept_name").From("departments").Build()
		expected := "SELECT dept_no, dept_name FROM departments"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
	})

	t.Run("Select with ordering", func(t *testing.T) {
		query := NewSQLBuilder().Select("*").From("departments").OrderBy("dept_name ASC").OrderBy("dept_no DESC").Build()
		expected := "SELECT * FROM departments ORDER BY dept_name ASC, dept_no DESC"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
	})

	t.Run("Self join", func(t *testing.T) {
		query := NewSQLBuilder().
			Select("e.emp_no", "m.name").
			From("employees e").
			Join("LEFT", "employees m", "m.emp_no = e.mgr_no").
			OrderBy("e.emp_no ASC").
			Build()
		expected := "SELECT e.emp_no, m.name FROM employees e LEFT JOIN employees m ON m.emp_no = e.mgr_no ORDER BY e.emp_no ASC"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
	})

	t.Run("Build is repeatable", func(t *testing.T) {
		b := NewSQLBuilder().Select("*").From("employees").OrderBy("emp_no ASC")
		if q1, q2 := b.Build(), b.Build(); q1 != q2 {
			t.Errorf("expected identical builds, got %q and %q", q1, q2)
		}
	})
}
