package domain

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEmployeeSummaryJSON(t *testing.T) {
	testCases := map[string]struct {
		input  EmployeeSummary
		output string
	}{
		"placeholder": {
			input:  EmployeeSummary{Name: "No value"},
			output: `{"name":"No value","job":null,"hire_date":null}`,
		},
		"full row": {
			input: EmployeeSummary{
				Name:     "Ford",
				Job:      sql.NullString{String: "Frontend programmer", Valid: true},
				HireDate: sql.NullTime{Time: time.Date(2018, 12, 3, 0, 0, 0, 0, time.UTC), Valid: true},
			},
			output: `{"name":"Ford","job":"Frontend programmer","hire_date":"2018-12-03T00:00:00Z"}`,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(tc.input)
			require.NoError(t, err)
			require.JSONEq(t, tc.output, string(data))
		})
	}
}

func TestEmployeeClone(t *testing.T) {
	e := Employee{EmployeeNumber: 2, Manager: &ManagerRef{EmployeeNumber: 1, Name: "King"}}
	c := e.Clone()
	c.Manager.Name = "changed"
	require.Equal(t, "King", e.Manager.Name)

	n, ok := e.ManagerNumber()
	require.True(t, ok)
	require.Equal(t, 1, n)

	_, ok = Employee{}.ManagerNumber()
	require.False(t, ok)
}
