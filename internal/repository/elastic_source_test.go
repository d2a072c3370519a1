package repository

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/olivere/elastic/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/employee_query_sample/internal/domain"
)

var (
	_ domain.DataSource = (*ElasticSource)(nil)
	_ domain.DataSink   = (*ElasticSource)(nil)
)

// elasticStub answers the scroll and bulk endpoints with canned documents.
type elasticStub struct {
	mu       sync.Mutex
	pages    map[string]string
	bulkBody string
	bulkResp string
}

func (s *elasticStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/_search/scroll" && r.Method == http.MethodDelete:
		io.WriteString(w, `{"succeeded":true,"num_freed":1}`)
	case r.URL.Path == "/_search/scroll":
		io.WriteString(w, `{"_scroll_id":"done","hits":{"total":{"value":0,"relation":"eq"},"hits":[]}}`)
	case r.URL.Path == "/_bulk":
		body, _ := io.ReadAll(r.Body)
		s.bulkBody = string(body)
		io.WriteString(w, s.bulkResp)
	case strings.HasSuffix(r.URL.Path, "/_search"):
		index := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), "/_search")
		io.WriteString(w, `{"_scroll_id":"page1","hits":{"total":{"value":1,"relation":"eq"},"hits":[`+s.pages[index]+`]}}`)
	default:
		http.NotFound(w, r)
	}
}

func newElasticSource(t *testing.T, stub *elasticStub) *ElasticSource {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	client, err := elastic.NewSimpleClient(elastic.SetURL(srv.URL))
	require.NoError(t, err)
	return NewElasticSource(client, "departments", "employees")
}

func TestElasticSourceLoad(t *testing.T) {
	stub := &elasticStub{pages: map[string]string{
		"departments": `{"_index":"departments","_id":"10","_source":{"department_number":10,"name":"ACCOUNTING"}}`,
		"employees": `{"_index":"employees","_id":"2","_source":{"employee_number":2,"name":"Two","job_title":"Clerk",` +
			`"salary":900,"hire_date":"2017-03-01T00:00:00Z","department_number":10,"manager":{"employee_number":0,"name":"Zero"}}}`,
	}}
	src := newElasticSource(t, stub)
	ctx := context.Background()

	depts, err := src.LoadDepartments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Department{{DepartmentNumber: 10, Name: "ACCOUNTING"}}, depts)

	emps, err := src.LoadEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, emps, 1)
	assert.Equal(t, "Two", emps[0].Name)
	assert.Equal(t, time.Date(2017, 3, 1, 0, 0, 0, 0, time.UTC), emps[0].HireDate)
	assert.Equal(t, &domain.ManagerRef{EmployeeNumber: 0, Name: "Zero"}, emps[0].Manager)
}

func TestElasticSourceLoadRejectsBadDocument(t *testing.T) {
	stub := &elasticStub{pages: map[string]string{
		"departments": `{"_index":"departments","_id":"x","_source":{"department_number":"ten"}}`,
	}}
	_, err := newElasticSource(t, stub).LoadDepartments(context.Background())
	require.Error(t, err)
}

func TestElasticSourceSave(t *testing.T) {
	stub := &elasticStub{bulkResp: `{"took":1,"errors":false,"items":[` +
		`{"index":{"_index":"departments","_id":"10","status":201}},` +
		`{"index":{"_index":"employees","_id":"2","status":201}}]}`}
	src := newElasticSource(t, stub)

	err := src.Save(context.Background(),
		[]domain.Department{{DepartmentNumber: 10, Name: "ACCOUNTING"}},
		[]domain.Employee{{EmployeeNumber: 2, Name: "Two", DepartmentNumber: 10}})
	require.NoError(t, err)
	assert.Contains(t, stub.bulkBody, `"_index":"departments"`)
	assert.Contains(t, stub.bulkBody, `"_id":"2"`)
	assert.Contains(t, stub.bulkBody, `"name":"ACCOUNTING"`)
}

func TestElasticSourceSaveReportsFailedItems(t *testing.T) {
	stub := &elasticStub{bulkResp: `{"took":1,"errors":true,"items":[` +
		`{"index":{"_index":"employees","_id":"2","status":400,"error":{"type":"mapper_parsing_exception","reason":"bad hire_date"}}}]}`}
	src := newElasticSource(t, stub)

	err := src.Save(context.Background(), nil, []domain.Employee{{EmployeeNumber: 2}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad hire_date")
}

func TestElasticSourceSaveNothing(t *testing.T) {
	stub := &elasticStub{}
	require.NoError(t, newElasticSource(t, stub).Save(context.Background(), nil, nil))
	assert.Empty(t, stub.bulkBody)
}
