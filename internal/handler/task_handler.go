package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/employee_query_sample/internal/report"
	"github.com/locvowork/employee_query_sample/internal/service"
	"github.com/locvowork/employee_query_sample/internal/service/serviceutils"
	"github.com/locvowork/employee_query_sample/pkg/query"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// OddOccurrenceRequest is the body of POST /odd-occurrence.
type OddOccurrenceRequest struct {
	Values []int `json:"values"`
}

// OddOccurrenceResponse is the data of a successful POST /odd-occurrence.
type OddOccurrenceResponse struct {
	Value int `json:"value"`
}

// statusFor maps query failures onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUnknownTask), errors.Is(err, query.ErrEmptyCollection):
		return http.StatusNotFound
	case errors.Is(err, query.ErrNoOddOccurrence):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// parseValues reads a comma separated list of integers.
func parseValues(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	values := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid value %q", p)
		}
		values = append(values, v)
	}
	return values, nil
}

func (h *TaskHandler) ListDepartmentsHandler(c echo.Context) error {
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Departments listed successfully", h.svc.Snapshot().Departments())
}

func (h *TaskHandler) ListEmployeesHandler(c echo.Context) error {
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employees listed successfully", h.svc.Snapshot().Employees())
}

func (h *TaskHandler) CatalogueHandler(c echo.Context) error {
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Tasks listed successfully", service.Catalogue())
}

func (h *TaskHandler) RunTaskHandler(c echo.Context) error {
	n, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid task number", err)
	}

	values, err := parseValues(c.QueryParam("values"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid values", err)
	}
	if values == nil {
		values = service.DefaultOddValues
	}

	result, err := h.svc.Run(c.Request().Context(), n, values)
	if err != nil {
		return serviceutils.ResponseError(c, statusFor(err), "Failed to run task", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, fmt.Sprintf("Task %d completed successfully", n), result)
}

func (h *TaskHandler) ManagersHandler(c echo.Context) error {
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Managers listed successfully", h.svc.EmployeesWithSubordinates())
}

func (h *TaskHandler) OddOccurrenceHandler(c echo.Context) error {
	var req OddOccurrenceRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	v, err := h.svc.OddOccurrence(req.Values)
	if err != nil {
		return serviceutils.ResponseError(c, statusFor(err), "No odd occurrence", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Odd occurrence found", OddOccurrenceResponse{Value: v})
}

func (h *TaskHandler) ExportTasksHandler(c echo.Context) error {
	values, err := parseValues(c.QueryParam("values"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid values", err)
	}
	if values == nil {
		values = service.DefaultOddValues
	}

	data, err := report.TaskWorkbook(c.Request().Context(), h.svc, values).ToBytes()
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to generate excel file", err)
	}

	c.Response().Header().Set("Content-Disposition", `attachment; filename="tasks.xlsx"`)
	c.Response().Header().Set("Content-Transfer-Encoding", "binary")
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
