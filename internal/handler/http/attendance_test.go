package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagely/payroll-backend-go/internal/pkg/calendar"
	"github.com/wagely/payroll-backend-go/internal/pkg/events"
	"github.com/wagely/payroll-backend-go/internal/repository/memory"
	attendanceService "github.com/wagely/payroll-backend-go/internal/service/attendance"
	correctionService "github.com/wagely/payroll-backend-go/internal/service/correction"
	"github.com/wagely/payroll-backend-go/internal/service/recalc"
	salaryService "github.com/wagely/payroll-backend-go/internal/service/salary"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	uow := memory.NewUnitOfWork(store)
	contractRepo := memory.NewContractRepository(store)
	attendanceRepo := memory.NewAttendanceRepository(store)
	allowanceRepo := memory.NewAllowanceRepository(store)
	salaryRepo := memory.NewSalaryRepository(store)
	correctionRepo := memory.NewCorrectionRepository(store)

	salarySvc := salaryService.NewSalaryService(
		uow, contractRepo, attendanceRepo, allowanceRepo, salaryRepo,
		salaryService.DefaultRates(),
	)
	coordinator := recalc.NewCoordinator(
		contractRepo, attendanceRepo, allowanceRepo, salarySvc, events.NopSink{},
	)
	oracle := calendar.NewStaticOracle(nil)
	attendanceSvc := attendanceService.NewAttendanceService(
		uow, attendanceRepo, contractRepo, coordinator, oracle,
	)
	correctionSvc := correctionService.NewCorrectionService(
		uow, correctionRepo, attendanceRepo, contractRepo, coordinator, oracle,
	)

	return NewRouter(
		NewContractHandler(contractRepo),
		NewAttendanceHandler(attendanceSvc),
		NewSalaryHandler(salarySvc),
		NewCorrectionHandler(correctionSvc),
	)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	require.True(t, envelope.Success)
	return envelope.Data
}

func TestAttendanceEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/contracts", map[string]any{
		"employee_id":      "employee-1",
		"workplace_name":   "Riverside Cafe",
		"hourly_wage":      decimal.NewFromInt(10000),
		"payment_day":      25,
		"deduction_policy": "no_deduction",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	contractID := decodeData(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/attendances", map[string]any{
		"contract_id":   contractID,
		"date":          "2025-03-10",
		"start_time":    "09:00",
		"end_time":      "18:00",
		"break_minutes": 60,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	data := decodeData(t, rec)
	recordID := data["id"].(string)
	assert.Equal(t, "scheduled", data["status"])
	assert.Equal(t, "8", data["total_hours"])

	rec = doJSON(t, router, http.MethodPost, "/api/v1/attendances/"+recordID+"/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/attendances/"+recordID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "completed", decodeData(t, rec)["status"])

	// completed records refuse hard deletion
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/attendances/"+recordID, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAttendanceEndpoints_Validation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/attendances", map[string]any{
		"contract_id": "",
		"date":        "not-a-date",
		"start_time":  "09:00",
		"end_time":    "18:00",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSalaryEndpoints_UnknownPeriod(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/contracts", map[string]any{
		"employee_id":      "employee-1",
		"workplace_name":   "Riverside Cafe",
		"hourly_wage":      decimal.NewFromInt(10000),
		"payment_day":      25,
		"deduction_policy": "no_deduction",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	contractID := decodeData(t, rec)["id"].(string)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/salaries/"+contractID+"/2025/3", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// calculating over a period no attendance ever touched is not found too
	rec = doJSON(t, router, http.MethodPost, "/api/v1/salaries/"+contractID+"/2025/3/calculate", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
