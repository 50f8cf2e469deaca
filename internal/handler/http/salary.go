package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wagely/payroll-backend-go/internal/domain/salary"
	"github.com/wagely/payroll-backend-go/internal/handler/http/response"
)

type SalaryHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type SalaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &SalaryHandlerImpl{salaryService: salaryService}
}

// Calculate implements SalaryHandler.
func (h *SalaryHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	contractID, year, month, ok := periodParams(w, r)
	if !ok {
		return
	}

	resp, err := h.salaryService.Calculate(r.Context(), contractID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary calculated successfully", resp)
}

// Get implements SalaryHandler.
func (h *SalaryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	contractID, year, month, ok := periodParams(w, r)
	if !ok {
		return
	}

	resp, err := h.salaryService.Get(r.Context(), contractID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func periodParams(w http.ResponseWriter, r *http.Request) (contractID string, year int, month time.Month, ok bool) {
	contractID = chi.URLParam(r, "contractID")
	if contractID == "" {
		response.BadRequest(w, "Contract ID is required", nil)
		return "", 0, 0, false
	}

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.BadRequest(w, "Year must be a number", nil)
		return "", 0, 0, false
	}

	monthNum, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		response.BadRequest(w, "Month must be between 1 and 12", nil)
		return "", 0, 0, false
	}

	return contractID, year, time.Month(monthNum), true
}
