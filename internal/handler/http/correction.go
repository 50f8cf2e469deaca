package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wagely/payroll-backend-go/internal/domain/correction"
	"github.com/wagely/payroll-backend-go/internal/handler/http/response"
)

// requesterHeader carries the identity of the employee filing or cancelling
// a correction. Authentication itself lives outside this service.
const requesterHeader = "X-Requester-ID"

type CorrectionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type CorrectionHandlerImpl struct {
	correctionService correction.CorrectionService
}

func NewCorrectionHandler(correctionService correction.CorrectionService) CorrectionHandler {
	return &CorrectionHandlerImpl{correctionService: correctionService}
}

// Create implements CorrectionHandler.
func (h *CorrectionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req correction.CreateCorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create correction decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequesterID = r.Header.Get(requesterHeader)

	resp, err := h.correctionService.Request(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Correction request filed successfully", resp)
}

// Approve implements CorrectionHandler.
func (h *CorrectionHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Correction request ID is required", nil)
		return
	}

	resp, err := h.correctionService.Approve(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Correction request approved", resp)
}

// Reject implements CorrectionHandler.
func (h *CorrectionHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Correction request ID is required", nil)
		return
	}

	resp, err := h.correctionService.Reject(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Correction request rejected", resp)
}

// Cancel implements CorrectionHandler.
func (h *CorrectionHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Correction request ID is required", nil)
		return
	}

	requesterID := r.Header.Get(requesterHeader)
	if requesterID == "" {
		response.BadRequest(w, "X-Requester-ID header is required", nil)
		return
	}

	if err := h.correctionService.Cancel(r.Context(), requesterID, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Correction request cancelled", nil)
}

// Get implements CorrectionHandler.
func (h *CorrectionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Correction request ID is required", nil)
		return
	}

	resp, err := h.correctionService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
