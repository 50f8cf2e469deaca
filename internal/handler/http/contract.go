package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wagely/payroll-backend-go/internal/domain/contract"
	"github.com/wagely/payroll-backend-go/internal/handler/http/response"
)

type ContractHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

// ContractHandlerImpl serves the contract read model directly from the
// repository; contracts have no workflow of their own here.
type ContractHandlerImpl struct {
	contractRepo contract.ContractRepository
}

func NewContractHandler(contractRepo contract.ContractRepository) ContractHandler {
	return &ContractHandlerImpl{contractRepo: contractRepo}
}

// Create implements ContractHandler.
func (h *ContractHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req contract.CreateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create contract decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.contractRepo.Create(r.Context(), req.ToEntity())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Contract created successfully", contract.ToResponse(created))
}

// Get implements ContractHandler.
func (h *ContractHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Contract ID is required", nil)
		return
	}

	con, err := h.contractRepo.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, contract.ToResponse(con))
}
