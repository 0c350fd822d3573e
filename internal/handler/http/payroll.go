package http

import (
	"encoding/json"
	"net/http"

	"github.com/bellastudio/studio-backend-go/internal/domain/payroll"
	"github.com/bellastudio/studio-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Periods
	OpenPeriod(w http.ResponseWriter, r *http.Request)
	ListPeriods(w http.ResponseWriter, r *http.Request)

	// Magic Sync
	Sync(w http.ResponseWriter, r *http.Request)

	// Allowance carry-forward
	CopyAllowances(w http.ResponseWriter, r *http.Request)

	// Slips
	InitializeSlip(w http.ResponseWriter, r *http.Request)
	ListSlips(w http.ResponseWriter, r *http.Request)
	ListSlipItems(w http.ResponseWriter, r *http.Request)
	ListPeriodItems(w http.ResponseWriter, r *http.Request)

	// Items
	SaveItem(w http.ResponseWriter, r *http.Request)
	DeleteItem(w http.ResponseWriter, r *http.Request)

	// Finalization
	FinalizeSlip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== PERIODS ==========

func (h *payrollHandlerImpl) OpenPeriod(w http.ResponseWriter, r *http.Request) {
	var req payroll.OpenPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.OpenOrGetPeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListPeriods(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListPeriods(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== MAGIC SYNC ==========

func (h *payrollHandlerImpl) Sync(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")

	var req payroll.SyncRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}

	result, err := h.payrollService.MagicSync(r.Context(), periodID, req.StaffID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== ALLOWANCE CARRY-FORWARD ==========

func (h *payrollHandlerImpl) CopyAllowances(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")

	var req payroll.CopyAllowancesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CopyPreviousAllowances(r.Context(), periodID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== SLIPS ==========

func (h *payrollHandlerImpl) InitializeSlip(w http.ResponseWriter, r *http.Request) {
	var req payroll.InitializeSlipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.InitializeSlip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary slip initialized", result)
}

func (h *payrollHandlerImpl) ListSlips(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")

	result, err := h.payrollService.ListSlips(r.Context(), periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListSlipItems(w http.ResponseWriter, r *http.Request) {
	slipID := chi.URLParam(r, "slipID")

	result, err := h.payrollService.ListSlipItems(r.Context(), slipID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListPeriodItems(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")

	result, err := h.payrollService.ListPeriodItems(r.Context(), periodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== ITEMS ==========

func (h *payrollHandlerImpl) SaveItem(w http.ResponseWriter, r *http.Request) {
	var req payroll.SaveItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.SaveItem(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary item saved", result)
}

func (h *payrollHandlerImpl) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "itemID")

	if err := h.payrollService.DeleteItem(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]bool{"deleted": true})
}

// ========== FINALIZATION ==========

func (h *payrollHandlerImpl) FinalizeSlip(w http.ResponseWriter, r *http.Request) {
	slipID := chi.URLParam(r, "slipID")

	result, err := h.payrollService.FinalizeSlip(r.Context(), slipID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
