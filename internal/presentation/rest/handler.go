package rest

import (
	"log/slog"
	"net/http"

	"github.com/muyuda/khaya/internal/application/dto"
	"github.com/muyuda/khaya/internal/application/usecase"
	"github.com/muyuda/khaya/pkg/auth"
)

// KPRHandler serves the simulation API under /api/v1/kpr.
type KPRHandler struct {
	simulate  *usecase.SimulateLoanUseCase
	summarize *usecase.SummarizeScheduleUseCase
	compare   *usecase.CompareProductsUseCase
	editPlan  *usecase.EditCustomPlanUseCase
	listBanks *usecase.ListBanksUseCase
	getBank   *usecase.GetBankUseCase
	upsert    *usecase.UpsertBankUseCase
	logger    *slog.Logger
}

// NewKPRHandler creates a handler with all use-case dependencies.
func NewKPRHandler(
	simulate *usecase.SimulateLoanUseCase,
	summarize *usecase.SummarizeScheduleUseCase,
	compare *usecase.CompareProductsUseCase,
	editPlan *usecase.EditCustomPlanUseCase,
	listBanks *usecase.ListBanksUseCase,
	getBank *usecase.GetBankUseCase,
	upsert *usecase.UpsertBankUseCase,
	logger *slog.Logger,
) *KPRHandler {
	return &KPRHandler{
		simulate:  simulate,
		summarize: summarize,
		compare:   compare,
		editPlan:  editPlan,
		listBanks: listBanks,
		getBank:   getBank,
		upsert:    upsert,
		logger:    logger,
	}
}

// RegisterRoutes attaches the API routes to mux. admin guards catalog
// writes; when nil, catalog writes are refused.
func (h *KPRHandler) RegisterRoutes(mux *http.ServeMux, admin func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /api/v1/kpr/banks", h.handleListBanks)
	mux.HandleFunc("GET /api/v1/kpr/banks/{id}", h.handleGetBank)
	mux.HandleFunc("POST /api/v1/kpr/simulations", h.handleSimulate)
	mux.HandleFunc("POST /api/v1/kpr/summaries", h.handleSummarize)
	mux.HandleFunc("POST /api/v1/kpr/comparisons", h.handleCompare)
	mux.HandleFunc("POST /api/v1/kpr/custom-plans/edits", h.handleEditPlan)

	var upsert http.Handler = http.HandlerFunc(h.handleUpsertBank)
	if admin != nil {
		upsert = admin(upsert)
	}
	mux.Handle("PUT /api/v1/kpr/banks/{id}", upsert)
}

func (h *KPRHandler) handleListBanks(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listBanks.Execute(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *KPRHandler) handleGetBank(w http.ResponseWriter, r *http.Request) {
	resp, err := h.getBank.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *KPRHandler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req dto.SimulateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	resp, err := h.simulate.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *KPRHandler) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req dto.SummarizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	resp, err := h.summarize.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *KPRHandler) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req dto.CompareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	resp, err := h.compare.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *KPRHandler) handleEditPlan(w http.ResponseWriter, r *http.Request) {
	var req dto.EditCustomPlanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	resp, err := h.editPlan.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *KPRHandler) handleUpsertBank(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "catalog administration is disabled"})
		return
	}

	var req dto.UpsertBankRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	// The path names the bank; a conflicting body id is rejected.
	id := r.PathValue("id")
	if req.ID != "" && req.ID != id {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "body id does not match path"})
		return
	}
	req.ID = id
	req.UpdatedBy = claims.Subject

	resp, err := h.upsert.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
