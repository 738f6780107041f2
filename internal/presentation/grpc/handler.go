package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/muyuda/khaya/internal/application/dto"
	"github.com/muyuda/khaya/internal/application/usecase"
	"github.com/muyuda/khaya/internal/domain/model"
	"github.com/muyuda/khaya/internal/domain/valueobject"
	"github.com/muyuda/khaya/pkg/auth"
)

// Request and response messages.
type (
	SimulateRequest       = dto.SimulateRequest
	SimulationResponse    = dto.SimulationResponse
	SummarizeRequest      = dto.SummarizeRequest
	SummaryResponse       = dto.SummaryResponse
	CompareRequest        = dto.CompareRequest
	ComparisonResponse    = dto.ComparisonResponse
	EditCustomPlanRequest = dto.EditCustomPlanRequest
	CustomPlanResponse    = dto.CustomPlanDTO
	UpsertBankRequest     = dto.UpsertBankRequest
	BankResponse          = dto.BankResponse
	BankListResponse      = dto.BankListResponse
)

// ListBanksRequest takes no arguments.
type ListBanksRequest struct{}

// GetBankRequest names one catalog bank.
type GetBankRequest struct {
	BankID string `json:"bank_id"`
}

// KPRHandler implements KPRServiceServer on top of the use cases.
type KPRHandler struct {
	UnimplementedKPRServiceServer

	simulate  *usecase.SimulateLoanUseCase
	summarize *usecase.SummarizeScheduleUseCase
	compare   *usecase.CompareProductsUseCase
	editPlan  *usecase.EditCustomPlanUseCase
	listBanks *usecase.ListBanksUseCase
	getBank   *usecase.GetBankUseCase
	upsert    *usecase.UpsertBankUseCase
	logger    *slog.Logger
}

// NewKPRHandler creates a new handler with all use-case dependencies.
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

// Simulate handles the gRPC Simulate request.
func (h *KPRHandler) Simulate(ctx context.Context, req *SimulateRequest) (*SimulationResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := h.simulate.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "Simulate", err)
	}
	return &resp, nil
}

// Summarize handles the gRPC Summarize request.
func (h *KPRHandler) Summarize(ctx context.Context, req *SummarizeRequest) (*SummaryResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := h.summarize.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "Summarize", err)
	}
	return &resp, nil
}

// Compare handles the gRPC Compare request.
func (h *KPRHandler) Compare(ctx context.Context, req *CompareRequest) (*ComparisonResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := h.compare.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "Compare", err)
	}
	return &resp, nil
}

// EditCustomPlan handles the gRPC EditCustomPlan request.
func (h *KPRHandler) EditCustomPlan(ctx context.Context, req *EditCustomPlanRequest) (*CustomPlanResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := h.editPlan.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "EditCustomPlan", err)
	}
	return &resp, nil
}

// ListBanks handles the gRPC ListBanks request.
func (h *KPRHandler) ListBanks(ctx context.Context, _ *ListBanksRequest) (*BankListResponse, error) {
	resp, err := h.listBanks.Execute(ctx)
	if err != nil {
		return nil, h.toStatus(ctx, "ListBanks", err)
	}
	return &resp, nil
}

// GetBank handles the gRPC GetBank request.
func (h *KPRHandler) GetBank(ctx context.Context, req *GetBankRequest) (*BankResponse, error) {
	if req == nil || req.BankID == "" {
		return nil, status.Error(codes.InvalidArgument, "bank_id is required")
	}
	resp, err := h.getBank.Execute(ctx, req.BankID)
	if err != nil {
		return nil, h.toStatus(ctx, "GetBank", err)
	}
	return &resp, nil
}

// UpsertBank handles the gRPC UpsertBank request. The caller must have passed
// the admin role check; without claims the call is refused.
func (h *KPRHandler) UpsertBank(ctx context.Context, req *UpsertBankRequest) (*BankResponse, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.PermissionDenied, "catalog administration is disabled")
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	in := *req
	in.UpdatedBy = claims.Subject
	resp, err := h.upsert.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus(ctx, "UpsertBank", err)
	}
	return &resp, nil
}

func (h *KPRHandler) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, model.ErrBankNotFound), errors.Is(err, model.ErrProductNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrInvalidLoanRequest),
		errors.Is(err, model.ErrInvalidRatePlan),
		errors.Is(err, model.ErrInvalidBank),
		errors.Is(err, model.ErrLastTier),
		errors.Is(err, valueobject.ErrInvalidValue):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		h.logger.ErrorContext(ctx, "rpc failed", "method", method, "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
