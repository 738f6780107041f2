package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/muyuda/khaya/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const (
	TypeSimulationCompleted = "kpr.simulation.completed"
	TypeBankCatalogUpdated  = "kpr.bank_catalog.updated"
)

// ---------------------------------------------------------------------------
// Simulation Events
// ---------------------------------------------------------------------------

// SimulationCompleted is raised once a schedule has been produced.
type SimulationCompleted struct {
	events.BaseEvent
	Mode           string          `json:"mode"`
	BankID         string          `json:"bank_id,omitempty"`
	ProductID      string          `json:"product_id,omitempty"`
	LoanAmount     decimal.Decimal `json:"loan_amount"`
	TenureMonths   int             `json:"tenure_months"`
	ScheduleMonths int             `json:"schedule_months"`
	InitialPayment decimal.Decimal `json:"initial_payment"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
}

func NewSimulationCompleted(
	simulationID, mode, bankID, productID string,
	loanAmount decimal.Decimal,
	tenureMonths, scheduleMonths int,
	initialPayment, totalInterest decimal.Decimal,
	_ time.Time,
) SimulationCompleted {
	return SimulationCompleted{
		BaseEvent:      events.NewBaseEvent(TypeSimulationCompleted, simulationID, "Simulation"),
		Mode:           mode,
		BankID:         bankID,
		ProductID:      productID,
		LoanAmount:     loanAmount,
		TenureMonths:   tenureMonths,
		ScheduleMonths: scheduleMonths,
		InitialPayment: initialPayment,
		TotalInterest:  totalInterest,
	}
}

// ---------------------------------------------------------------------------
// Catalog Events
// ---------------------------------------------------------------------------

// BankCatalogUpdated is raised when an administrator replaces a bank entry.
type BankCatalogUpdated struct {
	events.BaseEvent
	BankName     string `json:"bank_name"`
	ProductCount int    `json:"product_count"`
	UpdatedBy    string `json:"updated_by,omitempty"`
}

func NewBankCatalogUpdated(bankID, bankName string, productCount int, updatedBy string, _ time.Time) BankCatalogUpdated {
	return BankCatalogUpdated{
		BaseEvent:    events.NewBaseEvent(TypeBankCatalogUpdated, bankID, "Bank"),
		BankName:     bankName,
		ProductCount: productCount,
		UpdatedBy:    updatedBy,
	}
}
