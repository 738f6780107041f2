package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/muyuda/khaya/internal/domain/event"
	"github.com/muyuda/khaya/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Simulation aggregate
// ---------------------------------------------------------------------------

// SimulationInput is everything a caller chooses before running a schedule.
type SimulationInput struct {
	Mode         valueobject.CalcMode
	BankID       string
	ProductID    string
	HouseValue   float64
	DownPayment  valueobject.DownPayment
	TenureMonths int
	Plan         RatePlan
	// Tolerance is the payment drift allowed inside a summary period.
	Tolerance int64
}

// SimulationTotals are the headline figures shown next to a schedule.
type SimulationTotals struct {
	LoanAmount         float64
	DownPaymentAmount  float64
	DownPaymentPercent float64
	InitialPayment     int64
	InitialRate        float64
	TotalInterest      int64
	TotalPayment       int64
}

// Simulation is the result of running one loan through the engine. It is
// immutable.
type Simulation struct {
	id           string
	input        SimulationInput
	request      LoanRequest
	schedule     []ScheduleRow
	summary      []PaymentPeriodSummary
	totals       SimulationTotals
	createdAt    time.Time
	domainEvents []event.DomainEvent
}

// NewSimulation derives the principal from the house value and down payment,
// runs the schedule and summarizes it.
func NewSimulation(in SimulationInput, now time.Time) (Simulation, error) {
	loanAmount := in.DownPayment.LoanAmount(in.HouseValue)
	req, err := NewLoanRequest(loanAmount, in.TenureMonths, in.Plan)
	if err != nil {
		return Simulation{}, err
	}

	schedule := RunSchedule(req)
	summary := SummarizePaymentPeriodsWithTolerance(schedule, in.Tolerance)
	totals := computeTotals(in, loanAmount, schedule)

	sim := Simulation{
		id:        uuid.New().String(),
		input:     in,
		request:   req,
		schedule:  schedule,
		summary:   summary,
		totals:    totals,
		createdAt: now,
	}

	sim.domainEvents = append(sim.domainEvents, event.NewSimulationCompleted(
		sim.id, in.Mode.String(), in.BankID, in.ProductID,
		decimal.NewFromFloat(loanAmount).Round(0),
		in.TenureMonths, len(schedule),
		decimal.NewFromInt(totals.InitialPayment),
		decimal.NewFromInt(totals.TotalInterest),
		now,
	))

	return sim, nil
}

func computeTotals(in SimulationInput, loanAmount float64, schedule []ScheduleRow) SimulationTotals {
	totals := SimulationTotals{
		LoanAmount:         loanAmount,
		DownPaymentAmount:  in.DownPayment.Amount(in.HouseValue),
		DownPaymentPercent: in.DownPayment.Percent(in.HouseValue),
	}
	if len(schedule) > 0 {
		totals.InitialPayment = schedule[0].Payment
		totals.InitialRate = schedule[0].Rate
	}
	for _, row := range schedule {
		totals.TotalInterest += row.Interest
		totals.TotalPayment += row.Payment
	}
	return totals
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (s Simulation) ID() string               { return s.id }
func (s Simulation) Input() SimulationInput   { return s.input }
func (s Simulation) Request() LoanRequest     { return s.request }
func (s Simulation) Totals() SimulationTotals { return s.totals }
func (s Simulation) CreatedAt() time.Time     { return s.createdAt }

// Schedule returns a copy of the monthly rows.
func (s Simulation) Schedule() []ScheduleRow {
	return append([]ScheduleRow(nil), s.schedule...)
}

// Summary returns a copy of the payment periods.
func (s Simulation) Summary() []PaymentPeriodSummary {
	return append([]PaymentPeriodSummary(nil), s.summary...)
}

// DomainEvents returns a copy of the uncommitted domain events.
func (s Simulation) DomainEvents() []event.DomainEvent {
	return append([]event.DomainEvent(nil), s.domainEvents...)
}

// ClearDomainEvents returns a copy with the event list emptied.
func (s Simulation) ClearDomainEvents() Simulation {
	next := s
	next.domainEvents = nil
	return next
}
