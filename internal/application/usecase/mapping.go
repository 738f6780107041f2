package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/muyuda/khaya/internal/application/dto"
	"github.com/muyuda/khaya/internal/domain/model"
	"github.com/muyuda/khaya/internal/domain/valueobject"
	"github.com/muyuda/khaya/pkg/money"
)

// ---------------------------------------------------------------------------
// Request mapping
// ---------------------------------------------------------------------------

func parseHouseValue(v decimal.Decimal) (float64, error) {
	if !v.IsPositive() {
		return 0, fmt.Errorf("%w: house value must be positive", model.ErrInvalidLoanRequest)
	}
	return v.InexactFloat64(), nil
}

func parseDownPayment(in *dto.DownPaymentInput) (valueobject.DownPayment, error) {
	if in == nil {
		return valueobject.DownPaymentPercent(valueobject.DefaultDownPaymentPercent), nil
	}
	return valueobject.NewDownPayment(in.Mode, in.Value.InexactFloat64())
}

func toTier(in dto.TierDTO) (model.Tier, error) {
	kind, err := valueobject.NewTierKind(in.Kind)
	if err != nil {
		return model.Tier{}, err
	}
	mode, err := valueobject.NewPaymentMode(in.PaymentMode)
	if err != nil {
		return model.Tier{}, err
	}
	rule, err := model.NewTierRule(kind, mode, in.Rate, in.FixedPayment.InexactFloat64())
	if err != nil {
		return model.Tier{}, err
	}
	return model.Tier{StartMonth: in.StartMonth, EndMonth: in.EndMonth, Rule: rule}, nil
}

func toCustomProduct(in dto.CustomPlanDTO) (model.CustomProduct, error) {
	tiers := make([]model.Tier, 0, len(in.Tiers))
	for i, t := range in.Tiers {
		tier, err := toTier(t)
		if err != nil {
			return model.CustomProduct{}, fmt.Errorf("tier %d: %w", i+1, err)
		}
		tiers = append(tiers, tier)
	}
	return model.ReconstructCustomProduct(in.ID, in.Name, model.CustomPlan{Tiers: tiers}), nil
}

func toScheduleRows(in []dto.ScheduleRowDTO) []model.ScheduleRow {
	rows := make([]model.ScheduleRow, 0, len(in))
	for _, r := range in {
		rows = append(rows, model.ScheduleRow{
			Month:         r.Month,
			Interest:      wholeUnits(r.Interest),
			PrincipalPaid: wholeUnits(r.PrincipalPaid),
			EndingBalance: wholeUnits(r.EndingBalance),
			Payment:       wholeUnits(r.Payment),
			Rate:          r.Rate,
		})
	}
	return rows
}

func wholeUnits(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// ---------------------------------------------------------------------------
// Response mapping
// ---------------------------------------------------------------------------

func toCustomPlanDTO(p model.CustomProduct) dto.CustomPlanDTO {
	tiers := p.Plan().Tiers
	out := dto.CustomPlanDTO{ID: p.ID(), Name: p.Name(), Tiers: make([]dto.TierDTO, 0, len(tiers))}
	for _, t := range tiers {
		td := dto.TierDTO{
			StartMonth:  t.StartMonth,
			EndMonth:    t.EndMonth,
			Kind:        t.Rule.Kind().String(),
			PaymentMode: t.Rule.PaymentMode().String(),
			Rate:        t.Rule.AnnualRate(),
		}
		if fp, ok := t.Rule.(model.FixedPaymentRule); ok {
			td.FixedPayment = decimal.NewFromFloat(fp.Amount)
		}
		out.Tiers = append(out.Tiers, td)
	}
	return out
}

func toScheduleDTO(rows []model.ScheduleRow) []dto.ScheduleRowDTO {
	out := make([]dto.ScheduleRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ScheduleRowDTO{
			Month:         r.Month,
			Interest:      decimal.NewFromInt(r.Interest),
			PrincipalPaid: decimal.NewFromInt(r.PrincipalPaid),
			EndingBalance: decimal.NewFromInt(r.EndingBalance),
			Payment:       decimal.NewFromInt(r.Payment),
			Rate:          r.Rate,
		})
	}
	return out
}

func toPeriodsDTO(periods []model.PaymentPeriodSummary) []dto.PaymentPeriodDTO {
	out := make([]dto.PaymentPeriodDTO, 0, len(periods))
	for _, p := range periods {
		out = append(out, dto.PaymentPeriodDTO{
			MonthStart:     p.MonthStart,
			MonthEnd:       p.MonthEnd,
			Months:         p.Months(),
			Rate:           p.Rate,
			MonthlyPayment: decimal.NewFromInt(p.MonthlyPayment),
			TotalPayment:   decimal.NewFromInt(p.TotalPayment),
			TotalInterest:  decimal.NewFromInt(p.TotalInterest),
			Display: fmt.Sprintf("Bulan %d-%d: %s/bulan @ %s%%",
				p.MonthStart, p.MonthEnd,
				money.RupiahInt(p.MonthlyPayment).String(),
				decimal.NewFromFloat(p.Rate).String()),
		})
	}
	return out
}

func toTotalsDTO(t model.SimulationTotals) dto.TotalsDTO {
	loan := money.Rupiah(t.LoanAmount)
	initial := money.RupiahInt(t.InitialPayment)
	interest := money.RupiahInt(t.TotalInterest)
	total := money.RupiahInt(t.TotalPayment)

	return dto.TotalsDTO{
		LoanAmount:         loan.Amount(),
		DownPaymentAmount:  money.Rupiah(t.DownPaymentAmount).Amount(),
		DownPaymentPercent: decimal.NewFromFloat(t.DownPaymentPercent).Round(2),
		InitialPayment:     initial.Amount(),
		InitialRate:        t.InitialRate,
		TotalInterest:      interest.Amount(),
		TotalPayment:       total.Amount(),

		LoanAmountDisplay:     loan.String(),
		LoanAmountShort:       money.AbbreviateIDR(loan.Amount()),
		InitialPaymentDisplay: initial.String(),
		TotalInterestDisplay:  interest.String(),
		TotalPaymentDisplay:   total.String(),
	}
}

func toBankResponse(b model.Bank) dto.BankResponse {
	products := b.Products()
	out := dto.BankResponse{
		ID:           b.ID(),
		Name:         b.Name(),
		LogoURL:      b.LogoURL(),
		Requirements: b.Requirements(),
		Products:     make([]dto.ProductDTO, 0, len(products)),
	}
	if out.Requirements == nil {
		out.Requirements = []string{}
	}
	for _, p := range products {
		out.Products = append(out.Products, dto.ProductDTO{
			ID:         p.ID,
			Name:       p.Name,
			Rate:       p.Rate,
			FixedYears: p.FixedYears,
		})
	}
	return out
}
