// Package tax implements the simplified Thai personal income tax and social
// security calculations used by payroll generation. All amounts are THB.
package tax

import (
	"github.com/shopspring/decimal"

	"github.com/siamhr/payroll-backend-go/internal/domain/employee"
)

// Progressive annual brackets. Each step taxes the slice of income above the
// previous ceiling up to its own, at its rate.
type bracket struct {
	ceiling decimal.Decimal // zero means no upper bound
	rate    decimal.Decimal
}

var brackets = []bracket{
	{ceiling: decimal.NewFromInt(150_000), rate: decimal.Zero},
	{ceiling: decimal.NewFromInt(300_000), rate: decimal.NewFromFloat(0.05)},
	{ceiling: decimal.NewFromInt(500_000), rate: decimal.NewFromFloat(0.10)},
	{ceiling: decimal.NewFromInt(750_000), rate: decimal.NewFromFloat(0.15)},
	{ceiling: decimal.NewFromInt(1_000_000), rate: decimal.NewFromFloat(0.20)},
	{ceiling: decimal.NewFromInt(2_000_000), rate: decimal.NewFromFloat(0.25)},
	{ceiling: decimal.NewFromInt(5_000_000), rate: decimal.NewFromFloat(0.30)},
	{ceiling: decimal.Zero, rate: decimal.NewFromFloat(0.35)},
}

var (
	personalAllowance = decimal.NewFromInt(60_000)
	spouseAllowance   = decimal.NewFromInt(60_000)
	childAllowance    = decimal.NewFromInt(30_000)

	ssfRate    = decimal.NewFromFloat(0.05)
	ssfWageCap = decimal.NewFromInt(15_000)

	monthsPerYear = decimal.NewFromInt(12)
)

// AnnualTax computes progressive tax on annual taxable income. Negative
// income is clamped to zero. Result is rounded to 2 decimal places,
// half away from zero.
func AnnualTax(taxable decimal.Decimal) decimal.Decimal {
	if taxable.IsNegative() {
		return decimal.Zero.Round(2)
	}

	tax := decimal.Zero
	prev := decimal.Zero
	for _, b := range brackets {
		if b.ceiling.IsZero() {
			tax = tax.Add(taxable.Sub(prev).Mul(b.rate))
			break
		}
		if taxable.LessThanOrEqual(b.ceiling) {
			tax = tax.Add(taxable.Sub(prev).Mul(b.rate))
			break
		}
		tax = tax.Add(b.ceiling.Sub(prev).Mul(b.rate))
		prev = b.ceiling
	}
	return tax.Round(2)
}

// AllowanceTotal sums the personal allowances from a tax profile: 60,000
// personal, 60,000 for a married employee whose spouse has no income,
// 30,000 per child, plus the four declared annual deduction amounts.
// A nil profile means the bare personal allowance.
func AllowanceTotal(p *employee.TaxProfile) decimal.Decimal {
	total := personalAllowance
	if p == nil {
		return total
	}

	if p.IsMarried && !p.SpouseHasIncome {
		total = total.Add(spouseAllowance)
	}
	if p.ChildrenCount > 0 {
		total = total.Add(childAllowance.Mul(decimal.NewFromInt(int64(p.ChildrenCount))))
	}

	total = total.Add(p.InsuranceDeduction)
	total = total.Add(p.ProvidentFund)
	total = total.Add(p.HomeLoanInterest)
	total = total.Add(p.OtherDeduction)
	return total
}

// MonthlyWithholding estimates the month's withholding from the month's gross:
// annualize gross, subtract allowances, tax the remainder, divide by 12.
// The yearly figure is re-estimated every month rather than trued up.
func MonthlyWithholding(monthlyGross decimal.Decimal, profile *employee.TaxProfile) decimal.Decimal {
	annualIncome := monthlyGross.Mul(monthsPerYear)
	taxable := annualIncome.Sub(AllowanceTotal(profile))
	return AnnualTax(taxable).Div(monthsPerYear).Round(2)
}

// SocialSecurity computes the employee social security contribution:
// 5% of gross, with the wage base capped at 15,000.
func SocialSecurity(monthlyGross decimal.Decimal) decimal.Decimal {
	base := monthlyGross
	if base.GreaterThan(ssfWageCap) {
		base = ssfWageCap
	}
	if base.IsNegative() {
		base = decimal.Zero
	}
	return base.Mul(ssfRate).Round(2)
}
