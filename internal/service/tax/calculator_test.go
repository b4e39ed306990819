package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/siamhr/payroll-backend-go/internal/domain/employee"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestAnnualTax(t *testing.T) {
	tests := []struct {
		name    string
		taxable string
		want    string
	}{
		{"negative clamps to zero", "-5000", "0"},
		{"zero", "0", "0"},
		{"within exempt band", "150000", "0"},
		{"just above exempt band", "150001", "0.05"},
		{"top of 5 percent band", "300000", "7500"},
		{"mid 10 percent band", "400000", "17500"},
		{"top of 10 percent band", "500000", "27500"},
		{"top of 15 percent band", "750000", "65000"},
		{"one million", "1000000", "115000"},
		{"two million", "2000000", "365000"},
		{"five million", "5000000", "1265000"},
		{"above top bracket", "6000000", "1615000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnnualTax(d(tt.taxable))
			assert.True(t, d(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestAllowanceTotal(t *testing.T) {
	t.Run("nil profile gets personal allowance only", func(t *testing.T) {
		got := AllowanceTotal(nil)
		assert.True(t, d("60000").Equal(got), "got %s", got)
	})

	t.Run("married spouse without income adds spouse allowance", func(t *testing.T) {
		p := &employee.TaxProfile{IsMarried: true, SpouseHasIncome: false}
		got := AllowanceTotal(p)
		assert.True(t, d("120000").Equal(got), "got %s", got)
	})

	t.Run("married spouse with income gets no spouse allowance", func(t *testing.T) {
		p := &employee.TaxProfile{IsMarried: true, SpouseHasIncome: true}
		got := AllowanceTotal(p)
		assert.True(t, d("60000").Equal(got), "got %s", got)
	})

	t.Run("children and declared deductions accumulate", func(t *testing.T) {
		p := &employee.TaxProfile{
			IsMarried:          true,
			SpouseHasIncome:    false,
			ChildrenCount:      2,
			InsuranceDeduction: d("25000"),
			ProvidentFund:      d("30000"),
			HomeLoanInterest:   d("40000"),
			OtherDeduction:     d("5000"),
		}
		// 60000 + 60000 + 2*30000 + 25000 + 30000 + 40000 + 5000
		got := AllowanceTotal(p)
		assert.True(t, d("280000").Equal(got), "got %s", got)
	})
}

func TestMonthlyWithholding(t *testing.T) {
	t.Run("fifty thousand gross, bare allowance", func(t *testing.T) {
		// 50000*12 = 600000; taxable 540000; tax 7500+20000+6000 = 33500;
		// monthly 2791.67.
		got := MonthlyWithholding(d("50000"), nil)
		assert.True(t, d("2791.67").Equal(got), "got %s", got)
	})

	t.Run("income below allowance withholds nothing", func(t *testing.T) {
		got := MonthlyWithholding(d("4000"), nil)
		assert.True(t, got.IsZero(), "got %s", got)
	})

	t.Run("allowances reduce withholding", func(t *testing.T) {
		p := &employee.TaxProfile{IsMarried: true, SpouseHasIncome: false}
		bare := MonthlyWithholding(d("50000"), nil)
		withSpouse := MonthlyWithholding(d("50000"), p)
		assert.True(t, withSpouse.LessThan(bare))
	})
}

func TestSocialSecurity(t *testing.T) {
	tests := []struct {
		name  string
		gross string
		want  string
	}{
		{"below cap", "10000", "500"},
		{"at cap", "15000", "750"},
		{"above cap is capped", "20000", "750"},
		{"well above cap", "120000", "750"},
		{"zero", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SocialSecurity(d(tt.gross))
			assert.True(t, d(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}
