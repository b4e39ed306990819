package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siamhr/payroll-backend-go/internal/domain/attendance"
	"github.com/siamhr/payroll-backend-go/internal/domain/company"
	"github.com/siamhr/payroll-backend-go/internal/domain/employee"
	"github.com/siamhr/payroll-backend-go/internal/domain/payroll"
)

// fakePayrollRepo keeps payslips and items in memory, enforcing the same
// (payslip, item type, code) uniqueness the database does.
type fakePayrollRepo struct {
	payroll.PayrollRepository
	slips map[string]*payroll.Payslip
	items map[string][]payroll.PayslipItem
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		slips: make(map[string]*payroll.Payslip),
		items: make(map[string][]payroll.PayslipItem),
	}
}

func (f *fakePayrollRepo) GetOrCreatePayslip(_ context.Context, employeeID, periodID string) (payroll.Payslip, bool, error) {
	for _, s := range f.slips {
		if s.EmployeeID == employeeID && s.PeriodID == periodID {
			return *s, false, nil
		}
	}
	slip := &payroll.Payslip{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		PeriodID:   periodID,
	}
	f.slips[slip.ID] = slip
	return *slip, true, nil
}

func (f *fakePayrollRepo) UpsertItemByCode(_ context.Context, item payroll.PayslipItem) (payroll.PayslipItem, error) {
	existing := f.items[item.PayslipID]
	for i, it := range existing {
		if it.ItemType == item.ItemType && it.Code != nil && item.Code != nil && *it.Code == *item.Code {
			item.ID = it.ID
			existing[i] = item
			return item, nil
		}
	}
	f.items[item.PayslipID] = append(existing, item)
	return item, nil
}

func (f *fakePayrollRepo) DeleteItemByCode(_ context.Context, payslipID string, itemType payroll.ItemType, code string) error {
	existing := f.items[payslipID]
	for i, it := range existing {
		if it.ItemType == itemType && it.Code != nil && *it.Code == code {
			f.items[payslipID] = append(existing[:i], existing[i+1:]...)
			return nil
		}
	}
	return payroll.ErrItemNotFound
}

func (f *fakePayrollRepo) ListItems(_ context.Context, payslipID string) ([]payroll.PayslipItem, error) {
	return append([]payroll.PayslipItem(nil), f.items[payslipID]...), nil
}

func (f *fakePayrollRepo) UpdatePayslipTotals(_ context.Context, p payroll.Payslip) error {
	slip, ok := f.slips[p.ID]
	if !ok {
		return payroll.ErrPayslipNotFound
	}
	slip.GrossIncome = p.GrossIncome
	slip.TotalDeduction = p.TotalDeduction
	slip.NetIncome = p.NetIncome
	return nil
}

func (f *fakePayrollRepo) soleSlip(t *testing.T) payroll.Payslip {
	t.Helper()
	require.Len(t, f.slips, 1)
	for _, s := range f.slips {
		return *s
	}
	return payroll.Payslip{}
}

func (f *fakePayrollRepo) itemByCode(t *testing.T, slipID, code string) payroll.PayslipItem {
	t.Helper()
	for _, it := range f.items[slipID] {
		if it.Code != nil && *it.Code == code {
			return it
		}
	}
	t.Fatalf("no item with code %s", code)
	return payroll.PayslipItem{}
}

func fullAttendance(days []time.Time) map[string]attendance.Record {
	m := make(map[string]attendance.Record, len(days))
	for _, day := range days {
		m[day.Format("2006-01-02")] = attendance.Record{
			WorkDate: day,
			Status:   attendance.StatusPresent,
		}
	}
	return m
}

func TestGeneratePayslip(t *testing.T) {
	ctx := context.Background()
	period := payroll.PayrollPeriod{
		ID:        "period-1",
		Month:     6,
		Year:      2026,
		StartDate: date("2026-06-01"),
		EndDate:   date("2026-06-30"),
	}
	workingDays := WorkingDays(period.StartDate, period.EndDate, company.DateSet{})
	emp := employee.Employee{
		ID:         "emp-1",
		Code:       "EMP001",
		FirstName:  "Somchai",
		LastName:   "Jaidee",
		Status:     employee.StatusActive,
		BaseSalary: d("50000"),
	}

	t.Run("full attendance yields base, tax and social security", func(t *testing.T) {
		repo := newFakePayrollRepo()
		svc := &PayrollServiceImpl{PayrollRepository: repo}

		err := svc.generatePayslip(ctx, emp, nil, period, workingDays, fullAttendance(workingDays), nil)
		require.NoError(t, err)

		slip := repo.soleSlip(t)
		require.Len(t, repo.items[slip.ID], 3)

		assert.True(t, d("50000").Equal(repo.itemByCode(t, slip.ID, payroll.CodeBaseSalary).Amount))
		assert.True(t, d("2791.67").Equal(repo.itemByCode(t, slip.ID, payroll.CodeWithholdingTax).Amount))
		assert.True(t, d("750").Equal(repo.itemByCode(t, slip.ID, payroll.CodeSocialSecurity).Amount))

		assert.True(t, d("50000").Equal(slip.GrossIncome), "gross %s", slip.GrossIncome)
		assert.True(t, d("3541.67").Equal(slip.TotalDeduction), "deduction %s", slip.TotalDeduction)
		assert.True(t, d("46458.33").Equal(slip.NetIncome), "net %s", slip.NetIncome)
	})

	t.Run("rerunning replaces items instead of duplicating", func(t *testing.T) {
		repo := newFakePayrollRepo()
		svc := &PayrollServiceImpl{PayrollRepository: repo}
		records := fullAttendance(workingDays)

		require.NoError(t, svc.generatePayslip(ctx, emp, nil, period, workingDays, records, nil))
		first := repo.soleSlip(t)

		require.NoError(t, svc.generatePayslip(ctx, emp, nil, period, workingDays, records, nil))
		second := repo.soleSlip(t)

		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, repo.items[second.ID], 3)
		assert.True(t, first.NetIncome.Equal(second.NetIncome))
	})

	t.Run("missing days price an unpaid deduction", func(t *testing.T) {
		repo := newFakePayrollRepo()
		svc := &PayrollServiceImpl{PayrollRepository: repo}

		records := fullAttendance(workingDays)
		delete(records, "2026-06-04")
		delete(records, "2026-06-05")

		require.NoError(t, svc.generatePayslip(ctx, emp, nil, period, workingDays, records, nil))

		slip := repo.soleSlip(t)
		require.Len(t, repo.items[slip.ID], 4)

		// 50000/22 = 2272.7272... -> 2272.73; x2 = 4545.46.
		unpaid := repo.itemByCode(t, slip.ID, payroll.CodeUnpaid)
		assert.True(t, d("4545.46").Equal(unpaid.Amount), "got %s", unpaid.Amount)
		assert.Equal(t, payroll.ItemTypeDeduction, unpaid.ItemType)
	})

	t.Run("corrected attendance clears a stale unpaid item", func(t *testing.T) {
		repo := newFakePayrollRepo()
		svc := &PayrollServiceImpl{PayrollRepository: repo}

		records := fullAttendance(workingDays)
		delete(records, "2026-06-04")
		require.NoError(t, svc.generatePayslip(ctx, emp, nil, period, workingDays, records, nil))

		require.NoError(t, svc.generatePayslip(ctx, emp, nil, period, workingDays, fullAttendance(workingDays), nil))

		slip := repo.soleSlip(t)
		assert.Len(t, repo.items[slip.ID], 3)
		assert.True(t, d("50000").Equal(slip.GrossIncome))
	})

	t.Run("tax profile allowances lower withholding", func(t *testing.T) {
		repo := newFakePayrollRepo()
		svc := &PayrollServiceImpl{PayrollRepository: repo}

		profile := &employee.TaxProfile{
			EmployeeID:      emp.ID,
			IsMarried:       true,
			SpouseHasIncome: false,
			ChildrenCount:   1,
		}
		require.NoError(t, svc.generatePayslip(ctx, emp, profile, period, workingDays, fullAttendance(workingDays), nil))

		slip := repo.soleSlip(t)
		wht := repo.itemByCode(t, slip.ID, payroll.CodeWithholdingTax)

		// Allowances 150000: taxable 450000, tax 22500, monthly 1875.
		assert.True(t, d("1875").Equal(wht.Amount), "got %s", wht.Amount)
	})

	t.Run("manual items survive a rerun and feed totals", func(t *testing.T) {
		repo := newFakePayrollRepo()
		svc := &PayrollServiceImpl{PayrollRepository: repo}

		require.NoError(t, svc.generatePayslip(ctx, emp, nil, period, workingDays, fullAttendance(workingDays), nil))
		slip := repo.soleSlip(t)

		repo.items[slip.ID] = append(repo.items[slip.ID], payroll.PayslipItem{
			ID:        uuid.NewString(),
			PayslipID: slip.ID,
			ItemType:  payroll.ItemTypeEarning,
			Name:      "Referral Bonus",
			Amount:    d("3000"),
		})

		require.NoError(t, svc.generatePayslip(ctx, emp, nil, period, workingDays, fullAttendance(workingDays), nil))

		slip = repo.soleSlip(t)
		assert.Len(t, repo.items[slip.ID], 4)
		assert.True(t, d("53000").Equal(slip.GrossIncome), "gross %s", slip.GrossIncome)

		// Withholding re-estimates on the larger gross: 53000*12-60000 = 576000
		// taxable, tax 38900, monthly 3241.67.
		wht := repo.itemByCode(t, slip.ID, payroll.CodeWithholdingTax)
		assert.True(t, d("3241.67").Equal(wht.Amount), "got %s", wht.Amount)
	})
}

func TestTotals(t *testing.T) {
	code := payroll.CodeBaseSalary
	items := []payroll.PayslipItem{
		{ItemType: payroll.ItemTypeEarning, Code: &code, Amount: d("30000")},
		{ItemType: payroll.ItemTypeEarning, Amount: d("2000")},
		{ItemType: payroll.ItemTypeDeduction, Amount: d("1500")},
	}

	gross, deduction, net := payroll.Totals(items)
	assert.True(t, d("32000").Equal(gross))
	assert.True(t, d("1500").Equal(deduction))
	assert.True(t, d("30500").Equal(net))
}
