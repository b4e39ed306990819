package employee

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siamhr/payroll-backend-go/internal/domain/employee"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestParseEmployeeRow(t *testing.T) {
	t.Run("full row", func(t *testing.T) {
		emp, msg := parseEmployeeRow([]string{
			"EMP001", "Somchai", "Jaidee", "Engineer", "Engineering", "55000", "2024-02-01",
		})
		require.Empty(t, msg)
		assert.Equal(t, "EMP001", emp.Code)
		assert.Equal(t, "Somchai", emp.FirstName)
		assert.Equal(t, "Jaidee", emp.LastName)
		require.NotNil(t, emp.Position)
		assert.Equal(t, "Engineer", *emp.Position)
		require.NotNil(t, emp.Department)
		assert.Equal(t, "Engineering", *emp.Department)
		assert.True(t, emp.BaseSalary.Equal(d("55000")), "got %s", emp.BaseSalary)
		require.NotNil(t, emp.HireDate)
		assert.Equal(t, employee.StatusActive, emp.Status)
	})

	t.Run("minimal row", func(t *testing.T) {
		emp, msg := parseEmployeeRow([]string{"EMP002", "Suda", "Meechai"})
		require.Empty(t, msg)
		assert.Nil(t, emp.Position)
		assert.Nil(t, emp.Department)
		assert.True(t, emp.BaseSalary.IsZero())
		assert.Nil(t, emp.HireDate)
	})

	t.Run("blank required fields", func(t *testing.T) {
		_, msg := parseEmployeeRow([]string{"EMP003", " ", "Meechai"})
		assert.Equal(t, "code, first_name and last_name are required", msg)
	})

	t.Run("negative salary", func(t *testing.T) {
		_, msg := parseEmployeeRow([]string{"EMP004", "Anan", "Srisuk", "", "", "-100"})
		assert.Equal(t, "base_salary must be a non-negative number", msg)
	})

	t.Run("bad salary", func(t *testing.T) {
		_, msg := parseEmployeeRow([]string{"EMP004", "Anan", "Srisuk", "", "", "fifty"})
		assert.Equal(t, "base_salary must be a non-negative number", msg)
	})

	t.Run("bad hire date", func(t *testing.T) {
		_, msg := parseEmployeeRow([]string{"EMP005", "Anan", "Srisuk", "", "", "", "01-02-2024"})
		assert.Equal(t, "hire_date must be YYYY-MM-DD", msg)
	})

	t.Run("too short", func(t *testing.T) {
		_, msg := parseEmployeeRow([]string{"EMP006"})
		assert.NotEmpty(t, msg)
	})
}
