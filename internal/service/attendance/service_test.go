package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siamhr/payroll-backend-go/internal/domain/employee"
)

func TestParseImportRow(t *testing.T) {
	svc := &AttendanceServiceImpl{}
	byCode := map[string]employee.Employee{
		"EMP001": {ID: "id-1", Code: "EMP001"},
	}

	t.Run("full row", func(t *testing.T) {
		row, msg := svc.parseImportRow(2, []string{"EMP001", "2026-06-01", "08:55", "18:02"}, byCode)
		require.Empty(t, msg)
		assert.Equal(t, "id-1", row.employeeID)
		assert.Equal(t, date("2026-06-01"), row.workDate)
		require.NotNil(t, row.checkIn)
		assert.Equal(t, "08:55", row.checkIn.Format("15:04"))
		require.NotNil(t, row.checkOut)
		assert.Equal(t, "18:02", row.checkOut.Format("15:04"))
	})

	t.Run("clocks are optional", func(t *testing.T) {
		row, msg := svc.parseImportRow(2, []string{"EMP001", "2026-06-01", "", ""}, byCode)
		require.Empty(t, msg)
		assert.Nil(t, row.checkIn)
		assert.Nil(t, row.checkOut)
	})

	t.Run("unknown employee code", func(t *testing.T) {
		_, msg := svc.parseImportRow(2, []string{"NOPE", "2026-06-01"}, byCode)
		assert.Contains(t, msg, "unknown employee code")
	})

	t.Run("bad date", func(t *testing.T) {
		_, msg := svc.parseImportRow(2, []string{"EMP001", "01/06/2026"}, byCode)
		assert.Equal(t, "date must be YYYY-MM-DD", msg)
	})

	t.Run("bad clock", func(t *testing.T) {
		_, msg := svc.parseImportRow(2, []string{"EMP001", "2026-06-01", "8am"}, byCode)
		assert.Equal(t, "check_in must be HH:MM (24h)", msg)
	})

	t.Run("too short", func(t *testing.T) {
		_, msg := svc.parseImportRow(2, []string{"EMP001"}, byCode)
		assert.NotEmpty(t, msg)
	})
}

func TestMatchesHeader(t *testing.T) {
	want := []string{"employee_code", "date", "check_in", "check_out"}

	assert.True(t, matchesHeader([]string{"employee_code", "date", "check_in", "check_out"}, want))
	assert.True(t, matchesHeader([]string{" Employee_Code ", "DATE", "check_in", "check_out", "extra"}, want))
	assert.False(t, matchesHeader([]string{"code", "date", "check_in", "check_out"}, want))
	assert.False(t, matchesHeader([]string{"employee_code", "date"}, want))
}
