package advance

import (
	"testing"
	"time"

	"github.com/folha-audit/payroll-audit-go/internal/domain/advance"
	"github.com/folha-audit/payroll-audit-go/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// April 2024 has exactly 30 days, which keeps the commercial-month divisor
// and the true month length aligned in the base cases.
const (
	testYear  = 2024
	testMonth = 4
)

func testRule() catalog.CompanyRule {
	externalID := 101
	return catalog.CompanyRule{
		Code:               "ACME",
		Name:               "Acme Ltda",
		ExternalID:         &externalID,
		PayDay:             15,
		AdmissionCutoffDay: 20,
		ProvisionPercent:   decimal.NewFromInt(40),
	}
}

func testEmployee() advance.EmployeeRecord {
	return advance.EmployeeRecord{
		ID:             "1001",
		Name:           "MARIA SILVA",
		JobTitle:       "ANALISTA",
		AdmissionDate:  date(2020, 1, 10),
		Salary:         decimal.NewFromInt(2000),
		AdvanceFlag:    advance.AdvanceEnabledMarker,
		AdvancePercent: decimal.NewFromInt(40),
	}
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year, month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

// ========== ELIGIBILITY CHECKS ==========

func TestCalculator_FullMonth(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	row := calc.Evaluate(testEmployee(), nil, decimal.Zero, testRule(), testYear, testMonth)

	assert.Equal(t, advance.StatusEligible, row.Status)
	assert.Equal(t, 30, row.EffectiveDays)
	// 2000 x 40% with no proration
	assert.True(t, row.Gross.Equal(decimal.NewFromInt(800)), "gross = %s", row.Gross)
}

func TestCalculator_AdmissionProration(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	emp := testEmployee()
	emp.AdmissionDate = date(testYear, testMonth, 6)

	row := calc.Evaluate(emp, nil, decimal.Zero, testRule(), testYear, testMonth)

	require.Equal(t, advance.StatusEligible, row.Status)
	assert.Equal(t, 25, row.EffectiveDays)
	// 2000 x 40% x 25/30 = 666.67, rounded up to 667
	assert.True(t, row.Gross.Equal(decimal.NewFromInt(667)), "gross = %s", row.Gross)
}

func TestCalculator_AdmissionAfterCutoff(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	emp := testEmployee()
	emp.AdmissionDate = date(testYear, testMonth, 21)

	row := calc.Evaluate(emp, nil, decimal.Zero, testRule(), testYear, testMonth)

	assert.Equal(t, advance.StatusIneligible, row.Status)
	assert.Equal(t, 0, row.EffectiveDays)
	assert.True(t, row.Gross.IsZero())
	assert.Contains(t, row.Justification, "cutoff")
}

func TestCalculator_AdmissionCutoffOverride(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	rule := testRule()
	override := 10
	rule.Overrides.AdmissionCutoffDay = &override

	emp := testEmployee()
	emp.AdmissionDate = date(testYear, testMonth, 12)

	row := calc.Evaluate(emp, nil, decimal.Zero, rule, testYear, testMonth)

	assert.Equal(t, advance.StatusIneligible, row.Status)
}

func TestCalculator_TerminationOnPayDay(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	emp := testEmployee()
	emp.TerminationDate = datePtr(testYear, testMonth, 15)

	row := calc.Evaluate(emp, nil, decimal.Zero, testRule(), testYear, testMonth)

	assert.Equal(t, advance.StatusIneligible, row.Status)
	assert.Contains(t, row.Justification, "2024-04-15")
}

func TestCalculator_TerminationAfterPayDay(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	emp := testEmployee()
	emp.TerminationDate = datePtr(testYear, testMonth, 20)

	row := calc.Evaluate(emp, nil, decimal.Zero, testRule(), testYear, testMonth)

	assert.Equal(t, advance.StatusEligible, row.Status)
}

func TestCalculator_AdvanceFlagDisabled(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	emp := testEmployee()
	emp.AdvanceFlag = "N"

	row := calc.Evaluate(emp, nil, decimal.Zero, testRule(), testYear, testMonth)

	assert.Equal(t, advance.StatusIneligible, row.Status)
	assert.Contains(t, row.Justification, "not enabled")
}

// ========== LEAVE WINDOWS ==========

func TestCalculator_MaternityLeaveKeepsFullAdvance(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	leave := &advance.LeaveWindow{
		EmployeeID: "1001",
		Type:       advance.LeaveMaternity,
		Start:      date(testYear, 2, 1),
	}

	row := calc.Evaluate(testEmployee(), leave, decimal.Zero, testRule(), testYear, testMonth)

	assert.Equal(t, advance.StatusEligible, row.Status)
	assert.Equal(t, 30, row.EffectiveDays)
	assert.Contains(t, row.Justification, "maternity")
}

func TestCalculator_MedicalLeave(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	tests := []struct {
		name       string
		start, end time.Time
		wantStatus advance.Status
	}{
		{
			name:       "sixteen days in month blocks",
			start:      date(testYear, testMonth, 1),
			end:        date(testYear, testMonth, 16),
			wantStatus: advance.StatusIneligible,
		},
		{
			name:       "short window passes",
			start:      date(testYear, testMonth, 1),
			end:        date(testYear, testMonth, 10),
			wantStatus: advance.StatusEligible,
		},
		{
			name:       "open ended from mid-month blocks",
			start:      date(testYear, testMonth, 10),
			end:        time.Time{},
			wantStatus: advance.StatusIneligible,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			leave := &advance.LeaveWindow{EmployeeID: "1001", Type: advance.LeaveMedical, Start: tt.start}
			if !tt.end.IsZero() {
				leave.End = &tt.end
			}

			row := calc.Evaluate(testEmployee(), leave, decimal.Zero, testRule(), testYear, testMonth)
			assert.Equal(t, tt.wantStatus, row.Status)
		})
	}
}

func TestCalculator_OtherLeaveStartedBeforeMonth(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	leave := &advance.LeaveWindow{
		EmployeeID: "1001",
		Type:       advance.LeaveOther,
		Start:      date(testYear, 3, 20),
	}

	row := calc.Evaluate(testEmployee(), leave, decimal.Zero, testRule(), testYear, testMonth)

	assert.Equal(t, advance.StatusIneligible, row.Status)
}

// ========== VACATION SUB-MACHINE ==========

func TestCalculator_Vacation(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	tests := []struct {
		name       string
		start      time.Time
		end        *time.Time
		loan       decimal.Decimal
		wantStatus advance.Status
		wantDays   int
	}{
		{
			name:       "first day to day ten without loan blocks",
			start:      date(testYear, testMonth, 1),
			end:        datePtr(testYear, testMonth, 10),
			loan:       decimal.Zero,
			wantStatus: advance.StatusIneligible,
		},
		{
			name:       "starts after mid-month blocks",
			start:      date(testYear, testMonth, 16),
			end:        datePtr(testYear, 5, 5),
			loan:       decimal.Zero,
			wantStatus: advance.StatusIneligible,
		},
		{
			name:       "inside the month prorates around the window",
			start:      date(testYear, testMonth, 5),
			end:        datePtr(testYear, testMonth, 20),
			loan:       decimal.Zero,
			wantStatus: advance.StatusEligible,
			wantDays:   14, // 4 before + 10 after
		},
		{
			name:       "returns on or after pay day blocks",
			start:      date(testYear, 3, 25),
			end:        datePtr(testYear, testMonth, 16),
			loan:       decimal.Zero,
			wantStatus: advance.StatusIneligible,
		},
		{
			name:       "returns early in month prorates the remainder",
			start:      date(testYear, 3, 20),
			end:        datePtr(testYear, testMonth, 10),
			loan:       decimal.Zero,
			wantStatus: advance.StatusEligible,
			wantDays:   20,
		},
		{
			name:       "starts exactly on pay day keeps the full advance",
			start:      date(testYear, testMonth, 15),
			end:        datePtr(testYear, 5, 14),
			loan:       decimal.Zero,
			wantStatus: advance.StatusEligible,
			wantDays:   30,
		},
		{
			name:       "starts before pay day with loan prorates",
			start:      date(testYear, testMonth, 10),
			end:        datePtr(testYear, 5, 9),
			loan:       decimal.NewFromInt(300),
			wantStatus: advance.StatusEligible,
			wantDays:   9,
		},
		{
			name:       "starts before pay day without loan blocks",
			start:      date(testYear, testMonth, 10),
			end:        datePtr(testYear, 5, 9),
			loan:       decimal.Zero,
			wantStatus: advance.StatusIneligible,
		},
		{
			name:       "spans the entire month blocks",
			start:      date(testYear, 3, 20),
			end:        datePtr(testYear, 5, 5),
			loan:       decimal.Zero,
			wantStatus: advance.StatusIneligible,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			leave := &advance.LeaveWindow{
				EmployeeID: "1001",
				Type:       advance.LeaveVacation,
				Start:      tt.start,
				End:        tt.end,
			}

			row := calc.Evaluate(testEmployee(), leave, tt.loan, testRule(), testYear, testMonth)

			assert.Equal(t, tt.wantStatus, row.Status)
			if tt.wantStatus == advance.StatusEligible {
				assert.Equal(t, tt.wantDays, row.EffectiveDays)
			}
		})
	}
}

// ========== COMPANY OVERLAYS ==========

func TestCalculator_NameContainsOverlay(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	rule := testRule()
	rule.Overrides.NameContains = "SILVA"

	inGroup := calc.Evaluate(testEmployee(), nil, decimal.Zero, rule, testYear, testMonth)
	assert.Equal(t, advance.StatusEligible, inGroup.Status)

	emp := testEmployee()
	emp.Name = "JOAO SOUZA"
	outOfGroup := calc.Evaluate(emp, nil, decimal.Zero, rule, testYear, testMonth)
	assert.Equal(t, advance.StatusIneligible, outOfGroup.Status)
}

func TestCalculator_SpecialRoleFixedValue(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	rule := testRule()
	rule.SpecialRoleValues = map[string]decimal.Decimal{
		"DIRETOR": decimal.NewFromFloat(1500.50),
	}

	emp := testEmployee()
	emp.JobTitle = "DIRETOR"
	// Even with a mid-month admission the fixed value is not prorated.
	emp.AdmissionDate = date(testYear, testMonth, 6)

	row := calc.Evaluate(emp, nil, decimal.Zero, rule, testYear, testMonth)

	require.Equal(t, advance.StatusEligible, row.Status)
	assert.True(t, row.SpecialRole)
	assert.True(t, row.Gross.Equal(decimal.NewFromFloat(1500.50)), "gross = %s", row.Gross)
}

// ========== GROSS VALUE ==========

func TestCalculator_Surcharges(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	tests := []struct {
		name          string
		tillShortage  bool
		gratification bool
		want          int64
	}{
		{"none", false, false, 800},
		{"till shortage adds ten percent", true, false, 880},
		{"gratification adds forty percent", false, true, 1120},
		{"both multipliers stack", true, true, 1232},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			emp := testEmployee()
			emp.HasTillShortage = tt.tillShortage
			emp.HasGratification = tt.gratification

			row := calc.Evaluate(emp, nil, decimal.Zero, testRule(), testYear, testMonth)

			require.Equal(t, advance.StatusEligible, row.Status)
			assert.True(t, row.Gross.Equal(decimal.NewFromInt(tt.want)), "gross = %s", row.Gross)
		})
	}
}

func TestCalculator_FixedValueWinsOverPercent(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	emp := testEmployee()
	emp.AdvanceFixed = decimal.NewFromInt(500)

	row := calc.Evaluate(emp, nil, decimal.Zero, testRule(), testYear, testMonth)

	require.Equal(t, advance.StatusEligible, row.Status)
	assert.True(t, row.Gross.Equal(decimal.NewFromInt(500)), "gross = %s", row.Gross)
}

func TestCalculator_DisableRounding(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	rule := testRule()
	rule.Overrides.DisableRounding = true

	emp := testEmployee()
	emp.AdmissionDate = date(testYear, testMonth, 6)

	row := calc.Evaluate(emp, nil, decimal.Zero, rule, testYear, testMonth)

	require.Equal(t, advance.StatusEligible, row.Status)
	assert.True(t, row.Gross.Round(2).Equal(decimal.NewFromFloat(666.67)), "gross = %s", row.Gross)
}

func TestRoundHalfUp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int64
	}{
		{"666.50", 666},       // exactly .5 rounds down
		{"666.500001", 666},   // at the threshold still rounds down
		{"666.500002", 667},   // strictly past the threshold rounds up
		{"666.51", 667},
		{"666.49", 666},
		{"667", 667},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			in, err := decimal.NewFromString(tt.in)
			require.NoError(t, err)

			got := roundHalfUp(in)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "roundHalfUp(%s) = %s", tt.in, got)
		})
	}
}

func TestCalculator_Idempotent(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	emp := testEmployee()
	emp.AdmissionDate = date(testYear, testMonth, 6)
	leave := &advance.LeaveWindow{
		EmployeeID: "1001",
		Type:       advance.LeaveVacation,
		Start:      date(testYear, testMonth, 10),
		End:        datePtr(testYear, 5, 9),
	}
	loan := decimal.NewFromInt(300)

	first := calc.Evaluate(emp, leave, loan, testRule(), testYear, testMonth)
	second := calc.Evaluate(emp, leave, loan, testRule(), testYear, testMonth)

	assert.Equal(t, first, second)
}
