package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKPIRuleRefRoundTrip(t *testing.T) {
	rule, err := NewKPIRule(50_000_000, 5_000_000, RewardTypeFixed)
	require.NoError(t, err)
	assert.Equal(t, "KPI_AUTO_50000000_5000000_FIXED", rule.RefID())

	parsed, err := ParseKPIRuleRef(rule.RefID())
	require.NoError(t, err)
	assert.Equal(t, rule, parsed)

	pct, err := NewKPIRule(30_000_000, 2, RewardTypePercent)
	require.NoError(t, err)
	assert.Equal(t, "KPI_AUTO_30000000_2_PERCENT", pct.RefID())
	parsed, err = ParseKPIRuleRef(pct.RefID())
	require.NoError(t, err)
	assert.Equal(t, pct, parsed)
}

func TestNewKPIRuleRejectsInvalid(t *testing.T) {
	cases := []struct {
		name   string
		target int64
		reward int64
		rtype  RewardType
	}{
		{"zero target", 0, 5_000_000, RewardTypeFixed},
		{"negative target", -1, 5_000_000, RewardTypeFixed},
		{"zero reward", 50_000_000, 0, RewardTypeFixed},
		{"negative reward", 50_000_000, -5, RewardTypePercent},
		{"unknown reward type", 50_000_000, 5, RewardType("BONUS")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewKPIRule(tc.target, tc.reward, tc.rtype)
			assert.ErrorIs(t, err, ErrInvalidKPIRule)
		})
	}
}

func TestParseKPIRuleRefRejectsMalformed(t *testing.T) {
	for _, ref := range []string{
		"",
		"task-123",
		"KPI_AUTO_",
		"KPI_AUTO_abc_5_FIXED",
		"KPI_AUTO_50_xyz_PERCENT",
		"KPI_AUTO_50_5_WEEKLY",
		"KPI_AUTO_50_5",
	} {
		_, err := ParseKPIRuleRef(ref)
		assert.ErrorIs(t, err, ErrInvalidKPIRule, "ref %q", ref)
	}
}

func TestKPIRuleResolve(t *testing.T) {
	fixed, _ := NewKPIRule(50_000_000, 5_000_000, RewardTypeFixed)

	amount, met := fixed.Resolve(49_999_999)
	assert.False(t, met)
	assert.Equal(t, int64(0), amount)

	amount, met = fixed.Resolve(50_000_000)
	assert.True(t, met)
	assert.Equal(t, int64(5_000_000), amount)

	pct, _ := NewKPIRule(30_000_000, 2, RewardTypePercent)
	amount, met = pct.Resolve(33_333_333)
	assert.True(t, met)
	// 33,333,333 * 2% = 666,666.66 rounds half-up
	assert.Equal(t, int64(666_667), amount)

	amount, met = pct.Resolve(50_000_000)
	assert.True(t, met)
	assert.Equal(t, int64(1_000_000), amount)
}

func TestKPIRuleTitles(t *testing.T) {
	rule, _ := NewKPIRule(50_000_000, 5_000_000, RewardTypeFixed)

	assert.Equal(t, "Thưởng DS > 50.000.000đ [Đang tính...]", rule.PendingTitle())
	assert.Equal(t, "Thưởng DS > 50.000.000đ [Đạt - DS: 52.000.000đ]", rule.ResolvedTitle(52_000_000, true))
	assert.Equal(t, "Thưởng DS > 50.000.000đ [Chưa đạt - DS: 1.000đ]", rule.ResolvedTitle(1_000, false))
}

func TestIsKPIRuleRef(t *testing.T) {
	assert.True(t, IsKPIRuleRef("KPI_AUTO_50000000_5000000_FIXED"))
	assert.False(t, IsKPIRuleRef("task-123"))
	assert.False(t, IsKPIRuleRef(""))
}
