package payroll

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// RewardType enum
type RewardType string

const (
	RewardTypeFixed   RewardType = "FIXED"
	RewardTypePercent RewardType = "PERCENT"
)

// KPIRule is an automatic revenue-threshold bonus. It is stored on a KPI item
// as a ref-id token of the form KPI_AUTO_{target}_{reward}_{type} and
// re-resolved against actual period revenue on every sync.
type KPIRule struct {
	TargetRevenue   int64
	RewardMagnitude int64
	RewardType      RewardType
}

const kpiRefPrefix = "KPI_AUTO_"

// NewKPIRule validates and builds a rule. Target and reward must be positive.
func NewKPIRule(targetRevenue, rewardMagnitude int64, rewardType RewardType) (KPIRule, error) {
	if targetRevenue <= 0 {
		return KPIRule{}, ErrInvalidKPIRule
	}
	if rewardMagnitude <= 0 {
		return KPIRule{}, ErrInvalidKPIRule
	}
	if rewardType != RewardTypeFixed && rewardType != RewardTypePercent {
		return KPIRule{}, ErrInvalidKPIRule
	}
	return KPIRule{
		TargetRevenue:   targetRevenue,
		RewardMagnitude: rewardMagnitude,
		RewardType:      rewardType,
	}, nil
}

// RefID renders the rule as its storage token.
func (r KPIRule) RefID() string {
	return fmt.Sprintf("%s%d_%d_%s", kpiRefPrefix, r.TargetRevenue, r.RewardMagnitude, r.RewardType)
}

// IsKPIRuleRef reports whether a ref-id carries an encoded auto-KPI rule.
func IsKPIRuleRef(refID string) bool {
	return strings.HasPrefix(refID, kpiRefPrefix)
}

// ParseKPIRuleRef decodes a KPI_AUTO_{target}_{reward}_{type} token.
func ParseKPIRuleRef(refID string) (KPIRule, error) {
	if !IsKPIRuleRef(refID) {
		return KPIRule{}, ErrInvalidKPIRule
	}
	parts := strings.Split(strings.TrimPrefix(refID, kpiRefPrefix), "_")
	if len(parts) != 3 {
		return KPIRule{}, ErrInvalidKPIRule
	}
	target, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return KPIRule{}, ErrInvalidKPIRule
	}
	reward, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return KPIRule{}, ErrInvalidKPIRule
	}
	return NewKPIRule(target, reward, RewardType(parts[2]))
}

// Resolve computes the reward for the staff's actual period revenue.
// Below target the reward is zero. PERCENT rewards are rounded half-up at the
// final amount only.
func (r KPIRule) Resolve(actualRevenue int64) (amount int64, met bool) {
	if actualRevenue < r.TargetRevenue {
		return 0, false
	}
	if r.RewardType == RewardTypeFixed {
		return r.RewardMagnitude, true
	}
	pct := decimal.NewFromInt(actualRevenue).
		Mul(decimal.NewFromInt(r.RewardMagnitude)).
		Div(decimal.NewFromInt(100))
	return pct.Round(0).IntPart(), true
}

// PendingTitle renders the placeholder title a freshly saved rule carries
// until the next sync resolves it.
func (r KPIRule) PendingTitle() string {
	return fmt.Sprintf("Thưởng DS > %sđ [Đang tính...]", formatVND(r.TargetRevenue))
}

// ResolvedTitle renders the item title shown on the slip for the current
// resolution state.
func (r KPIRule) ResolvedTitle(actualRevenue int64, met bool) string {
	target := formatVND(r.TargetRevenue)
	if !met {
		return fmt.Sprintf("Thưởng DS > %sđ [Chưa đạt - DS: %sđ]", target, formatVND(actualRevenue))
	}
	return fmt.Sprintf("Thưởng DS > %sđ [Đạt - DS: %sđ]", target, formatVND(actualRevenue))
}

// formatVND groups digits by thousands with dots, the local convention.
func formatVND(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
