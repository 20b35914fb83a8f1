package catalog

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RuleOverrides is the closed set of per-company behavior switches. Every
// consumer reads a named field; there is no open string-keyed override map.
type RuleOverrides struct {
	// DisableRounding keeps advance values at full precision instead of
	// applying the half-up-at-.500001 rounding.
	DisableRounding bool
	// ZeroProvision forces the consignado discount to zero regardless of the
	// employee's configured percentage or fixed value.
	ZeroProvision bool
	// NameContains, when non-empty, restricts advance eligibility to
	// employees whose name contains this substring (case-insensitive).
	NameContains string
	// AdmissionCutoffDay, when non-nil, replaces the company's generic
	// admission cutoff for the competence month.
	AdmissionCutoffDay *int
}

// CompanyRule is the advance rule set for one client company.
type CompanyRule struct {
	Code string
	Name string
	// ExternalID is the company's numeric identifier in the source payroll
	// system. A nil value means the catalog entry cannot be used for a run.
	ExternalID *int
	// PayDay is the day of the competence month the advance is paid (1-31).
	PayDay int
	// AdmissionCutoffDay: employees admitted after this day of the competence
	// month are not eligible for the advance.
	AdmissionCutoffDay int
	// ProvisionPercent is the default consignado discount percentage (0-100)
	// applied when the employee has no configured percentage or fixed value.
	ProvisionPercent decimal.Decimal
	// SpecialRoleValues maps job titles to a fixed gross advance that
	// overrides the percentage computation.
	SpecialRoleValues map[string]decimal.Decimal
	Overrides         RuleOverrides
}

// EffectiveAdmissionCutoff returns the admission cutoff day after applying
// the per-company override.
func (r CompanyRule) EffectiveAdmissionCutoff() int {
	if r.Overrides.AdmissionCutoffDay != nil {
		return *r.Overrides.AdmissionCutoffDay
	}
	return r.AdmissionCutoffDay
}

// RuleCatalog is an immutable mapping from company code to its rule set.
// It is loaded once per process and read-only thereafter.
type RuleCatalog struct {
	rules map[string]CompanyRule
}

func NewRuleCatalog(rules []CompanyRule) *RuleCatalog {
	m := make(map[string]CompanyRule, len(rules))
	for _, r := range rules {
		m[r.Code] = r
	}
	return &RuleCatalog{rules: m}
}

// Get resolves a company rule. A missing entry or an entry without an
// external identifier is a configuration error: the company's run must fail
// fast rather than audit against the wrong source data.
func (c *RuleCatalog) Get(code string) (CompanyRule, error) {
	rule, ok := c.rules[code]
	if !ok {
		return CompanyRule{}, ErrCompanyNotConfigured
	}
	if rule.ExternalID == nil {
		return CompanyRule{}, ErrMissingExternalID
	}
	return rule, nil
}

// Companies returns all configured rules sorted by company code.
func (c *RuleCatalog) Companies() []CompanyRule {
	result := make([]CompanyRule, 0, len(c.rules))
	for _, r := range c.rules {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result
}
