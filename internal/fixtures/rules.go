package fixtures

import (
	"github.com/folha-audit/payroll-audit-go/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

func intPtr(i int) *int { return &i }

// DefaultCompanyRules returns a small rule catalog for local development,
// used when the company_rules table is empty. Production deployments always
// load their rules from the database.
func DefaultCompanyRules() []catalog.CompanyRule {
	return []catalog.CompanyRule{
		{
			Code:               "DEMO",
			Name:               "Demo Comercio Ltda",
			ExternalID:         intPtr(1),
			PayDay:             15,
			AdmissionCutoffDay: 20,
			ProvisionPercent:   decimal.NewFromInt(40),
		},
		{
			Code:               "DEMO2",
			Name:               "Demo Servicos Ltda",
			ExternalID:         intPtr(2),
			PayDay:             20,
			AdmissionCutoffDay: 25,
			ProvisionPercent:   decimal.NewFromInt(30),
			SpecialRoleValues: map[string]decimal.Decimal{
				"DIRETOR": decimal.NewFromInt(2000),
			},
			Overrides: catalog.RuleOverrides{
				ZeroProvision: true,
			},
		},
	}
}
