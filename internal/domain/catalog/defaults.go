package catalog

// Reserved event codes shared by every client company. The statutory audit
// compares its recomputed values against the events posted under these codes.
const (
	CodeBaseSalary = 1

	CodeOvertime50  = 101
	CodeOvertime60  = 102
	CodeOvertime70  = 103
	CodeOvertime100 = 104
	CodeNightShift  = 110
	CodeDSR         = 120

	CodeHazardPay       = 201
	CodeUnhealthiness   = 202
	CodeGratification   = 203
	CodeTillShortage    = 204
	CodeAnnuity         = 205
	CodeFamilyAllowance = 210
	CodeTransportAllow  = 301

	CodeAbsence   = 401
	CodeTardiness = 402

	CodeSocialSecurity = 901
	CodeIncomeTax      = 902
	CodeSeveranceFund  = 903

	CodePostedSocialSecurityBase = 951
	CodePostedIncomeTaxBase      = 952
	CodePostedSeveranceBase      = 953
)

// DefaultEventEntries is the baseline event catalog shared by all audited
// companies. Company-specific codes loaded from the database are merged on
// top (database wins on conflict).
func DefaultEventEntries() []EventEntry {
	all := EventIncidence{SocialSecurity: true, IncomeTax: true, SeveranceFund: true}
	none := EventIncidence{}

	return []EventEntry{
		{Code: CodeBaseSalary, Description: "SALARIO BASE", Nature: NatureEarning, Incidence: all},

		{Code: CodeOvertime50, Description: "HORA EXTRA 50%", Nature: NatureEarning, Incidence: all},
		{Code: CodeOvertime60, Description: "HORA EXTRA 60%", Nature: NatureEarning, Incidence: all},
		{Code: CodeOvertime70, Description: "HORA EXTRA 70%", Nature: NatureEarning, Incidence: all},
		{Code: CodeOvertime100, Description: "HORA EXTRA 100%", Nature: NatureEarning, Incidence: all},
		{Code: CodeNightShift, Description: "ADICIONAL NOTURNO", Nature: NatureEarning, Incidence: all},
		{Code: CodeDSR, Description: "DSR SOBRE VARIAVEIS", Nature: NatureEarning, Incidence: all},

		{Code: CodeHazardPay, Description: "PERICULOSIDADE", Nature: NatureEarning, Incidence: all},
		{Code: CodeUnhealthiness, Description: "INSALUBRIDADE", Nature: NatureEarning, Incidence: all},
		{Code: CodeGratification, Description: "GRATIFICACAO", Nature: NatureEarning, Incidence: all},
		{Code: CodeTillShortage, Description: "QUEBRA DE CAIXA", Nature: NatureEarning, Incidence: all},
		{Code: CodeAnnuity, Description: "ANUENIO", Nature: NatureEarning, Incidence: all},
		{Code: CodeFamilyAllowance, Description: "SALARIO FAMILIA", Nature: NatureEarning, Incidence: none},
		{Code: CodeTransportAllow, Description: "VALE TRANSPORTE", Nature: NatureDeduction, Incidence: none},

		{Code: CodeAbsence, Description: "FALTAS", Nature: NatureDeduction, Incidence: none},
		{Code: CodeTardiness, Description: "ATRASOS", Nature: NatureDeduction, Incidence: none},

		{Code: CodeSocialSecurity, Description: "INSS", Nature: NatureDeduction, Incidence: none},
		{Code: CodeIncomeTax, Description: "IRRF", Nature: NatureDeduction, Incidence: none},
		{Code: CodeSeveranceFund, Description: "FGTS", Nature: NatureInformational, Incidence: none},

		{Code: CodePostedSocialSecurityBase, Description: "BASE INSS", Nature: NatureInformational, Incidence: none},
		{Code: CodePostedIncomeTaxBase, Description: "BASE IRRF", Nature: NatureInformational, Incidence: none},
		{Code: CodePostedSeveranceBase, Description: "BASE FGTS", Nature: NatureInformational, Incidence: none},
	}
}
