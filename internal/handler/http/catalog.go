package http

import (
	"net/http"
	"sort"

	"github.com/folha-audit/payroll-audit-go/internal/domain/catalog"
	"github.com/folha-audit/payroll-audit-go/internal/handler/http/response"
)

type CatalogHandler interface {
	ListCompanies(w http.ResponseWriter, r *http.Request)
	ListEvents(w http.ResponseWriter, r *http.Request)
}

type catalogHandlerImpl struct {
	ruleCatalog  *catalog.RuleCatalog
	eventCatalog *catalog.EventCatalog
}

func NewCatalogHandler(ruleCatalog *catalog.RuleCatalog, eventCatalog *catalog.EventCatalog) CatalogHandler {
	return &catalogHandlerImpl{ruleCatalog: ruleCatalog, eventCatalog: eventCatalog}
}

type companyResponse struct {
	Code               string `json:"code"`
	Name               string `json:"name"`
	PayDay             int    `json:"pay_day"`
	AdmissionCutoffDay int    `json:"admission_cutoff_day"`
	Configured         bool   `json:"configured"`
}

func (h *catalogHandlerImpl) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies := h.ruleCatalog.Companies()

	result := make([]companyResponse, 0, len(companies))
	for _, c := range companies {
		result = append(result, companyResponse{
			Code:               c.Code,
			Name:               c.Name,
			PayDay:             c.PayDay,
			AdmissionCutoffDay: c.EffectiveAdmissionCutoff(),
			Configured:         c.ExternalID != nil,
		})
	}

	response.Success(w, result)
}

type eventResponse struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
	Nature      int    `json:"nature"`
	Incidence   struct {
		SocialSecurity bool `json:"social_security"`
		IncomeTax      bool `json:"income_tax"`
		SeveranceFund  bool `json:"severance_fund"`
	} `json:"incidence"`
}

func (h *catalogHandlerImpl) ListEvents(w http.ResponseWriter, r *http.Request) {
	entries := h.eventCatalog.Entries()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Code < entries[j].Code })

	result := make([]eventResponse, 0, len(entries))
	for _, e := range entries {
		var er eventResponse
		er.Code = e.Code
		er.Description = e.Description
		er.Nature = int(e.Nature)
		er.Incidence.SocialSecurity = e.Incidence.SocialSecurity
		er.Incidence.IncomeTax = e.Incidence.IncomeTax
		er.Incidence.SeveranceFund = e.Incidence.SeveranceFund
		result = append(result, er)
	}

	response.Success(w, result)
}
