package catalog

import "context"

// CatalogRepository loads the rule and event catalogs at process start.
// Both catalogs are immutable after load.
type CatalogRepository interface {
	LoadCompanyRules(ctx context.Context) ([]CompanyRule, error)
	LoadEventEntries(ctx context.Context) ([]EventEntry, error)
}
