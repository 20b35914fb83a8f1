package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/folha-audit/payroll-audit-go/internal/config"
	"github.com/folha-audit/payroll-audit-go/internal/domain/catalog"
	"github.com/folha-audit/payroll-audit-go/internal/fixtures"
	appHTTP "github.com/folha-audit/payroll-audit-go/internal/handler/http"
	"github.com/folha-audit/payroll-audit-go/internal/pkg/cron"
	"github.com/folha-audit/payroll-audit-go/internal/pkg/database"
	"github.com/folha-audit/payroll-audit-go/internal/pkg/jwt"
	"github.com/folha-audit/payroll-audit-go/internal/pkg/storage"
	"github.com/folha-audit/payroll-audit-go/internal/repository/postgresql"
	advanceService "github.com/folha-audit/payroll-audit-go/internal/service/advance"
	serviceAuth "github.com/folha-audit/payroll-audit-go/internal/service/auth"
	reportService "github.com/folha-audit/payroll-audit-go/internal/service/report"
	taxauditService "github.com/folha-audit/payroll-audit-go/internal/service/taxaudit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	catalogRepo := postgresql.NewCatalogRepository(db)
	ruleCatalog, eventCatalog, err := loadCatalogs(context.Background(), catalogRepo, cfg.App.Env)
	if err != nil {
		log.Fatal("Failed to load catalogs: ", err)
	}

	sourceRepo := postgresql.NewSourceRepository(db)
	runRepo := postgresql.NewRunRepository(db)
	eventRepo := postgresql.NewEventRepository(db, eventCatalog)
	taxAuditRepo := postgresql.NewTaxAuditRepository(db)

	var reportStore storage.ReportStore
	if cfg.Report.OutputDir != "" {
		reportStore, err = storage.NewLocalStorage(cfg.Report.OutputDir)
		if err != nil {
			log.Fatal("Failed to initialize report store: ", err)
		}
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authSvc := serviceAuth.NewAuthService(cfg.Operator, JWTService)
	advanceSvc := advanceService.NewAdvanceService(ruleCatalog, sourceRepo, runRepo)
	taxSvc := taxauditService.NewTaxAuditService(ruleCatalog, eventRepo, taxAuditRepo, runRepo)
	reportSvc := reportService.NewReportService(reportStore, advanceSvc, taxSvc)

	if cfg.Schedule.AuditInterval != "" {
		interval, err := time.ParseDuration(cfg.Schedule.AuditInterval)
		if err != nil {
			log.Fatal("Invalid AUDIT_SCHEDULE_INTERVAL: ", err)
		}
		scheduler := cron.NewScheduler()
		cron.RegisterBatchAudit(scheduler, advanceSvc, interval)
		scheduler.Start()
		defer scheduler.Stop()
	}

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc)
	auditHandler := appHTTP.NewAuditHandler(advanceSvc, taxSvc)
	catalogHandler := appHTTP.NewCatalogHandler(ruleCatalog, eventCatalog)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		auditHandler,
		catalogHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

// loadCatalogs builds the immutable in-memory catalogs: company rules come
// from the database; event entries are the shared defaults merged with
// database rows, database winning on code conflicts. In development an empty
// rules table falls back to the bundled demo rules.
func loadCatalogs(ctx context.Context, repo catalog.CatalogRepository, env string) (*catalog.RuleCatalog, *catalog.EventCatalog, error) {
	rules, err := repo.LoadCompanyRules(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load company rules: %w", err)
	}
	if len(rules) == 0 && env == "development" {
		rules = fixtures.DefaultCompanyRules()
	}

	entries, err := repo.LoadEventEntries(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load event catalog: %w", err)
	}
	merged := append(catalog.DefaultEventEntries(), entries...)

	return catalog.NewRuleCatalog(rules), catalog.NewEventCatalog(merged), nil
}
