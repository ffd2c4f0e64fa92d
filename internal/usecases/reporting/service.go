package reporting

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/business-reports-api/infrastructure/repository"
	"github.com/vfg2006/business-reports-api/internal/analytics"
	"github.com/vfg2006/business-reports-api/internal/config"
	"github.com/vfg2006/business-reports-api/internal/domain"
	"github.com/vfg2006/business-reports-api/internal/export"
	"github.com/vfg2006/business-reports-api/pkg/log"
)

// Service monta os relatórios a partir dos repositórios de registros brutos
type Service struct {
	cfg              *config.Config
	invoiceRepo      repository.InvoiceRepository
	subscriptionRepo repository.SubscriptionRepository
	customerRepo     repository.CustomerRepository
	callRepo         repository.CallRepository
	dealRepo         repository.DealRepository
	renderer         export.TableRenderer
	now              func() time.Time
}

// NewService cria o serviço de relatórios usando o relógio do sistema
func NewService(
	cfg *config.Config,
	invoiceRepo repository.InvoiceRepository,
	subscriptionRepo repository.SubscriptionRepository,
	customerRepo repository.CustomerRepository,
	callRepo repository.CallRepository,
	dealRepo repository.DealRepository,
	renderer export.TableRenderer,
) *Service {
	return &Service{
		cfg:              cfg,
		invoiceRepo:      invoiceRepo,
		subscriptionRepo: subscriptionRepo,
		customerRepo:     customerRepo,
		callRepo:         callRepo,
		dealRepo:         dealRepo,
		renderer:         renderer,
		now:              time.Now,
	}
}

// WithClock troca o relógio usado quando a requisição não traz referência
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Section busca os registros da organização e monta o relatório da seção
func (s *Service) Section(ctx context.Context, section domain.ReportSection, filters domain.ReportFilters) (any, error) {
	report, _, err := s.generate(ctx, section, filters, s.now())
	return report, err
}

// Compute monta o relatório da seção sobre os registros recebidos
func (s *Service) Compute(ctx context.Context, section domain.ReportSection, filters domain.ReportFilters, payload RecordPayload) (any, error) {
	if !section.IsValid() {
		return nil, errors.Wrapf(ErrInvalidSection, "%q", section)
	}

	w, err := s.resolveWindow(filters, s.now())
	if err != nil {
		return nil, err
	}

	records, invalid := payload.Records(filters.OrganizationID, w.loc)
	if invalid > 0 {
		log.ForContext(ctx).WithFields(log.Fields{
			"section": section,
			"invalid": invalid,
		}).Debug("Datas inválidas tratadas como ausentes")
	}

	return s.build(ctx, section, w, records)
}

func (s *Service) generate(ctx context.Context, section domain.ReportSection, filters domain.ReportFilters, now time.Time) (any, window, error) {
	if !section.IsValid() {
		return nil, window{}, errors.Wrapf(ErrInvalidSection, "%q", section)
	}
	if filters.OrganizationID == "" {
		return nil, window{}, ErrMissingOrganization
	}

	w, err := s.resolveWindow(filters, now)
	if err != nil {
		return nil, window{}, err
	}

	records, err := s.loadRecords(ctx, section, filters.OrganizationID)
	if err != nil {
		return nil, window{}, err
	}

	report, err := s.build(ctx, section, w, records)
	if err != nil {
		return nil, window{}, err
	}

	return report, w, nil
}

// resolveWindow aplica os filtros sobre os padrões configurados.
// A referência segue a ordem: filtro, REPORT_REFERENCE_INSTANT, relógio.
func (s *Service) resolveWindow(filters domain.ReportFilters, now time.Time) (window, error) {
	loc, err := s.cfg.Report.Location()
	if err != nil {
		return window{}, err
	}

	granularity := filters.Granularity
	if granularity == "" {
		granularity = s.cfg.Report.Granularity
	}
	if _, err := analytics.ParseGranularity(granularity); err != nil {
		return window{}, err
	}

	count := filters.PeriodCount
	if count == 0 {
		count = s.cfg.Report.PeriodCount
	}
	if count == 0 {
		count = analytics.DefaultPeriodCount
	}

	reference := now
	if fixed := s.cfg.Report.FixedReference(); fixed != nil {
		reference = *fixed
	}
	if filters.Reference != nil {
		reference = *filters.Reference
	}
	reference = reference.In(loc)

	periods, err := analytics.GeneratePeriods(count, reference)
	if err != nil {
		return window{}, err
	}

	w := newWindow(periods, reference)
	if s.cfg.Report.StableColors {
		w = w.withStableColors()
	}

	return w, nil
}

// loadRecords busca apenas as tabelas usadas pela seção
func (s *Service) loadRecords(ctx context.Context, section domain.ReportSection, organizationID string) (domain.RecordSet, error) {
	var (
		records domain.RecordSet
		err     error
	)

	needs := map[domain.ReportSection][]string{
		domain.SectionOverview:      {"invoices", "subscriptions", "customers", "calls"},
		domain.SectionRevenue:       {"invoices"},
		domain.SectionSubscriptions: {"subscriptions"},
		domain.SectionCustomers:     {"customers"},
		domain.SectionCalls:         {"calls"},
		domain.SectionPipeline:      {"deals"},
	}

	for _, table := range needs[section] {
		switch table {
		case "invoices":
			records.Invoices, err = s.invoiceRepo.ListByOrganization(ctx, organizationID)
		case "subscriptions":
			records.Subscriptions, err = s.subscriptionRepo.ListByOrganization(ctx, organizationID)
		case "customers":
			records.Customers, err = s.customerRepo.ListByOrganization(ctx, organizationID)
		case "calls":
			records.Calls, err = s.callRepo.ListByOrganization(ctx, organizationID)
		case "deals":
			records.Deals, err = s.dealRepo.ListByOrganization(ctx, organizationID)
		}
		if err != nil {
			return domain.RecordSet{}, errors.Wrapf(err, "erro ao carregar %s", table)
		}
	}

	return records, nil
}

func (s *Service) build(ctx context.Context, section domain.ReportSection, w window, records domain.RecordSet) (any, error) {
	if excluded := excludedRecords(section, records); excluded > 0 {
		log.ForContext(ctx).WithFields(log.Fields{
			"section":  section,
			"excluded": excluded,
		}).Debug("Registros sem data ignorados nas séries")
	}

	var (
		report any
		err    error
	)

	switch section {
	case domain.SectionOverview:
		report, err = buildOverviewReport(w, records)
	case domain.SectionRevenue:
		report, err = buildRevenueReport(w, records.Invoices)
	case domain.SectionSubscriptions:
		report, err = buildSubscriptionReport(w, records.Subscriptions)
	case domain.SectionCustomers:
		report, err = buildCustomerReport(w, records.Customers)
	case domain.SectionCalls:
		report, err = buildCallReport(w, records.Calls)
	case domain.SectionPipeline:
		report, err = buildPipelineReport(w, records.Deals)
	default:
		return nil, errors.Wrapf(ErrInvalidSection, "%q", section)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao montar o relatório %s", section)
	}

	return report, nil
}
