package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-reports-api/infrastructure/repository"
	"github.com/vfg2006/business-reports-api/internal/config"
	"github.com/vfg2006/business-reports-api/internal/domain"
	"github.com/vfg2006/business-reports-api/internal/export"
	"github.com/vfg2006/business-reports-api/internal/usecases/reporting"
)

const maxConcurrentExports = 3

// ErrInvalidOrganizationID indica um id que não pode virar nome de diretório
var ErrInvalidOrganizationID = errors.New("invalid organization id for export directory")

// ReportExportConfig representa a configuração da exportação agendada
type ReportExportConfig struct {
	CronSchedule  string
	SyncEnabled   bool
	OutputDir     string
	Organizations []string
	Formats       []export.Format
}

// ExportSummary resume uma execução da exportação
type ExportSummary struct {
	Organizations int `json:"organizations"`
	Exported      int `json:"exported"`
	Skipped       int `json:"skipped"`
	Failed        int `json:"failed"`
}

// ReportExportService exporta periodicamente todas as seções de cada organização
type ReportExportService struct {
	scheduler           *gocron.Scheduler
	config              ReportExportConfig
	reporter            reporting.Reporter
	organizationRepo    repository.OrganizationRepository
	ctx                 context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         ExportSummary
}

// NewReportExportService cria o serviço de exportação agendada
func NewReportExportService(
	reporter reporting.Reporter,
	organizationRepo repository.OrganizationRepository,
	appConfig *config.Config,
) *ReportExportService {
	formats := make([]export.Format, 0, len(appConfig.ReportExport.Formats))
	for _, f := range appConfig.ReportExport.Formats {
		// os formatos já foram validados ao carregar a configuração
		if format, err := export.ParseFormat(f); err == nil {
			formats = append(formats, format)
		}
	}
	if len(formats) == 0 {
		formats = append(formats, export.FormatCSV)
	}

	exportConfig := ReportExportConfig{
		CronSchedule:  appConfig.ReportExport.CronSchedule,
		SyncEnabled:   appConfig.ReportExport.Enabled,
		OutputDir:     appConfig.ReportExport.OutputDir,
		Organizations: appConfig.ReportExport.Organizations,
		Formats:       formats,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": exportConfig.CronSchedule,
		"sync_enabled":  exportConfig.SyncEnabled,
		"output_dir":    exportConfig.OutputDir,
		"formats":       exportConfig.Formats,
	}).Info("Configuração da exportação de relatórios carregada")

	return &ReportExportService{
		scheduler:        gocron.NewScheduler(time.Local),
		config:           exportConfig,
		reporter:         reporter,
		organizationRepo: organizationRepo,
		ctx:              context.Background(),
	}
}

// Start inicia o agendador
func (s *ReportExportService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Exportação agendada de relatórios desabilitada por configuração")
		return nil
	}

	s.ctx = ctx

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de exportação de relatórios")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncExports()
	})
	if err != nil {
		return errors.Wrap(err, "erro ao agendar exportação de relatórios")
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de exportação de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *ReportExportService) syncExports() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Exportação de relatórios já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	summary, err := s.RunOnce(s.ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	if err == nil {
		s.lastSyncCompletedAt = time.Now()
		s.lastSummary = summary
	}
	s.syncMutex.Unlock()

	if err != nil {
		logrus.WithError(err).Error("Erro na exportação de relatórios")
	}
}

// RunOnce exporta todas as seções de todas as organizações e grava os
// arquivos em <OutputDir>/<organização>/<arquivo>
func (s *ReportExportService) RunOnce(ctx context.Context) (ExportSummary, error) {
	startTime := time.Now()

	organizations, err := s.organizations(ctx)
	if err != nil {
		return ExportSummary{}, err
	}

	summary := ExportSummary{Organizations: len(organizations)}
	if len(organizations) == 0 {
		logrus.Info("Nenhuma organização encontrada para exportação de relatórios")
		return summary, nil
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		semaphore = make(chan struct{}, maxConcurrentExports)
	)

	for _, organizationID := range organizations {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(organizationID string) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			result := s.exportOrganization(ctx, organizationID)

			mu.Lock()
			summary.Exported += result.Exported
			summary.Skipped += result.Skipped
			summary.Failed += result.Failed
			mu.Unlock()
		}(organizationID)
	}

	wg.Wait()

	logrus.WithFields(logrus.Fields{
		"duration":      time.Since(startTime).String(),
		"organizations": summary.Organizations,
		"exported":      summary.Exported,
		"skipped":       summary.Skipped,
		"failed":        summary.Failed,
	}).Info("Exportação de relatórios concluída")

	return summary, nil
}

// organizations usa a lista configurada ou, quando vazia, as organizações ativas da base
func (s *ReportExportService) organizations(ctx context.Context) ([]string, error) {
	if len(s.config.Organizations) > 0 {
		return s.config.Organizations, nil
	}
	if s.organizationRepo == nil {
		return nil, nil
	}

	ids, err := s.organizationRepo.ListActiveIDs(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar organizações para exportação")
	}
	return ids, nil
}

func (s *ReportExportService) exportOrganization(ctx context.Context, organizationID string) ExportSummary {
	var result ExportSummary
	filters := domain.ReportFilters{OrganizationID: organizationID}

	if err := validateOrganizationDir(organizationID); err != nil {
		logrus.WithError(err).WithField("organization_id", organizationID).Error("Organização ignorada na exportação")
		result.Failed = len(domain.ReportSections) * len(s.config.Formats)
		return result
	}

	for _, section := range domain.ReportSections {
		for _, format := range s.config.Formats {
			logger := logrus.WithFields(logrus.Fields{
				"organization_id": organizationID,
				"section":         section,
				"format":          format,
			})

			file, err := s.reporter.Export(ctx, section, format, filters)
			if errors.Is(err, export.ErrEmptyInput) {
				logger.Debug("Seção sem dados, exportação ignorada")
				result.Skipped++
				continue
			}
			if err != nil {
				logger.WithError(err).Error("Erro ao exportar relatório")
				result.Failed++
				continue
			}

			if err := s.writeFile(organizationID, file); err != nil {
				logger.WithError(err).Error("Erro ao gravar arquivo exportado")
				result.Failed++
				continue
			}

			result.Exported++
		}
	}

	return result
}

func (s *ReportExportService) writeFile(organizationID string, file *domain.ExportFile) error {
	if err := validateOrganizationDir(organizationID); err != nil {
		return err
	}

	dir := filepath.Join(s.config.OutputDir, organizationID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "erro ao criar diretório %s", dir)
	}

	path := filepath.Join(dir, filepath.Base(file.Name))
	if err := os.WriteFile(path, file.Content, 0o644); err != nil {
		return errors.Wrapf(err, "erro ao gravar %s", path)
	}
	return nil
}

// validateOrganizationDir recusa ids que sairiam de OutputDir
func validateOrganizationDir(organizationID string) error {
	switch {
	case strings.TrimSpace(organizationID) == "",
		organizationID == ".", organizationID == "..",
		strings.ContainsAny(organizationID, `/\`+string(filepath.Separator)):
		return errors.Wrapf(ErrInvalidOrganizationID, "%q", organizationID)
	}
	return nil
}

// TriggerManualSync inicia manualmente uma exportação
func (s *ReportExportService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Exportação de relatórios já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando exportação manual de relatórios")
	go s.syncExports()
}

// GetStatus retorna o status atual da exportação
func (s *ReportExportService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"output_dir":             s.config.OutputDir,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_summary":           s.lastSummary,
	}
}
