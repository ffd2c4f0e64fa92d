package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-reports-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-reports-api/infrastructure/pdf"
	"github.com/vfg2006/business-reports-api/infrastructure/repository"
	"github.com/vfg2006/business-reports-api/internal/api"
	"github.com/vfg2006/business-reports-api/internal/config"
	"github.com/vfg2006/business-reports-api/internal/scheduler"
	"github.com/vfg2006/business-reports-api/internal/usecases/reporting"
	"github.com/vfg2006/business-reports-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel := log.Configure(cfg.App.LogLevel, os.Stdout)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	invoiceRepo := repository.NewInvoiceRepository(pgConn)
	subscriptionRepo := repository.NewSubscriptionRepository(pgConn)
	customerRepo := repository.NewCustomerRepository(pgConn)
	callRepo := repository.NewCallRepository(pgConn)
	dealRepo := repository.NewDealRepository(pgConn)
	organizationRepo := repository.NewOrganizationRepository(pgConn)

	reportService := reporting.NewService(
		cfg,
		invoiceRepo,
		subscriptionRepo,
		customerRepo,
		callRepo,
		dealRepo,
		pdf.NewTableRenderer(),
	)

	reportExportService := scheduler.NewReportExportService(reportService, organizationRepo, cfg)

	if err := reportExportService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de exportação de relatórios")
	} else {
		logrus.Info("Agendador de exportação de relatórios iniciado com sucesso")
	}

	server, err := api.New(cfg, reportService, reportExportService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
