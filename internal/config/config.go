package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/business-reports-api/internal/analytics"
	"github.com/vfg2006/business-reports-api/internal/export"
	"github.com/vfg2006/business-reports-api/pkg/utils"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Report       Report       `mapstructure:",squash"`
	ReportExport ReportExport `mapstructure:",squash"`
	Cors         Cors         `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Report define a janela padrão dos relatórios
type Report struct {
	PeriodCount      int    `mapstructure:"report_period_count"`
	Granularity      string `mapstructure:"report_granularity"`
	ReferenceInstant string `mapstructure:"report_reference_instant"`
	Timezone         string `mapstructure:"report_timezone"`
	StableColors     bool   `mapstructure:"report_stable_colors"`
}

// ReportExport configura a exportação agendada dos relatórios
type ReportExport struct {
	CronSchedule  string   `mapstructure:"report_export_cron"`
	Enabled       bool     `mapstructure:"report_export_enabled"`
	OutputDir     string   `mapstructure:"report_export_output_dir"`
	Organizations []string `mapstructure:"report_export_organizations"`
	Formats       []string `mapstructure:"report_export_formats"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/reports?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REPORT_PERIOD_COUNT", analytics.DefaultPeriodCount) // 6 meses
	viper.SetDefault("REPORT_GRANULARITY", string(analytics.GranularityMonth))
	viper.SetDefault("REPORT_REFERENCE_INSTANT", "") // vazio usa o relógio
	viper.SetDefault("REPORT_TIMEZONE", "Local")
	viper.SetDefault("REPORT_STABLE_COLORS", false) // cor fixa por categoria nos agrupamentos

	viper.SetDefault("REPORT_EXPORT_CRON", "0 7 1 * *") // No primeiro dia de cada mês às 7h
	viper.SetDefault("REPORT_EXPORT_ENABLED", false)
	viper.SetDefault("REPORT_EXPORT_OUTPUT_DIR", "exports")
	viper.SetDefault("REPORT_EXPORT_ORGANIZATIONS", []string{})
	viper.SetDefault("REPORT_EXPORT_FORMATS", []string{string(export.FormatCSV)})

	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"})

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Report.Validate(); err != nil {
		return nil, err
	}
	if err := config.ReportExport.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate confere a janela padrão dos relatórios
func (r Report) Validate() error {
	if r.PeriodCount < 1 || r.PeriodCount > analytics.MaxPeriodCount {
		return errors.Wrapf(analytics.ErrInvalidPeriodCount, "REPORT_PERIOD_COUNT=%d", r.PeriodCount)
	}
	if _, err := analytics.ParseGranularity(r.Granularity); err != nil {
		return errors.Wrap(err, "REPORT_GRANULARITY")
	}
	loc, err := r.Location()
	if err != nil {
		return err
	}
	if _, ok := utils.ParseReference(r.ReferenceInstant, loc); !ok {
		return errors.Errorf("REPORT_REFERENCE_INSTANT inválido: %q", r.ReferenceInstant)
	}
	return nil
}

// Location retorna o fuso usado para montar os períodos
func (r Report) Location() (*time.Location, error) {
	name := strings.TrimSpace(r.Timezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Wrapf(err, "REPORT_TIMEZONE inválido: %q", r.Timezone)
	}
	return loc, nil
}

// FixedReference retorna a data de referência fixa, quando configurada
func (r Report) FixedReference() *time.Time {
	loc, err := r.Location()
	if err != nil {
		return nil
	}
	reference, _ := utils.ParseReference(r.ReferenceInstant, loc)
	return reference
}

// Validate confere os formatos de exportação agendada
func (e ReportExport) Validate() error {
	for _, f := range e.Formats {
		if _, err := export.ParseFormat(f); err != nil {
			return errors.Wrap(err, "REPORT_EXPORT_FORMATS")
		}
	}
	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
