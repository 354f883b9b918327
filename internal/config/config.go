package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/laroza/pos-api/internal/domain"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	Sales         Sales         `mapstructure:",squash"`
	Numbering     Numbering     `mapstructure:",squash"`
	Uploads       Uploads       `mapstructure:",squash"`
	RateLimit     RateLimit     `mapstructure:",squash"`
	LowStockAlert LowStockAlert `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN         string `mapstructure:"-"`
	Driver      string `mapstructure:"database_driver"`
	Password    string `mapstructure:"database_password"`
	URL         string `mapstructure:"database_url"`
	User        string `mapstructure:"database_user"`
	AutoMigrate bool   `mapstructure:"database_auto_migrate"`
}

type Auth struct {
	Secret     string        `mapstructure:"session_secret"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type Sales struct {
	TaxRateRaw        string          `mapstructure:"tax_rate"`
	TaxRate           decimal.Decimal `mapstructure:"-"`
	TaxVisaOnly       bool            `mapstructure:"tax_visa_only"`
	AllowOversell     bool            `mapstructure:"allow_oversell"`
	LowStockThreshold int             `mapstructure:"low_stock_threshold"`
}

type Numbering struct {
	InvoicePrefix string `mapstructure:"invoice_prefix"`
	InvoiceWidth  int    `mapstructure:"invoice_width"`
	InvoiceBase   int64  `mapstructure:"invoice_base"`
	OrderPrefix   string `mapstructure:"order_prefix"`
	OrderWidth    int    `mapstructure:"order_width"`
	OrderBase     int64  `mapstructure:"order_base"`
}

type Uploads struct {
	Dir       string `mapstructure:"uploads_dir"`
	URLPrefix string `mapstructure:"uploads_url_prefix"`
	MaxBytes  int64  `mapstructure:"uploads_max_bytes"`
}

type RateLimit struct {
	Rate    string `mapstructure:"rate_limit"`
	Enabled bool   `mapstructure:"rate_limit_enabled"`
}

type LowStockAlert struct {
	CronSchedule string `mapstructure:"low_stock_alert_cron"`
	Enabled      bool   `mapstructure:"low_stock_alert_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/laroza?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_AUTO_MIGRATE", true)

	viper.SetDefault("SESSION_SECRET", "your_secret_key")
	viper.SetDefault("SESSION_TTL", "12h") // Um turno de loja

	viper.SetDefault("TAX_RATE", "0.05")
	viper.SetDefault("TAX_VISA_ONLY", true)
	viper.SetDefault("ALLOW_OVERSELL", false) // Rejeita venda acima do estoque
	viper.SetDefault("LOW_STOCK_THRESHOLD", 5)

	viper.SetDefault("INVOICE_PREFIX", "")
	viper.SetDefault("INVOICE_WIDTH", 0)
	viper.SetDefault("INVOICE_BASE", 7000001)
	viper.SetDefault("ORDER_PREFIX", "ORD-")
	viper.SetDefault("ORDER_WIDTH", 3)
	viper.SetDefault("ORDER_BASE", 1)

	viper.SetDefault("UPLOADS_DIR", "uploads")
	viper.SetDefault("UPLOADS_URL_PREFIX", "/uploads")
	viper.SetDefault("UPLOADS_MAX_BYTES", 5*1024*1024) // 5MB

	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("RATE_LIMIT_ENABLED", true)

	viper.SetDefault("LOW_STOCK_ALERT_CRON", "0 8 * * *") // Todos os dias às 8h, antes de abrir a loja
	viper.SetDefault("LOW_STOCK_ALERT_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
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

	config.Sales.TaxRate, err = decimal.NewFromString(config.Sales.TaxRateRaw)
	if err != nil {
		return nil, fmt.Errorf("TAX_RATE inválido %q: %w", config.Sales.TaxRateRaw, err)
	}
	if config.Sales.TaxRate.IsNegative() {
		return nil, fmt.Errorf("TAX_RATE não pode ser negativo: %s", config.Sales.TaxRate)
	}

	if config.Auth.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL deve ser positivo")
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}

func (n Numbering) InvoiceScheme() domain.NumberingScheme {
	return domain.NumberingScheme{Prefix: n.InvoicePrefix, Width: n.InvoiceWidth, Base: n.InvoiceBase}
}

func (n Numbering) OrderScheme() domain.NumberingScheme {
	return domain.NumberingScheme{Prefix: n.OrderPrefix, Width: n.OrderWidth, Base: n.OrderBase}
}
