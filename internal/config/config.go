package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env    string       `mapstructure:"env"`
	Server ServerConfig `mapstructure:"server"`
	Source SourceConfig `mapstructure:"source"`
	Sheets SheetsConfig `mapstructure:"sheets"`
	DB     DBConfig     `mapstructure:"db"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"`
}

// SourceConfig selects the spreadsheet backend.
type SourceConfig struct {
	Driver          string `mapstructure:"driver"`
	WorkbookDir     string `mapstructure:"workbook_dir"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// SheetsConfig names the spreadsheet documents and worksheets in use.
type SheetsConfig struct {
	ProductsID          string `mapstructure:"products_id"`
	ProductsWorksheet   string `mapstructure:"products_worksheet"`
	DeliveriesID        string `mapstructure:"deliveries_id"`
	DeliveriesWorksheet string `mapstructure:"deliveries_worksheet"`
}

// DBConfig configures the optional delivery journal. An empty DSN disables it.
type DBConfig struct {
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("server.addr", "127.0.0.1:8001")
	v.SetDefault("server.mode", "release")
	v.SetDefault("source.driver", "google")
	v.SetDefault("source.workbook_dir", "./data")
	v.SetDefault("source.credentials_file", "service_account.json")
	v.SetDefault("sheets.products_id", "10twtfwsAbyxZ4D_0ChD34oFkwa_EWKAWPGVfk1FdEHM")
	v.SetDefault("sheets.products_worksheet", "Productos")
	v.SetDefault("sheets.deliveries_id", "1479sKgwA2ES503noFusdM-rOYv412-ogcqEouI6zQgI")
	v.SetDefault("sheets.deliveries_worksheet", "Entregas")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.maxOpenConns", 5)
}

// LoadConfig loads configuration from .env, an optional config.yaml and
// SHEETSTOCK_ prefixed environment variables, in increasing precedence.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./deploy/")
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/.sheetstock/")
	v.AddConfigPath("/etc/sheetstock/")

	v.SetEnvPrefix("SHEETSTOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the settings the services cannot start without.
func (c *Config) Validate() error {
	switch c.Source.Driver {
	case "google", "xlsx", "memory":
	default:
		return fmt.Errorf("unsupported source driver: %q", c.Source.Driver)
	}
	if c.Sheets.ProductsID == "" || c.Sheets.DeliveriesID == "" {
		return errors.New("sheets.products_id and sheets.deliveries_id are required")
	}
	if c.Sheets.ProductsWorksheet == "" || c.Sheets.DeliveriesWorksheet == "" {
		return errors.New("worksheet names must not be empty")
	}
	return nil
}
