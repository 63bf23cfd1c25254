package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Store   StoreConfig
	POS     POSConfig
	Company CompanyConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env            string // development, staging, production
	Name           string
	LogLevel       string
	MetricsEnabled bool
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig almacén persistente local.
type StoreConfig struct {
	Driver string // sqlite, memory
	Path   string // archivo SQLite
}

// POSConfig parámetros de la terminal.
type POSConfig struct {
	DefaultCashier string // operador cuando la petición no trae X-Cashier-ID
}

// CompanyConfig datos de la tienda que se siembran en la configuración persistida.
type CompanyConfig struct {
	Name          string
	Slogan        string
	TaxID         string
	Phone         string
	Email         string
	Address       string
	City          string
	ReceiptFooter string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde .env o config.env).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:            getString(v, "APP_ENV", "development"),
			Name:           getString(v, "APP_NAME", "orion-pdv"),
			LogLevel:       getString(v, "LOG_LEVEL", "info"),
			MetricsEnabled: getBool(v, "METRICS_ENABLED", true),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Store: StoreConfig{
			Driver: getString(v, "STORE_DRIVER", "sqlite"),
			Path:   getString(v, "STORE_PATH", "orion-pdv.db"),
		},
		POS: POSConfig{
			DefaultCashier: getString(v, "POS_DEFAULT_CASHIER", "caixa"),
		},
		Company: CompanyConfig{
			Name:          getString(v, "COMPANY_NAME", "Minha Loja"),
			Slogan:        getString(v, "COMPANY_SLOGAN", ""),
			TaxID:         getString(v, "COMPANY_TAX_ID", ""),
			Phone:         getString(v, "COMPANY_PHONE", ""),
			Email:         getString(v, "COMPANY_EMAIL", ""),
			Address:       getString(v, "COMPANY_ADDRESS", ""),
			City:          getString(v, "COMPANY_CITY", ""),
			ReceiptFooter: getString(v, "RECEIPT_FOOTER", "Obrigado pela preferência!"),
		},
	}

	switch cfg.Store.Driver {
	case "sqlite", "memory":
	default:
		return nil, fmt.Errorf("config: STORE_DRIVER inválido %q (sqlite|memory)", cfg.Store.Driver)
	}
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return nil, fmt.Errorf("config: HTTP_PORT inválido %d", cfg.HTTP.Port)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}
