package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Redis        Redis        `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	Realtime     Realtime     `mapstructure:",squash"`
	StatsRefresh StatsRefresh `mapstructure:",squash"`
	Webhook      Webhook      `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`

	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
}

type Redis struct {
	Addr      string `mapstructure:"redis_addr"`
	Password  string `mapstructure:"redis_password"`
	DB        int    `mapstructure:"redis_db"`
	KeyPrefix string `mapstructure:"redis_key_prefix"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret   string        `mapstructure:"auth_secret"`
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

// Realtime controla a escuta de LISTEN/NOTIFY do Postgres.
// CoalesceWindow igual a zero dispara um refresh por notificação.
type Realtime struct {
	Enabled        bool          `mapstructure:"realtime_enabled"`
	MinReconnect   time.Duration `mapstructure:"realtime_min_reconnect"`
	MaxReconnect   time.Duration `mapstructure:"realtime_max_reconnect"`
	CoalesceWindow time.Duration `mapstructure:"realtime_coalesce_window"`
}

type StatsRefresh struct {
	CronSchedule string `mapstructure:"stats_refresh_cron"`
	Enabled      bool   `mapstructure:"stats_refresh_enabled"`
}

type Webhook struct {
	Timeout     time.Duration     `mapstructure:"webhook_timeout"`
	Endpoints   []string          `mapstructure:"webhook_endpoints"`
	CalendarURL string            `mapstructure:"calendar_webhook_url"`
	EndpointMap map[string]string `mapstructure:"-"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:8080")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/petshop?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 20)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_KEY_PREFIX", "petshop")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("REALTIME_ENABLED", true)
	viper.SetDefault("REALTIME_MIN_RECONNECT", "10s")
	viper.SetDefault("REALTIME_MAX_RECONNECT", "1m")
	viper.SetDefault("REALTIME_COALESCE_WINDOW", "0s")

	viper.SetDefault("STATS_REFRESH_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("STATS_REFRESH_ENABLED", false)

	viper.SetDefault("WEBHOOK_TIMEOUT", "30s")
	viper.SetDefault("WEBHOOK_ENDPOINTS", "")
	viper.SetDefault("CALENDAR_WEBHOOK_URL", "https://webhook.n8nlabz.com.br/webhook/agenda")

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

	endpoints, err := ParseEndpoints(config.Webhook.Endpoints)
	if err != nil {
		return nil, err
	}
	config.Webhook.EndpointMap = endpoints

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// ParseEndpoints converte a lista "nome=url" de WEBHOOK_ENDPOINTS em mapa.
func ParseEndpoints(entries []string) (map[string]string, error) {
	endpoints := make(map[string]string, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, url, found := strings.Cut(entry, "=")
		if !found || strings.TrimSpace(name) == "" || strings.TrimSpace(url) == "" {
			return nil, fmt.Errorf("endpoint de webhook inválido: %q (esperado nome=url)", entry)
		}

		endpoints[strings.TrimSpace(name)] = strings.TrimSpace(url)
	}

	return endpoints, nil
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

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
