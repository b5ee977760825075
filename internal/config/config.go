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

// Origens de dados suportadas
const (
	SourceFirestore = "firestore"
	SourcePostgres  = "postgres"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Firestore   Firestore   `mapstructure:",squash"`
	Source      Source      `mapstructure:",squash"`
	Normalizer  Normalizer  `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	RefreshSync RefreshSync `mapstructure:",squash"`
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
}

type Firestore struct {
	ProjectID       string `mapstructure:"firestore_project_id"`
	CredentialsJSON string `mapstructure:"firestore_credentials_json"`
	CredentialsFile string `mapstructure:"firestore_credentials_file"`
	Collection      string `mapstructure:"firestore_collection"`
}

type Source struct {
	Type         string        `mapstructure:"data_source"`
	SalesTable   string        `mapstructure:"sales_table"`
	FieldMapping []string      `mapstructure:"source_field_mapping"` // Pares "campo_origem=coluna"
	FetchTimeout time.Duration `mapstructure:"source_fetch_timeout"`
}

type Normalizer struct {
	RecoveryPolicy string  `mapstructure:"normalizer_recovery_policy"`
	ExcludedIDs    []int64 `mapstructure:"normalizer_excluded_ids"`
	CityTablePath  string  `mapstructure:"normalizer_city_table_path"`
	Timezone       string  `mapstructure:"normalizer_timezone"`
	CurrencySymbol string  `mapstructure:"normalizer_currency_symbol"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	SecretKey string        `mapstructure:"secret_key"`
	Users     []string      `mapstructure:"auth_users"` // "usuario:Nome:hash-bcrypt"
	TokenTTL  time.Duration `mapstructure:"auth_token_ttl"`
}

type RefreshSync struct {
	CronSchedule     string `mapstructure:"refresh_sync_cron"`
	Enabled          bool   `mapstructure:"refresh_sync_enabled"`
	RefreshOnStartup bool   `mapstructure:"refresh_on_startup"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8501")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/dados_rico?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("FIRESTORE_PROJECT_ID", "")
	viper.SetDefault("FIRESTORE_CREDENTIALS_JSON", "")
	viper.SetDefault("FIRESTORE_CREDENTIALS_FILE", "")
	viper.SetDefault("FIRESTORE_COLLECTION", "dados")

	viper.SetDefault("DATA_SOURCE", SourceFirestore)
	viper.SetDefault("SALES_TABLE", "dados")
	viper.SetDefault("SOURCE_FIELD_MAPPING", "")
	viper.SetDefault("SOURCE_FETCH_TIMEOUT", "60s")

	viper.SetDefault("NORMALIZER_RECOVERY_POLICY", "skip")
	viper.SetDefault("NORMALIZER_EXCLUDED_IDS", "19")
	viper.SetDefault("NORMALIZER_CITY_TABLE_PATH", "") // Vazio usa a tabela embutida
	viper.SetDefault("NORMALIZER_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("NORMALIZER_CURRENCY_SYMBOL", "R$")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_USERS", "")
	viper.SetDefault("AUTH_TOKEN_TTL", "168h") // 7 dias

	viper.SetDefault("REFRESH_SYNC_CRON", "*/30 * * * *") // A cada 30 minutos
	viper.SetDefault("REFRESH_SYNC_ENABLED", true)
	viper.SetDefault("REFRESH_ON_STARTUP", true)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
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

	config.Source.Type = strings.ToLower(strings.TrimSpace(config.Source.Type))
	if config.Source.Type != SourceFirestore && config.Source.Type != SourcePostgres {
		return nil, fmt.Errorf("DATA_SOURCE inválido: %q (use %s ou %s)", config.Source.Type, SourceFirestore, SourcePostgres)
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

// Mapping converte SOURCE_FIELD_MAPPING em mapa campo da origem -> coluna
func (s Source) Mapping() (map[string]string, error) {
	mapping := make(map[string]string, len(s.FieldMapping))
	for _, pair := range s.FieldMapping {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		from, to, ok := strings.Cut(pair, "=")
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("SOURCE_FIELD_MAPPING inválido: %q (use origem=coluna)", pair)
		}
		mapping[from] = to
	}
	return mapping, nil
}

// Location fuso horário usado para datas que chegam como timestamp
func (n Normalizer) Location() (*time.Location, error) {
	if n.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(n.Timezone)
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
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
