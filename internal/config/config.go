package config

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Бэкенды журнала заявок
const (
	StoreSheets   = "sheets"
	StorePostgres = "postgres"
	StoreNone     = "none"
)

var ErrInvalidAdminID = errors.New("invalid admin chat id")

type Config struct {
	TelegramToken string `mapstructure:"TELEGRAM_TOKEN" validate:"required"`
	Environment   string `mapstructure:"ENV" validate:"required"`

	// Журнал заявок
	RecordStore       string `mapstructure:"RECORD_STORE" validate:"oneof=sheets postgres none"`
	GoogleCredentials string `mapstructure:"GOOGLE_CREDENTIALS"`
	SpreadsheetID     string `mapstructure:"SPREADSHEET_ID"`
	SheetName         string `mapstructure:"SHEET_NAME" validate:"required"`
	DBDSN             string `mapstructure:"DB_DSN" validate:"required_if=RecordStore postgres"`

	// Уведомления
	AdminChatIDsRaw string  `mapstructure:"ADMIN_CHAT_IDS"`
	AdminChatIDs    []int64 `mapstructure:"-"`
	NotifyRate      float64 `mapstructure:"NOTIFY_RATE" validate:"gt=0"`

	// Диалог
	LeadHours         int           `mapstructure:"LEAD_HOURS" validate:"gte=0"`
	HorizonDays       int           `mapstructure:"HORIZON_DAYS" validate:"gte=0,lte=60"`
	Timezone          string        `mapstructure:"TIMEZONE" validate:"required"`
	ApplicationPrefix string        `mapstructure:"APPLICATION_PREFIX" validate:"required,alphanum"`
	SessionIdleTTL    time.Duration `mapstructure:"SESSION_IDLE_TTL" validate:"gte=0"`
	ExternalTimeout   time.Duration `mapstructure:"EXTERNAL_TIMEOUT" validate:"gt=0"`

	Location *time.Location `mapstructure:"-"`
}

var defaults = map[string]interface{}{
	"TELEGRAM_TOKEN":     "",
	"ENV":                "development",
	"RECORD_STORE":       StoreSheets,
	"GOOGLE_CREDENTIALS": "",
	"SPREADSHEET_ID":     "",
	"SHEET_NAME":         "Заявки",
	"DB_DSN":             "",
	"ADMIN_CHAT_IDS":     "",
	"NOTIFY_RATE":        20,
	"LEAD_HOURS":         24,
	"HORIZON_DAYS":       14,
	"TIMEZONE":           "Europe/Moscow",
	"APPLICATION_PREFIX": "mc",
	"SESSION_IDLE_TTL":   "24h",
	"EXTERNAL_TIMEOUT":   "10s",
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	v := viper.New()
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper собирает и проверяет конфиг из готового экземпляра viper
func FromViper(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.RecordStore = strings.ToLower(strings.TrimSpace(cfg.RecordStore))

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	ids, err := ParseAdminIDs(cfg.AdminChatIDsRaw)
	if err != nil {
		return nil, err
	}
	cfg.AdminChatIDs = ids

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	return cfg, nil
}

// ParseAdminIDs разбирает список id через запятую, пустые элементы пропускаются
func ParseAdminIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAdminID, part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// SheetsConfigured проверяет что для Google Sheets заданы credentials и таблица
func (c *Config) SheetsConfigured() bool {
	return c.GoogleCredentials != "" && c.SpreadsheetID != ""
}
