package config

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig

	Admin     AdminConfig
	Scheduler SchedulerConfig
	Queue     QueueConfig
	Push      PushConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// AdminConfig guards the manual trigger surface.
type AdminConfig struct {
	Secret string
}

// SchedulerConfig holds the reminder policy knobs and run settings. Offsets
// and the gap threshold are configuration rather than constants so they can
// be tuned per deployment without code changes.
type SchedulerConfig struct {
	Timezone         string
	NightlyCron      string
	GapThresholdMins int
	FullOffsets      []int
	ShortOffsets     []int
	TaskEveningHour  int
	TaskMorningHour  int
	AdvisingLead     time.Duration
	Concurrency      int
	StrictParse      bool
}

// QueueConfig configures the deferred delivery queue and its dispatcher.
type QueueConfig struct {
	Name         string
	PollInterval time.Duration
}

// PushConfig points at the downstream push delivery endpoint.
type PushConfig struct {
	Endpoint string
	Timeout  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Admin = AdminConfig{Secret: v.GetString("ADMIN_SECRET")}

	cfg.Scheduler = SchedulerConfig{
		Timezone:         v.GetString("SCHEDULER_TIMEZONE"),
		NightlyCron:      v.GetString("SCHEDULER_NIGHTLY_CRON"),
		GapThresholdMins: v.GetInt("SCHEDULER_GAP_THRESHOLD_MINUTES"),
		FullOffsets:      splitInts(v.GetString("SCHEDULER_FULL_OFFSETS"), []int{30, 10, 5}),
		ShortOffsets:     splitInts(v.GetString("SCHEDULER_SHORT_OFFSETS"), []int{10, 5}),
		TaskEveningHour:  v.GetInt("SCHEDULER_TASK_EVENING_HOUR"),
		TaskMorningHour:  v.GetInt("SCHEDULER_TASK_MORNING_HOUR"),
		AdvisingLead:     parseDuration(v.GetString("SCHEDULER_ADVISING_LEAD"), 90*time.Minute),
		Concurrency:      v.GetInt("SCHEDULER_CONCURRENCY"),
		StrictParse:      v.GetBool("SCHEDULER_STRICT_PARSE"),
	}

	cfg.Queue = QueueConfig{
		Name:         v.GetString("QUEUE_NAME"),
		PollInterval: parseDuration(v.GetString("QUEUE_POLL_INTERVAL"), 15*time.Second),
	}

	cfg.Push = PushConfig{
		Endpoint: v.GetString("PUSH_ENDPOINT"),
		Timeout:  parseDuration(v.GetString("PUSH_TIMEOUT"), 10*time.Second),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "campusmate")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ADMIN_SECRET", "")

	v.SetDefault("SCHEDULER_TIMEZONE", "Asia/Dhaka")
	// 20:00 local every day, targeting tomorrow, so reminders exist before midnight.
	v.SetDefault("SCHEDULER_NIGHTLY_CRON", "0 20 * * *")
	v.SetDefault("SCHEDULER_GAP_THRESHOLD_MINUTES", 30)
	v.SetDefault("SCHEDULER_FULL_OFFSETS", "30,10,5")
	v.SetDefault("SCHEDULER_SHORT_OFFSETS", "10,5")
	v.SetDefault("SCHEDULER_TASK_EVENING_HOUR", 20)
	v.SetDefault("SCHEDULER_TASK_MORNING_HOUR", 8)
	v.SetDefault("SCHEDULER_ADVISING_LEAD", "90m")
	v.SetDefault("SCHEDULER_CONCURRENCY", 8)
	v.SetDefault("SCHEDULER_STRICT_PARSE", false)

	v.SetDefault("QUEUE_NAME", "notification-queue")
	v.SetDefault("QUEUE_POLL_INTERVAL", "15s")

	v.SetDefault("PUSH_ENDPOINT", "http://localhost:9090/push")
	v.SetDefault("PUSH_TIMEOUT", "10s")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

func splitInts(raw string, fallback []int) []int {
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	result := make([]int, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil || n < 0 {
			return fallback
		}
		result = append(result, n)
	}
	if len(result) == 0 {
		return fallback
	}

	return result
}
