package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	AI         AIConfig         `mapstructure:"ai"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Nutrition  NutritionConfig  `mapstructure:"nutrition"`
	Queue      QueueConfig      `mapstructure:"queue"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	LogLevel   string           `mapstructure:"log_level"`
	LogDir     string           `mapstructure:"log_dir"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// AIConfig 外部估算服務設定
type AIConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Provider    string        `mapstructure:"provider"` // openrouter | gemini
	MinInterval time.Duration `mapstructure:"min_interval"`
}

// OpenRouterConfig OpenRouter 配置
type OpenRouterConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// GeminiConfig Gemini 配置
type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig 學習快取設定
type CacheConfig struct {
	Driver    string      `mapstructure:"driver"` // memory | redis | sql
	MaxSize   int         `mapstructure:"max_size"`
	KeyPrefix string      `mapstructure:"key_prefix"`
	Redis     RedisConfig `mapstructure:"redis"`
}

// RedisConfig Redis 連線設定
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// DatabaseConfig 食譜資料庫設定
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite | postgres
	DSN    string `mapstructure:"dsn"`
}

// NutritionConfig 營養解析設定
type NutritionConfig struct {
	ReferencePath       string  `mapstructure:"reference_path"`
	SimilarityMetric    string  `mapstructure:"similarity_metric"`
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
}

// QueueConfig 批次工作隊列設定
type QueueConfig struct {
	Workers    int `mapstructure:"workers"`
	MaxSize    int `mapstructure:"max_size"`
	MaxPending int `mapstructure:"max_pending"` // 背景批次最多等待數
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定；.env 不存在時僅使用環境變數與預設值
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定常用環境變量
	bindings := map[string]string{
		"openrouter.api_key":             "OPENROUTER_API_KEY",
		"openrouter.model":               "OPENROUTER_MODEL",
		"gemini.api_key":                 "GOOGLE_API_KEY",
		"gemini.model":                   "GEMINI_MODEL",
		"ai.provider":                    "AI_PROVIDER",
		"ai.enabled":                     "AI_ENABLED",
		"cache.driver":                   "CACHE_DRIVER",
		"cache.redis.addr":               "REDIS_ADDR",
		"cache.redis.password":           "REDIS_PASSWORD",
		"database.driver":                "DATABASE_DRIVER",
		"database.dsn":                   "DATABASE_URL",
		"nutrition.reference_path":       "TACO_CSV_PATH",
		"nutrition.similarity_threshold": "SIMILARITY_THRESHOLD",
		"rate_limit.enabled":             "RATE_LIMIT_ENABLED",
		"log_level":                      "LOG_LEVEL",
		"log_dir":                        "LOG_DIR",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// MaskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// Default 回傳只含預設值的設定，供測試與工具使用
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "nutriai")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "120s")
	v.SetDefault("server.max_body_bytes", 2<<20)

	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.min_interval", "1100ms")

	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("openrouter.model", "google/gemini-flash-1.5")
	v.SetDefault("openrouter.max_tokens", 300)
	v.SetDefault("openrouter.timeout", "60s")

	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("gemini.timeout", "60s")

	v.SetDefault("cache.driver", "sql")
	v.SetDefault("cache.max_size", 0)
	v.SetDefault("cache.key_prefix", "nutriai:")
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.db", 0)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "file:nutriai.db?_pragma=busy_timeout(5000)")

	v.SetDefault("nutrition.reference_path", "")
	v.SetDefault("nutrition.similarity_metric", "levenshtein")
	v.SetDefault("nutrition.similarity_threshold", 0.8)

	v.SetDefault("queue.workers", 4)
	v.SetDefault("queue.max_size", 100)
	v.SetDefault("queue.max_pending", 4)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_dir", "logs")
}

func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	switch config.Cache.Driver {
	case "memory", "sql":
	case "redis":
		if config.Cache.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for redis cache")
		}
	default:
		return fmt.Errorf("unknown cache driver %q", config.Cache.Driver)
	}
	if config.Cache.MaxSize < 0 {
		return fmt.Errorf("invalid cache max size")
	}

	switch config.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown database driver %q", config.Database.Driver)
	}
	if config.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}

	if config.AI.Enabled {
		switch config.AI.Provider {
		case "openrouter", "gemini":
		default:
			return fmt.Errorf("unknown ai provider %q", config.AI.Provider)
		}
	}

	switch config.Nutrition.SimilarityMetric {
	case "", "levenshtein", "jaro-winkler", "sorensen-dice":
	default:
		return fmt.Errorf("unknown similarity metric %q", config.Nutrition.SimilarityMetric)
	}

	t := config.Nutrition.SimilarityThreshold
	if t <= 0 || t > 1 {
		return fmt.Errorf("similarity threshold must be in (0, 1]")
	}

	if config.Queue.Workers <= 0 {
		return fmt.Errorf("invalid queue workers")
	}
	if config.Queue.MaxSize <= 0 {
		return fmt.Errorf("invalid queue max size")
	}

	return nil
}
