package config

import (
	"fmt"
	"strings"
	"time"

	"sica-kitchen/internal/pkg/common"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	OpenRouter  OpenRouterConfig  `mapstructure:"openrouter"`
	Spoonacular SpoonacularConfig `mapstructure:"spoonacular"`
	Kroger      KrogerConfig      `mapstructure:"kroger"`
	Cache       CacheConfig       `mapstructure:"cache"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	DedupWindow time.Duration     `mapstructure:"dedup_window"`
	LogLevel    string            `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// OpenRouterConfig 對話模型設定
type OpenRouterConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// SpoonacularConfig 食譜來源設定
// BatchSize 與 Ranking 各版本取值不同，一律走設定而非寫死
type SpoonacularConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	BatchSize  int           `mapstructure:"batch_size"`
	Ranking    int           `mapstructure:"ranking"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
}

// KrogerConfig 商品價格來源設定
type KrogerConfig struct {
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	LocationID   string        `mapstructure:"location_id"`
	Limit        int           `mapstructure:"limit"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"` // memory 或 redis
	RedisAddr       string        `mapstructure:"redis_addr"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件，不存在時改吃環境變數
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("openrouter.api_key", "OPENROUTER_API_KEY")
	viper.BindEnv("openrouter.model", "OPENROUTER_MODEL")
	viper.BindEnv("openrouter.max_tokens", "MODEL_MAX_TOKENS")
	viper.BindEnv("spoonacular.api_key", "SPOONACULAR_API_KEY")
	viper.BindEnv("spoonacular.batch_size", "SPOONACULAR_BATCH_SIZE")
	viper.BindEnv("spoonacular.ranking", "SPOONACULAR_RANKING")
	viper.BindEnv("kroger.client_id", "KROGER_CLIENT_ID")
	viper.BindEnv("kroger.client_secret", "KROGER_CLIENT_SECRET")
	viper.BindEnv("kroger.location_id", "KROGER_LOCATION_ID")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.backend", "CACHE_BACKEND")
	viper.BindEnv("cache.redis_addr", "CACHE_REDIS_ADDR")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 添加調試日誌（logger 尚未初始化，改用 fmt.Println）
	fmt.Println("Loading configuration",
		"spoonacular_api_key:", maskAPIKey(viper.GetString("spoonacular.api_key")),
		"kroger_client_id:", maskAPIKey(viper.GetString("kroger.client_id")),
		"openrouter_model:", viper.GetString("openrouter.model"))

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "sica-kitchen")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// 對話模型設定
	viper.SetDefault("openrouter.model", "openai/gpt-4o-mini")
	viper.SetDefault("openrouter.max_tokens", 1000)
	viper.SetDefault("openrouter.timeout", "60s")

	// 食譜來源設定
	viper.SetDefault("spoonacular.batch_size", 5)
	viper.SetDefault("spoonacular.ranking", 1)
	viper.SetDefault("spoonacular.timeout", "30s")
	viper.SetDefault("spoonacular.max_retries", 2)

	// 商品價格來源設定
	viper.SetDefault("kroger.location_id", "01400722")
	viper.SetDefault("kroger.limit", 1)
	viper.SetDefault("kroger.timeout", "30s")

	// 快取設定
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.redis_addr", "localhost:6379")
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.cleanup_interval", "10m")

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	// 去重設定
	viper.SetDefault("dedup_window", "1s")
}

// validateConfig 驗證設定
// 缺少外部服務憑證屬於啟動期致命錯誤，而不是呼叫期錯誤
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("%w: server port is required", common.ErrInvalidConfiguration)
	}

	// 驗證外部服務憑證
	if config.Spoonacular.APIKey == "" {
		return fmt.Errorf("%w: SPOONACULAR_API_KEY is not set", common.ErrInvalidConfiguration)
	}
	if config.Kroger.ClientID == "" || config.Kroger.ClientSecret == "" {
		return fmt.Errorf("%w: KROGER_CLIENT_ID and KROGER_CLIENT_SECRET must be set", common.ErrInvalidConfiguration)
	}
	if config.Spoonacular.BatchSize <= 0 {
		return fmt.Errorf("%w: invalid spoonacular batch size", common.ErrInvalidConfiguration)
	}
	if config.Spoonacular.Ranking != 1 && config.Spoonacular.Ranking != 2 {
		return fmt.Errorf("%w: spoonacular ranking must be 1 or 2", common.ErrInvalidConfiguration)
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.Backend != "memory" && config.Cache.Backend != "redis" {
			return fmt.Errorf("%w: invalid cache backend %q", common.ErrInvalidConfiguration, config.Cache.Backend)
		}
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("%w: invalid cache max size", common.ErrInvalidConfiguration)
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("%w: invalid cache ttl", common.ErrInvalidConfiguration)
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("%w: invalid cache cleanup interval", common.ErrInvalidConfiguration)
		}
	}

	return nil
}
