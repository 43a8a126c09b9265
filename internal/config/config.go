package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	viper "github.com/spf13/viper"
)

/*
把init config跟read config分開
init : 需要設置viper watch 與 onConfigChange
read : 一般讀取  需要使用讀寫鎖
*/
var config_singleton *ConfigSingleTon
var muonce sync.Once

type ConfigSingleTon struct {
	Config *Config
	mu     sync.RWMutex
}

type Config struct {
	Env        string `mapstructure:"ENV"`
	ServerPort string `mapstructure:"SERVER_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	DbName         string `mapstructure:"POSTGRES_DB"`
	DbHost         string `mapstructure:"POSTGRES_HOST"`
	DbPort         string `mapstructure:"POSTGRES_PORT"`
	DbUser         string `mapstructure:"POSTGRES_USER"`
	DbPas          string `mapstructure:"POSTGRES_PASSWORD"`
	DbMaxConns     int32  `mapstructure:"POSTGRES_MAX_CONNS"`
	MigrateOnStart bool   `mapstructure:"MIGRATE_ON_START"`
	TxMaxRetry     int    `mapstructure:"TX_MAX_RETRY"`

	AuthTokenKey        string        `mapstructure:"AUTH_TOKEN_KEY"`
	AccessTokenDuration time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	BcryptCost          int           `mapstructure:"BCRYPT_COST"`

	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB"`
	ProductCacheTTL time.Duration `mapstructure:"PRODUCT_CACHE_TTL"`

	RateLimitCapacity int     `mapstructure:"RATE_LIMIT_CAPACITY"`
	RateLimitRate     float64 `mapstructure:"RATE_LIMIT_RATE"`

	KafkaBrokers    string `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderTopic string `mapstructure:"KAFKA_ORDER_TOPIC"`
	// LogKafkaTopic 不為空且有broker時，log同時寫到kafka
	LogKafkaTopic string `mapstructure:"LOG_KAFKA_TOPIC"`

	CorsAllowedOrigins  string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	OrderRequireAddress bool   `mapstructure:"ORDER_REQUIRE_ADDRESS"`
	SeedFile            string `mapstructure:"SEED_FILE"`
}

// KafkaBrokerList 將逗號分隔的broker字串拆成slice，空字串回傳nil
func (c *Config) KafkaBrokerList() []string {
	return splitAndTrim(c.KafkaBrokers)
}

func (c *Config) CorsOriginList() []string {
	return splitAndTrim(c.CorsAllowedOrigins)
}

func splitAndTrim(s string) []string {
	var res []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			res = append(res, part)
		}
	}
	return res
}

func GetConfig() *Config {
	initConfig()
	config_singleton.mu.RLock()
	defer config_singleton.mu.RUnlock()
	return config_singleton.Config
}

func initConfig() {
	muonce.Do(func() {
		config_singleton = &ConfigSingleTon{}
		path := configFilePath()
		cf, fileRead, err := loadConfig(path)
		if err != nil {
			log.Fatalf("error read config: %v", err)
		}
		config_singleton.Config = cf

		if !fileRead {
			return
		}
		viper.WatchConfig()
		viper.OnConfigChange(func(e fsnotify.Event) {
			cf, _, err := loadConfig(path)
			if err != nil {
				log.Printf("failed to reload config file: %v", err)
				return
			}
			config_singleton.mu.Lock()
			config_singleton.Config = cf
			config_singleton.mu.Unlock()
		})
	})
}

func configFilePath() string {
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		return p
	}
	return ".env"
}

/*
單純回傳錯誤  由外部決定要不要Fatal
設定檔不存在不算錯誤，改用環境變數與預設值
*/
func loadConfig(path string) (cf *Config, fileRead bool, err error) {
	setDefaults()
	viper.SetConfigFile(path)
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err = viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, false, err
		}
		err = nil
	} else {
		fileRead = true
	}

	cf = &Config{}
	if err = viper.Unmarshal(cf); err != nil {
		return nil, false, err
	}
	return cf, fileRead, nil
}

// viper 的 AutomaticEnv 只對已知的key生效，所以每個key都要有預設值
func setDefaults() {
	defaults := map[string]any{
		"ENV":                   "development",
		"SERVER_PORT":           "8080",
		"LOG_LEVEL":             "info",
		"POSTGRES_DB":           "shop",
		"POSTGRES_HOST":         "localhost",
		"POSTGRES_PORT":         "5432",
		"POSTGRES_USER":         "postgres",
		"POSTGRES_PASSWORD":     "",
		"POSTGRES_MAX_CONNS":    10,
		"MIGRATE_ON_START":      true,
		"TX_MAX_RETRY":          3,
		"AUTH_TOKEN_KEY":        "",
		"ACCESS_TOKEN_DURATION": "24h",
		"BCRYPT_COST":           10,
		"REDIS_ADDR":            "",
		"REDIS_PASSWORD":        "",
		"REDIS_DB":              0,
		"PRODUCT_CACHE_TTL":     "10m",
		"RATE_LIMIT_CAPACITY":   100,
		"RATE_LIMIT_RATE":       20.0,
		"KAFKA_BROKERS":         "",
		"KAFKA_ORDER_TOPIC":     "order-events",
		"LOG_KAFKA_TOPIC":       "",
		"CORS_ALLOWED_ORIGINS":  "*",
		"ORDER_REQUIRE_ADDRESS": false,
		"SEED_FILE":             "",
	}
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
}
