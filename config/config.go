package config

import (
	// Go Internal Packages
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	// Local Packages
	errors "cash-kiosk/errors"
	models "cash-kiosk/models"
)

var DefaultConfig = []byte(`
application: "cash-kiosk"

logger:
  level: "info"

is_prod_mode: false

provider: "GCash"

gateway:
  enabled: true
  base_url: "https://formspree.io/f/"
  form_id: "YOUR_FORMSPREE_ID"
  timeout: "15s"
  breaker:
    consecutive_failures: 5
    open_timeout: "30s"

receipt:
  timezone: "Asia/Manila"
  currency_symbol: "₱"

mongo:
  enabled: false
  uri: "mongodb://localhost:27017"
  database: "kiosk"

redis:
  uri: "localhost:6379"
  password: ""

kafka:
  enabled: false
  brokers:
    - "localhost:9092"
  topic: "kiosk-transactions"
  consumer_name: "kiosk-reconciler"
  records_per_poll: 100
`)

type Config struct {
	Application string  `koanf:"application"`
	Logger      Logger  `koanf:"logger"`
	IsProdMode  bool    `koanf:"is_prod_mode"`
	Provider    string  `koanf:"provider"`
	Gateway     Gateway `koanf:"gateway"`
	Receipt     Receipt `koanf:"receipt"`
	Mongo       Mongo   `koanf:"mongo"`
	Redis       Redis   `koanf:"redis"`
	Kafka       Kafka   `koanf:"kafka"`
}

type Logger struct {
	Level string `koanf:"level"`
}

type Gateway struct {
	Enabled bool          `koanf:"enabled"`
	BaseURL string        `koanf:"base_url"`
	FormID  string        `koanf:"form_id"`
	Timeout time.Duration `koanf:"timeout"`
	Breaker Breaker       `koanf:"breaker"`
}

// Endpoint is the URL submissions are posted to.
func (g Gateway) Endpoint() string {
	return g.BaseURL + g.FormID
}

type Breaker struct {
	ConsecutiveFailures uint32        `koanf:"consecutive_failures"`
	OpenTimeout         time.Duration `koanf:"open_timeout"`
}

type Receipt struct {
	Timezone       string `koanf:"timezone"`
	CurrencySymbol string `koanf:"currency_symbol"`
}

type Mongo struct {
	Enabled  bool   `koanf:"enabled"`
	URI      string `koanf:"uri"`
	Database string `koanf:"database"`
}

type Redis struct {
	URI      string `koanf:"uri"`
	Password string `koanf:"password"`
}

type Kafka struct {
	Enabled        bool     `koanf:"enabled"`
	Brokers        []string `koanf:"brokers"`
	Topic          string   `koanf:"topic"`
	ConsumerName   string   `koanf:"consumer_name"`
	RecordsPerPoll int      `koanf:"records_per_poll"`
}

// LoadSecrets overrides the config with values only supplied through the environment
func LoadSecrets(c Config) Config {
	if formID := os.Getenv("KIOSK_FORM_ID"); formID != "" {
		c.Gateway.FormID = formID
	}
	if mongoURI := os.Getenv("MONGO_URI"); mongoURI != "" {
		c.Mongo.URI = mongoURI
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		c.Kafka.Brokers = strings.Split(brokers, ",")
	}
	if prod := os.Getenv("IS_PROD_MODE"); prod != "" {
		c.IsProdMode = prod == "true"
	}
	return c
}

// Location resolves the receipt timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Receipt.Timezone)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	ve := errors.ValidationErrs()

	if c.Application == "" {
		ve.Add("application", "cannot be empty")
	}
	if c.Logger.Level == "" {
		ve.Add("logger.level", "cannot be empty")
	}
	if !models.Provider(c.Provider).Valid() {
		ve.Add("provider", "must be GCash or Maya")
	}
	if c.Gateway.Enabled {
		if c.Gateway.BaseURL == "" {
			ve.Add("gateway.base_url", "cannot be empty")
		}
		if c.Gateway.FormID == "" {
			ve.Add("gateway.form_id", "cannot be empty")
		}
		if c.Gateway.Timeout <= 0 {
			ve.Add("gateway.timeout", "must be positive")
		}
	}
	if _, err := c.Location(); err != nil {
		ve.Add("receipt.timezone", "unknown timezone")
	}
	if c.Mongo.Enabled && c.Mongo.URI == "" {
		ve.Add("mongo.uri", "cannot be empty")
	}
	if c.Mongo.Enabled && c.Mongo.Database == "" {
		ve.Add("mongo.database", "cannot be empty")
	}
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			ve.Add("kafka.brokers", "cannot be empty")
		}
		if c.Kafka.Topic == "" {
			ve.Add("kafka.topic", "cannot be empty")
		}
	}

	return ve.Err()
}

// ValidateReconciler checks the extra settings the reconciliation job needs.
func (c *Config) ValidateReconciler() error {
	ve := errors.ValidationErrs()

	if !c.Gateway.Enabled {
		ve.Add("gateway.enabled", "must be true for reconciliation")
	}
	if !c.Mongo.Enabled {
		ve.Add("mongo.enabled", "must be true for reconciliation")
	}
	if !c.Kafka.Enabled {
		ve.Add("kafka.enabled", "must be true for reconciliation")
	}
	if c.Kafka.ConsumerName == "" {
		ve.Add("kafka.consumer_name", "cannot be empty")
	}
	if c.Kafka.RecordsPerPoll <= 0 {
		ve.Add("kafka.records_per_poll", "must be positive")
	}
	if c.Redis.URI == "" {
		ve.Add("redis.uri", "cannot be empty")
	}

	return ve.Err()
}
