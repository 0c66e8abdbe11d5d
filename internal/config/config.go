// Package config provides the configuration structures and the loader for the backend services.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration shared by the API server and the notifier.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	Timezone                string `yaml:"timezone" env:"TZ_NAME" env-default:"Asia/Seoul"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	HRDNet                  `yaml:"hrdnet"`
	RabbitMQ                `yaml:"rabbitmq"`
	SMTP                    `yaml:"smtp"`
	Inquiry                 `yaml:"inquiry"`
}

// HTTPServer holds the listener settings.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection holds the redis settings. An empty address switches the
// course cache to the in-process store.
type RedisConnection struct {
	AddressRedis   string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password       string        `yaml:"password" env:"REDIS_PASSWORD"`
	User           string        `yaml:"user"`
	DB             int           `yaml:"db"`
	MaxRetries     int           `yaml:"max_retries" env-default:"3"`
	DialTimeout    time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis   time.Duration `yaml:"timeoutredis" env-default:"3s"`
	StaleRetention time.Duration `yaml:"stale_retention"`
}

// HRDNet describes the upstream course registry and the cache policy around it.
type HRDNet struct {
	APIKey           string        `yaml:"api_key" env:"HRD_API_KEY"`
	ListURL          string        `yaml:"list_url" env-default:"https://www.work24.go.kr/cm/openApi/call/hr/callOpenApiSvcInfo310L01.do"`
	DetailURL        string        `yaml:"detail_url" env-default:"https://www.work24.go.kr/cm/openApi/call/hr/callOpenApiSvcInfo310L03.do"`
	ListTimeout      time.Duration `yaml:"list_timeout" env-default:"3s"`
	DetailTimeout    time.Duration `yaml:"detail_timeout" env-default:"10s"`
	OrganName        string        `yaml:"organ_name" env:"HRD_ORGAN_NAME" env-default:"다모아요리학원"`
	UpstreamPageSize int           `yaml:"upstream_page_size" env-default:"100"`
	DefaultPageSize  int           `yaml:"default_page_size" env-default:"8"`
	ListTTL          time.Duration `yaml:"list_ttl" env-default:"600s"`
	DetailTTL        time.Duration `yaml:"detail_ttl" env-default:"1800s"`
	ResolverMaxPages int           `yaml:"resolver_max_pages" env-default:"10"`
	ResolverPageSize int           `yaml:"resolver_page_size" env-default:"100"`
	WarmInterval     time.Duration `yaml:"warm_interval" env:"HRD_WARM_INTERVAL"`
}

// RabbitMQ holds the broker settings used for inquiry notifications.
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"rabbitmq_url" env:"RABBITMQ_URL"`
	RabbitMQMaxRetries int           `yaml:"rabbitmq_max_retries" env-default:"5"`
	RabbitMQRetryDelay time.Duration `yaml:"rabbitmq_retry_delay" env-default:"2s"`
}

// SMTP holds the outgoing mail server settings.
type SMTP struct {
	SMTPHost string `yaml:"smtp_host" env:"SMTP_HOST" env-default:"smtp.naver.com"`
	SMTPPort string `yaml:"smtp_port" env:"SMTP_PORT" env-default:"587"`
	SMTPUser string `yaml:"smtp_user" env:"SMTP_USER"`
	SMTPPass string `yaml:"smtp_pass" env:"SMTP_PASS"`
}

// Inquiry holds the intake form settings.
type Inquiry struct {
	ToEmails  string `yaml:"to_emails" env:"INQUIRY_TO_EMAILS"`
	RateLimit int    `yaml:"rate_limit_per_minute" env-default:"5"`
}

// Recipients splits the comma separated recipient list.
func (i Inquiry) Recipients() []string {
	var res []string
	for _, e := range strings.Split(i.ToEmails, ",") {
		if e = strings.TrimSpace(e); e != "" {
			res = append(res, e)
		}
	}
	return res
}

// Load reads the YAML file at path and applies environment overrides.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, path)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad loads the config referenced by CONFIG_PATH and exits on failure.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Location resolves the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"Timezone: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"  StaleRetention: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"HRDNet:\n"+
			"  OrganName: %s\n"+
			"  ListTimeout: %s\n"+
			"  DetailTimeout: %s\n"+
			"  ListTTL: %s\n"+
			"  DetailTTL: %s\n"+
			"  ResolverMaxPages: %d\n"+
			"  WarmInterval: %s\n",
		c.Env,
		c.Timezone,
		c.AddressRedis,
		c.DB,
		c.StaleRetention,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.OrganName,
		c.ListTimeout,
		c.DetailTimeout,
		c.ListTTL,
		c.DetailTTL,
		c.ResolverMaxPages,
		c.WarmInterval,
	)
}
