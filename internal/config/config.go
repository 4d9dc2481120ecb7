package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env     string        `yaml:"env"`
	HTTP    HTTPConfig    `yaml:"http"`
	Log     LogConfig     `yaml:"log"`
	Adapter AdapterConfig `yaml:"adapter"`
	Redis   RedisConfig   `yaml:"redis"`
	S3      S3Config      `yaml:"s3"`
	Review  ReviewConfig  `yaml:"review"`
}

type HTTPConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// AdapterConfig configures the hosted moderation backend client. APIKey,
// ModeratorUserID and ModeratorToken are pre-issued credentials passed
// through to the backend; the service refuses to start without them.
type AdapterConfig struct {
	BaseURL         string        `yaml:"base_url"`
	APIKey          string        `yaml:"api_key"`
	ModeratorUserID string        `yaml:"moderator_user_id"`
	ModeratorToken  string        `yaml:"moderator_token"`
	Timeout         time.Duration `yaml:"timeout"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type S3Config struct {
	Endpoint  string        `yaml:"endpoint"`
	AccessKey string        `yaml:"access_key"`
	SecretKey string        `yaml:"secret_key"`
	Bucket    string        `yaml:"bucket"`
	Region    string        `yaml:"region"`
	UseSSL    bool          `yaml:"use_ssl"`
	URLTTL    time.Duration `yaml:"url_ttl"`
}

type ReviewConfig struct {
	PageSize          int           `yaml:"page_size"`
	ScrollThresholdPx int           `yaml:"scroll_threshold_px"`
	ScrollDebounce    time.Duration `yaml:"scroll_debounce"`
}

func Default() Config {
	return Config{
		Env: "dev",
		HTTP: HTTPConfig{
			Addr:         ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
		Log: LogConfig{Level: "info"},
		Adapter: AdapterConfig{
			BaseURL: "https://moderation.modplatform.io",
			Timeout: 8 * time.Second,
		},
		Redis: RedisConfig{
			Addr: "",
			DB:   0,
		},
		Review: ReviewConfig{
			PageSize:          25,
			ScrollThresholdPx: 200,
			ScrollDebounce:    300 * time.Millisecond,
		},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the options the service cannot run without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Adapter.BaseURL) == "" {
		return errors.New("adapter base url is required")
	}
	if strings.TrimSpace(c.Adapter.APIKey) == "" {
		return errors.New("adapter api key is required")
	}
	if strings.TrimSpace(c.Adapter.ModeratorUserID) == "" {
		return errors.New("moderator user id is required")
	}
	if strings.TrimSpace(c.Adapter.ModeratorToken) == "" {
		return errors.New("moderator token is required")
	}
	if c.Review.PageSize <= 0 {
		return errors.New("review page size must be positive")
	}
	return nil
}

func loadFromYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("unmarshal config yaml: %w", err)
	}

	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}

	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if err := overrideDuration("HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout); err != nil {
		return err
	}
	if err := overrideDuration("HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout); err != nil {
		return err
	}
	if err := overrideDuration("HTTP_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout); err != nil {
		return err
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if v := os.Getenv("ADAPTER_BASE_URL"); v != "" {
		cfg.Adapter.BaseURL = v
	}
	if v := os.Getenv("API_KEY"); v != "" {
		cfg.Adapter.APIKey = v
	}
	if v := os.Getenv("MODERATOR_USER_ID"); v != "" {
		cfg.Adapter.ModeratorUserID = v
	}
	if v := os.Getenv("MODERATOR_TOKEN"); v != "" {
		cfg.Adapter.ModeratorToken = v
	}
	if err := overrideDuration("ADAPTER_TIMEOUT", &cfg.Adapter.Timeout); err != nil {
		return err
	}

	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if err := overrideInt("REDIS_DB", &cfg.Redis.DB); err != nil {
		return err
	}

	if v := os.Getenv("S3_ENDPOINT"); v != "" {
		cfg.S3.Endpoint = v
	}
	if v := os.Getenv("S3_ACCESS_KEY"); v != "" {
		cfg.S3.AccessKey = v
	}
	if v := os.Getenv("S3_SECRET_KEY"); v != "" {
		cfg.S3.SecretKey = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		cfg.S3.Bucket = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		cfg.S3.Region = v
	}
	if err := overrideBool("S3_USE_SSL", &cfg.S3.UseSSL); err != nil {
		return err
	}
	if err := overrideDuration("S3_URL_TTL", &cfg.S3.URLTTL); err != nil {
		return err
	}

	if err := overrideInt("REVIEW_PAGE_SIZE", &cfg.Review.PageSize); err != nil {
		return err
	}
	if err := overrideInt("SCROLL_THRESHOLD_PX", &cfg.Review.ScrollThresholdPx); err != nil {
		return err
	}
	if err := overrideDuration("SCROLL_DEBOUNCE", &cfg.Review.ScrollDebounce); err != nil {
		return err
	}

	return nil
}

func overrideDuration(key string, target *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*target = d
	return nil
}

func overrideInt(key string, target *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*target = n
	return nil
}

func overrideBool(key string, target *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*target = b
	return nil
}
