package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	envPrefix = "ACROBITS_WEBSVC_"

	// StdinPath makes Load read the configuration file from standard input.
	StdinPath = "-"

	BackendStub     = "stub"
	BackendPostgres = "postgres"

	defaultAppName        = "acrobits-websvc"
	defaultAddr           = "127.0.0.1:8080"
	defaultBasePath       = "/"
	defaultLogLevel       = "info"
	defaultLogFormat      = "json"
	defaultReadTimeout    = 4 * time.Second
	defaultWriteTimeout   = defaultReadTimeout
	defaultIdleTimeout    = 32 * time.Second
	defaultHandlerTimeout = defaultIdleTimeout
	defaultShutdownPeriod = 10 * time.Second

	DefaultBalancePath     = "balance"
	DefaultBalanceCurrency = "USD"

	DefaultRatePath          = "rate"
	DefaultRateCurrency      = "¢"
	DefaultRateSpecification = "min."

	DefaultContactsPath = "contacts"
	DefaultHealthPath   = "ping"
	DefaultMetricsPath  = "metrics"
)

// Feature is the mount decision shared by every endpoint.
type Feature struct {
	Enabled bool
	Path    string
}

// BalanceSettings configures the balance checker endpoint.
type BalanceSettings struct {
	Feature
	Currency string
}

// RateSettings configures the rate checker endpoint.
type RateSettings struct {
	Feature
	Currency      string
	Specification string
}

// Config captures application runtime configuration. It is resolved once by
// Load and treated as read-only afterwards.
type Config struct {
	AppName            string
	Addr               string
	BasePath           string
	CertFile           string
	KeyFile            string
	LogLevel           string
	LogFormat          string
	Backend            string
	DatabaseURL        string
	RedisURL           string
	RateLimitPerMinute int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	HandlerTimeout     time.Duration
	ShutdownPeriod     time.Duration

	Balance  BalanceSettings
	Rate     RateSettings
	Contacts Feature
	Health   Feature
	Metrics  Feature
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		AppName:        defaultAppName,
		Addr:           defaultAddr,
		BasePath:       defaultBasePath,
		LogLevel:       defaultLogLevel,
		LogFormat:      defaultLogFormat,
		Backend:        BackendStub,
		ReadTimeout:    defaultReadTimeout,
		WriteTimeout:   defaultWriteTimeout,
		IdleTimeout:    defaultIdleTimeout,
		HandlerTimeout: defaultHandlerTimeout,
		ShutdownPeriod: defaultShutdownPeriod,
		Balance: BalanceSettings{
			Feature:  Feature{Enabled: true, Path: DefaultBalancePath},
			Currency: DefaultBalanceCurrency,
		},
		Rate: RateSettings{
			Feature:       Feature{Enabled: true, Path: DefaultRatePath},
			Currency:      DefaultRateCurrency,
			Specification: DefaultRateSpecification,
		},
		Contacts: Feature{Enabled: true, Path: DefaultContactsPath},
		Health:   Feature{Enabled: false, Path: DefaultHealthPath},
		Metrics:  Feature{Enabled: false, Path: DefaultMetricsPath},
	}
}

// Load resolves the configuration from built-in defaults, the optional file at
// path (YAML or JSON, "-" for stdin) and ACROBITS_WEBSVC_* environment
// variables, in increasing order of precedence.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration values the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	switch c.Backend {
	case BackendStub:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, fmt.Errorf("%sDATABASE_URL must be set for the %s backend", envPrefix, BackendPostgres))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}
	for name, d := range map[string]time.Duration{
		"read_timeout":     c.ReadTimeout,
		"write_timeout":    c.WriteTimeout,
		"idle_timeout":     c.IdleTimeout,
		"handler_timeout":  c.HandlerTimeout,
		"shutdown_timeout": c.ShutdownPeriod,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}
	if c.RateLimitPerMinute < 0 {
		errs = append(errs, fmt.Errorf("rate_limit_per_minute must not be negative"))
	}
	if (c.CertFile == "") != (c.KeyFile == "") {
		errs = append(errs, errors.New("cert_file and key_file must be set together"))
	}
	return errors.Join(errs...)
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.Contains(c.Addr, ":") {
		return c.Addr
	}
	return ":" + c.Addr
}

// TLS reports whether the server should terminate TLS itself.
func (c Config) TLS() bool {
	return c.CertFile != "" && c.KeyFile != ""
}

type fileFeature struct {
	Enabled       *bool   `yaml:"enabled"`
	Path          *string `yaml:"path"`
	Currency      *string `yaml:"currency"`
	Specification *string `yaml:"specification"`
}

type fileConfig struct {
	Addr               *string        `yaml:"addr"`
	Path               *string        `yaml:"path"`
	CertFile           *string        `yaml:"cert_file"`
	KeyFile            *string        `yaml:"key_file"`
	LogLevel           *string        `yaml:"log_level"`
	LogFormat          *string        `yaml:"log_format"`
	Backend            *string        `yaml:"backend"`
	DatabaseURL        *string        `yaml:"database_url"`
	RedisURL           *string        `yaml:"redis_url"`
	RateLimitPerMinute *int           `yaml:"rate_limit_per_minute"`
	ReadTimeout        *time.Duration `yaml:"read_timeout"`
	WriteTimeout       *time.Duration `yaml:"write_timeout"`
	IdleTimeout        *time.Duration `yaml:"idle_timeout"`
	HandlerTimeout     *time.Duration `yaml:"handler_timeout"`
	ShutdownTimeout    *time.Duration `yaml:"shutdown_timeout"`
	Balance            fileFeature    `yaml:"balance"`
	Rate               fileFeature    `yaml:"rate"`
	Contacts           fileFeature    `yaml:"contacts"`
	Healthcheck        fileFeature    `yaml:"healthcheck"`
	Metrics            fileFeature    `yaml:"metrics"`
}

func (c *Config) applyFile(path string) error {
	var r io.Reader
	if path == StdinPath {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		r = f
	}
	return c.decode(r)
}

func (c *Config) decode(r io.Reader) error {
	var fc fileConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}

	setString(&c.Addr, fc.Addr)
	setString(&c.BasePath, fc.Path)
	setString(&c.CertFile, fc.CertFile)
	setString(&c.KeyFile, fc.KeyFile)
	setString(&c.LogLevel, fc.LogLevel)
	setString(&c.LogFormat, fc.LogFormat)
	setString(&c.Backend, fc.Backend)
	setString(&c.DatabaseURL, fc.DatabaseURL)
	setString(&c.RedisURL, fc.RedisURL)
	if fc.RateLimitPerMinute != nil {
		c.RateLimitPerMinute = *fc.RateLimitPerMinute
	}
	setDuration(&c.ReadTimeout, fc.ReadTimeout)
	setDuration(&c.WriteTimeout, fc.WriteTimeout)
	setDuration(&c.IdleTimeout, fc.IdleTimeout)
	setDuration(&c.HandlerTimeout, fc.HandlerTimeout)
	setDuration(&c.ShutdownPeriod, fc.ShutdownTimeout)

	fc.Balance.apply(&c.Balance.Feature)
	setString(&c.Balance.Currency, fc.Balance.Currency)
	fc.Rate.apply(&c.Rate.Feature)
	setString(&c.Rate.Currency, fc.Rate.Currency)
	setString(&c.Rate.Specification, fc.Rate.Specification)
	fc.Contacts.apply(&c.Contacts)
	fc.Healthcheck.apply(&c.Health)
	fc.Metrics.apply(&c.Metrics)
	return nil
}

func (f fileFeature) apply(dst *Feature) {
	if f.Enabled != nil {
		dst.Enabled = *f.Enabled
	}
	if f.Path != nil && *f.Path != "" {
		dst.Path = *f.Path
	}
}

func (c *Config) applyEnv() error {
	envString(&c.Addr, "ADDR")
	envString(&c.BasePath, "PATH")
	envString(&c.CertFile, "CERT_FILE")
	envString(&c.KeyFile, "KEY_FILE")
	envString(&c.LogLevel, "LOG_LEVEL")
	envString(&c.LogFormat, "LOG_FORMAT")
	envString(&c.Backend, "BACKEND")
	envString(&c.DatabaseURL, "DATABASE_URL")
	envString(&c.RedisURL, "REDIS_URL")
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.Backend = strings.ToLower(c.Backend)

	envString(&c.Balance.Path, "BALANCE_PATH")
	envStringAllowEmpty(&c.Balance.Currency, "BALANCE_CURRENCY")
	envString(&c.Rate.Path, "RATE_PATH")
	envStringAllowEmpty(&c.Rate.Currency, "RATE_CURRENCY")
	envStringAllowEmpty(&c.Rate.Specification, "RATE_SPECIFICATION")
	envString(&c.Contacts.Path, "CONTACTS_PATH")
	envString(&c.Health.Path, "HEALTHCHECK_PATH")
	envString(&c.Metrics.Path, "METRICS_PATH")

	var errs []error
	for key, dst := range map[string]*bool{
		"BALANCE_ENABLED":     &c.Balance.Enabled,
		"RATE_ENABLED":        &c.Rate.Enabled,
		"CONTACTS_ENABLED":    &c.Contacts.Enabled,
		"HEALTHCHECK_ENABLED": &c.Health.Enabled,
		"METRICS_ENABLED":     &c.Metrics.Enabled,
	} {
		errs = append(errs, envBool(dst, key))
	}
	for key, dst := range map[string]*time.Duration{
		"READ_TIMEOUT":     &c.ReadTimeout,
		"WRITE_TIMEOUT":    &c.WriteTimeout,
		"IDLE_TIMEOUT":     &c.IdleTimeout,
		"HANDLER_TIMEOUT":  &c.HandlerTimeout,
		"SHUTDOWN_TIMEOUT": &c.ShutdownPeriod,
	} {
		errs = append(errs, envDuration(dst, key))
	}
	errs = append(errs, envInt(&c.RateLimitPerMinute, "RATE_LIMIT_PER_MINUTE"))
	return errors.Join(errs...)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *time.Duration) {
	if v != nil {
		*dst = *v
	}
}

func envString(dst *string, key string) {
	if v := os.Getenv(envPrefix + key); v != "" {
		*dst = v
	}
}

// envStringAllowEmpty keeps an explicitly empty value, so an operator can
// configure e.g. a currency-less balance string.
func envStringAllowEmpty(dst *string, key string) {
	if v, ok := os.LookupEnv(envPrefix + key); ok {
		*dst = v
	}
}

func envBool(dst *bool, key string) error {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s%s: %w", envPrefix, key, err)
	}
	*dst = b
	return nil
}

func envInt(dst *int, key string) error {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s%s: %w", envPrefix, key, err)
	}
	*dst = n
	return nil
}

// envDuration accepts Go duration syntax ("4s") or a bare number of seconds.
func envDuration(dst *time.Duration, key string) error {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return nil
	}
	if seconds, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(seconds) * time.Second
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s%s: %w", envPrefix, key, err)
	}
	*dst = d
	return nil
}
