package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "SHOPFRONT_CONFIG_FILE"
	envPrefix         = "SHOPFRONT"
)

var ErrMissingValue = errors.New("missing required config value")

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

// Enabled reports whether any TLS file is configured.
func (t tlsFiles) Enabled() bool {
	return t.CA != "" || t.Cert != "" || t.Key != ""
}

type api struct {
	BaseURL string        `mapstructure:"base_url"`
	CartID  string        `mapstructure:"cart_id"`
	Timeout time.Duration `mapstructure:"timeout"`
	TLS     tlsFiles      `mapstructure:"tls"`
}

type consumers struct {
	CartStatsGroup string `mapstructure:"cart_stats_group"`
	TailGroup      string `mapstructure:"tail_group"`
}

type topics struct {
	CartEvents string `mapstructure:"cart_events"`
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	TLS                tlsFiles  `mapstructure:"tls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
}

// Enabled reports whether the cart events pipeline is configured.
func (b broker) Enabled() bool {
	return len(b.SeedBrokers) != 0
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	LogFile        string     `mapstructure:"log_file"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	API            api        `mapstructure:"api"`
	Broker         broker     `mapstructure:"broker"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("http_server_addr", "127.0.0.1:8080")
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.cart_id", "default")
	v.SetDefault("api.timeout", time.Duration(0))
	v.SetDefault("api.tls.ca", "")
	v.SetDefault("api.tls.cert", "")
	v.SetDefault("api.tls.key", "")
	v.SetDefault("broker.seed_brokers", []string{})
	v.SetDefault("broker.schema_registry_urls", []string{})
	v.SetDefault("broker.tls.ca", "")
	v.SetDefault("broker.tls.cert", "")
	v.SetDefault("broker.tls.key", "")
	v.SetDefault("broker.topics.cart_events", "shopfront-cart-events")
	v.SetDefault("broker.consumers.cart_stats_group", "shopfront-cart-stats")
	v.SetDefault("broker.consumers.tail_group", "shopfront-events-tail")
}

// Load is used by the single purpose binaries. It reads the file named by
// the --config flag or the SHOPFRONT_CONFIG_FILE env and exits on failure.
func Load() Config {
	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFile reads the config file, when path is not empty, and applies
// SHOPFRONT_* environment overrides on top of defaults.
func LoadFile(path string) (Config, error) {
	const op = "config.LoadFile"

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	return cfg, nil
}

// RequireAPI checks the keys needed to talk to the storefront API.
func (c Config) RequireAPI() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url", ErrMissingValue)
	}
	return nil
}

// RequireBroker checks the keys needed by the cart events pipeline.
func (c Config) RequireBroker() error {
	var errs []error
	if len(c.Broker.SeedBrokers) == 0 {
		errs = append(errs, fmt.Errorf("%w: broker.seed_brokers", ErrMissingValue))
	}
	if len(c.Broker.SchemaRegistryURLs) == 0 {
		errs = append(errs, fmt.Errorf("%w: broker.schema_registry_urls", ErrMissingValue))
	}
	return errors.Join(errs...)
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

// FilePath returns the config file chosen by the flag value or
// the SHOPFRONT_CONFIG_FILE env, the env wins.
func FilePath(flagValue string) string {
	if env, ok := os.LookupEnv(configFileEnvName); ok {
		return env
	}
	return flagValue
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	LogFile=%q
	HTTPServerAddr=%q

	API:
	BaseURL=%q
	CartID=%q
	Timeout=%q
	TLS=%t

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	TLS=%t
	Topics:
		CartEvents=%q
	Consumers:
		CartStatsGroup=%q
		TailGroup=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.LogFile,
		c.HTTPServerAddr,
		c.API.BaseURL,
		c.API.CartID,
		c.API.Timeout,
		c.API.TLS.Enabled(),
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.TLS.Enabled(),
		c.Broker.Topics.CartEvents,
		c.Broker.Consumers.CartStatsGroup,
		c.Broker.Consumers.TailGroup,
	)
}
