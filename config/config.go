package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "QKART_CONFIG_FILE"
	envPrefix         = "QKART"
)

type backend struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type storage struct {
	DSN string `mapstructure:"dsn"`
}

type search struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

func (t tlsFiles) Enabled() bool {
	return t.CA != "" && t.Cert != "" && t.Key != ""
}

type events struct {
	Enabled            bool     `mapstructure:"enabled"`
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topic              string   `mapstructure:"topic"`
	Partitions         int32    `mapstructure:"partitions"`
	ReplicationFactor  int16    `mapstructure:"replication_factor"`
	TLS                tlsFiles `mapstructure:"tls"`
}

type Config struct {
	LogLevel slog.Level `mapstructure:"log_level"`
	// LogFile receives the JSON log. Empty discards it, since stderr
	// belongs to the terminal UI.
	LogFile string  `mapstructure:"log_file"`
	Backend backend `mapstructure:"backend"`
	Storage storage `mapstructure:"storage"`
	Search  search  `mapstructure:"search"`
	Events  events  `mapstructure:"events"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("backend.endpoint", "http://localhost:8082/api/v1")
	v.SetDefault("backend.timeout", 10*time.Second)
	v.SetDefault("storage.dsn", "file:qkart.db")
	v.SetDefault("search.debounce", 500*time.Millisecond)
	v.SetDefault("events.enabled", false)
	v.SetDefault("events.seed_brokers", []string{"localhost:9092"})
	v.SetDefault("events.schema_registry_urls", []string{"http://localhost:8081"})
	v.SetDefault("events.topic", "qkart.activity")
	v.SetDefault("events.partitions", 3)
	v.SetDefault("events.replication_factor", 1)
	v.SetDefault("events.tls.ca", "")
	v.SetDefault("events.tls.cert", "")
	v.SetDefault("events.tls.key", "")
}

// Load reads the YAML config at path over the defaults. Every key can be
// overridden from the environment, e.g. QKART_BACKEND_ENDPOINT. A missing
// file leaves the defaults in place; path may be empty.
func Load(path string) (Config, error) {
	const op = "config.Load"

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		err := v.ReadInConfig()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			stringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}
	return cfg, nil
}

// stringToSliceHookFunc splits environment values such as
// QKART_EVENTS_SEED_BROKERS=a:9092,b:9092.
func stringToSliceHookFunc(sep string) mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Slice {
			return data, nil
		}
		s := data.(string)
		if s == "" {
			return []string{}, nil
		}
		parts := strings.Split(s, sep)
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	}
}

func (c Config) validate() error {
	var errs []error
	if c.Backend.Endpoint == "" {
		errs = append(errs, errors.New("backend.endpoint: required"))
	}
	if c.Backend.Timeout <= 0 {
		errs = append(errs, errors.New("backend.timeout: must be positive"))
	}
	if c.Storage.DSN == "" {
		errs = append(errs, errors.New("storage.dsn: required"))
	}
	if c.Search.Debounce < 0 {
		errs = append(errs, errors.New("search.debounce: must not be negative"))
	}
	if c.Events.Enabled {
		if len(c.Events.SeedBrokers) == 0 {
			errs = append(errs, errors.New("events.seed_brokers: required"))
		}
		if len(c.Events.SchemaRegistryURLs) == 0 {
			errs = append(errs, errors.New("events.schema_registry_urls: required"))
		}
		if c.Events.Topic == "" {
			errs = append(errs, errors.New("events.topic: required"))
		}
	}
	return errors.Join(errs...)
}

// FilePath resolves the config file: QKART_CONFIG_FILE wins over the
// --config flag.
func FilePath(flags *pflag.FlagSet) string {
	if env, ok := os.LookupEnv(configFileEnvName); ok {
		return env
	}
	if flags == nil {
		return ""
	}
	path, _ := flags.GetString("config")
	return path
}

func (c Config) Print(w io.Writer) {
	tamplate := `
General:
	LogLevel=%q
	LogFile=%q

Backend:
	Endpoint=%q
	Timeout=%s

Storage:
	DSN=%q

Search:
	Debounce=%s

Events:
	Enabled=%t
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topic=%q
	Partitions=%d
	ReplicationFactor=%d
	TLS=%t
`
	fmt.Fprintln(w, "Loaded config:")
	fmt.Fprintf(
		w,
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.LogFile,
		c.Backend.Endpoint,
		c.Backend.Timeout,
		c.Storage.DSN,
		c.Search.Debounce,
		c.Events.Enabled,
		c.Events.SeedBrokers,
		c.Events.SchemaRegistryURLs,
		c.Events.Topic,
		c.Events.Partitions,
		c.Events.ReplicationFactor,
		c.Events.TLS.Enabled(),
	)
}
