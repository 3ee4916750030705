package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ATELIER"

type Config struct {
	Addr            string   `mapstructure:"addr"`
	ContentDir      string   `mapstructure:"contentDir"`
	DataDir         string   `mapstructure:"dataDir"`
	OrdersDir       string   `mapstructure:"ordersDir"`
	LedgerDir       string   `mapstructure:"ledgerDir"`
	StaticDir       string   `mapstructure:"staticDir"`
	BaseURL         string   `mapstructure:"baseURL"`
	SiteTitle       string   `mapstructure:"siteTitle"`
	FeedTitle       string   `mapstructure:"feedTitle"`
	FeedDescription string   `mapstructure:"feedDescription"`
	FeedLanguage    string   `mapstructure:"feedLanguage"`
	RateLimit       int      `mapstructure:"rateLimit"`
	CORSOrigins     []string `mapstructure:"corsOrigins"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":5000")
	v.SetDefault("contentDir", "content/blog")
	v.SetDefault("dataDir", "data")
	v.SetDefault("ordersDir", "data/orders")
	v.SetDefault("ledgerDir", "data/ledger")
	v.SetDefault("staticDir", "static")
	v.SetDefault("baseURL", "")
	v.SetDefault("siteTitle", "Isabela Rocha")
	v.SetDefault("feedTitle", "Blog da Isabela")
	v.SetDefault("feedDescription", "Artigos sobre ensino, ENEM, Física, Matemática e marketing educacional.")
	v.SetDefault("feedLanguage", "pt-br")
	v.SetDefault("rateLimit", 30)
	v.SetDefault("corsOrigins", []string{})
}

// Load reads configuration from file, falling back to ./atelier.yaml when
// file is empty, then applies ATELIER_* environment variables. A missing
// default config file is not an error.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("atelier")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || file != "" {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.OrdersDir == "" {
		return errors.New("ordersDir must not be empty")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rateLimit must not be negative, got %d", c.RateLimit)
	}
	return nil
}
