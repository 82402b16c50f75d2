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
	ListenAddress  string   `yaml:"listen_address"`
	DebugAddress   string   `yaml:"debug_address"`
	DataDir        string   `yaml:"data_dir"`
	Country        string   `yaml:"country"`
	RabbitUrl      string   `yaml:"rabbit_url"`
	ProductCount   int      `yaml:"product_count"`
	VisibleFilters []string `yaml:"visible_filters"`
	// PriceDebounceMs is the quiet period before a price edit navigates.
	PriceDebounceMs int `yaml:"price_debounce_ms"`
}

func Default() Config {
	return Config{
		ListenAddress:   ":8080",
		DebugAddress:    ":8081",
		DataDir:         "data",
		Country:         "se",
		ProductCount:    24,
		VisibleFilters:  []string{"Price", "Product type", "Color"},
		PriceDebounceMs: 500,
	}
}

func (c Config) PriceDebounce() time.Duration {
	return time.Duration(c.PriceDebounceMs) * time.Millisecond
}

// Load reads the YAML file at path on top of the defaults and then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.ListenAddress == "" {
		return errors.New("listen_address is required")
	}
	if c.ProductCount <= 0 {
		return fmt.Errorf("product_count must be positive, got %d", c.ProductCount)
	}
	if c.PriceDebounceMs <= 0 {
		return fmt.Errorf("price_debounce_ms must be positive, got %d", c.PriceDebounceMs)
	}
	return nil
}

func applyEnv(c *Config) {
	str := func(curr *string, env string) {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*curr = v
		}
	}
	num := func(curr *int, env string) {
		if v, ok := os.LookupEnv(env); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*curr = n
			}
		}
	}
	str(&c.ListenAddress, "LISTEN_ADDRESS")
	str(&c.DebugAddress, "DEBUG_ADDRESS")
	str(&c.DataDir, "DATA_DIR")
	str(&c.Country, "COUNTRY")
	str(&c.RabbitUrl, "RABBIT_URL")
	num(&c.ProductCount, "PRODUCT_COUNT")
	num(&c.PriceDebounceMs, "PRICE_DEBOUNCE_MS")
	if v, ok := os.LookupEnv("VISIBLE_FILTERS"); ok {
		c.VisibleFilters = splitList(v)
	}
}

func splitList(v string) []string {
	result := []string{}
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
