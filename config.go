package timedmap

import (
	"cmp"

	"github.com/0xERR0R/timedmap/store"

	"github.com/creasty/defaults"
)

// Config is the declarative construction surface, meant for embedding into
// an application's yaml configuration.
type Config struct {
	Store             store.Kind `yaml:"store"`
	MaxSize           uint       `yaml:"maxSize" default:"10000"`
	ExpirationTickCap uint       `yaml:"expirationTickCap"`
}

// UnmarshalYAML implements `yaml.Unmarshaler`.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw struct {
		Store             string `yaml:"store"`
		MaxSize           uint   `yaml:"maxSize"`
		ExpirationTickCap uint   `yaml:"expirationTickCap"`
	}

	if err := unmarshal(&raw); err != nil {
		return err
	}

	if raw.Store != "" {
		kind, err := store.ParseKind(raw.Store)
		if err != nil {
			return err
		}

		c.Store = kind
	}

	c.MaxSize = raw.MaxSize
	c.ExpirationTickCap = raw.ExpirationTickCap

	return nil
}

// NewFromConfig creates a map from a Config, applying defaults to unset
// fields.
func NewFromConfig[K cmp.Ordered, V any](cfg Config) (*TimedMap[K, V], error) {
	if err := defaults.Set(&cfg); err != nil {
		return nil, err
	}

	m := New(
		WithStoreKind[K, V](cfg.Store),
		WithMaxSize[K, V](cfg.MaxSize),
	)

	return m.ExpirationTickCap(cfg.ExpirationTickCap), nil
}
