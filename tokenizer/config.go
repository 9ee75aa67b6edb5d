package tokenizer

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the grammar configuration consulted once at the start of a
// pass. The zero value matches the default, contextual-only behavior.
type Config struct {
	// AsyncKeywords forces "async" and "await" to always tokenize as
	// ASYNC/AWAIT, bypassing the contextual resolver in §4.3.
	AsyncKeywords bool `yaml:"async_keywords"`
}

// LoadConfig reads a grammar configuration document from path. A missing
// file is not an error: it is equivalent to the zero-value Config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
