package core

import (
	"errors"
	"fmt"
)

// ErrSourceNotConfigured means no result source was set up yet.
var ErrSourceNotConfigured = errors.New("no result source configured; run 'roundboard configure' or set source_url")

// ConfigError rejects a configuration value
type ConfigError struct {
	Key    string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s=%q: %s", e.Key, e.Value, e.Reason)
}
