// Package hemit emits a fixed HTTP/1.1 response for output-capturing test harnesses
// and provides the harness side that launches such fixtures and verifies what they print.
package hemit

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

const (
	// DefaultInstance is the instance identifier reported in the response message.
	DefaultInstance = "integration_test"
	// DefaultMethod is the HTTP method label reported in the response message.
	DefaultMethod = "GET"
	// DefaultDiagnostic is the text written to the error sink.
	DefaultDiagnostic = "test error"
)

// LineEnding selects the terminator written after every line of the response.
type LineEnding string

const (
	LineEndingLF   LineEnding = "lf"
	LineEndingCRLF LineEnding = "crlf"
)

// String returns the terminator bytes. The zero value means LF.
func (l LineEnding) String() string {
	if l == LineEndingCRLF {
		return "\r\n"
	}

	return "\n"
}

// Config describes the response an Emitter produces.
type Config struct {
	Instance   string     `json:"instance"              yaml:"instance"`
	Method     string     `json:"method"                yaml:"method"`
	Diagnostic string     `json:"diagnostic"            yaml:"diagnostic"`
	LineEnding LineEnding `json:"line_ending,omitempty" yaml:"line_ending"`
}

// DefaultConfig returns the configuration of the stock fixture.
func DefaultConfig() Config {
	return Config{
		Instance:   DefaultInstance,
		Method:     DefaultMethod,
		Diagnostic: DefaultDiagnostic,
		LineEnding: LineEndingLF,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports whether c can be rendered.
func (c Config) Validate() error {
	switch c.LineEnding {
	case "", LineEndingLF, LineEndingCRLF:
	default:
		return fmt.Errorf("%w: unknown line ending %q", ErrInvalidConfig, c.LineEnding)
	}

	if strings.TrimSpace(c.Method) == "" {
		return fmt.Errorf("%w: method is empty", ErrInvalidConfig)
	}

	return nil
}
