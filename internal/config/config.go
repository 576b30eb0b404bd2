// Package config provides program configuration for the chess tools.
package config

import (
	"io"
	"log"
	"os"

	"github.com/hashicorp/go-multierror"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=lifecycle events, 2=every protocol line

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer

	Oracle *OracleConfig
	Game   *GameConfig
	Server *ServerConfig
	Output *OutputConfig
	Batch  *BatchConfig
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
		Oracle:     NewOracleConfig(),
		Game:       NewGameConfig(),
		Server:     NewServerConfig(),
		Output:     NewOutputConfig(),
		Batch:      NewBatchConfig(),
	}
}

// SetOutput sets the output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLogFile sets the log writer.
func (c *Config) SetLogFile(w io.Writer) {
	c.LogFile = w
}

// Logger returns a logger writing to LogFile with the given component
// prefix. At verbosity 0 it discards everything.
func (c *Config) Logger(prefix string) *log.Logger {
	w := c.LogFile
	if c.Verbosity <= 0 || w == nil {
		w = io.Discard
	}
	return log.New(w, prefix, log.LstdFlags)
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	if c.Verbosity < 0 || c.Verbosity > 2 {
		result = multierror.Append(result, invalid("verbosity %d outside 0..2", c.Verbosity))
	}
	for _, v := range []interface{ Validate() error }{c.Oracle, c.Game, c.Server, c.Batch} {
		if err := v.Validate(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
