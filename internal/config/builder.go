package config

import (
	"io"
	"time"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithOracle sets the engine executable and its thinking time.
func (b *ConfigBuilder) WithOracle(path string, moveTime time.Duration) *ConfigBuilder {
	b.cfg.Oracle.Path = path
	b.cfg.Oracle.MoveTime = moveTime
	return b
}

// WithOracleTimeout sets how long to wait for each oracle answer.
func (b *ConfigBuilder) WithOracleTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Oracle.Timeout = d
	return b
}

// WithOracleDepth searches to a fixed depth.
func (b *ConfigBuilder) WithOracleDepth(depth int) *ConfigBuilder {
	b.cfg.Oracle.Depth = depth
	return b
}

// WithAutomated hands sides to the oracle.
func (b *ConfigBuilder) WithAutomated(white, black bool) *ConfigBuilder {
	b.cfg.Game.AutoWhite = white
	b.cfg.Game.AutoBlack = black
	return b
}

// WithStartFEN sets the starting position.
func (b *ConfigBuilder) WithStartFEN(fen string) *ConfigBuilder {
	b.cfg.Game.StartFEN = fen
	return b
}

// WithHistoryLimit sets the undo depth.
func (b *ConfigBuilder) WithHistoryLimit(n int) *ConfigBuilder {
	b.cfg.Game.HistoryLimit = n
	return b
}

// WithListenAddr sets the server address.
func (b *ConfigBuilder) WithListenAddr(addr string) *ConfigBuilder {
	b.cfg.Server.ListenAddr = addr
	return b
}

// WithAllowOrigins sets the CORS origin list.
func (b *ConfigBuilder) WithAllowOrigins(origins string) *ConfigBuilder {
	b.cfg.Server.AllowOrigins = origins
	return b
}

// WithNoColor disables coloured diagrams.
func (b *ConfigBuilder) WithNoColor(disabled bool) *ConfigBuilder {
	b.cfg.Output.NoColor = disabled
	return b
}

// WithJSONOutput enables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.Output.JSONFormat = enabled
	return b
}

// WithWorkers sets the batch parallelism.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Batch.Workers = n
	return b
}

// WithDuplicateReport flags repeated positions in a batch.
func (b *ConfigBuilder) WithDuplicateReport(enabled bool) *ConfigBuilder {
	b.cfg.Batch.ReportDuplicates = enabled
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLogFile sets the log writer.
func (b *ConfigBuilder) WithLogFile(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
