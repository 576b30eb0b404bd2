package config

// OutputConfig holds settings for board and state output.
type OutputConfig struct {
	// NoColor disables ANSI colours in board diagrams
	NoColor bool

	// JSONFormat prints state documents instead of diagrams
	JSONFormat bool

	// ShowLegalMoves lists the legal moves under each diagram
	ShowLegalMoves bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{}
}
