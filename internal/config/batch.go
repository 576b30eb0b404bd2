package config

// BatchConfig holds settings for classifying a file of positions.
type BatchConfig struct {
	// Workers is the number of positions classified in parallel
	Workers int

	// ReportDuplicates flags positions seen earlier in the batch
	ReportDuplicates bool
}

// NewBatchConfig creates a BatchConfig with default values.
func NewBatchConfig() *BatchConfig {
	return &BatchConfig{Workers: 1}
}

// Validate checks the batch settings.
func (b *BatchConfig) Validate() error {
	if b.Workers < 1 {
		return invalid("workers %d must be at least 1", b.Workers)
	}
	return nil
}
