package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir:          DefaultBaseDir(),
		Timezone:         "", // System local
		RetentionDays:    90,
		IngestRatePerSec: 200,
		Debug:            false,
	}
}
