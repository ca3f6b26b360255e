package config

// ExtractorConfig controls URL extraction from changed scripts
type ExtractorConfig struct {
	Enabled   bool `json:"enabled" yaml:"enabled"`
	MaxListed int  `json:"max_listed,omitempty" yaml:"max_listed,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultExtractorConfig creates default extractor configuration
func NewDefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Enabled:   false,
		MaxListed: DefaultExtractorMaxListedURLs,
	}
}
