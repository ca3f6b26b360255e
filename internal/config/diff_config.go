package config

// DiffConfig defines configuration for diff generation
type DiffConfig struct {
	ContextLines      int  `json:"context_lines,omitempty" yaml:"context_lines,omitempty" validate:"omitempty,min=0"`
	BeautifyScripts   bool `json:"beautify_scripts" yaml:"beautify_scripts"`
	MaxDiffFileSizeMB int  `json:"max_diff_file_size_mb,omitempty" yaml:"max_diff_file_size_mb,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultDiffConfig creates default diff configuration
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		ContextLines:      DefaultDiffContextLines,
		BeautifyScripts:   DefaultDiffBeautifyScripts,
		MaxDiffFileSizeMB: DefaultDiffMaxDiffFileSizeMB,
	}
}
