package config

// ArtifactConfig defines where diff documents are written and how they are linked
type ArtifactConfig struct {
	Dir       string `json:"dir,omitempty" yaml:"dir,omitempty"`
	BaseURL   string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	ServeAddr string `json:"serve_addr,omitempty" yaml:"serve_addr,omitempty"`
}

// NewDefaultArtifactConfig creates default artifact configuration
func NewDefaultArtifactConfig() ArtifactConfig {
	return ArtifactConfig{
		ServeAddr: DefaultArtifactServeAddr,
	}
}
