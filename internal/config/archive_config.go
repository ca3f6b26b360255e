package config

// ArchiveConfig controls the per-run Parquet archive of check results
type ArchiveConfig struct {
	Enabled          bool   `json:"enabled" yaml:"enabled"`
	Dir              string `json:"dir,omitempty" yaml:"dir,omitempty"`
	CompressionCodec string `json:"compression_codec,omitempty" yaml:"compression_codec,omitempty" validate:"omitempty,oneof=none uncompressed snappy gzip zstd"`
}

// NewDefaultArchiveConfig creates default archive configuration
func NewDefaultArchiveConfig() ArchiveConfig {
	return ArchiveConfig{
		Enabled:          false,
		Dir:              DefaultArchiveDir,
		CompressionCodec: DefaultArchiveCompressionCodec,
	}
}
