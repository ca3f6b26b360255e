package config

// GlobalConfig is the root of the YAML/JSON configuration file. Sections left out of
// the file keep their defaults.
type GlobalConfig struct {
	ArchiveConfig      ArchiveConfig      `json:"archive_config,omitempty" yaml:"archive_config,omitempty"`
	ArtifactConfig     ArtifactConfig     `json:"artifact_config,omitempty" yaml:"artifact_config,omitempty"`
	DiffConfig         DiffConfig         `json:"diff_config,omitempty" yaml:"diff_config,omitempty"`
	ExtractorConfig    ExtractorConfig    `json:"extractor_config,omitempty" yaml:"extractor_config,omitempty"`
	LogConfig          LogConfig          `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	MetricsConfig      MetricsConfig      `json:"metrics_config,omitempty" yaml:"metrics_config,omitempty"`
	MonitorConfig      MonitorConfig      `json:"monitor_config,omitempty" yaml:"monitor_config,omitempty"`
	NotificationConfig NotificationConfig `json:"notification_config,omitempty" yaml:"notification_config,omitempty"`
	StorageConfig      StorageConfig      `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
}

func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		ArchiveConfig:      NewDefaultArchiveConfig(),
		ArtifactConfig:     NewDefaultArtifactConfig(),
		DiffConfig:         NewDefaultDiffConfig(),
		ExtractorConfig:    NewDefaultExtractorConfig(),
		LogConfig:          NewDefaultLogConfig(),
		MetricsConfig:      NewDefaultMetricsConfig(),
		MonitorConfig:      NewDefaultMonitorConfig(),
		NotificationConfig: NewDefaultNotificationConfig(),
		StorageConfig:      NewDefaultStorageConfig(),
	}
}
