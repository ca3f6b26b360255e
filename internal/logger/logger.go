package logger

import (
	"github.com/aleister1102/jsmon/internal/config"
	"github.com/rs/zerolog"
)

// New builds the root application logger from the log_config section.
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	return NewLoggerBuilder().WithConfig(cfg).Build()
}
