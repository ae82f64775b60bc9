package session

import "github.com/rs/zerolog"

// zerologLogger adapts a zerolog.Logger to the Logger interface.
type zerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger returns a Logger backed by the provided zerolog logger.
func NewZerologLogger(log zerolog.Logger) Logger {
	return zerologLogger{log: log}
}

func (z zerologLogger) Debug(format string, args ...any) {
	z.log.Debug().Msgf(format, args...)
}

func (z zerologLogger) Info(format string, args ...any) {
	z.log.Info().Msgf(format, args...)
}

func (z zerologLogger) Warn(format string, args ...any) {
	z.log.Warn().Msgf(format, args...)
}

func (z zerologLogger) Error(format string, args ...any) {
	z.log.Error().Msgf(format, args...)
}
