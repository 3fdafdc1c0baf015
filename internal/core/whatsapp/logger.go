package whatsapp

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	waLog "go.mau.fi/whatsmeow/util/log"
)

// zeroLogger bridges whatsmeow's logger onto the global zerolog sink.
type zeroLogger struct {
	logger zerolog.Logger
	module string
}

func newLogger(module string, min zerolog.Level) waLog.Logger {
	return zeroLogger{
		logger: log.Logger.Level(min).With().Str("component", "whatsmeow").Logger(),
		module: module,
	}
}

func (l zeroLogger) Errorf(msg string, args ...interface{}) {
	l.logger.Error().Str("module", l.module).Msgf(msg, args...)
}

func (l zeroLogger) Warnf(msg string, args ...interface{}) {
	l.logger.Warn().Str("module", l.module).Msgf(msg, args...)
}

func (l zeroLogger) Infof(msg string, args ...interface{}) {
	l.logger.Info().Str("module", l.module).Msgf(msg, args...)
}

func (l zeroLogger) Debugf(msg string, args ...interface{}) {
	l.logger.Debug().Str("module", l.module).Msgf(msg, args...)
}

func (l zeroLogger) Sub(module string) waLog.Logger {
	return zeroLogger{logger: l.logger, module: l.module + "/" + module}
}
