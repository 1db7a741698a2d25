// Package logging builds the zap loggers used by cmd/variantcodec. Library
// packages under variant/ stay logger-agnostic; only the CLI layer imports
// this package.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a development logger (human-readable, debug level) when verbose
// is set, otherwise a production logger (JSON, info level).
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		return cfg.Build()
	}
	return zap.NewProduction()
}

// Sugar adapts l to the printf-style SugaredLogger call sites prefer for
// one-off diagnostics.
func Sugar(l *zap.Logger) *zap.SugaredLogger {
	return l.Sugar()
}

// WarningSink adapts a codec's io.Writer warnings channel (per
// variant/vcf.ReaderOptions / variant/bcf.WriterOptions) into structured
// Warn calls against l, tagged with the source file the warning came from.
type WarningSink struct {
	Logger *zap.Logger
	Source string
}

func (s WarningSink) Write(p []byte) (int, error) {
	s.Logger.Warn(string(p), zap.String("source", s.Source))
	return len(p), nil
}
