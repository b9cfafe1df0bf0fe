package kit

import "go.uber.org/zap"

// NewLogger builds a JSON logger, or a console one in development. An unknown
// level falls back to info.
func NewLogger(service, level string, development bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.Level = lvl
	cfg.InitialFields = map[string]any{"service": service}

	return cfg.Build()
}
