package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/ess-quiz-bot/internal/config"
)

// New returns a JSON production logger for the production env and a console development
// logger everywhere else.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
