package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/vango-dev/toolbox/pkg/nav"
)

// Logger creates middleware that logs one line per navigation.
// No-op navigations are logged at debug, recovered ones at warn.
func Logger(logger *slog.Logger) nav.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return nav.MiddlewareFunc(func(ctx context.Context, req *nav.Request, next func() error) error {
		start := time.Now()
		err := next()

		attrs := []any{
			"raw", req.RawPath,
			"path", req.Path,
			"route", req.Route,
			"outcome", string(req.Outcome),
			"duration", time.Since(start),
		}
		if req.Replay {
			attrs = append(attrs, "replay", true)
		}

		switch {
		case err != nil && req.Outcome == nav.OutcomeSuperseded:
			logger.Debug("navigation superseded", attrs...)
		case err != nil:
			logger.Warn("navigation failed", append(attrs, "error", err)...)
		case req.Outcome == nav.OutcomeRecovered || req.Outcome == nav.OutcomeFallback:
			logger.Warn("navigation recovered", append(attrs, "cause", req.Err)...)
		case req.Outcome == nav.OutcomeNoop:
			logger.Debug("navigation", attrs...)
		default:
			logger.Info("navigation", attrs...)
		}
		return err
	})
}
