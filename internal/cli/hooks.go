package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/palaeoverse-community/rphylopic/pkg/observability"
)

// EnableDebugHooks routes API and lookup events to the CLI logger. Meant for
// verbose mode, where every request and resolution is worth a line.
func (c *CLI) EnableDebugHooks() {
	observability.SetAPIHooks(&logAPIHooks{logger: c.Logger})
	observability.SetLookupHooks(&logLookupHooks{logger: c.Logger})
}

type logAPIHooks struct {
	logger *log.Logger
}

func (h *logAPIHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("API request", "method", method, "path", path)
}

func (h *logAPIHooks) OnResponse(_ context.Context, method, path string, statusCode int, duration time.Duration) {
	h.logger.Debug("API response",
		"method", method,
		"path", path,
		"status", statusCode,
		"duration", duration.Round(time.Millisecond))
}

func (h *logAPIHooks) OnError(_ context.Context, method, path string, err error) {
	h.logger.Debug("API transport error", "method", method, "path", path, "err", err)
}

type logLookupHooks struct {
	logger *log.Logger
}

func (h *logLookupHooks) OnResolve(_ context.Context, name string, matches int, duration time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Name resolution failed", "name", name, "err", err)
		return
	}
	h.logger.Debug("Name resolved",
		"name", name,
		"matches", matches,
		"duration", duration.Round(time.Millisecond))
}
