package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts target and pr from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if target := GetTarget(ctx); target != "" {
		e.Str("target", target)
	}

	if pr := GetChangeRequest(ctx); pr != 0 {
		e.Int("pr", pr)
	}
}
