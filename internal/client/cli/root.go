package cli

import (
	"context"
	"fmt"
)

// getStatus is the prompt suffix: the signed-in user's email, if any.
func (a *App) getStatus() string {
	s := a.store.Snapshot()
	if !s.Session.SignedIn || s.Session.User == nil || s.Session.User.Email == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", s.Session.User.Email)
}

// Root runs the startup whoami probe once, shows the result, then hands
// over to the REPL.
func (a *App) Root(ctx context.Context) {
	printlnFn("Auth API Demo (type 'help' for commands)")
	a.log.Info(ctx, "using auth API", "base_url", a.config.BaseURL)

	if err := a.authService.Mount(ctx); err != nil {
		a.log.Debug(ctx, "startup session probe", "error", err)
	}
	renderState(a.out, a.store.Snapshot())

	runREPL(ctx, a, a.getStatus, a.reader)
}
