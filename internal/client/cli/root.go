package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) getStatus() string {
	if !a.loggedIn {
		return "(anonymous)"
	}
	if a.userName != "" {
		return fmt.Sprintf("(%s)", a.userName)
	}
	return "(admin)"
}

// Root restores a stored session when the server still accepts it and
// otherwise asks for credentials, then runs the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to Findreve CLI (type 'help' for commands)")

	if a.api.IsLogin(ctx) {
		a.loggedIn = true
		if info, ok := a.api.Session(ctx); ok {
			a.userName = info.Subject
		}
		log.Printf("Session restored")
	} else {
		_ = a.Login(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
