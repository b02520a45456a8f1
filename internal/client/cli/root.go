package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	if user := a.session.CurrentUser(); user != nil {
		return fmt.Sprintf("(%s)", user.Username)
	}
	return ""
}

// Root hydrates the session from the persisted credential and runs the
// REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("GuessCode CLI (type 'help' for commands)")

	a.session.Hydrate(ctx)
	if user := a.session.CurrentUser(); user != nil {
		printlnFn(fmt.Sprintf("Welcome back, %s!", user.Username))
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
