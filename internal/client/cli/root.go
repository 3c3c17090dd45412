package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	s := ""
	if u := a.session.User(); u != nil {
		s = u.Username
	}
	if id := a.store.CurrentID(); id != "" {
		s = s + " " + id
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to DeckPilot CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	if !a.isLoggedIn() {
		if err := a.Login(ctx); err != nil {
			log.Printf("login failed: %s", err.Error())
		}
	}

	runREPL(ctx, a, a.getStatus, scanner)
}
