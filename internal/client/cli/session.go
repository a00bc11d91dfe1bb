package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/sitecms/internal/buildinfo"
)

// getToken is a seam for tests; by default it delegates to GetToken.
var getToken = GetToken

var printVersion = func() { buildinfo.PrintBuildData(os.Stdout) }

// Login reads an access token and stores it as the current session.
func (a *App) Login(ctx context.Context) error {
	tok, err := getToken(a.reader, a.out)
	if err != nil {
		return err
	}
	if err := a.session.Login(ctx, tok); err != nil {
		a.log.Warn(ctx, "token rejected", "err", err)
		return err
	}
	a.loggedIn.Store(true)
	fmt.Fprintln(a.out, "Logged in.")
	return a.Whoami(ctx)
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.loggedIn.Store(false)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Whoami prints what is known about the stored token.
func (a *App) Whoami(ctx context.Context) error {
	info, err := a.session.Info(ctx)
	if err != nil {
		return err
	}
	a.loggedIn.Store(info.LoggedIn)
	if !info.LoggedIn {
		if !info.ExpiresAt.IsZero() {
			fmt.Fprintf(a.out, "Token expired at %s. Type 'login' to paste a new one.\n", info.ExpiresAt.Local().Format(time.RFC1123))
			return nil
		}
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	if info.Subject != "" {
		fmt.Fprintf(a.out, "Subject: %s\n", info.Subject)
	}
	if info.ExpiresAt.IsZero() {
		fmt.Fprintln(a.out, "Token expiry: unknown")
	} else {
		fmt.Fprintf(a.out, "Token expires: %s\n", info.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}
