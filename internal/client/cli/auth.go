package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dmitrijs2005/findreve/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// Login prompts for a username and password and authenticates against the
// server. The API client stores the token on success.
//
// The password is wiped before returning. A failed login is reported to the
// user and returned as an error.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.api.Login(ctx, userName, string(password))
	if !res.OK() {
		log.Printf("Login unsuccessful: %s", res.Detail)
		return resultError(res)
	}

	log.Printf("Login successful")
	a.loggedIn = true
	a.userName = userName
	return nil
}

// Status asks the server whether the stored token is still accepted.
func (a *App) Status(ctx context.Context) error {
	a.loggedIn = a.api.IsLogin(ctx)
	if a.loggedIn {
		fmt.Fprintln(a.out, "Logged in")
	} else {
		a.userName = ""
		fmt.Fprintln(a.out, "Not logged in")
	}
	return nil
}

// Whoami prints what the stored token says about itself. Nothing is sent
// to the server.
func (a *App) Whoami(ctx context.Context) error {
	info, ok := a.api.Session(ctx)
	if !ok {
		fmt.Fprintln(a.out, "No session details available")
		return nil
	}

	fmt.Fprintf(a.out, "Subject:    %s\n", orDash(info.Subject))
	fmt.Fprintf(a.out, "Issued at:  %s\n", formatTime(info.IssuedAt))
	fmt.Fprintf(a.out, "Expires at: %s\n", formatTime(info.ExpiresAt))
	if !info.SavedAt.IsZero() {
		fmt.Fprintf(a.out, "Saved at:   %s\n", formatTime(info.SavedAt))
	}
	if !info.ExpiresAt.IsZero() && time.Now().After(info.ExpiresAt) {
		fmt.Fprintln(a.out, "The token has expired, log in again.")
	}
	return nil
}

// Logout forgets the stored token. State is reset by the logout hook.
func (a *App) Logout(ctx context.Context) error {
	a.api.Logout(ctx)
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.RFC3339)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
