package cli

import (
	"context"
	"fmt"
)

// About prints the server readme. With html set the markdown is rendered
// and sanitized first; a failure message is printed as is either way.
func (a *App) About(ctx context.Context, html bool) error {
	if !html {
		fmt.Fprintln(a.out, a.api.GetAbout(ctx))
		return nil
	}

	text, err := a.api.FetchAbout(ctx)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil
	}
	fmt.Fprintln(a.out, a.readme.ToHTML(text))
	return nil
}

// Object prints the public record of the item registered under key.
func (a *App) Object(ctx context.Context, key string) error {
	return printResult(a.out, a.api.GetObject(ctx, key))
}
