package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Status(ctx context.Context) error
	Whoami(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Get(ctx context.Context, id string) error
	Add(ctx context.Context) error
	Update(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	About(ctx context.Context, html bool) error
	Object(ctx context.Context, key string) error
}

const (
	helpAnonymous = "Available commands: login, status, about [html], object <key>, exit"
	helpLoggedIn  = "Available commands: (l)ist, get <id>, add, update, delete <id>, status, whoami, about [html], object <key>, logout, exit"
)

// runREPL starts a simple read-eval-print loop for the Findreve CLI.
//
// It reads a line from in, parses the first token as the command and the
// rest as its argument, and dispatches to methods on 'a'. The loop exits on
// EOF or when the user types "exit" or "quit". Command prompts read from the
// same reader, so a command may consume the lines that follow it.
//
// Prompt & Commands
//
//   - help           show available commands
//   - login          authenticate and store the token
//   - status         ask the server whether the stored token is valid
//   - whoami         show subject, expiry and save time of the stored token
//   - logout         forget the stored token
//   - list | l       list items
//   - get <id>       show a single item
//   - add            create an item (interactive)
//   - update         modify an item (interactive)
//   - delete <id>    delete an item
//   - about [html]   show the server readme, optionally rendered as HTML
//   - object <key>   public lookup of an item by key
//   - exit | quit    leave the program
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("findreve %s > ", statusFn()))
		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), cmd))

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "login":
			_ = a.Login(ctx)

		case "status":
			_ = a.Status(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "get":
			if arg == "" {
				printlnFn("Usage: get <id>")
				continue
			}
			_ = a.Get(ctx, arg)

		case "add":
			_ = a.Add(ctx)

		case "update":
			_ = a.Update(ctx)

		case "delete":
			if arg == "" {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, arg)

		case "about":
			_ = a.About(ctx, arg == "html")

		case "object":
			if arg == "" {
				printlnFn("Usage: object <key>")
				continue
			}
			_ = a.Object(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
