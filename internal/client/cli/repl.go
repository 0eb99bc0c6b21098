package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Output seams. In tests, replace them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isSignedIn() bool
	SetEmail(ctx context.Context, args []string) error
	SetPassword(ctx context.Context, args []string) error
	SetTargetUserID(ctx context.Context, args []string) error
	ShowForm(ctx context.Context) error
	CreateUser(ctx context.Context) error
	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
	GetUser(ctx context.Context) error
	GetAllUsers(ctx context.Context) error
	RemoveUser(ctx context.Context) error
	UpdateUser(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Status(ctx context.Context) error
	History(ctx context.Context, args []string) error
	Reset(ctx context.Context) error
}

const (
	helpForm       = "Form: email <addr>, password [value], id <userId>, form"
	helpSignedIn   = "Actions: signup, signout, get, list, remove, update, whoami, status, history [n], reset, exit"
	helpSignedOut  = "Actions: signup, signin, get, list, remove, update, whoami, status, history [n], reset, exit"
	promptTemplate = "authdemo%s> "
)

// runREPL starts a simple read–eval–print loop for the authdemo CLI.
//
// Each line is split into a command and its arguments and dispatched to a.
// Form commands edit the input the actions read; action commands send one
// request each. As on the demo page, only one of signin/signout is
// offered, depending on whether a user is signed in.
//
// Errors returned by handlers are ignored here; handlers report their own
// outcome. The loop exits on EOF, on "exit"/"quit", or once ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			printlnFn("Bye!")
			return
		}

		printFn(fmt.Sprintf(promptTemplate, statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			printlnFn()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpForm)
			if a.isSignedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}

		case "email":
			_ = a.SetEmail(ctx, args)
		case "password":
			_ = a.SetPassword(ctx, args)
		case "id":
			_ = a.SetTargetUserID(ctx, args)
		case "form":
			_ = a.ShowForm(ctx)

		case "signup":
			_ = a.CreateUser(ctx)
		case "signin":
			if a.isSignedIn() {
				printlnFn("Already signed in; use signout first.")
				continue
			}
			_ = a.SignIn(ctx)
		case "signout":
			if !a.isSignedIn() {
				printlnFn("Not signed in.")
				continue
			}
			_ = a.SignOut(ctx)
		case "get":
			_ = a.GetUser(ctx)
		case "list":
			_ = a.GetAllUsers(ctx)
		case "remove":
			_ = a.RemoveUser(ctx)
		case "update":
			_ = a.UpdateUser(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "status":
			_ = a.Status(ctx)
		case "history":
			_ = a.History(ctx, args)
		case "reset":
			_ = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			// last line had no newline
			return
		}
	}
}
