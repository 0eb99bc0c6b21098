package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/authdemo/internal/client/state"
	"github.com/dmitrijs2005/authdemo/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

const defaultHistoryLimit = 10

// argOrPrompt returns the joined args, or asks for a value when there are none.
func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) SetEmail(ctx context.Context, args []string) error {
	email, err := a.argOrPrompt(args, "Email")
	if err != nil {
		return err
	}
	a.store.Dispatch(state.SetEmail(email))
	return nil
}

// SetPassword takes the password from args when given (handy in scripts),
// otherwise prompts without echo.
func (a *App) SetPassword(ctx context.Context, args []string) error {
	if len(args) > 0 {
		a.store.Dispatch(state.SetPassword(strings.Join(args, " ")))
		return nil
	}
	pw, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	a.store.Dispatch(state.SetPassword(string(pw)))
	return nil
}

func (a *App) SetTargetUserID(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "User ID")
	if err != nil {
		return err
	}
	a.store.Dispatch(state.SetTargetUserID(id))
	return nil
}

func (a *App) ShowForm(ctx context.Context) error {
	renderForm(a.out, a.store.Snapshot().Form)
	return nil
}

// act runs one service action and prints the resulting panels. The error is
// only logged; the panels already show what went wrong.
func (a *App) act(ctx context.Context, name string, fn func(context.Context) error) error {
	err := fn(ctx)
	if err != nil {
		a.log.Debug(ctx, "action finished with error", "action", name, "error", err)
	}
	renderState(a.out, a.store.Snapshot())
	return err
}

// requireTargetID warns about an empty user id. The request is still sent;
// the endpoint is "/" + id, so it goes to the base URL plus "/".
func (a *App) requireTargetID(ctx context.Context) {
	if a.store.Snapshot().Form.TargetUserID == "" {
		a.log.Warn(ctx, common.ErrEmptyTargetUserID.Error())
	}
}

func (a *App) CreateUser(ctx context.Context) error {
	return a.act(ctx, "createUser", a.authService.CreateUser)
}

func (a *App) SignIn(ctx context.Context) error {
	return a.act(ctx, "signIn", a.authService.SignIn)
}

func (a *App) SignOut(ctx context.Context) error {
	return a.act(ctx, "signOut", a.authService.SignOut)
}

func (a *App) GetUser(ctx context.Context) error {
	a.requireTargetID(ctx)
	return a.act(ctx, "getUser", a.authService.GetUser)
}

func (a *App) GetAllUsers(ctx context.Context) error {
	return a.act(ctx, "getAllUsers", a.authService.GetAllUsers)
}

func (a *App) RemoveUser(ctx context.Context) error {
	a.requireTargetID(ctx)
	return a.act(ctx, "removeUser", a.authService.RemoveUser)
}

func (a *App) UpdateUser(ctx context.Context) error {
	a.requireTargetID(ctx)
	return a.act(ctx, "updateUser", a.authService.UpdateUser)
}

func (a *App) WhoAmI(ctx context.Context) error {
	return a.act(ctx, "whoAmI", a.authService.WhoAmI)
}

// Status reprints the panels without sending anything.
func (a *App) Status(ctx context.Context) error {
	renderState(a.out, a.store.Snapshot())
	return nil
}

// Reset drops every stored cookie and forgets the local session. Nothing is
// sent; the server-side session simply stops being presented.
func (a *App) Reset(ctx context.Context) error {
	if err := a.jar.Clear(ctx); err != nil {
		a.log.Error(ctx, "clearing cookies", "error", err)
		return err
	}
	a.store.Dispatch(state.SessionCleared{})
	fmt.Fprintln(a.out, "Cookies cleared.")
	renderState(a.out, a.store.Snapshot())
	return nil
}

// History prints the last n requests, newest first; n defaults to 10.
func (a *App) History(ctx context.Context, args []string) error {
	limit := defaultHistoryLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Fprintln(a.out, "Usage: history [n], n > 0")
			return fmt.Errorf("invalid history limit %q", args[0])
		}
		limit = n
	}

	recs, err := a.authService.History(ctx, limit)
	if err != nil {
		a.log.Error(ctx, "reading history", "error", err)
		return err
	}
	renderHistory(a.out, recs)
	return nil
}
