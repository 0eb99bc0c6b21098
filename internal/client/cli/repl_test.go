package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	signedIn bool

	calls []string
}

func (f *fakeExec) record(name string, args []string) error {
	if len(args) > 0 {
		name += " " + strings.Join(args, " ")
	}
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) isSignedIn() bool { return f.signedIn }
func (f *fakeExec) SetEmail(_ context.Context, args []string) error {
	return f.record("email", args)
}
func (f *fakeExec) SetPassword(_ context.Context, args []string) error {
	return f.record("password", args)
}
func (f *fakeExec) SetTargetUserID(_ context.Context, args []string) error {
	return f.record("id", args)
}
func (f *fakeExec) ShowForm(context.Context) error   { return f.record("form", nil) }
func (f *fakeExec) CreateUser(context.Context) error { return f.record("signup", nil) }
func (f *fakeExec) SignIn(context.Context) error {
	f.signedIn = true
	return f.record("signin", nil)
}
func (f *fakeExec) SignOut(context.Context) error {
	f.signedIn = false
	return f.record("signout", nil)
}
func (f *fakeExec) GetUser(context.Context) error     { return f.record("get", nil) }
func (f *fakeExec) GetAllUsers(context.Context) error { return f.record("list", nil) }
func (f *fakeExec) RemoveUser(context.Context) error  { return f.record("remove", nil) }
func (f *fakeExec) UpdateUser(context.Context) error  { return f.record("update", nil) }
func (f *fakeExec) WhoAmI(context.Context) error      { return f.record("whoami", nil) }
func (f *fakeExec) Status(context.Context) error      { return f.record("status", nil) }
func (f *fakeExec) History(_ context.Context, args []string) error {
	return f.record("history", args)
}
func (f *fakeExec) Reset(context.Context) error {
	f.signedIn = false
	return f.record("reset", nil)
}

// captureOutput swaps the print seams and returns everything printed.
func captureOutput(t *testing.T) *strings.Builder {
	t.Helper()
	var sb strings.Builder
	origPrintln, origPrint := printlnFn, printFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&sb, a...) }
	printFn = func(a ...any) (int, error) { return fmt.Fprint(&sb, a...) }
	t.Cleanup(func() { printlnFn, printFn = origPrintln, origPrint })
	return &sb
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	captureOutput(t)

	input := strings.Join([]string{
		"email a@b.com",
		"password",
		"password two words",
		"id 5",
		"form",
		"",
		"signup",
		"signin",
		"get",
		"list",
		"remove",
		"update",
		"whoami",
		"status",
		"history 3",
		"signout",
		"reset",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"email a@b.com",
		"password",
		"password two words",
		"id 5",
		"form",
		"signup",
		"signin",
		"get",
		"list",
		"remove",
		"update",
		"whoami",
		"status",
		"history 3",
		"signout",
		"reset",
	}, exec.calls, "nothing runs after exit")
}

func TestRunREPL_SigninSignoutToggle(t *testing.T) {
	out := captureOutput(t)

	input := "signout\nhelp\nsignin\nsignin\nhelp\nquit\n"
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{"signin"}, exec.calls)
	assert.Contains(t, out.String(), "Not signed in.")
	assert.Contains(t, out.String(), "Already signed in")
	assert.Contains(t, out.String(), helpSignedOut)
	assert.Contains(t, out.String(), helpSignedIn)
}

func TestRunREPL_UnknownAndPrompt(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return " (a@b.com)" }, bufio.NewReader(strings.NewReader("foobar\n")))

	assert.Empty(t, exec.calls)
	assert.Contains(t, out.String(), "authdemo (a@b.com)> ")
	assert.Contains(t, out.String(), "Unknown command: foobar")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("list\nwhoami")))

	assert.Equal(t, []string{"list", "whoami"}, exec.calls)
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	out := captureOutput(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("list\n")))

	assert.Empty(t, exec.calls)
	assert.Contains(t, out.String(), "Bye!")
}
