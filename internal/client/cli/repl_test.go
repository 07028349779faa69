package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  []string
}

func (f *fakeExec) record(call string, args ...string) error {
	f.calls = append(f.calls, call)
	f.args = append(f.args, args...)
	return nil
}

func (f *fakeExec) isLoggedIn() bool                   { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error { return f.record("register") }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) OAuth(ctx context.Context, token string) error {
	f.loggedIn = true
	return f.record("oauth", token)
}
func (f *fakeExec) Accept(ctx context.Context) error  { return f.record("accept") }
func (f *fakeExec) Decline(ctx context.Context) error { return f.record("decline") }
func (f *fakeExec) Goto(ctx context.Context, path string) error {
	return f.record("goto", path)
}
func (f *fakeExec) Where(ctx context.Context) error   { return f.record("where") }
func (f *fakeExec) Refresh(ctx context.Context) error { return f.record("refresh") }
func (f *fakeExec) Resume(ctx context.Context, args []string) error {
	return f.record("resume", args...)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = strings.TrimSpace(strings.Trim(toString(v), "\n"))
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	captureOutput(t)

	input := strings.Join([]string{
		"help",
		"login",
		"oauth tok-1",
		"accept",
		"goto /dashboard",
		"where",
		"refresh",
		"resume upload cv.pdf",
		"decline",
		"register",
		"logout",
		"exit",
		"login",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, rdr(input))

	require.Equal(t, []string{
		"login", "oauth", "accept", "goto", "where", "refresh", "resume", "decline", "register", "logout",
	}, exec.calls)
	require.Equal(t, []string{"tok-1", "/dashboard", "upload", "cv.pdf"}, exec.args)
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, rdr("oauth\ngoto a b\nfoobar\n\nquit\n"))

	require.Empty(t, exec.calls)
	require.Contains(t, *out, "Usage: oauth <token>")
	require.Contains(t, *out, "Usage: goto <path>")
	require.Contains(t, *out, "Unknown command: foobar")
	require.Contains(t, *out, "Bye!")
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, rdr("help\nlogin\nhelp\n"))

	var help []string
	for _, l := range *out {
		if strings.HasPrefix(l, "Available commands:") {
			help = append(help, l)
		}
	}
	require.Len(t, help, 2)
	require.Contains(t, help[0], "register")
	require.Contains(t, help[1], "logout")
}

func TestRunREPL_PromptShowsStatus(t *testing.T) {
	out := captureOutput(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "loading@/" }, rdr(""))

	require.Equal(t, []string{"ck> loading@/ >"}, *out)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	captureOutput(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "s" }, rdr("login\n"))

	require.Empty(t, exec.calls)
}
