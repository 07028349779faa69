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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	OAuth(ctx context.Context, token string) error
	Accept(ctx context.Context) error
	Decline(ctx context.Context) error
	Goto(ctx context.Context, path string) error
	Where(ctx context.Context) error
	Refresh(ctx context.Context) error
	Resume(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the careerkit CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on a. The loop exits on EOF, when ctx is done, or
// when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help                 show available commands
//	  - goto <path>          navigate to a page
//	  - where                show the current page and session
//	  - exit | quit          leave the program
//
//	Not logged in:
//	  - register             create an account
//	  - login                authenticate with email and password
//	  - oauth <token>        authenticate with an identity provider token
//
//	Logged in:
//	  - accept               accept the terms of service and privacy policy
//	  - decline              decline them and log out
//	  - refresh              reload the user from the server
//	  - resume upload <path> store a PDF resume
//	  - resume url <key>     get a download link for a stored resume
//	  - logout               log out
//
// Handlers report their own errors; the loop only keeps reading.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("ck> %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				printlnFn("Input error:", err)
			}
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: accept, decline, goto <path>, where, refresh, resume upload <path> | resume url <key>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, oauth <token>, goto <path>, where, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "oauth":
			if len(args) != 1 {
				printlnFn("Usage: oauth <token>")
				continue
			}
			_ = a.OAuth(ctx, args[0])

		case "accept":
			_ = a.Accept(ctx)

		case "decline":
			_ = a.Decline(ctx)

		case "goto":
			if len(args) != 1 {
				printlnFn("Usage: goto <path>")
				continue
			}
			_ = a.Goto(ctx, args[0])

		case "where":
			_ = a.Where(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "resume":
			_ = a.Resume(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
