package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	ListLessons(ctx context.Context) error
	AddLesson(ctx context.Context) error
	DeleteLesson(ctx context.Context) error
	AddResource(ctx context.Context) error
	EditResource(ctx context.Context) error
	DeleteResource(ctx context.Context) error
	ListUsers(ctx context.Context) error
	AddUser(ctx context.Context) error
	EditUser(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	DeleteUser(ctx context.Context) error
	Export(ctx context.Context) error
	Import(ctx context.Context) error
	Reset(ctx context.Context) error
	Ask(ctx context.Context) error
	History(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the Bayan console.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers
// report their own errors. This keeps the REPL loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("bayan> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, lessons, lesson-add, lesson-del, res-add, res-edit, res-del, users, user-add, user-edit, passwd, user-del, export, import, reset, ask, history, logout, exit")
			} else {
				printlnFn("Available commands: login, lessons, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "lessons":
			_ = a.ListLessons(ctx)

		case "lesson-add":
			_ = a.AddLesson(ctx)

		case "lesson-del":
			_ = a.DeleteLesson(ctx)

		case "res-add":
			_ = a.AddResource(ctx)

		case "res-edit":
			_ = a.EditResource(ctx)

		case "res-del":
			_ = a.DeleteResource(ctx)

		case "users":
			_ = a.ListUsers(ctx)

		case "user-add":
			_ = a.AddUser(ctx)

		case "user-edit":
			_ = a.EditUser(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "user-del":
			_ = a.DeleteUser(ctx)

		case "export":
			_ = a.Export(ctx)

		case "import":
			_ = a.Import(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "ask":
			_ = a.Ask(ctx)

		case "history":
			_ = a.History(ctx)

		case "exit", "quit":
			return

		default:
			printlnFn(fmt.Sprintf("Unknown command: %s (try 'help')", cmd))
		}
	}
}
