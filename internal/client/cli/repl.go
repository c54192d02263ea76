package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Add(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, arg string) error
	Toggle(ctx context.Context, arg string) error
	Update(ctx context.Context, arg string) error
	Delete(ctx context.Context, arg string) error
	Move(ctx context.Context, from, to string) error
	Search(ctx context.Context, query string) error
	Filter(ctx context.Context, which string) error
	Export(ctx context.Context, path string) error
	Import(ctx context.Context, path string) error
	Log(ctx context.Context) error
	ClearLog(ctx context.Context) error
	Clear(ctx context.Context) error
	Theme(ctx context.Context, name string) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the ZeroTask CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF, on "logout", or when the
// user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	- help             — show available commands
//	- add              — add a task (interactive title/description prompts)
//	- list | l         — list the visible tasks
//	- show <n>         — show task #n in full
//	- toggle | done <n> — flip task #n between pending and completed
//	- update <n>       — edit title and description of task #n
//	- delete <n>       — delete task #n
//	- move <n> <m>     — move task #n to position #m
//	- search [text]    — set (or clear) the text filter
//	- filter <all|active|completed> — set the status filter
//	- export <file>    — write all tasks to a JSON file
//	- import <file>    — replace all tasks from a JSON file
//	- log              — show the audit log
//	- clearlog         — clear the audit log
//	- clear            — delete every task
//	- theme [name]     — show or set the colour theme
//	- logout           — end the session and wipe local credentials
//	- exit | quit      — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("zt %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: add, (l)ist, show, toggle/done, update, delete, move, search, filter, export, import, log, clearlog, clear, theme, logout, exit")

		case "add":
			_ = a.Add(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <n>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "toggle", "done":
			if len(args) == 0 {
				printlnFn("Usage: " + cmd + " <n>")
				continue
			}
			_ = a.Toggle(ctx, args[0])

		case "update":
			if len(args) == 0 {
				printlnFn("Usage: update <n>")
				continue
			}
			_ = a.Update(ctx, args[0])

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <n>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "move":
			if len(args) < 2 {
				printlnFn("Usage: move <n> <m>")
				continue
			}
			_ = a.Move(ctx, args[0], args[1])

		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "filter":
			if len(args) == 0 {
				printlnFn("Usage: filter <all|active|completed>")
				continue
			}
			_ = a.Filter(ctx, args[0])

		case "export":
			if len(args) == 0 {
				printlnFn("Usage: export <file>")
				continue
			}
			_ = a.Export(ctx, args[0])

		case "import":
			if len(args) == 0 {
				printlnFn("Usage: import <file>")
				continue
			}
			_ = a.Import(ctx, args[0])

		case "log":
			_ = a.Log(ctx)

		case "clearlog":
			_ = a.ClearLog(ctx)

		case "clear":
			_ = a.Clear(ctx)

		case "theme":
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			_ = a.Theme(ctx, name)

		case "logout":
			_ = a.Logout(ctx)
			if a.isLoggedIn() {
				// logout failed, keep the session
				continue
			}
			printlnFn("Session closed.")
			return

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
