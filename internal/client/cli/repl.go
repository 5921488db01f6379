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
	Dashboard(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help           show available commands
//	  - register       create an account
//	  - login          sign in
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - help           show available commands
//	  - dashboard      show the signed-in account
//	  - logout         sign out
//	  - exit | quit    leave the program
//
// Command errors are ignored here; handlers report their own.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("auth %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: dashboard, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			if a.isLoggedIn() {
				printlnFn("Already signed in, logout first")
				continue
			}
			_ = a.Register(ctx)

		case "login":
			if a.isLoggedIn() {
				printlnFn("Already signed in, logout first")
				continue
			}
			_ = a.Login(ctx)

		case "dashboard", "d":
			_ = a.Dashboard(ctx)

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
