package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests can provide a stub.
type execIface interface {
	AddUser(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Purge(ctx context.Context) error
}

const helpText = "Available commands: useradd, passwd, purge, help, exit"

// runREPL reads one command per line and dispatches it to a. The loop exits
// on EOF, on "exit"/"quit" or when ctx is done.
//
// Errors returned by commands are ignored here; the commands report their
// own errors to the user.
func runREPL(ctx context.Context, a execIface, in *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprint(out, "crmctl> ")
		line, err := readLine(in)
		if err != nil {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			fmt.Fprintln(out, helpText)
		case "useradd":
			_ = a.AddUser(ctx)
		case "passwd":
			_ = a.ChangePassword(ctx)
		case "purge":
			_ = a.Purge(ctx)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", parts[0])
		}
	}
}
