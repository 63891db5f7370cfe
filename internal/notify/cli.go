// Package notify delivers user-facing notifications outside the terminal
// UI, for the non-interactive commands.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

// ANSI escape codes for terminal formatting.
const (
	reset = "\033[0m"
	bold  = "\033[1m"
	red   = "\033[31m"
	cyan  = "\033[36m"
)

// PrintFunc is a function used to print formatted output.
// Matches the signature of fmt.Printf.
type PrintFunc func(format string, a ...interface{})

// CLINotifier writes notifications with ANSI formatting. Urgent messages
// go to errOut so they stay visible when stdout is piped.
type CLINotifier struct {
	log     *logger.Logger
	printFn PrintFunc
	errOut  io.Writer
	color   bool
}

// NewCLINotifier creates a terminal notifier.
// If printFn is nil, fmt.Printf is used; if errOut is nil, os.Stderr.
func NewCLINotifier(log *logger.Logger, printFn PrintFunc, errOut io.Writer, color bool) *CLINotifier {
	if printFn == nil {
		printFn = func(format string, a ...interface{}) {
			fmt.Printf(format+"\n", a...)
		}
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &CLINotifier{log: log, printFn: printFn, errOut: errOut, color: color}
}

// Notify prints a normal notification.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	if n.color {
		n.printFn("%s%s%s%s", cyan, bold, message, reset)
	} else {
		n.printFn("%s", message)
	}
	return nil
}

// NotifyUrgent prints an urgent notification in bold red.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	var err error
	if n.color {
		_, err = fmt.Fprintf(n.errOut, "%s%serror: %s%s\n", red, bold, message, reset)
	} else {
		_, err = fmt.Fprintf(n.errOut, "error: %s\n", message)
	}
	return err
}
