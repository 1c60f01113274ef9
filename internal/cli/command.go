// Package cli implements the launchpadctl subcommands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"launchpad-api/internal/client"
)

// ErrUsage makes Dispatch print the command's usage line.
var ErrUsage = errors.New("usage")

type Command interface {
	Name() string
	Description() string
	Usage() string
	Run(ctx context.Context, api *client.Client, args []string) error
}

var registry = map[string]Command{}

// Out receives all command output. Tests replace it.
var Out io.Writer = os.Stdout

func Register(cmd Command) {
	registry[cmd.Name()] = cmd
}

func Get(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

func FormatUsage() string {
	lines := []string{
		"launchpadctl manages the agency portfolio API",
		"",
		"Usage:",
		"  launchpadctl <command> [args]",
		"",
		"Commands:",
	}
	for _, c := range List() {
		lines = append(lines, fmt.Sprintf("  %-44s %s", c.Usage(), c.Description()))
	}
	lines = append(lines, "", "Environment: LAUNCHPAD_API_URL, LAUNCHPAD_API_TIMEOUT, LAUNCHPAD_SESSION_DIR")
	return strings.Join(lines, "\n") + "\n"
}

// Dispatch runs one command and returns the process exit code.
func Dispatch(ctx context.Context, api *client.Client, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatUsage())
		return 2
	}

	name := strings.ToLower(args[0])
	if name == "help" || name == "-h" || name == "--help" {
		if len(args) > 1 {
			if c, ok := Get(args[1]); ok {
				fmt.Fprintf(Out, "Usage: launchpadctl %s\n", c.Usage())
				return 0
			}
		}
		fmt.Fprint(Out, FormatUsage())
		return 0
	}

	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
		fmt.Fprint(Out, FormatUsage())
		return 2
	}

	err := c.Run(ctx, api, args[1:])
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: launchpadctl %s\n", c.Usage())
		return 2
	default:
		fmt.Fprintf(Out, "%s error: %v\n", name, err)
		return 1
	}
}
