// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is a node in the command tree: either a group that routes to
// Subcommands, a leaf with a Run function, or both.
type Command struct {
	// Name is what the user types to select the command ("decode").
	Name string

	// Summary is the one-line description listed in the parent's help.
	Summary string

	// Description is the full help text. Summary is used when empty.
	Description string

	// Usage replaces the synthesized usage line when set.
	Usage string

	// Examples are listed at the end of the help text.
	Examples []Example

	// Flags builds the command's flag set. It is called once per parse
	// and once per help rendering, so it must return a fresh set each
	// time. Nil means the command takes no flags.
	Flags func() *pflag.FlagSet

	// Subcommands are selected by the first positional argument.
	Subcommands []*Command

	// Run receives the positional arguments left after flag parsing.
	// On a command that also has Subcommands, Run handles invocations
	// whose first argument is a flag or absent.
	Run func(args []string) error

	// HelpOutput receives help text. Subcommands use their parent's
	// when unset; the root falls back to stderr.
	HelpOutput io.Writer

	parent *Command
	parsed *pflag.FlagSet
}

// Example is one entry of the Examples section of help output.
type Example struct {
	Description string
	Command     string
}

// Execute routes args down the command tree, parses the selected
// command's flags, and calls its Run function.
func (c *Command) Execute(args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(c.helpOutput())
		return nil
	}

	sub, rest, err := c.route(args)
	if err != nil {
		return err
	}
	if sub != nil {
		return sub.Execute(rest)
	}

	if c.Run == nil {
		c.PrintHelp(c.helpOutput())
		switch {
		case len(c.Subcommands) == 0:
			return Internal("no action defined for %q", c.fullName())
		case len(args) == 0:
			return Validation("subcommand required")
		default:
			return Validation("subcommand required (got flag %q)", args[0])
		}
	}

	positional, err := c.parseFlags(args)
	if err != nil {
		return err
	}
	return c.Run(positional)
}

// route returns the subcommand named by args[0] and the arguments that
// follow it. A nil command with a nil error means args are for c itself.
func (c *Command) route(args []string) (*Command, []string, error) {
	if len(c.Subcommands) == 0 || len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return nil, args, nil
	}
	for _, sub := range c.Subcommands {
		if sub.Name == args[0] {
			sub.parent = c
			return sub, args[1:], nil
		}
	}

	message := fmt.Sprintf("unknown command %q", args[0])
	if suggestion := suggestCommand(args[0], c.Subcommands); suggestion != "" {
		message += fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	return nil, nil, Validation("%s", message).WithHint(c.usageHint())
}

// parseFlags parses args against a fresh flag set and returns the
// positional arguments.
func (c *Command) parseFlags(args []string) ([]string, error) {
	if c.Flags == nil {
		return args, nil
	}
	flagSet := c.Flags()
	flagSet.SetOutput(io.Discard)

	if err := flagSet.Parse(args); err != nil {
		message := err.Error()
		// The failed set may be half-populated; look names up in a new one.
		if suggestion := suggestFlag(args, c.Flags()); suggestion != "" {
			message += fmt.Sprintf(" (did you mean %s?)", suggestion)
		}
		return nil, Validation("%s", message).WithHint(c.usageHint())
	}
	c.parsed = flagSet
	return flagSet.Args(), nil
}

// Changed reports whether the flag called name was given on the command
// line in the last Execute. Commands use it to let flags override
// configured defaults.
func (c *Command) Changed(name string) bool {
	return c.parsed != nil && c.parsed.Changed(name)
}

// PrintHelp writes the command's help text to w.
func (c *Command) PrintHelp(w io.Writer) {
	var help strings.Builder

	if text := cmp.Or(c.Description, c.Summary); text != "" {
		help.WriteString(text + "\n\n")
	}
	help.WriteString("Usage:\n  " + c.usageLine() + "\n")

	if len(c.Subcommands) > 0 {
		help.WriteString("\nCommands:\n")
		table := tabwriter.NewWriter(&help, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(table, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		table.Flush()
	}

	if c.Flags != nil {
		if usages := c.Flags().FlagUsages(); usages != "" {
			help.WriteString("\nFlags:\n" + usages)
		}
	}

	if len(c.Examples) > 0 {
		help.WriteString("\nExamples:\n")
		for _, example := range c.Examples {
			if example.Description == "" {
				help.WriteString("  " + example.Command + "\n")
				continue
			}
			fmt.Fprintf(&help, "  # %s\n  %s\n\n", example.Description, example.Command)
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(&help, "\nRun '%s <command> --help' for more information on a command.\n", c.fullName())
	}

	io.WriteString(w, help.String())
}

func (c *Command) usageLine() string {
	switch {
	case c.Usage != "":
		return c.Usage
	case len(c.Subcommands) > 0:
		return c.fullName() + " <command> [flags]"
	default:
		return c.fullName() + " [flags]"
	}
}

func (c *Command) usageHint() string {
	return fmt.Sprintf("Run '%s --help' for usage.", c.fullName())
}

func (c *Command) helpOutput() io.Writer {
	for command := c; command != nil; command = command.parent {
		if command.HelpOutput != nil {
			return command.HelpOutput
		}
	}
	return os.Stderr
}

// fullName is the space-separated path from the root ("bsonkit decode").
func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

func isHelpFlag(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	}
	return false
}
