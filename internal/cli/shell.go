package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

const shellHelp = `Commands:
  list                 show all products
  categories           show categories
  search <term>        search products, a blank term shows all
  category [id]        filter by category, no id shows all
  view <id>            open a product
  update <id>          edit a product
  delete <id>          delete a product (Admin only)
  help                 show this help
  quit                 leave the shell`

func newShellCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Browse the catalog interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd.Context())
		},
	}
}

func (a *app) runShell(ctx context.Context) error {
	if err := a.initialize(ctx); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
	}
	if err := a.printProducts(); err != nil {
		return err
	}

	for {
		fmt.Fprint(a.out, "catalog> ")

		line, readErr := a.in.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")

		if strings.TrimSpace(line) != "" {
			quit, err := a.dispatch(ctx, line)
			if quit {
				return nil
			}
			if err != nil {
				fmt.Fprintf(a.out, "error: %v\n", err)
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				fmt.Fprintln(a.out)
				return nil
			}
			return readErr
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// dispatch runs one shell line. The search term is everything after the
// first space, untouched.
func (a *app) dispatch(ctx context.Context, line string) (bool, error) {
	name, rest, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")

	switch strings.ToLower(name) {
	case "quit", "exit":
		return true, nil
	case "help":
		_, err := fmt.Fprintln(a.out, shellHelp)
		return false, err
	case "list":
		return false, a.showAll(ctx)
	case "categories":
		return false, a.printCategories()
	case "search":
		return false, a.search(ctx, rest)
	case "category":
		return false, a.filter(ctx, strings.TrimSpace(rest))
	case "view":
		return false, a.view(rest)
	case "update":
		return false, a.update(rest)
	case "delete":
		return false, a.remove(ctx, rest, false)
	default:
		return false, fmt.Errorf("unknown command %q, type help", name)
	}
}
