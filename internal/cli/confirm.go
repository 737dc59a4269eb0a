package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"catalog-console/internal/view"
)

// promptConfirmer asks on the terminal and accepts y or yes
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (c promptConfirmer) Confirm(ctx context.Context, prompt view.Prompt) bool {
	if ctx.Err() != nil {
		return false
	}

	fmt.Fprintf(c.out, "%s [y/N]: ", prompt.Message)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(c.out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
