package completion_helper

import (
	"context"
	"fmt"

	"github.com/thomas-vilte/husky-installer/internal/commitmsg"
	"github.com/urfave/cli/v3"
)

// DefaultFlagComplete prints all flags of the current command to facilitate shell completion.
func DefaultFlagComplete(_ context.Context, cmd *cli.Command) {
	w := cmd.Root().Writer
	for _, f := range cmd.Flags {
		for _, name := range f.Names() {
			if len(name) == 1 {
				_, _ = fmt.Fprintln(w, "-"+name)
			} else {
				_, _ = fmt.Fprintln(w, "--"+name)
			}
		}
	}
}

// StyleFlagComplete suggests the commit prefix styles after the flags.
func StyleFlagComplete(ctx context.Context, cmd *cli.Command) {
	DefaultFlagComplete(ctx, cmd)
	for _, s := range commitmsg.Styles() {
		_, _ = fmt.Fprintln(cmd.Root().Writer, string(s))
	}
}
