package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newMinifyCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "minify <src> <dst>",
		Short: "Minify a JavaScript file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := root.boot(cmd)
			if err != nil {
				return err
			}
			if !f.Minify(args[0], args[1]) {
				return errors.New(f.Trans("errors.minify.failed", map[string]any{"file": args[0]}, ""))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), args[1])
			return err
		},
	}
}
