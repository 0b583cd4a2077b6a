package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTransCmd(root *rootOptions) *cobra.Command {
	var (
		vars []string
		lang string
	)
	cmd := &cobra.Command{
		Use:   "trans <key>",
		Short: "Translate a key; unknown keys are printed unchanged",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := root.boot(cmd)
			if err != nil {
				return err
			}
			values, err := parseVars(vars)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), f.Trans(args[0], values, lang))
			return err
		},
	}
	fs := cmd.Flags()
	fs.StringArrayVar(&vars, "var", nil, "placeholder (name=value), repeatable")
	fs.StringVarP(&lang, "lang", "l", "", "language (default core.language)")
	return cmd
}
