package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRenderCmd(root *rootOptions) *cobra.Command {
	var (
		vars     []string
		cacheDir string
	)
	cmd := &cobra.Command{
		Use:   "render <template>",
		Short: "Render a template from the template directory",
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
			if cacheDir != "" {
				f.SetCacheDir(cacheDir)
			}
			out, err := f.Render(args[0], values)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	fs := cmd.Flags()
	fs.StringArrayVar(&vars, "var", nil, "template variable (name=value), repeatable")
	fs.StringVar(&cacheDir, "cache-dir", "", "compiled template cache directory")
	return cmd
}
