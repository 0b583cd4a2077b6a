package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newOptionsCmd(root *rootOptions) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "options [prefix]",
		Short: "List options in insertion order, optionally under a prefix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := root.boot(cmd)
			if err != nil {
				return err
			}
			for _, kv := range sets {
				name, value, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("--set %q: expected name=value", kv)
				}
				if err := f.SetOption(name, value); err != nil {
					return err
				}
			}

			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			out := cmd.OutOrStdout()
			for _, name := range f.GetOptionNames(prefix) {
				v, _ := f.GetOption(name)
				if _, err := fmt.Fprintf(out, "%s = %v\n", name, v); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "set an option before listing (name=value), repeatable")
	return cmd
}

// parseVars turns k=v pairs into a map.
func parseVars(pairs []string) (map[string]any, error) {
	vars := make(map[string]any, len(pairs))
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("--var %q: expected name=value", kv)
		}
		vars[k] = v
	}
	return vars, nil
}
