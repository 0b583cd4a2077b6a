package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-jaxon/framework/facade"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "validate <name>...",
		Short: "Check names against the function, event, class or method grammar",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := root.boot(cmd)
			if err != nil {
				return err
			}
			check, key, err := validator(f, kind)
			if err != nil {
				return err
			}

			invalid := 0
			out := cmd.OutOrStdout()
			for _, name := range args {
				if check(name) {
					_, err = fmt.Fprintf(out, "%s: ok\n", name)
				} else {
					invalid++
					_, err = fmt.Fprintln(out, f.Trans(key, map[string]any{"name": name}, ""))
				}
				if err != nil {
					return err
				}
			}
			if invalid > 0 {
				return fmt.Errorf("%d invalid %s name(s)", invalid, kind)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "function", "function, event, class or method")
	return cmd
}

func validator(f facade.ValidationAccess, kind string) (func(string) bool, string, error) {
	switch kind {
	case "function":
		return f.ValidateFunction, "errors.functions.invalid", nil
	case "event":
		return f.ValidateEvent, "errors.events.invalid", nil
	case "class":
		return f.ValidateClass, "errors.classes.invalid", nil
	case "method":
		return f.ValidateMethod, "errors.methods.invalid", nil
	}
	return nil, "", fmt.Errorf("unknown kind %q", kind)
}
