// Package cli implements the jaxon command line.
package cli

import (
	"log"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/spf13/cobra"

	"github.com/km-arc/go-jaxon/framework/app"
	"github.com/km-arc/go-jaxon/framework/facade"
)

type rootOptions struct {
	configFiles []string
	envFiles    []string
	noEnv       bool
	templateDir string
	templateExt string
	verbose     bool
}

// Execute runs the root command with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "jaxon",
		Short:        "Inspect and exercise the jaxon service container",
		SilenceUsage: true,
	}

	fs := cmd.PersistentFlags()
	fs.StringArrayVarP(&opts.configFiles, "config", "c", nil, "config file (yaml, json or toml), repeatable")
	fs.StringArrayVar(&opts.envFiles, "env-file", nil, "dotenv file, repeatable (default .env)")
	fs.BoolVar(&opts.noEnv, "no-env", false, "ignore JAXON_* environment variables")
	fs.StringVar(&opts.templateDir, "templates", "", "template directory")
	fs.StringVar(&opts.templateExt, "template-ext", ".tpl", "template file extension")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		newOptionsCmd(opts),
		newRenderCmd(opts),
		newTransCmd(opts),
		newMinifyCmd(opts),
		newValidateCmd(opts),
	)
	return cmd
}

// boot builds and boots an application from the persistent flags.
func (o *rootOptions) boot(cmd *cobra.Command) (*facade.Facade, error) {
	loggers := ldlog.NewDefaultLoggers()
	loggers.SetBaseLogger(log.New(cmd.ErrOrStderr(), "[jaxon] ", log.LstdFlags))
	if o.verbose {
		loggers.SetMinLevel(ldlog.Debug)
	} else {
		loggers.SetMinLevel(ldlog.Warn)
	}

	appOpts := []app.Option{app.WithLoggers(loggers)}
	if o.noEnv {
		appOpts = append(appOpts, app.WithoutEnv())
	} else if len(o.envFiles) > 0 {
		appOpts = append(appOpts, app.WithEnvFiles(o.envFiles...))
	}
	for _, f := range o.configFiles {
		appOpts = append(appOpts, app.WithConfigFile(f))
	}
	if o.templateDir != "" {
		appOpts = append(appOpts, app.WithTemplates(o.templateDir, o.templateExt))
	}

	return app.New(appOpts...).Facade()
}
