package main

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"axnav/config"
	"axnav/state"
)

var dumpConfigCommand = &cli.Command{
	Name:  "dumpconfig",
	Usage: "Dumps either default or actual configuration (YAML)",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
	},
	OnUsageError: passUsageError,
	Action:       dumpConfig,
	ArgsUsage:    "DESTINATION",
	CustomHelpTemplate: cli.CommandHelpTemplate + `
DESTINATION:
    file name to write configuration to, if absent - STDOUT

Actual configuration is embedded defaults overlaid with configuration file
values, --default outputs embedded defaults alone.
`,
}

func dumpConfig(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	var (
		data []byte
		err  error
		kind = "actual"
	)
	if cmd.Bool("default") {
		kind = "default"
		data, err = config.Prepare()
	} else {
		if env.Cfg == nil {
			// context is not initialized when writing to STDOUT
			if env.Cfg, err = config.LoadConfiguration(cmd.String("config")); err != nil {
				return fmt.Errorf("unable to prepare configuration: %w", err)
			}
		}
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	var out io.Writer = os.Stdout
	dest := "STDOUT"
	if fname := cmd.Args().First(); len(fname) > 0 {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer f.Close()
		out, dest = f, fname
	}
	if env.Log != nil {
		if cmd.Args().Len() > 1 {
			env.Log.Warn("Too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
		}
		env.Log.Info("Writing configuration", zap.String("kind", kind), zap.String("file", dest))
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
