package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"

	"axnav/misc"
	"axnav/reader"
	"axnav/state"
)

const sourceHelp = `
SOURCE:
    page(s) to navigate:
        single page: "[path_to_file]page.html"
        directory: "[path_to_directory]directory" - (X)HTML pages below it in natural order
        archive: "[path_to_archive]book.epub[path_in_archive]" - (X)HTML pages below archive path
`

// sourceFlags are shared by commands reading SOURCE.
func sourceFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write transcript to `FILE` instead of STDOUT"},
		&cli.StringFlag{Name: "force-zip-cp",
			Usage: "decode non UTF-8 file names in archives as `ENCODING` (IANA character set name)"},
	)
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "keyboard and pointer navigation of (X)HTML documents with speech transcript",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          openEnv,
		After:           closeEnv,
		OnUsageError:    passUsageError,
		ExitErrHandler:  logExitError,
		CommandNotFound: unknownCommand,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log everything and collect debug report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "read",
				Usage:        "Navigates page(s) replaying input script, prints speech, highlight and cues",
				OnUsageError: passUsageError,
				Action:       reader.Run,
				Flags: sourceFlags(
					&cli.StringFlag{Name: "script", Aliases: []string{"s"},
						Usage: "input `STEPS` separated by spaces or commas (" + strings.Join(reader.StepKindNames(), ", ") + "), wait:DURATION, click:ID"},
					&cli.StringFlag{Name: "fragment", Aliases: []string{"f"}, Usage: "start first page at element `ID` as if navigation followed a link"},
				),
				ArgsUsage: "SOURCE",
				CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp + `
STEPS:
    when absent - "read": start navigation and move down to the end of each page
`,
			},
			{
				Name:         "tree",
				Usage:        "Dumps classification of every node and list of navigation units",
				OnUsageError: passUsageError,
				Action:       reader.Tree,
				Flags: sourceFlags(
					&cli.BoolFlag{Name: "pointer", Aliases: []string{"p"}, Usage: "classify for pointer selection instead of keyboard navigation"},
				),
				ArgsUsage:          "SOURCE",
				CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp,
			},
			dumpConfigCommand,
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	err := newApp().Run(ctx, os.Args)
	stop()
	if err != nil {
		// log may be gone already or never opened
		if !logged {
			fmt.Fprintf(os.Stderr, "%s: %v\n", misc.GetAppName(), err)
		}
		os.Exit(1)
	}
}
