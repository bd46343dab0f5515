package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ironsheep/color-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(execute(newApp(), os.Args))
}

// execute runs app and returns the process exit code. Errors are reported on
// the app's ErrWriter.
func execute(app *cli.App, args []string) int {
	if err := app.Run(args); err != nil {
		fmt.Fprintf(app.ErrWriter, "color-tools-mcp: %v\n", err)
		return 1
	}
	return 0
}

func newApp() *cli.App {
	server.Version = Version

	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(c.App.Writer, "color-tools-mcp %s\n", c.App.Version)
		fmt.Fprintf(c.App.Writer, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(c.App.Writer, "  Git commit: %s\n", GitCommit)
	}

	return &cli.App{
		Name:      "color-tools-mcp",
		ErrWriter: os.Stderr,
		Usage:     "MCP server for palette extraction and color schemes",
		Version:   Version,
		Description: "Without a command the server speaks MCP over stdin/stdout.\n" +
			"Configure it in your MCP client; logs go to stderr.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML configuration file",
				Value:   "color-mcp.yaml",
				EnvVars: []string{"COLOR_MCP_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (overrides config)",
			},
		},
		Action: serveAction,
		Commands: []*cli.Command{
			serveCommand(),
			extractCommand(),
			schemesCommand(),
			convertCommand(),
			pickCommand(),
		},
	}
}
