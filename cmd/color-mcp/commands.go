package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/ironsheep/color-tools-mcp/internal/colorspace"
	"github.com/ironsheep/color-tools-mcp/internal/config"
	"github.com/ironsheep/color-tools-mcp/internal/extract"
	"github.com/ironsheep/color-tools-mcp/internal/imaging"
	"github.com/ironsheep/color-tools-mcp/internal/server"
)

// setup loads configuration and builds the stderr logger. stdout is reserved
// for protocol and command output.
func setup(c *cli.Context) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))
	return cfg, logger, nil
}

func printJSON(c *cli.Context, v interface{}) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "run the MCP server on stdin/stdout (default)",
		Action: serveAction,
	}
}

func serveAction(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	logger.Info("starting color tools server",
		"version", Version,
		"built", BuildTime,
		"commit", GitCommit,
		"workers", cfg.Worker.Workers)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	defer srv.Close()

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "print the palette of an image",
		ArgsUsage: "<image>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "maximum colors (default from config)"},
			&cli.IntFlag{Name: "sample-rate", Usage: "read every Nth pixel (default by image size)"},
			&cli.StringFlag{Name: "region", Usage: "named region such as center or top-left"},
			&cli.IntFlag{Name: "max-dimension", Usage: "downscale limit in pixels, negative disables (default from config)"},
			&cli.BoolFlag{Name: "dominant", Usage: "print only the most frequent color"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("extract needs exactly one image path")
			}
			cfg, logger, err := setup(c)
			if err != nil {
				return err
			}

			maxDim := cfg.Extract.MaxDimension
			if c.IsSet("max-dimension") {
				maxDim = c.Int("max-dimension")
			}
			path := c.Args().First()
			buf, err := imaging.LoadPixels(imaging.NewImageCache(), path, imaging.ExtractionSource{
				NamedRegion:  c.String("region"),
				MaxDimension: maxDim,
			})
			if err != nil {
				return err
			}

			opts := extract.Options{SampleRate: c.Int("sample-rate"), Limit: cfg.Extract.Limit}
			if c.IsSet("limit") {
				opts.Limit = c.Int("limit")
			}
			logger.Debug("extracting", "path", path, "width", buf.Width, "height", buf.Height)

			if c.Bool("dominant") {
				color, ok, err := extract.Dominant(buf, opts)
				if err != nil {
					return err
				}
				if !ok {
					return printJSON(c, nil)
				}
				return printJSON(c, color)
			}

			colors, err := extract.Extract(buf, opts)
			if err != nil {
				return err
			}
			return printJSON(c, colors)
		},
	}
}

func schemesCommand() *cli.Command {
	return &cli.Command{
		Name:      "schemes",
		Usage:     "print the color schemes of a base color",
		ArgsUsage: "[hex]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "steps", Usage: "monochromatic palette size (default from config)"},
			&cli.IntFlag{Name: "count", Usage: "analogous palette size (default from config)"},
		},
		Action: func(c *cli.Context) error {
			cfg, _, err := setup(c)
			if err != nil {
				return err
			}
			hex := colorspace.DefaultBaseColor
			if c.NArg() > 0 {
				hex = c.Args().First()
			}

			gen := cfg.Generator()
			if c.IsSet("steps") {
				gen.Steps = c.Int("steps")
			}
			if c.IsSet("count") {
				gen.Count = c.Int("count")
			}
			schemes, err := gen.Generate(hex)
			if err != nil {
				return err
			}
			return printJSON(c, schemes)
		},
	}
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "print a hex color as hex, rgb() and hsl()",
		ArgsUsage: "<hex>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "print only one notation: hex, rgb or hsl"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("convert needs exactly one color")
			}
			result, err := colorspace.ColorResultFromHex(c.Args().First())
			if err != nil {
				return err
			}
			if c.IsSet("format") {
				f, err := colorspace.ParseFormat(c.String("format"))
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(c.App.Writer, result.Value(f))
				return err
			}
			return printJSON(c, result)
		},
	}
}

func pickCommand() *cli.Command {
	return &cli.Command{
		Name:      "pick",
		Usage:     "print the color of one pixel",
		ArgsUsage: "<image> <x> <y>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 3 {
				return errors.New("pick needs an image path and x y coordinates")
			}
			x, err := strconv.Atoi(c.Args().Get(1))
			if err != nil {
				return fmt.Errorf("invalid x: %w", err)
			}
			y, err := strconv.Atoi(c.Args().Get(2))
			if err != nil {
				return fmt.Errorf("invalid y: %w", err)
			}

			img, err := imaging.NewImageCache().Load(c.Args().First())
			if err != nil {
				return err
			}
			picked, err := imaging.PickColor(img, x, y)
			if err != nil {
				return err
			}
			return printJSON(c, picked)
		},
	}
}
