package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	stego "github.com/yyyoichi/stego_zero"
	"github.com/yyyoichi/stego_zero/internal/config"
	"github.com/yyyoichi/stego_zero/internal/raster"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("stego failed")
	}
}

// app carries the resolved settings of one invocation.
type app struct {
	conf config.Config
	out  io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{out: stdout}
	var (
		configPath string
		logLevel   string
		format     string
		kernel     string
		level      int
		ecc        string
		terminator bool
		workers    int
		retries    int
	)

	root := &cobra.Command{
		Use:           "stego",
		Short:         "Hide text or images inside text and images",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("log-level") {
				conf.LogLevel = logLevel
			}
			if flags.Changed("format") {
				conf.Format = format
			}
			if flags.Changed("kernel") {
				conf.Kernel = kernel
			}
			if flags.Changed("level") {
				conf.Level = level
			}
			if flags.Changed("ecc") {
				conf.ECC = ecc
			}
			if flags.Changed("terminator") {
				conf.Terminator = terminator
			}
			if flags.Changed("workers") {
				conf.Workers = workers
			}
			if flags.Changed("retries") {
				conf.Retries = retries
			}
			if err := conf.Validate(); err != nil {
				return err
			}
			lvl, _ := zerolog.ParseLevel(conf.LogLevel)
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(lvl).With().Timestamp().Logger()
			a.conf = conf
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML file with default settings")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&format, "format", "bmp", "secret image serialization (bmp, png, qoi)")
	pf.StringVar(&kernel, "kernel", "catmullrom", "resampling kernel (catmullrom, bilinear, approxbilinear, nearest)")
	pf.IntVar(&level, "level", 19, "zstd compression level (1-22)")
	pf.StringVar(&ecc, "ecc", "none", "error correction (none, golay)")
	pf.BoolVar(&terminator, "terminator", true, "end zero-width marks with a terminator")
	pf.IntVar(&workers, "workers", 0, "goroutines used for packing (default: number of CPUs)")
	pf.IntVar(&retries, "retries", 0, "extra attempts with a smaller secret image when it does not fit")

	root.AddCommand(
		a.hideTextCmd(),
		a.revealTextCmd(),
		a.hideCmd(),
		a.revealCmd(),
		a.hideImageCmd(),
		a.revealImageCmd(),
		a.capacityCmd(),
		a.inspectCmd(),
	)
	return root
}

// options converts the resolved settings into codec options.
func (a *app) options() ([]stego.Option, error) {
	f, err := raster.ParseFormat(a.conf.Format)
	if err != nil {
		return nil, err
	}
	k, err := raster.ParseKernel(a.conf.Kernel)
	if err != nil {
		return nil, err
	}
	opts := []stego.Option{
		stego.WithFormat(f),
		stego.WithKernel(k),
		stego.WithCompressionLevel(a.conf.Level),
		stego.WithTerminator(a.conf.Terminator),
		stego.WithWorkers(a.conf.Workers),
		stego.WithRetries(a.conf.Retries),
	}
	switch a.conf.ECC {
	case "none", "":
	case "golay":
		opts = append(opts, stego.WithGolay())
	default:
		return nil, fmt.Errorf("%w: ecc %q", config.ErrInvalid, a.conf.ECC)
	}
	return opts, nil
}

func (a *app) codec() (*stego.Stego, error) {
	opts, err := a.options()
	if err != nil {
		return nil, err
	}
	return stego.New(opts...)
}
