package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yyyoichi/stego_zero/internal/header"
	"github.com/yyyoichi/stego_zero/internal/lsbstat"
	"github.com/yyyoichi/stego_zero/internal/raster"
)

func (a *app) capacityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capacity <image>",
		Short: "Show how much an image can carry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, _, err := loadImage(args[0])
			if err != nil {
				return err
			}
			s, err := a.codec()
			if err != nil {
				return err
			}
			c := s.Capacity(img)

			wtr := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(wtr, "Mode\tSize\tSamples\tCapacity (Bytes)\tMax Secret Pixels")
			fmt.Fprintln(wtr, "----\t----\t-------\t----------------\t-----------------")
			fmt.Fprintf(wtr, "text\t%dx%d\t%d\t%d\t-\n", c.Width, c.Height, c.Samples, c.TextBytes)
			fmt.Fprintf(wtr, "image\t%dx%d\t%d\t%d\t%d\n", c.Width, c.Height, c.Samples, c.ImageBytes, c.MaxSecretPixels)
			return wtr.Flush()
		},
	}
}

func (a *app) inspectCmd() *cobra.Command {
	var window int
	cmd := &cobra.Command{
		Use:   "inspect <image>",
		Short: "Report LSB plane statistics and any image header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, _, err := loadImage(args[0])
			if err != nil {
				return err
			}
			buf := raster.FromImage(img)

			if w, h, err := header.Decode(buf.Pix); err == nil && w > 0 && h > 0 {
				fmt.Fprintf(a.out, "header: %dx%d secret image\n", w, h)
			} else {
				log.Debug().Err(err).Msg("no image header")
				fmt.Fprintln(a.out, "header: none")
			}

			wtr := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(wtr, "Range\tSamples\tOnes\tEntropy\tChi-Square\tEmbedding")
			row := func(name string, r lsbstat.Report) {
				fmt.Fprintf(wtr, "%s\t%d\t%.4f\t%.4f\t%.2f\t%.4f\n", name, r.Samples, r.OnesRatio, r.Entropy, r.ChiSquare, r.Embedding)
			}
			row("all", lsbstat.Analyze(buf.Pix, a.conf.Workers))
			if window > 0 {
				for i, r := range lsbstat.Windows(buf.Pix, window, a.conf.Workers) {
					row(fmt.Sprintf("%d-%d", i*window, i*window+r.Samples), r)
				}
			}
			return wtr.Flush()
		},
	}
	cmd.Flags().IntVar(&window, "window", 0, "also report consecutive windows of this many samples")
	return cmd
}
