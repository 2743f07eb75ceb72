package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func (a *app) hideCmd() *cobra.Command {
	var message, file, output string
	cmd := &cobra.Command{
		Use:   "hide <cover image>",
		Short: "Hide a payload in the pixels of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cover, format, err := loadImage(args[0])
			if err != nil {
				return err
			}
			payload, err := readPayload(message, file)
			if err != nil {
				return err
			}
			s, err := a.codec()
			if err != nil {
				return err
			}
			marked, err := s.HideInImage(cmd.Context(), cover, payload)
			if err != nil {
				return err
			}
			log.Info().
				Str("cover", args[0]).
				Str("format", format).
				Int("bytes", len(payload)).
				Int("capacity", s.Capacity(cover).TextBytes).
				Msg("payload hidden in image")
			return savePNG(output, marked)
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "payload text")
	cmd.Flags().StringVarP(&file, "file", "f", "", "payload file, - for stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "stego.png", "output PNG")
	return cmd
}

func (a *app) revealCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "reveal <stego image>",
		Short: "Read a payload hidden in the pixels of an image",
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
			payload, err := s.RevealFromImage(cmd.Context(), img)
			if err != nil {
				return err
			}
			log.Info().Int("bytes", len(payload)).Msg("payload revealed from image")
			return writePayload(a.out, output, payload)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func (a *app) hideImageCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "hide-image <cover image> <secret image>",
		Short: "Hide an image, shrunk to fit, in the pixels of another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cover, _, err := loadImage(args[0])
			if err != nil {
				return err
			}
			secret, _, err := loadImage(args[1])
			if err != nil {
				return err
			}
			s, err := a.codec()
			if err != nil {
				return err
			}
			marked, res, err := s.HideImage(cmd.Context(), cover, secret)
			if err != nil {
				return err
			}
			ev := log.Info()
			if res.Width != res.SourceWidth || res.Height != res.SourceHeight {
				ev = log.Warn()
			}
			ev.
				Int("source_width", res.SourceWidth).
				Int("source_height", res.SourceHeight).
				Int("width", res.Width).
				Int("height", res.Height).
				Str("format", res.Format).
				Int("serialized", res.Serialized).
				Int("compressed", res.Compressed).
				Msg("secret image hidden")
			return savePNG(output, marked)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "stego.png", "output PNG")
	return cmd
}

func (a *app) revealImageCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "reveal-image <stego image>",
		Short: "Recover an image hidden with hide-image",
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
			secret, res, err := s.RevealImage(cmd.Context(), img)
			if err != nil {
				return err
			}
			log.Info().
				Int("width", res.Width).
				Int("height", res.Height).
				Str("format", res.Format).
				Int("serialized", res.Serialized).
				Msg("secret image revealed")
			return savePNG(output, secret)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "secret.png", "output PNG")
	return cmd
}
