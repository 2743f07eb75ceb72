package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yyyoichi/stego_zero/textmark"
)

func (a *app) hideTextCmd() *cobra.Command {
	var message, file, coverPath, output string
	cmd := &cobra.Command{
		Use:   "hide-text [cover text]",
		Short: "Append a payload to text as zero-width characters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cover string
			switch {
			case len(args) == 1:
				cover = args[0]
			case coverPath != "":
				data, err := os.ReadFile(coverPath)
				if err != nil {
					return err
				}
				cover = string(data)
			}
			payload, err := readPayload(message, file)
			if err != nil {
				return err
			}
			s, err := a.codec()
			if err != nil {
				return err
			}
			hidden := s.HideText(cover, payload)
			log.Info().Int("bytes", len(payload)).Int("marks", textmark.Count(hidden)).Msg("payload hidden in text")
			return writePayload(a.out, output, []byte(hidden))
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "payload text")
	cmd.Flags().StringVarP(&file, "file", "f", "", "payload file, - for stdin")
	cmd.Flags().StringVar(&coverPath, "cover-file", "", "read the cover text from a file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func (a *app) revealTextCmd() *cobra.Command {
	var input, output string
	var visible bool
	cmd := &cobra.Command{
		Use:   "reveal-text [stego text]",
		Short: "Read a payload hidden in text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var hidden string
			if len(args) == 1 {
				hidden = args[0]
			} else {
				data, err := readPayload("", input)
				if err != nil {
					return err
				}
				hidden = string(data)
			}
			if visible {
				return writePayload(a.out, output, []byte(textmark.Visible(hidden)))
			}
			s, err := a.codec()
			if err != nil {
				return err
			}
			payload, err := s.RevealText(hidden)
			if err != nil {
				return err
			}
			log.Info().Int("bytes", len(payload)).Msg("payload revealed from text")
			return writePayload(a.out, output, payload)
		},
	}
	cmd.Flags().StringVarP(&input, "file", "f", "-", "stego text file, - for stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&visible, "visible", false, "print the cover text without the marks instead")
	return cmd
}
