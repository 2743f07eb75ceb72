package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
)

func loadImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, format, nil
}

// savePNG writes img losslessly; any lossy format would destroy the LSB plane.
func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// readPayload returns message, or the contents of file when message is empty.
func readPayload(message, file string) ([]byte, error) {
	switch {
	case message != "" && file != "":
		return nil, errors.New("use either --message or --file")
	case message != "":
		return []byte(message), nil
	case file == "-":
		return io.ReadAll(os.Stdin)
	case file != "":
		return os.ReadFile(file)
	}
	return nil, errors.New("a payload is required: --message or --file")
}

// writePayload writes payload to path, or to w when path is empty.
func writePayload(w io.Writer, path string, payload []byte) error {
	if path == "" {
		_, err := w.Write(payload)
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}
