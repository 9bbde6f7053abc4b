package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"smart-home-mock/config"
	"smart-home-mock/internal/application"
	"smart-home-mock/internal/catalog"
	"smart-home-mock/internal/domain"
	"smart-home-mock/internal/validation"
)

// invokeFile handles the request stored at path, or on stdin for "-", and
// writes the response to w.
func invokeFile(ctx context.Context, cfg *config.Config, path string, w io.Writer, logger *slog.Logger) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening event: %w", err)
		}
		defer f.Close()
		r = f
	}
	return invoke(ctx, cfg, r, w, logger)
}

func invoke(ctx context.Context, cfg *config.Config, r io.Reader, w io.Writer, logger *slog.Logger) error {
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	var req domain.Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return fmt.Errorf("%w: decoding event: %w", application.ErrMalformedRequest, err)
	}

	handler := application.NewHandler(cat, validation.New(), nil, logger)
	resp, err := handler.Handle(ctx, &req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}
