package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	autoerrors "github.com/matzehuels/autolayout/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, exitOK},
		{"interrupted", fmt.Errorf("layout: %w", context.Canceled), exitInterrupted},
		{"invalid diagram", fmt.Errorf("load diagram d.json: %w", autoerrors.New(autoerrors.ErrCodeInvalidDiagram, "duplicate node id")), exitInvalidData},
		{"bad config", autoerrors.New(autoerrors.ErrCodeInvalidConfig, "unknown key"), exitInvalidData},
		{"missing config file", autoerrors.New(autoerrors.ErrCodeFileNotFound, "config file x"), exitInvalidData},
		{"cache down", autoerrors.New(autoerrors.ErrCodeCache, "connect to redis"), exitFailure},
		{"plain", errors.New("write output: disk full"), exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
