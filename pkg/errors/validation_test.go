package errors

import (
	"strings"
	"testing"

	"github.com/matzehuels/autolayout/pkg/diagram"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "n1", false},
		{"valid uuid", "0b7f8a52-3d0e-4c1c-9a57-2b3a1c0f9e11", false},
		{"valid with spaces", "note 42", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("x", 300), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID("node", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDiagram) {
				t.Errorf("ValidateID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidDiagram)
			}
		})
	}
}

func TestValidateDiagram(t *testing.T) {
	tests := []struct {
		name    string
		d       diagram.Diagram
		wantErr string
	}{
		{
			name: "valid",
			d: diagram.Diagram{
				Nodes: []diagram.Node{{ID: "a"}, {ID: "b"}},
				Edges: []diagram.Edge{{ID: "e1", Source: "a", Target: "b"}},
			},
		},
		{
			name: "dangling edge allowed",
			d: diagram.Diagram{
				Nodes: []diagram.Node{{ID: "a"}},
				Edges: []diagram.Edge{{ID: "e1", Source: "a", Target: "ghost"}},
			},
		},
		{
			name:    "duplicate node",
			d:       diagram.Diagram{Nodes: []diagram.Node{{ID: "a"}, {ID: "a"}}},
			wantErr: "duplicate node id",
		},
		{
			name: "duplicate edge",
			d: diagram.Diagram{
				Nodes: []diagram.Node{{ID: "a"}, {ID: "b"}},
				Edges: []diagram.Edge{
					{ID: "e1", Source: "a", Target: "b"},
					{ID: "e1", Source: "b", Target: "a"},
				},
			},
			wantErr: "duplicate edge id",
		},
		{
			name:    "empty edge id",
			d:       diagram.Diagram{Edges: []diagram.Edge{{Source: "a", Target: "b"}}},
			wantErr: "edge id cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDiagram(tt.d)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateDiagram() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateDiagram() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateDiagram() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
