package errors

import (
	"strings"
	"unicode"

	"github.com/matzehuels/autolayout/pkg/diagram"
)

// maxIDLength bounds node and edge ids accepted from callers.
const maxIDLength = 256

// ValidateID validates a node or edge identifier.
// kind is used in the message ("node", "edge").
func ValidateID(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidDiagram, "%s id cannot be empty", kind)
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidDiagram, "%s id too long (max %d characters)", kind, maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDiagram, "%s id %q contains control characters", kind, id)
		}
	}
	return nil
}

// ValidateDiagram checks the preconditions of a layout call: node ids and
// edge ids are non-empty and unique.
//
// Edges referencing unknown nodes are valid. They pass through layout
// untouched, so rejecting them here would be stricter than the core.
func ValidateDiagram(d diagram.Diagram) error {
	nodes := make(map[string]struct{}, len(d.Nodes))
	for _, n := range d.Nodes {
		if err := ValidateID("node", n.ID); err != nil {
			return err
		}
		if _, dup := nodes[n.ID]; dup {
			return New(ErrCodeInvalidDiagram, "duplicate node id: %q", n.ID)
		}
		nodes[n.ID] = struct{}{}
	}

	edges := make(map[string]struct{}, len(d.Edges))
	for _, e := range d.Edges {
		if err := ValidateID("edge", e.ID); err != nil {
			return err
		}
		if _, dup := edges[e.ID]; dup {
			return New(ErrCodeInvalidDiagram, "duplicate edge id: %q", e.ID)
		}
		edges[e.ID] = struct{}{}
	}
	return nil
}
