package engine

import (
	"fmt"

	"github.com/matzehuels/autolayout/pkg/errors"
)

// Options is the configuration surface handed to the engine. Values use the
// layered-layout vocabulary; engines map what they support and ignore the rest.
type Options struct {
	Algorithm string `json:"algorithm" toml:"algorithm" yaml:"algorithm"`
	Direction string `json:"direction" toml:"direction" yaml:"direction"`
	// NodeSpacing separates nodes within a layer, in pixels.
	NodeSpacing float64 `json:"node_spacing" toml:"node_spacing" yaml:"node_spacing"`
	// LayerSpacing separates adjacent layers, in pixels.
	LayerSpacing         float64 `json:"layer_spacing" toml:"layer_spacing" yaml:"layer_spacing"`
	EdgeRouting          string  `json:"edge_routing" toml:"edge_routing" yaml:"edge_routing"`
	NodePlacement        string  `json:"node_placement" toml:"node_placement" yaml:"node_placement"`
	CrossingMinimization string  `json:"crossing_minimization" toml:"crossing_minimization" yaml:"crossing_minimization"`
	SemiInteractive      bool    `json:"semi_interactive" toml:"semi_interactive" yaml:"semi_interactive"`
	ConsiderModelOrder   string  `json:"consider_model_order" toml:"consider_model_order" yaml:"consider_model_order"`
}

// Layout vocabulary.
const (
	AlgorithmLayered = "layered"

	DirectionDown  = "DOWN"
	DirectionUp    = "UP"
	DirectionRight = "RIGHT"
	DirectionLeft  = "LEFT"

	RoutingOrthogonal = "ORTHOGONAL"
	RoutingPolyline   = "POLYLINE"
	RoutingSplines    = "SPLINES"

	PlacementBrandesKoepf = "BRANDES_KOEPF"
	CrossingLayerSweep    = "LAYER_SWEEP"

	ModelOrderNone        = "NONE"
	ModelOrderPreferNodes = "PREFER_NODES"
	ModelOrderPreferEdges = "PREFER_EDGES"
	ModelOrderNodesEdges  = "NODES_AND_EDGES"
)

// DefaultOptions returns the layered top-down configuration used by the
// diagram view: 80px between nodes, 100px between layers, orthogonal edges,
// and crossing minimization that prefers the supplied node order.
func DefaultOptions() Options {
	return Options{
		Algorithm:            AlgorithmLayered,
		Direction:            DirectionDown,
		NodeSpacing:          80,
		LayerSpacing:         100,
		EdgeRouting:          RoutingOrthogonal,
		NodePlacement:        PlacementBrandesKoepf,
		CrossingMinimization: CrossingLayerSweep,
		SemiInteractive:      true,
		ConsiderModelOrder:   ModelOrderPreferNodes,
	}
}

// Validate checks the enumerated fields and spacing.
func (o Options) Validate() error {
	switch o.Direction {
	case DirectionDown, DirectionUp, DirectionRight, DirectionLeft:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid direction: %q", o.Direction)
	}
	switch o.EdgeRouting {
	case RoutingOrthogonal, RoutingPolyline, RoutingSplines:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid edge routing: %q", o.EdgeRouting)
	}
	switch o.ConsiderModelOrder {
	case "", ModelOrderNone, ModelOrderPreferNodes, ModelOrderPreferEdges, ModelOrderNodesEdges:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid model order strategy: %q", o.ConsiderModelOrder)
	}
	if o.NodeSpacing < 0 || o.LayerSpacing < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "spacing must be non-negative")
	}
	return nil
}

// KeyString returns a compact representation suitable for cache keys and logs.
func (o Options) KeyString() string {
	return fmt.Sprintf("%s/%s/%g/%g/%s/%s/%s/%t/%s",
		o.Algorithm, o.Direction, o.NodeSpacing, o.LayerSpacing, o.EdgeRouting,
		o.NodePlacement, o.CrossingMinimization, o.SemiInteractive, o.ConsiderModelOrder)
}
