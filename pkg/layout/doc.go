// Package layout positions diagram nodes and assigns edge handles.
//
// # Overview
//
// A layout run has four stages:
//
//  1. [BuildRequest] projects nodes and edges into an [engine.Graph]: nodes
//     sorted by creation time, sized by weight, each with four side-locked
//     ports.
//  2. The [engine.Engine] computes positions and, for some edges, routes.
//  3. [ApplyPositions] and [ApplyRoutes] merge the result onto copies of the
//     input, translating engine port ids into handles.
//  4. [OptimizePorts] assigns handles to every edge the engine did not route.
//
// [Layouter.Run] wires the stages together and never fails: when the engine
// errors, the input comes back unchanged.
//
// # Fallback port optimizer
//
// For each unordered pair of endpoints, the optimizer ranks all 16
// combinations of sides by the distance between the two handle positions
// (see [RankedPairings]). The i-th edge between the pair gets the
// (i mod 16)-th best combination, so parallel and opposite edges spread over
// distinct sides instead of stacking on one line. The assignment depends only
// on node positions and edge order, so repeated runs give identical handles.
//
// # Usage
//
//	l := layout.New(dot.New(logger), layout.WithLogger(logger))
//	res := l.Run(ctx, d.Nodes, d.Edges)
//	if res.Stats.EngineFailed {
//	    // res holds the input unchanged
//	}
package layout
