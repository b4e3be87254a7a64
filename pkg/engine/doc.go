// Package engine defines the boundary to an external layered-graph layout
// engine.
//
// The layout subsystem never looks inside the engine. It sends a normalized
// [Graph] (sized boxes with four side-locked ports each, plain edges and a
// fixed set of [Options]) and receives a [Result] with node positions and,
// for some subset of edges, routing records.
//
// # Contract
//
//   - Every graph node SHOULD get a position in the result.
//   - Edge routes are optional per edge. A route with no sections counts as
//     no route.
//   - Any error is treated as "routing unavailable"; callers do not retry.
//
// # Implementations
//
//   - [Func]: adapts a plain function, mostly for tests
//   - [CachingEngine]: memoizes another engine through a [cache.Cache]
//   - engine/dot: Graphviz dot layered layout
//
// Engines are passed around as explicit handles; there is no global instance.
package engine
