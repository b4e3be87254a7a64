// Package diagram defines the node-and-edge model consumed and produced by
// the auto-layout subsystem.
//
// # Core Types
//
//   - [Node]: a box with an identity, a top-left [Point] and a weight
//   - [Edge]: a directed connection with optional [Handle]s on each end
//   - [Handle]: a (side, role) attachment point on a node's boundary
//   - [Route]: path geometry produced by a layout engine
//
// # Geometry
//
// Node boxes are derived from weight rather than stored. [SizeOf] scales a
// 150x50 base box so that its area grows linearly with weight:
//
//	diagram.SizeOf(100) // {150 50}
//	diagram.SizeOf(25)  // {75 25}
//
// [PortPosition] returns the midpoint of one of the four box sides, which is
// where a handle on that side attaches.
//
// # Serialization
//
// Diagrams use a node-link JSON format that matches the diagram store:
//
//	{
//	  "nodes": [{"id": "n1", "position": {"x": 0, "y": 0}, "weight": 100, "created_at": 1700000000000}],
//	  "edges": [{"id": "e1", "source": "n1", "target": "n2", "sourceHandle": "b-s", "targetHandle": "t-t"}]
//	}
//
// Handles are written as the renderer's handle ids: a side letter (t, b, l, r)
// followed by a role letter (s, t).
package diagram
