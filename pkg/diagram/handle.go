package diagram

import "fmt"

// Side is a compass side of a node box.
type Side string

const (
	North Side = "north"
	South Side = "south"
	West  Side = "west"
	East  Side = "east"
)

// Sides lists the four sides in their canonical order. Port enumeration and
// tie-breaking depend on this order.
var Sides = [4]Side{North, South, West, East}

// Valid reports whether s is one of the four compass sides.
func (s Side) Valid() bool {
	switch s {
	case North, South, West, East:
		return true
	}
	return false
}

// Role tells whether a handle is where an edge leaves or enters a node.
type Role string

const (
	RoleSource Role = "source"
	RoleTarget Role = "target"
)

// Handle is an attachment point: a side of the box plus the edge role.
type Handle struct {
	Side Side
	Role Role
}

// NewHandle returns a pointer to a handle; convenient for Edge fields.
func NewHandle(side Side, role Role) *Handle {
	return &Handle{Side: side, Role: role}
}

var (
	sideLetters = map[Side]string{North: "t", South: "b", West: "l", East: "r"}
	letterSides = map[string]Side{"t": North, "b": South, "l": West, "r": East}
	roleLetters = map[Role]string{RoleSource: "s", RoleTarget: "t"}
	letterRoles = map[string]Role{"s": RoleSource, "t": RoleTarget}
)

// ID returns the renderer's handle id, e.g. "b-s" for south/source.
func (h Handle) ID() string {
	return sideLetters[h.Side] + "-" + roleLetters[h.Role]
}

// String implements fmt.Stringer.
func (h Handle) String() string { return h.ID() }

// ParseHandle parses a renderer handle id such as "t-t" or "r-s".
func ParseHandle(id string) (Handle, error) {
	if len(id) != 3 || id[1] != '-' {
		return Handle{}, fmt.Errorf("invalid handle id %q", id)
	}
	side, ok := letterSides[id[:1]]
	if !ok {
		return Handle{}, fmt.Errorf("invalid handle side in %q", id)
	}
	role, ok := letterRoles[id[2:]]
	if !ok {
		return Handle{}, fmt.Errorf("invalid handle role in %q", id)
	}
	return Handle{Side: side, Role: role}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (h Handle) MarshalText() ([]byte, error) {
	if !h.Side.Valid() {
		return nil, fmt.Errorf("invalid handle side %q", h.Side)
	}
	if _, ok := roleLetters[h.Role]; !ok {
		return nil, fmt.Errorf("invalid handle role %q", h.Role)
	}
	return []byte(h.ID()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Handle) UnmarshalText(text []byte) error {
	parsed, err := ParseHandle(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
