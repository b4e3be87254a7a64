package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key for the result of engine on the request
	// identified by graphHash.
	LayoutKey(engine, graphHash string) string
}

// DefaultKeyer builds keys of the form "layout:<engine>:<graphHash>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(engine, graphHash string) string {
	return "layout:" + engine + ":" + graphHash
}

// ScopedKeyer prepends a fixed prefix to the keys of another Keyer, so that
// deployments sharing one Redis do not replay each other's results.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "autolayout:")
type ScopedKeyer struct {
	Inner  Keyer
	Prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return ScopedKeyer{Inner: inner, Prefix: prefix}
}

func (k ScopedKeyer) LayoutKey(engine, graphHash string) string {
	return k.Prefix + k.Inner.LayoutKey(engine, graphHash)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON hashes the JSON encoding of v. Struct fields encode in declaration
// order and map keys sorted, so equal values hash equally.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode for hash: %w", err)
	}
	return Hash(data), nil
}
