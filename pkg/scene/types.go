package scene

import (
	"context"
	"fmt"
	"strings"

	"capsule-bridge/pkg/position"
)

// Primitive names a built-in mesh the host editor can instantiate.
type Primitive string

const (
	Capsule  Primitive = "Capsule"
	Cube     Primitive = "Cube"
	Sphere   Primitive = "Sphere"
	Cylinder Primitive = "Cylinder"
	Plane    Primitive = "Plane"
	Quad     Primitive = "Quad"
)

var primitives = []Primitive{Capsule, Cube, Sphere, Cylinder, Plane, Quad}

// ParsePrimitive resolves a primitive name case-insensitively.
func ParsePrimitive(name string) (Primitive, error) {
	name = strings.TrimSpace(name)
	for _, p := range primitives {
		if strings.EqualFold(string(p), name) {
			return p, nil
		}
	}
	return "", fmt.Errorf("scene: unknown primitive %q", name)
}

// Object is a scene object created by a host.
type Object struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Primitive Primitive        `json:"primitive"`
	Position  position.Vector3 `json:"position"`
}

// Creator instantiates primitives in a host scene. Implementations are called
// from the main-thread queue only.
type Creator interface {
	CreatePrimitive(ctx context.Context, cmd Command) (*Object, error)
}

// Receiver is the host side of the bridge boundary. Commands arrive as the
// msgpack payload produced by Command.Encode and are decoded by the host.
type Receiver interface {
	Receive(ctx context.Context, payload []byte) (*Object, error)
}

// Selection exposes the host's active selection.
type Selection interface {
	ActiveObject() (*Object, bool)
}

// Host is a scene that accepts encoded commands, creates objects and reports
// its selection.
type Host interface {
	Creator
	Receiver
	Selection
	Objects() []Object
}
