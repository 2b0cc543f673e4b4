package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/zeromicro/go-zero/core/logx"

	"capsule-bridge/pkg/scene"
)

func init() {
	scene.RegisterHost("sim", func(name string, cfg *scene.HostConfig) (scene.Host, error) {
		s := New()
		if cfg != nil {
			s.maxObjects = cfg.MaxObjects
		}
		return s, nil
	})
}

// Scene is an in-memory host that records created objects and the active
// selection. It stands in for the editor in the CLI, the MCP server and tests.
type Scene struct {
	mu sync.Mutex

	nextID     int64
	objects    []scene.Object
	active     int64 // 0 means nothing selected
	maxObjects int   // 0 means unlimited
}

// New constructs an empty scene.
func New() *Scene {
	return &Scene{nextID: 1}
}

// CreatePrimitive adds an object for cmd and selects it when cmd.Select is set.
func (s *Scene) CreatePrimitive(ctx context.Context, cmd scene.Command) (*scene.Object, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxObjects > 0 && len(s.objects) >= s.maxObjects {
		return nil, fmt.Errorf("sim: scene is full (%d objects)", s.maxObjects)
	}

	obj := scene.Object{
		ID:        s.nextID,
		Name:      cmd.Name,
		Primitive: cmd.Primitive,
		Position:  cmd.Position,
	}
	s.nextID++
	s.objects = append(s.objects, obj)
	if cmd.Select {
		s.active = obj.ID
	}
	logx.WithContext(ctx).Infof("[sim] created %s %q #%d at %s", obj.Primitive, obj.Name, obj.ID, obj.Position.Summary())
	return &obj, nil
}

// Receive decodes an encoded command and applies it to the scene.
func (s *Scene) Receive(ctx context.Context, payload []byte) (*scene.Object, error) {
	obj, err := scene.Dispatch(ctx, s, payload)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	return obj, nil
}

// ActiveObject returns the selected object, if any.
func (s *Scene) ActiveObject() (*scene.Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == 0 {
		return nil, false
	}
	for i := range s.objects {
		if s.objects[i].ID == s.active {
			obj := s.objects[i]
			return &obj, true
		}
	}
	return nil, false
}

// Objects returns a copy of every object in creation order.
func (s *Scene) Objects() []scene.Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]scene.Object, len(s.objects))
	copy(out, s.objects)
	return out
}
