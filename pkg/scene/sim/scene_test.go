package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capsule-bridge/pkg/position"
	"capsule-bridge/pkg/scene"
)

func TestScene_CreateAndSelect(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, ok := s.ActiveObject()
	assert.False(t, ok, "new scene has no selection")

	obj, err := s.CreatePrimitive(ctx, scene.NewCreatePrimitive(scene.Capsule, "Capsule", position.Vector3{X: 1, Y: 2, Z: 3}, true))
	require.NoError(t, err)
	assert.Equal(t, int64(1), obj.ID)
	assert.Equal(t, position.Vector3{X: 1, Y: 2, Z: 3}, obj.Position)

	active, ok := s.ActiveObject()
	require.True(t, ok)
	assert.Equal(t, obj.ID, active.ID)

	// Creating without select leaves the previous selection in place.
	second, err := s.CreatePrimitive(ctx, scene.NewCreatePrimitive(scene.Cube, "", position.Vector3{}, false))
	require.NoError(t, err)
	assert.Equal(t, "Cube", second.Name)

	active, ok = s.ActiveObject()
	require.True(t, ok)
	assert.Equal(t, obj.ID, active.ID)
	assert.Len(t, s.Objects(), 2)
}

func TestScene_ReceiveDecodesPayload(t *testing.T) {
	s := New()
	payload, err := scene.NewCreatePrimitive(scene.Capsule, "Pill", position.Vector3{X: -1, Y: 0.5, Z: 2}, true).Encode()
	require.NoError(t, err)

	obj, err := s.Receive(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, "Pill", obj.Name)
	assert.Equal(t, scene.Capsule, obj.Primitive)
	assert.Equal(t, position.Vector3{X: -1, Y: 0.5, Z: 2}, obj.Position)

	active, ok := s.ActiveObject()
	require.True(t, ok)
	assert.Equal(t, obj.ID, active.ID)
}

func TestScene_ReceiveRejectsMalformedPayload(t *testing.T) {
	s := New()
	_, err := s.Receive(context.Background(), []byte{0xc1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sim: scene: decode command")
	assert.Empty(t, s.Objects())
}

func TestScene_MaxObjects(t *testing.T) {
	s := New()
	s.maxObjects = 1
	ctx := context.Background()
	cmd := scene.NewCreatePrimitive(scene.Capsule, "", position.Vector3{}, true)

	_, err := s.CreatePrimitive(ctx, cmd)
	require.NoError(t, err)
	_, err = s.CreatePrimitive(ctx, cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scene is full")
}

func TestScene_RejectsInvalidCommand(t *testing.T) {
	_, err := New().CreatePrimitive(context.Background(), scene.Command{Op: "noop"})
	require.Error(t, err)
}

func TestScene_ObjectsIsACopy(t *testing.T) {
	s := New()
	_, err := s.CreatePrimitive(context.Background(), scene.NewCreatePrimitive(scene.Sphere, "", position.Vector3{}, false))
	require.NoError(t, err)

	objs := s.Objects()
	objs[0].Name = "mutated"
	assert.Equal(t, "Sphere", s.Objects()[0].Name)
}

func TestRegisteredBuilder(t *testing.T) {
	cfg := &scene.Config{Hosts: map[string]*scene.HostConfig{"editor": {Type: "sim", MaxObjects: 3}}}
	require.NoError(t, cfg.Validate())
	hosts, err := cfg.BuildHosts()
	require.NoError(t, err)
	s, ok := hosts["editor"].(*Scene)
	require.True(t, ok)
	assert.Equal(t, 3, s.maxObjects)
}
