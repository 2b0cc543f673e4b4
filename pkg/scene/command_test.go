package scene

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"capsule-bridge/pkg/position"
)

func TestCommandEncodeDecode(t *testing.T) {
	cmd := NewCreatePrimitive(Capsule, "", position.Vector3{X: 1.5, Y: -2, Z: math.Copysign(0, -1)}, true)
	assert.Equal(t, "Capsule", cmd.Name, "empty name defaults to the primitive name")

	data, err := cmd.Encode()
	require.NoError(t, err)

	got, err := DecodeCommand(data)
	require.NoError(t, err)
	assert.Equal(t, cmd, got)
	assert.True(t, math.Signbit(got.Position.Z), "negative zero survives the wire")
}

func TestCommandValidate(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{name: "unknown op", cmd: Command{Op: "delete", Primitive: Capsule, Name: "x"}, want: "unsupported op"},
		{name: "unknown primitive", cmd: Command{Op: OpCreatePrimitive, Primitive: "Torus", Name: "x"}, want: "unknown primitive"},
		{name: "blank name", cmd: Command{Op: OpCreatePrimitive, Primitive: Capsule, Name: " "}, want: "name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			_, err = tt.cmd.Encode()
			require.Error(t, err)
		})
	}
}

func TestDecodeCommandRejectsGarbage(t *testing.T) {
	_, err := DecodeCommand([]byte{0xc1})
	require.Error(t, err)

	data, err := msgpack.Marshal(map[string]any{"op": "explode"})
	require.NoError(t, err)
	_, err = DecodeCommand(data)
	require.Error(t, err)
}

type recordingCreator struct{ got []Command }

func (r *recordingCreator) CreatePrimitive(_ context.Context, cmd Command) (*Object, error) {
	r.got = append(r.got, cmd)
	return &Object{ID: int64(len(r.got)), Name: cmd.Name, Primitive: cmd.Primitive, Position: cmd.Position}, nil
}

func TestDispatch(t *testing.T) {
	cmd := NewCreatePrimitive(Capsule, "Pill", position.Vector3{X: 3}, false)
	payload, err := cmd.Encode()
	require.NoError(t, err)

	rec := &recordingCreator{}
	obj, err := Dispatch(context.Background(), rec, payload)
	require.NoError(t, err)
	assert.Equal(t, []Command{cmd}, rec.got)
	assert.Equal(t, "Pill", obj.Name)

	_, err = Dispatch(context.Background(), rec, []byte("not msgpack"))
	require.Error(t, err)
	assert.Len(t, rec.got, 1, "undecodable payloads never reach the creator")
}

func TestParsePrimitive(t *testing.T) {
	p, err := ParsePrimitive(" capsule ")
	require.NoError(t, err)
	assert.Equal(t, Capsule, p)

	_, err = ParsePrimitive("torus")
	require.Error(t, err)
}
