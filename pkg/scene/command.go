package scene

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"capsule-bridge/pkg/position"
)

// OpCreatePrimitive is the only operation the bridge sends to a host.
const OpCreatePrimitive = "create_primitive"

// Command is the message handed from a command handler to the host executor.
// It crosses the main-thread boundary in its msgpack form so the host never
// shares memory with the caller.
type Command struct {
	Op        string           `msgpack:"op"`
	Primitive Primitive        `msgpack:"primitive"`
	Name      string           `msgpack:"name"`
	Position  position.Vector3 `msgpack:"position"`
	Select    bool             `msgpack:"select"`
}

// NewCreatePrimitive builds a create command. An empty name defaults to the
// primitive's own name.
func NewCreatePrimitive(p Primitive, name string, pos position.Vector3, selectIt bool) Command {
	name = strings.TrimSpace(name)
	if name == "" {
		name = string(p)
	}
	return Command{
		Op:        OpCreatePrimitive,
		Primitive: p,
		Name:      name,
		Position:  pos,
		Select:    selectIt,
	}
}

// Validate checks that the command can be executed by a host.
func (c Command) Validate() error {
	if c.Op != OpCreatePrimitive {
		return fmt.Errorf("scene: unsupported op %q", c.Op)
	}
	if _, err := ParsePrimitive(string(c.Primitive)); err != nil {
		return err
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("scene: object name is required")
	}
	return nil
}

// Encode serialises the command with msgpack.
func (c Command) Encode() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	data, err := msgpack.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("scene: encode command: %w", err)
	}
	return data, nil
}

// DecodeCommand parses and validates a msgpack encoded command.
func DecodeCommand(data []byte) (Command, error) {
	var c Command
	if err := msgpack.Unmarshal(data, &c); err != nil {
		return Command{}, fmt.Errorf("scene: decode command: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Command{}, err
	}
	return c, nil
}

// Dispatch decodes payload and applies it to c. DecodeCommand only accepts
// create_primitive, so every valid payload maps onto CreatePrimitive. Hosts use it to implement
// Receiver on top of their Creator.
func Dispatch(ctx context.Context, c Creator, payload []byte) (*Object, error) {
	cmd, err := DecodeCommand(payload)
	if err != nil {
		return nil, err
	}
	return c.CreatePrimitive(ctx, cmd)
}
