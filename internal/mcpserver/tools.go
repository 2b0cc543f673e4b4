package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	capsulepkg "capsule-bridge/pkg/capsule"
	"capsule-bridge/pkg/position"
)

// GenerateCapsuleInput is the MCP tool input for generate_capsule.
type GenerateCapsuleInput struct {
	Position string `json:"position" jsonschema:"position as 'x,y,z', 'x y z' or tab separated"`
}

// GenerateCapsuleResult mirrors the bridge reply envelope.
type GenerateCapsuleResult struct {
	Success           bool              `json:"success" jsonschema:"whether the capsule was scheduled"`
	Message           string            `json:"message" jsonschema:"human readable outcome"`
	RequestedPosition *position.Vector3 `json:"requestedPosition,omitempty" jsonschema:"parsed position on success"`
}

// GenerateCapsuleTool defines the MCP tool schema for generate_capsule.
func GenerateCapsuleTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        capsulepkg.CommandName,
		Description: "Create a Capsule object at the given position string. Accepted formats: \"x,y,z\", \"x y z\", tabs allowed as separators.",
	}
}

// GenerateCapsuleHandler forwards the tool call to the capsule command handler.
// Bridge failures are reported in the result, not as protocol errors.
func GenerateCapsuleHandler(h *capsulepkg.Handler) mcp.ToolHandlerFor[GenerateCapsuleInput, GenerateCapsuleResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenerateCapsuleInput) (*mcp.CallToolResult, GenerateCapsuleResult, error) {
		resp := h.HandleCommand(ctx, map[string]any{"position": input.Position})
		result := GenerateCapsuleResult{Success: resp.Success, Message: resp.Message}
		if data, ok := resp.Data.(capsulepkg.Result); ok {
			pos := data.RequestedPosition
			result.RequestedPosition = &pos
		}
		return nil, result, nil
	}
}
