package capsule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"capsule-bridge/pkg/mainthread"
	"capsule-bridge/pkg/position"
	"capsule-bridge/pkg/response"
	"capsule-bridge/pkg/scene"
)

// CommandName is the bridge command served by Handler.
const CommandName = "generate_capsule"

const missingPositionMessage = "Missing required 'position' string. Expected formats: 'x,y,z' or 'x y z'."

// Scheduler defers work onto the host's main thread.
type Scheduler interface {
	Defer(fn mainthread.Task) error
}

// Result is the success payload of generate_capsule.
type Result struct {
	RequestedPosition position.Vector3 `json:"requestedPosition"`
}

// Handler creates a capsule at a position parsed from the "position" param.
// The object is created later on the scheduler; the reply only acknowledges
// the request.
type Handler struct {
	cfg    *Config
	parser position.Parser
	sched  Scheduler
	host   scene.Receiver
}

// NewHandler wires a handler. A nil cfg uses DefaultConfig.
func NewHandler(cfg *Config, sched Scheduler, host scene.Receiver) (*Handler, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, errors.New("capsule: scheduler is required")
	}
	if host == nil {
		return nil, errors.New("capsule: scene host is required")
	}
	return &Handler{
		cfg:    cfg,
		parser: position.Parser{Precision: cfg.Precision},
		sched:  sched,
		host:   host,
	}, nil
}

// HandleCommand parses params["position"] and schedules creation. It never
// panics; every failure is returned as an error reply.
func (h *Handler) HandleCommand(ctx context.Context, params map[string]any) (resp response.Response) {
	defer func() {
		if r := recover(); r != nil {
			logx.WithContext(ctx).Errorf("[%s] Error: %v", CommandName, r)
			resp = response.Error(fmt.Sprintf("Internal error generating capsule: %v", r))
		}
	}()

	raw := positionParam(params)
	if strings.TrimSpace(raw) == "" {
		return response.Error(missingPositionMessage)
	}

	parsed, err := h.parser.Parse(raw)
	if err != nil {
		return response.Error(fmt.Sprintf("Invalid position string: %v", err))
	}
	pos := parsed.Decimal(h.parser.Precision)

	cmd := scene.NewCreatePrimitive(scene.Capsule, h.cfg.ObjectName, pos, h.cfg.Select())
	if err := h.schedule(cmd); err != nil {
		logx.WithContext(ctx).Errorf("[%s] Error: %v", CommandName, err)
		return response.Error(fmt.Sprintf("Internal error generating capsule: %v", err))
	}

	return response.Success(
		fmt.Sprintf("Creating %s at %s", scene.Capsule, pos.Summary()),
		Result{RequestedPosition: pos},
	)
}

// schedule encodes cmd and defers its delivery to the host. Host failures are
// logged on the main thread and never reach the caller.
func (h *Handler) schedule(cmd scene.Command) error {
	payload, err := cmd.Encode()
	if err != nil {
		return err
	}
	return h.sched.Defer(func(ctx context.Context) {
		if _, err := h.host.Receive(ctx, payload); err != nil {
			logx.WithContext(ctx).Errorf("[%s] Failed to create capsule: %v", CommandName, err)
		}
	})
}

// positionParam extracts params["position"] as text. Strings pass through,
// numbers and booleans are rendered the way they appeared in the request, an
// array is joined with commas so [1, 2, 3] reads as "1,2,3", and anything else
// is rendered as JSON so the parser can report what was wrong with it.
func positionParam(params map[string]any) string {
	v, ok := params["position"]
	if !ok || v == nil {
		return ""
	}
	if items, ok := v.([]any); ok {
		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, valueText(item))
		}
		return strings.Join(parts, ",")
	}
	return valueText(v)
}

func valueText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(t)
	}
	if data, err := json.Marshal(v); err == nil {
		return string(data)
	}
	return fmt.Sprint(v)
}
