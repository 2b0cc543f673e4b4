package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capsule-bridge/internal/config"
	"capsule-bridge/internal/svc"
)

func newServiceContext(t *testing.T) *svc.ServiceContext {
	t.Helper()
	sc, err := svc.NewServiceContext(config.Config{Env: "test", QueueCapacity: 4})
	require.NoError(t, err)
	return sc
}

func TestRunCreatesAndPrintsActiveObject(t *testing.T) {
	sc := newServiceContext(t)
	var buf bytes.Buffer

	ok, err := run(context.Background(), sc, "1 2 3", &buf)
	require.NoError(t, err)
	require.True(t, ok)

	var out struct {
		Reply struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		} `json:"reply"`
		Active *struct {
			Name     string             `json:"name"`
			Position map[string]float64 `json:"position"`
		} `json:"active"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.True(t, out.Reply.Success)
	assert.Equal(t, "Creating Capsule at 1, 2, 3", out.Reply.Message)
	require.NotNil(t, out.Active)
	assert.Equal(t, "Capsule", out.Active.Name)
	assert.Equal(t, map[string]float64{"x": 1, "y": 2, "z": 3}, out.Active.Position)
}

func TestRunReportsFailure(t *testing.T) {
	sc := newServiceContext(t)
	var buf bytes.Buffer

	ok, err := run(context.Background(), sc, "", &buf)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "Missing required 'position' string")
	assert.NotContains(t, buf.String(), `"active"`)
	assert.Empty(t, sc.DefaultHost.Objects())
}
