package mcptool

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"voyago/models"
)

func TestConnectContinuesPastUnreachableServer(t *testing.T) {
	descriptors := []models.ToolDescriptor{
		{
			Name:    "flight-search",
			Remote:  &models.RemoteHTTP{URL: "http://127.0.0.1:1/mcp"},
			Timeout: 2 * time.Second,
		},
	}

	pool, notices := Connect(context.Background(), descriptors, zap.NewNop())
	defer pool.Close()

	assert.Empty(t, pool.Names())
	assert.Empty(t, pool.Tools())
	require.Len(t, notices, 1)
	assert.Equal(t, "flight-search", notices[0].Tool)
}

func TestConnectRejectsMalformedDescriptor(t *testing.T) {
	pool, notices := Connect(context.Background(), []models.ToolDescriptor{{Name: "no-transport"}}, zap.NewNop())
	defer pool.Close()

	require.Len(t, notices, 1)
	assert.Equal(t, "no-transport", notices[0].Tool)
}

func TestCallUnknownTool(t *testing.T) {
	pool, _ := Connect(context.Background(), nil, zap.NewNop())
	defer pool.Close()

	_, err := pool.Call(context.Background(), "flight-search__search_flights", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}

func TestSchemaToMap(t *testing.T) {
	schema := mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]any{
			"origin": map[string]any{"type": "string"},
		},
		Required: []string{"origin"},
	}

	out := schemaToMap(schema)
	assert.Equal(t, "object", out["type"])
	assert.Equal(t, []string{"origin"}, out["required"])

	empty := schemaToMap(mcp.ToolInputSchema{})
	assert.Equal(t, "object", empty["type"])
	assert.NotContains(t, empty, "properties")
}
