package mcp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/aiready/aiready/internal/adapters/inbound/mcp"
)

func TestNewServer(t *testing.T) {
	s := mcpadapter.NewServer(".", nil)
	require.NotNil(t, s)
}

func TestServerHasTools(t *testing.T) {
	s := mcpadapter.NewServer(".", nil)
	require.NotNil(t, s)

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"aiready_scan",
		"aiready_check_file",
		"aiready_check_name",
		"aiready_similarity",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools), "should have exactly %d tools", len(expectedTools))
}
