package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_HasAddrFlag(t *testing.T) {
	flag := serveCmd.Flags().Lookup("addr")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestNewAPIServer(t *testing.T) {
	t.Run("uses configured address", func(t *testing.T) {
		ts, cleanup := setupTestServices()
		defer cleanup()
		ts.settings.settings.Server.Addr = ":9090"

		server, err := newAPIServer()

		require.NoError(t, err)
		assert.Equal(t, ":9090", server.Addr())
	})

	t.Run("flag overrides address", func(t *testing.T) {
		_, cleanup := setupTestServices()
		defer cleanup()
		serveAddr = "127.0.0.1:0"

		server, err := newAPIServer()

		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:0", server.Addr())
	})

	t.Run("requires settings", func(t *testing.T) {
		_, cleanup := setupTestServices()
		defer cleanup()
		SetServices(Services{})

		_, err := newAPIServer()
		require.Error(t, err)
	})
}

func TestMCPServeCmd_HasPortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServeCmd_RequiresServices(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	SetServices(Services{})

	_, err := run("mcp", "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "enrichment service is required")
}
