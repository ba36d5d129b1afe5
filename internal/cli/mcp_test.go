package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandHasMCPFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("mcp")
	require.NotNil(t, flag, "root command must have --mcp persistent flag")
	assert.Equal(t, "false", flag.DefValue)
}

func TestNewMCPServerRegistersGenerateContextTool(t *testing.T) {
	s := newMCPServer()
	require.NotNil(t, s)
	require.NotNil(t, s.inner)
}
