package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagsSuggestCmd_HasLimitFlag(t *testing.T) {
	flag := tagsSuggestCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestTagsSuggestCmd_RequiresText(t *testing.T) {
	_, err := run("tags", "suggest")
	require.Error(t, err)
}

func TestTagsSuggestCmd_PrintsTags(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := run("tags", "suggest", "--limit", "5", "durga", "puja")

	require.NoError(t, err)
	assert.Equal(t, "durga puja", ts.suggest.gotText)
	assert.Equal(t, 5, ts.suggest.gotLimit)
	assert.Equal(t, "Durga Puja\nKali Puja\n", out)
}

func TestTagsSuggestCmd_NoMatches(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.suggest.tags = nil

	out, err := run("tags", "suggest", "zzz")

	require.NoError(t, err)
	assert.Equal(t, 10, ts.suggest.gotLimit)
	assert.Contains(t, out, "No matching tags.")
}
