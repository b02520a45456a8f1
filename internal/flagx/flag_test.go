package flagx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	args := []string{"-a", "localhost:5000", "-x", "other", "-c", "conf.json"}
	got := FilterArgs(args, []string{"-c"})
	require.Equal(t, []string{"-c", "conf.json"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	args := []string{"--config=conf.json", "--other=1", "-c=short.json"}
	got := FilterArgs(args, []string{"--config", "-c"})
	require.Equal(t, []string{"--config=conf.json", "-c=short.json"}, got)
}

func TestFilterArgs_FlagWithoutValue(t *testing.T) {
	args := []string{"-v", "-c"}
	got := FilterArgs(args, []string{"-c"})
	require.Equal(t, []string{"-c"}, got)
}

func TestFilterArgs_Empty(t *testing.T) {
	got := FilterArgs(nil, []string{"-c"})
	require.NotNil(t, got)
	require.Empty(t, got)
}
