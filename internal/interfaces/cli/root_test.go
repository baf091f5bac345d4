package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCmd(args ...string) (string, error) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootHasSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["recommend"])
}

func TestMigrateHasLifecycleSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	migrate := findCommand(t, cmd, "migrate")
	names := make(map[string]bool)
	for _, sub := range migrate.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["up"])
	assert.True(t, names["down"])
	assert.True(t, names["status"])
}

func TestRecommendRejectsMalformedClaimID(t *testing.T) {
	_, err := executeCmd("recommend", "not-a-uuid", "--tenant", "local-100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid UUID")
}

func TestRecommendRequiresTenant(t *testing.T) {
	_, err := executeCmd("recommend", "11111111-1111-1111-1111-111111111111")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--tenant is required")
}

func TestMigrateUpMissingConfigFile(t *testing.T) {
	_, err := executeCmd("migrate", "up", "--config", "does/not/exist.yaml")
	require.Error(t, err)
}

func TestVersionFlag(t *testing.T) {
	out, err := executeCmd("--version")
	require.NoError(t, err)
	assert.Contains(t, out, "unioniq")
}

func findCommand(t *testing.T, root *cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, sub := range root.Commands() {
		if sub.Name() == name {
			return sub
		}
	}
	t.Fatalf("command %q not registered", name)
	return nil
}
