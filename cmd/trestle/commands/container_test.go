package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainer_Subcommands(t *testing.T) {
	cmd := Container()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"create", "delete", "exec"}, names)
}

func TestContainerCreate_RequiredFlags(t *testing.T) {
	cmd := containerCreate()

	for _, name := range []string{"lease", "image"} {
		flag := cmd.Flags().Lookup(name)
		require.NotNil(t, flag, "flag %s should exist", name)
		_, required := flag.Annotations["cobra_annotation_bash_completion_one_required_flag"]
		assert.True(t, required, "flag %s should be required", name)
	}
}

func TestServerCreate_RequiredFlags(t *testing.T) {
	cmd := serverCreate()

	for _, name := range []string{"lease", "image"} {
		flag := cmd.Flags().Lookup(name)
		require.NotNil(t, flag, "flag %s should exist", name)
		_, required := flag.Annotations["cobra_annotation_bash_completion_one_required_flag"]
		assert.True(t, required, "flag %s should be required", name)
	}

	flavor := cmd.Flags().Lookup("flavor")
	require.NotNil(t, flavor)
	assert.Equal(t, "baremetal", flavor.DefValue)
}

func TestParseEnv(t *testing.T) {
	env := parseEnv([]string{"MODE=batch", "EMPTY=", "FLAG"})

	assert.Equal(t, "batch", env["MODE"])
	assert.Equal(t, "", env["EMPTY"])
	assert.Equal(t, "", env["FLAG"])
	assert.Nil(t, parseEnv(nil))
}
