package methods

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// yamlNode parses a YAML snippet into a node for UnmarshalParameters
// tests, mirroring how the election loader hands parameters to units.
func yamlNode(t *testing.T, src string) yaml.Node {
	t.Helper()

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &node))
	return node
}
