//go:build unit

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoad(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("ValidDocument", func(t *testing.T) {
		content := `eth0:
  web: [5]
  db: [6]
"eth*":
  cache: 10.0.0.9
`
		path := filepath.Join(tempDir, "hosts.yml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		root, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, yaml.MappingNode, root.Kind)
		require.Len(t, root.Content, 4)
		assert.Equal(t, "eth0", root.Content[0].Value)
		assert.Equal(t, "eth*", root.Content[2].Value)
	})

	t.Run("ComplexSelectorKey", func(t *testing.T) {
		content := "? {eth0: v4}\n: {web: [5]}\n"
		path := filepath.Join(tempDir, "complex.yml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		root, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, yaml.MappingNode, root.Content[0].Kind)
	})

	t.Run("NonExistentFile", func(t *testing.T) {
		_, err := Load(filepath.Join(tempDir, "missing.yml"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		path := filepath.Join(tempDir, "broken.yml")
		require.NoError(t, os.WriteFile(path, []byte("a: [\n"), 0644))

		_, err := Load(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("TopLevelNotAMapping", func(t *testing.T) {
		path := filepath.Join(tempDir, "list.yml")
		require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0644))

		_, err := Load(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "top level must map")
	})
}
