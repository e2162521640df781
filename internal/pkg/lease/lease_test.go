//go:build unit

package lease

import (
	"net/netip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("ValidLines", func(t *testing.T) {
		input := `1724690000 52:54:00:12:34:56 192.168.1.50 laptop 01:52:54:00:12:34:56
1724690001 52:54:00:ab:cd:ef 192.168.1.51 phone *
`
		entries, err := Parse(strings.NewReader(input), "test")
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, "laptop", entries[0].Name)
		assert.Equal(t, netip.MustParseAddr("192.168.1.50"), entries[0].IP)
		require.NotNil(t, entries[0].MAC)
		assert.Equal(t, "52:54:00:12:34:56", entries[0].MAC.String())
		assert.Equal(t, "phone", entries[1].Name)
	})

	t.Run("MalformedLinesSkipped", func(t *testing.T) {
		input := `not-a-timestamp 52:54:00:12:34:56 192.168.1.50 laptop
1724690000 not-a-mac 192.168.1.50 laptop
1724690000 52:54:00:12:34:56 not-an-ip laptop
too short
1724690000 52:54:00:12:34:56 192.168.1.50 ok-host
`
		entries, err := Parse(strings.NewReader(input), "test")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "ok-host", entries[0].Name)
	})

	t.Run("PlaceholderHostnameDropped", func(t *testing.T) {
		input := "1724690000 52:54:00:12:34:56 192.168.1.50 *\n"
		entries, err := Parse(strings.NewReader(input), "test")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("CommentsAndBlankLines", func(t *testing.T) {
		input := "# comment\n\n1724690000 52:54:00:12:34:56 fd00::5 v6host\n"
		entries, err := Parse(strings.NewReader(input), "test")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, netip.MustParseAddr("fd00::5"), entries[0].IP)
	})
}

func TestParseFile(t *testing.T) {
	_, err := ParseFile("/nonexistent/dnsmasq.leases")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open lease file")
}
