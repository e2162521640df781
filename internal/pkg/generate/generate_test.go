//go:build unit

package generate

import (
	"bytes"
	"net/netip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gopkg.in/yaml.v3"

	"hostgen/internal/mock"
	"hostgen/internal/pkg/entry"
	"hostgen/internal/pkg/ipaddr"
	"hostgen/internal/pkg/netselect"
	"hostgen/internal/pkg/tags"
)

func snapshot(t *testing.T) []netselect.Network {
	t.Helper()
	m, err := ipaddr.ParseMAC("52:54:00:12:34:56")
	require.NoError(t, err)
	eth0 := &netselect.Interface{Name: "eth0", Index: 2, HardwareAddr: &m}
	return []netselect.Network{
		{Iface: eth0, Addr: netip.MustParseAddr("10.0.0.2"), Prefix: netip.MustParsePrefix("10.0.0.0/24")},
		{Iface: eth0, Addr: netip.MustParseAddr("2001:db8::2"), Prefix: netip.MustParsePrefix("2001:db8::/64")},
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tempDir := t.TempDir()

	t.Run("EndToEndDnsmasq", func(t *testing.T) {
		src := mock.NewMockInterfaceSource(ctrl)
		src.EXPECT().Networks().Return(snapshot(t), nil)

		cfg := writeFile(t, tempDir, "hosts.yml", "{eth0: v4}:\n  web: [5]\n")

		var buf bytes.Buffer
		err := Run(src, Options{
			ConfigPaths: []string{cfg},
			Format:      entry.FormatDnsmasq,
		}, &buf)
		require.NoError(t, err)
		assert.Equal(t, "02:00:00:00:00:05,10.0.0.5,web\n", buf.String())
	})

	t.Run("ConfigBeatsLease", func(t *testing.T) {
		src := mock.NewMockInterfaceSource(ctrl)
		src.EXPECT().Networks().Return(snapshot(t), nil)

		cfg := writeFile(t, tempDir, "prio.yml", "{eth0: v4}:\n  web: [5]\n")
		leases := writeFile(t, tempDir, "dnsmasq.leases",
			"1724690000 aa:bb:cc:dd:ee:ff 10.0.0.5 web\n"+
				"1724690000 aa:bb:cc:dd:ee:01 10.0.0.50 printer\n")

		var buf bytes.Buffer
		err := Run(src, Options{
			ConfigPaths: []string{cfg},
			LeasePaths:  []string{leases},
			Format:      entry.FormatDnsmasq,
		}, &buf)
		require.NoError(t, err)
		assert.Equal(t,
			"02:00:00:00:00:05,10.0.0.5,web\naa:bb:cc:dd:ee:01,10.0.0.50,printer\n",
			buf.String())
	})

	t.Run("UnreadableSourceSkipped", func(t *testing.T) {
		src := mock.NewMockInterfaceSource(ctrl)
		src.EXPECT().Networks().Return(snapshot(t), nil)

		cfg := writeFile(t, tempDir, "ok.yml", "{eth0: v4}:\n  web: [5]\n")

		var buf bytes.Buffer
		err := Run(src, Options{
			ConfigPaths: []string{filepath.Join(tempDir, "missing.yml"), cfg},
			Format:      entry.FormatEnv,
		}, &buf)
		require.NoError(t, err)
		assert.Equal(t, "WEB_V4=10.0.0.5\n", buf.String())
	})

	t.Run("AllSourcesUnreadableIsFatal", func(t *testing.T) {
		src := mock.NewMockInterfaceSource(ctrl)
		src.EXPECT().Networks().Return(snapshot(t), nil)

		var buf bytes.Buffer
		err := Run(src, Options{
			ConfigPaths: []string{filepath.Join(tempDir, "missing.yml")},
			Format:      entry.FormatDnsmasq,
		}, &buf)
		assert.Error(t, err)
	})

	t.Run("SnapshotFailureIsFatal", func(t *testing.T) {
		src := mock.NewMockInterfaceSource(ctrl)
		src.EXPECT().Networks().Return(nil, assert.AnError)

		var buf bytes.Buffer
		err := Run(src, Options{Format: entry.FormatDnsmasq}, &buf)
		assert.Error(t, err)
	})
}

func TestDocumentEntries(t *testing.T) {
	universe := netselect.Universe(snapshot(t))

	parse := func(t *testing.T, doc string) *yaml.Node {
		t.Helper()
		var n yaml.Node
		require.NoError(t, yaml.Unmarshal([]byte(doc), &n))
		root := &n
		for root.Kind == yaml.DocumentNode {
			root = root.Content[0]
		}
		return root
	}

	t.Run("HostPerMatchingTarget", func(t *testing.T) {
		entries := DocumentEntries(parse(t, "eth0:\n  web: [5]\n"), universe, nil)
		require.Len(t, entries, 2) // one v4, one v6 network on eth0
		assert.Equal(t, netip.MustParseAddr("10.0.0.5"), entries[0].IP)
		assert.Equal(t, netip.MustParseAddr("2001:db8::ff:fe00:5"), entries[1].IP)
	})

	t.Run("BadSelectorSectionSkipped", func(t *testing.T) {
		// -3 is not a valid interface index, so its whole section is
		// dropped with a warning.
		entries := DocumentEntries(parse(t, "{eth0: v4}:\n  web: [5]\n-3:\n  db: [6]\n"), universe, nil)
		require.Len(t, entries, 1)
		assert.Equal(t, "web", entries[0].Name)
	})

	t.Run("QueryTagsRestrictOutput", func(t *testing.T) {
		doc := "{eth0: v4}:\n  _tags: [prod]\n  web: [5]\n  staging-web:\n    _tags: [\"!prod\"]\n    ip: [6]\n"
		entries := DocumentEntries(parse(t, doc), universe, tags.New("prod"))
		require.Len(t, entries, 1)
		assert.Equal(t, "web", entries[0].Name)

		entries = DocumentEntries(parse(t, doc), universe, nil)
		assert.Len(t, entries, 2)
	})
}
