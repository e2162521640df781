//go:build integration
// +build integration

package test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostgen/internal/adapter/infrastructure/network"
	"hostgen/internal/pkg/entry"
	"hostgen/internal/pkg/generate"
)

// TestGenerateOnLoopback runs the full pipeline against the live
// interface snapshot. It only assumes a Linux host with a loopback
// interface carrying 127.0.0.1, which docker and CI runners provide.
func TestGenerateOnLoopback(t *testing.T) {
	adapter := network.NewSnapshotAdapter()
	networks, err := adapter.Networks()
	if err != nil {
		t.Skip("netlink not available, skipping test")
	}
	hasV4Loopback := false
	for _, n := range networks {
		if n.Iface != nil && n.Iface.Name == "lo" && n.Is4() {
			hasV4Loopback = true
		}
	}
	if !hasV4Loopback {
		t.Skip("no IPv4 loopback address, skipping test")
	}

	dir := t.TempDir()

	configPath := filepath.Join(dir, "hosts.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(
		"lo:\n"+
			"  router: [iface]\n"+
			"  gw: [1]\n",
	), 0o644))

	leasePath := filepath.Join(dir, "dnsmasq.leases")
	require.NoError(t, os.WriteFile(leasePath, []byte(
		"1700000000 aa:bb:cc:dd:ee:ff 127.0.0.99 leased-box *\n",
	), 0o644))

	t.Run("ConfigResolvesAgainstLiveSnapshot", func(t *testing.T) {
		var buf bytes.Buffer
		err := generate.Run(adapter, generate.Options{
			ConfigPaths: []string{configPath},
			Format:      entry.FormatDnsmasq,
		}, &buf)
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "127.0.0.1,router")
		assert.Contains(t, out, "127.0.0.1,gw")
	})

	t.Run("LeaseSourceMergesAfterConfig", func(t *testing.T) {
		var buf bytes.Buffer
		err := generate.Run(adapter, generate.Options{
			ConfigPaths: []string{configPath},
			LeasePaths:  []string{leasePath},
			Format:      entry.FormatDnsmasq,
		}, &buf)
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "aa:bb:cc:dd:ee:ff,127.0.0.99,leased-box")
		// Config entries come first.
		assert.Less(t, strings.Index(out, "router"), strings.Index(out, "leased-box"))
	})

	t.Run("ZoneFormat", func(t *testing.T) {
		var buf bytes.Buffer
		err := generate.Run(adapter, generate.Options{
			ConfigPaths: []string{configPath},
			Format:      entry.FormatZone,
		}, &buf)
		require.NoError(t, err)

		for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
			fields := strings.Fields(line)
			require.Len(t, fields, 3)
			assert.Contains(t, []string{"A", "AAAA"}, fields[1])
		}
	})
}
