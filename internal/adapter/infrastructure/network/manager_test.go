//go:build unit

package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSnapshotAdapter(t *testing.T) {
	adapter := NewSnapshotAdapter()
	assert.NotNil(t, adapter)
}

func TestSnapshotAdapter_Networks(t *testing.T) {
	adapter := NewSnapshotAdapter()

	networks, err := adapter.Networks()
	if err != nil {
		t.Skip("netlink not available, skipping test")
	}

	t.Run("LoopbackPresent", func(t *testing.T) {
		// The loopback interface should exist on any Linux system and
		// typically carries at least 127.0.0.1/8.
		found := false
		for _, n := range networks {
			if n.Iface != nil && n.Iface.Name == "lo" {
				found = true
				assert.True(t, n.Addr.IsValid())
				assert.True(t, n.Prefix.IsValid())
				assert.True(t, n.Prefix.Contains(n.Addr))
			}
		}
		if !found {
			t.Skip("loopback interface not available, skipping test")
		}
	})

	t.Run("AddressesUnmapped", func(t *testing.T) {
		for _, n := range networks {
			assert.False(t, n.Addr.Is4In6(), "addresses must be unmapped: %s", n.Addr)
		}
	})

	t.Run("PrefixesMasked", func(t *testing.T) {
		for _, n := range networks {
			assert.Equal(t, n.Prefix.Masked(), n.Prefix)
		}
	})
}
