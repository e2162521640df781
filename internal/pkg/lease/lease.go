// Package lease parses dnsmasq lease files so recorded leases can
// participate in the merge pipeline as a lower-priority entry source.
package lease

import (
	"bufio"
	"fmt"
	"io"
	"net/netip"
	"os"
	"strconv"
	"strings"

	"hostgen/internal/pkg/entry"
	"hostgen/internal/pkg/ipaddr"
	"hostgen/internal/pkg/logging"
)

// ParseFile reads a dnsmasq leases file: one whitespace-delimited
// "expiry mac ip hostname [clientid]" record per line.
func ParseFile(path string) ([]entry.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lease file %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse reads lease lines from r. Malformed lines are skipped with a
// warning; entries with the placeholder hostname "*" are dropped.
func Parse(r io.Reader, source string) ([]entry.Entry, error) {
	log := logging.WithSource("lease", source)

	var entries []entry.Entry
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 4 {
			log.Warnf("skipping malformed lease line %d", lineno)
			continue
		}
		if _, err := strconv.ParseInt(fields[0], 10, 64); err != nil {
			log.Warnf("skipping lease line %d: bad expiry %q", lineno, fields[0])
			continue
		}
		mac, err := ipaddr.ParseMAC(fields[1])
		if err != nil {
			log.Warnf("skipping lease line %d: bad mac %q", lineno, fields[1])
			continue
		}
		ip, err := netip.ParseAddr(fields[2])
		if err != nil {
			log.Warnf("skipping lease line %d: bad ip %q", lineno, fields[2])
			continue
		}
		if fields[3] == "*" {
			continue
		}

		entries = append(entries, entry.New(fields[3], &mac, ip.Unmap()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lease file %s: %w", source, err)
	}
	return entries, nil
}
