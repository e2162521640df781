package entry

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Format selects one of the three entry renderings.
type Format int

const (
	FormatDnsmasq Format = iota
	FormatZone
	FormatEnv
)

// ParseFormat maps a command line flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "dnsmasq":
		return FormatDnsmasq, nil
	case "zone":
		return FormatZone, nil
	case "env":
		return FormatEnv, nil
	}
	return 0, fmt.Errorf("unknown output format %q (want dnsmasq, zone or env)", s)
}

func (f Format) String() string {
	switch f {
	case FormatDnsmasq:
		return "dnsmasq"
	case FormatZone:
		return "zone"
	case FormatEnv:
		return "env"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Render returns the single-line rendering of e in this format.
func (f Format) Render(e Entry) string {
	switch f {
	case FormatZone:
		return e.Zone()
	case FormatEnv:
		return e.Env()
	default:
		return e.Dnsmasq()
	}
}

// Write renders entries one per line in iteration order. Zone output
// goes through a tabwriter so record columns line up.
func Write(w io.Writer, f Format, entries []Entry) error {
	if f == FormatZone {
		tw := tabwriter.NewWriter(w, 0, 8, 1, '\t', 0)
		for _, e := range entries {
			if _, err := fmt.Fprintln(tw, e.Zone()); err != nil {
				return err
			}
		}
		return tw.Flush()
	}
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, f.Render(e)); err != nil {
			return err
		}
	}
	return nil
}
