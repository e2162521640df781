// Package port defines the primary ports (interfaces) for the application.
// This follows the Ports and Adapters (Hexagonal Architecture) pattern.
package port

import (
	"hostgen/internal/pkg/netselect"
)

//go:generate mockgen -source=network.go -destination=../mock/interface_source.go -package=mock

// InterfaceSource captures a point-in-time snapshot of the local
// network interfaces and their assigned networks. The snapshot is
// immutable for the rest of the run; selector evaluation and address
// resolution never touch the operating system again.
type InterfaceSource interface {
	// Networks returns one Network per (interface, assigned subnet)
	// pair, both address families, without the sentinel targets.
	Networks() ([]netselect.Network, error)
}
