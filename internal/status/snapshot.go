// internal/status/snapshot.go
package status

// Snapshot represents exactly what the mirror is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health     uint16
	LastSeq    uint16
	Samples    uint16
	Boundaries uint16
	LastSource uint16
	Unknown    uint16

	// Channel values indexed by kind code, last seen signed value.
	Values [Channels]int32
}
