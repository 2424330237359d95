// internal/status/constants.go
package status

// Stream Status Block layout constants.
// These values define the mirror protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsTotal is the fixed number of holding registers in the block.
const SlotsTotal = 20

// ---- HEADER SLOTS ----

// SlotHealthCode holds the stream health state.
const SlotHealthCode = 0

// SlotLastSeq holds the sequence id of the last decoded sample.
const SlotLastSeq = 1

// SlotSamples holds the decoded sample count (mod 65536).
const SlotSamples = 2

// SlotBoundaries holds the boundary marker count (mod 65536).
const SlotBoundaries = 3

// ---- CHANNEL VALUES ----

// SlotChannelStart is the first slot of the per-kind value area.
// Each channel owns two slots: signed value high word, then low word.
const SlotChannelStart = 4

// SlotsPerChannel is the number of slots used by one channel value.
const SlotsPerChannel = 2

// Channels is the number of channels mirrored (Y .. SampleID).
const Channels = 7

// SlotChannelEnd is the last slot of the channel area (inclusive).
const SlotChannelEnd = SlotChannelStart + Channels*SlotsPerChannel - 1

// ---- TRAILER SLOTS ----

// SlotLastSource holds the source code (0/2/4/6) of the last sample.
const SlotLastSource = 18

// SlotUnknown holds the count of samples with unknown source or kind (mod 65536).
const SlotUnknown = 19

// ---- HEALTH CODES ----

// HealthUnknown represents the state before the first sample.
const HealthUnknown uint16 = 0

// HealthStreaming represents a live stream.
const HealthStreaming uint16 = 1

// HealthStopped represents a stream that has ended or failed.
const HealthStopped uint16 = 2
