// internal/status/encode.go
package status

// Encode converts a Snapshot into a full stream status block.
// Layout is protocol-locked.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, SlotsTotal)

	regs[SlotHealthCode] = s.Health
	regs[SlotLastSeq] = s.LastSeq
	regs[SlotSamples] = s.Samples
	regs[SlotBoundaries] = s.Boundaries

	for i, v := range s.Values {
		hi, lo := SplitInt32(v)
		regs[ChannelSlot(i)] = hi
		regs[ChannelSlot(i)+1] = lo
	}

	regs[SlotLastSource] = s.LastSource
	regs[SlotUnknown] = s.Unknown

	return regs
}

// ChannelSlot returns the first slot of channel i (kind code order).
func ChannelSlot(i int) int {
	return SlotChannelStart + i*SlotsPerChannel
}

// SplitInt32 returns the two's-complement high and low words of v.
func SplitInt32(v int32) (hi, lo uint16) {
	u := uint32(v)
	return uint16(u >> 16), uint16(u)
}
