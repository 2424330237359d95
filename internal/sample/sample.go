// internal/sample/sample.go
package sample

// Source is the PLL instance a sample was taken from.
type Source int

const (
	SourceMain Source = iota
	SourceHelper
	SourceExternal
	SourceUnknown
)

// Kind is the measurement category carried by a sample.
type Kind int

const (
	KindY Kind = iota
	KindError
	KindTagLocal
	KindPeriod
	KindEvent
	KindTagRef
	KindSampleID
	KindUnknown
)

// NumKinds is the number of demultiplexed channels (Unknown has none).
const NumKinds = int(KindUnknown)

// ---- bit layout (locked to the switch firmware debug FIFO) ----

const (
	boundaryBit uint32 = 0x80000000
	sourceShift        = 28
	sourceMask  uint32 = 0x6
	kindShift          = 24
	kindMask    uint32 = 0xF
	valueMask   uint32 = 0xFFFFFF
	valueSign   uint32 = 0x800000
)

// Source codes as they appear on the wire (and in CSV rows).
const (
	SourceCodeMain     uint8 = 0
	SourceCodeHelper   uint8 = 2
	SourceCodeExternal uint8 = 4
)

// Sample is one decoded debug record. It is never mutated after Decode.
type Sample struct {
	Seq uint16
	Raw uint32

	Source     Source
	SourceCode uint8

	Kind     Kind
	KindCode uint8

	// Value is the 24-bit payload, masked but not sign-extended.
	Value uint32

	// Boundary is set on PLL state transitions (start / lock).
	Boundary bool
}

// Decode maps a raw 32-bit word and its sequence id to a Sample.
// Every bit pattern decodes; unrecognized source/kind codes map to Unknown.
func Decode(raw uint32, seq uint16) Sample {
	srcCode := uint8(sourceMask & (raw >> sourceShift))
	kindCode := uint8(kindMask & (raw >> kindShift))

	return Sample{
		Seq:        seq,
		Raw:        raw,
		Source:     sourceFromCode(srcCode),
		SourceCode: srcCode,
		Kind:       kindFromCode(kindCode),
		KindCode:   kindCode,
		Value:      raw & valueMask,
		Boundary:   raw&boundaryBit != 0,
	}
}

// Signed returns Value as a 24-bit two's-complement quantity.
func (s Sample) Signed() int32 {
	if s.Value&valueSign != 0 {
		return int32(s.Value) - int32(valueMask) - 1
	}
	return int32(s.Value)
}

func sourceFromCode(code uint8) Source {
	switch code {
	case SourceCodeMain:
		return SourceMain
	case SourceCodeHelper:
		return SourceHelper
	case SourceCodeExternal:
		return SourceExternal
	default:
		return SourceUnknown
	}
}

func kindFromCode(code uint8) Kind {
	if int(code) < NumKinds {
		return Kind(code)
	}
	return KindUnknown
}

// Kinds returns the channel kinds in wire order.
func Kinds() []Kind {
	return []Kind{KindY, KindError, KindTagLocal, KindPeriod, KindEvent, KindTagRef, KindSampleID}
}

func (s Source) String() string {
	switch s {
	case SourceMain:
		return "main"
	case SourceHelper:
		return "helper"
	case SourceExternal:
		return "external"
	default:
		return "unknown"
	}
}

func (k Kind) String() string {
	switch k {
	case KindY:
		return "y"
	case KindError:
		return "error"
	case KindTagLocal:
		return "taglocal"
	case KindPeriod:
		return "period"
	case KindEvent:
		return "event"
	case KindTagRef:
		return "tagref"
	case KindSampleID:
		return "sampleid"
	default:
		return "unknown"
	}
}

// Suffix is appended to the file prefix to name the channel's CSV file.
func (k Kind) Suffix() string {
	return "_" + k.String()
}
