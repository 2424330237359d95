// internal/sample/format.go
package sample

import (
	"fmt"
	"strings"
)

// Separator follows a table line whose sample carries the boundary marker.
var Separator = strings.Repeat("-", 80) + "\n"

// Legend is the optional header block of a CSV channel file.
const Legend = "seq_id,source,sample_value\n" +
	"source:\t0 - main PLL\n" +
	"\t2 - helper PLL\n" +
	"\t4 - ext PLL\n" +
	"type:\t0 - y\n" +
	"\t1 - error\n" +
	"\t2 - tag local\n" +
	"\t3 - period\n" +
	"\t4 - event\n" +
	"\t5 - tag ref\n" +
	"\t6 - sample id\n"

// CSVRow renders s as "seq,source_code,value\n". Never includes a separator.
func CSVRow(s Sample) string {
	return fmt.Sprintf("%05d,%d,%d\n", s.Seq, s.SourceCode, s.Signed())
}

// TableLine renders s as one fixed-width annotated line, plus the
// separator line when the boundary marker is set.
func TableLine(s Sample) string {
	var b strings.Builder

	fmt.Fprintf(&b, " ID %05d | RAW:0x%08X | %-5s [0x%d] | %-9s : [0x%x] |  %d\n",
		s.Seq,
		s.Raw,
		sourceTag(s.Source),
		s.SourceCode,
		kindTag(s.Kind),
		s.KindCode,
		s.Signed(),
	)

	if s.Boundary {
		b.WriteString(Separator)
	}
	return b.String()
}

func sourceTag(s Source) string {
	switch s {
	case SourceMain:
		return "mPLL"
	case SourceHelper:
		return "hPLL"
	case SourceExternal:
		return "ePLL"
	default:
		return "UKNWN"
	}
}

func kindTag(k Kind) string {
	switch k {
	case KindY:
		return "Y"
	case KindError:
		return "ERROR"
	case KindTagLocal:
		return "TAG LOCAL"
	case KindPeriod:
		return "PERIOD"
	case KindEvent:
		return "EVENT"
	case KindTagRef:
		return "TAG REF"
	case KindSampleID:
		return "SAMPLE ID"
	default:
		return "UNKNOWN"
	}
}
