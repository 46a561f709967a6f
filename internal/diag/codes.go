package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Document loading and shape
	DocUnreadable Code = 1001
	DocBadJSON    Code = 1002
	DocNotUnit    Code = 1003

	// Composite-mark expansion
	MarkUnsupportedChannel  Code = 2001
	MarkIgnoredAggregate    Code = 2002
	MarkUnusualCenterExtent Code = 2003
	MarkUnknownPart         Code = 2004

	// Unresolvable orientation is fatal: it returns as an *OrientationError
	// rather than flowing through a Reporter. The error carries one of these
	// codes so CLI output and tooling keep a stable identifier for it.
	MarkBothAxesAggregate Code = 2005
	MarkNoContinuousAxis  Code = 2006

	// Driver / cache
	DrvInfo       Code = 4000
	DrvCacheMiss  Code = 4001
	DrvCacheStale Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown diagnostic",

	DocUnreadable: "Cannot read specification file",
	DocBadJSON:    "Specification is not valid JSON",
	DocNotUnit:    "Specification is not a unit spec",

	MarkUnsupportedChannel:  "Channel not supported by composite mark",
	MarkIgnoredAggregate:    "User aggregate on continuous axis ignored",
	MarkUnusualCenterExtent: "Unusual center and extent combination",
	MarkUnknownPart:         "Unknown composite mark part",
	MarkBothAxesAggregate:   "Both axes carry the composite aggregate",
	MarkNoContinuousAxis:    "No continuous axis for composite mark",

	DrvInfo:       "Driver info",
	DrvCacheMiss:  "Compile cache miss",
	DrvCacheStale: "Compile cache entry invalidated",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("DOC%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("MRK%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("DRV%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
