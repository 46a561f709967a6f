package compositemark

import (
	"fmt"

	"vizc/internal/config"
	"vizc/internal/diag"
	"vizc/internal/spec"
)

// CenterMeasure is the central-tendency statistic marking the primary
// position of the summary.
type CenterMeasure string

const (
	CenterMean   CenterMeasure = "mean"
	CenterMedian CenterMeasure = "median"
)

// ExtentMeasure is the spread statistic defining whisker length.
type ExtentMeasure string

const (
	ExtentCI     ExtentMeasure = "ci"
	ExtentIQR    ExtentMeasure = "iqr"
	ExtentStderr ExtentMeasure = "stderr"
	ExtentStdev  ExtentMeasure = "stdev"
)

// resolveMeasures applies the precedence rules for center and extent:
// explicit mark-level values win over configuration defaults, and a median
// center without an explicit extent defaults to iqr rather than the global
// default. A resolved pairing that mixes quantile and moment statistics
// (median without iqr, or iqr without median) is legal but unusual and is
// reported as a warning.
func resolveMeasures(mark *spec.MarkDef, cfg *config.ErrorbarConfig, r diag.Reporter) (CenterMeasure, ExtentMeasure, error) {
	center := CenterMeasure(mark.Center)
	if center == "" {
		center = CenterMeasure(cfg.Center)
	}
	switch center {
	case CenterMean, CenterMedian:
	default:
		return "", "", fmt.Errorf("invalid center %q (want mean or median)", center)
	}

	extent := ExtentMeasure(mark.Extent)
	if extent == "" {
		if center == CenterMedian {
			extent = ExtentIQR
		} else {
			extent = ExtentMeasure(cfg.Extent)
		}
	}
	switch extent {
	case ExtentCI, ExtentIQR, ExtentStderr, ExtentStdev:
	default:
		return "", "", fmt.Errorf("invalid extent %q (want ci, iqr, stderr or stdev)", extent)
	}

	if (center == CenterMedian) != (extent == ExtentIQR) {
		diag.ReportWarning(r, diag.MarkUnusualCenterExtent, "mark",
			fmt.Sprintf("center %s with extent %s is an unusual combination", center, extent),
		).WithNote("", "median pairs with iqr; mean pairs with ci, stderr or stdev").Emit()
	}
	return center, extent, nil
}
