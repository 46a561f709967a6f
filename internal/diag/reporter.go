package diag

// Reporter is the minimal contract phases use to hand over diagnostics.
// Implementations: BagReporter (collects into a Bag), NopReporter,
// DedupReporter (suppresses duplicates before forwarding).
type Reporter interface {
	Report(code Code, sev Severity, path string, msg string, notes []Note)
}

// ReportBuilder accumulates diagnostic details before emitting to a Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to a Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, path, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag: Diagnostic{
			Severity: sev,
			Code:     code,
			Message:  msg,
			Path:     path,
		},
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, path, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, path, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, path, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, path, msg)
}

// ReportInfo is a shortcut for SevInfo diagnostics.
func ReportInfo(r Reporter, code Code, path, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevInfo, code, path, msg)
}

// WithNote appends a note to the diagnostic.
func (b *ReportBuilder) WithNote(path, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Notes = append(b.diag.Notes, Note{Path: path, Msg: msg})
	return b
}

// Emit sends the diagnostic to the underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag.Code, b.diag.Severity, b.diag.Path, b.diag.Message, b.diag.Notes)
	}
	b.emitted = true
}

// NopReporter discards every diagnostic.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, string, string, []Note) {}

// BagReporter collects diagnostics into a Bag.
type BagReporter struct {
	bag *Bag
}

// NewBagReporter returns a Reporter backed by the given Bag.
func NewBagReporter(bag *Bag) *BagReporter {
	return &BagReporter{bag: bag}
}

func (r *BagReporter) Report(code Code, sev Severity, path string, msg string, notes []Note) {
	if r == nil || r.bag == nil {
		return
	}
	r.bag.Add(Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Path:     path,
		Notes:    notes,
	})
}
