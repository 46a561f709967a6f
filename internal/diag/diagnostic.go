package diag

// Note attaches secondary context to a diagnostic.
type Note struct {
	Path string
	Msg  string
}

// Diagnostic is one finding produced by a compilation phase. Path is the
// document path of the offending node ("encoding.shape", "mark.extent");
// an empty path means the diagnostic concerns the document as a whole.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Path     string
	Notes    []Note
}

// WithNote returns a copy of the diagnostic with an extra note appended.
func (d Diagnostic) WithNote(path, msg string) Diagnostic {
	notes := make([]Note, 0, len(d.Notes)+1)
	notes = append(notes, d.Notes...)
	notes = append(notes, Note{Path: path, Msg: msg})
	d.Notes = notes
	return d
}
