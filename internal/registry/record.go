// Package registry owns the on-disk epistle registry: the Record type,
// the NDJSON-backed Store, and the error taxonomy shared by the
// operations layered on top. The registry file is the sole authority
// for record existence; the markdown document next to it is a
// satellite artifact.
package registry

import "strings"

// Status values. Status is a free-form tag; these are the ones the
// tooling writes, not an enforced state machine.
const (
	StatusDraft = "draft"
)

// DefaultTopic is used when a record is created without a topic.
const DefaultTopic = "Untitled"

// Record is one conversation unit between personas.
//
// PromptedBy is a pointer so that "no value" survives a round-trip as
// an explicit JSON null rather than a missing key. The slice fields
// are kept non-nil by Normalize so they serialize as [] when empty.
type Record struct {
	ID         string   `json:"id"`
	Date       string   `json:"date"` // YYYY-MM-DD
	Personas   []string `json:"personas"`
	Topic      string   `json:"topic"`
	PromptedBy *string  `json:"prompted_by"`
	File       string   `json:"file"`
	Status     string   `json:"status"`
	References []string `json:"references"`
	Context    []string `json:"context"`
	Keywords   []string `json:"keywords"`
}

// Normalize replaces nil slice fields with empty slices so the record
// round-trips losslessly through the NDJSON store.
func (r *Record) Normalize() {
	if r.Personas == nil {
		r.Personas = []string{}
	}
	if r.References == nil {
		r.References = []string{}
	}
	if r.Context == nil {
		r.Context = []string{}
	}
	if r.Keywords == nil {
		r.Keywords = []string{}
	}
}

// HasPersona reports whether name case-insensitively matches any
// participant of the record.
func (r *Record) HasPersona(name string) bool {
	for _, p := range r.Personas {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}

// HasKeyword reports whether kw case-insensitively matches any of the
// record's keywords.
func (r *Record) HasKeyword(kw string) bool {
	for _, k := range r.Keywords {
		if strings.EqualFold(k, kw) {
			return true
		}
	}
	return false
}
