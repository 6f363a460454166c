package source

import (
	"bytes"
	"encoding/json"
)

// Kind routes an import line to the create operation that validates it.
type Kind string

const (
	KindTask    Kind = "task"
	KindProject Kind = "project"
	KindBudget  Kind = "budget"
)

// Record is one line of a JSONL import file. Only the fields for its Kind are
// read; values stay raw strings so the domain validators see exactly what the
// user wrote.
type Record struct {
	Kind Kind `json:"kind"`
	Line int  `json:"-"`

	// task
	Project  string `json:"project,omitempty"` // project name or ID
	Title    string `json:"title,omitempty"`
	Assignee string `json:"assignee,omitempty"`
	Due      string `json:"due,omitempty"`
	Status   string `json:"status,omitempty"`

	// project
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Deadline    string `json:"deadline,omitempty"`

	// budget
	Concept     string `json:"concept,omitempty"`
	Type        string `json:"type,omitempty"`
	Amount      Amount `json:"amount,omitempty"`
	Responsible string `json:"responsible,omitempty"`
}

// Amount is a money value exactly as written. It accepts a JSON number or a
// JSON string, so both 120.50 and "120.50" reach the ledger validator
// unchanged, and so does a malformed value like "abc".
type Amount string

// UnmarshalJSON keeps the literal text of a number, the contents of a
// string, and the raw text of anything else. null is left empty.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*a = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
	default:
		*a = Amount(b)
	}
	return nil
}

// DiscoveredFile is a JSONL file queued for import.
type DiscoveredFile struct {
	Path string
	Name string // base name, for progress output
}
