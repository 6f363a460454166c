package source

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeImport creates a temp JSONL file and returns a DiscoveredFile for it.
func writeImport(t *testing.T, lines ...string) DiscoveredFile {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return DiscoveredFile{Path: path, Name: "batch.jsonl"}
}

func TestParseFile_Kinds(t *testing.T) {
	df := writeImport(t,
		`{"kind":"project","name":"Website","description":"Landing page","deadline":"2025-03-01"}`,
		`{"kind":"task","project":"Website","title":"Copy","assignee":"Ana","due":"2025-02-01","status":"pending"}`,
		`{"kind":"budget","concept":"Hosting","type":"expense","amount":120.50,"responsible":"Ops"}`,
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Records) != 3 {
		t.Fatalf("Records = %d, want 3", len(result.Records))
	}
	if result.ParseErrors != 0 {
		t.Errorf("ParseErrors = %d, want 0", result.ParseErrors)
	}

	if got := result.Records[0]; got.Kind != KindProject || got.Name != "Website" || got.Line != 1 {
		t.Errorf("record 0 = %+v", got)
	}
	if got := result.Records[1]; got.Kind != KindTask || got.Project != "Website" || got.Due != "2025-02-01" {
		t.Errorf("record 1 = %+v", got)
	}
	if got := result.Records[2]; got.Amount != "120.50" {
		t.Errorf("Amount = %q, want 120.50", got.Amount)
	}
}

func TestParseFile_SkipsBlankAndComments(t *testing.T) {
	df := writeImport(t,
		`# seed batch`,
		``,
		`   `,
		`{"kind":"task","title":"x"}`,
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Records) != 1 || result.ParseErrors != 0 {
		t.Fatalf("Records = %d, ParseErrors = %d, want 1, 0", len(result.Records), result.ParseErrors)
	}
	if result.Records[0].Line != 4 {
		t.Errorf("Line = %d, want 4", result.Records[0].Line)
	}
}

func TestParseFile_MalformedLines(t *testing.T) {
	df := writeImport(t,
		`not json at all`,
		`{"kind":"task","title":"ok"}`,
		`{"kind":"milestone","title":"unknown kind"}`,
		`{"title":"no kind"}`,
		`{"kind":"budget","amount":"abc"}`,
		`["kind","task"]`,
		`{"kind":"project","name":"ok"`,
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	// Unknown kinds and bad field values are records; the workspace rejects
	// them with a validation error.
	if len(result.Records) != 4 {
		t.Errorf("Records = %d, want 4", len(result.Records))
	}
	if result.ParseErrors != 3 {
		t.Errorf("ParseErrors = %d, want 3", result.ParseErrors)
	}
}

func TestAmountUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Amount
	}{
		{"number", `{"amount":120.50}`, "120.50"},
		{"string", `{"amount":"99.9"}`, "99.9"},
		{"exponent kept verbatim", `{"amount":1e3}`, "1e3"},
		{"non-numeric string", `{"amount":"abc"}`, "abc"},
		{"bool kept as text", `{"amount":true}`, "true"},
		{"null", `{"amount":null}`, ""},
		{"missing", `{}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec Record
			if err := json.Unmarshal([]byte(tt.input), &rec); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.input, err)
			}
			if rec.Amount != tt.want {
				t.Errorf("Amount = %q, want %q", rec.Amount, tt.want)
			}
		})
	}
}

func TestParseFile_Missing(t *testing.T) {
	result := ParseFile(DiscoveredFile{Path: filepath.Join(t.TempDir(), "nope.jsonl")})
	if result.Err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.jsonl", "a.jsonl", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	files, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %d, want 2", len(files))
	}
	if files[0].Name != "a.jsonl" || files[1].Name != "b.jsonl" {
		t.Errorf("order = %s, %s; want a.jsonl, b.jsonl", files[0].Name, files[1].Name)
	}

	single, err := Scan(filepath.Join(dir, "notes.txt"))
	if err != nil {
		t.Fatalf("Scan file: %v", err)
	}
	if len(single) != 1 {
		t.Errorf("single = %d, want 1", len(single))
	}
}
