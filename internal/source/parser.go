// Package source reads JSONL batch-import files of tasks, projects, and
// budget items.
package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
)

// ParseResult holds the output of parsing a single JSONL file.
type ParseResult struct {
	File        DiscoveredFile
	Records     []Record
	ParseErrors int
	Err         error
}

// ParseFile reads a JSONL import file. Blank lines and lines starting with '#'
// are skipped. Lines that are not JSON objects are counted in ParseErrors and
// dropped; they never abort the file. Field values, including kind, are left
// for the workspace to validate.
func ParseFile(df DiscoveredFile) ParseResult {
	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{File: df, Err: err}
	}
	defer func() { _ = f.Close() }()

	res := ParseResult{File: df}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			res.ParseErrors++
			continue
		}
		rec.Line = lineNo
		res.Records = append(res.Records, rec)
	}

	if err := scanner.Err(); err != nil {
		return ParseResult{File: df, Err: err}
	}
	return res
}
