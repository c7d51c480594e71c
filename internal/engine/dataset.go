package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Header is the required first line of every co-occurrence dataset.
// Blank lines before it and whitespace around it are tolerated.
const Header = "input,target"

// Pair is one historical observation that Target was bought with Input.
type Pair struct {
	Input  int
	Target int
}

// defaultDataset is trained on until a dataset is uploaded.
const defaultDataset = `input,target
1001,1002
1001,1003
1001,1005
1002,1001
1002,1004
1003,1002
1003,1005
1003,1006
1004,1002
1004,1007
1005,1001
1005,1003
1005,1008
1006,1003
1006,1009
1007,1004
1007,1010
1008,1005
1008,1009
1009,1006
1009,1008
1010,1007
1010,1004
1001,1002
1003,1005
1005,1003
`

// Parse reads a co-occurrence dataset. The first non-blank line, trimmed,
// must be exactly Header, so leading blank lines and an indented header are
// accepted; every following non-blank line must hold two integers.
// Parsing stops at the first bad line. Empty text yields no pairs.
func Parse(csvText string) ([]Pair, error) {
	lines := strings.Split(csvText, "\n")
	pairs := make([]Pair, 0, len(lines))
	headerSeen := false

	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if !headerSeen {
			if line != Header {
				return nil, &MalformedInputError{
					Line:   lineNo,
					Reason: fmt.Sprintf("expected header %q, got %q", Header, line),
				}
			}
			headerSeen = true
			continue
		}

		pair, err := parseLine(line)
		if err != nil {
			return nil, &MalformedInputError{Line: lineNo, Reason: err.Error()}
		}
		pairs = append(pairs, pair)
	}

	return pairs, nil
}

// ValidateHeader checks only that csvText starts with Header.
func ValidateHeader(csvText string) error {
	trimmed := strings.TrimLeft(csvText, " \t\r\n")
	first, _, _ := strings.Cut(trimmed, "\n")
	if strings.TrimSpace(first) != Header {
		return &MalformedInputError{
			Line:   1,
			Reason: fmt.Sprintf("dataset must start with %q", Header),
		}
	}
	return nil
}

func parseLine(line string) (Pair, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 2 {
		return Pair{}, fmt.Errorf("expected 2 fields, got %d", len(fields))
	}

	input, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return Pair{}, fmt.Errorf("invalid input id %q", strings.TrimSpace(fields[0]))
	}
	target, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return Pair{}, fmt.Errorf("invalid target id %q", strings.TrimSpace(fields[1]))
	}

	return Pair{Input: input, Target: target}, nil
}
