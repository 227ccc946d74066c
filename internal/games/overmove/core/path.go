package core

import (
	"fmt"
	"strings"
	"unicode"
)

// Path is an ordered sequence of moves, in play order.
type Path []Dir

// String renders the path as arrow glyphs.
func (p Path) String() string {
	var sb strings.Builder
	for _, d := range p {
		sb.WriteRune(d.Glyph())
	}
	return sb.String()
}

// Codes renders the path as comma-separated letter codes, e.g. "R,R,D".
func (p Path) Codes() string {
	codes := make([]string, len(p))
	for i, d := range p {
		codes[i] = string(d.Code())
	}
	return strings.Join(codes, ",")
}

// ParsePath parses moves separated by commas, semicolons or spaces.
// A compact run of letter codes or glyphs ("RRD", "⮞⮞⮟") is also accepted.
func ParsePath(s string) (Path, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})

	path := make(Path, 0, len(fields))
	for _, f := range fields {
		if d, err := ParseDir(f); err == nil {
			path = append(path, d)
			continue
		}
		// Compact form: every rune is a move.
		for _, r := range f {
			d, err := ParseDir(string(r))
			if err != nil {
				return nil, fmt.Errorf("parse path %q: %w", s, err)
			}
			path = append(path, d)
		}
	}
	return path, nil
}
