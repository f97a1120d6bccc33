// FILE: lixenwraith/alog/sanitizer/sanitizer.go

// Package sanitizer rewrites characters of log messages that would corrupt a
// line-oriented or JSON encoded log, using composable filter and transform flags.
package sanitizer

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Filter flags for character matching
const (
	FilterNonPrintable uint64 = 1 << iota // Matches runes not classified as printable by strconv.IsPrint
	FilterControl                         // Matches control characters (unicode.IsControl)
	FilterJSONSpecial                     // Matches '"' and '\\'
)

// Transform flags for character transformation
const (
	TransformStrip      uint64 = 1 << iota // Removes the character
	TransformHexEncode                     // Encodes the character's UTF-8 bytes as "<XXYY>"
	TransformJSONEscape                    // Escapes the character with JSON-style backslashes (e.g., '\n', '\u0000')
)

// PolicyPreset defines pre-configured sanitization policies
type PolicyPreset string

const (
	PolicyRaw  PolicyPreset = "raw"  // Passthrough
	PolicyTxt  PolicyPreset = "txt"  // Keeps every message on one printable line
	PolicyJSON PolicyPreset = "json" // Makes a message safe inside a JSON string
)

// rule represents a single sanitization rule
type rule struct {
	filter    uint64
	transform uint64
}

var policyRules = map[PolicyPreset][]rule{
	PolicyRaw:  {},
	PolicyTxt:  {{filter: FilterNonPrintable, transform: TransformHexEncode}},
	PolicyJSON: {{filter: FilterControl | FilterJSONSpecial, transform: TransformJSONEscape}},
}

// filterChecker pairs a filter flag with its predicate
type filterChecker struct {
	flag  uint64
	match func(rune) bool
}

var filterCheckers = []filterChecker{
	{FilterNonPrintable, func(r rune) bool { return !strconv.IsPrint(r) }},
	{FilterControl, unicode.IsControl},
	{FilterJSONSpecial, func(r rune) bool { return r == '"' || r == '\\' }},
}

const hexDigits = "0123456789abcdef"

// Sanitizer provides chainable text sanitization.
// A Sanitizer is not safe for concurrent use.
type Sanitizer struct {
	rules []rule
	buf   []byte
}

// New creates a passthrough Sanitizer
func New() *Sanitizer {
	return &Sanitizer{
		rules: []rule{},
		buf:   make([]byte, 0, 256),
	}
}

// Rule adds a custom rule (appended, earliest rule applies first)
func (s *Sanitizer) Rule(filter uint64, transform uint64) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy appends the rules of a pre-configured policy
func (s *Sanitizer) Policy(preset PolicyPreset) *Sanitizer {
	if rules, ok := policyRules[preset]; ok {
		s.rules = append(s.rules, rules...)
	}
	return s
}

// Sanitize applies all configured rules to the input string
func (s *Sanitizer) Sanitize(data string) string {
	s.buf = s.Append(s.buf[:0], data)
	return string(s.buf)
}

// Append appends the sanitized form of data to dst and returns the extended slice
func (s *Sanitizer) Append(dst []byte, data string) []byte {
	if len(s.rules) == 0 {
		return append(dst, data...)
	}

	start := 0 // Start of the pending unmodified run
	for i, r := range data {
		transform, matched := s.match(r)
		if !matched {
			continue
		}
		dst = append(dst, data[start:i]...)
		dst = applyTransform(dst, r, transform)
		start = i + utf8.RuneLen(r)
		if r == utf8.RuneError {
			start = i + 1
		}
	}
	return append(dst, data[start:]...)
}

// match returns the transform of the first rule matching r
func (s *Sanitizer) match(r rune) (uint64, bool) {
	for _, rl := range s.rules {
		if matchesFilter(r, rl.filter) {
			return rl.transform, true
		}
	}
	return 0, false
}

// matchesFilter checks if a rune matches any filter in the mask
func matchesFilter(r rune, filterMask uint64) bool {
	for _, fc := range filterCheckers {
		if filterMask&fc.flag != 0 && fc.match(r) {
			return true
		}
	}
	return false
}

// applyTransform appends the transformed rune to dst
func applyTransform(dst []byte, r rune, transformMask uint64) []byte {
	switch {
	case transformMask&TransformStrip != 0:
		return dst

	case transformMask&TransformHexEncode != 0:
		var runeBytes [utf8.UTFMax]byte
		n := utf8.EncodeRune(runeBytes[:], r)
		dst = append(dst, '<')
		for _, b := range runeBytes[:n] {
			dst = append(dst, hexDigits[b>>4], hexDigits[b&0x0f])
		}
		return append(dst, '>')

	case transformMask&TransformJSONEscape != 0:
		switch r {
		case '\n':
			return append(dst, '\\', 'n')
		case '\r':
			return append(dst, '\\', 'r')
		case '\t':
			return append(dst, '\\', 't')
		case '\b':
			return append(dst, '\\', 'b')
		case '\f':
			return append(dst, '\\', 'f')
		case '"':
			return append(dst, '\\', '"')
		case '\\':
			return append(dst, '\\', '\\')
		}
		if r < 0x10000 {
			return append(dst, '\\', 'u', hexDigits[r>>12&0xf], hexDigits[r>>8&0xf], hexDigits[r>>4&0xf], hexDigits[r&0xf])
		}
		return utf8.AppendRune(dst, r)
	}

	return utf8.AppendRune(dst, r)
}
