package services

import (
	"github.com/dlclark/regexp2"
)

// Patterns for the manifest fields YouTube embeds in the watch page player response.
// They depend on undocumented markup: a renamed field makes extraction return nothing.
const (
	DashManifestPattern = `(?<=dashManifestUrl":").+?(?=",)`
	HLSManifestPattern  = `(?<=hlsManifestUrl":").*\.m3u8`
)

// FieldExtractor pulls a single field out of an opaque text blob.
type FieldExtractor interface {
	// Extract returns the first value found in body and false when there is none.
	Extract(body string) (string, bool)
}

// PatternExtractor is a [FieldExtractor] backed by a [regexp2.Regexp], which supports
// the lookbehind and lookahead assertions the stdlib regexp package lacks.
type PatternExtractor struct {
	re *regexp2.Regexp
}

// NewPatternExtractor compiles pattern. Matching has no time limit: a page that carries the field always yields it.
func NewPatternExtractor(pattern string) (*PatternExtractor, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}
	return &PatternExtractor{re: re}, nil
}

// MustPatternExtractor is like [NewPatternExtractor] but panics on an invalid pattern.
func MustPatternExtractor(pattern string) *PatternExtractor {
	e, err := NewPatternExtractor(pattern)
	if err != nil {
		panic("services: invalid extractor pattern: " + err.Error())
	}
	return e
}

// NewDashExtractor returns the extractor for the DASH manifest field.
func NewDashExtractor() *PatternExtractor {
	return MustPatternExtractor(DashManifestPattern)
}

// NewHLSExtractor returns the extractor for the HLS manifest field.
func NewHLSExtractor() *PatternExtractor {
	return MustPatternExtractor(HLSManifestPattern)
}

// Extract implements [FieldExtractor].
func (p *PatternExtractor) Extract(body string) (string, bool) {
	m, err := p.re.FindStringMatch(body)
	if err != nil || m == nil {
		return "", false
	}
	return m.String(), true
}

// FieldExtractorFunc adapts a plain function to [FieldExtractor].
type FieldExtractorFunc func(body string) (string, bool)

// Extract calls f(body).
func (f FieldExtractorFunc) Extract(body string) (string, bool) {
	return f(body)
}
