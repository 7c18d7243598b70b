package agent

import "errors"

// Failure sentinels attached at raise point. Callers classify with
// errors.Is or Classify rather than matching message text.
var (
	ErrExtraction = errors.New("script extraction failed")
	ErrValidation = errors.New("script validation failed")
	ErrAnalysis   = errors.New("script analysis failed")
)

// ErrorKind enumerates analysis failure categories.
type ErrorKind string

const (
	KindNone       ErrorKind = ""
	KindExtraction ErrorKind = "extraction"
	KindValidation ErrorKind = "validation"
	KindAnalysis   ErrorKind = "analysis"
)

// Classify returns the ErrorKind for an agent error.
// Unrecognized errors classify as KindAnalysis; nil classifies as KindNone.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, ErrExtraction) {
		return KindExtraction
	}
	if errors.Is(err, ErrValidation) {
		return KindValidation
	}
	return KindAnalysis
}
