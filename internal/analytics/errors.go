package analytics

import "errors"

// Erros de contrato do motor de agregação
var (
	ErrInvalidPeriodCount     = errors.New("period count must be at least 1")
	ErrUnsupportedGranularity = errors.New("unsupported granularity")
	ErrShapeMismatch          = errors.New("series lengths do not match")
	ErrDuplicateSeries        = errors.New("duplicate series name")
)
