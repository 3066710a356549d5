package dto

import (
	"errors"
	"fmt"
)

// ErrQRUnavailable is returned once every QR template in the fallback
// cascade has been tried without producing a usable image.
var ErrQRUnavailable = errors.New("cannot fetch QR image from any template")

// ExtractionError means the uploaded buffer is not a usable PDF
// (unparseable, encrypted, or no extractable text). Fatal, no retry.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// AssemblyError means page copying produced an empty document.
type AssemblyError struct {
	Reason string
	Err    error
}

func (e *AssemblyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("assembly failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("assembly failed: %s", e.Reason)
}

func (e *AssemblyError) Unwrap() error { return e.Err }

// RenderError means the PDK overlay could not be produced. It is
// raised before any bytes are written; a partial form is never
// returned.
type RenderError struct {
	Reason string
	Err    error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("render failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("render failed: %s", e.Reason)
}

func (e *RenderError) Unwrap() error { return e.Err }
