package uim

import (
	"errors"
	"fmt"
)

// Sentinel format-error causes used by the pre-order tree decoder and
// the RIFF container reader (spec.md §4.9 "Failure semantics").
var (
	errInvalidNodeKind  = errors.New("invalid tree node kind")
	errMultipleRoots    = errors.New("tree has more than one depth-0 node")
	errBadDepthSequence = errors.New("tree node depth does not follow its parent by exactly one")
	errBadMagic         = errors.New("bad RIFF magic")
	errTruncated        = errors.New("truncated RIFF stream")
	errBadHeaderChunk   = errors.New("DATA chunk must immediately follow HEAD")
)

// FormatError indicates that the RIFF container or one of its protobuf
// chunk payloads is damaged beyond interpretation.
type FormatError struct {
	Chunk string // chunk id, or "" if the damage precedes any chunk
	Pos   int64
	Err   error
}

func (e *FormatError) Error() string {
	loc := ""
	if e.Chunk != "" {
		loc = fmt.Sprintf(" in chunk %q", e.Chunk)
	}
	if e.Pos > 0 {
		loc += fmt.Sprintf(" (at byte %d)", e.Pos)
	}
	return "malformed UIM file" + loc + ": " + e.Err.Error()
}

func (e *FormatError) Unwrap() error { return e.Err }

// UnsupportedVersionError indicates a version triple the codec cannot
// decode.
type UnsupportedVersionError struct {
	Major, Minor, Patch byte
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported UIM version %d.%d.%d", e.Major, e.Minor, e.Patch)
}

// ConsistencyError indicates a post-parse invariant failure: a dangling
// id, or a violation of one of the global invariants I1-I5.
type ConsistencyError struct {
	Where string // node URI or id this failure is attached to
	Err   error
}

func (e *ConsistencyError) Error() string {
	loc := ""
	if e.Where != "" {
		loc = fmt.Sprintf(" [%s]", e.Where)
	}
	return "inconsistent UIM model" + loc + ": " + e.Err.Error()
}

func (e *ConsistencyError) Unwrap() error { return e.Err }

// NotFoundError indicates a lookup by id or name with no match.
type NotFoundError struct {
	Kind string // e.g. "stroke", "brush", "sensor-data"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

// AlreadyAttachedError indicates an attempt to attach a node that
// already has a parent.
type AlreadyAttachedError struct {
	NodeURI string
}

func (e *AlreadyAttachedError) Error() string {
	return fmt.Sprintf("node already attached: %s", e.NodeURI)
}

// MissingStrokeInMainTreeError indicates an attempt to reference a
// stroke from a view tree before it has been registered in the main
// tree.
type MissingStrokeInMainTreeError struct {
	StrokeID string
}

func (e *MissingStrokeInMainTreeError) Error() string {
	return fmt.Sprintf("stroke %s must be added to the main tree first", e.StrokeID)
}

// DuplicateURIError indicates an attempt to register a node URI that is
// already in use within the owning model.
type DuplicateURIError struct {
	URI string
}

func (e *DuplicateURIError) Error() string {
	return fmt.Sprintf("duplicate node URI: %s", e.URI)
}

// OutOfRangeError indicates a fragment index, t-value, or channel value
// outside its legal bounds.
type OutOfRangeError struct {
	Field string
	Value any
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s out of range: %v", e.Field, e.Value)
}

// InvalidArgumentError indicates an illegal combination of arguments,
// e.g. a raster brush with both inline bytes and a URI for one role.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string { return e.Msg }
