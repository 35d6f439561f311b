package uim

import "fmt"

// ParseVersion parses the "major.minor.patch" textual form produced by
// [Version.String].
func ParseVersion(s string) (Version, error) {
	var v Version
	var major, minor, patch int
	n, err := fmt.Sscanf(s, "%d.%d.%d", &major, &minor, &patch)
	if err != nil || n != 3 {
		return v, &InvalidArgumentError{Msg: fmt.Sprintf("malformed version: %q", s)}
	}
	if major < 0 || major > 255 || minor < 0 || minor > 255 || patch < 0 || patch > 255 {
		return v, &InvalidArgumentError{Msg: fmt.Sprintf("version component out of range: %q", s)}
	}
	return Version{byte(major), byte(minor), byte(patch)}, nil
}

// Version is a UIM on-disk format version triple.
type Version struct {
	Major, Minor, Patch byte
}

// V3_0_0 is the legacy, read-only binary version.
var V3_0_0 = Version{3, 0, 0}

// V3_1_0 is the current, read-write binary version.
var V3_1_0 = Version{3, 1, 0}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0, or 1 depending on whether v is less than, equal
// to, or greater than w, comparing major, then minor, then patch.
func (v Version) Compare(w Version) int {
	for _, pair := range [][2]byte{{v.Major, w.Major}, {v.Minor, w.Minor}, {v.Patch, w.Patch}} {
		if pair[0] != pair[1] {
			if pair[0] < pair[1] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// ContentType identifies the encoding used for every non-header chunk
// payload.
type ContentType byte

const (
	ContentTypeProtobuf ContentType = 0
	ContentTypeJSON     ContentType = 1
	ContentTypeText     ContentType = 2
	ContentTypeBinary   ContentType = 3
)

// CompressionType identifies the compression, if any, applied to a
// chunk payload before it was wrapped in the RIFF container.
type CompressionType byte

const (
	CompressionNone CompressionType = 0
	CompressionZIP  CompressionType = 1
	CompressionLZMA CompressionType = 2
)
