package persist

import "fmt"

// magic identifies an encoded tree; version is bumped on any layout
// change. Decode rejects anything that does not match both exactly.
const (
	magic          = "BHT1"
	formatVersion  = byte(1)
	magicSize      = 4
	versionSize    = 1
	reservedSize   = 3
	nodeCountSize  = 4
	rootSize       = 4
	vec3Size       = 24 // 3 * float64
	boundsSize     = 8  // the bounding cube's Size field
	headerSize     = magicSize + versionSize + reservedSize + nodeCountSize + rootSize + vec3Size + boundsSize

	// Per-node record: leaf flag, reserved alignment padding, center,
	// size, mass total, center-of-mass, eight child indices, and the
	// leaf body offset/count (unused, zero, on internal nodes).
	leafFlagSize     = 1
	nodeReservedSize = 7
	nodeSizeSize     = 8
	massTotalSize    = 8
	childSlotSize    = 4
	childSlotCount   = 8
	bodyCountSize    = 4
	bodyOffsetSize   = 4
	nodeRecordSize   = leafFlagSize + nodeReservedSize + vec3Size + nodeSizeSize +
		massTotalSize + vec3Size + childSlotSize*childSlotCount + bodyCountSize + bodyOffsetSize

	// Per-body record, in the trailing section.
	bodyMassSize   = 8
	bodyIDSize     = 8
	bodyRecordSize = vec3Size + bodyMassSize + bodyIDSize
)

// Sentinel errors for decoding malformed input.
var (
	errShortBuffer      = fmt.Errorf("buffer too short to be an encoded tree")
	errBadMagic         = fmt.Errorf("missing or corrupt magic header")
	errVersionMismatch  = fmt.Errorf("encoded tree format version does not match this decoder")
	errTruncated        = fmt.Errorf("buffer ends before every node or body record was read")
	errBodySliceInvalid = fmt.Errorf("a leaf node's body offset/count falls outside the body section")

	// ErrShortBuffer is returned when data is too small to contain
	// even a header.
	ErrShortBuffer = fmt.Errorf("persist: %w", errShortBuffer)
	// ErrBadMagic is returned when data does not begin with the
	// expected magic bytes.
	ErrBadMagic = fmt.Errorf("persist: %w", errBadMagic)
	// ErrVersionMismatch is returned when data's version byte does
	// not match the version this package encodes.
	ErrVersionMismatch = fmt.Errorf("persist: %w", errVersionMismatch)
	// ErrTruncated is returned when data ends before every node or
	// body record it claims to hold has been read.
	ErrTruncated = fmt.Errorf("persist: %w", errTruncated)
	// ErrInvalidBodyRange is returned when a leaf node's encoded
	// body offset/count does not fit within the trailing body
	// section.
	ErrInvalidBodyRange = fmt.Errorf("persist: %w", errBodySliceInvalid)
)
