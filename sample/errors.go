package sample

import "errors"

// Construction-time failures abort collection construction entirely; no
// partial collection is ever returned. Access-time failures are raised at the
// point of access and leave the collection intact.
var (
	// ErrConfiguration marks a collection built from inconsistent inputs:
	// samples not sharing one metadata table, or a malformed metadata file.
	ErrConfiguration = errors.New("inconsistent sample collection configuration")

	// ErrMissingResource marks a referenced sample file that does not exist.
	// Fatal under strict construction; a logged skip otherwise.
	ErrMissingResource = errors.New("sample source file does not exist")

	// ErrIndexOutOfRange marks an out-of-range sample or pair index.
	ErrIndexOutOfRange = errors.New("sample index out of range")

	// ErrUnknownSample marks an id-based lookup for an id the collection does
	// not hold.
	ErrUnknownSample = errors.New("unknown sample id")
)
