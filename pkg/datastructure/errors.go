package datastructure

import "errors"

var (
	ErrEdgeEndpointNotFound = errors.New("datastructure: edge endpoint references a missing vertex")
	ErrNegativeEdgeLength   = errors.New("datastructure: edge length must be a non-negative number")
	ErrMalformedGraphFile   = errors.New("datastructure: malformed graph file")
)
