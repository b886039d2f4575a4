package routing

import "errors"

var (
	ErrEdgeNotFound       = errors.New("routing: no edge between the two vertices")
	ErrMissingElevation   = errors.New("routing: vertex has no elevation")
	ErrDisconnectedParent = errors.New("routing: parent chain does not reach the root")
	ErrDisconnectedGraph  = errors.New("routing: start and end are not connected")
	ErrInvalidOverhead    = errors.New("routing: overhead percentage must be a non-negative number")
	ErrVertexNotFound     = errors.New("routing: vertex is not in the graph")
)
