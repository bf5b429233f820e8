// pkg/car/progress.go
package car

import "github.com/ipfs/go-cid"

// ProgressCallback is called for progress updates during decode
type ProgressCallback func(event ProgressEvent)

// ProgressEvent contains progress information
type ProgressEvent struct {
	Type         EventType
	CID          cid.Cid
	BlockIndex   int
	PayloadBytes int
}

// EventType indicates the type of progress event
type EventType int

const (
	EventHeader EventType = iota
	EventBlock
	EventIndex
	EventComplete
)
