package ports

import "image"

// DisplaySink shows one encoded still image in a single widget.
type DisplaySink interface {
	Show(data []byte)
}

// FilePicker asks the user for a video path. ok is false when cancelled.
type FilePicker interface {
	PickFile() (path string, ok bool)
}

// SnapshotWriter persists a frame and returns the path it was written to.
type SnapshotWriter interface {
	Save(img image.Image) (string, error)
}

// Toggleable is implemented by sinks that may discard everything they are
// given. Callers skip producing output for a sink whose Enabled is false.
type Toggleable interface {
	Enabled() bool
}
