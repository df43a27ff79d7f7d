package ports

// FileSystem is the subset of file operations used by sinks and writers.
type FileSystem interface {
	// WriteFile writes data to path, creating parent directories as needed.
	WriteFile(path string, data []byte) error

	// Rename atomically replaces newPath with oldPath.
	Rename(oldPath, newPath string) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)
}
