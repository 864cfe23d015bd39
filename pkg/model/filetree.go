package model

// FileKind identifies a file listing entry as a file or directory.
type FileKind string

const (
	FileKindFile FileKind = "file"
	FileKindDir  FileKind = "dir"
)

// FileEntry is a flat (path, kind, size) fact from a backend file listing.
// Path strings may or may not already contain intermediate directories.
type FileEntry struct {
	Path string   `json:"path"`
	Kind FileKind `json:"type"`
	Size int64    `json:"size,omitempty"`
}

// PathTreeNode is a synthesized hierarchical view over FileEntry facts. It
// has no identity beyond its Path string.
type PathTreeNode struct {
	Path     string          `json:"path"`
	Name     string          `json:"name"`
	Kind     FileKind        `json:"type"`
	Size     int64           `json:"size,omitempty"`
	Children []*PathTreeNode `json:"children,omitempty"`
}
