package domain

import "strings"

// EntryType distinguishes files from directories in a listing.
type EntryType string

const (
	// EntryFile is a regular file entry.
	EntryFile EntryType = "file"

	// EntryDir is a directory entry.
	EntryDir EntryType = "dir"
)

// Entry is one immediate child returned by a directory listing, in the
// order the host returned it.
type Entry struct {
	Name        string
	Path        string
	Type        EntryType
	Size        int64
	DownloadURL string
}

// TreeNode is one file or directory in a built repository tree.
// Directories own their children in listing order; files carry size and a
// raw download reference. The tree is built once per request and owned
// solely by that request.
type TreeNode struct {
	Name        string     `json:"name"`
	Path        string     `json:"path"`
	Type        EntryType  `json:"type"`
	Size        int64      `json:"size"`
	DownloadURL string     `json:"downloadRef,omitempty"`
	Children    []TreeNode `json:"children,omitempty"`

	// FetchFailed marks a directory whose listing could not be retrieved.
	// Its children are empty but the directory is not known to be empty.
	FetchFailed bool `json:"fetchFailed,omitempty"`
}

// IsDir reports whether the node is a directory.
func (n *TreeNode) IsDir() bool {
	return n.Type == EntryDir
}

// NodeFromEntry converts a listing entry into a childless tree node.
func NodeFromEntry(e Entry) TreeNode {
	return TreeNode{
		Name:        e.Name,
		Path:        e.Path,
		Type:        e.Type,
		Size:        e.Size,
		DownloadURL: e.DownloadURL,
	}
}

// Extension returns the file extension without the leading dot: the
// substring after the last "." in name, or "" when there is none.
func Extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return name[i+1:]
}
