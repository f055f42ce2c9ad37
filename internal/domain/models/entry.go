package models

import "time"

// EntryKind distinguishes files from folders in the workbench listing.
type EntryKind string

// Entry kinds.
const (
	KindFile   EntryKind = "file"
	KindFolder EntryKind = "folder"
)

// Entry represents a file or folder shown in the dashboard listing.
//
// SizeLabel is the human-readable size string ("500 Bytes", "2.00 MB")
// and is present only for files; folders carry an empty label. Sorting
// and the usage meter parse the label back to bytes via sizeutil.
type Entry struct {
	ID         string    // unique within the store (uuid)
	Name       string    // display name
	NameCI     string    // folded for case-insensitive search/sort
	Kind       EntryKind // file or folder
	SizeLabel  string    // empty for folders
	Favorite   bool
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// IsFolder returns true if the entry is a folder.
func (e *Entry) IsFolder() bool {
	return e.Kind == KindFolder
}
