package models

// CopyProgress reports the state of a batch copy after one item has been
// committed. Copied is the newly created entry.
type CopyProgress struct {
	Completed int
	Total     int
	Copied    FileEntry
}
