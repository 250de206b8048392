package models

// UploadRequest describes one plaintext file to add to the drive. A nil
// FolderID uploads to the root.
type UploadRequest struct {
	FileName string
	MimeType string
	Content  []byte
	FolderID *string
}
