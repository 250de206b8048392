package models

// ManifestBlobKey is the fixed storage key of the sealed manifest.
const ManifestBlobKey = "manifest.enc"

// fileBlobPrefix namespaces content blobs by file identifier.
const fileBlobPrefix = "files/"

// FileBlobKey returns the storage key of the content blob of fileID.
func FileBlobKey(fileID string) string {
	return fileBlobPrefix + fileID
}
