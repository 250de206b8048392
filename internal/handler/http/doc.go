// Package http is the blob server's REST transport.
//
// Authenticated routes under /api store, version, copy and presign opaque
// ciphertext blobs. The caller is identified by an EdDSA bearer token whose
// subject is the account public key, and every key is scoped to that
// account. /shared serves presigned downloads without credentials.
package http
