package registry

import "errors"

// Sentinel errors for the operations built on the registry. Store I/O
// failures are not sentinels; they wrap the underlying filesystem
// error with fmt.Errorf("...: %w", err) so callers can errors.Is
// against os-level conditions.
var (
	// ErrInvalidInput marks a precondition violation, e.g. fewer than
	// two personas on create.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a lookup miss against the registry.
	ErrNotFound = errors.New("epistle not found")

	// ErrDocumentMissing means the registry entry exists but its
	// satellite document does not. Deliberately distinct from
	// ErrNotFound: the registry is authoritative, the document is not.
	ErrDocumentMissing = errors.New("epistle document missing")
)
