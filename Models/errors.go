package Models

import "errors"

// Error kinds surfaced to the screens. Handlers map them to HTTP statuses
// with errors.Is; everything else is treated as an internal failure.
var (
	// ErrValidation marks user input that violates a domain invariant.
	// Nothing is mutated when it is returned.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a lookup of an unknown (year, id) or document id.
	// Deletes treat it as success, lookups as a validation failure.
	ErrNotFound = errors.New("not found")

	// ErrTransport marks a failed remote-store operation. The in-memory
	// state already reflects the attempted change; the screen advises retry.
	ErrTransport = errors.New("store transport failed")

	// ErrNotification marks a failed outbound notification. It never rolls
	// back a successful save and is surfaced as a warning only.
	ErrNotification = errors.New("notification failed")

	// ErrRestore marks a partially failed snapshot restore; sheets imported
	// before the failure stand.
	ErrRestore = errors.New("restore failed")
)
