package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound = ErrorKind("Not Found")

	// InvalidArgument is returned when a submitted value fails validation.
	InvalidArgument = ErrorKind("Invalid Argument")

	// Conflict is returned when a request collides with existing state (e.g. a UTXO already listed).
	Conflict = ErrorKind("Conflict")

	// Unsupported is returned when a feature or value is not supported.
	Unsupported = ErrorKind("Unsupported")

	// InternalError is returned when something unexpected happened inside the service.
	InternalError = ErrorKind("Internal Error")

	// Timeout is returned when an operation did not finish in time.
	Timeout = ErrorKind("Timeout")

	// LedgerPending is returned when the node cannot answer yet (unconfirmed data, warmup, initial sync).
	// Callers treat it as transient and retry on the next cycle.
	LedgerPending = ErrorKind("Ledger Pending")

	// LedgerUnavailable is returned when the node cannot be reached.
	LedgerUnavailable = ErrorKind("Ledger Unavailable")

	// LedgerError is returned when the node answered with an RPC error.
	LedgerError = ErrorKind("Ledger Error")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
