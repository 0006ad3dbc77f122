package repository

// StoreError wraps a failure of the underlying record store. The cause is
// retained for logging only; API callers convert any StoreError into a
// generic server failure and never leak the cause to the client.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "store: " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
