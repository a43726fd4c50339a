package sim

import "errors"

// Sentinel causes callers can branch on with errors.Is
var (
	ErrNotFound      = errors.New("not found")
	ErrTreatyBlocked = errors.New("blocked by treaty")
)
