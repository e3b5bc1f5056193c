package lock

import "errors"

// ErrNotObtained is returned when a key stays held by someone else for the whole wait.
var ErrNotObtained = errors.New("lock not obtained")
