package keyspace

import "errors"

// ErrWrongType is returned when a command targets a key whose stored
// variant doesn't match the command's expected type (spec.md §7 "Type"
// error).
var ErrWrongType = errors.New("WRONGTYPE operation against a key holding the wrong kind of value")
