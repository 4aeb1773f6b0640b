package server

import (
	"fmt"
	"strings"

	"github.com/arnavsood/lumendb/internal/wire"
)

// errSyntax is the generic syntax-error reply for bad option tokens,
// unparseable numeric arguments, and the like (spec.md §7 "Syntax").
func errSyntax() wire.Value {
	return wire.Error("ERR syntax error")
}

// errWrongArity mirrors the teacher's resp.MakeErrorWrongNumberOfArguments.
func errWrongArity(cmd string) wire.Value {
	return wire.Error(fmt.Sprintf("ERR wrong number of arguments for '%s' command", strings.ToLower(cmd)))
}

// errUnknownCommand replies for a command token absent from the registry.
func errUnknownCommand(cmd string) wire.Value {
	return wire.Error(fmt.Sprintf("ERR unknown command '%s'", cmd))
}

// errNotFloat is spec.md §7's "Overflow/underflow" error for a score token
// that doesn't parse as a finite float64 (including NaN, which spec.md §9
// Open Question 2 commits to rejecting).
func errNotFloat() wire.Value {
	return wire.Error("ERR value is not a valid float")
}
