package server

import (
	"github.com/arnavsood/lumendb/internal/keyspace"
	"github.com/arnavsood/lumendb/internal/wire"
)

// Context is the per-invocation state handed to a Command: the argument
// tokens following the command name, and the shared keyspace.
type Context struct {
	Args     []string
	Keyspace *keyspace.Keyspace
}

// Command executes against a Context and produces exactly one reply.
// Ported from the teacher's internal/server.Command/CommandFunc shape.
type Command interface {
	Execute(ctx *Context) wire.Value
}

// CommandFunc adapts a plain function to the Command interface.
type CommandFunc func(ctx *Context) wire.Value

// Execute calls f.
func (f CommandFunc) Execute(ctx *Context) wire.Value {
	return f(ctx)
}
