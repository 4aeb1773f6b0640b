package server

import (
	"strconv"

	"github.com/arnavsood/lumendb/internal/wire"
)

// del deletes every named key and returns the count actually removed.
func del(ctx *Context) wire.Value {
	return wire.Integer(ctx.Keyspace.Del(ctx.Args...))
}

// exists returns the count of names currently resolving to a live key.
func exists(ctx *Context) wire.Value {
	return wire.Integer(ctx.Keyspace.Exists(ctx.Args...))
}

// expire sets key's expiry to now+seconds, returning :1 if key existed or
// :0 if it didn't.
func expire(ctx *Context) wire.Value {
	seconds, err := strconv.ParseInt(ctx.Args[1], 10, 64)
	if err != nil {
		return errSyntax()
	}
	if ctx.Keyspace.Expire(ctx.Args[0], seconds) {
		return wire.Integer(1)
	}
	return wire.Integer(0)
}

// ttl returns -2 (absent), -1 (no expiry), or the remaining whole seconds.
func ttl(ctx *Context) wire.Value {
	return wire.Integer(ctx.Keyspace.TTL(ctx.Args[0]))
}

// dbsize returns the count of live top-level keys.
func dbsize(ctx *Context) wire.Value {
	return wire.Integer(ctx.Keyspace.DBSize())
}

// flushdb removes every key and expiry.
func flushdb(ctx *Context) wire.Value {
	ctx.Keyspace.FlushDB()
	return wire.Status("OK")
}
