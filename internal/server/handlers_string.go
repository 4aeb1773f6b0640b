package server

import (
	"strconv"
	"strings"
	"time"

	"github.com/arnavsood/lumendb/internal/keyspace"
	"github.com/arnavsood/lumendb/internal/wire"
)

// get returns the string value at key, or a null bulk if absent.
func get(ctx *Context) wire.Value {
	value, ok, err := ctx.Keyspace.GetString(ctx.Args[0])
	if err != nil {
		return wire.Error(err.Error())
	}
	if !ok {
		return wire.NullBulk()
	}
	return wire.Bulk(value)
}

// set implements SET key value [EX seconds] [NX] (spec.md §4.3). EX and NX
// may appear in either order; EX's argument must be a positive integer
// count of seconds.
func set(ctx *Context) wire.Value {
	key, value := ctx.Args[0], ctx.Args[1]

	opts := keyspace.StringSetOptions{}
	rest := ctx.Args[2:]

	for i := 0; i < len(rest); i++ {
		switch strings.ToUpper(rest[i]) {
		case "EX":
			if i+1 >= len(rest) {
				return errSyntax()
			}
			seconds, err := strconv.ParseInt(rest[i+1], 10, 64)
			if err != nil || seconds <= 0 {
				return errSyntax()
			}
			opts.TTL = time.Duration(seconds) * time.Second
			i++
		case "NX":
			opts.NX = true
		default:
			return errSyntax()
		}
	}

	if !ctx.Keyspace.SetString(key, value, opts) {
		return wire.NullBulk()
	}
	return wire.Status("OK")
}
