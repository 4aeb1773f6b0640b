package server

import "github.com/arnavsood/lumendb/internal/wire"

// ping replies PONG, or echoes its single argument (spec.md §4.1 example).
func ping(ctx *Context) wire.Value {
	if len(ctx.Args) == 1 {
		return wire.Status(ctx.Args[0])
	}
	return wire.Status("PONG")
}
