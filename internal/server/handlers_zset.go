package server

import (
	"math"
	"strconv"
	"strings"

	"github.com/arnavsood/lumendb/internal/keyspace"
	"github.com/arnavsood/lumendb/internal/wire"
	"github.com/arnavsood/lumendb/internal/zset"
)

// parseScore parses s as a finite float64, rejecting NaN and Inf per
// spec.md §9 Open Question 2.
func parseScore(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// zadd implements ZADD key score member [score member ...].
func zadd(ctx *Context) wire.Value {
	rest := ctx.Args[1:]
	if len(rest)%2 != 0 {
		return errSyntax()
	}

	pairs := make([]keyspace.ScoreMember, 0, len(rest)/2)
	for i := 0; i < len(rest); i += 2 {
		score, ok := parseScore(rest[i])
		if !ok {
			return errNotFloat()
		}
		pairs = append(pairs, keyspace.ScoreMember{Score: score, Member: rest[i+1]})
	}

	added, err := ctx.Keyspace.ZAdd(ctx.Args[0], pairs)
	if err != nil {
		return wire.Error(err.Error())
	}
	return wire.Integer(added)
}

// zrem implements ZREM key member [member ...].
func zrem(ctx *Context) wire.Value {
	removed, err := ctx.Keyspace.ZRem(ctx.Args[0], ctx.Args[1:])
	if err != nil {
		return wire.Error(err.Error())
	}
	return wire.Integer(removed)
}

// zscore implements ZSCORE key member.
func zscore(ctx *Context) wire.Value {
	score, ok, err := ctx.Keyspace.ZScore(ctx.Args[0], ctx.Args[1])
	if err != nil {
		return wire.Error(err.Error())
	}
	if !ok {
		return wire.NullBulk()
	}
	return wire.Bulk(wire.FormatScore(score))
}

// zcard implements ZCARD key.
func zcard(ctx *Context) wire.Value {
	n, err := ctx.Keyspace.ZCard(ctx.Args[0])
	if err != nil {
		return wire.Error(err.Error())
	}
	return wire.Integer(n)
}

// zrank implements ZRANK key member.
func zrank(ctx *Context) wire.Value {
	rank, ok, err := ctx.Keyspace.ZRank(ctx.Args[0], ctx.Args[1])
	if err != nil {
		return wire.Error(err.Error())
	}
	if !ok {
		return wire.NullBulk()
	}
	return wire.Integer(rank)
}

// zrange implements ZRANGE key start stop [WITHSCORES].
func zrange(ctx *Context) wire.Value {
	start, err1 := strconv.ParseInt(ctx.Args[1], 10, 64)
	stop, err2 := strconv.ParseInt(ctx.Args[2], 10, 64)
	if err1 != nil || err2 != nil {
		return errSyntax()
	}

	withScores, ok := parseWithScores(ctx.Args[3:])
	if !ok {
		return errSyntax()
	}

	members, err := ctx.Keyspace.ZRange(ctx.Args[0], start, stop)
	if err != nil {
		return wire.Error(err.Error())
	}
	return membersToArray(members, withScores)
}

// zrangebyscore implements ZRANGEBYSCORE key min max [WITHSCORES].
func zrangebyscore(ctx *Context) wire.Value {
	min, ok1 := parseScore(ctx.Args[1])
	max, ok2 := parseScore(ctx.Args[2])
	if !ok1 || !ok2 {
		return errNotFloat()
	}

	withScores, ok := parseWithScores(ctx.Args[3:])
	if !ok {
		return errSyntax()
	}

	members, err := ctx.Keyspace.ZRangeByScore(ctx.Args[0], min, max)
	if err != nil {
		return wire.Error(err.Error())
	}
	return membersToArray(members, withScores)
}

// parseWithScores validates the optional trailing WITHSCORES token.
func parseWithScores(rest []string) (withScores bool, ok bool) {
	switch len(rest) {
	case 0:
		return false, true
	case 1:
		if strings.EqualFold(rest[0], "WITHSCORES") {
			return true, true
		}
	}
	return false, false
}

// membersToArray renders members as a flat array reply, interleaving
// formatted scores when withScores is set (spec.md §8 scenario S4).
func membersToArray(members []zset.Member, withScores bool) wire.Value {
	items := make([]string, 0, len(members)*2)
	for _, m := range members {
		items = append(items, m.Name)
		if withScores {
			items = append(items, wire.FormatScore(m.Score))
		}
	}
	return wire.Array(items)
}
