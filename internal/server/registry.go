package server

// commandMetadata declares a command's arity bounds (tokens after the
// command name itself). max == -1 means unbounded. Direct descendant of
// the teacher's docs.go commandRegistry, trimmed to exactly spec.md §6's
// command surface and extended with a max bound so the dispatcher — not
// each handler — can reject excess/unknown option tokens up front
// (spec.md §4.5).
type commandMetadata struct {
	min int
	max int // -1 = unbounded
}

var commandRegistry = map[string]commandMetadata{
	"PING":          {0, 1},
	"SET":           {2, 5},
	"GET":           {1, 1},
	"DEL":           {1, -1},
	"EXISTS":        {1, -1},
	"EXPIRE":        {2, 2},
	"TTL":           {1, 1},
	"DBSIZE":        {0, 0},
	"FLUSHDB":       {0, 0},
	"ZADD":          {3, -1},
	"ZREM":          {2, -1},
	"ZSCORE":        {2, 2},
	"ZCARD":         {1, 1},
	"ZRANK":         {2, 2},
	"ZRANGE":        {3, 4},
	"ZRANGEBYSCORE": {3, 4},
}
