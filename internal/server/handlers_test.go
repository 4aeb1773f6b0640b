package server

import (
	"testing"

	"github.com/arnavsood/lumendb/internal/config"
	"github.com/arnavsood/lumendb/internal/keyspace"
	"github.com/arnavsood/lumendb/internal/wire"
	"go.uber.org/zap"
)

func newTestEngine() *Engine {
	cfg := &config.Config{GC: config.GCConfig{Enabled: false}}
	return NewEngine(keyspace.New(), cfg, zap.NewNop())
}

func TestPingWithAndWithoutArgument(t *testing.T) {
	e := newTestEngine()

	if got := e.Execute("PING", nil); got.Kind != wire.KindStatus || string(got.Str) != "PONG" {
		t.Fatalf("PING = %+v, want PONG", got)
	}
	if got := e.Execute("ping", []string{"hello"}); got.Kind != wire.KindStatus || string(got.Str) != "hello" {
		t.Fatalf("PING hello = %+v, want echo", got)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	e := newTestEngine()

	if got := e.Execute("SET", []string{"k", "v"}); got.Kind != wire.KindStatus || string(got.Str) != "OK" {
		t.Fatalf("SET = %+v", got)
	}
	got := e.Execute("GET", []string{"k"})
	if got.Kind != wire.KindBulk || string(got.Str) != "v" {
		t.Fatalf("GET = %+v, want bulk v", got)
	}
}

func TestGetMissingReturnsNullBulk(t *testing.T) {
	e := newTestEngine()
	got := e.Execute("GET", []string{"absent"})
	if got.Kind != wire.KindBulk || !got.Null {
		t.Fatalf("GET absent = %+v, want null bulk", got)
	}
}

func TestSetNXFailsOnExistingKey(t *testing.T) {
	e := newTestEngine()
	e.Execute("SET", []string{"k", "v1"})

	got := e.Execute("SET", []string{"k", "v2", "NX"})
	if got.Kind != wire.KindBulk || !got.Null {
		t.Fatalf("SET NX on existing = %+v, want null bulk", got)
	}

	got = e.Execute("GET", []string{"k"})
	if string(got.Str) != "v1" {
		t.Fatalf("GET after failed NX = %+v, want v1", got)
	}
}

func TestSetExBadOptionIsSyntaxError(t *testing.T) {
	e := newTestEngine()
	got := e.Execute("SET", []string{"k", "v", "EX", "-5"})
	if got.Kind != wire.KindError {
		t.Fatalf("SET EX -5 = %+v, want error", got)
	}
}

func TestUnknownCommand(t *testing.T) {
	e := newTestEngine()
	got := e.Execute("NOSUCHCMD", nil)
	if got.Kind != wire.KindError {
		t.Fatalf("unknown command = %+v, want error", got)
	}
}

func TestWrongArity(t *testing.T) {
	e := newTestEngine()
	got := e.Execute("GET", nil)
	if got.Kind != wire.KindError {
		t.Fatalf("GET with no args = %+v, want error", got)
	}
}

func TestZAddAndRangeWithScores(t *testing.T) {
	e := newTestEngine()

	got := e.Execute("ZADD", []string{"z", "1", "one", "2", "two", "3", "three"})
	if got.Kind != wire.KindInteger || got.Int != 3 {
		t.Fatalf("ZADD = %+v, want :3", got)
	}

	got = e.Execute("ZRANGE", []string{"z", "0", "1", "WITHSCORES"})
	wantItems := []string{"one", "1.000000", "two", "2.000000"}
	if got.Kind != wire.KindArray || len(got.Items) != len(wantItems) {
		t.Fatalf("ZRANGE WITHSCORES = %+v, want %v", got, wantItems)
	}
	for i := range wantItems {
		if got.Items[i] != wantItems[i] {
			t.Fatalf("ZRANGE item %d = %q, want %q", i, got.Items[i], wantItems[i])
		}
	}
}

func TestZRangeByScoreInclusive(t *testing.T) {
	e := newTestEngine()
	e.Execute("ZADD", []string{"z", "1", "one", "2", "two", "3", "three"})

	got := e.Execute("ZRANGEBYSCORE", []string{"z", "1", "2"})
	want := []string{"one", "two"}
	if len(got.Items) != len(want) {
		t.Fatalf("ZRANGEBYSCORE = %+v, want %v", got, want)
	}
	for i, name := range want {
		if got.Items[i] != name {
			t.Fatalf("ZRANGEBYSCORE item %d = %q, want %q", i, got.Items[i], name)
		}
	}
}

func TestZAddRejectsNaN(t *testing.T) {
	e := newTestEngine()
	got := e.Execute("ZADD", []string{"z", "nan", "one"})
	if got.Kind != wire.KindError {
		t.Fatalf("ZADD NaN = %+v, want error", got)
	}
}

func TestWrongTypeErrorSurfacesAtDispatch(t *testing.T) {
	e := newTestEngine()
	e.Execute("SET", []string{"k", "v"})

	got := e.Execute("ZADD", []string{"k", "1", "m"})
	if got.Kind != wire.KindError {
		t.Fatalf("ZADD on string key = %+v, want error", got)
	}
}

func TestDelAndExists(t *testing.T) {
	e := newTestEngine()
	e.Execute("SET", []string{"a", "1"})
	e.Execute("SET", []string{"b", "2"})

	if got := e.Execute("EXISTS", []string{"a", "b", "c"}); got.Kind != wire.KindInteger || got.Int != 2 {
		t.Fatalf("EXISTS = %+v, want :2", got)
	}
	if got := e.Execute("DEL", []string{"a", "b", "c"}); got.Kind != wire.KindInteger || got.Int != 2 {
		t.Fatalf("DEL = %+v, want :2", got)
	}
	if got := e.Execute("DBSIZE", nil); got.Kind != wire.KindInteger || got.Int != 0 {
		t.Fatalf("DBSIZE = %+v, want :0", got)
	}
}
