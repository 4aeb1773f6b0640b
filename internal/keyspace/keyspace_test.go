package keyspace

import (
	"testing"
	"time"
)

func TestRoundTripString(t *testing.T) {
	k := New()

	if ok := k.SetString("k", "v", StringSetOptions{}); !ok {
		t.Fatal("expected SetString to succeed")
	}
	val, ok, err := k.GetString("k")
	if err != nil || !ok || val != "v" {
		t.Fatalf("got (%q, %v, %v), want (v, true, nil)", val, ok, err)
	}
	if n := k.Exists("k"); n != 1 {
		t.Errorf("Exists = %d, want 1", n)
	}
}

func TestSetNXExclusivity(t *testing.T) {
	k := New()
	k.SetString("k", "v1", StringSetOptions{})

	ok := k.SetString("k", "v2", StringSetOptions{NX: true})
	if ok {
		t.Error("expected NX write on existing key to fail")
	}
	val, _, _ := k.GetString("k")
	if val != "v1" {
		t.Errorf("NX should not have changed value, got %q", val)
	}
}

func TestSetWithoutEXClearsExistingTTL(t *testing.T) {
	k := New()
	k.SetString("k", "v1", StringSetOptions{TTL: time.Hour})
	if ttl := k.TTL("k"); ttl <= 0 {
		t.Fatalf("expected positive TTL, got %d", ttl)
	}

	k.SetString("k", "v2", StringSetOptions{})
	if ttl := k.TTL("k"); ttl != -1 {
		t.Errorf("expected TTL cleared (-1), got %d", ttl)
	}
}

func TestTTLCodes(t *testing.T) {
	k := New()

	if ttl := k.TTL("missing"); ttl != -2 {
		t.Errorf("missing key TTL = %d, want -2", ttl)
	}

	k.SetString("persistent", "v", StringSetOptions{})
	if ttl := k.TTL("persistent"); ttl != -1 {
		t.Errorf("persistent key TTL = %d, want -1", ttl)
	}

	k.SetString("withttl", "v", StringSetOptions{TTL: 10 * time.Second})
	ttl := k.TTL("withttl")
	if ttl < 0 || ttl > 10 {
		t.Errorf("withttl TTL = %d, want in [0,10]", ttl)
	}
}

func TestExpiryViaFakeClock(t *testing.T) {
	k := New()
	now := time.Unix(1000, 0)
	k.now = func() time.Time { return now }

	k.SetString("k", "v", StringSetOptions{TTL: time.Second})
	if _, ok, _ := k.GetString("k"); !ok {
		t.Fatal("expected key alive before expiry")
	}

	now = now.Add(2 * time.Second)
	if _, ok, _ := k.GetString("k"); ok {
		t.Error("expected key expired after TTL elapsed")
	}
	if n := k.DBSize(); n != 0 {
		t.Errorf("DBSize after expiry = %d, want 0", n)
	}
}

func TestDelAccounting(t *testing.T) {
	k := New()
	k.SetString("a", "1", StringSetOptions{})
	k.SetString("b", "2", StringSetOptions{})

	n := k.Del("a", "a", "b", "missing")
	if n != 2 {
		t.Errorf("Del count = %d, want 2 (a evicted on first occurrence, second is a no-op, plus b)", n)
	}
	if n := k.DBSize(); n != 0 {
		t.Errorf("DBSize after Del = %d, want 0", n)
	}
}

func TestWrongTypeError(t *testing.T) {
	k := New()
	if _, err := k.ZAdd("z", []ScoreMember{{Score: 1, Member: "m"}}); err != nil {
		t.Fatalf("ZAdd: %v", err)
	}
	if _, _, err := k.GetString("z"); err != ErrWrongType {
		t.Errorf("GetString on zset key: got err %v, want ErrWrongType", err)
	}

	k.SetString("s", "v", StringSetOptions{})
	if _, err := k.ZAdd("s", []ScoreMember{{Score: 1, Member: "m"}}); err != ErrWrongType {
		t.Errorf("ZAdd on string key: got err %v, want ErrWrongType", err)
	}
}

func TestZAddNoveltyCount(t *testing.T) {
	k := New()
	n, err := k.ZAdd("z", []ScoreMember{{Score: 1, Member: "one"}, {Score: 2, Member: "two"}})
	if err != nil || n != 2 {
		t.Fatalf("first ZAdd = (%d, %v), want (2, nil)", n, err)
	}

	n, err = k.ZAdd("z", []ScoreMember{{Score: 5, Member: "one"}})
	if err != nil || n != 0 {
		t.Fatalf("score-only update ZAdd = (%d, %v), want (0, nil)", n, err)
	}
	score, ok, _ := k.ZScore("z", "one")
	if !ok || score != 5 {
		t.Errorf("ZScore(one) = (%v, %v), want (5, true)", score, ok)
	}
}

func TestEmptySetCollapse(t *testing.T) {
	k := New()
	k.ZAdd("z", []ScoreMember{{Score: 1, Member: "only"}})

	n, err := k.ZRem("z", []string{"only"})
	if err != nil || n != 1 {
		t.Fatalf("ZRem = (%d, %v), want (1, nil)", n, err)
	}
	if card, _ := k.ZCard("z"); card != 0 {
		t.Errorf("ZCard after collapse = %d, want 0", card)
	}
	if n := k.Exists("z"); n != 0 {
		t.Errorf("Exists after collapse = %d, want 0", n)
	}
}

func TestZRangeNegativeIndices(t *testing.T) {
	k := New()
	k.ZAdd("z", []ScoreMember{
		{Score: 1, Member: "one"},
		{Score: 2, Member: "two"},
		{Score: 3, Member: "three"},
	})

	members, err := k.ZRange("z", 0, -1)
	if err != nil || len(members) != 3 {
		t.Fatalf("ZRange(0,-1) = (%v, %v), want 3 members", members, err)
	}
	if members[len(members)-1].Name != "three" {
		t.Errorf("last member = %s, want three", members[len(members)-1].Name)
	}

	members, _ = k.ZRange("z", -2, -1)
	if len(members) != 2 || members[0].Name != "two" || members[1].Name != "three" {
		t.Errorf("ZRange(-2,-1) = %v, want [two three]", members)
	}

	members, _ = k.ZRange("z", 5, 10)
	if len(members) != 0 {
		t.Errorf("ZRange(5,10) out of bounds = %v, want empty", members)
	}
}

func TestDeleteExpiredActiveGC(t *testing.T) {
	k := New()
	now := time.Unix(0, 0)
	k.now = func() time.Time { return now }

	for i := 0; i < 10; i++ {
		k.SetString(string(rune('a'+i)), "v", StringSetOptions{TTL: time.Second})
	}
	now = now.Add(2 * time.Second)

	evicted := k.DeleteExpired(5)
	if evicted != 5 {
		t.Errorf("DeleteExpired(5) evicted %d, want 5", evicted)
	}
	evicted = k.DeleteExpired(100)
	if evicted != 5 {
		t.Errorf("second DeleteExpired evicted %d, want remaining 5", evicted)
	}
}
