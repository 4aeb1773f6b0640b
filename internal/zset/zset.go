// Package zset implements the sorted-set dual index spec.md §4.4 and design
// note 9 call for: a member->score hash map and a (score, member)-ordered
// skip list, encapsulated behind a single type so the two indices can never
// drift out of sync from outside the package.
//
// Set itself holds no lock: every method assumes the caller (internal/keyspace)
// already holds the keyspace's single writer permit for the duration of the
// call, per spec.md §5.
package zset

// Member pairs a sorted-set member with its score, the shape returned by
// range and rank queries.
type Member struct {
	Name  string
	Score float64
}

// Set is a sorted-set instance: unique members, each with a float64 score,
// ordered ascending by (score, member).
type Set struct {
	scores map[string]float64
	order  *skipList
}

// New creates an empty sorted-set instance.
func New() *Set {
	return &Set{
		scores: make(map[string]float64),
		order:  newSkipList(),
	}
}

// Len returns the set's cardinality.
func (s *Set) Len() int {
	return len(s.scores)
}

// Score returns the member's score and whether it is present.
func (s *Set) Score(member string) (float64, bool) {
	score, ok := s.scores[member]
	return score, ok
}

// Add upserts member with score, keeping both indices coordinated. Returns
// true if member was newly inserted (a pure score update on an existing
// member returns false, matching ZADD's "new members only" count).
func (s *Set) Add(member string, score float64) bool {
	old, exists := s.scores[member]
	if exists {
		if old == score {
			return false
		}
		s.order.remove(member, old)
		s.order.insert(member, score)
		s.scores[member] = score
		return false
	}
	s.scores[member] = score
	s.order.insert(member, score)
	return true
}

// Remove deletes member. Returns true if it was present.
func (s *Set) Remove(member string) bool {
	score, ok := s.scores[member]
	if !ok {
		return false
	}
	delete(s.scores, member)
	s.order.remove(member, score)
	return true
}

// Rank returns member's 0-based position in ascending (score, member)
// order, or -1 if absent.
func (s *Set) Rank(member string) int64 {
	score, ok := s.scores[member]
	if !ok {
		return -1
	}
	return s.order.rank(member, score)
}

// RangeByIndex returns members in ascending order for the closed index
// interval [start, stop], both already normalized (non-negative, in
// bounds, start <= stop) by the caller.
func (s *Set) RangeByIndex(start, stop int64) []Member {
	if start > stop {
		return nil
	}
	node := s.order.byIndex(start)
	if node == nil {
		return nil
	}
	count := stop - start + 1
	result := make([]Member, 0, count)
	for node != nil && int64(len(result)) < count {
		result = append(result, Member{Name: node.member, Score: node.score})
		node = node.level[0].forward
	}
	return result
}

// RangeByScore returns every member with min <= score <= max, ascending,
// ties broken by member byte order (the skip list's native order already
// guarantees this).
func (s *Set) RangeByScore(min, max float64) []Member {
	if min > max {
		return nil
	}
	var result []Member
	for node := s.order.firstInScoreRange(min); node != nil && node.score <= max; node = node.level[0].forward {
		result = append(result, Member{Name: node.member, Score: node.score})
	}
	return result
}
