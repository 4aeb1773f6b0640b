package zset

import "math/rand"

const (
	maxLevel = 32
	pFactor  = 0.25
)

// skipNode is one element of the (score, member) ascending order index.
// level[i].span counts how many nodes (including the target of the
// forward pointer) lie between this node and level[i].forward, which is
// what makes rank lookups O(log n) instead of a linear walk.
type skipNode struct {
	member string
	score  float64
	level  []skipLevel
}

type skipLevel struct {
	forward *skipNode
	span    int64
}

// skipList is the ordered (score, member) index half of Set. It never
// exposes nodes directly; callers only see members/scores via Set's
// methods.
type skipList struct {
	head   *skipNode
	length int64
	level  int
	rng    *rand.Rand
}

func newSkipList() *skipList {
	return &skipList{
		head:  newSkipNode(maxLevel, "", 0),
		level: 1,
		rng:   rand.New(rand.NewSource(1)),
	}
}

func newSkipNode(level int, member string, score float64) *skipNode {
	return &skipNode{
		member: member,
		score:  score,
		level:  make([]skipLevel, level),
	}
}

func (s *skipList) randomLevel() int {
	lvl := 1
	for lvl < maxLevel && s.rng.Float64() < pFactor {
		lvl++
	}
	return lvl
}

// less implements the (score, member) ascending composite order.
func less(score float64, member string, otherScore float64, otherMember string) bool {
	if score != otherScore {
		return score < otherScore
	}
	return member < otherMember
}

// insert adds (member, score) to the ordered index. The caller guarantees
// member is not already present (Set.Add deletes-then-reinserts on score
// change instead of updating in place, since the ordering position moves).
func (s *skipList) insert(member string, score float64) {
	var update [maxLevel]*skipNode
	var rank [maxLevel]int64

	x := s.head
	for i := s.level - 1; i >= 0; i-- {
		if i == s.level-1 {
			rank[i] = 0
		} else {
			rank[i] = rank[i+1]
		}
		for x.level[i].forward != nil && less(x.level[i].forward.score, x.level[i].forward.member, score, member) {
			rank[i] += x.level[i].span
			x = x.level[i].forward
		}
		update[i] = x
	}

	newLevel := s.randomLevel()
	if newLevel > s.level {
		for i := s.level; i < newLevel; i++ {
			rank[i] = 0
			update[i] = s.head
			update[i].level = growLevels(update[i].level, newLevel)
			update[i].level[i].span = s.length
		}
		s.level = newLevel
	}

	node := newSkipNode(newLevel, member, score)
	for i := 0; i < newLevel; i++ {
		node.level[i].forward = update[i].level[i].forward
		update[i].level[i].forward = node

		node.level[i].span = update[i].level[i].span - (rank[0] - rank[i])
		update[i].level[i].span = (rank[0] - rank[i]) + 1
	}

	for i := newLevel; i < s.level; i++ {
		if update[i].level[i].forward != nil {
			update[i].level[i].span++
		}
	}

	s.length++
}

// growLevels extends a node's level slice (used only for the head) up to n
// levels, leaving new levels zero-valued (nil forward, span 0).
func growLevels(levels []skipLevel, n int) []skipLevel {
	if len(levels) >= n {
		return levels
	}
	grown := make([]skipLevel, n)
	copy(grown, levels)
	return grown
}

// remove deletes (member, score) from the ordered index. Returns false if
// no such node exists (callers should already know it does via the hash
// index, but this stays defensive).
func (s *skipList) remove(member string, score float64) bool {
	var update [maxLevel]*skipNode

	x := s.head
	for i := s.level - 1; i >= 0; i-- {
		for x.level[i].forward != nil && less(x.level[i].forward.score, x.level[i].forward.member, score, member) {
			x = x.level[i].forward
		}
		update[i] = x
	}

	x = x.level[0].forward
	if x == nil || x.score != score || x.member != member {
		return false
	}

	for i := 0; i < s.level; i++ {
		if update[i].level[i].forward == x {
			update[i].level[i].span += x.level[i].span - 1
			update[i].level[i].forward = x.level[i].forward
		} else {
			update[i].level[i].span--
		}
	}

	for s.level > 1 && s.head.level[s.level-1].forward == nil {
		s.level--
	}

	s.length--
	return true
}

// rank returns the 0-based position of (member, score) in ascending
// (score, member) order, or -1 if not found.
func (s *skipList) rank(member string, score float64) int64 {
	var r int64
	x := s.head
	for i := s.level - 1; i >= 0; i-- {
		for x.level[i].forward != nil &&
			(less(x.level[i].forward.score, x.level[i].forward.member, score, member) ||
				(x.level[i].forward.score == score && x.level[i].forward.member == member)) {
			r += x.level[i].span
			x = x.level[i].forward
			if x.member == member && x.score == score {
				return r - 1
			}
		}
	}
	return -1
}

// byIndex returns the node at the given 0-based position, or nil if out of
// range. Internally this walks to the 1-based rank (index+1), the classic
// zskiplist "get element by rank" technique.
func (s *skipList) byIndex(index int64) *skipNode {
	if index < 0 || index >= s.length {
		return nil
	}
	target := index + 1
	var traversed int64
	x := s.head
	for i := s.level - 1; i >= 0; i-- {
		for x.level[i].forward != nil && traversed+x.level[i].span <= target {
			traversed += x.level[i].span
			x = x.level[i].forward
		}
		if traversed == target {
			return x
		}
	}
	return nil
}

// firstInScoreRange returns the first node with score >= min, or nil.
func (s *skipList) firstInScoreRange(min float64) *skipNode {
	x := s.head
	for i := s.level - 1; i >= 0; i-- {
		for x.level[i].forward != nil && x.level[i].forward.score < min {
			x = x.level[i].forward
		}
	}
	return x.level[0].forward
}
