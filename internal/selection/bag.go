// Package selection maintains the per-category rotation bags that guarantee
// a question is not served again until every question in its category has
// been served once.
//
// Bags are persisted through the narrow BagStore interface as plain id
// arrays. The engine assumes a single active session per persisted bag;
// concurrent writers are not coordinated (last write wins).
package selection

import (
	"github.com/quizforge/quizforge/internal/bank"
	"github.com/quizforge/quizforge/internal/rng"
)

// Persisted bag keys, one rotation per question category.
const (
	KeyMCQ     = "quiz.bag.mcq"
	KeyWritten = "quiz.bag.written"
)

// BagStore is the persistence interface for rotation bags. Load returns an
// empty bag for absent or corrupt state, never an error for bad data;
// errors are reserved for infrastructure failures.
type BagStore interface {
	LoadBag(key string) ([]int, error)
	SaveBag(key string, ids []int) error
}

// Bags holds the in-memory rotation state for one assembly run.
type Bags struct {
	MCQ     []int
	Written []int
}

// BuildBags reads the persisted bags, falling back to a fresh full round in
// authored bank order for any category with no saved state.
func BuildBags(store BagStore, b *bank.Bank) (Bags, error) {
	mcq, err := store.LoadBag(KeyMCQ)
	if err != nil {
		return Bags{}, err
	}
	written, err := store.LoadBag(KeyWritten)
	if err != nil {
		return Bags{}, err
	}
	if len(mcq) == 0 {
		mcq = b.MCQIDs()
	}
	if len(written) == 0 {
		written = b.WrittenIDs()
	}
	return Bags{MCQ: mcq, Written: written}, nil
}

// RefillIfNeeded tops up bag so it can serve needed ids. If the bag is
// already long enough it is returned as a copy, unchanged. Otherwise a
// freshly shuffled round of allIDs is appended, skipping ids still pending
// in the current partial round, so the open round is exhausted before the
// new one starts. An id left over from the old round can therefore appear
// again one round later; that boundary repeat is accepted.
func RefillIfNeeded(bag []int, needed int, allIDs []int, r *rng.RNG) []int {
	out := make([]int, len(bag), len(bag)+len(allIDs))
	copy(out, bag)
	if len(out) >= needed {
		return out
	}
	pending := make(map[int]struct{}, len(out))
	for _, id := range out {
		pending[id] = struct{}{}
	}
	for _, id := range rng.Shuffle(r, allIDs) {
		if _, ok := pending[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// TakeFromBag splits off the first count ids. The caller persists rest in
// normal-draw mode; practice retries take without persisting so the main
// rotation is undisturbed.
func TakeFromBag(bag []int, count int) (taken, rest []int) {
	if count > len(bag) {
		count = len(bag)
	}
	taken = make([]int, count)
	copy(taken, bag[:count])
	rest = make([]int, len(bag)-count)
	copy(rest, bag[count:])
	return taken, rest
}
