package bank

// Bank is an indexed, immutable set of questions.
type Bank struct {
	questions []Question
	byID      map[int]Question
}

// New indexes qs. Later duplicates shadow earlier ones; run Validate first
// to reject banks with duplicate ids.
func New(qs []Question) *Bank {
	b := &Bank{questions: qs, byID: make(map[int]Question, len(qs))}
	for _, q := range qs {
		b.byID[q.Base().ID] = q
	}
	return b
}

// Get resolves a question by id.
func (b *Bank) Get(id int) (Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// Questions returns the bank in authored order.
func (b *Bank) Questions() []Question { return b.questions }

// Len reports the number of questions.
func (b *Bank) Len() int { return len(b.questions) }

// MCQIDs returns ids of all multiple-choice questions in authored order.
func (b *Bank) MCQIDs() []int {
	var out []int
	for _, q := range b.questions {
		if q.Kind() == KindMCQ {
			out = append(out, q.Base().ID)
		}
	}
	return out
}

// WrittenIDs returns ids of all written questions (single and list) in
// authored order. Both written kinds share one rotation category.
func (b *Bank) WrittenIDs() []int {
	var out []int
	for _, q := range b.questions {
		if q.Kind() == KindWrittenSingle || q.Kind() == KindWrittenList {
			out = append(out, q.Base().ID)
		}
	}
	return out
}
