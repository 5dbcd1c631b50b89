// Package bank defines the question bank: a closed set of question kinds,
// the JSON codec for bank files, bank validation and bank stores.
package bank

// Kind discriminates the question variants.
type Kind string

const (
	KindMCQ           Kind = "mcq"
	KindWrittenSingle Kind = "written_single"
	KindWrittenList   Kind = "written_list"
)

// Images are optional illustration references attached to a question.
type Images struct {
	Question  []string `json:"question,omitempty"`
	AnswerKey []string `json:"answer_key,omitempty"`
}

// Common holds the fields shared by every question kind.
type Common struct {
	ID     int
	Points float64
	Prompt string
	Images Images
}

// Option is one multiple-choice option. Either Text or Image is set.
type Option struct {
	ID    string `json:"id"`
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"`
	Alt   string `json:"alt,omitempty"`
}

// ListItem is one required entry of a list question.
type ListItem struct {
	Value    string   `json:"value"`
	Synonyms []string `json:"synonyms,omitempty"`
}

// Question is the closed union of the three question kinds. Consumers
// type-switch over *MultipleChoice, *WrittenSingle and *WrittenList; the
// unexported method keeps the set closed.
type Question interface {
	Base() Common
	Kind() Kind
	question()
}

// MultipleChoice is a single-correct-option question.
type MultipleChoice struct {
	Common
	Options []Option
	Correct string // option id
	// NoShuffle keeps the authored option order (e.g. "all of the above").
	NoShuffle bool
}

// WrittenSingle is a free-text question with accepted answer variants.
type WrittenSingle struct {
	Common
	Variants []string
	// AllowFuzzy overrides the configured default when non-nil.
	AllowFuzzy *bool
}

// WrittenList is a fill-in-the-blank list question. A fraction of the items
// is revealed at assembly time; the rest become blanks.
type WrittenList struct {
	Common
	Items          []ListItem
	ShowRatio      float64
	OrderSensitive bool
}

func (q *MultipleChoice) Base() Common { return q.Common }
func (q *WrittenSingle) Base() Common  { return q.Common }
func (q *WrittenList) Base() Common    { return q.Common }

func (q *MultipleChoice) Kind() Kind { return KindMCQ }
func (q *WrittenSingle) Kind() Kind  { return KindWrittenSingle }
func (q *WrittenList) Kind() Kind    { return KindWrittenList }

func (q *MultipleChoice) question() {}
func (q *WrittenSingle) question()  {}
func (q *WrittenList) question()    {}
