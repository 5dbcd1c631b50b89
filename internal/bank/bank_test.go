package bank_test

import (
	"testing"

	"github.com/quizforge/quizforge/internal/bank"
)

const sampleBank = `[
  {"id":1,"type":"mcq","points":2,"text":"Capital of Georgia?",
   "options":[{"id":"a","text":"Tbilisi"},{"id":"b","text":"Batumi"},{"id":"c","text":"Kutaisi"}],
   "correct":"a"},
  {"id":2,"type":"mcq","points":2,"text":"Pick the last option",
   "options":[{"id":"a","text":"one"},{"id":"b","text":"all of the above"}],
   "correct":"b","shuffleOptions":false},
  {"id":3,"type":"written","mode":"single","points":5,"text":"Name the capital",
   "answer_variants":["თბილისი","tbilisi"],"allow_fuzzy":true},
  {"id":4,"type":"written","mode":"list","points":5,"text":"List the states of matter",
   "list":{"full":[{"value":"solid"},{"value":"liquid","synonyms":["fluid"]},{"value":"gas"},{"value":"plasma"}],
           "show_ratio":0.25,"order_sensitive":false}}
]`

func mustParse(t *testing.T) []bank.Question {
	t.Helper()
	qs, err := bank.Parse([]byte(sampleBank))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return qs
}

func TestParseKinds(t *testing.T) {
	qs := mustParse(t)
	if len(qs) != 4 {
		t.Fatalf("got %d questions", len(qs))
	}
	mcq, ok := qs[0].(*bank.MultipleChoice)
	if !ok {
		t.Fatalf("q1 kind = %T", qs[0])
	}
	if mcq.Correct != "a" || len(mcq.Options) != 3 || mcq.NoShuffle {
		t.Fatalf("q1 decoded wrong: %+v", mcq)
	}
	fixed := qs[1].(*bank.MultipleChoice)
	if !fixed.NoShuffle {
		t.Fatal("shuffleOptions:false must map to NoShuffle")
	}
	ws, ok := qs[2].(*bank.WrittenSingle)
	if !ok || len(ws.Variants) != 2 {
		t.Fatalf("q3 decoded wrong: %T %+v", qs[2], qs[2])
	}
	wl, ok := qs[3].(*bank.WrittenList)
	if !ok || len(wl.Items) != 4 || wl.OrderSensitive {
		t.Fatalf("q4 decoded wrong: %T %+v", qs[3], qs[3])
	}
	if wl.Items[1].Synonyms[0] != "fluid" {
		t.Fatalf("synonyms lost: %+v", wl.Items[1])
	}
}

func TestCodecRoundTrip(t *testing.T) {
	qs := mustParse(t)
	data, err := bank.Marshal(qs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	again, err := bank.Parse(data)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(again) != len(qs) {
		t.Fatalf("round trip changed count: %d", len(again))
	}
	for i := range qs {
		if qs[i].Kind() != again[i].Kind() || qs[i].Base().ID != again[i].Base().ID {
			t.Fatalf("question %d changed identity", i)
		}
	}
}

func TestParseRejectsUnknownType(t *testing.T) {
	if _, err := bank.Parse([]byte(`[{"id":1,"type":"essay","points":1,"text":"x"}]`)); err == nil {
		t.Fatal("expected error for unknown type")
	}
	if _, err := bank.Parse([]byte(`[{"id":1,"type":"written","mode":"table","points":1,"text":"x"}]`)); err == nil {
		t.Fatal("expected error for unknown written mode")
	}
}

func TestValidate(t *testing.T) {
	qs := mustParse(t)
	if err := bank.Validate(qs); err != nil {
		t.Fatalf("valid bank rejected: %v", err)
	}

	bad := []struct {
		name string
		json string
	}{
		{"duplicate id", `[
			{"id":1,"type":"mcq","points":1,"text":"x","options":[{"id":"a","text":"t"}],"correct":"a"},
			{"id":1,"type":"mcq","points":1,"text":"y","options":[{"id":"a","text":"t"}],"correct":"a"}]`},
		{"zero points", `[{"id":1,"type":"mcq","points":0,"text":"x","options":[{"id":"a","text":"t"}],"correct":"a"}]`},
		{"missing correct", `[{"id":1,"type":"mcq","points":1,"text":"x","options":[{"id":"a","text":"t"}],"correct":"z"}]`},
		{"no options", `[{"id":1,"type":"mcq","points":1,"text":"x","correct":"a"}]`},
		{"no variants", `[{"id":1,"type":"written","mode":"single","points":1,"text":"x"}]`},
		{"empty list", `[{"id":1,"type":"written","mode":"list","points":1,"text":"x","list":{"full":[]}}]`},
		{"ratio above one", `[{"id":1,"type":"written","mode":"list","points":1,"text":"x",
			"list":{"full":[{"value":"v"}],"show_ratio":1.5}}]`},
	}
	for _, c := range bad {
		qs, err := bank.Parse([]byte(c.json))
		if err != nil {
			continue // parse-level rejection is fine too
		}
		if err := bank.Validate(qs); err == nil {
			t.Errorf("%s: validate accepted a broken bank", c.name)
		}
	}
}

func TestBankIndex(t *testing.T) {
	b := bank.New(mustParse(t))
	if _, ok := b.Get(3); !ok {
		t.Fatal("id 3 not found")
	}
	if _, ok := b.Get(99); ok {
		t.Fatal("phantom id found")
	}
	mcq := b.MCQIDs()
	if len(mcq) != 2 || mcq[0] != 1 || mcq[1] != 2 {
		t.Fatalf("MCQIDs = %v", mcq)
	}
	wr := b.WrittenIDs()
	if len(wr) != 2 || wr[0] != 3 || wr[1] != 4 {
		t.Fatalf("WrittenIDs = %v", wr)
	}
}

func TestMemoryStore(t *testing.T) {
	s := bank.NewMemoryStore()
	if err := s.PutBank("physics", mustParse(t)); err != nil {
		t.Fatalf("put: %v", err)
	}
	b, err := s.GetBank("physics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if b.Len() != 4 {
		t.Fatalf("bank len = %d", b.Len())
	}
	if _, err := s.GetBank("missing"); err == nil {
		t.Fatal("expected error for missing bank")
	}
	ids, err := s.ListBanks()
	if err != nil || len(ids) != 1 || ids[0] != "physics" {
		t.Fatalf("list = %v, %v", ids, err)
	}
}
