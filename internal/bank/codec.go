package bank

import (
	"encoding/json"
	"fmt"
)

// Bank files are JSON arrays in the original authoring format: every entry
// carries "type" ("mcq" or "written") and written entries add "mode"
// ("single" or "list"). Field names match the authoring tool, so existing
// bank files load unchanged.
type questionWire struct {
	ID       int     `json:"id"`
	Type     string  `json:"type"`
	Mode     string  `json:"mode,omitempty"`
	Points   float64 `json:"points"`
	Text     string  `json:"text"`
	Images   *Images `json:"images,omitempty"`

	// mcq
	Options        []Option `json:"options,omitempty"`
	Correct        string   `json:"correct,omitempty"`
	ShuffleOptions *bool    `json:"shuffleOptions,omitempty"`

	// written single
	AnswerVariants []string `json:"answer_variants,omitempty"`
	AllowFuzzy     *bool    `json:"allow_fuzzy,omitempty"`

	// written list
	List *listWire `json:"list,omitempty"`
}

type listWire struct {
	Full           []ListItem `json:"full"`
	ShowRatio      float64    `json:"show_ratio,omitempty"`
	OrderSensitive bool       `json:"order_sensitive,omitempty"`
}

// Parse decodes a bank file. It decodes only; call Validate on the result
// before serving it.
func Parse(data []byte) ([]Question, error) {
	var wires []questionWire
	if err := json.Unmarshal(data, &wires); err != nil {
		return nil, fmt.Errorf("bank: decode: %w", err)
	}
	out := make([]Question, 0, len(wires))
	for _, w := range wires {
		q, err := fromWire(w)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// Marshal encodes questions back into the bank file format.
func Marshal(qs []Question) ([]byte, error) {
	wires := make([]questionWire, 0, len(qs))
	for _, q := range qs {
		wires = append(wires, toWire(q))
	}
	return json.Marshal(wires)
}

// EncodeQuestion serializes a single question (used by session snapshots).
func EncodeQuestion(q Question) (json.RawMessage, error) {
	return json.Marshal(toWire(q))
}

// DecodeQuestion is the inverse of EncodeQuestion.
func DecodeQuestion(raw json.RawMessage) (Question, error) {
	var w questionWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("bank: decode question: %w", err)
	}
	return fromWire(w)
}

func fromWire(w questionWire) (Question, error) {
	common := Common{ID: w.ID, Points: w.Points, Prompt: w.Text}
	if w.Images != nil {
		common.Images = *w.Images
	}
	switch w.Type {
	case "mcq":
		noShuffle := w.ShuffleOptions != nil && !*w.ShuffleOptions
		return &MultipleChoice{
			Common:    common,
			Options:   w.Options,
			Correct:   w.Correct,
			NoShuffle: noShuffle,
		}, nil
	case "written":
		switch w.Mode {
		case "", "single":
			return &WrittenSingle{
				Common:     common,
				Variants:   w.AnswerVariants,
				AllowFuzzy: w.AllowFuzzy,
			}, nil
		case "list":
			if w.List == nil {
				return nil, fmt.Errorf("bank: question %d: written list without list payload", w.ID)
			}
			return &WrittenList{
				Common:         common,
				Items:          w.List.Full,
				ShowRatio:      w.List.ShowRatio,
				OrderSensitive: w.List.OrderSensitive,
			}, nil
		default:
			return nil, fmt.Errorf("bank: question %d: unknown written mode %q", w.ID, w.Mode)
		}
	default:
		return nil, fmt.Errorf("bank: question %d: unknown type %q", w.ID, w.Type)
	}
}

func toWire(q Question) questionWire {
	c := q.Base()
	w := questionWire{ID: c.ID, Points: c.Points, Text: c.Prompt}
	if len(c.Images.Question) > 0 || len(c.Images.AnswerKey) > 0 {
		img := c.Images
		w.Images = &img
	}
	switch t := q.(type) {
	case *MultipleChoice:
		w.Type = "mcq"
		w.Options = t.Options
		w.Correct = t.Correct
		if t.NoShuffle {
			f := false
			w.ShuffleOptions = &f
		}
	case *WrittenSingle:
		w.Type = "written"
		w.Mode = "single"
		w.AnswerVariants = t.Variants
		w.AllowFuzzy = t.AllowFuzzy
	case *WrittenList:
		w.Type = "written"
		w.Mode = "list"
		w.List = &listWire{Full: t.Items, ShowRatio: t.ShowRatio, OrderSensitive: t.OrderSensitive}
	}
	return w
}
