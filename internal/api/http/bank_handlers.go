package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizforge/quizforge/internal/bank"
)

// UploadBankHandler accepts a bank JSON file in the authoring format,
// validates it and stores it under the id from the URL.
func UploadBankHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "bankID")
		if id == "" {
			http.Error(w, "bank id required", http.StatusBadRequest)
			return
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, 8<<20))
		if err != nil {
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}
		qs, err := bank.Parse(body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := bank.Validate(qs); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		if err := store.PutBank(id, qs); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"id": id, "questions": len(qs)})
	}
}

func ListBanksHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := store.ListBanks()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if ids == nil {
			ids = []string{}
		}
		_ = json.NewEncoder(w).Encode(ids)
	}
}

// bankQuestionView is a question with the answer key stripped: no correct
// option id, no accepted variants, no list values.
type bankQuestionView struct {
	ID      int           `json:"id"`
	Kind    bank.Kind     `json:"kind"`
	Points  float64       `json:"points"`
	Prompt  string        `json:"prompt"`
	Options []bank.Option `json:"options,omitempty"`
	Items   int           `json:"items,omitempty"` // list length only
}

// GetBankHandler returns the bank contents without answer keys, enough
// for a client to show what a test will cover.
func GetBankHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "bankID")
		b, err := store.GetBank(id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		out := make([]bankQuestionView, 0, b.Len())
		for _, q := range b.Questions() {
			v := bankQuestionView{
				ID:     q.Base().ID,
				Kind:   q.Kind(),
				Points: q.Base().Points,
				Prompt: q.Base().Prompt,
			}
			switch t := q.(type) {
			case *bank.MultipleChoice:
				v.Options = t.Options
			case *bank.WrittenList:
				v.Items = len(t.Items)
			}
			out = append(out, v)
		}
		respondJSON(w, http.StatusOK, map[string]any{"id": id, "questions": out})
	}
}
