package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizforge/quizforge/internal/auth"
	"github.com/quizforge/quizforge/internal/session"
)

func CreateSessionHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req session.StartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.BankID == "" {
			http.Error(w, "bank_id required", http.StatusBadRequest)
			return
		}
		sess, err := svc.Start(auth.SubjectFromContext(r.Context()), req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondJSON(w, http.StatusCreated, viewOf(sess))
	}
}

func SaveSessionResponsesHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := ownSession(svc, w, r)
		if !ok {
			return
		}
		var resp session.Responses
		if err := json.NewDecoder(r.Body).Decode(&resp); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		saved, err := svc.SaveResponses(sess.ID, resp)
		switch {
		case errors.Is(err, session.ErrSubmitted), errors.Is(err, session.ErrTimeUp):
			http.Error(w, err.Error(), http.StatusConflict)
			return
		case err != nil:
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondJSON(w, http.StatusOK, viewOf(saved))
	}
}

func SubmitSessionHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := ownSession(svc, w, r)
		if !ok {
			return
		}
		done, err := svc.Submit(sess.ID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondJSON(w, http.StatusOK, viewOf(done))
	}
}

func GetSessionHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := ownSession(svc, w, r)
		if !ok {
			return
		}
		respondJSON(w, http.StatusOK, viewOf(sess))
	}
}

// ownSession loads the session from the URL and enforces that the caller
// owns it. Admins can read any session.
func ownSession(svc *session.Service, w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	sess, err := svc.Get(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return session.Session{}, false
	}
	sub := auth.SubjectFromContext(r.Context())
	if sess.UserID != sub && auth.RoleFromContext(r.Context()) != "admin" {
		http.Error(w, "forbidden", http.StatusForbidden)
		return session.Session{}, false
	}
	return sess, true
}

func CoverageHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bankID := r.URL.Query().Get("bank_id")
		if bankID == "" {
			http.Error(w, "bank_id required", http.StatusBadRequest)
			return
		}
		info, err := svc.Coverage(bankID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		respondJSON(w, http.StatusOK, info)
	}
}

func ResetCoverageHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.ResetCoverage(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
	}
}
