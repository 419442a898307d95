/* handlers.go
 * Contains the HTTP handlers. Each one decodes its input, calls the matching API method and writes the result
 * Authors: Zachary Bower
 */

package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"arena-bot/api/logic"
	"arena-bot/api/shared"
	"arena-bot/api/store"

	"github.com/go-chi/chi/v5"
)

var errBadBody = fmt.Errorf("%w: request body is not valid JSON", shared.ErrValidation)
var errBadIndex = fmt.Errorf("%w: round and match must be integers", shared.ErrValidation)

// decodeBody decodes a JSON body into dst. An empty body leaves dst untouched
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return errBadBody
	}
	return nil
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (s *Server) createTournament(w http.ResponseWriter, r *http.Request) {
	var req createTournamentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	t, err := s.api.CreateTournament(r.Context(), req.Name, store.Game(req.Game), req.Season)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// listTournaments serves the full list to admins, and the reduced public list when ?public is given
func (s *Server) listTournaments(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has("public") {
		public, err := s.api.ListPublicTournaments(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, public)
		return
	}

	user, _ := UserFromContext(r.Context())
	if !user.IsAdmin() {
		writeError(w, r, shared.ErrAdminRequired)
		return
	}

	tournaments, err := s.api.ListTournaments(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tournaments)
}

func (s *Server) getTournament(w http.ResponseWriter, r *http.Request) {
	view, err := s.api.GetTournament(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) addParticipants(w http.ResponseWriter, r *http.Request) {
	var req participantsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	t, err := s.api.AddParticipants(r.Context(), chi.URLParam(r, "id"), req.ParticipantIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) startTournament(w http.ResponseWriter, r *http.Request) {
	var req participantsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	t, err := s.api.StartTournament(r.Context(), chi.URLParam(r, "id"), req.ParticipantIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) joinTournament(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	if err := s.api.JoinTournament(r.Context(), chi.URLParam(r, "id"), user.UserID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (s *Server) reportMatch(w http.ResponseWriter, r *http.Request) {
	round, err1 := strconv.Atoi(chi.URLParam(r, "round"))
	match, err2 := strconv.Atoi(chi.URLParam(r, "match"))
	if err1 != nil || err2 != nil {
		writeError(w, r, errBadIndex)
		return
	}

	var req reportMatchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	report := logic.MatchReport{Round: round, Match: match, WinnerID: req.WinnerID, P1Score: req.P1Score, P2Score: req.P2Score}
	if err := s.api.ReportMatch(r.Context(), chi.URLParam(r, "id"), report); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (s *Server) advanceRound(w http.ResponseWriter, r *http.Request) {
	round, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil {
		writeError(w, r, errBadIndex)
		return
	}

	t, err := s.api.AdvanceRound(r.Context(), chi.URLParam(r, "id"), round)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) listDaily(w http.ResponseWriter, r *http.Request) {
	fixtures, err := s.api.ListToday(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fixtures)
}

func (s *Server) joinDaily(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	if err := s.api.JoinDaily(r.Context(), chi.URLParam(r, "slug"), user.UserID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (s *Server) dailyResults(w http.ResponseWriter, r *http.Request) {
	results, err := s.api.GetResults(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}
