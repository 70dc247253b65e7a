package api

import (
	"encoding/json"
	"net/http"
	"time"

	"khola-chithi/engine/internal/auth"
	"khola-chithi/engine/internal/common"
	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// SendLetterHandler handles POST /api/v1/letters
//
// The letter quota is enforced here, not in the service layer. The rate
// limit service only reports counts.
func SendLetterHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		var req dtos.SendLetterReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Body == "" {
			common.RespondError(w, initTime, err, "Invalid letter payload", http.StatusBadRequest)
			return
		}

		sent := deps.Services.RateLimit.LettersSentInWindow(claims.UserID(), constants.LetterWindow)
		if sent >= constants.LetterWindowCap {
			common.RespondError(w, initTime, constants.ErrRateLimited, "Letter limit reached", http.StatusTooManyRequests)
			return
		}

		letter, err := deps.Services.Letters.SendLetter(r.Context(), claims.UserID(), req.Subject, req.Body)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to send letter", statusForError(err))
			return
		}

		if deps.Metrics != nil {
			deps.Metrics.LettersSentTotal.Inc()
		}
		common.RespondSuccess(w, initTime, "Letter sent", letter, http.StatusCreated)
	}
}

// GetMyLettersHandler handles GET /api/v1/letters
func GetMyLettersHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		letters := deps.Repo.Letters.ByAuthor(claims.UserID())
		common.RespondSuccess(w, initTime, "Letters fetched", letters)
	}
}

// GetLetterQuotaHandler handles GET /api/v1/letters/quota
func GetLetterQuotaHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		quota := deps.Services.RateLimit.LetterQuota(claims.UserID())
		common.RespondSuccess(w, initTime, "Quota fetched", quota)
	}
}

// GetPendingLettersHandler handles GET /api/v1/letters/pending (moderator)
func GetPendingLettersHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		common.RespondSuccess(w, initTime, "Pending letters fetched", deps.Repo.Letters.Pending())
	}
}

// GetAssignedLettersHandler handles GET /api/v1/letters/assigned (moderator)
func GetAssignedLettersHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		common.RespondSuccess(w, initTime, "Assigned letters fetched", deps.Repo.Letters.AssignedTo(claims.UserID()))
	}
}

// AssignLetterHandler handles POST /api/v1/letters/{letter_id}/assign (moderator)
func AssignLetterHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())
		letterID := chi.URLParam(r, "letter_id")

		letter, err := deps.Services.Letters.AssignLetter(r.Context(), letterID, claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to assign letter", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Letter assigned", letter)
	}
}

// ReplyLetterHandler handles POST /api/v1/letters/{letter_id}/reply (moderator)
func ReplyLetterHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())
		letterID := chi.URLParam(r, "letter_id")

		var req dtos.ReplyLetterReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Reply == "" {
			common.RespondError(w, initTime, err, "Invalid reply payload", http.StatusBadRequest)
			return
		}

		letter, err := deps.Services.Letters.ReplyToLetter(r.Context(), letterID, claims.UserID(), req.Reply)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to reply", statusForError(err))
			return
		}

		if deps.Metrics != nil {
			deps.Metrics.RepliesTotal.Inc()
		}
		common.RespondSuccess(w, initTime, "Reply sent", letter)
	}
}

// RateLetterHandler handles POST /api/v1/letters/{letter_id}/rate
//
// Only the letter's author may rate the reply.
func RateLetterHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())
		letterID := chi.URLParam(r, "letter_id")

		letter, ok := deps.Repo.Letters.Get(letterID)
		if !ok {
			common.RespondError(w, initTime, constants.ErrNotFound, "Letter not found", http.StatusNotFound)
			return
		}
		if letter.AuthorID != claims.UserID() {
			common.RespondError(w, initTime, constants.ErrNotOwner, "Not your letter", http.StatusForbidden)
			return
		}

		var req dtos.RateLetterReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid rating payload", http.StatusBadRequest)
			return
		}

		rated, err := deps.Services.Letters.RateLetter(r.Context(), letterID, req.Rating)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to rate letter", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Letter rated", rated)
	}
}

func (h *Handlers) SendLetter() http.HandlerFunc         { return SendLetterHandler(h.deps) }
func (h *Handlers) GetMyLetters() http.HandlerFunc       { return GetMyLettersHandler(h.deps) }
func (h *Handlers) GetLetterQuota() http.HandlerFunc     { return GetLetterQuotaHandler(h.deps) }
func (h *Handlers) GetPendingLetters() http.HandlerFunc  { return GetPendingLettersHandler(h.deps) }
func (h *Handlers) GetAssignedLetters() http.HandlerFunc { return GetAssignedLettersHandler(h.deps) }
func (h *Handlers) AssignLetter() http.HandlerFunc       { return AssignLetterHandler(h.deps) }
func (h *Handlers) ReplyLetter() http.HandlerFunc        { return ReplyLetterHandler(h.deps) }
func (h *Handlers) RateLetter() http.HandlerFunc         { return RateLetterHandler(h.deps) }
