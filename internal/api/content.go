package api

import (
	"encoding/json"
	"net/http"
	"time"

	"khola-chithi/engine/internal/auth"
	"khola-chithi/engine/internal/common"
	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/models/dtos"
	"khola-chithi/engine/internal/models/entities"

	"github.com/go-chi/chi/v5"
)

// CreatePostHandler handles POST /api/v1/posts
func CreatePostHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		var req dtos.CreatePostReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Body == "" {
			common.RespondError(w, initTime, err, "Invalid post payload", http.StatusBadRequest)
			return
		}

		post, err := deps.Services.Content.CreatePost(r.Context(), claims.UserID(), req.Body)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to create post", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Post created", post, http.StatusCreated)
	}
}

// ListPostsHandler handles GET /api/v1/posts (hidden posts excluded)
func ListPostsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		common.RespondSuccess(w, initTime, "Posts fetched", deps.Repo.Posts.Visible())
	}
}

// ToggleLikePostHandler handles POST /api/v1/posts/{post_id}/like
func ToggleLikePostHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		post, err := deps.Services.Content.ToggleLikePost(r.Context(), chi.URLParam(r, "post_id"), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to toggle like", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Like toggled", post)
	}
}

// ReportPostHandler handles POST /api/v1/posts/{post_id}/report
func ReportPostHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		post, err := deps.Services.Content.ReportPost(r.Context(), chi.URLParam(r, "post_id"))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to report post", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Post reported", post)
	}
}

// ListReportedPostsHandler handles GET /api/v1/posts/reported (moderator)
func ListReportedPostsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		common.RespondSuccess(w, initTime, "Reported posts fetched", deps.Repo.Posts.Reported())
	}
}

// HidePostHandler handles POST /api/v1/posts/{post_id}/hide (moderator)
func HidePostHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		post, err := deps.Services.Content.HidePost(r.Context(), chi.URLParam(r, "post_id"), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to hide post", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Post hidden", post)
	}
}

// EscalatePostHandler handles POST /api/v1/posts/{post_id}/escalate (moderator)
func EscalatePostHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		post, err := deps.Services.Content.EscalatePost(r.Context(), chi.URLParam(r, "post_id"))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to escalate post", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Post escalated", post)
	}
}

// CreateMemoryHandler handles POST /api/v1/memories
//
// The seven day cooldown is enforced here; the service records the new
// post date.
func CreateMemoryHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		user, ok := deps.Repo.Users.Get(claims.UserID())
		if !ok {
			common.RespondError(w, initTime, constants.ErrNotFound, "User not found", http.StatusNotFound)
			return
		}
		if !deps.Services.RateLimit.CanPostMemory(&user) {
			common.RespondError(w, initTime, constants.ErrRateLimited, "Memory cooldown active", http.StatusTooManyRequests)
			return
		}

		var req dtos.CreateMemoryReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Body == "" {
			common.RespondError(w, initTime, err, "Invalid memory payload", http.StatusBadRequest)
			return
		}

		memory, err := deps.Services.Content.CreateMemory(r.Context(), claims.UserID(), req.Title, req.Body)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to create memory", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Memory submitted for review", memory, http.StatusCreated)
	}
}

// ListMemoriesHandler handles GET /api/v1/memories (approved only)
func ListMemoriesHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		common.RespondSuccess(w, initTime, "Memories fetched", deps.Repo.Memories.ByStatus(entities.MemoryApproved))
	}
}

// ListPendingMemoriesHandler handles GET /api/v1/memories/pending (moderator)
func ListPendingMemoriesHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		common.RespondSuccess(w, initTime, "Pending memories fetched", deps.Repo.Memories.ByStatus(entities.MemoryPending))
	}
}

// ToggleLikeMemoryHandler handles POST /api/v1/memories/{memory_id}/like
func ToggleLikeMemoryHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		memory, err := deps.Services.Content.ToggleLikeMemory(r.Context(), chi.URLParam(r, "memory_id"), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to toggle like", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Like toggled", memory)
	}
}

// ReviewMemoryHandler handles POST /api/v1/memories/{memory_id}/review (moderator)
func ReviewMemoryHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req struct {
			Approve bool `json:"approve"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid review payload", http.StatusBadRequest)
			return
		}

		status := entities.MemoryRejected
		if req.Approve {
			status = entities.MemoryApproved
		}

		memory, err := deps.Services.Content.ReviewMemory(r.Context(), chi.URLParam(r, "memory_id"), status)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to review memory", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Memory reviewed", memory)
	}
}

// CreateGratitudeHandler handles POST /api/v1/gratitude
func CreateGratitudeHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		var req dtos.CreatePostReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Body == "" {
			common.RespondError(w, initTime, err, "Invalid gratitude payload", http.StatusBadRequest)
			return
		}

		entry, err := deps.Services.Content.CreateGratitude(r.Context(), claims.UserID(), req.Body)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to create entry", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Gratitude entry created", entry, http.StatusCreated)
	}
}

// ListGratitudeHandler handles GET /api/v1/gratitude
func ListGratitudeHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		common.RespondSuccess(w, initTime, "Gratitude entries fetched", deps.Repo.Gratitude.All())
	}
}

func (h *Handlers) CreatePost() http.HandlerFunc          { return CreatePostHandler(h.deps) }
func (h *Handlers) ListPosts() http.HandlerFunc           { return ListPostsHandler(h.deps) }
func (h *Handlers) ToggleLikePost() http.HandlerFunc      { return ToggleLikePostHandler(h.deps) }
func (h *Handlers) ReportPost() http.HandlerFunc          { return ReportPostHandler(h.deps) }
func (h *Handlers) ListReportedPosts() http.HandlerFunc   { return ListReportedPostsHandler(h.deps) }
func (h *Handlers) HidePost() http.HandlerFunc            { return HidePostHandler(h.deps) }
func (h *Handlers) EscalatePost() http.HandlerFunc        { return EscalatePostHandler(h.deps) }
func (h *Handlers) CreateMemory() http.HandlerFunc        { return CreateMemoryHandler(h.deps) }
func (h *Handlers) ListMemories() http.HandlerFunc        { return ListMemoriesHandler(h.deps) }
func (h *Handlers) ListPendingMemories() http.HandlerFunc { return ListPendingMemoriesHandler(h.deps) }
func (h *Handlers) ToggleLikeMemory() http.HandlerFunc    { return ToggleLikeMemoryHandler(h.deps) }
func (h *Handlers) ReviewMemory() http.HandlerFunc        { return ReviewMemoryHandler(h.deps) }
func (h *Handlers) CreateGratitude() http.HandlerFunc     { return CreateGratitudeHandler(h.deps) }
func (h *Handlers) ListGratitude() http.HandlerFunc       { return ListGratitudeHandler(h.deps) }
