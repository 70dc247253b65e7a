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

// SubmitBlogHandler handles POST /api/v1/blogs
func SubmitBlogHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		var req dtos.SubmitBlogReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" || req.Body == "" {
			common.RespondError(w, initTime, err, "Invalid blog payload", http.StatusBadRequest)
			return
		}

		blog, err := deps.Services.Blogs.Submit(r.Context(), claims.UserID(), req.Title, req.Body, req.Draft)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to submit blog", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Blog submitted", blog, http.StatusCreated)
	}
}

// ListPublishedBlogsHandler handles GET /api/v1/blogs
func ListPublishedBlogsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		common.RespondSuccess(w, initTime, "Blogs fetched", deps.Repo.Blogs.Published())
	}
}

// SubmitDraftHandler handles POST /api/v1/blogs/{blog_id}/submit
//
// Only the draft's author may move it into review.
func SubmitDraftHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())
		blogID := chi.URLParam(r, "blog_id")

		blog, ok := deps.Repo.Blogs.Get(blogID)
		if !ok {
			common.RespondError(w, initTime, constants.ErrNotFound, "Blog not found", http.StatusNotFound)
			return
		}
		if blog.AuthorID != claims.UserID() {
			common.RespondError(w, initTime, constants.ErrNotOwner, "Not your draft", http.StatusForbidden)
			return
		}

		updated, err := deps.Services.Blogs.SubmitDraft(r.Context(), blogID)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to submit draft", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Draft submitted for review", updated)
	}
}

// ListPendingBlogsHandler handles GET /api/v1/blogs/pending (moderator)
func ListPendingBlogsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		common.RespondSuccess(w, initTime, "Pending blogs fetched", deps.Repo.Blogs.PendingReview())
	}
}

// ReviewBlogHandler handles POST /api/v1/blogs/{blog_id}/review (moderator)
func ReviewBlogHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req struct {
			Publish bool `json:"publish"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid review payload", http.StatusBadRequest)
			return
		}

		blog, err := deps.Services.Blogs.Review(r.Context(), chi.URLParam(r, "blog_id"), req.Publish)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to review blog", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Blog reviewed", blog)
	}
}

// ToggleLikeBlogHandler handles POST /api/v1/blogs/{blog_id}/like
func ToggleLikeBlogHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		blog, err := deps.Services.Blogs.ToggleLike(r.Context(), chi.URLParam(r, "blog_id"), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to toggle like", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Like toggled", blog)
	}
}

// CommentBlogHandler handles POST /api/v1/blogs/{blog_id}/comments
func CommentBlogHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		var req dtos.BlogCommentReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Body == "" {
			common.RespondError(w, initTime, err, "Invalid comment payload", http.StatusBadRequest)
			return
		}

		blog, err := deps.Services.Blogs.AddComment(r.Context(), chi.URLParam(r, "blog_id"), claims.UserID(), req.Body)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to add comment", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Comment added", blog)
	}
}

func (h *Handlers) SubmitBlog() http.HandlerFunc         { return SubmitBlogHandler(h.deps) }
func (h *Handlers) ListPublishedBlogs() http.HandlerFunc { return ListPublishedBlogsHandler(h.deps) }
func (h *Handlers) SubmitDraft() http.HandlerFunc        { return SubmitDraftHandler(h.deps) }
func (h *Handlers) ListPendingBlogs() http.HandlerFunc   { return ListPendingBlogsHandler(h.deps) }
func (h *Handlers) ReviewBlog() http.HandlerFunc         { return ReviewBlogHandler(h.deps) }
func (h *Handlers) ToggleLikeBlog() http.HandlerFunc     { return ToggleLikeBlogHandler(h.deps) }
func (h *Handlers) CommentBlog() http.HandlerFunc        { return CommentBlogHandler(h.deps) }
