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

// ListResourcesHandler handles GET /api/v1/resources
func ListResourcesHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		common.RespondSuccess(w, initTime, "Resources fetched", deps.Repo.Resources.All())
	}
}

// CreateResourceHandler handles POST /api/v1/resources (moderator)
func CreateResourceHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		var resource entities.Resource
		if err := json.NewDecoder(r.Body).Decode(&resource); err != nil || resource.Title == "" {
			common.RespondError(w, initTime, err, "Invalid resource payload", http.StatusBadRequest)
			return
		}
		resource.AddedBy = claims.UserID()

		created, err := deps.Repo.Resources.Add(r.Context(), resource)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to create resource", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Resource created", created, http.StatusCreated)
	}
}

// PatchResourceHandler handles PATCH /api/v1/resources/{resource_id} (moderator)
func PatchResourceHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var patch dtos.ResourcePatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			common.RespondError(w, initTime, err, "Invalid patch payload", http.StatusBadRequest)
			return
		}

		resource, found, err := deps.Repo.Resources.Mutate(r.Context(), chi.URLParam(r, "resource_id"), func(res *entities.Resource) {
			if patch.Title != nil {
				res.Title = *patch.Title
			}
			if patch.URL != nil {
				res.URL = *patch.URL
			}
			if patch.Category != nil {
				res.Category = *patch.Category
			}
		})
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to update resource", statusForError(err))
			return
		}
		if !found {
			common.RespondError(w, initTime, constants.ErrNotFound, "Resource not found", http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Resource updated", resource)
	}
}

// DeleteResourceHandler handles DELETE /api/v1/resources/{resource_id} (moderator)
func DeleteResourceHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		found, err := deps.Repo.Resources.Delete(r.Context(), chi.URLParam(r, "resource_id"))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to delete resource", statusForError(err))
			return
		}
		if !found {
			common.RespondError(w, initTime, constants.ErrNotFound, "Resource not found", http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Resource deleted", nil)
	}
}

// ListSupportGroupsHandler handles GET /api/v1/groups
func ListSupportGroupsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		common.RespondSuccess(w, initTime, "Groups fetched", deps.Repo.SupportGroups.All())
	}
}

// CreateSupportGroupHandler handles POST /api/v1/groups
func CreateSupportGroupHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		var group entities.SupportGroup
		if err := json.NewDecoder(r.Body).Decode(&group); err != nil || group.Name == "" {
			common.RespondError(w, initTime, err, "Invalid group payload", http.StatusBadRequest)
			return
		}
		group.OwnerID = claims.UserID()
		group.MemberIDs = []string{claims.UserID()}
		group.CreatedAt = time.Now()

		created, err := deps.Repo.SupportGroups.Add(r.Context(), group)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to create group", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Group created", created, http.StatusCreated)
	}
}

// JoinSupportGroupHandler handles POST /api/v1/groups/{group_id}/join
func JoinSupportGroupHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		group, found, err := deps.Repo.SupportGroups.Mutate(r.Context(), chi.URLParam(r, "group_id"), func(g *entities.SupportGroup) {
			for _, id := range g.MemberIDs {
				if id == claims.UserID() {
					return
				}
			}
			g.MemberIDs = append(g.MemberIDs, claims.UserID())
		})
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to join group", statusForError(err))
			return
		}
		if !found {
			common.RespondError(w, initTime, constants.ErrNotFound, "Group not found", http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Joined group", group)
	}
}

// DeleteSupportGroupHandler handles DELETE /api/v1/groups/{group_id}
//
// Only the group owner or an admin may delete a group.
func DeleteSupportGroupHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())
		groupID := chi.URLParam(r, "group_id")

		group, ok := deps.Repo.SupportGroups.Get(groupID)
		if !ok {
			common.RespondError(w, initTime, constants.ErrNotFound, "Group not found", http.StatusNotFound)
			return
		}
		if group.OwnerID != claims.UserID() && claims.Role() != string(constants.RoleAdmin) {
			common.RespondError(w, initTime, constants.ErrNotOwner, "Not your group", http.StatusForbidden)
			return
		}

		if _, err := deps.Repo.SupportGroups.Delete(r.Context(), groupID); err != nil {
			common.RespondError(w, initTime, err, "Failed to delete group", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Group deleted", nil)
	}
}

// ListGroupPostsHandler handles GET /api/v1/groups/{group_id}/posts
func ListGroupPostsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		common.RespondSuccess(w, initTime, "Group posts fetched", deps.Repo.GroupPosts.ByGroup(chi.URLParam(r, "group_id")))
	}
}

// CreateGroupPostHandler handles POST /api/v1/groups/{group_id}/posts
//
// Posting requires group membership.
func CreateGroupPostHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())
		groupID := chi.URLParam(r, "group_id")

		group, ok := deps.Repo.SupportGroups.Get(groupID)
		if !ok {
			common.RespondError(w, initTime, constants.ErrNotFound, "Group not found", http.StatusNotFound)
			return
		}
		member := false
		for _, id := range group.MemberIDs {
			if id == claims.UserID() {
				member = true
				break
			}
		}
		if !member {
			common.RespondError(w, initTime, constants.ErrNotOwner, "Join the group first", http.StatusForbidden)
			return
		}

		var req dtos.CreatePostReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Body == "" {
			common.RespondError(w, initTime, err, "Invalid post payload", http.StatusBadRequest)
			return
		}

		post, err := deps.Repo.GroupPosts.Add(r.Context(), entities.GroupPost{
			GroupID:   groupID,
			AuthorID:  claims.UserID(),
			Body:      req.Body,
			CreatedAt: time.Now(),
		})
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to create post", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Post created", post, http.StatusCreated)
	}
}

// StartChatSessionHandler handles POST /api/v1/chats
func StartChatSessionHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		session, err := deps.Repo.ChatSessions.Add(r.Context(), entities.ChatSession{
			UserID:    claims.UserID(),
			StartedAt: time.Now(),
		})
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to start chat", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Chat started", session, http.StatusCreated)
	}
}

// ClaimChatSessionHandler handles POST /api/v1/chats/{chat_id}/claim (moderator)
func ClaimChatSessionHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())
		modID := claims.UserID()

		session, found, err := deps.Repo.ChatSessions.Mutate(r.Context(), chi.URLParam(r, "chat_id"), func(c *entities.ChatSession) {
			if c.ModeratorID == nil {
				c.ModeratorID = &modID
			}
		})
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to claim chat", statusForError(err))
			return
		}
		if !found {
			common.RespondError(w, initTime, constants.ErrNotFound, "Chat not found", http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Chat claimed", session)
	}
}

// SendChatMessageHandler handles POST /api/v1/chats/{chat_id}/messages
//
// Only the chat's user or its assigned moderator may post, and ended chats
// reject new messages.
func SendChatMessageHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())
		chatID := chi.URLParam(r, "chat_id")

		session, ok := deps.Repo.ChatSessions.Get(chatID)
		if !ok {
			common.RespondError(w, initTime, constants.ErrNotFound, "Chat not found", http.StatusNotFound)
			return
		}
		if session.EndedAt != nil {
			common.RespondError(w, initTime, nil, "Chat has ended", http.StatusConflict)
			return
		}
		participant := session.UserID == claims.UserID() ||
			(session.ModeratorID != nil && *session.ModeratorID == claims.UserID())
		if !participant {
			common.RespondError(w, initTime, constants.ErrNotOwner, "Not a participant", http.StatusForbidden)
			return
		}

		var req struct {
			Body string `json:"body"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Body == "" {
			common.RespondError(w, initTime, err, "Invalid message payload", http.StatusBadRequest)
			return
		}

		updated, _, err := deps.Repo.ChatSessions.Mutate(r.Context(), chatID, func(c *entities.ChatSession) {
			c.Messages = append(c.Messages, entities.ChatMessage{
				SenderID: claims.UserID(),
				Body:     req.Body,
				SentAt:   time.Now(),
			})
		})
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to send message", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Message sent", updated)
	}
}

// EndChatSessionHandler handles POST /api/v1/chats/{chat_id}/end
func EndChatSessionHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())
		chatID := chi.URLParam(r, "chat_id")

		session, ok := deps.Repo.ChatSessions.Get(chatID)
		if !ok {
			common.RespondError(w, initTime, constants.ErrNotFound, "Chat not found", http.StatusNotFound)
			return
		}
		participant := session.UserID == claims.UserID() ||
			(session.ModeratorID != nil && *session.ModeratorID == claims.UserID())
		if !participant {
			common.RespondError(w, initTime, constants.ErrNotOwner, "Not a participant", http.StatusForbidden)
			return
		}

		now := time.Now()
		updated, _, err := deps.Repo.ChatSessions.Mutate(r.Context(), chatID, func(c *entities.ChatSession) {
			if c.EndedAt == nil {
				c.EndedAt = &now
			}
		})
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to end chat", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Chat ended", updated)
	}
}

func (h *Handlers) ListResources() http.HandlerFunc      { return ListResourcesHandler(h.deps) }
func (h *Handlers) CreateResource() http.HandlerFunc     { return CreateResourceHandler(h.deps) }
func (h *Handlers) PatchResource() http.HandlerFunc      { return PatchResourceHandler(h.deps) }
func (h *Handlers) DeleteResource() http.HandlerFunc     { return DeleteResourceHandler(h.deps) }
func (h *Handlers) ListSupportGroups() http.HandlerFunc  { return ListSupportGroupsHandler(h.deps) }
func (h *Handlers) CreateSupportGroup() http.HandlerFunc { return CreateSupportGroupHandler(h.deps) }
func (h *Handlers) JoinSupportGroup() http.HandlerFunc   { return JoinSupportGroupHandler(h.deps) }
func (h *Handlers) DeleteSupportGroup() http.HandlerFunc { return DeleteSupportGroupHandler(h.deps) }
func (h *Handlers) ListGroupPosts() http.HandlerFunc     { return ListGroupPostsHandler(h.deps) }
func (h *Handlers) CreateGroupPost() http.HandlerFunc    { return CreateGroupPostHandler(h.deps) }
func (h *Handlers) StartChatSession() http.HandlerFunc   { return StartChatSessionHandler(h.deps) }
func (h *Handlers) ClaimChatSession() http.HandlerFunc   { return ClaimChatSessionHandler(h.deps) }
func (h *Handlers) SendChatMessage() http.HandlerFunc    { return SendChatMessageHandler(h.deps) }
func (h *Handlers) EndChatSession() http.HandlerFunc     { return EndChatSessionHandler(h.deps) }
