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

const settingsCacheKey = string(constants.CachePrefixSettings) + "current"

// RegisterUserHandler handles POST /api/v1/users/register (public)
//
// Accounts under the configured moderator email domain come back with the
// moderator role already set.
func RegisterUserHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.RegisterUserReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Username == "" {
			common.RespondError(w, initTime, err, "Invalid registration payload", http.StatusBadRequest)
			return
		}

		user, err := deps.Services.Moderation.RegisterUser(r.Context(), req.Email, req.Username)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to register", statusForError(err))
			return
		}

		token, err := deps.Services.Tokens.IssueToken(user.ID, user.Role)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to issue token", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Registered", map[string]any{
			"user":  user,
			"token": token,
		}, http.StatusCreated)
	}
}

// LoginHandler handles POST /api/v1/users/login (public)
func LoginHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
			common.RespondError(w, initTime, err, "Invalid login payload", http.StatusBadRequest)
			return
		}

		user, ok := deps.Repo.Users.FindByEmail(req.Email)
		if !ok {
			common.RespondError(w, initTime, constants.ErrNotFound, "Unknown account", http.StatusNotFound)
			return
		}

		token, err := deps.Services.Tokens.IssueToken(user.ID, user.Role)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to issue token", http.StatusInternalServerError)
			return
		}

		data := map[string]any{
			"user":  user,
			"token": token,
		}
		if deps.Services.Session != nil {
			sessionID, err := deps.Services.Session.CreateSession(r.Context(), user.ID, user.Email, user.Username, user.Role)
			if err == nil {
				data["session_id"] = sessionID
			}
		}

		common.RespondSuccess(w, initTime, "Logged in", data)
	}
}

// GetMeHandler handles GET /api/v1/users/me
func GetMeHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		user, ok := deps.Repo.Users.Get(claims.UserID())
		if !ok {
			common.RespondError(w, initTime, constants.ErrNotFound, "User not found", http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Profile fetched", user)
	}
}

// LogoutHandler handles POST /api/v1/users/logout
//
// Session logins delete their Redis session. Token logins have no server
// state; the token simply expires.
func LogoutHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		session, ok := auth.GetSessionData(r.Context()).(*common.SessionData)
		if ok && session != nil && deps.Services.Session != nil {
			if err := deps.Services.Session.DeleteSession(r.Context(), session.SessionID); err != nil {
				common.RespondError(w, initTime, err, "Failed to end session", http.StatusInternalServerError)
				return
			}
		}

		common.RespondSuccess(w, initTime, "Logged out", nil)
	}
}

// ApplyModeratorHandler handles POST /api/v1/users/moderator-application
func ApplyModeratorHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		var req dtos.ApplyModeratorReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Statement == "" {
			common.RespondError(w, initTime, err, "Invalid application payload", http.StatusBadRequest)
			return
		}

		application, err := deps.Services.Moderation.ApplyForModerator(r.Context(), claims.UserID(), req.Statement)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to submit application", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Application submitted", application, http.StatusCreated)
	}
}

// ListPendingApplicationsHandler handles GET /api/v1/admin/applications (admin)
func ListPendingApplicationsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		common.RespondSuccess(w, initTime, "Applications fetched", deps.Repo.Applications.Pending())
	}
}

// ReviewApplicationHandler handles POST /api/v1/admin/applications/{application_id}/review (admin)
func ReviewApplicationHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req struct {
			Approve bool `json:"approve"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid review payload", http.StatusBadRequest)
			return
		}

		application, err := deps.Services.Moderation.ReviewApplication(r.Context(), chi.URLParam(r, "application_id"), req.Approve)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to review application", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Application reviewed", application)
	}
}

// ListUsersHandler handles GET /api/v1/admin/users (admin)
func ListUsersHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		common.RespondSuccess(w, initTime, "Users fetched", deps.Repo.Users.All())
	}
}

// WarnUserHandler handles POST /api/v1/admin/users/{user_id}/warn (moderator)
func WarnUserHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.WarnUserReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Reason == "" {
			common.RespondError(w, initTime, err, "Invalid warning payload", http.StatusBadRequest)
			return
		}

		user, err := deps.Services.Moderation.WarnUser(r.Context(), chi.URLParam(r, "user_id"), req.Reason)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to warn user", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "User warned", user)
	}
}

// SuspendUserHandler handles POST /api/v1/admin/users/{user_id}/suspend (admin)
func SuspendUserHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.SuspendUserReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid suspension payload", http.StatusBadRequest)
			return
		}

		until, err := time.Parse(time.RFC3339, req.Until)
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid suspension date", http.StatusBadRequest)
			return
		}

		user, err := deps.Services.Moderation.SuspendUser(r.Context(), chi.URLParam(r, "user_id"), until)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to suspend user", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "User suspended", user)
	}
}

// AwardBadgeHandler handles POST /api/v1/admin/users/{user_id}/badges/{badge_id} (admin)
func AwardBadgeHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		user, err := deps.Services.Moderation.AwardBadge(r.Context(), chi.URLParam(r, "user_id"), chi.URLParam(r, "badge_id"))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to award badge", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Badge awarded", user)
	}
}

// AdjustPointsHandler handles POST /api/v1/admin/users/{user_id}/points (admin)
//
// This is the only path that sets engagement points to an arbitrary value.
func AdjustPointsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.AdjustPointsReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid points payload", http.StatusBadRequest)
			return
		}

		user, err := deps.Services.Moderation.AdjustEngagementPoints(r.Context(), chi.URLParam(r, "user_id"), req.EngagementPoints)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to adjust points", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Points adjusted", user)
	}
}

// GetSettingsHandler handles GET /api/v1/admin/settings (admin)
//
// Settings are cached; PatchSettingsHandler invalidates.
func GetSettingsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		settings, err := deps.Services.Cache.GetOrSet(settingsCacheKey, 5*time.Minute, func() (any, error) {
			return deps.Repo.Settings.Get(), nil
		})
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to load settings", http.StatusInternalServerError)
			return
		}
		common.RespondSuccess(w, initTime, "Settings fetched", settings)
	}
}

// PatchSettingsHandler handles PATCH /api/v1/admin/settings (admin)
func PatchSettingsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var patch dtos.SettingsPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			common.RespondError(w, initTime, err, "Invalid settings payload", http.StatusBadRequest)
			return
		}

		settings, err := deps.Repo.Settings.Update(r.Context(), func(s *entities.PlatformSettings) {
			if patch.Points != nil {
				s.Points = *patch.Points
			}
			if patch.ModeratorShareRatio != nil {
				s.ModeratorShareRatio = *patch.ModeratorShareRatio
			}
			if patch.UserShareRatio != nil {
				s.UserShareRatio = *patch.UserShareRatio
			}
			if patch.ModeratorEmailDomain != nil {
				s.ModeratorEmailDomain = *patch.ModeratorEmailDomain
			}
			if patch.Announcement != nil {
				s.Announcement = *patch.Announcement
			}
		})
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to update settings", statusForError(err))
			return
		}

		deps.Services.Cache.Delete(settingsCacheKey)
		common.RespondSuccess(w, initTime, "Settings updated", settings)
	}
}

// ListBadgesHandler handles GET /api/v1/badges
func ListBadgesHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		common.RespondSuccess(w, initTime, "Badges fetched", deps.Repo.Badges.All())
	}
}

// CreateBadgeHandler handles POST /api/v1/admin/badges (admin)
func CreateBadgeHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var badge entities.Badge
		if err := json.NewDecoder(r.Body).Decode(&badge); err != nil || badge.Name == "" {
			common.RespondError(w, initTime, err, "Invalid badge payload", http.StatusBadRequest)
			return
		}

		created, err := deps.Repo.Badges.Add(r.Context(), badge)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to create badge", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Badge created", created, http.StatusCreated)
	}
}

func (h *Handlers) RegisterUser() http.HandlerFunc   { return RegisterUserHandler(h.deps) }
func (h *Handlers) Login() http.HandlerFunc          { return LoginHandler(h.deps) }
func (h *Handlers) GetMe() http.HandlerFunc          { return GetMeHandler(h.deps) }
func (h *Handlers) Logout() http.HandlerFunc         { return LogoutHandler(h.deps) }
func (h *Handlers) ApplyModerator() http.HandlerFunc { return ApplyModeratorHandler(h.deps) }
func (h *Handlers) ListPendingApplications() http.HandlerFunc {
	return ListPendingApplicationsHandler(h.deps)
}
func (h *Handlers) ReviewApplication() http.HandlerFunc { return ReviewApplicationHandler(h.deps) }
func (h *Handlers) ListUsers() http.HandlerFunc         { return ListUsersHandler(h.deps) }
func (h *Handlers) WarnUser() http.HandlerFunc          { return WarnUserHandler(h.deps) }
func (h *Handlers) SuspendUser() http.HandlerFunc       { return SuspendUserHandler(h.deps) }
func (h *Handlers) AwardBadge() http.HandlerFunc        { return AwardBadgeHandler(h.deps) }
func (h *Handlers) AdjustPoints() http.HandlerFunc      { return AdjustPointsHandler(h.deps) }
func (h *Handlers) GetSettings() http.HandlerFunc       { return GetSettingsHandler(h.deps) }
func (h *Handlers) PatchSettings() http.HandlerFunc     { return PatchSettingsHandler(h.deps) }
func (h *Handlers) ListBadges() http.HandlerFunc        { return ListBadgesHandler(h.deps) }
func (h *Handlers) CreateBadge() http.HandlerFunc       { return CreateBadgeHandler(h.deps) }
