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

// RecordDonationHandler handles POST /api/v1/donations
func RecordDonationHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.DonationReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid donation payload", http.StatusBadRequest)
			return
		}

		donor, err := deps.Services.Finance.RecordDonation(r.Context(), req.Name, req.Email, req.Message, req.Amount)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to record donation", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Donation recorded", donor, http.StatusCreated)
	}
}

// AddRevenueHandler handles POST /api/v1/admin/revenue (admin)
func AddRevenueHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.RevenueReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Month == "" {
			common.RespondError(w, initTime, err, "Invalid revenue payload", http.StatusBadRequest)
			return
		}

		rev, err := deps.Services.Finance.AddRevenue(r.Context(), req.Month, req.Ads, req.Donations, req.Subscriptions)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to record revenue", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Revenue recorded", rev)
	}
}

// ListRevenueHandler handles GET /api/v1/admin/revenue (admin)
func ListRevenueHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		common.RespondSuccess(w, initTime, "Revenue fetched", deps.Repo.Revenue.All())
	}
}

// RunModeratorPayoutsHandler handles POST /api/v1/admin/payouts/run (admin)
//
// Rerunning a month replaces its rows; amounts never accumulate.
func RunModeratorPayoutsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.PayoutRunReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Month == "" {
			common.RespondError(w, initTime, err, "Invalid payout run payload", http.StatusBadRequest)
			return
		}

		report, err := deps.Services.Payouts.CalculateAndSetModeratorPayouts(r.Context(), req.Month)
		if err != nil {
			if deps.Metrics != nil {
				deps.Metrics.PayoutRunsTotal.WithLabelValues("moderator", "error").Inc()
			}
			common.RespondError(w, initTime, err, "Payout run failed", statusForError(err))
			return
		}

		if deps.Metrics != nil {
			deps.Metrics.PayoutRunsTotal.WithLabelValues("moderator", "ok").Inc()
		}
		common.RespondSuccess(w, initTime, "Payout run completed", report)
	}
}

// RunUserRewardsHandler handles POST /api/v1/admin/rewards/run (admin)
func RunUserRewardsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.RewardRunReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Year == 0 {
			common.RespondError(w, initTime, err, "Invalid reward run payload", http.StatusBadRequest)
			return
		}

		report, err := deps.Services.Payouts.CalculateAndSetUserRewards(r.Context(), req.Year, req.Half)
		if err != nil {
			if deps.Metrics != nil {
				deps.Metrics.PayoutRunsTotal.WithLabelValues("user", "error").Inc()
			}
			common.RespondError(w, initTime, err, "Reward run failed", statusForError(err))
			return
		}

		if deps.Metrics != nil {
			deps.Metrics.PayoutRunsTotal.WithLabelValues("user", "ok").Inc()
		}
		common.RespondSuccess(w, initTime, "Reward run completed", report)
	}
}

// ListModeratorPayoutsHandler handles GET /api/v1/admin/payouts?month=YYYY-MM (admin)
func ListModeratorPayoutsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		month := r.URL.Query().Get("month")
		if month == "" {
			common.RespondSuccess(w, initTime, "Payouts fetched", deps.Repo.Payouts.All())
			return
		}
		common.RespondSuccess(w, initTime, "Payouts fetched", deps.Repo.Payouts.ForMonth(month))
	}
}

// MarkPayoutPaidHandler handles POST /api/v1/admin/payouts/{payout_id}/paid (admin)
func MarkPayoutPaidHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		payout, err := deps.Services.Payouts.MarkModeratorPayoutPaid(r.Context(), chi.URLParam(r, "payout_id"))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to mark payout paid", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Payout marked paid", payout)
	}
}

// MarkRewardPaidHandler handles POST /api/v1/admin/rewards/{reward_id}/paid (admin)
func MarkRewardPaidHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		reward, err := deps.Services.Payouts.MarkUserRewardPaid(r.Context(), chi.URLParam(r, "reward_id"))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to mark reward paid", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Reward marked paid", reward)
	}
}

// GetMyRewardsHandler handles GET /api/v1/rewards
func GetMyRewardsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		rewards := deps.Repo.Rewards.Filter(func(rw *entities.UserReward) bool {
			return rw.UserID == claims.UserID()
		})
		common.RespondSuccess(w, initTime, "Rewards fetched", rewards)
	}
}

// ListPlansHandler handles GET /api/v1/plans
func ListPlansHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		common.RespondSuccess(w, initTime, "Plans fetched", deps.Repo.Plans.ActivePlans())
	}
}

// SubscribeHandler handles POST /api/v1/subscriptions
func SubscribeHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		var req dtos.SubscribeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlanID == "" {
			common.RespondError(w, initTime, err, "Invalid subscription payload", http.StatusBadRequest)
			return
		}

		user, err := deps.Services.Subscription.Subscribe(r.Context(), claims.UserID(), req.PlanID)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to subscribe", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Subscribed", user)
	}
}

// CancelSubscriptionHandler handles DELETE /api/v1/subscriptions
func CancelSubscriptionHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		claims := auth.GetUserClaims(r.Context())

		user, err := deps.Services.Subscription.Cancel(r.Context(), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to cancel subscription", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Subscription cancelled", user)
	}
}

// CreatePlanHandler handles POST /api/v1/admin/plans (admin)
func CreatePlanHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var plan entities.SubscriptionPlan
		if err := json.NewDecoder(r.Body).Decode(&plan); err != nil || plan.Code == "" {
			common.RespondError(w, initTime, err, "Invalid plan payload", http.StatusBadRequest)
			return
		}

		created, err := deps.Repo.Plans.Add(r.Context(), plan)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to create plan", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Plan created", created, http.StatusCreated)
	}
}

// PatchPlanHandler handles PATCH /api/v1/admin/plans/{plan_id} (admin)
func PatchPlanHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var patch dtos.SubscriptionPlanPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			common.RespondError(w, initTime, err, "Invalid patch payload", http.StatusBadRequest)
			return
		}

		plan, found, err := deps.Repo.Plans.Mutate(r.Context(), chi.URLParam(r, "plan_id"), func(p *entities.SubscriptionPlan) {
			if patch.Name != nil {
				p.Name = *patch.Name
			}
			if patch.PriceMonthly != nil {
				p.PriceMonthly = *patch.PriceMonthly
			}
			if patch.Perks != nil {
				p.Perks = *patch.Perks
			}
			if patch.IsActive != nil {
				p.IsActive = *patch.IsActive
			}
		})
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to update plan", statusForError(err))
			return
		}
		if !found {
			common.RespondError(w, initTime, constants.ErrNotFound, "Plan not found", http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Plan updated", plan)
	}
}

// ListPaymentMethodsHandler handles GET /api/v1/payment-methods
func ListPaymentMethodsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		common.RespondSuccess(w, initTime, "Payment methods fetched", deps.Repo.Payments.All())
	}
}

// CreatePaymentMethodHandler handles POST /api/v1/admin/payment-methods (admin)
func CreatePaymentMethodHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var method entities.PaymentMethod
		if err := json.NewDecoder(r.Body).Decode(&method); err != nil || method.Name == "" {
			common.RespondError(w, initTime, err, "Invalid payment method payload", http.StatusBadRequest)
			return
		}

		created, err := deps.Repo.Payments.Add(r.Context(), method)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to create payment method", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Payment method created", created, http.StatusCreated)
	}
}

// PatchPaymentMethodHandler handles PATCH /api/v1/admin/payment-methods/{method_id} (admin)
func PatchPaymentMethodHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var patch dtos.PaymentMethodPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			common.RespondError(w, initTime, err, "Invalid patch payload", http.StatusBadRequest)
			return
		}

		method, found, err := deps.Repo.Payments.Mutate(r.Context(), chi.URLParam(r, "method_id"), func(m *entities.PaymentMethod) {
			if patch.Name != nil {
				m.Name = *patch.Name
			}
			if patch.Details != nil {
				m.Details = *patch.Details
			}
			if patch.IsActive != nil {
				m.IsActive = *patch.IsActive
			}
		})
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to update payment method", statusForError(err))
			return
		}
		if !found {
			common.RespondError(w, initTime, constants.ErrNotFound, "Payment method not found", http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Payment method updated", method)
	}
}

// DeletePaymentMethodHandler handles DELETE /api/v1/admin/payment-methods/{method_id} (admin)
func DeletePaymentMethodHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		found, err := deps.Repo.Payments.Delete(r.Context(), chi.URLParam(r, "method_id"))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to delete payment method", statusForError(err))
			return
		}
		if !found {
			common.RespondError(w, initTime, constants.ErrNotFound, "Payment method not found", http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "Payment method deleted", nil)
	}
}

func (h *Handlers) RecordDonation() http.HandlerFunc      { return RecordDonationHandler(h.deps) }
func (h *Handlers) AddRevenue() http.HandlerFunc          { return AddRevenueHandler(h.deps) }
func (h *Handlers) ListRevenue() http.HandlerFunc         { return ListRevenueHandler(h.deps) }
func (h *Handlers) RunModeratorPayouts() http.HandlerFunc { return RunModeratorPayoutsHandler(h.deps) }
func (h *Handlers) RunUserRewards() http.HandlerFunc      { return RunUserRewardsHandler(h.deps) }
func (h *Handlers) ListModeratorPayouts() http.HandlerFunc {
	return ListModeratorPayoutsHandler(h.deps)
}
func (h *Handlers) MarkPayoutPaid() http.HandlerFunc      { return MarkPayoutPaidHandler(h.deps) }
func (h *Handlers) MarkRewardPaid() http.HandlerFunc      { return MarkRewardPaidHandler(h.deps) }
func (h *Handlers) GetMyRewards() http.HandlerFunc        { return GetMyRewardsHandler(h.deps) }
func (h *Handlers) ListPlans() http.HandlerFunc           { return ListPlansHandler(h.deps) }
func (h *Handlers) Subscribe() http.HandlerFunc           { return SubscribeHandler(h.deps) }
func (h *Handlers) CancelSubscription() http.HandlerFunc  { return CancelSubscriptionHandler(h.deps) }
func (h *Handlers) CreatePlan() http.HandlerFunc          { return CreatePlanHandler(h.deps) }
func (h *Handlers) PatchPlan() http.HandlerFunc           { return PatchPlanHandler(h.deps) }
func (h *Handlers) ListPaymentMethods() http.HandlerFunc  { return ListPaymentMethodsHandler(h.deps) }
func (h *Handlers) CreatePaymentMethod() http.HandlerFunc { return CreatePaymentMethodHandler(h.deps) }
func (h *Handlers) PatchPaymentMethod() http.HandlerFunc  { return PatchPaymentMethodHandler(h.deps) }
func (h *Handlers) DeletePaymentMethod() http.HandlerFunc {
	return DeletePaymentMethodHandler(h.deps)
}
