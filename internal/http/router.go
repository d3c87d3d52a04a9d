package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	"sportfolio/backend/internal/config"
	"sportfolio/backend/internal/domain/access"
	"sportfolio/backend/internal/domain/approval"
	"sportfolio/backend/internal/domain/evaluation"
	"sportfolio/backend/internal/domain/event"
	"sportfolio/backend/internal/domain/facility"
	"sportfolio/backend/internal/domain/membership"
	"sportfolio/backend/internal/domain/notifications"
	"sportfolio/backend/internal/domain/organization"
	"sportfolio/backend/internal/domain/subscription"
	"sportfolio/backend/internal/domain/user"
	"sportfolio/backend/internal/middleware"
	"sportfolio/backend/internal/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Cfg              config.Config
	Logger           *zap.Logger
	AuthClient       *auth.Client
	FirestoreClient  *firestore.Client
	UserRepo         *user.Repo
	UserSvc          *user.Service
	ApprovalSvc      *approval.Service
	OrgRepo          *organization.Repo
	OrgSvc           *organization.Service
	MembershipSvc    *membership.Service
	FacilitySvc      *facility.Service
	EventSvc         *event.Service
	EvaluationSvc    *evaluation.Service
	NotificationsSvc *notifications.Service
	SubscriptionSvc  *subscription.Service
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(d.Cfg.AllowedOrigins))
	r.Use(middleware.RequestLogger(d.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, 200, map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
	})

	// ===== Stripe Webhook (no auth required) =====
	if d.SubscriptionSvc != nil {
		r.Post("/v1/stripe/webhook", d.SubscriptionSvc.HandleWebhook)
	}

	// Protected routes
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.WithAuth(d.AuthClient))

		pr.Get("/v1/me", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			if err := d.UserRepo.UpsertMinimal(r.Context(), au.UID, au.Email); err != nil {
				d.Logger.Warn("profile upsert failed", zap.String("uid", au.UID), zap.Error(err))
			}
			out := map[string]any{
				"uid":    au.UID,
				"email":  au.Email,
				"claims": au.Claims,
			}
			if p, err := d.UserRepo.Get(r.Context(), au.UID); err == nil {
				out["profile"] = p
			}
			WriteJSON(w, 200, out)
		})

		// ===== Approval pipeline =====
		pr.Post("/v1/approvals", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in approval.SubmitInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.ApprovalSvc.Submit(r.Context(), au.UID, in)
			if err != nil {
				status, msg := mapApprovalError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/approvals/mine", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			out, err := d.ApprovalSvc.ListForUser(r.Context(), au.UID, queryLimit(r, 50))
			if err != nil {
				status, msg := mapApprovalError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/admin/approvals", func(w http.ResponseWriter, r *http.Request) {
			if !requireAdmin(w, r) {
				return
			}
			out, err := d.ApprovalSvc.ListPending(r.Context(), queryLimit(r, 50))
			if err != nil {
				status, msg := mapApprovalError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/admin/approvals/{id}/approve", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			if !requireAdmin(w, r) {
				return
			}

			var in struct {
				Comments string `json:"comments,omitempty"`
			}
			_ = json.NewDecoder(r.Body).Decode(&in)

			out, err := d.ApprovalSvc.Approve(r.Context(), au.UID, chi.URLParam(r, "id"), in.Comments)
			if err != nil {
				status, msg := mapApprovalError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/admin/approvals/{id}/reject", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			if !requireAdmin(w, r) {
				return
			}

			var in struct {
				Reason string `json:"reason"`
			}
			_ = json.NewDecoder(r.Body).Decode(&in)

			out, err := d.ApprovalSvc.Reject(r.Context(), au.UID, chi.URLParam(r, "id"), in.Reason)
			if err != nil {
				status, msg := mapApprovalError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		// ===== Admin: user status and roles =====
		pr.Patch("/v1/admin/users/{uid}/status", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			if !requireAdmin(w, r) {
				return
			}

			var in user.SetStatusInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.UserSvc.SetStatus(r.Context(), au.UID, chi.URLParam(r, "uid"), in)
			if err != nil {
				status, msg := mapUserError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/admin/users/{uid}/role", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			if !requireAdmin(w, r) {
				return
			}

			var in struct {
				RoleID string `json:"roleId"`
			}
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.UserSvc.AssignRole(r.Context(), au.UID, chi.URLParam(r, "uid"), in.RoleID)
			if err != nil {
				status, msg := mapUserError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		// ===== Athlete: membership tags =====
		pr.Post("/v1/athlete/tag-organization", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in membership.TagInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.MembershipSvc.TagOrganization(r.Context(), au.UID, in)
			if err != nil {
				status, msg := mapMembershipError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/athlete/memberships", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			out, err := d.MembershipSvc.ListForUser(r.Context(), au.UID, queryLimit(r, 100))
			if err != nil {
				status, msg := mapMembershipError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/organizations/{orgId}/membership-requests", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			orgID := chi.URLParam(r, "orgId")

			if !middleware.IsAdmin(au.Claims) {
				isStaff, err := d.OrgRepo.IsStaff(r.Context(), orgID, au.UID)
				if err != nil {
					Fail(w, 404, "organization not found")
					return
				}
				if !isStaff {
					Fail(w, 403, "organization staff permission required")
					return
				}
			}

			out, err := d.MembershipSvc.ListForOrganization(r.Context(), orgID,
				r.URL.Query().Get("status"), queryLimit(r, 200))
			if err != nil {
				status, msg := mapMembershipError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		// decision endpoint is shared: org staff pass the staff check inside
		// the service, platform admins bypass it
		pr.Put("/v1/admin/membership-requests/{id}", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in membership.DecisionInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.MembershipSvc.Decide(r.Context(), au.UID, chi.URLParam(r, "id"),
				middleware.IsAdmin(au.Claims), in)
			if err != nil {
				status, msg := mapMembershipError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		// ===== Organizations =====
		pr.Post("/v1/organizations", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in organization.CreateInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.OrgSvc.Create(r.Context(), au.UID, in)
			if err != nil {
				status, msg := mapOrganizationError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/organizations", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.OrgSvc.Search(r.Context(), "", queryLimit(r, 20))
			if err != nil {
				status, msg := mapOrganizationError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/organizations/search", func(w http.ResponseWriter, r *http.Request) {
			q := strings.TrimSpace(r.URL.Query().Get("q"))
			out, err := d.OrgSvc.Search(r.Context(), q, queryLimit(r, 20))
			if err != nil {
				status, msg := mapOrganizationError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/organizations/{orgId}", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.OrgSvc.Get(r.Context(), chi.URLParam(r, "orgId"))
			if err != nil {
				status, msg := mapOrganizationError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Put("/v1/organizations/{orgId}", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in organization.UpdateInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.OrgSvc.Update(r.Context(), au.UID, chi.URLParam(r, "orgId"),
				middleware.IsAdmin(au.Claims), in)
			if err != nil {
				status, msg := mapOrganizationError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Patch("/v1/admin/organizations/{orgId}/verification", func(w http.ResponseWriter, r *http.Request) {
			if !requireAdmin(w, r) {
				return
			}

			var in struct {
				Status string `json:"status"`
			}
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.OrgSvc.SetVerification(r.Context(), chi.URLParam(r, "orgId"), in.Status)
			if err != nil {
				status, msg := mapOrganizationError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		// ===== Facilities and bookings =====
		pr.Post("/v1/facilities", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			if err := requireTool(r.Context(), d, au.UID, access.ToolFacility); err != nil {
				status, msg := mapSubscriptionError(err)
				Fail(w, status, msg)
				return
			}

			var in facility.CreateFacilityInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.FacilitySvc.Create(r.Context(), au.UID, in)
			if err != nil {
				status, msg := mapFacilityError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/facilities", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.FacilitySvc.List(r.Context(), r.URL.Query().Get("sport"), queryLimit(r, 50))
			if err != nil {
				status, msg := mapFacilityError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/facilities/{id}", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.FacilitySvc.Get(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				status, msg := mapFacilityError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/facilities/{id}/availability", func(w http.ResponseWriter, r *http.Request) {
			in := facility.CreateBookingInput{
				Start: r.URL.Query().Get("start"),
				End:   r.URL.Query().Get("end"),
			}
			available, err := d.FacilitySvc.CheckAvailability(r.Context(), chi.URLParam(r, "id"), in)
			if err != nil {
				status, msg := mapFacilityError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"available": available})
		})

		pr.Post("/v1/facilities/{id}/bookings", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in facility.CreateBookingInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.FacilitySvc.CreateBooking(r.Context(), au.UID, chi.URLParam(r, "id"), in)
			if err != nil {
				status, msg := mapFacilityError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/facilities/{id}/bookings", func(w http.ResponseWriter, r *http.Request) {
			from := time.Now().UTC()
			if raw := strings.TrimSpace(r.URL.Query().Get("from")); raw != "" {
				parsed, err := utils.ParseTime(raw)
				if err != nil {
					Fail(w, 400, "invalid from time")
					return
				}
				from = parsed.UTC()
			}

			out, err := d.FacilitySvc.ListBookings(r.Context(), chi.URLParam(r, "id"), from, queryLimit(r, 100))
			if err != nil {
				status, msg := mapFacilityError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Delete("/v1/facilities/{id}/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			out, err := d.FacilitySvc.CancelBooking(r.Context(), au.UID,
				chi.URLParam(r, "id"), chi.URLParam(r, "bookingId"))
			if err != nil {
				status, msg := mapFacilityError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		// ===== Events =====
		pr.Post("/v1/events", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			if err := requireTool(r.Context(), d, au.UID, access.ToolFixtures); err != nil {
				status, msg := mapSubscriptionError(err)
				Fail(w, status, msg)
				return
			}

			var in event.CreateEventInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.EventSvc.Create(r.Context(), au.UID, in)
			if err != nil {
				status, msg := mapEventError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/events", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.EventSvc.List(r.Context(), r.URL.Query().Get("sport"), queryLimit(r, 50))
			if err != nil {
				status, msg := mapEventError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/events/{id}", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.EventSvc.Get(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				status, msg := mapEventError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/events/{id}/register", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in event.RegisterInput
			_ = json.NewDecoder(r.Body).Decode(&in)

			out, err := d.EventSvc.Register(r.Context(), au.UID, chi.URLParam(r, "id"), in)
			if err != nil {
				status, msg := mapEventError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/events/{id}/participants", func(w http.ResponseWriter, r *http.Request) {
			out, err := d.EventSvc.ListParticipants(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				status, msg := mapEventError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Get("/v1/events/{id}/bracket", func(w http.ResponseWriter, r *http.Request) {
			seed := int64(1)
			if raw := r.URL.Query().Get("seed"); raw != "" {
				parsed, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					Fail(w, 400, "seed must be an integer")
					return
				}
				seed = parsed
			}

			out, err := d.EventSvc.Bracket(r.Context(), chi.URLParam(r, "id"), seed)
			if err != nil {
				status, msg := mapEventError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"seed": seed, "pairings": out})
		})

		// ===== Evaluations =====
		pr.Post("/v1/evaluations", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			if err := requireTool(r.Context(), d, au.UID, access.ToolScoring); err != nil {
				status, msg := mapSubscriptionError(err)
				Fail(w, status, msg)
				return
			}

			var in evaluation.CreateInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			out, err := d.EvaluationSvc.Create(r.Context(), au.UID, in)
			if err != nil {
				status, msg := mapEvaluationError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 201, out)
		})

		pr.Get("/v1/players/{uid}/evaluations", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			playerUID := chi.URLParam(r, "uid")

			// unapproved scores stay private to the player and admins
			approvedOnly := playerUID != au.UID && !middleware.IsAdmin(au.Claims)

			out, err := d.EvaluationSvc.ListForPlayer(r.Context(), playerUID, approvedOnly, queryLimit(r, 50))
			if err != nil {
				status, msg := mapEvaluationError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/admin/evaluations/{id}/approve", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			if !requireAdmin(w, r) {
				return
			}

			out, err := d.EvaluationSvc.Approve(r.Context(), au.UID, chi.URLParam(r, "id"))
			if err != nil {
				status, msg := mapEvaluationError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		// ===== Tool access =====
		pr.Get("/v1/access/{tool}", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			tool := strings.ToLower(chi.URLParam(r, "tool"))

			err := requireTool(r.Context(), d, au.UID, tool)
			if err != nil && !subscription.IsErrToolLocked(err) {
				status, msg := mapSubscriptionError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{
				"tool":    tool,
				"allowed": err == nil,
				"premium": access.IsPremiumTool(tool),
			})
		})

		// ===== Subscriptions =====
		if d.SubscriptionSvc != nil {
			pr.Post("/v1/subscriptions/create-checkout", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())

				var in subscription.CreateCheckoutInput
				if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
					Fail(w, 400, "invalid json")
					return
				}

				url, err := d.SubscriptionSvc.CreateCheckoutSession(r.Context(), au.UID, in)
				if err != nil {
					status, msg := mapSubscriptionError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, map[string]any{"url": url})
			})

			pr.Post("/v1/subscriptions/create-portal", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())

				var in subscription.CreatePortalInput
				if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
					Fail(w, 400, "invalid json")
					return
				}

				url, err := d.SubscriptionSvc.CreatePortalSession(r.Context(), au.UID, in)
				if err != nil {
					status, msg := mapSubscriptionError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, map[string]any{"url": url})
			})

			pr.Get("/v1/subscriptions/me", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())

				out, err := d.SubscriptionSvc.GetInfo(r.Context(), au.UID)
				if err != nil {
					status, msg := mapSubscriptionError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, out)
			})

			pr.Post("/v1/subscriptions/cancel", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())

				if err := d.SubscriptionSvc.Cancel(r.Context(), au.UID); err != nil {
					status, msg := mapSubscriptionError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, map[string]any{"success": true})
			})

			pr.Post("/v1/subscriptions/resume", func(w http.ResponseWriter, r *http.Request) {
				au, _ := middleware.GetAuthUser(r.Context())

				if err := d.SubscriptionSvc.Resume(r.Context(), au.UID); err != nil {
					status, msg := mapSubscriptionError(err)
					Fail(w, status, msg)
					return
				}
				WriteJSON(w, 200, map[string]any{"success": true})
			})
		}

		// ===== Notifications =====
		pr.Get("/v1/notifications", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())
			unreadOnly := r.URL.Query().Get("unread") == "true"

			out, err := d.NotificationsSvc.List(r.Context(), au.UID, unreadOnly, queryLimit(r, 50))
			if err != nil {
				status, msg := mapNotificationsError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, out)
		})

		pr.Post("/v1/notifications/read", func(w http.ResponseWriter, r *http.Request) {
			au, _ := middleware.GetAuthUser(r.Context())

			var in notifications.MarkReadInput
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}

			updated, err := d.NotificationsSvc.MarkRead(r.Context(), au.UID, in)
			if err != nil {
				status, msg := mapNotificationsError(err)
				Fail(w, status, msg)
				return
			}
			WriteJSON(w, 200, map[string]any{"updated": updated})
		})
	})

	return r
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	au, ok := middleware.GetAuthUser(r.Context())
	if !ok || !middleware.IsAdmin(au.Claims) {
		Fail(w, 403, "admin permission required")
		return false
	}
	return true
}

// requireTool gates a premium tool behind the caller's subscription. When
// Stripe is not configured the check falls back to the tier mirrored on the
// user document.
func requireTool(ctx context.Context, d RouterDeps, uid, tool string) error {
	if d.SubscriptionSvc != nil {
		return d.SubscriptionSvc.RequireTool(ctx, uid, tool)
	}

	p, err := d.UserRepo.Get(ctx, uid)
	if err != nil {
		return fmt.Errorf("%w: user not found", subscription.ErrNotFound)
	}
	if !access.HasToolAccess(p.Tier(), p.SubscriptionStatus, tool) {
		return fmt.Errorf("%w: %s requires an active pro or enterprise subscription",
			subscription.ErrToolLocked, tool)
	}
	return nil
}

func queryLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func mapApprovalError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case approval.IsErrUnauthorized(err):
		return 403, err.Error()
	case approval.IsErrNotFound(err):
		return 404, err.Error()
	case approval.IsErrInvalidStateTransition(err):
		return 409, err.Error()
	case approval.IsErrMissingReason(err):
		return 400, err.Error()
	case approval.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapUserError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case user.IsErrUnauthorized(err):
		return 403, err.Error()
	case user.IsErrNotFound(err):
		return 404, err.Error()
	case user.IsErrBadRequest(err):
		return 400, err.Error()
	case approval.IsErrInvalidStateTransition(err):
		return 409, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapMembershipError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case membership.IsErrUnauthorized(err):
		return 403, err.Error()
	case membership.IsErrNotFound(err):
		return 404, err.Error()
	case membership.IsErrDuplicateTag(err):
		return 409, err.Error()
	case membership.IsErrBadRequest(err):
		return 400, err.Error()
	case approval.IsErrInvalidStateTransition(err):
		return 409, err.Error()
	case approval.IsErrMissingReason(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapOrganizationError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case organization.IsErrUnauthorized(err):
		return 403, err.Error()
	case organization.IsErrNotFound(err):
		return 404, err.Error()
	case organization.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapFacilityError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case facility.IsErrUnauthorized(err):
		return 403, err.Error()
	case facility.IsErrNotFound(err):
		return 404, err.Error()
	case facility.IsErrSlotTaken(err):
		return 409, err.Error()
	case facility.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapEventError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case event.IsErrUnauthorized(err):
		return 403, err.Error()
	case event.IsErrNotFound(err):
		return 404, err.Error()
	case event.IsErrEventFull(err):
		return 409, err.Error()
	case event.IsErrRegistrationOver(err):
		return 400, err.Error()
	case event.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapEvaluationError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case evaluation.IsErrUnauthorized(err):
		return 403, err.Error()
	case evaluation.IsErrNotFound(err):
		return 404, err.Error()
	case evaluation.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapSubscriptionError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case subscription.IsErrToolLocked(err):
		return 402, err.Error()
	case subscription.IsErrUnauthorized(err):
		return 403, err.Error()
	case subscription.IsErrNotFound(err):
		return 404, err.Error()
	case subscription.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapNotificationsError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	switch {
	case notifications.IsErrNotFound(err):
		return 404, err.Error()
	case notifications.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}
