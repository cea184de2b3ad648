package invitations

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ritinnambiar/baby-tracker-sub000/internal/domain/caregivers"
	"github.com/ritinnambiar/baby-tracker-sub000/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, coord *Coordinator) {
	// Owner actions scoped by baby
	r.Route("/babies/{babyID}/invitations", func(ir chi.Router) {
		ir.Post("/", inviteHandler(svc))
		ir.Get("/", listInvitationsHandler(svc))
	})

	r.Route("/invitations/{invitationID}", func(ir chi.Router) {
		ir.Post("/cancel", cancelInvitationHandler(svc))
	})

	// Superficie de aceptación, direccionada por token (credencial de
	// portador): preview sin sesión, accept con sesión.
	r.Route("/invitations/token/{token}", func(tr chi.Router) {
		tr.Get("/", previewHandler(coord))
		tr.Post("/accept", acceptHandler(coord))
	})
}

type inviteRequest struct {
	Email string `json:"email"`
}

type invitationResponse struct {
	ID           string     `json:"id"`
	BabyID       string     `json:"baby_id"`
	InvitedEmail string     `json:"invited_email"`
	InvitedBy    string     `json:"invited_by"`
	Status       Status     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	ExpiresAt    time.Time  `json:"expires_at"`
	AcceptedAt   *time.Time `json:"accepted_at,omitempty"`
}

type inviteResponse struct {
	GrantedDirectly bool `json:"granted_directly"`

	Grant      *grantResponse      `json:"grant,omitempty"`
	Invitation *invitationResponse `json:"invitation,omitempty"`

	// Token y URL solo en el camino de invitación; el owner puede
	// compartirlos a mano si el mail no salió.
	Token     string `json:"token,omitempty"`
	AcceptURL string `json:"accept_url,omitempty"`

	Warning string `json:"warning,omitempty"`
}

type grantResponse struct {
	ID        string          `json:"id"`
	BabyID    string          `json:"baby_id"`
	UserID    string          `json:"user_id"`
	Role      caregivers.Role `json:"role"`
	GrantedAt time.Time       `json:"granted_at"`
	GrantedBy *string         `json:"granted_by,omitempty"`
}

// inviteHandler godoc
// @Summary Invitar un caregiver por email
// @Description Ofrece acceso caregiver a un email. Si el email ya tiene cuenta, otorga el grant directo; si no, crea una invitación pending con token de 7 días y manda el mail (best-effort). Solo el owner.
// @Tags invitations
// @Accept json
// @Produce json
// @Param babyID path string true "ID del perfil"
// @Param payload body inviteRequest true "Email a invitar"
// @Success 201 {object} inviteResponse
// @Failure 400 {string} string "invalid json / email inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 409 {string} string "email already has access"
// @Router /babies/{babyID}/invitations [post]
func inviteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		babyID := chi.URLParam(r, "babyID")

		var req inviteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.Invite(r.Context(), Actor{ID: claims.UserID, Email: claims.Email}, babyID, req.Email)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrForbidden:
				http.Error(w, "forbidden", http.StatusForbidden)
			case ErrAlreadyGranted:
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		out := inviteResponse{
			GrantedDirectly: res.GrantedDirectly,
			Warning:         res.DeliveryWarning,
		}
		if res.GrantedDirectly {
			g := toGrantResponse(res.Grant)
			out.Grant = &g
		} else {
			inv := toInvitationResponse(res.Invitation)
			out.Invitation = &inv
			out.Token = res.Invitation.Token
			out.AcceptURL = res.AcceptURL
		}

		writeJSON(w, http.StatusCreated, out)
	}
}

// listInvitationsHandler godoc
// @Summary Listar invitaciones de un perfil
// @Description Historial de invitaciones del perfil, con expiración derivada aplicada al status. Solo el owner.
// @Tags invitations
// @Produce json
// @Param babyID path string true "ID del perfil"
// @Success 200 {array} invitationResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /babies/{babyID}/invitations [get]
func listInvitationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		babyID := chi.URLParam(r, "babyID")

		items, err := svc.ListByBaby(r.Context(), claims.UserID, babyID)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrForbidden:
				http.Error(w, "forbidden", http.StatusForbidden)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		out := make([]invitationResponse, 0, len(items))
		for _, inv := range items {
			out = append(out, toInvitationResponse(inv))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// cancelInvitationHandler godoc
// @Summary Cancelar una invitación
// @Description Marca cancelled una invitación pending. Idempotente sobre estados terminales. Solo el owner.
// @Tags invitations
// @Produce json
// @Param invitationID path string true "ID de la invitación"
// @Success 200 {object} invitationResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Router /invitations/{invitationID}/cancel [post]
func cancelInvitationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		invitationID := chi.URLParam(r, "invitationID")

		inv, err := svc.Cancel(r.Context(), claims.UserID, invitationID)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrForbidden:
				http.Error(w, "forbidden", http.StatusForbidden)
			case ErrNotFound:
				http.Error(w, "not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toInvitationResponse(inv))
	}
}

type acceptOutcomeResponse struct {
	State  AcceptState   `json:"state"`
	Reason InvalidReason `json:"reason,omitempty"`

	Invitation *invitationResponse `json:"invitation,omitempty"`
	Grant      *grantResponse      `json:"grant,omitempty"`

	Message string `json:"message,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// previewHandler godoc
// @Summary Ver una invitación por token
// @Description Valida el token sin requerir sesión. Devuelve awaiting_auth si la invitación es aceptable, o el motivo específico si no.
// @Tags invitations
// @Produce json
// @Param token path string true "Token de la invitación"
// @Success 200 {object} acceptOutcomeResponse
// @Failure 404 {string} string "not found"
// @Failure 410 {string} string "already accepted / expired / cancelled"
// @Router /invitations/token/{token} [get]
func previewHandler(coord *Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")

		out, err := coord.Preview(r.Context(), token)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, statusForOutcome(out), toOutcomeResponse(out))
	}
}

// acceptHandler godoc
// @Summary Aceptar una invitación
// @Description Convierte (token, sesión autenticada) en un grant caregiver, exactamente una vez en efecto. Sin sesión devuelve awaiting_auth. Email distinto al invitado => 403 recuperable.
// @Tags invitations
// @Produce json
// @Param token path string true "Token de la invitación"
// @Success 200 {object} acceptOutcomeResponse
// @Failure 403 {object} acceptOutcomeResponse "email mismatch"
// @Failure 404 {string} string "not found"
// @Failure 410 {string} string "already accepted / expired / cancelled"
// @Router /invitations/token/{token}/accept [post]
func acceptHandler(coord *Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")

		var principal Actor
		if claims, ok := middleware.GetClaims(r.Context()); ok {
			principal = Actor{ID: claims.UserID, Email: claims.Email}
		}

		out, err := coord.Accept(r.Context(), token, principal)
		if err != nil {
			var mismatch *EmailMismatchError
			if errors.As(err, &mismatch) {
				writeJSON(w, http.StatusForbidden, acceptOutcomeResponse{
					State:   StateAcceptError,
					Message: mismatch.Error(),
				})
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, statusForOutcome(out), toOutcomeResponse(out))
	}
}

// statusForOutcome: estados inválidos con código específico para que la
// superficie distinga link roto, token desconocido y estados terminales.
func statusForOutcome(out Outcome) int {
	switch out.State {
	case StateInvalidLink:
		return http.StatusBadRequest
	case StateInvalid:
		if out.Reason == ReasonNotFound {
			return http.StatusNotFound
		}
		return http.StatusGone
	default:
		return http.StatusOK
	}
}

func toOutcomeResponse(out Outcome) acceptOutcomeResponse {
	resp := acceptOutcomeResponse{
		State:   out.State,
		Reason:  out.Reason,
		Warning: out.Warning,
	}
	if out.Invitation.ID != "" {
		inv := toInvitationResponse(out.Invitation)
		resp.Invitation = &inv
	}
	if out.Grant.ID != "" {
		g := toGrantResponse(out.Grant)
		resp.Grant = &g
	}
	switch out.Reason {
	case ReasonNotFound:
		resp.Message = "invitation not found"
	case ReasonAlreadyAccepted:
		resp.Message = "this invitation was already accepted"
	case ReasonExpired:
		resp.Message = "this invitation has expired"
	case ReasonCancelled:
		resp.Message = "this invitation was cancelled"
	}
	return resp
}

func toInvitationResponse(inv Invitation) invitationResponse {
	return invitationResponse{
		ID:           inv.ID,
		BabyID:       inv.BabyID,
		InvitedEmail: inv.InvitedEmail,
		InvitedBy:    inv.InvitedBy,
		Status:       inv.Status,
		CreatedAt:    inv.CreatedAt,
		ExpiresAt:    inv.ExpiresAt,
		AcceptedAt:   inv.AcceptedAt,
	}
}

func toGrantResponse(g caregivers.Grant) grantResponse {
	return grantResponse{
		ID:        g.ID,
		BabyID:    g.BabyID,
		UserID:    g.UserID,
		Role:      g.Role,
		GrantedAt: g.GrantedAt,
		GrantedBy: g.GrantedBy,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
