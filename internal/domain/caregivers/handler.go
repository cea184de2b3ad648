package caregivers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ritinnambiar/baby-tracker-sub000/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Owner actions scoped by baby
	r.Route("/babies/{babyID}/caregivers", func(cr chi.Router) {
		cr.Get("/", listCaregiversHandler(svc))
		cr.Delete("/{userID}", revokeCaregiverHandler(svc))
	})

	// El usuario: sus propios grants
	r.Route("/me/grants", func(mr chi.Router) {
		mr.Get("/", listMyGrantsHandler(svc))
	})
}

type grantResponse struct {
	ID        string    `json:"id"`
	BabyID    string    `json:"baby_id"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	GrantedAt time.Time `json:"granted_at"`
	GrantedBy *string   `json:"granted_by,omitempty"`
}

// listCaregiversHandler godoc
// @Summary Listar grants de un perfil
// @Description Lista los accesos (owner y caregivers) de un perfil. Solo el owner.
// @Tags caregivers
// @Produce json
// @Param babyID path string true "ID del perfil"
// @Success 200 {array} grantResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /babies/{babyID}/caregivers [get]
func listCaregiversHandler(svc *Service) http.HandlerFunc {
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

		out := make([]grantResponse, 0, len(items))
		for _, g := range items {
			out = append(out, toGrantResponse(g))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// revokeCaregiverHandler godoc
// @Summary Revocar el acceso de un caregiver
// @Description Elimina el grant de un caregiver sobre el perfil. Solo el owner. El grant owner no se puede revocar.
// @Tags caregivers
// @Param babyID path string true "ID del perfil"
// @Param userID path string true "ID del caregiver a revocar"
// @Success 204 {string} string "revocado"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Failure 409 {string} string "cannot remove the owner grant"
// @Router /babies/{babyID}/caregivers/{userID} [delete]
func revokeCaregiverHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		babyID := chi.URLParam(r, "babyID")
		targetID := chi.URLParam(r, "userID")

		err := svc.Revoke(r.Context(), claims.UserID, babyID, targetID)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrForbidden:
				http.Error(w, "forbidden", http.StatusForbidden)
			case ErrNotFound:
				http.Error(w, "not found", http.StatusNotFound)
			case ErrCannotRemoveOwner:
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// listMyGrantsHandler godoc
// @Summary Listar mis grants
// @Description Lista los grants del usuario autenticado (los perfiles que puede ver).
// @Tags caregivers
// @Produce json
// @Success 200 {array} grantResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/grants [get]
func listMyGrantsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]grantResponse, 0, len(items))
		for _, g := range items {
			out = append(out, toGrantResponse(g))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toGrantResponse(g Grant) grantResponse {
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
