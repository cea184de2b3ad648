package babies

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ritinnambiar/baby-tracker-sub000/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// GrantLookup evita importar el paquete caregivers (rompe ciclos).
type GrantLookup interface {
	BabyIDsFor(ctx context.Context, userID string) ([]string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, grants GrantLookup) {
	r.Route("/babies", func(br chi.Router) {
		br.Post("/", createBabyHandler(svc))
		br.Get("/", listMyBabiesHandler(svc, grants))
		br.Get("/{babyID}", getBabyHandler(svc))
	})
}

type createBabyRequest struct {
	Name      string `json:"name"`
	Sex       string `json:"sex"`
	BirthDate string `json:"birth_date"` // RFC3339, opcional
	Notes     string `json:"notes"`
}

type babyResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Sex       Sex        `json:"sex"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// createBabyHandler godoc
// @Summary Crear perfil de bebé
// @Description Crea el perfil y el grant owner del creador en la misma operación.
// @Tags babies
// @Accept json
// @Produce json
// @Param payload body createBabyRequest true "Datos del perfil; birth_date RFC3339 opcional"
// @Success 201 {object} babyResponse
// @Failure 400 {string} string "invalid json / datos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /babies [post]
func createBabyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createBabyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var birth *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse(time.RFC3339, req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be RFC3339", http.StatusBadRequest)
				return
			}
			birth = &t
		}

		b, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:      req.Name,
			Sex:       req.Sex,
			BirthDate: birth,
			Notes:     req.Notes,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toBabyResponse(b))
	}
}

// getBabyHandler godoc
// @Summary Ver perfil de bebé
// @Description Devuelve el perfil si el actor tiene un grant (owner o caregiver).
// @Tags babies
// @Produce json
// @Param babyID path string true "ID del perfil"
// @Success 200 {object} babyResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Router /babies/{babyID} [get]
func getBabyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		babyID := chi.URLParam(r, "babyID")

		b, err := svc.Get(r.Context(), claims.UserID, babyID)
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

		writeJSON(w, http.StatusOK, toBabyResponse(b))
	}
}

// listMyBabiesHandler godoc
// @Summary Listar mis bebés
// @Description Los perfiles alcanzables por los grants del usuario autenticado.
// @Tags babies
// @Produce json
// @Success 200 {array} babyResponse
// @Failure 401 {string} string "unauthorized"
// @Router /babies [get]
func listMyBabiesHandler(svc *Service, grants GrantLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ids, err := grants.BabyIDsFor(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		items, err := svc.ListByIDs(r.Context(), ids)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]babyResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBabyResponse(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toBabyResponse(b Baby) babyResponse {
	return babyResponse{
		ID:        b.ID,
		Name:      b.Name,
		Sex:       b.Sex,
		BirthDate: b.BirthDate,
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
