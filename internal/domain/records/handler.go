package records

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ritinnambiar/baby-tracker-sub000/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/babies/{babyID}/records", func(rr chi.Router) {
		rr.Post("/", createRecordHandler(svc))
		rr.Get("/", listRecordsHandler(svc))
		rr.Get("/{recordID}", getRecordHandler(svc))
	})
}

type createRecordRequest struct {
	Kind       Kind    `json:"kind"`
	OccurredAt string  `json:"occurred_at"` // RFC3339
	Note       string  `json:"note"`
	Amount     float64 `json:"amount"`
}

type recordResponse struct {
	ID         string    `json:"id"`
	BabyID     string    `json:"baby_id"`
	Kind       Kind      `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`
	Note       string    `json:"note,omitempty"`
	Amount     float64   `json:"amount,omitempty"`
	RecordedBy string    `json:"recorded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// createRecordHandler godoc
// @Summary Crear registro de cuidado
// @Description Crea un registro (feeding, sleep, diaper, ...). Requiere un grant sobre el perfil, cualquier rol.
// @Tags records
// @Accept json
// @Produce json
// @Param babyID path string true "ID del perfil"
// @Param payload body createRecordRequest true "Registro; occurred_at RFC3339"
// @Success 201 {object} recordResponse
// @Failure 400 {string} string "invalid json / occurred_at inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /babies/{babyID}/records [post]
func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		babyID := chi.URLParam(r, "babyID")

		var req createRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			http.Error(w, "occurred_at must be RFC3339", http.StatusBadRequest)
			return
		}

		rec, err := svc.Create(r.Context(), claims.UserID, babyID, CreateInput{
			Kind:       req.Kind,
			OccurredAt: t,
			Note:       req.Note,
			Amount:     req.Amount,
		})
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

		writeJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

// listRecordsHandler godoc
// @Summary Listar registros de cuidado
// @Description Lista registros del perfil, con filtros kind y limit. Requiere un grant, cualquier rol.
// @Tags records
// @Produce json
// @Param babyID path string true "ID del perfil"
// @Param kind query string false "Filtrar por tipo"
// @Param limit query int false "Máximo de filas"
// @Success 200 {array} recordResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /babies/{babyID}/records [get]
func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		babyID := chi.URLParam(r, "babyID")

		filter := ListFilter{
			Kind: Kind(strings.TrimSpace(r.URL.Query().Get("kind"))),
		}
		if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				filter.Limit = n
			}
		}

		items, err := svc.ListByBaby(r.Context(), claims.UserID, babyID, filter)
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

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getRecordHandler godoc
// @Summary Ver un registro de cuidado
// @Description Devuelve un registro puntual del perfil. Requiere un grant, cualquier rol.
// @Tags records
// @Produce json
// @Param babyID path string true "ID del perfil"
// @Param recordID path string true "ID del registro"
// @Success 200 {object} recordResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Router /babies/{babyID}/records/{recordID} [get]
func getRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		babyID := chi.URLParam(r, "babyID")
		recordID := chi.URLParam(r, "recordID")

		rec, err := svc.Get(r.Context(), claims.UserID, babyID, recordID)
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

		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func toRecordResponse(rec Record) recordResponse {
	return recordResponse{
		ID:         rec.ID,
		BabyID:     rec.BabyID,
		Kind:       rec.Kind,
		OccurredAt: rec.OccurredAt,
		Note:       rec.Note,
		Amount:     rec.Amount,
		RecordedBy: rec.RecordedBy,
		CreatedAt:  rec.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
