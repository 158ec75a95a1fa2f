package applications

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"adoption-platform/internal/middleware"
	"adoption-platform/internal/platform/httpx"
	domainerrors "adoption-platform/pkg/domain-errors"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/api/applications", func(ar chi.Router) {
		ar.Use(middleware.RequireAuth)

		ar.Post("/", createHandler(svc))
		ar.Get("/my", myHandler(svc))
		ar.Get("/{id}", getHandler(svc))

		ar.Group(func(adm chi.Router) {
			adm.Use(middleware.RequireAdmin)

			adm.Get("/", listHandler(svc))
			adm.Get("/admin/stats", statsHandler(svc))
			adm.Put("/{id}", updateHandler(svc))
		})
	})
}

type createApplicationRequest struct {
	AnimalID      string `json:"animalId"`
	Name          string `json:"nombre"`
	Email         string `json:"email"`
	Phone         string `json:"telefono"`
	Address       string `json:"direccion"`
	Occupation    string `json:"ocupacion"`
	Housing       string `json:"tipoVivienda"`
	OutdoorSpace  *bool  `json:"espacioExterior"`
	PetExperience string `json:"experienciaMascotas"`
	Reason        string `json:"motivoAdopcion"`
}

type updateApplicationRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"notasAdmin"`
}

type applicationResponse struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId"`
	AnimalID      string         `json:"animalId"`
	Name          string         `json:"nombre"`
	Email         string         `json:"email"`
	Phone         string         `json:"telefono"`
	Address       string         `json:"direccion"`
	Occupation    string         `json:"ocupacion"`
	Housing       Housing        `json:"tipoVivienda"`
	OutdoorSpace  bool           `json:"espacioExterior"`
	PetExperience string         `json:"experienciaMascotas"`
	Reason        string         `json:"motivoAdopcion"`
	Status        Status         `json:"status"`
	AdminNotes    string         `json:"notasAdmin,omitempty"`
	Animal        *AnimalSummary `json:"animal,omitempty"`
	User          *UserSummary   `json:"user,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req createApplicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, domainerrors.New(domainerrors.CodeValidation, "JSON inválido"))
			return
		}

		d, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			AnimalID:      req.AnimalID,
			Name:          req.Name,
			Email:         req.Email,
			Phone:         req.Phone,
			Address:       req.Address,
			Occupation:    req.Occupation,
			Housing:       req.Housing,
			OutdoorSpace:  req.OutdoorSpace,
			PetExperience: req.PetExperience,
			Reason:        req.Reason,
		})
		if err != nil {
			httpx.Fail(w, err)
			return
		}

		httpx.Data(w, http.StatusCreated, toApplicationResponse(d))
	}
}

func myHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.ListMine(r.Context(), claims.UserID)
		if err != nil {
			httpx.Fail(w, err)
			return
		}
		httpx.List(w, len(items), toApplicationResponses(items))
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		d, err := svc.Get(r.Context(), chi.URLParam(r, "id"), claims.UserID, claims.Admin())
		if err != nil {
			httpx.Fail(w, err)
			return
		}
		httpx.Data(w, http.StatusOK, toApplicationResponse(d))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context(), Filter{Status: r.URL.Query().Get("status")})
		if err != nil {
			httpx.Fail(w, err)
			return
		}
		httpx.List(w, len(items), toApplicationResponses(items))
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateApplicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, domainerrors.New(domainerrors.CodeValidation, "JSON inválido"))
			return
		}

		d, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), Status(req.Status), req.AdminNotes)
		if err != nil {
			httpx.Fail(w, err)
			return
		}
		httpx.Data(w, http.StatusOK, toApplicationResponse(d))
	}
}

func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Stats(r.Context())
		if err != nil {
			httpx.Fail(w, err)
			return
		}
		httpx.Data(w, http.StatusOK, st)
	}
}

func toApplicationResponses(items []Detail) []applicationResponse {
	out := make([]applicationResponse, 0, len(items))
	for _, d := range items {
		out = append(out, toApplicationResponse(d))
	}
	return out
}

func toApplicationResponse(d Detail) applicationResponse {
	return applicationResponse{
		ID:            d.ID,
		UserID:        d.UserID,
		AnimalID:      d.AnimalID,
		Name:          d.Name,
		Email:         d.Email,
		Phone:         d.Phone,
		Address:       d.Address,
		Occupation:    d.Occupation,
		Housing:       d.Housing,
		OutdoorSpace:  d.OutdoorSpace,
		PetExperience: d.PetExperience,
		Reason:        d.Reason,
		Status:        d.Status,
		AdminNotes:    d.AdminNotes,
		Animal:        d.Animal,
		User:          d.User,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
