package animals

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
	r.Route("/api/animals", func(ar chi.Router) {
		// Catálogo público
		ar.Get("/", listHandler(svc))
		ar.Get("/{id}", getHandler(svc))

		// Back office (admin)
		ar.Group(func(adm chi.Router) {
			adm.Use(middleware.RequireAuth)
			adm.Use(middleware.RequireAdmin)

			adm.Get("/admin/stats", statsHandler(svc))
			adm.Get("/chip/{chip}", chipHandler(svc))
			adm.Post("/", createHandler(svc))
			adm.Put("/{id}", updateHandler(svc))
			adm.Delete("/{id}", deleteHandler(svc))
		})
	})
}

type createAnimalRequest struct {
	Name         string `json:"nombre"`
	Species      string `json:"especie"`
	Breed        string `json:"raza"`
	Age          *int   `json:"edad"`
	Sex          string `json:"sexo"`
	Size         string `json:"tamaño"`
	Color        string `json:"color"`
	Description  string `json:"descripcion"`
	State        string `json:"estado"`
	PhotoURL     string `json:"fotoUrl"`
	Chip         string `json:"chip"`
	Sterilized   bool   `json:"esterilizado"`
	Vaccinated   bool   `json:"vacunado"`
	Dewormed     bool   `json:"desparasitado"`
	SpecialNeeds string `json:"necesidadesEspeciales"`
}

// Punteros para merge real: nil = no tocar.
type updateAnimalRequest struct {
	Name         *string `json:"nombre"`
	Species      *string `json:"especie"`
	Breed        *string `json:"raza"`
	Age          *int    `json:"edad"`
	Sex          *string `json:"sexo"`
	Size         *string `json:"tamaño"`
	Color        *string `json:"color"`
	Description  *string `json:"descripcion"`
	State        *string `json:"estado"`
	PhotoURL     *string `json:"fotoUrl"`
	Chip         *string `json:"chip"`
	Sterilized   *bool   `json:"esterilizado"`
	Vaccinated   *bool   `json:"vacunado"`
	Dewormed     *bool   `json:"desparasitado"`
	SpecialNeeds *string `json:"necesidadesEspeciales"`
}

type animalResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"nombre"`
	Species      Species   `json:"especie"`
	Breed        string    `json:"raza"`
	Age          int       `json:"edad"`
	Sex          Sex       `json:"sexo"`
	Size         Size      `json:"tamaño"`
	Color        string    `json:"color"`
	Description  string    `json:"descripcion"`
	State        State     `json:"estado"`
	PhotoURL     string    `json:"fotoUrl"`
	Chip         string    `json:"chip,omitempty"`
	Sterilized   bool      `json:"esterilizado"`
	Vaccinated   bool      `json:"vacunado"`
	Dewormed     bool      `json:"desparasitado"`
	SpecialNeeds string    `json:"necesidadesEspeciales,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), Filter{
			Species: q.Get("especie"),
			State:   q.Get("estado"),
			Search:  q.Get("search"),
		})
		if err != nil {
			httpx.Fail(w, err)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}
		httpx.List(w, len(out), out)
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.Fail(w, err)
			return
		}
		httpx.Data(w, http.StatusOK, toAnimalResponse(a))
	}
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, domainerrors.New(domainerrors.CodeValidation, "JSON inválido"))
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			Name:         req.Name,
			Species:      req.Species,
			Breed:        req.Breed,
			Age:          req.Age,
			Sex:          req.Sex,
			Size:         req.Size,
			Color:        req.Color,
			Description:  req.Description,
			PhotoURL:     req.PhotoURL,
			Chip:         req.Chip,
			State:        req.State,
			Sterilized:   req.Sterilized,
			Vaccinated:   req.Vaccinated,
			Dewormed:     req.Dewormed,
			SpecialNeeds: req.SpecialNeeds,
		})
		if err != nil {
			httpx.Fail(w, err)
			return
		}

		httpx.Data(w, http.StatusCreated, toAnimalResponse(a))
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, domainerrors.New(domainerrors.CodeValidation, "JSON inválido"))
			return
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			Name:         req.Name,
			Species:      req.Species,
			Breed:        req.Breed,
			Age:          req.Age,
			Sex:          req.Sex,
			Size:         req.Size,
			Color:        req.Color,
			Description:  req.Description,
			PhotoURL:     req.PhotoURL,
			Chip:         req.Chip,
			State:        req.State,
			Sterilized:   req.Sterilized,
			Vaccinated:   req.Vaccinated,
			Dewormed:     req.Dewormed,
			SpecialNeeds: req.SpecialNeeds,
		})
		if err != nil {
			httpx.Fail(w, err)
			return
		}

		httpx.Data(w, http.StatusOK, toAnimalResponse(a))
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			httpx.Fail(w, err)
			return
		}
		httpx.Message(w, http.StatusOK, "Animal eliminado correctamente")
	}
}

func chipHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.FindByChip(r.Context(), chi.URLParam(r, "chip"))
		if err != nil {
			httpx.Fail(w, err)
			return
		}
		httpx.Data(w, http.StatusOK, toAnimalResponse(a))
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

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:           a.ID,
		Name:         a.Name,
		Species:      a.Species,
		Breed:        a.Breed,
		Age:          a.Age,
		Sex:          a.Sex,
		Size:         a.Size,
		Color:        a.Color,
		Description:  a.Description,
		State:        a.State,
		PhotoURL:     a.PhotoURL,
		Chip:         a.Chip,
		Sterilized:   a.Sterilized,
		Vaccinated:   a.Vaccinated,
		Dewormed:     a.Dewormed,
		SpecialNeeds: a.SpecialNeeds,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
