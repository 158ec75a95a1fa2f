package applications

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"adoption-platform/internal/domain/animals"
	"adoption-platform/internal/domain/users"
	"adoption-platform/internal/platform/logger"
	domainerrors "adoption-platform/pkg/domain-errors"
)

var ErrAnimalAdopted = domainerrors.New(domainerrors.CodeConflict, "Este animal ya ha sido adoptado")

var emailRe = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

type Service struct {
	repo    Repository
	animals *animals.Service
	users   *users.Service
	log     logger.Logger
	now     func() time.Time
}

func NewService(repo Repository, animalsSvc *animals.Service, usersSvc *users.Service, log logger.Logger) *Service {
	return &Service{
		repo:    repo,
		animals: animalsSvc,
		users:   usersSvc,
		log:     log,
		now:     time.Now,
	}
}

type CreateInput struct {
	AnimalID      string
	Name          string
	Email         string
	Phone         string
	Address       string
	Occupation    string
	Housing       string
	OutdoorSpace  *bool
	PetExperience string
	Reason        string
}

// Create aplica las reglas en orden: el animal existe, no está adoptado,
// el usuario no tiene ya una solicitud para él, y los campos validan.
// Los pasos no son transaccionales: una segunda submission concurrente puede
// pasar el pre-chequeo, y entonces es el índice único (user, animal) del
// repositorio el que la rechaza en el persist.
func (s *Service) Create(ctx context.Context, applicantID string, in CreateInput) (Detail, error) {
	animalID := strings.TrimSpace(in.AnimalID)
	if animalID == "" {
		return Detail{}, domainerrors.New(domainerrors.CodeValidation, "El ID del animal es requerido")
	}

	animal, err := s.animals.Get(ctx, animalID)
	if err != nil {
		return Detail{}, err
	}
	if animal.State == animals.StateAdopted {
		return Detail{}, ErrAnimalAdopted
	}

	exists, err := s.repo.ExistsForUserAnimal(ctx, applicantID, animalID)
	if err != nil {
		return Detail{}, err
	}
	if exists {
		return Detail{}, ErrDuplicate
	}

	now := s.now()
	app := Application{
		ID:            uuid.NewString(),
		UserID:        applicantID,
		AnimalID:      animalID,
		Name:          strings.TrimSpace(in.Name),
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:         strings.TrimSpace(in.Phone),
		Address:       strings.TrimSpace(in.Address),
		Occupation:    strings.TrimSpace(in.Occupation),
		Housing:       Housing(strings.TrimSpace(in.Housing)),
		PetExperience: strings.TrimSpace(in.PetExperience),
		Reason:        strings.TrimSpace(in.Reason),
		Status:        StatusReceived,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if in.OutdoorSpace == nil {
		return Detail{}, domainerrors.New(domainerrors.CodeValidation, "Debe indicar si tiene espacio exterior")
	}
	app.OutdoorSpace = *in.OutdoorSpace

	if err := validate(app); err != nil {
		return Detail{}, err
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return Detail{}, err
	}

	return s.join(ctx, app), nil
}

func (s *Service) ListAll(ctx context.Context, f Filter) ([]Detail, error) {
	if f.Status != "" && !ValidStatus(Status(f.Status)) {
		return nil, domainerrors.New(domainerrors.CodeValidation, "El estado debe ser recibida, en revisión, aprobada o rechazada")
	}

	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.joinAll(ctx, items), nil
}

func (s *Service) ListMine(ctx context.Context, applicantID string) ([]Detail, error) {
	items, err := s.repo.ListByUser(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	return s.joinAll(ctx, items), nil
}

// Get aplica la regla owner-or-admin.
func (s *Service) Get(ctx context.Context, id, requesterID string, requesterAdmin bool) (Detail, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	if app.UserID != requesterID && !requesterAdmin {
		return Detail{}, domainerrors.New(domainerrors.CodeForbidden, "No autorizado para ver esta solicitud")
	}
	return s.join(ctx, app), nil
}

// UpdateStatus persiste {status, notasAdmin} y, si el nuevo status es
// aprobada, dispara el write independiente que marca al animal como
// adoptado. Son dos escrituras sin transacción compartida: si la segunda
// falla, la solicitud queda aprobada con el animal sin adoptar y lo único
// que queda es el log de error (ventana aceptada del diseño original).
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status, adminNotes string) (Detail, error) {
	if !ValidStatus(status) {
		return Detail{}, domainerrors.New(domainerrors.CodeValidation, "El estado debe ser recibida, en revisión, aprobada o rechazada")
	}
	adminNotes = strings.TrimSpace(adminNotes)
	if utf8.RuneCountInString(adminNotes) > 1000 {
		return Detail{}, domainerrors.New(domainerrors.CodeValidation, "Las notas no pueden exceder 1000 caracteres")
	}

	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	app.Status = status
	app.AdminNotes = adminNotes
	app.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, app); err != nil {
		return Detail{}, err
	}

	if status == StatusApproved {
		if err := s.animals.SetState(ctx, app.AnimalID, animals.StateAdopted); err != nil {
			s.log.Error("solicitud aprobada pero el animal no quedó adoptado", map[string]any{
				"application_id": app.ID,
				"animal_id":      app.AnimalID,
				"error":          err.Error(),
			})
		}
	}

	return s.join(ctx, app), nil
}

// Stats se recalcula en cada llamada; no hay cache.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

func (s *Service) joinAll(ctx context.Context, items []Application) []Detail {
	out := make([]Detail, 0, len(items))
	for _, app := range items {
		out = append(out, s.join(ctx, app))
	}
	return out
}

// join arma los resúmenes denormalizados en tiempo de lectura; tolera
// referentes borrados dejando el resumen en nil.
func (s *Service) join(ctx context.Context, app Application) Detail {
	d := Detail{Application: app}

	if a, err := s.animals.Get(ctx, app.AnimalID); err == nil {
		d.Animal = &AnimalSummary{
			ID:       a.ID,
			Name:     a.Name,
			Species:  string(a.Species),
			Breed:    a.Breed,
			PhotoURL: a.PhotoURL,
			State:    string(a.State),
		}
	} else if !errors.Is(err, animals.ErrNotFound) {
		s.log.Warn("no se pudo resolver el animal de la solicitud", map[string]any{
			"application_id": app.ID,
			"animal_id":      app.AnimalID,
			"error":          err.Error(),
		})
	}

	if u, err := s.users.GetByID(ctx, app.UserID); err == nil {
		d.User = &UserSummary{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
		}
	}

	return d
}

func validate(app Application) error {
	fail := func(msg string) error {
		return domainerrors.New(domainerrors.CodeValidation, msg)
	}

	if app.Name == "" {
		return fail("El nombre es requerido")
	}
	if app.Email == "" {
		return fail("El email es requerido")
	}
	if !emailRe.MatchString(app.Email) {
		return fail("Por favor ingrese un email válido")
	}
	if app.Phone == "" {
		return fail("El teléfono es requerido")
	}
	if app.Address == "" {
		return fail("La dirección es requerida")
	}
	if app.Occupation == "" {
		return fail("La ocupación es requerida")
	}

	if app.Housing == "" {
		return fail("El tipo de vivienda es requerido")
	}
	if !ValidHousing(app.Housing) {
		return fail("El tipo de vivienda debe ser casa, apartamento u otro")
	}

	switch n := utf8.RuneCountInString(app.PetExperience); {
	case n == 0:
		return fail("La experiencia con mascotas es requerida")
	case n < 10:
		return fail("Debe proporcionar al menos 10 caracteres de experiencia con mascotas")
	case n > 500:
		return fail("La experiencia con mascotas no puede exceder 500 caracteres")
	}

	switch n := utf8.RuneCountInString(app.Reason); {
	case n == 0:
		return fail("El motivo de adopción es requerido")
	case n < 10:
		return fail("Debe proporcionar al menos 10 caracteres de motivo de adopción")
	case n > 500:
		return fail("El motivo de adopción no puede exceder 500 caracteres")
	}

	return nil
}
