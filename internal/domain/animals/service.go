package animals

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	domainerrors "adoption-platform/pkg/domain-errors"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name        string
	Species     string
	Breed       string
	Age         *int
	Sex         string
	Size        string
	Color       string
	Description string
	PhotoURL    string
	Chip        string
	State       string // opcional, default listo

	Sterilized bool
	Vaccinated bool
	Dewormed   bool

	SpecialNeeds string
}

// UpdateInput es un merge: nil = no tocar el campo.
type UpdateInput struct {
	Name        *string
	Species     *string
	Breed       *string
	Age         *int
	Sex         *string
	Size        *string
	Color       *string
	Description *string
	PhotoURL    *string
	Chip        *string
	State       *string

	Sterilized *bool
	Vaccinated *bool
	Dewormed   *bool

	SpecialNeeds *string
}

func (s *Service) List(ctx context.Context, f Filter) ([]Animal, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id string) (Animal, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	now := s.now()
	a := Animal{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Species:      Species(strings.TrimSpace(in.Species)),
		Breed:        strings.TrimSpace(in.Breed),
		Sex:          Sex(strings.TrimSpace(in.Sex)),
		Size:         Size(strings.TrimSpace(in.Size)),
		Color:        strings.TrimSpace(in.Color),
		Description:  strings.TrimSpace(in.Description),
		State:        StateReady,
		PhotoURL:     strings.TrimSpace(in.PhotoURL),
		Chip:         strings.TrimSpace(in.Chip),
		Sterilized:   in.Sterilized,
		Vaccinated:   in.Vaccinated,
		Dewormed:     in.Dewormed,
		SpecialNeeds: strings.TrimSpace(in.SpecialNeeds),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if in.Age == nil {
		return Animal{}, domainerrors.New(domainerrors.CodeValidation, "La edad es requerida")
	}
	a.Age = *in.Age

	if st := strings.TrimSpace(in.State); st != "" {
		a.State = State(st)
	}

	if err := validate(a); err != nil {
		return Animal{}, err
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// Update mezcla los campos presentes sobre el registro actual y vuelve a
// correr la misma validación que Create antes de persistir.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Animal, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	if in.Name != nil {
		a.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil {
		a.Species = Species(strings.TrimSpace(*in.Species))
	}
	if in.Breed != nil {
		a.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		a.Age = *in.Age
	}
	if in.Sex != nil {
		a.Sex = Sex(strings.TrimSpace(*in.Sex))
	}
	if in.Size != nil {
		a.Size = Size(strings.TrimSpace(*in.Size))
	}
	if in.Color != nil {
		a.Color = strings.TrimSpace(*in.Color)
	}
	if in.Description != nil {
		a.Description = strings.TrimSpace(*in.Description)
	}
	if in.PhotoURL != nil {
		a.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}
	if in.Chip != nil {
		a.Chip = strings.TrimSpace(*in.Chip)
	}
	if in.State != nil {
		a.State = State(strings.TrimSpace(*in.State))
	}
	if in.Sterilized != nil {
		a.Sterilized = *in.Sterilized
	}
	if in.Vaccinated != nil {
		a.Vaccinated = *in.Vaccinated
	}
	if in.Dewormed != nil {
		a.Dewormed = *in.Dewormed
	}
	if in.SpecialNeeds != nil {
		a.SpecialNeeds = strings.TrimSpace(*in.SpecialNeeds)
	}

	if err := validate(a); err != nil {
		return Animal{}, err
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	// No cascadea: las solicitudes que referencian al animal quedan con la
	// referencia colgante y su join de lectura degrada a resumen ausente.
	return s.repo.Delete(ctx, id)
}

func (s *Service) FindByChip(ctx context.Context, chip string) (Animal, error) {
	chip = strings.TrimSpace(chip)
	if chip == "" {
		return Animal{}, ErrChipNotFound
	}
	return s.repo.GetByChip(ctx, chip)
}

// SetState es el camino que usa la aprobación de solicitudes para marcar
// al animal como adoptado.
func (s *Service) SetState(ctx context.Context, id string, st State) error {
	if !ValidState(st) {
		return domainerrors.New(domainerrors.CodeValidation, "El estado debe ser listo, en recuperación o adoptado")
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	a.State = st
	a.UpdatedAt = s.now()
	return s.repo.Update(ctx, a)
}

// Stats se recalcula en cada llamada; no hay cache.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

func validate(a Animal) error {
	fail := func(msg string) error {
		return domainerrors.New(domainerrors.CodeValidation, msg)
	}

	switch n := utf8.RuneCountInString(a.Name); {
	case n == 0:
		return fail("El nombre es requerido")
	case n < 2:
		return fail("El nombre debe tener al menos 2 caracteres")
	case n > 50:
		return fail("El nombre no puede exceder 50 caracteres")
	}

	if a.Species == "" {
		return fail("La especie es requerida")
	}
	if !ValidSpecies(a.Species) {
		return fail("La especie debe ser perro, gato u otro")
	}

	if a.Breed == "" {
		return fail("La raza es requerida")
	}

	if a.Age < 0 {
		return fail("La edad no puede ser negativa")
	}
	if a.Age > 30 {
		return fail("La edad no puede exceder 30 años")
	}

	if a.Sex == "" {
		return fail("El sexo es requerido")
	}
	if !ValidSex(a.Sex) {
		return fail("El sexo debe ser macho o hembra")
	}

	if a.Size == "" {
		return fail("El tamaño es requerido")
	}
	if !ValidSize(a.Size) {
		return fail("El tamaño debe ser pequeño, mediano o grande")
	}

	if a.Color == "" {
		return fail("El color es requerido")
	}

	switch n := utf8.RuneCountInString(a.Description); {
	case n == 0:
		return fail("La descripción es requerida")
	case n < 10:
		return fail("La descripción debe tener al menos 10 caracteres")
	case n > 1000:
		return fail("La descripción no puede exceder 1000 caracteres")
	}

	if a.PhotoURL == "" {
		return fail("La foto es requerida")
	}

	if !ValidState(a.State) {
		return fail("El estado debe ser listo, en recuperación o adoptado")
	}

	if utf8.RuneCountInString(a.SpecialNeeds) > 500 {
		return fail("Las necesidades especiales no pueden exceder 500 caracteres")
	}

	return nil
}
