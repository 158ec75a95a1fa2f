package animals

import (
	"context"

	domainerrors "adoption-platform/pkg/domain-errors"
)

var (
	ErrNotFound     = domainerrors.New(domainerrors.CodeNotFound, "Animal no encontrado")
	ErrChipNotFound = domainerrors.New(domainerrors.CodeNotFound, "No se encontró ningún animal con ese chip")
	ErrChipConflict = domainerrors.New(domainerrors.CodeConflict, "Ya existe un animal registrado con ese chip")
)

// Filter combina por AND; los campos vacíos no filtran.
// Search es un match de relevancia sobre nombre y descripción,
// no un substring scan.
type Filter struct {
	Species string
	State   string
	Search  string
}

type SpeciesCount struct {
	Species Species `json:"especie"`
	Count   int     `json:"count"`
}

type Stats struct {
	Total      int `json:"totalAnimals"`
	Ready      int `json:"animalsReady"`
	Recovering int `json:"animalsRecovering"`
	Adopted    int `json:"animalsAdopted"`
	// BySpecies sale en orden fijo perro, gato, otro; solo especies presentes.
	BySpecies []SpeciesCount `json:"speciesStats"`
}

type Repository interface {
	// Create y Update fallan con ErrChipConflict si el chip ya está
	// asignado a otro animal.
	Create(ctx context.Context, a Animal) error
	Update(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	Delete(ctx context.Context, id string) error
	GetByChip(ctx context.Context, chip string) (Animal, error)
	// List devuelve los más recientes primero.
	List(ctx context.Context, f Filter) ([]Animal, error)
	Stats(ctx context.Context) (Stats, error)
}
