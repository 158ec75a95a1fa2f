package applications

import (
	"context"

	domainerrors "adoption-platform/pkg/domain-errors"
)

var (
	ErrNotFound  = domainerrors.New(domainerrors.CodeNotFound, "Solicitud no encontrada")
	ErrDuplicate = domainerrors.New(domainerrors.CodeConflict, "Ya has enviado una solicitud para este animal")
)

// Filter combina por AND; campos vacíos no filtran.
type Filter struct {
	Status string
}

type Stats struct {
	Total    int `json:"totalApplications"`
	Received int `json:"applicationsReceived"`
	InReview int `json:"applicationsInReview"`
	Approved int `json:"applicationsApproved"`
	Rejected int `json:"applicationsRejected"`
}

type Repository interface {
	// Create falla con ErrDuplicate si ya existe una solicitud para
	// (UserID, AnimalID). Esa unicidad es el respaldo real contra dos
	// submissions concurrentes que pasen el pre-chequeo del service.
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	// Update persiste solo los campos administrables: Status, AdminNotes
	// y UpdatedAt. El resto de la solicitud es inmutable tras Create.
	Update(ctx context.Context, a Application) error
	// List y ListByUser devuelven los más recientes primero.
	List(ctx context.Context, f Filter) ([]Application, error)
	ListByUser(ctx context.Context, userID string) ([]Application, error)
	ExistsForUserAnimal(ctx context.Context, userID, animalID string) (bool, error)
	Stats(ctx context.Context) (Stats, error)
}
