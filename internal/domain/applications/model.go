package applications

import "time"

// Status es el estado administrativo de la solicitud. El flujo natural es
// recibida → en revisión → {aprobada, rechazada}, pero no se fuerza el orden:
// un admin puede fijar cualquier estado desde cualquier otro.
type Status string

const (
	StatusReceived Status = "recibida"
	StatusInReview Status = "en revisión"
	StatusApproved Status = "aprobada"
	StatusRejected Status = "rechazada"
)

// Housing define el tipo de vivienda declarado por el solicitante.
// @Enum casa, apartamento, otro
type Housing string

const (
	HousingHouse     Housing = "casa"
	HousingApartment Housing = "apartamento"
	HousingOther     Housing = "otro"
)

func ValidStatus(s Status) bool {
	return s == StatusReceived || s == StatusInReview || s == StatusApproved || s == StatusRejected
}

func ValidHousing(h Housing) bool {
	return h == HousingHouse || h == HousingApartment || h == HousingOther
}

// Application es la solicitud de adopción de un usuario por un animal.
// El par (UserID, AnimalID) es único sin importar el status.
type Application struct {
	ID       string
	UserID   string
	AnimalID string

	Name          string
	Email         string
	Phone         string
	Address       string
	Occupation    string
	Housing       Housing
	OutdoorSpace  bool
	PetExperience string
	Reason        string

	Status     Status
	AdminNotes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AnimalSummary y UserSummary son el join de lectura que acompaña a cada
// solicitud en las respuestas; nunca se almacenan.
type AnimalSummary struct {
	ID       string `json:"id"`
	Name     string `json:"nombre"`
	Species  string `json:"especie"`
	Breed    string `json:"raza"`
	PhotoURL string `json:"fotoUrl"`
	State    string `json:"estado"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Detail es una solicitud más sus resúmenes denormalizados. Animal o User
// pueden faltar si el referente fue borrado.
type Detail struct {
	Application
	Animal *AnimalSummary
	User   *UserSummary
}
