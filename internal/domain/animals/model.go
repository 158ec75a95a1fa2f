package animals

import "time"

// Species define las especies soportadas.
// @Enum perro, gato, otro
type Species string

const (
	SpeciesDog   Species = "perro"
	SpeciesCat   Species = "gato"
	SpeciesOther Species = "otro"
)

// Sex define el sexo del animal.
// @Enum macho, hembra
type Sex string

const (
	SexMale   Sex = "macho"
	SexFemale Sex = "hembra"
)

// Size define el tamaño del animal.
// @Enum pequeño, mediano, grande
type Size string

const (
	SizeSmall  Size = "pequeño"
	SizeMedium Size = "mediano"
	SizeLarge  Size = "grande"
)

// State es el estado de adopción del animal. listo y "en recuperación" los
// fija un admin directamente; a adoptado se llega por edición directa o como
// efecto de aprobar una solicitud.
type State string

const (
	StateReady      State = "listo"
	StateRecovering State = "en recuperación"
	StateAdopted    State = "adoptado"
)

func ValidSpecies(s Species) bool {
	return s == SpeciesDog || s == SpeciesCat || s == SpeciesOther
}

func ValidSex(s Sex) bool {
	return s == SexMale || s == SexFemale
}

func ValidSize(s Size) bool {
	return s == SizeSmall || s == SizeMedium || s == SizeLarge
}

func ValidState(s State) bool {
	return s == StateReady || s == StateRecovering || s == StateAdopted
}

// Animal representa un individuo adoptable del catálogo.
type Animal struct {
	ID string

	Name        string
	Species     Species
	Breed       string
	Age         int // años, 0..30
	Sex         Sex
	Size        Size
	Color       string
	Description string
	State       State
	PhotoURL    string

	// Chip es el identificador de microchip; opcional, pero único
	// entre todos los animales cuando está presente.
	Chip string

	Sterilized bool
	Vaccinated bool
	Dewormed   bool

	SpecialNeeds string

	CreatedAt time.Time
	UpdatedAt time.Time
}
