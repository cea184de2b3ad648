package babies

import "time"

// Sex define el sexo del bebé.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Baby es el perfil compartido. La propiedad NO vive acá: el grant
// owner en caregivers es la única fuente de verdad de quién puede qué.
type Baby struct {
	ID string

	Name string
	Sex  Sex

	BirthDate *time.Time
	Notes     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
