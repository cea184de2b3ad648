package records

import "time"

// Kind define los tipos de registro de cuidado soportados.
// @Enum feeding, sleep, diaper, growth, medication, vaccination, milestone
type Kind string

const (
	KindFeeding     Kind = "feeding"
	KindSleep       Kind = "sleep"
	KindDiaper      Kind = "diaper"
	KindGrowth      Kind = "growth"
	KindMedication  Kind = "medication"
	KindVaccination Kind = "vaccination"
	KindMilestone   Kind = "milestone"
)

// Record es una entrada de cuidado del bebé. Acceso gobernado por el
// guard de caregivers: cualquier rol con grant puede leer y escribir.
type Record struct {
	ID     string
	BabyID string

	Kind       Kind
	OccurredAt time.Time
	Note       string

	// Amount: ml para feeding, gramos para growth, etc. Cero si no aplica.
	Amount float64

	RecordedBy string
	CreatedAt  time.Time
}
