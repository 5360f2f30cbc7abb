package model

// Classroom is a sala record. A teacher occupies at most one room; the
// server rejects violations, the client only renders what it gets back.
type Classroom struct {
	ID        int    `json:"id,omitempty"`
	Name      string `json:"nome"`
	Capacity  int    `json:"capacidade"`
	TeacherID *int   `json:"id_professor,omitempty"`
}

type Discipline struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"nome"`
	Course      string `json:"curso"`
	Description string `json:"descricao,omitempty"`
	Workload    int    `json:"carga_horaria"`
	TeacherID   *int   `json:"professor,omitempty"`
}

// ReservationPeriod is the periodo letter: M manhã, T tarde, N noite.
type ReservationPeriod string

const (
	PeriodMorning   ReservationPeriod = "M"
	PeriodAfternoon ReservationPeriod = "T"
	PeriodEvening   ReservationPeriod = "N"
)

type Reservation struct {
	ID           int               `json:"id,omitempty"`
	Start        string            `json:"data_inicio"`
	End          string            `json:"data_termino"`
	Period       ReservationPeriod `json:"periodo"`
	ClassroomID  int               `json:"sala_reservada"`
	TeacherID    int               `json:"professor_responsavel"`
	DisciplineID int               `json:"disciplina_associada"`
}

// Period is one entry of GET /periodos/.
type Period struct {
	Value ReservationPeriod `json:"value"`
	Label string            `json:"label"`
}

// OverlapHint reports whether candidate clashes with an already loaded
// reservation. It is a pre-submit warning for the reservation form; the
// server's answer on write is the source of truth. skipID excludes the
// reservation being edited from the comparison.
func OverlapHint(existing []Reservation, candidate Reservation, skipID int) bool {
	for _, r := range existing {
		if skipID != 0 && r.ID == skipID {
			continue
		}
		if r.Start == candidate.Start && r.Period == candidate.Period {
			if r.ClassroomID == candidate.ClassroomID {
				return true
			}
		}
	}
	return false
}
