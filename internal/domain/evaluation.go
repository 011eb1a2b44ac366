package domain

import "time"

// EvaluationType classifies a body-reading session.
type EvaluationType string

const (
	EvaluationInicial      EvaluationType = "Inicial"
	EvaluationReevaluacion EvaluationType = "Re-evaluación"
	EvaluationSeguimiento  EvaluationType = "Seguimiento"
)

// Zones and focus options offered by the evaluation form.
var (
	PriorityZones = []string{"Hombro", "Raquis", "Cadera", "Rodilla", "Tobillo", "Core", "Pie", "Codo", "Muñeca"}
	FocusOptions  = []string{"Fuerza máxima", "Hipertrofia", "Movilidad", "Control motor", "Integración", "Rendimiento", "Readaptación"}
)

// Evaluation is one entry in a client's append-only assessment history.
type Evaluation struct {
	ID            string         `json:"_id"`
	ClientID      string         `json:"clientId"`
	Date          time.Time      `json:"date"`
	Type          EvaluationType `json:"type"`
	PriorityZones []string       `json:"priorityZones,omitempty"`
	Focus         string         `json:"focus,omitempty"`
	Notes         string         `json:"notes,omitempty"`
}

// Note is an internal coach annotation on a client. Unlike evaluations,
// notes are editable and deletable.
type Note struct {
	ID       string    `json:"_id"`
	ClientID string    `json:"clientId"`
	Date     time.Time `json:"date"`
	Content  string    `json:"content"`
}
