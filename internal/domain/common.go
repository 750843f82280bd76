package domain

// ReconcileOutcome - результат сохранения одной записи
type ReconcileOutcome string

const (
	OutcomeCreated ReconcileOutcome = "created"
	OutcomeUpdated ReconcileOutcome = "updated"
	OutcomeSkipped ReconcileOutcome = "skipped"
)

// ReconcileSummary - итог сохранения пачки
type ReconcileSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// Total - общее число обработанных записей
func (s ReconcileSummary) Total() int {
	return s.Created + s.Updated + s.Skipped
}
