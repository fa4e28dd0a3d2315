package domain

// Snapshot is an immutable read of the curated tables that a view is
// evaluated against. View evaluation never mutates a snapshot, so one
// snapshot can serve concurrent evaluations without locking.
type Snapshot struct {
	Occupations []OccupationRecord `json:"occupations"`
	Skills      []SkillRecord      `json:"skills"`
}
