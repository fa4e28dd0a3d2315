package domain

// SkillRecord represents one O*NET skill measurement row: a detailed
// occupation (6-digit SOC code plus a 2-digit suffix), a skill element and
// the proficiency scale the measurement was taken on.
type SkillRecord struct {
	SOCCode         string `json:"soc_code" db:"soc_code" validate:"required"`
	OccupationTitle string `json:"occupation_title" db:"occupation_title"`
	ElementID       string `json:"element_id" db:"element_id"`
	SkillName       string `json:"skill_name" db:"skill_name"`
	ScaleID         string `json:"scale_id" db:"scale_id"`

	DataValue *float64 `json:"data_value,omitempty" db:"data_value"`
}
