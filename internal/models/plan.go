package models

import "fmt"

const (
	// MinPlanDays and MaxPlanDays bound the length of a requested meal plan.
	MinPlanDays = 1
	MaxPlanDays = 14
)

// PlanRequest captures one meal-plan generation request. It is transient:
// built from user input plus an inventory snapshot, never persisted.
type PlanRequest struct {
	Days      int          `json:"days"`
	Strict    bool         `json:"strict"`
	Inventory []Ingredient `json:"-"`
}

// Validate checks the day count against the supported range.
func (r PlanRequest) Validate() error {
	if r.Days < MinPlanDays || r.Days > MaxPlanDays {
		return fmt.Errorf("days must be between %d and %d, got %d", MinPlanDays, MaxPlanDays, r.Days)
	}
	return nil
}
