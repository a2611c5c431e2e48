package handler

import "time"

type addEntryRequest struct {
	EntryType  string `json:"entry_type"  validate:"required,oneof=pre_fight_check injury_assessment medical_clearance suspension_issued suspension_cleared note"`
	Notes      string `json:"notes"       validate:"required"`
	AuthorName string `json:"author_name"`
	AuthorID   string `json:"author_id"`
}

type setSuspensionRequest struct {
	Reason    string     `json:"reason"     validate:"required"`
	StartDate time.Time  `json:"start_date" validate:"required"`
	EndDate   *time.Time `json:"end_date"`
	Notes     string     `json:"notes"`
}
