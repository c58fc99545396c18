/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers and domain services, not in DTOs.
  DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/erancho/mess-engine/gate"
	"github.com/erancho/mess-engine/menu"
	"github.com/erancho/mess-engine/rancho"
	"github.com/erancho/mess-engine/roster"
)

// =============================================================================
// MEMBERS
// =============================================================================

// MemberDTO represents a roster member in API responses. The PIN never
// leaves the server.
type MemberDTO struct {
	ID       string `json:"id"`
	CPF      string `json:"cpf"`
	FullName string `json:"full_name"`
	WarName  string `json:"war_name"`
	Rank     string `json:"rank"`
	Section  string `json:"section"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

func toMemberDTO(m roster.Member) MemberDTO {
	return MemberDTO{
		ID:       m.ID,
		CPF:      m.CPF,
		FullName: m.FullName,
		WarName:  m.WarName,
		Rank:     m.Rank,
		Section:  m.Section,
		Role:     string(m.Role),
		Active:   m.Active,
	}
}

// SaveMemberRequest creates or updates a member.
type SaveMemberRequest struct {
	ID       string `json:"id"`
	CPF      string `json:"cpf"`
	FullName string `json:"full_name"`
	WarName  string `json:"war_name"`
	Rank     string `json:"rank"`
	Section  string `json:"section"`
	PIN      string `json:"pin"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

// LoginRequest authenticates by CPF and PIN.
type LoginRequest struct {
	CPF string `json:"cpf"`
	PIN string `json:"pin"`
}

// =============================================================================
// CALENDAR & REGISTRATIONS
// =============================================================================

// CalendarDayDTO is one card in the registration calendar: the date, what
// the kitchen serves, the member's current flags, and the engine's verdict.
type CalendarDayDTO struct {
	Date        string `json:"date"`
	Weekday     string `json:"weekday"`
	Today       bool   `json:"today"`
	Lunch       bool   `json:"lunch"`
	Dinner      bool   `json:"dinner"`
	MenuLunch   string `json:"menu_lunch,omitempty"`
	MenuDinner  string `json:"menu_dinner,omitempty"`
	Locked      bool   `json:"locked"`
	Editable    bool   `json:"editable"`
	Reason      string `json:"reason,omitempty"`
	ReasonCode  string `json:"reason_code,omitempty"`
	BlockReason string `json:"block_reason,omitempty"`
}

// ToggleRequest flips one meal flag for a date.
type ToggleRequest struct {
	Date string `json:"date"`
	Meal string `json:"meal"`
}

// RegistrationDTO is a registration record in API responses.
type RegistrationDTO struct {
	MemberCPF      string `json:"member_cpf"`
	Date           string `json:"date"`
	Lunch          bool   `json:"lunch"`
	Dinner         bool   `json:"dinner"`
	LunchAttended  bool   `json:"lunch_attended"`
	DinnerAttended bool   `json:"dinner_attended"`
}

func toRegistrationDTO(r rancho.Registration) RegistrationDTO {
	return RegistrationDTO{
		MemberCPF:      r.MemberCPF,
		Date:           r.Date.String(),
		Lunch:          r.Lunch,
		Dinner:         r.Dinner,
		LunchAttended:  r.LunchAttended,
		DinnerAttended: r.DinnerAttended,
	}
}

// PresenceRequest confirms attendance from the dashboard.
type PresenceRequest struct {
	CPF  string `json:"cpf"`
	Date string `json:"date"`
	Meal string `json:"meal"`
}

// =============================================================================
// BLOCKS
// =============================================================================

// BlockDTO represents an administrative block.
type BlockDTO struct {
	Date      string `json:"date"`
	Reason    string `json:"reason"`
	CreatedBy string `json:"created_by"`
}

func toBlockDTO(b rancho.BlockRecord) BlockDTO {
	return BlockDTO{Date: b.Date.String(), Reason: b.Reason, CreatedBy: b.CreatedBy}
}

// CreateBlockRequest blocks a date.
type CreateBlockRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// =============================================================================
// MENUS & NOTICES
// =============================================================================

// MenuDTO represents a published daily menu.
type MenuDTO struct {
	Date        string `json:"date"`
	Lunch       string `json:"lunch"`
	Dinner      string `json:"dinner"`
	CostPerMeal string `json:"cost_per_meal"`
}

func toMenuDTO(m menu.Menu) MenuDTO {
	return MenuDTO{
		Date:        m.Date.String(),
		Lunch:       m.Lunch,
		Dinner:      m.Dinner,
		CostPerMeal: m.CostPerMeal.String(),
	}
}

// SaveMenuRequest publishes a menu for a date.
type SaveMenuRequest struct {
	Date        string `json:"date"`
	Lunch       string `json:"lunch"`
	Dinner      string `json:"dinner"`
	CostPerMeal string `json:"cost_per_meal"`
}

// NoticeDTO represents a notice.
type NoticeDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Level     string `json:"level"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
}

// PublishNoticeRequest creates a notice.
type PublishNoticeRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Level   string `json:"level"`
}

// =============================================================================
// SPECIAL REGISTRATIONS & GATE
// =============================================================================

// SpecialDTO represents a bulk headcount registration.
type SpecialDTO struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	Meal         string `json:"meal"`
	Quantity     int    `json:"quantity"`
	Reason       string `json:"reason"`
	RegisteredBy string `json:"registered_by"`
}

func toSpecialDTO(s rancho.SpecialRegistration) SpecialDTO {
	return SpecialDTO{
		ID:           s.ID,
		Date:         s.Date.String(),
		Meal:         string(s.Meal),
		Quantity:     s.Quantity,
		Reason:       s.Reason,
		RegisteredBy: s.RegisteredBy,
	}
}

// CreateSpecialRequest registers a bulk headcount.
type CreateSpecialRequest struct {
	Date     string `json:"date"`
	Meal     string `json:"meal"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

// ScanRequest is one badge read at the serving line.
type ScanRequest struct {
	CPF  string `json:"cpf"`
	Meal string `json:"meal"`
}

// ScanResultDTO is what the scanner renders.
type ScanResultDTO struct {
	Status  string `json:"status"`
	Admit   bool   `json:"admit"`
	WarName string `json:"war_name,omitempty"`
	Date    string `json:"date"`
	Meal    string `json:"meal"`
}

func toScanResultDTO(r *gate.ScanResult) ScanResultDTO {
	return ScanResultDTO{
		Status:  string(r.Status),
		Admit:   r.Status.Admit(),
		WarName: r.WarName,
		Date:    r.Date.String(),
		Meal:    string(r.Meal),
	}
}

// =============================================================================
// REPORTS
// =============================================================================

// MealCountDTO is one meal's headcount on one day.
type MealCountDTO struct {
	Registered int `json:"registered"`
	Special    int `json:"special"`
	Attended   int `json:"attended"`
	Total      int `json:"total"`
}

// DayPlanDTO is one row of the headcount report.
type DayPlanDTO struct {
	Date          string       `json:"date"`
	Lunch         MealCountDTO `json:"lunch"`
	Dinner        MealCountDTO `json:"dinner"`
	ProjectedCost string       `json:"projected_cost"`
}

// ReportDTO is the headcount projection over a range.
type ReportDTO struct {
	From        string       `json:"from"`
	To          string       `json:"to"`
	Days        []DayPlanDTO `json:"days"`
	TotalPlates int          `json:"total_plates"`
	TotalCost   string       `json:"total_cost"`
}

func toReportDTO(r *menu.Report) ReportDTO {
	dto := ReportDTO{
		From:        r.From.String(),
		To:          r.To.String(),
		TotalPlates: r.TotalPlates,
		TotalCost:   r.TotalCost.String(),
	}
	for _, d := range r.Days {
		dto.Days = append(dto.Days, DayPlanDTO{
			Date:          d.Date.String(),
			Lunch:         toMealCountDTO(d.Lunch),
			Dinner:        toMealCountDTO(d.Dinner),
			ProjectedCost: d.ProjectedCost.String(),
		})
	}
	return dto
}

func toMealCountDTO(c menu.MealCount) MealCountDTO {
	return MealCountDTO{
		Registered: c.Registered,
		Special:    c.Special,
		Attended:   c.Attended,
		Total:      c.Total(),
	}
}
