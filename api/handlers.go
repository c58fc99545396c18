/*
handlers.go - HTTP API handlers for the mess-hall registration system

PURPOSE:
  Exposes the registration engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Session:
    POST   /api/login                   CPF + PIN login

  Calendar & registrations:
    GET    /api/calendar                Per-day view with eligibility verdicts
    POST   /api/registrations/toggle    Flip a meal flag through the engine
    GET    /api/registrations?date=     Presence list for a day
    POST   /api/presence                Manual attendance confirmation

  Gate:
    POST   /api/gate/scan               Badge scan at the serving line

  Admin:
    GET/POST /api/blocks, DELETE /api/blocks/{date}
    GET/POST /api/menus,  DELETE /api/menus/{date}
    GET/POST /api/notices, DELETE /api/notices/{id}
    GET    /api/notices/unseen, POST /api/notices/{id}/seen
    GET/POST /api/special
    GET/POST /api/members, PUT /api/members/{id}
    GET    /api/reports/headcount?from=&to=

IDENTITY:
  The requester is named by the X-Requester-CPF header and re-resolved
  against the roster on every admin route; the client's claimed role is
  never trusted. There is no session token or password challenge beyond
  login - same trust model as the stock deployment, fine inside a closed
  barracks network, not on the open internet.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 401: Bad credentials
  - 403: Eligibility denial, insufficient role
  - 404: Record not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erancho/mess-engine/gate"
	"github.com/erancho/mess-engine/menu"
	"github.com/erancho/mess-engine/rancho"
	"github.com/erancho/mess-engine/roster"
)

// requesterHeader names the acting member on every authenticated route.
const requesterHeader = "X-Requester-CPF"

// calendarDays is how many days ahead the calendar view renders. Slightly
// past the default max window so users can see the horizon close.
const calendarDays = 35

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Registrations *rancho.RegistrationService
	Blocks        *rancho.BlockService
	Specials      rancho.SpecialStore
	Roster        *roster.Service
	Menus         menu.MenuStore
	Notices       *menu.NoticeService
	Planner       *menu.Planner
	Gate          *gate.Service
	Clock         rancho.Clock
}

// =============================================================================
// SESSION
// =============================================================================

// Login authenticates a member by CPF and PIN.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	member, err := h.Roster.Login(r.Context(), req.CPF, req.PIN)
	if err != nil {
		if errors.Is(err, roster.ErrInvalidCredentials) || errors.Is(err, roster.ErrInactiveMember) {
			writeError(w, http.StatusUnauthorized, "Login failed", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Login failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toMemberDTO(*member))
}

// requester resolves the acting member from the request header.
func (h *Handler) requester(r *http.Request) (*roster.Member, error) {
	cpf := r.Header.Get(requesterHeader)
	if strings.TrimSpace(cpf) == "" {
		return nil, fmt.Errorf("missing %s header", requesterHeader)
	}
	return h.Roster.Lookup(r.Context(), cpf)
}

// requireRole resolves the requester and checks they hold one of the roles.
func (h *Handler) requireRole(w http.ResponseWriter, r *http.Request, roles ...rancho.Role) *roster.Member {
	member, err := h.requester(r)
	if err != nil {
		if rancho.IsNotFound(err) {
			writeError(w, http.StatusForbidden, "Unknown requester", err)
		} else {
			writeError(w, http.StatusBadRequest, "Cannot resolve requester", err)
		}
		return nil
	}
	for _, role := range roles {
		if member.Role == role {
			return member
		}
	}
	writeError(w, http.StatusForbidden, "Insufficient role", nil)
	return nil
}

// =============================================================================
// CALENDAR & TOGGLE
// =============================================================================

// GetCalendar renders the registration calendar for the requesting member:
// the next calendarDays days, each with menu, flags, and the engine verdict.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	member, err := h.requester(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Cannot resolve requester", err)
		return
	}
	req := h.Roster.RequesterFor(member)

	ctx := r.Context()
	today := h.Clock.Today()
	horizon := today.AddDays(calendarDays - 1)

	regs, err := h.Registrations.Registrations.ListRegistrationsByMember(ctx, member.CPF, today, horizon)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load registrations", err)
		return
	}
	regByDate := make(map[string]rancho.Registration, len(regs))
	for _, reg := range regs {
		regByDate[reg.Date.String()] = reg
	}

	menus, err := h.Menus.ListMenus(ctx, today, horizon)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load menus", err)
		return
	}
	menuByDate := make(map[string]menu.Menu, len(menus))
	for _, m := range menus {
		menuByDate[m.Date.String()] = m
	}

	days := make([]CalendarDayDTO, 0, calendarDays)
	for day := today; day.BeforeOrEqual(horizon); day = day.AddDays(1) {
		decision, err := h.Registrations.Decide(ctx, day, req)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to evaluate eligibility", err)
			return
		}

		dto := CalendarDayDTO{
			Date:     day.String(),
			Weekday:  day.Weekday().String(),
			Today:    day.Equal(today),
			Locked:   !decision.Permitted(),
			Editable: decision.Permitted(),
		}
		if !decision.Permitted() {
			dto.Reason = decision.Message(h.Registrations.Engine.Window)
			dto.ReasonCode = string(decision.Reason)
		}
		if decision.Block != nil {
			dto.BlockReason = decision.Block.Reason
		}
		if reg, ok := regByDate[dto.Date]; ok {
			dto.Lunch = reg.Lunch
			dto.Dinner = reg.Dinner
		}
		if m, ok := menuByDate[dto.Date]; ok {
			dto.MenuLunch = m.Lunch
			dto.MenuDinner = m.Dinner
		}
		days = append(days, dto)
	}

	writeJSON(w, http.StatusOK, days)
}

// ToggleRegistration flips one meal flag for the requesting member.
func (h *Handler) ToggleRegistration(w http.ResponseWriter, r *http.Request) {
	member, err := h.requester(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Cannot resolve requester", err)
		return
	}

	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := rancho.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	meal, err := rancho.ParseMeal(req.Meal)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid meal", err)
		return
	}

	reg, err := h.Registrations.Toggle(r.Context(), member.CPF, date, meal, h.Roster.RequesterFor(member))
	if err != nil {
		var denied *rancho.NotPermittedError
		if errors.As(err, &denied) {
			writeJSON(w, http.StatusForbidden, map[string]any{
				"error":       "registration not permitted",
				"reason_code": string(denied.Decision.Reason),
				"reason":      denied.Decision.Message(h.Registrations.Engine.Window),
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to toggle registration", err)
		return
	}

	writeJSON(w, http.StatusOK, toRegistrationDTO(*reg))
}

// ListRegistrations returns the presence list for a date.
func (h *Handler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	date, err := rancho.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	regs, err := h.Registrations.Registrations.ListRegistrationsByDate(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list registrations", err)
		return
	}

	dtos := make([]RegistrationDTO, len(regs))
	for i, reg := range regs {
		dtos[i] = toRegistrationDTO(reg)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ConfirmPresence marks attendance from the dashboard (monitor and up).
func (h *Handler) ConfirmPresence(w http.ResponseWriter, r *http.Request) {
	if h.requireRole(w, r, rancho.RoleMonitor, rancho.RoleLocalAdmin, rancho.RoleGlobalAdmin) == nil {
		return
	}

	var req PresenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := rancho.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	meal, err := rancho.ParseMeal(req.Meal)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid meal", err)
		return
	}

	if err := h.Gate.Confirm(r.Context(), req.CPF, date, meal); err != nil {
		if rancho.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "No registration for that member and date", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to confirm presence", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// GATE
// =============================================================================

// Scan processes a badge read at the serving line.
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	meal, err := rancho.ParseMeal(req.Meal)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid meal", err)
		return
	}

	result, err := h.Gate.Scan(r.Context(), req.CPF, meal)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Scan failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toScanResultDTO(result))
}

// =============================================================================
// BLOCKS
// =============================================================================

// ListBlocks returns all administrative blocks.
func (h *Handler) ListBlocks(w http.ResponseWriter, r *http.Request) {
	blocks, err := h.Blocks.Registry.ListBlocks(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list blocks", err)
		return
	}
	dtos := make([]BlockDTO, len(blocks))
	for i, b := range blocks {
		dtos[i] = toBlockDTO(b)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateBlock blocks a date (admin only).
func (h *Handler) CreateBlock(w http.ResponseWriter, r *http.Request) {
	admin := h.requireRole(w, r, rancho.RoleLocalAdmin, rancho.RoleGlobalAdmin)
	if admin == nil {
		return
	}

	var req CreateBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := rancho.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	record, err := h.Blocks.Block(r.Context(), date, req.Reason, admin.CPF)
	if err != nil {
		if rancho.IsValidation(err) {
			writeError(w, http.StatusBadRequest, "Invalid block", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create block", err)
		return
	}
	writeJSON(w, http.StatusCreated, toBlockDTO(*record))
}

// DeleteBlock unblocks a date (admin only). Idempotent.
func (h *Handler) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	if h.requireRole(w, r, rancho.RoleLocalAdmin, rancho.RoleGlobalAdmin) == nil {
		return
	}

	date, err := rancho.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	if err := h.Blocks.Unblock(r.Context(), date); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to remove block", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// MENUS
// =============================================================================

// ListMenus returns menus in a date range (defaults to the calendar horizon).
func (h *Handler) ListMenus(w http.ResponseWriter, r *http.Request) {
	from, to, err := h.rangeParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date range", err)
		return
	}

	menus, err := h.Menus.ListMenus(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list menus", err)
		return
	}
	dtos := make([]MenuDTO, len(menus))
	for i, m := range menus {
		dtos[i] = toMenuDTO(m)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveMenu publishes a menu for a date (admin only).
func (h *Handler) SaveMenu(w http.ResponseWriter, r *http.Request) {
	if h.requireRole(w, r, rancho.RoleLocalAdmin, rancho.RoleGlobalAdmin) == nil {
		return
	}

	var req SaveMenuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := rancho.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	cost := decimal.Zero
	if req.CostPerMeal != "" {
		cost, err = decimal.NewFromString(req.CostPerMeal)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid cost_per_meal", err)
			return
		}
	}

	m := menu.Menu{Date: date, Lunch: req.Lunch, Dinner: req.Dinner, CostPerMeal: cost}
	if err := menu.ValidateMenu(m); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid menu", err)
		return
	}
	if err := h.Menus.PutMenu(r.Context(), m); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save menu", err)
		return
	}
	writeJSON(w, http.StatusCreated, toMenuDTO(m))
}

// DeleteMenu removes a published menu (admin only).
func (h *Handler) DeleteMenu(w http.ResponseWriter, r *http.Request) {
	if h.requireRole(w, r, rancho.RoleLocalAdmin, rancho.RoleGlobalAdmin) == nil {
		return
	}

	date, err := rancho.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	if err := h.Menus.DeleteMenu(r.Context(), date); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete menu", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// NOTICES
// =============================================================================

// ListNotices returns every notice.
func (h *Handler) ListNotices(w http.ResponseWriter, r *http.Request) {
	notices, err := h.Notices.Store.ListNotices(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list notices", err)
		return
	}
	writeJSON(w, http.StatusOK, noticeDTOs(notices))
}

// UnseenNotices returns the requester's unacknowledged notices.
func (h *Handler) UnseenNotices(w http.ResponseWriter, r *http.Request) {
	member, err := h.requester(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Cannot resolve requester", err)
		return
	}

	notices, err := h.Notices.UnseenFor(r.Context(), member.CPF)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list notices", err)
		return
	}
	writeJSON(w, http.StatusOK, noticeDTOs(notices))
}

// PublishNotice creates a notice (admin only).
func (h *Handler) PublishNotice(w http.ResponseWriter, r *http.Request) {
	admin := h.requireRole(w, r, rancho.RoleLocalAdmin, rancho.RoleGlobalAdmin)
	if admin == nil {
		return
	}

	var req PublishNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	notice, err := h.Notices.Publish(r.Context(), menu.Notice{
		Title:     req.Title,
		Message:   req.Message,
		Level:     menu.NoticeLevel(req.Level),
		CreatedBy: admin.CPF,
	})
	if err != nil {
		if errors.Is(err, menu.ErrEmptyNotice) {
			writeError(w, http.StatusBadRequest, "Invalid notice", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to publish notice", err)
		return
	}
	writeJSON(w, http.StatusCreated, toNoticeDTO(*notice))
}

// DeleteNotice retracts a notice (admin only). Idempotent.
func (h *Handler) DeleteNotice(w http.ResponseWriter, r *http.Request) {
	if h.requireRole(w, r, rancho.RoleLocalAdmin, rancho.RoleGlobalAdmin) == nil {
		return
	}
	if err := h.Notices.Retract(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete notice", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkNoticeSeen acknowledges a notice for the requester.
func (h *Handler) MarkNoticeSeen(w http.ResponseWriter, r *http.Request) {
	member, err := h.requester(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Cannot resolve requester", err)
		return
	}
	if err := h.Notices.MarkSeen(r.Context(), chi.URLParam(r, "id"), member.CPF); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to mark notice seen", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SPECIAL REGISTRATIONS
// =============================================================================

// ListSpecial returns bulk registrations for a date.
func (h *Handler) ListSpecial(w http.ResponseWriter, r *http.Request) {
	date, err := rancho.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	specials, err := h.Specials.ListSpecialByDate(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list special registrations", err)
		return
	}
	dtos := make([]SpecialDTO, len(specials))
	for i, s := range specials {
		dtos[i] = toSpecialDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateSpecial registers a bulk headcount (monitor and up).
func (h *Handler) CreateSpecial(w http.ResponseWriter, r *http.Request) {
	author := h.requireRole(w, r, rancho.RoleMonitor, rancho.RoleLocalAdmin, rancho.RoleGlobalAdmin)
	if author == nil {
		return
	}

	var req CreateSpecialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := rancho.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	meal, err := rancho.ParseMeal(req.Meal)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid meal", err)
		return
	}

	special := rancho.SpecialRegistration{
		ID:           uuid.NewString(),
		Date:         date,
		Meal:         meal,
		Quantity:     req.Quantity,
		Reason:       req.Reason,
		RegisteredBy: author.CPF,
	}
	if err := rancho.ValidateSpecial(special); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid special registration", err)
		return
	}
	if err := h.Specials.PutSpecial(r.Context(), special); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save special registration", err)
		return
	}
	writeJSON(w, http.StatusCreated, toSpecialDTO(special))
}

// =============================================================================
// MEMBERS
// =============================================================================

// ListMembers returns the roster (admin only).
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	if h.requireRole(w, r, rancho.RoleLocalAdmin, rancho.RoleGlobalAdmin) == nil {
		return
	}

	members, err := h.Roster.Store.ListMembers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list members", err)
		return
	}
	dtos := make([]MemberDTO, len(members))
	for i, m := range members {
		dtos[i] = toMemberDTO(m)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveMember creates or updates a roster member (admin only).
func (h *Handler) SaveMember(w http.ResponseWriter, r *http.Request) {
	if h.requireRole(w, r, rancho.RoleLocalAdmin, rancho.RoleGlobalAdmin) == nil {
		return
	}

	var req SaveMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" {
		req.ID = chi.URLParam(r, "id")
	}

	member, err := h.Roster.Save(r.Context(), roster.Member{
		ID:       req.ID,
		CPF:      req.CPF,
		FullName: req.FullName,
		WarName:  req.WarName,
		Rank:     req.Rank,
		Section:  req.Section,
		PIN:      req.PIN,
		Role:     rancho.Role(req.Role),
		Active:   req.Active,
	})
	if err != nil {
		if errors.Is(err, roster.ErrMissingFields) {
			writeError(w, http.StatusBadRequest, "Invalid member", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save member", err)
		return
	}
	writeJSON(w, http.StatusCreated, toMemberDTO(*member))
}

// =============================================================================
// REPORTS
// =============================================================================

// HeadcountReport returns the kitchen planning report for a range.
func (h *Handler) HeadcountReport(w http.ResponseWriter, r *http.Request) {
	if h.requireRole(w, r, rancho.RoleMonitor, rancho.RoleLocalAdmin, rancho.RoleGlobalAdmin) == nil {
		return
	}

	from, to, err := h.rangeParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date range", err)
		return
	}

	report, err := h.Planner.Headcount(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build report", err)
		return
	}
	writeJSON(w, http.StatusOK, toReportDTO(report))
}

// =============================================================================
// HELPERS
// =============================================================================

// rangeParams reads from/to query params, defaulting to today through the
// calendar horizon.
func (h *Handler) rangeParams(r *http.Request) (rancho.Date, rancho.Date, error) {
	today := h.Clock.Today()
	from, to := today, today.AddDays(calendarDays - 1)

	var err error
	if q := r.URL.Query().Get("from"); q != "" {
		if from, err = rancho.ParseDate(q); err != nil {
			return rancho.Date{}, rancho.Date{}, err
		}
	}
	if q := r.URL.Query().Get("to"); q != "" {
		if to, err = rancho.ParseDate(q); err != nil {
			return rancho.Date{}, rancho.Date{}, err
		}
	}
	if to.Before(from) {
		return rancho.Date{}, rancho.Date{}, fmt.Errorf("to %s is before from %s", to, from)
	}
	return from, to, nil
}

func toNoticeDTO(n menu.Notice) NoticeDTO {
	return NoticeDTO{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Level:     string(n.Level),
		CreatedBy: n.CreatedBy,
		CreatedAt: n.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func noticeDTOs(notices []menu.Notice) []NoticeDTO {
	dtos := make([]NoticeDTO, len(notices))
	for i, n := range notices {
		dtos[i] = toNoticeDTO(n)
	}
	return dtos
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]string{"error": message}
	if err != nil {
		body["detail"] = err.Error()
	}
	writeJSON(w, status, body)
}

