/*
Package sqlite provides the SQLite-backed implementation of every storage
interface in the system.

PURPOSE:
  One Store implements the persistence boundaries the domain packages
  declare:
    rancho.BlockRegistry       Per-day administrative blocks
    rancho.RegistrationStore   (member, date) meal records
    rancho.SpecialStore        Bulk headcount registrations
    roster.MemberStore         Unit roster
    menu.MenuStore             Daily menus
    menu.NoticeStore           Notices and per-member seen sets

KEY TABLES:
  members:          Roster, keyed by normalized 11-digit CPF
  registrations:    Meal flags + attendance, PK (member_cpf, date)
  blocks:           One row per blocked date, PK date
  menus:            Published menu per date, PK date
  notices:          Announcements, UUID PK
  notice_seen:      (notice_id, member_cpf) acknowledgement pairs
  special_registrations: Bulk headcount rows, UUID PK

CONSISTENCY:
  Everything is last-write-wins via INSERT ... ON CONFLICT DO UPDATE.
  Registrations are addressed per (member, date) so different people
  never contend; no version checks are kept for same-record races.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/rancho.db")   // ":memory:" for tests
  if err != nil { ... }
  defer store.Close()

SEE ALSO:
  - rancho/store/memory.go: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/erancho/mess-engine/menu"
	"github.com/erancho/mess-engine/rancho"
	"github.com/erancho/mess-engine/roster"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Unit roster
	CREATE TABLE IF NOT EXISTS members (
		cpf TEXT PRIMARY KEY,
		id TEXT NOT NULL,
		full_name TEXT NOT NULL,
		war_name TEXT NOT NULL DEFAULT '',
		rank TEXT NOT NULL DEFAULT '',
		section TEXT NOT NULL DEFAULT '',
		pin TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'ordinary',
		active INTEGER NOT NULL DEFAULT 1
	);

	-- Meal registrations, one row per member per date
	CREATE TABLE IF NOT EXISTS registrations (
		member_cpf TEXT NOT NULL,
		date TEXT NOT NULL,
		lunch INTEGER NOT NULL DEFAULT 0,
		dinner INTEGER NOT NULL DEFAULT 0,
		lunch_attended INTEGER NOT NULL DEFAULT 0,
		dinner_attended INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (member_cpf, date)
	);

	-- Presence list per day is the hot query at meal time
	CREATE INDEX IF NOT EXISTS idx_registrations_date
		ON registrations(date);

	-- Administrative blocks, one row per blocked date
	CREATE TABLE IF NOT EXISTS blocks (
		date TEXT PRIMARY KEY,
		reason TEXT NOT NULL,
		created_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	-- Published menus
	CREATE TABLE IF NOT EXISTS menus (
		date TEXT PRIMARY KEY,
		lunch TEXT NOT NULL DEFAULT '',
		dinner TEXT NOT NULL DEFAULT '',
		cost_per_meal TEXT NOT NULL DEFAULT '0'
	);

	-- Notices and per-member acknowledgements
	CREATE TABLE IF NOT EXISTS notices (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL DEFAULT '',
		level TEXT NOT NULL DEFAULT 'info',
		created_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS notice_seen (
		notice_id TEXT NOT NULL,
		member_cpf TEXT NOT NULL,
		PRIMARY KEY (notice_id, member_cpf)
	);

	-- Bulk headcount for groups without individual accounts
	CREATE TABLE IF NOT EXISTS special_registrations (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		meal TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		reason TEXT NOT NULL,
		registered_by TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_special_date
		ON special_registrations(date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// MEMBERS (roster.MemberStore)
// =============================================================================

func (s *Store) GetMemberByCPF(ctx context.Context, cpf string) (*roster.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT cpf, id, full_name, war_name, rank, section, pin, role, active
		FROM members WHERE cpf = ?`, cpf)

	var m roster.Member
	var active int
	var role string
	err := row.Scan(&m.CPF, &m.ID, &m.FullName, &m.WarName, &m.Rank, &m.Section, &m.PIN, &role, &active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	m.Role = rancho.Role(role)
	m.Active = active != 0
	return &m, nil
}

func (s *Store) PutMember(ctx context.Context, m roster.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO members (cpf, id, full_name, war_name, rank, section, pin, role, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(cpf) DO UPDATE SET
			id = excluded.id,
			full_name = excluded.full_name,
			war_name = excluded.war_name,
			rank = excluded.rank,
			section = excluded.section,
			pin = excluded.pin,
			role = excluded.role,
			active = excluded.active`,
		m.CPF, m.ID, m.FullName, m.WarName, m.Rank, m.Section, m.PIN, string(m.Role), boolToInt(m.Active))
	if err != nil {
		return fmt.Errorf("failed to save member: %w", err)
	}
	return nil
}

func (s *Store) ListMembers(ctx context.Context) ([]roster.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT cpf, id, full_name, war_name, rank, section, pin, role, active
		FROM members ORDER BY full_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []roster.Member
	for rows.Next() {
		var m roster.Member
		var active int
		var role string
		if err := rows.Scan(&m.CPF, &m.ID, &m.FullName, &m.WarName, &m.Rank, &m.Section, &m.PIN, &role, &active); err != nil {
			return nil, err
		}
		m.Role = rancho.Role(role)
		m.Active = active != 0
		members = append(members, m)
	}
	return members, rows.Err()
}

// =============================================================================
// REGISTRATIONS (rancho.RegistrationStore)
// =============================================================================

func (s *Store) GetRegistration(ctx context.Context, cpf string, date rancho.Date) (*rancho.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT member_cpf, date, lunch, dinner, lunch_attended, dinner_attended
		FROM registrations WHERE member_cpf = ? AND date = ?`, cpf, date.String())

	reg, err := scanRegistration(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return reg, nil
}

func (s *Store) PutRegistration(ctx context.Context, reg rancho.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO registrations (member_cpf, date, lunch, dinner, lunch_attended, dinner_attended)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(member_cpf, date) DO UPDATE SET
			lunch = excluded.lunch,
			dinner = excluded.dinner,
			lunch_attended = excluded.lunch_attended,
			dinner_attended = excluded.dinner_attended`,
		reg.MemberCPF, reg.Date.String(),
		boolToInt(reg.Lunch), boolToInt(reg.Dinner),
		boolToInt(reg.LunchAttended), boolToInt(reg.DinnerAttended))
	if err != nil {
		return fmt.Errorf("failed to save registration: %w", err)
	}
	return nil
}

func (s *Store) DeleteRegistration(ctx context.Context, cpf string, date rancho.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM registrations WHERE member_cpf = ? AND date = ?`, cpf, date.String())
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	return nil
}

func (s *Store) ListRegistrationsByDate(ctx context.Context, date rancho.Date) ([]rancho.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT member_cpf, date, lunch, dinner, lunch_attended, dinner_attended
		FROM registrations WHERE date = ? ORDER BY member_cpf`, date.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()
	return collectRegistrations(rows)
}

func (s *Store) ListRegistrationsByMember(ctx context.Context, cpf string, from, to rancho.Date) ([]rancho.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT member_cpf, date, lunch, dinner, lunch_attended, dinner_attended
		FROM registrations
		WHERE member_cpf = ? AND date >= ? AND date <= ?
		ORDER BY date`, cpf, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()
	return collectRegistrations(rows)
}

func scanRegistration(scan func(...any) error) (*rancho.Registration, error) {
	var reg rancho.Registration
	var dateStr string
	var lunch, dinner, lunchAtt, dinnerAtt int
	if err := scan(&reg.MemberCPF, &dateStr, &lunch, &dinner, &lunchAtt, &dinnerAtt); err != nil {
		return nil, err
	}
	date, err := rancho.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt registration date %q: %w", dateStr, err)
	}
	reg.Date = date
	reg.Lunch = lunch != 0
	reg.Dinner = dinner != 0
	reg.LunchAttended = lunchAtt != 0
	reg.DinnerAttended = dinnerAtt != 0
	return &reg, nil
}

func collectRegistrations(rows *sql.Rows) ([]rancho.Registration, error) {
	var regs []rancho.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows.Scan)
		if err != nil {
			return nil, err
		}
		regs = append(regs, *reg)
	}
	return regs, rows.Err()
}

// =============================================================================
// BLOCKS (rancho.BlockRegistry)
// =============================================================================

func (s *Store) GetBlock(ctx context.Context, date rancho.Date) (*rancho.BlockRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT date, reason, created_by, created_at FROM blocks WHERE date = ?`, date.String())

	record, err := scanBlock(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get block: %w", err)
	}
	return record, nil
}

func (s *Store) PutBlock(ctx context.Context, record rancho.BlockRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blocks (date, reason, created_by, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			reason = excluded.reason,
			created_by = excluded.created_by,
			created_at = excluded.created_at`,
		record.Date.String(), record.Reason, record.CreatedBy, record.CreatedAt.String())
	if err != nil {
		return fmt.Errorf("failed to save block: %w", err)
	}
	return nil
}

func (s *Store) DeleteBlock(ctx context.Context, date rancho.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM blocks WHERE date = ?`, date.String())
	if err != nil {
		return fmt.Errorf("failed to delete block: %w", err)
	}
	return nil
}

func (s *Store) ListBlocks(ctx context.Context) ([]rancho.BlockRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT date, reason, created_by, created_at FROM blocks ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocks: %w", err)
	}
	defer rows.Close()

	var records []rancho.BlockRecord
	for rows.Next() {
		record, err := scanBlock(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func scanBlock(scan func(...any) error) (*rancho.BlockRecord, error) {
	var record rancho.BlockRecord
	var dateStr, createdAtStr string
	if err := scan(&dateStr, &record.Reason, &record.CreatedBy, &createdAtStr); err != nil {
		return nil, err
	}
	date, err := rancho.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt block date %q: %w", dateStr, err)
	}
	record.Date = date
	if createdAt, err := rancho.ParseDate(createdAtStr); err == nil {
		record.CreatedAt = createdAt
	}
	return &record, nil
}

// =============================================================================
// MENUS (menu.MenuStore)
// =============================================================================

func (s *Store) GetMenu(ctx context.Context, date rancho.Date) (*menu.Menu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT date, lunch, dinner, cost_per_meal FROM menus WHERE date = ?`, date.String())

	m, err := scanMenu(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}
	return m, nil
}

func (s *Store) PutMenu(ctx context.Context, m menu.Menu) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO menus (date, lunch, dinner, cost_per_meal)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			lunch = excluded.lunch,
			dinner = excluded.dinner,
			cost_per_meal = excluded.cost_per_meal`,
		m.Date.String(), m.Lunch, m.Dinner, m.CostPerMeal.String())
	if err != nil {
		return fmt.Errorf("failed to save menu: %w", err)
	}
	return nil
}

func (s *Store) DeleteMenu(ctx context.Context, date rancho.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM menus WHERE date = ?`, date.String())
	if err != nil {
		return fmt.Errorf("failed to delete menu: %w", err)
	}
	return nil
}

func (s *Store) ListMenus(ctx context.Context, from, to rancho.Date) ([]menu.Menu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, lunch, dinner, cost_per_meal FROM menus
		WHERE date >= ? AND date <= ? ORDER BY date`, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	defer rows.Close()

	var menus []menu.Menu
	for rows.Next() {
		m, err := scanMenu(rows.Scan)
		if err != nil {
			return nil, err
		}
		menus = append(menus, *m)
	}
	return menus, rows.Err()
}

func scanMenu(scan func(...any) error) (*menu.Menu, error) {
	var m menu.Menu
	var dateStr, costStr string
	if err := scan(&dateStr, &m.Lunch, &m.Dinner, &costStr); err != nil {
		return nil, err
	}
	date, err := rancho.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt menu date %q: %w", dateStr, err)
	}
	m.Date = date
	cost, err := decimal.NewFromString(costStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt menu cost %q: %w", costStr, err)
	}
	m.CostPerMeal = cost
	return &m, nil
}

// =============================================================================
// NOTICES (menu.NoticeStore)
// =============================================================================

func (s *Store) PutNotice(ctx context.Context, n menu.Notice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notices (id, title, message, level, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			message = excluded.message,
			level = excluded.level`,
		n.ID, n.Title, n.Message, string(n.Level), n.CreatedBy, n.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save notice: %w", err)
	}
	return nil
}

func (s *Store) DeleteNotice(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM notices WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete notice: %w", err)
	}
	// Acknowledgements of a retracted notice are dead weight.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM notice_seen WHERE notice_id = ?`, id); err != nil {
		return fmt.Errorf("failed to prune notice acknowledgements: %w", err)
	}
	return nil
}

func (s *Store) ListNotices(ctx context.Context) ([]menu.Notice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, message, level, created_by, created_at
		FROM notices ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}
	defer rows.Close()

	var notices []menu.Notice
	for rows.Next() {
		var n menu.Notice
		var level, createdAt string
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &level, &n.CreatedBy, &createdAt); err != nil {
			return nil, err
		}
		n.Level = menu.NoticeLevel(level)
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			n.CreatedAt = t
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

func (s *Store) MarkNoticeSeen(ctx context.Context, noticeID, cpf string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notice_seen (notice_id, member_cpf) VALUES (?, ?)
		ON CONFLICT(notice_id, member_cpf) DO NOTHING`, noticeID, cpf)
	if err != nil {
		return fmt.Errorf("failed to mark notice seen: %w", err)
	}
	return nil
}

func (s *Store) SeenNoticeIDs(ctx context.Context, cpf string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT notice_id FROM notice_seen WHERE member_cpf = ?`, cpf)
	if err != nil {
		return nil, fmt.Errorf("failed to load seen notices: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		seen[id] = true
	}
	return seen, rows.Err()
}

// =============================================================================
// SPECIAL REGISTRATIONS (rancho.SpecialStore)
// =============================================================================

func (s *Store) PutSpecial(ctx context.Context, sp rancho.SpecialRegistration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO special_registrations (id, date, meal, quantity, reason, registered_by)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			quantity = excluded.quantity,
			reason = excluded.reason`,
		sp.ID, sp.Date.String(), string(sp.Meal), sp.Quantity, sp.Reason, sp.RegisteredBy)
	if err != nil {
		return fmt.Errorf("failed to save special registration: %w", err)
	}
	return nil
}

func (s *Store) DeleteSpecial(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM special_registrations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete special registration: %w", err)
	}
	return nil
}

func (s *Store) ListSpecialByDate(ctx context.Context, date rancho.Date) ([]rancho.SpecialRegistration, error) {
	return s.ListSpecialRange(ctx, date, date)
}

func (s *Store) ListSpecialRange(ctx context.Context, from, to rancho.Date) ([]rancho.SpecialRegistration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, meal, quantity, reason, registered_by
		FROM special_registrations
		WHERE date >= ? AND date <= ? ORDER BY date, id`, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list special registrations: %w", err)
	}
	defer rows.Close()

	var specials []rancho.SpecialRegistration
	for rows.Next() {
		var sp rancho.SpecialRegistration
		var dateStr, meal string
		if err := rows.Scan(&sp.ID, &dateStr, &meal, &sp.Quantity, &sp.Reason, &sp.RegisteredBy); err != nil {
			return nil, err
		}
		date, err := rancho.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt special registration date %q: %w", dateStr, err)
		}
		sp.Date = date
		sp.Meal = rancho.Meal(meal)
		specials = append(specials, sp)
	}
	return specials, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
