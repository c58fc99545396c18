/*
Package roster manages mess-hall personnel and resolves identities for the
eligibility engine.

PURPOSE:
  Owns the member record (name, rank, section, credentials, role, active
  flag) and the login flow. The engine never sees raw member records; the
  roster resolves each member down to a rancho.Requester holding only a
  role and a bypass flag.

CPF HANDLING:
  CPFs arrive with punctuation, missing leading zeros, or both, depending
  on which import produced them. Everything is normalized to eleven digits
  before use as a key, so "123.456.789-01" and "12345678901" are the same
  person.

BYPASS ACCOUNTS:
  Designated accounts exempt from the schedule rules are configured by CPF
  on the Service, never hard-coded. Whether such accounts belong in
  production at all is an open question recorded in DESIGN.md.

SEE ALSO:
  - rancho/eligibility.go: Requester consumed by the engine
  - store/sqlite: MemberStore implementation
*/
package roster

import (
	"context"
	"errors"
	"strings"

	"github.com/erancho/mess-engine/rancho"
)

// =============================================================================
// MEMBER
// =============================================================================

// Member is one person on the unit roster.
type Member struct {
	ID       string
	CPF      string
	FullName string
	WarName  string
	Rank     string
	Section  string
	PIN      string
	Role     rancho.Role
	Active   bool
}

// MemberStore is the persistence boundary for the roster.
// GetByCPF returns nil (not an error) for unknown CPFs.
type MemberStore interface {
	GetMemberByCPF(ctx context.Context, cpf string) (*Member, error)
	PutMember(ctx context.Context, m Member) error
	ListMembers(ctx context.Context) ([]Member, error)
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrInvalidCredentials covers both unknown CPF and wrong PIN; login
	// does not reveal which.
	ErrInvalidCredentials = errors.New("invalid CPF or PIN")

	// ErrInactiveMember is returned when a deactivated member logs in or
	// scans at the gate.
	ErrInactiveMember = errors.New("member is inactive")

	// ErrMissingFields is returned when a member record lacks CPF or name.
	ErrMissingFields = errors.New("member requires cpf and full name")
)

// =============================================================================
// NORMALIZATION
// =============================================================================

// NormalizeCPF strips everything but digits and left-pads to eleven, the
// storage key format. Spreadsheet imports drop leading zeros; this puts
// them back.
func NormalizeCPF(cpf string) string {
	var b strings.Builder
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	for len(digits) < 11 {
		digits = "0" + digits
	}
	return digits
}

// =============================================================================
// SERVICE
// =============================================================================

// Service is the identity provider: login, member CRUD, and requester
// resolution for the engine.
type Service struct {
	Store MemberStore

	// BypassCPFs designates accounts exempt from schedule rules.
	BypassCPFs map[string]bool
}

// Login authenticates by CPF and PIN. Inactive members are rejected even
// with valid credentials.
func (s *Service) Login(ctx context.Context, cpf, pin string) (*Member, error) {
	member, err := s.Store.GetMemberByCPF(ctx, NormalizeCPF(cpf))
	if err != nil {
		return nil, err
	}
	if member == nil || member.PIN != strings.TrimSpace(pin) {
		return nil, ErrInvalidCredentials
	}
	if !member.Active {
		return nil, ErrInactiveMember
	}
	return member, nil
}

// Lookup fetches an active member by CPF.
func (s *Service) Lookup(ctx context.Context, cpf string) (*Member, error) {
	member, err := s.Store.GetMemberByCPF(ctx, NormalizeCPF(cpf))
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, rancho.ErrMemberNotFound
	}
	return member, nil
}

// RequesterFor collapses a member into the engine's identity context.
func (s *Service) RequesterFor(m *Member) rancho.Requester {
	return rancho.Requester{
		Role:   m.Role,
		Bypass: s.BypassCPFs[NormalizeCPF(m.CPF)],
	}
}

// Save validates and persists a member record, normalizing the CPF.
// Existing records for the same CPF are overwritten (last-write-wins).
func (s *Service) Save(ctx context.Context, m Member) (*Member, error) {
	m.CPF = NormalizeCPF(m.CPF)
	m.FullName = strings.TrimSpace(m.FullName)
	if strings.Trim(m.CPF, "0") == "" || m.FullName == "" {
		return nil, ErrMissingFields
	}
	if m.Role == "" {
		m.Role = rancho.RoleOrdinary
	}
	if err := s.Store.PutMember(ctx, m); err != nil {
		return nil, err
	}
	return &m, nil
}
