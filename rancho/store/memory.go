// Package store provides in-memory implementations of the rancho
// persistence interfaces, for tests and development.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/erancho/mess-engine/rancho"
)

// =============================================================================
// MEMORY STORE - In-memory registries (for testing/dev)
// =============================================================================

type Memory struct {
	mu            sync.RWMutex
	blocks        map[string]rancho.BlockRecord
	registrations map[regKey]rancho.Registration
	specials      map[string]rancho.SpecialRegistration
}

type regKey struct {
	CPF  string
	Date string
}

func NewMemory() *Memory {
	return &Memory{
		blocks:        make(map[string]rancho.BlockRecord),
		registrations: make(map[regKey]rancho.Registration),
		specials:      make(map[string]rancho.SpecialRegistration),
	}
}

// -----------------------------------------------------------------------------
// BlockRegistry
// -----------------------------------------------------------------------------

func (m *Memory) GetBlock(_ context.Context, date rancho.Date) (*rancho.BlockRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.blocks[date.String()]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (m *Memory) PutBlock(_ context.Context, record rancho.BlockRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocks[record.Date.String()] = record
	return nil
}

func (m *Memory) DeleteBlock(_ context.Context, date rancho.Date) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blocks, date.String())
	return nil
}

func (m *Memory) ListBlocks(_ context.Context) ([]rancho.BlockRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]rancho.BlockRecord, 0, len(m.blocks))
	for _, b := range m.blocks {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// -----------------------------------------------------------------------------
// RegistrationStore
// -----------------------------------------------------------------------------

func (m *Memory) GetRegistration(_ context.Context, cpf string, date rancho.Date) (*rancho.Registration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reg, ok := m.registrations[regKey{CPF: cpf, Date: date.String()}]
	if !ok {
		return nil, nil
	}
	return &reg, nil
}

func (m *Memory) PutRegistration(_ context.Context, reg rancho.Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registrations[regKey{CPF: reg.MemberCPF, Date: reg.Date.String()}] = reg
	return nil
}

func (m *Memory) DeleteRegistration(_ context.Context, cpf string, date rancho.Date) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.registrations, regKey{CPF: cpf, Date: date.String()})
	return nil
}

func (m *Memory) ListRegistrationsByDate(_ context.Context, date rancho.Date) ([]rancho.Registration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []rancho.Registration
	for k, reg := range m.registrations {
		if k.Date == date.String() {
			result = append(result, reg)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MemberCPF < result[j].MemberCPF })
	return result, nil
}

func (m *Memory) ListRegistrationsByMember(_ context.Context, cpf string, from, to rancho.Date) ([]rancho.Registration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []rancho.Registration
	for k, reg := range m.registrations {
		if k.CPF == cpf && from.BeforeOrEqual(reg.Date) && reg.Date.BeforeOrEqual(to) {
			result = append(result, reg)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// -----------------------------------------------------------------------------
// SpecialStore
// -----------------------------------------------------------------------------

func (m *Memory) PutSpecial(_ context.Context, s rancho.SpecialRegistration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.specials[s.ID] = s
	return nil
}

func (m *Memory) DeleteSpecial(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.specials, id)
	return nil
}

func (m *Memory) ListSpecialByDate(ctx context.Context, date rancho.Date) ([]rancho.SpecialRegistration, error) {
	return m.ListSpecialRange(ctx, date, date)
}

func (m *Memory) ListSpecialRange(_ context.Context, from, to rancho.Date) ([]rancho.SpecialRegistration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []rancho.SpecialRegistration
	for _, s := range m.specials {
		if from.BeforeOrEqual(s.Date) && s.Date.BeforeOrEqual(to) {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}
