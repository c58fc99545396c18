/*
blocks.go - Administrative per-day blocks

PURPOSE:
  A block takes a calendar date out of registration entirely (holiday,
  kitchen maintenance, field exercise) regardless of window eligibility.
  Blocks are keyed by date, carry a mandatory reason, and are created and
  removed by administrators only; the engine just reads them.

LIFECYCLE:
  Created by Block(), removed by Unblock(), otherwise immutable. Past
  blocks are harmless (the past-date rule already denies those days) and
  are not auto-purged; see DESIGN.md for the open question on purging.

SEE ALSO:
  - eligibility.go: How a block record feeds the decision
  - store/memory.go, store/sqlite: Registry implementations
*/
package rancho

import (
	"context"
	"strings"
)

// =============================================================================
// BLOCK RECORD
// =============================================================================

// BlockRecord marks one calendar date as administratively unavailable.
type BlockRecord struct {
	Date      Date
	Reason    string
	CreatedBy string
	CreatedAt Date
}

// BlockRegistry is the persistence boundary for blocks. Implementations are
// keyed by ISO date; Get returns nil (not an error) when no block exists.
type BlockRegistry interface {
	GetBlock(ctx context.Context, date Date) (*BlockRecord, error)
	PutBlock(ctx context.Context, record BlockRecord) error
	DeleteBlock(ctx context.Context, date Date) error
	ListBlocks(ctx context.Context) ([]BlockRecord, error)
}

// =============================================================================
// BLOCK SERVICE - Validated mutations over the registry
// =============================================================================

// BlockService applies the mutation rules in front of a BlockRegistry.
type BlockService struct {
	Registry BlockRegistry
	Clock    Clock
}

// Block creates (or overwrites, last-write-wins) the block for date.
// The reason is mandatory and past dates cannot be blocked.
func (s *BlockService) Block(ctx context.Context, date Date, reason, author string) (*BlockRecord, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrEmptyReason
	}

	today := s.Clock.Today()
	if date.Before(today) {
		return nil, ErrBlockPastDate
	}

	record := BlockRecord{
		Date:      date,
		Reason:    reason,
		CreatedBy: author,
		CreatedAt: today,
	}
	if err := s.Registry.PutBlock(ctx, record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Unblock removes the block for date. Removing a date that was never
// blocked is a no-op, so two administrators unblocking at once both succeed.
func (s *BlockService) Unblock(ctx context.Context, date Date) error {
	return s.Registry.DeleteBlock(ctx, date)
}
