package menu_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erancho/mess-engine/menu"
)

// noticeMem is an in-memory NoticeStore preserving insertion order.
type noticeMem struct {
	notices []menu.Notice
	seen    map[string]map[string]bool
}

func newNoticeMem() *noticeMem {
	return &noticeMem{seen: map[string]map[string]bool{}}
}

func (s *noticeMem) PutNotice(_ context.Context, n menu.Notice) error {
	s.notices = append(s.notices, n)
	return nil
}

func (s *noticeMem) DeleteNotice(_ context.Context, id string) error {
	for i, n := range s.notices {
		if n.ID == id {
			s.notices = append(s.notices[:i], s.notices[i+1:]...)
			break
		}
	}
	delete(s.seen, id)
	return nil
}

func (s *noticeMem) ListNotices(_ context.Context) ([]menu.Notice, error) {
	return append([]menu.Notice(nil), s.notices...), nil
}

func (s *noticeMem) MarkNoticeSeen(_ context.Context, noticeID, cpf string) error {
	if s.seen[noticeID] == nil {
		s.seen[noticeID] = map[string]bool{}
	}
	s.seen[noticeID][cpf] = true
	return nil
}

func (s *noticeMem) SeenNoticeIDs(_ context.Context, cpf string) (map[string]bool, error) {
	ids := map[string]bool{}
	for noticeID, members := range s.seen {
		if members[cpf] {
			ids[noticeID] = true
		}
	}
	return ids, nil
}

// =============================================================================
// NOTICE SERVICE TESTS
// =============================================================================

func TestPublish_AssignsIDAndDefaults(t *testing.T) {
	// GIVEN: A notice with only a message
	// WHEN: Publishing
	// THEN: It gets an ID, an info level, and a creation time

	svc := &menu.NoticeService{Store: newNoticeMem()}
	n, err := svc.Publish(context.Background(), menu.Notice{Message: "rancho fechado sexta"})
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, menu.LevelInfo, n.Level)
	assert.False(t, n.CreatedAt.IsZero())
}

func TestPublish_EmptyNotice_Rejected(t *testing.T) {
	svc := &menu.NoticeService{Store: newNoticeMem()}
	_, err := svc.Publish(context.Background(), menu.Notice{Title: "  ", Message: ""})
	assert.ErrorIs(t, err, menu.ErrEmptyNotice)
}

func TestUnseenFor_TracksAcknowledgementPerMember(t *testing.T) {
	// GIVEN: Two published notices, one acknowledged by one member
	// WHEN: Listing unseen notices for both members
	// THEN: The acknowledging member sees one; the other still sees both

	svc := &menu.NoticeService{Store: newNoticeMem()}
	ctx := context.Background()

	first, err := svc.Publish(ctx, menu.Notice{Title: "first"})
	require.NoError(t, err)
	_, err = svc.Publish(ctx, menu.Notice{Title: "second"})
	require.NoError(t, err)

	require.NoError(t, svc.MarkSeen(ctx, first.ID, "11111111111"))

	unseen, err := svc.UnseenFor(ctx, "11111111111")
	require.NoError(t, err)
	require.Len(t, unseen, 1)
	assert.Equal(t, "second", unseen[0].Title)

	unseen, err = svc.UnseenFor(ctx, "22222222222")
	require.NoError(t, err)
	assert.Len(t, unseen, 2)
}

func TestMarkSeen_Twice_Harmless(t *testing.T) {
	svc := &menu.NoticeService{Store: newNoticeMem()}
	ctx := context.Background()

	n, err := svc.Publish(ctx, menu.Notice{Title: "once"})
	require.NoError(t, err)

	require.NoError(t, svc.MarkSeen(ctx, n.ID, "11111111111"))
	require.NoError(t, svc.MarkSeen(ctx, n.ID, "11111111111"))

	unseen, err := svc.UnseenFor(ctx, "11111111111")
	require.NoError(t, err)
	assert.Empty(t, unseen)
}

func TestRetract_Idempotent(t *testing.T) {
	svc := &menu.NoticeService{Store: newNoticeMem()}
	ctx := context.Background()

	n, err := svc.Publish(ctx, menu.Notice{Title: "gone"})
	require.NoError(t, err)

	require.NoError(t, svc.Retract(ctx, n.ID))
	require.NoError(t, svc.Retract(ctx, n.ID))

	all, err := svc.Store.ListNotices(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
