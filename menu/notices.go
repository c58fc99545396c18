package menu

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// NOTICES - Announcements shown once per member
// =============================================================================

// NoticeLevel controls how loudly the UI renders a notice.
type NoticeLevel string

const (
	LevelInfo    NoticeLevel = "info"
	LevelWarning NoticeLevel = "warning"
	LevelUrgent  NoticeLevel = "urgent"
)

// Notice is an announcement from the mess administration. Members see it
// until they acknowledge it; the seen set is tracked server-side so the
// acknowledgement survives a browser change.
type Notice struct {
	ID        string
	Title     string
	Message   string
	Level     NoticeLevel
	CreatedBy string
	CreatedAt time.Time
}

// NoticeStore is the persistence boundary for notices and their seen sets.
type NoticeStore interface {
	PutNotice(ctx context.Context, n Notice) error
	DeleteNotice(ctx context.Context, id string) error
	ListNotices(ctx context.Context) ([]Notice, error)
	MarkNoticeSeen(ctx context.Context, noticeID, cpf string) error
	SeenNoticeIDs(ctx context.Context, cpf string) (map[string]bool, error)
}

// ErrEmptyNotice is returned when a notice has no title and no message.
var ErrEmptyNotice = errors.New("notice requires a title or a message")

// NoticeService publishes and resolves notices.
type NoticeService struct {
	Store NoticeStore
}

// Publish validates and stores a new notice, assigning it an ID.
func (s *NoticeService) Publish(ctx context.Context, n Notice) (*Notice, error) {
	n.Title = strings.TrimSpace(n.Title)
	n.Message = strings.TrimSpace(n.Message)
	if n.Title == "" && n.Message == "" {
		return nil, ErrEmptyNotice
	}
	if n.Level == "" {
		n.Level = LevelInfo
	}
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now()

	if err := s.Store.PutNotice(ctx, n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Retract deletes a notice. Deleting an already-deleted notice is a no-op.
func (s *NoticeService) Retract(ctx context.Context, id string) error {
	return s.Store.DeleteNotice(ctx, id)
}

// UnseenFor returns the notices the member has not acknowledged yet,
// oldest first.
func (s *NoticeService) UnseenFor(ctx context.Context, cpf string) ([]Notice, error) {
	all, err := s.Store.ListNotices(ctx)
	if err != nil {
		return nil, err
	}
	seen, err := s.Store.SeenNoticeIDs(ctx, cpf)
	if err != nil {
		return nil, err
	}

	var unseen []Notice
	for _, n := range all {
		if !seen[n.ID] {
			unseen = append(unseen, n)
		}
	}
	return unseen, nil
}

// MarkSeen records the acknowledgement. Marking twice is harmless.
func (s *NoticeService) MarkSeen(ctx context.Context, noticeID, cpf string) error {
	return s.Store.MarkNoticeSeen(ctx, noticeID, cpf)
}
