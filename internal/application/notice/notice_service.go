package notice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/propmanager/backend/internal/domain/notice"
	"github.com/propmanager/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// NoticeInfo is the API view of a notice, annotated for the reader
type NoticeInfo struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Priority  string    `json:"priority"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"isRead"`
}

func toNoticeInfo(n *notice.Notice, read bool) NoticeInfo {
	return NoticeInfo{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Priority:  string(n.Priority),
		CreatedBy: n.CreatedBy,
		CreatedAt: n.CreatedAt,
		IsRead:    read,
	}
}

// CreateNoticeInput holds a new notice
type CreateNoticeInput struct {
	Title    string
	Message  string
	Priority string
}

// NoticeService handles notice board use cases
type NoticeService struct {
	repo   notice.Repository
	logger *zap.Logger
}

// NewNoticeService creates a new NoticeService
func NewNoticeService(repo notice.Repository, logger *zap.Logger) *NoticeService {
	return &NoticeService{repo: repo, logger: logger}
}

// Create posts a notice authored by createdBy
func (s *NoticeService) Create(ctx context.Context, createdBy uuid.UUID, input CreateNoticeInput) (*NoticeInfo, error) {
	n, err := notice.NewNotice(input.Title, input.Message, notice.Priority(input.Priority), createdBy)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	s.logger.Info("Notice created",
		zap.String("notice_id", n.ID.String()),
		zap.String("priority", string(n.Priority)))

	info := toNoticeInfo(n, false)
	return &info, nil
}

// List returns all notices, newest first, each flagged as read or unread for userID
func (s *NoticeService) List(ctx context.Context, userID uuid.UUID) ([]NoticeInfo, error) {
	notices, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	readIDs, err := s.repo.ReadNoticeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	read := make(map[uuid.UUID]struct{}, len(readIDs))
	for _, id := range readIDs {
		read[id] = struct{}{}
	}

	out := make([]NoticeInfo, len(notices))
	for i, n := range notices {
		_, ok := read[n.ID]
		out[i] = toNoticeInfo(n, ok)
	}
	return out, nil
}

// Delete removes a notice and its read markers
func (s *NoticeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("Notice")
		}
		return err
	}
	s.logger.Info("Notice deleted", zap.String("notice_id", id.String()))
	return nil
}

// MarkRead records that userID has read the notice.
// It returns false when the notice was already marked.
func (s *NoticeService) MarkRead(ctx context.Context, userID, noticeID uuid.UUID) (bool, error) {
	if _, err := s.repo.FindByID(ctx, noticeID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, shared.NotFound("Notice")
		}
		return false, err
	}
	return s.repo.MarkRead(ctx, notice.Read{
		NoticeID: noticeID,
		UserID:   userID,
		ReadAt:   time.Now(),
	})
}

// ReadStatus returns the IDs of notices userID has read
func (s *NoticeService) ReadStatus(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.ReadNoticeIDs(ctx, userID)
}
