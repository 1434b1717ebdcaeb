package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/FardadA/samp-crush/internal/repo/postgres"
)

// Recorder appends one audit record.
type Recorder interface {
	Insert(ctx context.Context, record postgres.AuditRecord) error
}

// Service writes the postgres audit trail. Audit failures are logged and
// swallowed: the trail is an observer, never a reason to break a user flow.
type Service struct {
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(recorder Recorder, logger *zap.Logger) *Service {
	return &Service{recorder: recorder, logger: logger, now: time.Now}
}

func (s *Service) log(ctx context.Context, name string, userID int64, details map[string]any) {
	if s.recorder == nil {
		return
	}
	record := postgres.AuditRecord{
		Name:       name,
		UserID:     userID,
		OccurredAt: s.now().UTC(),
		Details:    details,
	}
	if err := s.recorder.Insert(ctx, record); err != nil {
		s.logger.Warn("audit write failed",
			zap.String("event", name),
			zap.Int64("user_id", userID),
			zap.Error(err))
	}
}

func (s *Service) LogStart(ctx context.Context, userID, referrerID int64, created bool) {
	s.log(ctx, "bot.start", userID, map[string]any{
		"referrer_id": referrerID,
		"created":     created,
	})
}

func (s *Service) LogRegistrationCompleted(ctx context.Context, userID int64, province, city string) {
	s.log(ctx, "registration.completed", userID, map[string]any{
		"province": province,
		"city":     city,
	})
}

func (s *Service) LogReferralCredited(ctx context.Context, referrerID, newUserID, coins int64) {
	s.log(ctx, "referral.credited", referrerID, map[string]any{
		"new_user_id": newUserID,
		"coins":       coins,
	})
}

func (s *Service) LogBonusAwarded(ctx context.Context, userID, coins int64) {
	s.log(ctx, "profile.bonus_awarded", userID, map[string]any{
		"coins": coins,
	})
}

func (s *Service) LogAdminBootstrap(ctx context.Context, adminID int64) {
	s.log(ctx, "admin.bootstrap", adminID, nil)
}

func (s *Service) LogChannelAdded(ctx context.Context, adminID, chatID int64, title string) {
	s.log(ctx, "channel.promoted", adminID, map[string]any{
		"chat_id": chatID,
		"title":   title,
	})
}

func (s *Service) LogSchoolsAdded(ctx context.Context, adminID int64, province, city string, count int64) {
	s.log(ctx, "schools.added", adminID, map[string]any{
		"province": province,
		"city":     city,
		"count":    count,
	})
}
