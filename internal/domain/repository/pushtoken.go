package repository

import "context"

// PushTokenRepository stores device push tokens per user.
type PushTokenRepository interface {
	Save(ctx context.Context, userID, token string) error
	ListByUser(ctx context.Context, userID string) ([]string, error)
}
