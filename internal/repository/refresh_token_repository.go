package repository

import (
	"context"
	"errors"
	"time"

	"farmmarket/internal/domain/model"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)

	// 未使用かつ未失効のときだけused_atを付ける（ローテーション用）。
	MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) error
}
