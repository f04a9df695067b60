package auth_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"farmmarket/internal/domain/model"
	"farmmarket/internal/repository"
	auth "farmmarket/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newRefreshUsecase(userRepo *UserRepoMock, rtRepo *RefreshTokenRepoMock) *auth.RefreshUsecase {
	return auth.NewRefreshUsecase(
		userRepo, rtRepo,
		stubIssuer{},
		stubIDGen{id: "rt-2"},
		stubClock{now: testNow},
		14*24*time.Hour,
	)
}

func hashOf(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func TestRefresh_RotatesToken(t *testing.T) {
	userRepo := new(UserRepoMock)
	rtRepo := new(RefreshTokenRepoMock)
	uc := newRefreshUsecase(userRepo, rtRepo)

	stored := &model.RefreshToken{
		ID:        "rt-1",
		UserID:    1,
		TokenHash: hashOf("old-token"),
		ExpiresAt: testNow.Add(time.Hour),
	}
	rtRepo.On("FindByTokenHash", mock.Anything, hashOf("old-token")).Return(stored, nil)
	userRepo.On("FindByID", mock.Anything, int64(1)).
		Return(&model.User{ID: 1, Role: model.RoleCustomer}, nil)
	rtRepo.On("MarkUsed", mock.Anything, "rt-1", testNow).Return(nil)

	var saved *model.RefreshToken
	rtRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.RefreshToken")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*model.RefreshToken) }).
		Return(nil)

	out, side, err := uc.Execute(context.Background(), "old-token", "test-agent")
	assert.NoError(t, err)
	assert.Equal(t, "access-token", out.Token.AccessToken)
	assert.NotEmpty(t, side.PlainRefreshToken)
	assert.NotEqual(t, "old-token", side.PlainRefreshToken)

	//新トークンは旧とは別のハッシュで保存される
	assert.Equal(t, "rt-2", saved.ID)
	assert.Equal(t, hashOf(side.PlainRefreshToken), saved.TokenHash)

	rtRepo.AssertExpectations(t)
}

func TestRefresh_RejectsUsedToken(t *testing.T) {
	userRepo := new(UserRepoMock)
	rtRepo := new(RefreshTokenRepoMock)
	uc := newRefreshUsecase(userRepo, rtRepo)

	used := testNow.Add(-time.Minute)
	rtRepo.On("FindByTokenHash", mock.Anything, hashOf("old-token")).Return(&model.RefreshToken{
		ID: "rt-1", UserID: 1, TokenHash: hashOf("old-token"),
		UsedAt: &used, ExpiresAt: testNow.Add(time.Hour),
	}, nil)

	_, _, err := uc.Execute(context.Background(), "old-token", "")
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)

	rtRepo.AssertNotCalled(t, "MarkUsed", mock.Anything, mock.Anything, mock.Anything)
	rtRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRefresh_RejectsExpiredToken(t *testing.T) {
	userRepo := new(UserRepoMock)
	rtRepo := new(RefreshTokenRepoMock)
	uc := newRefreshUsecase(userRepo, rtRepo)

	rtRepo.On("FindByTokenHash", mock.Anything, hashOf("old-token")).Return(&model.RefreshToken{
		ID: "rt-1", UserID: 1, TokenHash: hashOf("old-token"),
		ExpiresAt: testNow.Add(-time.Second),
	}, nil)

	_, _, err := uc.Execute(context.Background(), "old-token", "")
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
}

func TestRefresh_RejectsUnknownToken(t *testing.T) {
	userRepo := new(UserRepoMock)
	rtRepo := new(RefreshTokenRepoMock)
	uc := newRefreshUsecase(userRepo, rtRepo)

	rtRepo.On("FindByTokenHash", mock.Anything, mock.Anything).
		Return(nil, repository.ErrRefreshTokenNotFound)

	_, _, err := uc.Execute(context.Background(), "never-issued", "")
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
}

func TestRefresh_RejectsEmptyToken(t *testing.T) {
	userRepo := new(UserRepoMock)
	rtRepo := new(RefreshTokenRepoMock)
	uc := newRefreshUsecase(userRepo, rtRepo)

	_, _, err := uc.Execute(context.Background(), "", "")
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
}

// 先着1件だけが勝つ。MarkUsedが既に使われたと言ったら無効扱い。
func TestRefresh_LosesRaceOnMarkUsed(t *testing.T) {
	userRepo := new(UserRepoMock)
	rtRepo := new(RefreshTokenRepoMock)
	uc := newRefreshUsecase(userRepo, rtRepo)

	rtRepo.On("FindByTokenHash", mock.Anything, hashOf("old-token")).Return(&model.RefreshToken{
		ID: "rt-1", UserID: 1, TokenHash: hashOf("old-token"),
		ExpiresAt: testNow.Add(time.Hour),
	}, nil)
	userRepo.On("FindByID", mock.Anything, int64(1)).
		Return(&model.User{ID: 1, Role: model.RoleCustomer}, nil)
	rtRepo.On("MarkUsed", mock.Anything, "rt-1", testNow).
		Return(repository.ErrRefreshTokenNotFound)

	_, _, err := uc.Execute(context.Background(), "old-token", "")
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)

	rtRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
