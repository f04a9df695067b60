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

type RefreshTokenRepoMock struct{ mock.Mock }

func (m *RefreshTokenRepoMock) Create(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	t, _ := args.Get(0).(*model.RefreshToken)
	return t, args.Error(1)
}

func (m *RefreshTokenRepoMock) MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) error {
	args := m.Called(ctx, tokenID, usedAt)
	return args.Error(0)
}

type stubVerifier struct{ ok bool }

func (v stubVerifier) Verify(plain string, hashed string) bool { return v.ok }

type stubIssuer struct{}

func (stubIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	return "access-token", now.Add(15 * time.Minute), nil
}

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func newLoginUsecase(userRepo *UserRepoMock, rtRepo *RefreshTokenRepoMock, verifierOK bool) *auth.LoginUsecase {
	return auth.NewLoginUsecase(
		userRepo, rtRepo,
		stubVerifier{ok: verifierOK},
		stubIssuer{},
		stubIDGen{id: "rt-1"},
		stubClock{now: testNow},
		14*24*time.Hour,
	)
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(UserRepoMock)
	rtRepo := new(RefreshTokenRepoMock)
	uc := newLoginUsecase(userRepo, rtRepo, true)

	userRepo.On("FindByEmail", mock.Anything, "buyer@example.com").
		Return(&model.User{ID: 1, Email: "buyer@example.com", PasswordHash: "stored", Role: model.RoleCustomer}, nil)

	var saved *model.RefreshToken
	rtRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.RefreshToken")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*model.RefreshToken) }).
		Return(nil)

	out, side, err := uc.Execute(context.Background(), auth.LoginInput{
		Email:     "buyer@example.com",
		Password:  "password123",
		UserAgent: "test-agent",
	})
	assert.NoError(t, err)
	assert.Equal(t, "access-token", out.Token.AccessToken)
	assert.Equal(t, int(15*time.Minute/time.Second), out.Token.ExpiresIn)
	assert.Empty(t, out.User.PasswordHash)
	assert.NotEmpty(t, side.PlainRefreshToken)

	//保存されるのは平文ではなくsha256ハッシュ
	sum := sha256.Sum256([]byte(side.PlainRefreshToken))
	assert.Equal(t, hex.EncodeToString(sum[:]), saved.TokenHash)
	assert.Equal(t, "rt-1", saved.ID)
	assert.Equal(t, int64(1), saved.UserID)
	assert.Equal(t, "test-agent", saved.UserAgent)
	assert.Equal(t, testNow.Add(14*24*time.Hour), saved.ExpiresAt)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(UserRepoMock)
	rtRepo := new(RefreshTokenRepoMock)
	uc := newLoginUsecase(userRepo, rtRepo, false)

	userRepo.On("FindByEmail", mock.Anything, "buyer@example.com").
		Return(&model.User{ID: 1, PasswordHash: "stored"}, nil)

	_, _, err := uc.Execute(context.Background(), auth.LoginInput{
		Email:    "buyer@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	rtRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(UserRepoMock)
	rtRepo := new(RefreshTokenRepoMock)
	uc := newLoginUsecase(userRepo, rtRepo, true)

	userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").
		Return(nil, repository.ErrUserNotFound)

	_, _, err := uc.Execute(context.Background(), auth.LoginInput{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	//存在しないメールも資格情報エラーに寄せる
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
