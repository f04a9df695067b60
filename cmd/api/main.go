package main

import (
	"log/slog"
	"os"
	"time"

	"farmmarket/internal/config"
	"farmmarket/internal/domain/model"
	"farmmarket/internal/handler"
	"farmmarket/internal/infra/db"
	infraRepo "farmmarket/internal/infra/repository"
	"farmmarket/internal/infra/storage"
	"farmmarket/internal/server"
	"farmmarket/internal/usecase"
	auth "farmmarket/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	//.envは無ければ環境変数だけで動かす
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Product{},
		&model.Negotiation{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	negotiationRepo := infraRepo.NewNegotiationGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 15 * time.Minute,
	}
	refreshTTL := 14 * 24 * time.Hour

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher)
	loginUC := auth.NewLoginUsecase(userRepo, rtRepo, verifier, issuer, idGen, clock, refreshTTL)
	refreshUC := auth.NewRefreshUsecase(userRepo, rtRepo, issuer, idGen, clock, refreshTTL)
	productUC := usecase.NewProductUsecase(productRepo)
	negotiationUC := usecase.NewNegotiationUsecase(negotiationRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager)

	//Handler生成
	handlers := server.Handlers{
		Auth:        handler.NewAuthHandler(registerUC, loginUC, refreshUC),
		Product:     handler.NewProductHandler(productUC),
		Negotiation: handler.NewNegotiationHandler(negotiationUC),
		Order:       handler.NewOrderHandler(orderUC),
		Upload:      handler.NewUploadHandler(storage.NewLocalImageStore(cfg.UploadDir)),
	}

	//Server起動
	e := server.New(cfg, handlers)

	addr := ":" + cfg.Port
	logger.Info("starting server", "addr", addr)
	if err := server.Start(e, addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
