package services

import (
  "context"
  "fmt"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"
  "gorm.io/gorm"

  "github.com/andrelobo/zoe-backend/internal/logger"
  "github.com/andrelobo/zoe-backend/internal/normalization"
  errs "github.com/andrelobo/zoe-backend/internal/pkg/errors"
  "github.com/andrelobo/zoe-backend/internal/repos"
  "github.com/andrelobo/zoe-backend/internal/requestdata"
  "github.com/andrelobo/zoe-backend/internal/types"
)

type JWTClaims struct {
  jwt.RegisteredClaims
}

// AuthService issues and verifies stateless HS256 access tokens. There is no
// session table: a token is valid as long as its signature checks out and it
// has not expired.
type AuthService interface {
  RegisterUser(ctx context.Context, user *types.User) error
  LoginUser(ctx context.Context, email, password string) (string, error)
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
  GetAccessTTL() time.Duration
}

type authService struct {
  db           *gorm.DB
  log          *logger.Logger
  userRepo     repos.UserRepo
  jwtSecretKey string
  accessTTL    time.Duration
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, jwtSecretKey string, accessTTL time.Duration) AuthService {
  serviceLog := log.With("service", "AuthService")
  return &authService{
    db:           db,
    log:          serviceLog,
    userRepo:     userRepo,
    jwtSecretKey: jwtSecretKey,
    accessTTL:    accessTTL,
  }
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
  user.Email = normalization.ParseInputString(user.Email)
  user.FirstName = normalization.TrimInputString(user.FirstName)
  user.LastName = normalization.TrimInputString(user.LastName)

  if user.Email == "" {
    return fmt.Errorf("email: %w", errs.ErrMissingField)
  }
  if user.Password == "" {
    return fmt.Errorf("password: %w", errs.ErrMissingField)
  }
  if user.FirstName == "" {
    return fmt.Errorf("first_name: %w", errs.ErrMissingField)
  }
  if user.LastName == "" {
    return fmt.Errorf("last_name: %w", errs.ErrMissingField)
  }

  exists, eErr := as.userRepo.EmailExists(ctx, nil, user.Email)
  if eErr != nil {
    return fmt.Errorf("Failed to check user email: %w", eErr)
  }
  if exists {
    return fmt.Errorf("email is already in use: %w", errs.ErrInvalidArgument)
  }

  hashed, hErr := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
  if hErr != nil {
    return fmt.Errorf("Failed to hash password: %w", hErr)
  }
  user.Password = string(hashed)
  user.ID = uuid.New()

  if _, cErr := as.userRepo.Create(ctx, nil, user); cErr != nil {
    return fmt.Errorf("Failed to create user: %w", cErr)
  }
  return nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, error) {
  email = normalization.ParseInputString(email)
  if email == "" || password == "" {
    return "", fmt.Errorf("email and password are required: %w", errs.ErrMissingField)
  }

  user, uErr := as.userRepo.GetByEmail(ctx, nil, email)
  if uErr != nil {
    // Same caller-facing failure for a missing user and a bad password.
    return "", fmt.Errorf("invalid credentials: %w", errs.ErrUnauthorized)
  }
  if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
    return "", fmt.Errorf("invalid credentials: %w", errs.ErrUnauthorized)
  }

  return as.generateAccessToken(user)
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
  claims := JWTClaims{
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   user.ID.String(),
      ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
      IssuedAt:  jwt.NewNumericDate(time.Now()),
    },
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
    if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
    }
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil {
    return ctx, fmt.Errorf("Failed to parse token: %w", errs.ErrUnauthorized)
  }
  claims, ok := parsedToken.Claims.(*JWTClaims)
  if !ok || !parsedToken.Valid {
    return ctx, fmt.Errorf("invalid or expired token: %w", errs.ErrUnauthorized)
  }
  userID, pErr := uuid.Parse(claims.Subject)
  if pErr != nil {
    return ctx, fmt.Errorf("invalid user id in token: %w", errs.ErrUnauthorized)
  }

  rd := &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      userID,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
  return as.accessTTL
}
