package auth

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"clubhub/internal/config"
	"clubhub/internal/domain"
	"clubhub/internal/repository"
	"clubhub/internal/service/email"
)

type Service interface {
	Register(ctx context.Context, input domain.RegisterMemberInput) (*domain.Member, *domain.TokenPair, error)
	Login(ctx context.Context, input domain.LoginInput) (*domain.Member, *domain.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	ValidateAccessToken(token string) (*Claims, error)
	GetMemberByID(ctx context.Context, id uuid.UUID) (*domain.Member, error)
}

type Claims struct {
	MemberID uuid.UUID `json:"member_id"`
	Email    string    `json:"email"`
	jwt.RegisteredClaims
}

type service struct {
	memberRepo repository.MemberRepository
	emailSvc   email.Service
	redis      *redis.Client
	cfg        *config.Config
}

func NewService(memberRepo repository.MemberRepository, emailSvc email.Service, redis *redis.Client, cfg *config.Config) Service {
	return &service{
		memberRepo: memberRepo,
		emailSvc:   emailSvc,
		redis:      redis,
		cfg:        cfg,
	}
}

func (s *service) Register(ctx context.Context, input domain.RegisterMemberInput) (*domain.Member, *domain.TokenPair, error) {
	exists, err := s.memberRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, domain.ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	member := &domain.Member{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Role:         domain.RoleMember,
		BranchID:     input.BranchID,
		IsActive:     true,
		IsApproved:   false,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, nil, err
	}

	if s.emailSvc != nil {
		go func(toEmail, firstName string) {
			ctx := context.Background()
			if err := s.emailSvc.SendWelcomeEmail(ctx, toEmail, firstName); err != nil {
				log.Printf("Failed to send welcome email to %s: %v", toEmail, err)
			}
		}(member.Email, member.FirstName)
	}

	tokens, err := s.generateTokenPair(member)
	if err != nil {
		return nil, nil, err
	}

	return member, tokens, nil
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.Member, *domain.TokenPair, error) {
	member, err := s.memberRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, domain.ErrUnauthenticated
	}

	if !member.IsActive {
		return nil, nil, domain.ErrUnauthenticated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, domain.ErrUnauthenticated
	}

	tokens, err := s.generateTokenPair(member)
	if err != nil {
		return nil, nil, err
	}

	return member, tokens, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	if s.redis != nil {
		revoked, _ := s.redis.Exists(ctx, revokedKey(claims.ID)).Result()
		if revoked > 0 {
			return nil, domain.ErrUnauthenticated
		}
	}

	member, err := s.memberRepo.GetByID(ctx, claims.MemberID)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	if !member.IsActive {
		return nil, domain.ErrUnauthenticated
	}

	// Rotate: revoke the presented refresh token before issuing new ones.
	if s.redis != nil && claims.ID != "" {
		ttl := time.Until(claims.ExpiresAt.Time)
		if ttl > 0 {
			_ = s.redis.Set(ctx, revokedKey(claims.ID), "1", ttl).Err()
		}
	}

	return s.generateTokenPair(member)
}

func (s *service) ValidateAccessToken(token string) (*Claims, error) {
	return s.parseToken(token)
}

func (s *service) GetMemberByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	return s.memberRepo.GetByID(ctx, id)
}

func (s *service) generateTokenPair(member *domain.Member) (*domain.TokenPair, error) {
	now := time.Now()

	accessClaims := Claims{
		MemberID: member.ID,
		Email:    member.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   member.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTAccessExpiry)),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	refreshClaims := Claims{
		MemberID: member.ID,
		Email:    member.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   member.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTRefreshExpiry)),
		},
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.cfg.JWTAccessExpiry.Seconds()),
	}, nil
}

func (s *service) parseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrUnauthenticated
	}

	return claims, nil
}

func revokedKey(tokenID string) string {
	return "auth:revoked:" + tokenID
}
