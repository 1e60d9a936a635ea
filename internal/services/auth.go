package services

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"interim-system/internal/dto"
	"interim-system/internal/repositories"
	apperrors "interim-system/pkg/errors"
	"interim-system/pkg/service"
	"interim-system/pkg/utils"
)

const (
	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
)

type AuthService struct {
	utilisateurRepo repositories.UtilisateurRepositoryInterface
	jwtService      service.JWTService
	cacheRepo       repositories.CacheRepositoryInterface
	logger          *zap.Logger
}

func NewAuthService(
	utilisateurRepo repositories.UtilisateurRepositoryInterface,
	jwtService service.JWTService,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		utilisateurRepo: utilisateurRepo,
		jwtService:      jwtService,
		cacheRepo:       cacheRepo,
		logger:          logger,
	}
}

// Login vérifie le mot de passe et émet une paire de jetons. L'échec
// reste volontairement opaque : même réponse pour email inconnu et
// mot de passe faux.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	email := utils.NormalizeLower(payload.Email)
	attemptsKey := "login_attempts:" + email

	if s.cacheRepo != nil {
		if raw, err := s.cacheRepo.Get(ctx, attemptsKey); err == nil {
			if attempts, _ := strconv.Atoi(raw); attempts >= maxLoginAttempts {
				return nil, apperrors.NewHttpError(http.StatusTooManyRequests,
					"Trop de tentatives de connexion. Réessayez dans quelques minutes.", nil, nil)
			}
		}
	}

	user, err := s.utilisateurRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.recordFailedAttempt(ctx, attemptsKey)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		s.recordFailedAttempt(ctx, attemptsKey)
		return nil, apperrors.ErrInvalidCredentials
	}

	if s.cacheRepo != nil {
		s.cacheRepo.Del(ctx, attemptsKey)
	}

	access, refresh, err := s.jwtService.GenerateTokens(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Connexion réussie", zap.String("user_id", user.ID))
	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) recordFailedAttempt(ctx context.Context, key string) {
	if s.cacheRepo == nil {
		return
	}
	attempts, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		s.logger.Debug("Compteur de tentatives indisponible", zap.Error(err))
		return
	}
	if attempts == 1 {
		s.cacheRepo.Expire(ctx, key, lockoutDuration)
	}
}

func (s *AuthService) RefreshToken(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	// L'utilisateur doit encore exister.
	if _, err := s.utilisateurRepo.FindByID(ctx, claims.UserID); err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	access, refresh, err := s.jwtService.GenerateTokens(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*dto.UtilisateurDTO, error) {
	user, err := s.utilisateurRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return utilisateurToDTO(user), nil
}
