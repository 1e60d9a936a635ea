package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"interim-system/internal/dto"
	"interim-system/internal/entities"
	apperrors "interim-system/pkg/errors"
	"interim-system/pkg/service"
)

type fakeUtilisateurRepo struct {
	users map[string]entities.Utilisateur
}

func newFakeUtilisateurRepo() *fakeUtilisateurRepo {
	return &fakeUtilisateurRepo{users: make(map[string]entities.Utilisateur)}
}

func (r *fakeUtilisateurRepo) FindByID(_ context.Context, id string) (*entities.Utilisateur, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUtilisateurRepo) FindByEmail(_ context.Context, email string) (*entities.Utilisateur, error) {
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUtilisateurRepo) CreateUtilisateur(_ context.Context, user entities.Utilisateur) (string, error) {
	r.users[user.ID] = user
	return user.ID, nil
}

// fakeCacheRepo simule Redis : compteurs et valeurs en mémoire,
// les expirations sont notées mais jamais déclenchées.
type fakeCacheRepo struct {
	values  map[string]string
	expires map[string]time.Duration
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{values: make(map[string]string), expires: make(map[string]time.Duration)}
}

func (r *fakeCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	switch v := value.(type) {
	case string:
		r.values[key] = v
	case []byte:
		r.values[key] = string(v)
	}
	return nil
}

func (r *fakeCacheRepo) Get(_ context.Context, key string) (string, error) {
	v, ok := r.values[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return v, nil
}

func (r *fakeCacheRepo) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(r.values, k)
	}
	return nil
}

func (r *fakeCacheRepo) Incr(_ context.Context, key string) (int64, error) {
	n, _ := strconv.ParseInt(r.values[key], 10, 64)
	n++
	r.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (r *fakeCacheRepo) Expire(_ context.Context, key string, ttl time.Duration) error {
	r.expires[key] = ttl
	return nil
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeUtilisateurRepo, *fakeCacheRepo) {
	t.Helper()

	users := newFakeUtilisateurRepo()
	cacheRepo := newFakeCacheRepo()
	jwtSvc := service.NewJWTService("secret-de-test", time.Hour, 24*time.Hour)
	svc := NewAuthService(users, jwtSvc, cacheRepo, zap.NewNop())

	hash, err := bcrypt.GenerateFromPassword([]byte("MotDePasse1!"), bcrypt.MinCost)
	require.NoError(t, err)
	users.users["u1"] = entities.Utilisateur{
		ID:       "u1",
		Nom:      "ADMIN",
		Prenom:   "Console",
		Email:    "admin@interim-system.fr",
		Password: string(hash),
	}
	return svc, users, cacheRepo
}

func TestLoginEmetUnePaireDeJetons(t *testing.T) {
	svc, _, cacheRepo := newAuthFixture(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, dto.LoginDTO{
		Email:    "  Admin@Interim-System.FR ",
		Password: "MotDePasse1!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	// Le compteur de tentatives est purgé après un succès.
	_, err = cacheRepo.Get(ctx, "login_attempts:admin@interim-system.fr")
	assert.Error(t, err)
}

func TestLoginEchecOpaque(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, errInconnu := svc.Login(ctx, dto.LoginDTO{Email: "personne@exemple.fr", Password: "xxxxxx"})
	_, errMauvais := svc.Login(ctx, dto.LoginDTO{Email: "admin@interim-system.fr", Password: "faux-mdp"})

	assert.ErrorIs(t, errInconnu, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errMauvais, apperrors.ErrInvalidCredentials)
}

func TestLoginVerrouilleApresCinqEchecs(t *testing.T) {
	svc, _, cacheRepo := newAuthFixture(t)
	ctx := context.Background()

	for i := 0; i < maxLoginAttempts; i++ {
		_, err := svc.Login(ctx, dto.LoginDTO{Email: "admin@interim-system.fr", Password: "faux-mdp"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}
	// L'expiration du compteur est posée à la première tentative.
	assert.Equal(t, lockoutDuration, cacheRepo.expires["login_attempts:admin@interim-system.fr"])

	// Même le bon mot de passe est refusé tant que le verrou tient.
	_, err := svc.Login(ctx, dto.LoginDTO{Email: "admin@interim-system.fr", Password: "MotDePasse1!"})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 429, httpErr.Code)
}

func TestRefreshTokenExigeUnJetonDeRafraichissement(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, dto.LoginDTO{Email: "admin@interim-system.fr", Password: "MotDePasse1!"})
	require.NoError(t, err)

	// Le jeton d'accès ne peut pas servir au rafraîchissement.
	_, err = svc.RefreshToken(ctx, dto.RefreshTokenDTO{RefreshToken: pair.AccessToken})
	assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)

	fresh, err := svc.RefreshToken(ctx, dto.RefreshTokenDTO{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	// Un utilisateur supprimé ne rafraîchit plus rien.
	delete(users.users, "u1")
	_, err = svc.RefreshToken(ctx, dto.RefreshTokenDTO{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestMe(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	me, err := svc.Me(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "admin@interim-system.fr", me.Email)

	_, err = svc.Me(context.Background(), "fantome")
	assert.Error(t, err)
}
