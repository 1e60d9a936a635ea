package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"interim-system/internal/cache"
	"interim-system/internal/entities"
	"interim-system/internal/services"
	apperrors "interim-system/pkg/errors"
	"interim-system/pkg/eventbus"
	"interim-system/pkg/types"
	"interim-system/pkg/validation"
)

type stubAgenceRepo struct {
	agences map[string]entities.Agence
}

func (r *stubAgenceRepo) GetAgences(_ context.Context, _ types.Filter) ([]entities.Agence, uint64, error) {
	out := make([]entities.Agence, 0, len(r.agences))
	for _, a := range r.agences {
		out = append(out, a)
	}
	return out, uint64(len(out)), nil
}

func (r *stubAgenceRepo) FindAgence(_ context.Context, id string) (*entities.Agence, error) {
	a, ok := r.agences[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (r *stubAgenceRepo) CreateAgence(_ context.Context, agence entities.Agence) (string, error) {
	agence.ID = uuid.NewString()
	r.agences[agence.ID] = agence
	return agence.ID, nil
}

func (r *stubAgenceRepo) UpdateAgence(_ context.Context, id string, agence entities.Agence) error {
	if _, ok := r.agences[id]; !ok {
		return apperrors.ErrNotFound
	}
	agence.ID = id
	r.agences[id] = agence
	return nil
}

func (r *stubAgenceRepo) DeleteAgence(_ context.Context, id string) error {
	if _, ok := r.agences[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.agences, id)
	return nil
}

type stubGuard struct {
	decision services.Decision
}

func (g *stubGuard) CanDelete(_ context.Context, _ services.EntityKind, _ string) (services.Decision, error) {
	return g.decision, nil
}

func newAgenceRouter(guard services.GuardServiceInterface) (*echo.Echo, *stubAgenceRepo) {
	logger := zap.NewNop()
	repo := &stubAgenceRepo{agences: make(map[string]entities.Agence)}
	svc := services.NewAgenceService(repo, guard, cache.NewStore(), nil, 0, eventbus.New(logger), logger)
	ctrl := NewAgenceController(svc, 5*time.Second, logger)

	e := echo.New()
	e.Validator = validation.New()
	e.GET("/api/agences", ctrl.GetAgences)
	e.POST("/api/agences", ctrl.CreateAgence)
	e.GET("/api/agences/:id", ctrl.FindAgence)
	e.DELETE("/api/agences/:id", ctrl.DeleteAgence)
	return e, repo
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateAgenceRoute(t *testing.T) {
	e, _ := newAgenceRouter(&stubGuard{decision: services.Decision{Allowed: true}})

	rec := doJSON(e, http.MethodPost, "/api/agences",
		`{"nom": "agence nord", "code": "nrd1", "email": "Nord@Agence.fr"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Status bool `json:"status"`
		Body   struct {
			Nom   string `json:"nom"`
			Code  string `json:"code"`
			Email string `json:"email"`
		} `json:"body"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	assert.Equal(t, "AGENCE NORD", resp.Body.Nom)
	assert.Equal(t, "NRD1", resp.Body.Code)
	assert.Equal(t, "nord@agence.fr", resp.Body.Email)
}

func TestCreateAgenceRouteRejetteLeCodeTropCourt(t *testing.T) {
	e, _ := newAgenceRouter(&stubGuard{decision: services.Decision{Allowed: true}})

	// len=4 est vérifié par le validateur avant toute normalisation.
	rec := doJSON(e, http.MethodPost, "/api/agences", `{"nom": "AGENCE NORD", "code": "ND1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFindAgenceRoute(t *testing.T) {
	e, repo := newAgenceRouter(&stubGuard{decision: services.Decision{Allowed: true}})

	id := uuid.NewString()
	repo.agences[id] = entities.Agence{ID: id, Nom: "AGENCE SUD", Code: "SUD1"}

	rec := doJSON(e, http.MethodGet, "/api/agences/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Identifiant mal formé : refusé avant d'atteindre le service.
	rec = doJSON(e, http.MethodGet, "/api/agences/pas-un-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// UUID valide mais inconnu.
	rec = doJSON(e, http.MethodGet, "/api/agences/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAgenceRouteRefuseeParLaGarde(t *testing.T) {
	refus := services.Decision{Allowed: false, Reason: "Suppression impossible : l'agence est encore référencée."}
	e, repo := newAgenceRouter(&stubGuard{decision: refus})

	id := uuid.NewString()
	repo.agences[id] = entities.Agence{ID: id, Nom: "AGENCE SUD", Code: "SUD1"}

	rec := doJSON(e, http.MethodDelete, "/api/agences/"+id, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Suppression impossible")

	// L'enregistrement n'a pas bougé.
	_, ok := repo.agences[id]
	assert.True(t, ok)
}
