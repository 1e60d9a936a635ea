package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"interim-system/internal/entities"
	"interim-system/internal/infrastructure/bd"
	"interim-system/pkg/types"
)

const agenceTable = "agences"

// Carte des champs exposés (filtre + tri).
var agenceMap = map[string]string{
	"id":         "a.id",
	"nom":        "a.nom",
	"code":       "a.code",
	"telephone":  "a.telephone",
	"email":      "a.email",
	"created_at": "a.created_at",
	"updated_at": "a.updated_at",
}

type AgenceRepositoryInterface interface {
	GetAgences(ctx context.Context, filter types.Filter) ([]entities.Agence, uint64, error)
	FindAgence(ctx context.Context, id string) (*entities.Agence, error)
	CreateAgence(ctx context.Context, agence entities.Agence) (string, error)
	UpdateAgence(ctx context.Context, id string, agence entities.Agence) error
	DeleteAgence(ctx context.Context, id string) error
}

type AgenceRepository struct {
	storage Querier
	logger  *zap.Logger
}

func NewAgenceRepository(storage *pgxpool.Pool, logger *zap.Logger) AgenceRepositoryInterface {
	return &AgenceRepository{storage: storage, logger: logger}
}

func scanAgence(row pgx.Row) (*entities.Agence, error) {
	var a entities.Agence

	err := row.Scan(
		&a.ID, &a.Nom, &a.Code, &a.Telephone, &a.Email,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, translateError(fmt.Errorf("scan agence: %w", err))
	}

	return &a, nil
}

func (r *AgenceRepository) GetAgences(ctx context.Context, filter types.Filter) ([]entities.Agence, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"a.nom": pat},
				sq.ILike{"a.code": pat},
			})
		}
		return b
	}

	countBuilder := applySearch(psql.Select("COUNT(a.id)").From(agenceTable + " AS a"))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, agenceMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, translateError(err)
	}
	if total == 0 {
		return []entities.Agence{}, 0, nil
	}

	baseBuilder := psql.Select(
		"a.id", "a.nom", "a.code", "a.telephone", "a.email",
		"a.created_at", "a.updated_at",
	).From(agenceTable + " AS a")

	baseBuilder = applySearch(baseBuilder)

	// Tri par défaut : nom d'affichage ascendant.
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("a.nom ASC")
	}
	baseBuilder = bd.ApplyListParams(baseBuilder, filter, agenceMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translateError(err)
	}
	defer rows.Close()

	agences := make([]entities.Agence, 0, filter.Limit)
	for rows.Next() {
		agence, err := scanAgence(rows)
		if err != nil {
			return nil, 0, err
		}
		agences = append(agences, *agence)
	}

	return agences, total, nil
}

func (r *AgenceRepository) FindAgence(ctx context.Context, id string) (*entities.Agence, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	queryBuilder := psql.Select(
		"a.id", "a.nom", "a.code", "a.telephone", "a.email",
		"a.created_at", "a.updated_at",
	).From(agenceTable + " AS a").Where(sq.Eq{"a.id": id})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}
	return scanAgence(r.storage.QueryRow(ctx, query, args...))
}

func (r *AgenceRepository) CreateAgence(ctx context.Context, agence entities.Agence) (string, error) {
	query := `
		INSERT INTO agences (nom, code, telephone, email, created_at, updated_at)
		VALUES($1, $2, $3, $4, NOW(), NOW())
		RETURNING id
	`
	var newID string
	err := r.storage.QueryRow(ctx, query,
		agence.Nom, agence.Code, agence.Telephone, agence.Email,
	).Scan(&newID)
	if err != nil {
		return "", translateError(err)
	}

	return newID, nil
}

func (r *AgenceRepository) UpdateAgence(ctx context.Context, id string, agence entities.Agence) error {
	query := `
		UPDATE agences
		SET nom = $1, code = $2, telephone = $3, email = $4, updated_at = NOW()
		WHERE id = $5
	`
	result, err := r.storage.Exec(ctx, query,
		agence.Nom, agence.Code, agence.Telephone, agence.Email, id,
	)
	if err != nil {
		return translateError(err)
	}
	if result.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows)
	}
	return nil
}

func (r *AgenceRepository) DeleteAgence(ctx context.Context, id string) error {
	query := `DELETE FROM agences WHERE id = $1`
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return translateError(err)
	}
	if result.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows)
	}
	return nil
}
