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

const qualificationTable = "qualifications"

var qualificationMap = map[string]string{
	"id":         "q.id",
	"nom":        "q.nom",
	"acronyme":   "q.acronyme",
	"created_at": "q.created_at",
	"updated_at": "q.updated_at",
}

type QualificationRepositoryInterface interface {
	GetQualifications(ctx context.Context, filter types.Filter) ([]entities.Qualification, uint64, error)
	FindQualification(ctx context.Context, id string) (*entities.Qualification, error)
	CreateQualification(ctx context.Context, qualification entities.Qualification) (string, error)
	UpdateQualification(ctx context.Context, id string, qualification entities.Qualification) error
	DeleteQualification(ctx context.Context, id string) error
}

type QualificationRepository struct {
	storage Querier
	logger  *zap.Logger
}

func NewQualificationRepository(storage *pgxpool.Pool, logger *zap.Logger) QualificationRepositoryInterface {
	return &QualificationRepository{storage: storage, logger: logger}
}

func scanQualification(row pgx.Row) (*entities.Qualification, error) {
	var q entities.Qualification

	err := row.Scan(
		&q.ID, &q.Nom, &q.Acronyme,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, translateError(fmt.Errorf("scan qualification: %w", err))
	}

	return &q, nil
}

func (r *QualificationRepository) GetQualifications(ctx context.Context, filter types.Filter) ([]entities.Qualification, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"q.nom": pat},
				sq.ILike{"q.acronyme": pat},
			})
		}
		return b
	}

	countBuilder := applySearch(psql.Select("COUNT(q.id)").From(qualificationTable + " AS q"))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, qualificationMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, translateError(err)
	}
	if total == 0 {
		return []entities.Qualification{}, 0, nil
	}

	baseBuilder := psql.Select(
		"q.id", "q.nom", "q.acronyme",
		"q.created_at", "q.updated_at",
	).From(qualificationTable + " AS q")

	baseBuilder = applySearch(baseBuilder)

	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("q.nom ASC")
	}
	baseBuilder = bd.ApplyListParams(baseBuilder, filter, qualificationMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translateError(err)
	}
	defer rows.Close()

	qualifications := make([]entities.Qualification, 0, filter.Limit)
	for rows.Next() {
		qualification, err := scanQualification(rows)
		if err != nil {
			return nil, 0, err
		}
		qualifications = append(qualifications, *qualification)
	}

	return qualifications, total, nil
}

func (r *QualificationRepository) FindQualification(ctx context.Context, id string) (*entities.Qualification, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	queryBuilder := psql.Select(
		"q.id", "q.nom", "q.acronyme",
		"q.created_at", "q.updated_at",
	).From(qualificationTable + " AS q").Where(sq.Eq{"q.id": id})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}
	return scanQualification(r.storage.QueryRow(ctx, query, args...))
}

func (r *QualificationRepository) CreateQualification(ctx context.Context, qualification entities.Qualification) (string, error) {
	query := `
		INSERT INTO qualifications (nom, acronyme, created_at, updated_at)
		VALUES($1, $2, NOW(), NOW())
		RETURNING id
	`
	var newID string
	err := r.storage.QueryRow(ctx, query,
		qualification.Nom, qualification.Acronyme,
	).Scan(&newID)
	if err != nil {
		return "", translateError(err)
	}

	return newID, nil
}

func (r *QualificationRepository) UpdateQualification(ctx context.Context, id string, qualification entities.Qualification) error {
	query := `
		UPDATE qualifications
		SET nom = $1, acronyme = $2, updated_at = NOW()
		WHERE id = $3
	`
	result, err := r.storage.Exec(ctx, query,
		qualification.Nom, qualification.Acronyme, id,
	)
	if err != nil {
		return translateError(err)
	}
	if result.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows)
	}
	return nil
}

func (r *QualificationRepository) DeleteQualification(ctx context.Context, id string) error {
	query := `DELETE FROM qualifications WHERE id = $1`
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return translateError(err)
	}
	if result.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows)
	}
	return nil
}
