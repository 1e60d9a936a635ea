package repositories

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"interim-system/internal/entities"
	"interim-system/internal/infrastructure/bd"
	"interim-system/pkg/types"
	"interim-system/pkg/utils"
)

const interimaireTable = "interimaires"

var interimaireMap = map[string]string{
	"id":               "i.id",
	"nom":              "i.nom",
	"prenom":           "i.prenom",
	"vehicule":         "i.vehicule",
	"disponibilite":    "i.disponibilite",
	"qualification_id": "i.qualification_id",
	"agence_id":        "i.agence_id",
	"created_at":       "i.created_at",
	"updated_at":       "i.updated_at",
}

type InterimaireRepositoryInterface interface {
	GetInterimaires(ctx context.Context, filter types.Filter) ([]entities.Interimaire, uint64, error)
	FindInterimaire(ctx context.Context, id string) (*entities.Interimaire, error)
	CreateInterimaire(ctx context.Context, interimaire entities.Interimaire) (string, error)
	UpdateInterimaire(ctx context.Context, id string, interimaire entities.Interimaire) error
	UpdateDisponibilite(ctx context.Context, id string, disponibilite string) error
	DeleteInterimaire(ctx context.Context, id string) error
	CountByAgence(ctx context.Context, agenceID string) (uint64, error)
	CountByQualification(ctx context.Context, qualificationID string) (uint64, error)
}

type InterimaireRepository struct {
	storage Querier
	logger  *zap.Logger
}

func NewInterimaireRepository(storage *pgxpool.Pool, logger *zap.Logger) InterimaireRepositoryInterface {
	return &InterimaireRepository{storage: storage, logger: logger}
}

// Colonnes des jointures incluses : la projection de liste et de détail
// embarque les libellés de la qualification et de l'agence.
var interimaireColumns = []string{
	"i.id", "i.nom", "i.prenom", "i.adresse", "i.vehicule", "i.disponibilite",
	"i.qualification_id", "i.agence_id",
	"i.created_at", "i.updated_at",
	"COALESCE(q.id::text, '')", "COALESCE(q.nom, '')",
	"COALESCE(a.id::text, '')", "COALESCE(a.nom, '')",
}

func scanInterimaire(row pgx.Row) (*entities.Interimaire, error) {
	var i entities.Interimaire
	var q entities.ShortQualification
	var a entities.ShortAgence
	var adresse sql.NullString

	err := row.Scan(
		&i.ID, &i.Nom, &i.Prenom, &adresse, &i.Vehicule, &i.Disponibilite,
		&i.QualificationID, &i.AgenceID,
		&i.CreatedAt, &i.UpdatedAt,
		&q.ID, &q.Nom,
		&a.ID, &a.Nom,
	)
	if err != nil {
		return nil, translateError(fmt.Errorf("scan interimaire: %w", err))
	}

	i.Adresse = utils.NullStringToStrPtr(adresse)
	if q.ID != "" {
		i.Qualification = &q
	}
	if a.ID != "" {
		i.Agence = &a
	}

	return &i, nil
}

func (r *InterimaireRepository) GetInterimaires(ctx context.Context, filter types.Filter) ([]entities.Interimaire, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	// La recherche couvre aussi les libellés joints (qualification, agence).
	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"i.nom": pat},
				sq.ILike{"i.prenom": pat},
				sq.ILike{"q.nom": pat},
				sq.ILike{"a.nom": pat},
			})
		}
		return b
	}

	joins := func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.
			LeftJoin("qualifications q ON i.qualification_id = q.id").
			LeftJoin("agences a ON i.agence_id = a.id")
	}

	countBuilder := applySearch(joins(psql.Select("COUNT(i.id)").From(interimaireTable + " AS i")))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, interimaireMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, translateError(err)
	}
	if total == 0 {
		return []entities.Interimaire{}, 0, nil
	}

	baseBuilder := applySearch(joins(psql.Select(interimaireColumns...).From(interimaireTable + " AS i")))

	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("i.nom ASC")
	}
	baseBuilder = bd.ApplyListParams(baseBuilder, filter, interimaireMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translateError(err)
	}
	defer rows.Close()

	interimaires := make([]entities.Interimaire, 0, filter.Limit)
	for rows.Next() {
		interimaire, err := scanInterimaire(rows)
		if err != nil {
			return nil, 0, err
		}
		interimaires = append(interimaires, *interimaire)
	}

	return interimaires, total, nil
}

func (r *InterimaireRepository) FindInterimaire(ctx context.Context, id string) (*entities.Interimaire, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	queryBuilder := psql.Select(interimaireColumns...).
		From(interimaireTable + " AS i").
		LeftJoin("qualifications q ON i.qualification_id = q.id").
		LeftJoin("agences a ON i.agence_id = a.id").
		Where(sq.Eq{"i.id": id})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}
	return scanInterimaire(r.storage.QueryRow(ctx, query, args...))
}

func (r *InterimaireRepository) CreateInterimaire(ctx context.Context, interimaire entities.Interimaire) (string, error) {
	query := `
		INSERT INTO interimaires (nom, prenom, adresse, vehicule, disponibilite, qualification_id, agence_id, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id
	`
	var newID string
	err := r.storage.QueryRow(ctx, query,
		interimaire.Nom, interimaire.Prenom, interimaire.Adresse,
		interimaire.Vehicule, interimaire.Disponibilite,
		interimaire.QualificationID, interimaire.AgenceID,
	).Scan(&newID)
	if err != nil {
		return "", translateError(err)
	}

	return newID, nil
}

func (r *InterimaireRepository) UpdateInterimaire(ctx context.Context, id string, interimaire entities.Interimaire) error {
	query := `
		UPDATE interimaires
		SET nom = $1, prenom = $2, adresse = $3, vehicule = $4, disponibilite = $5,
		    qualification_id = $6, agence_id = $7, updated_at = NOW()
		WHERE id = $8
	`
	result, err := r.storage.Exec(ctx, query,
		interimaire.Nom, interimaire.Prenom, interimaire.Adresse,
		interimaire.Vehicule, interimaire.Disponibilite,
		interimaire.QualificationID, interimaire.AgenceID, id,
	)
	if err != nil {
		return translateError(err)
	}
	if result.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows)
	}
	return nil
}

func (r *InterimaireRepository) UpdateDisponibilite(ctx context.Context, id string, disponibilite string) error {
	query := `UPDATE interimaires SET disponibilite = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.storage.Exec(ctx, query, disponibilite, id)
	if err != nil {
		return translateError(err)
	}
	if result.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows)
	}
	return nil
}

func (r *InterimaireRepository) DeleteInterimaire(ctx context.Context, id string) error {
	query := `DELETE FROM interimaires WHERE id = $1`
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return translateError(err)
	}
	if result.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows)
	}
	return nil
}

func (r *InterimaireRepository) CountByAgence(ctx context.Context, agenceID string) (uint64, error) {
	var count uint64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(id) FROM interimaires WHERE agence_id = $1`, agenceID,
	).Scan(&count)
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

func (r *InterimaireRepository) CountByQualification(ctx context.Context, qualificationID string) (uint64, error) {
	var count uint64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(id) FROM interimaires WHERE qualification_id = $1`, qualificationID,
	).Scan(&count)
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}
