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
)

const utilisateurTable = "utilisateurs"

type UtilisateurRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*entities.Utilisateur, error)
	FindByEmail(ctx context.Context, email string) (*entities.Utilisateur, error)
	CreateUtilisateur(ctx context.Context, user entities.Utilisateur) (string, error)
}

type UtilisateurRepository struct {
	storage Querier
	logger  *zap.Logger
}

func NewUtilisateurRepository(storage *pgxpool.Pool, logger *zap.Logger) UtilisateurRepositoryInterface {
	return &UtilisateurRepository{storage: storage, logger: logger}
}

var utilisateurColumns = []string{
	"u.id", "u.nom", "u.prenom", "u.email", "u.telephone", "u.password", "u.agence_id",
	"u.created_at", "u.updated_at",
	"COALESCE(a.id::text, '')", "COALESCE(a.nom, '')",
}

func scanUtilisateur(row pgx.Row) (*entities.Utilisateur, error) {
	var u entities.Utilisateur
	var a entities.ShortAgence
	var agenceID sql.NullString

	err := row.Scan(
		&u.ID, &u.Nom, &u.Prenom, &u.Email, &u.Telephone, &u.Password, &agenceID,
		&u.CreatedAt, &u.UpdatedAt,
		&a.ID, &a.Nom,
	)
	if err != nil {
		return nil, translateError(fmt.Errorf("scan utilisateur: %w", err))
	}

	if agenceID.Valid {
		u.AgenceID = &agenceID.String
	}
	if a.ID != "" {
		u.Agence = &a
	}

	return &u, nil
}

func (r *UtilisateurRepository) findOne(ctx context.Context, where sq.Eq) (*entities.Utilisateur, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	queryBuilder := psql.Select(utilisateurColumns...).
		From(utilisateurTable + " AS u").
		LeftJoin("agences a ON u.agence_id = a.id").
		Where(where)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}
	return scanUtilisateur(r.storage.QueryRow(ctx, query, args...))
}

func (r *UtilisateurRepository) FindByID(ctx context.Context, id string) (*entities.Utilisateur, error) {
	return r.findOne(ctx, sq.Eq{"u.id": id})
}

func (r *UtilisateurRepository) FindByEmail(ctx context.Context, email string) (*entities.Utilisateur, error) {
	return r.findOne(ctx, sq.Eq{"u.email": email})
}

func (r *UtilisateurRepository) CreateUtilisateur(ctx context.Context, user entities.Utilisateur) (string, error) {
	query := `
		INSERT INTO utilisateurs (nom, prenom, email, telephone, password, agence_id, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id
	`
	var newID string
	err := r.storage.QueryRow(ctx, query,
		user.Nom, user.Prenom, user.Email, user.Telephone, user.Password, user.AgenceID,
	).Scan(&newID)
	if err != nil {
		return "", translateError(err)
	}

	return newID, nil
}
