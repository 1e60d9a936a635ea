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

const clientTable = "clients"

var clientMap = map[string]string{
	"id":                "c.id",
	"nom_etablissement": "c.nom_etablissement",
	"service":           "c.service",
	"code_postal":       "c.code_postal",
	"ville":             "c.ville",
	"agence_id":         "c.agence_id",
	"created_at":        "c.created_at",
	"updated_at":        "c.updated_at",
}

type ClientRepositoryInterface interface {
	GetClients(ctx context.Context, filter types.Filter) ([]entities.Client, uint64, error)
	FindClient(ctx context.Context, id string) (*entities.Client, error)
	CreateClient(ctx context.Context, client entities.Client) (string, error)
	UpdateClient(ctx context.Context, id string, client entities.Client) error
	DeleteClient(ctx context.Context, id string) error
	CountByAgence(ctx context.Context, agenceID string) (uint64, error)
}

type ClientRepository struct {
	storage Querier
	logger  *zap.Logger
}

func NewClientRepository(storage *pgxpool.Pool, logger *zap.Logger) ClientRepositoryInterface {
	return &ClientRepository{storage: storage, logger: logger}
}

var clientColumns = []string{
	"c.id", "c.nom_etablissement", "c.service", "c.adresse", "c.code_postal", "c.ville",
	"c.agence_id",
	"c.created_at", "c.updated_at",
	"COALESCE(a.id::text, '')", "COALESCE(a.nom, '')",
}

func scanClient(row pgx.Row) (*entities.Client, error) {
	var c entities.Client
	var a entities.ShortAgence

	err := row.Scan(
		&c.ID, &c.NomEtablissement, &c.Service, &c.Adresse, &c.CodePostal, &c.Ville,
		&c.AgenceID,
		&c.CreatedAt, &c.UpdatedAt,
		&a.ID, &a.Nom,
	)
	if err != nil {
		return nil, translateError(fmt.Errorf("scan client: %w", err))
	}

	if a.ID != "" {
		c.Agence = &a
	}

	return &c, nil
}

func (r *ClientRepository) GetClients(ctx context.Context, filter types.Filter) ([]entities.Client, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"c.nom_etablissement": pat},
				sq.ILike{"c.ville": pat},
				sq.ILike{"a.nom": pat},
			})
		}
		return b
	}

	joins := func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.LeftJoin("agences a ON c.agence_id = a.id")
	}

	countBuilder := applySearch(joins(psql.Select("COUNT(c.id)").From(clientTable + " AS c")))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, clientMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, translateError(err)
	}
	if total == 0 {
		return []entities.Client{}, 0, nil
	}

	baseBuilder := applySearch(joins(psql.Select(clientColumns...).From(clientTable + " AS c")))

	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("c.nom_etablissement ASC")
	}
	baseBuilder = bd.ApplyListParams(baseBuilder, filter, clientMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translateError(err)
	}
	defer rows.Close()

	clients := make([]entities.Client, 0, filter.Limit)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, 0, err
		}
		clients = append(clients, *client)
	}

	return clients, total, nil
}

func (r *ClientRepository) FindClient(ctx context.Context, id string) (*entities.Client, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	queryBuilder := psql.Select(clientColumns...).
		From(clientTable + " AS c").
		LeftJoin("agences a ON c.agence_id = a.id").
		Where(sq.Eq{"c.id": id})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}
	return scanClient(r.storage.QueryRow(ctx, query, args...))
}

func (r *ClientRepository) CreateClient(ctx context.Context, client entities.Client) (string, error) {
	query := `
		INSERT INTO clients (nom_etablissement, service, adresse, code_postal, ville, agence_id, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id
	`
	var newID string
	err := r.storage.QueryRow(ctx, query,
		client.NomEtablissement, client.Service, client.Adresse,
		client.CodePostal, client.Ville, client.AgenceID,
	).Scan(&newID)
	if err != nil {
		return "", translateError(err)
	}

	return newID, nil
}

func (r *ClientRepository) UpdateClient(ctx context.Context, id string, client entities.Client) error {
	query := `
		UPDATE clients
		SET nom_etablissement = $1, service = $2, adresse = $3, code_postal = $4,
		    ville = $5, agence_id = $6, updated_at = NOW()
		WHERE id = $7
	`
	result, err := r.storage.Exec(ctx, query,
		client.NomEtablissement, client.Service, client.Adresse,
		client.CodePostal, client.Ville, client.AgenceID, id,
	)
	if err != nil {
		return translateError(err)
	}
	if result.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows)
	}
	return nil
}

func (r *ClientRepository) DeleteClient(ctx context.Context, id string) error {
	query := `DELETE FROM clients WHERE id = $1`
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return translateError(err)
	}
	if result.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows)
	}
	return nil
}

func (r *ClientRepository) CountByAgence(ctx context.Context, agenceID string) (uint64, error) {
	var count uint64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(id) FROM clients WHERE agence_id = $1`, agenceID,
	).Scan(&count)
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}
