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
	"interim-system/pkg/constants"
	"interim-system/pkg/types"
	"interim-system/pkg/utils"
)

const commandeTable = "commandes"

var commandeMap = map[string]string{
	"id":               "cm.id",
	"status":           "cm.status",
	"client_id":        "cm.client_id",
	"qualification_id": "cm.qualification_id",
	"agence_id":        "cm.agence_id",
	"interimaire_id":   "cm.interimaire_id",
	"date_debut":       "cm.date_debut",
	"date_fin":         "cm.date_fin",
	"created_at":       "cm.created_at",
	"updated_at":       "cm.updated_at",
}

type CommandeRepositoryInterface interface {
	GetCommandes(ctx context.Context, filter types.Filter) ([]entities.Commande, uint64, error)
	FindCommande(ctx context.Context, id string) (*entities.Commande, error)
	CreateCommande(ctx context.Context, commande entities.Commande) (string, error)
	UpdateCommande(ctx context.Context, id string, commande entities.Commande) error
	UpdateStatus(ctx context.Context, id string, status string, motif *string) error
	DeleteCommande(ctx context.Context, id string) error
	CountActiveByInterimaire(ctx context.Context, interimaireID string) (uint64, error)
	CountActiveByClient(ctx context.Context, clientID string) (uint64, error)
	CountByAgence(ctx context.Context, agenceID string) (uint64, error)
	CountByQualification(ctx context.Context, qualificationID string) (uint64, error)
}

type CommandeRepository struct {
	storage Querier
	logger  *zap.Logger
}

func NewCommandeRepository(storage *pgxpool.Pool, logger *zap.Logger) CommandeRepositoryInterface {
	return &CommandeRepository{storage: storage, logger: logger}
}

var commandeColumns = []string{
	"cm.id", "cm.client_id", "cm.qualification_id", "cm.agence_id", "cm.interimaire_id",
	"cm.date_debut", "cm.date_fin", "cm.horaire_debut", "cm.horaire_fin",
	"cm.status", "cm.motif_annulation", "cm.notes",
	"cm.created_at", "cm.updated_at",
	"COALESCE(cl.id::text, '')", "COALESCE(cl.nom_etablissement, '')",
	"COALESCE(q.id::text, '')", "COALESCE(q.nom, '')",
	"COALESCE(a.id::text, '')", "COALESCE(a.nom, '')",
	"COALESCE(i.id::text, '')", "COALESCE(i.nom, '')", "COALESCE(i.prenom, '')",
}

func scanCommande(row pgx.Row) (*entities.Commande, error) {
	var cm entities.Commande
	var cl entities.ShortClient
	var q entities.ShortQualification
	var a entities.ShortAgence
	var i entities.ShortInterimaire
	var interimaireID, horaireDebut, horaireFin, motif, notes sql.NullString

	err := row.Scan(
		&cm.ID, &cm.ClientID, &cm.QualificationID, &cm.AgenceID, &interimaireID,
		&cm.DateDebut, &cm.DateFin, &horaireDebut, &horaireFin,
		&cm.Status, &motif, &notes,
		&cm.CreatedAt, &cm.UpdatedAt,
		&cl.ID, &cl.NomEtablissement,
		&q.ID, &q.Nom,
		&a.ID, &a.Nom,
		&i.ID, &i.Nom, &i.Prenom,
	)
	if err != nil {
		return nil, translateError(fmt.Errorf("scan commande: %w", err))
	}

	cm.InterimaireID = utils.NullStringToStrPtr(interimaireID)
	cm.HoraireDebut = utils.NullStringToStrPtr(horaireDebut)
	cm.HoraireFin = utils.NullStringToStrPtr(horaireFin)
	cm.MotifAnnulation = utils.NullStringToStrPtr(motif)
	cm.Notes = utils.NullStringToStrPtr(notes)
	if cl.ID != "" {
		cm.Client = &cl
	}
	if q.ID != "" {
		cm.Qualification = &q
	}
	if a.ID != "" {
		cm.Agence = &a
	}
	if i.ID != "" {
		cm.Interimaire = &i
	}

	return &cm, nil
}

func commandeJoins(b sq.SelectBuilder) sq.SelectBuilder {
	return b.
		LeftJoin("clients cl ON cm.client_id = cl.id").
		LeftJoin("qualifications q ON cm.qualification_id = q.id").
		LeftJoin("agences a ON cm.agence_id = a.id").
		LeftJoin("interimaires i ON cm.interimaire_id = i.id")
}

func (r *CommandeRepository) GetCommandes(ctx context.Context, filter types.Filter) ([]entities.Commande, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"cl.nom_etablissement": pat},
				sq.ILike{"q.nom": pat},
				sq.ILike{"a.nom": pat},
				sq.ILike{"i.nom": pat},
			})
		}
		return b
	}

	countBuilder := applySearch(commandeJoins(psql.Select("COUNT(cm.id)").From(commandeTable + " AS cm")))
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, commandeMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, translateError(err)
	}
	if total == 0 {
		return []entities.Commande{}, 0, nil
	}

	baseBuilder := applySearch(commandeJoins(psql.Select(commandeColumns...).From(commandeTable + " AS cm")))

	// Les commandes se listent de la plus récente à la plus ancienne.
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("cm.created_at DESC")
	}
	baseBuilder = bd.ApplyListParams(baseBuilder, filter, commandeMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translateError(err)
	}
	defer rows.Close()

	commandes := make([]entities.Commande, 0, filter.Limit)
	for rows.Next() {
		commande, err := scanCommande(rows)
		if err != nil {
			return nil, 0, err
		}
		commandes = append(commandes, *commande)
	}

	return commandes, total, nil
}

func (r *CommandeRepository) FindCommande(ctx context.Context, id string) (*entities.Commande, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	queryBuilder := commandeJoins(psql.Select(commandeColumns...).From(commandeTable + " AS cm")).
		Where(sq.Eq{"cm.id": id})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}
	return scanCommande(r.storage.QueryRow(ctx, query, args...))
}

func (r *CommandeRepository) CreateCommande(ctx context.Context, commande entities.Commande) (string, error) {
	query := `
		INSERT INTO commandes (client_id, qualification_id, agence_id, interimaire_id,
		                       date_debut, date_fin, horaire_debut, horaire_fin,
		                       status, motif_annulation, notes, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id
	`
	var newID string
	err := r.storage.QueryRow(ctx, query,
		commande.ClientID, commande.QualificationID, commande.AgenceID, commande.InterimaireID,
		commande.DateDebut, commande.DateFin, commande.HoraireDebut, commande.HoraireFin,
		commande.Status, commande.MotifAnnulation, commande.Notes,
	).Scan(&newID)
	if err != nil {
		return "", translateError(err)
	}

	return newID, nil
}

func (r *CommandeRepository) UpdateCommande(ctx context.Context, id string, commande entities.Commande) error {
	query := `
		UPDATE commandes
		SET client_id = $1, qualification_id = $2, agence_id = $3, interimaire_id = $4,
		    date_debut = $5, date_fin = $6, horaire_debut = $7, horaire_fin = $8,
		    status = $9, motif_annulation = $10, notes = $11, updated_at = NOW()
		WHERE id = $12
	`
	result, err := r.storage.Exec(ctx, query,
		commande.ClientID, commande.QualificationID, commande.AgenceID, commande.InterimaireID,
		commande.DateDebut, commande.DateFin, commande.HoraireDebut, commande.HoraireFin,
		commande.Status, commande.MotifAnnulation, commande.Notes, id,
	)
	if err != nil {
		return translateError(err)
	}
	if result.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows)
	}
	return nil
}

func (r *CommandeRepository) UpdateStatus(ctx context.Context, id string, status string, motif *string) error {
	query := `UPDATE commandes SET status = $1, motif_annulation = $2, updated_at = NOW() WHERE id = $3`
	result, err := r.storage.Exec(ctx, query, status, motif, id)
	if err != nil {
		return translateError(err)
	}
	if result.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows)
	}
	return nil
}

func (r *CommandeRepository) DeleteCommande(ctx context.Context, id string) error {
	query := `DELETE FROM commandes WHERE id = $1`
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return translateError(err)
	}
	if result.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows)
	}
	return nil
}

// CountActiveByInterimaire compte les commandes EN_ATTENTE ou SERVIE encore
// rattachées à l'intérimaire. Base de la garde référentielle.
func (r *CommandeRepository) CountActiveByInterimaire(ctx context.Context, interimaireID string) (uint64, error) {
	var count uint64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(id) FROM commandes WHERE interimaire_id = $1 AND status = ANY($2)`,
		interimaireID, constants.BlockingCommandeStatuses,
	).Scan(&count)
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

func (r *CommandeRepository) CountActiveByClient(ctx context.Context, clientID string) (uint64, error) {
	var count uint64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(id) FROM commandes WHERE client_id = $1 AND status = ANY($2)`,
		clientID, constants.BlockingCommandeStatuses,
	).Scan(&count)
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

func (r *CommandeRepository) CountByAgence(ctx context.Context, agenceID string) (uint64, error) {
	var count uint64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(id) FROM commandes WHERE agence_id = $1`, agenceID,
	).Scan(&count)
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

func (r *CommandeRepository) CountByQualification(ctx context.Context, qualificationID string) (uint64, error) {
	var count uint64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(id) FROM commandes WHERE qualification_id = $1`, qualificationID,
	).Scan(&count)
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}
