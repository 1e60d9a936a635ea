package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"interim-system/internal/entities"
)

type ReportRepositoryInterface interface {
	GetReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, uint64, error)
}

type ReportRepository struct {
	storage Querier
	logger  *zap.Logger
}

func NewReportRepository(storage *pgxpool.Pool, logger *zap.Logger) ReportRepositoryInterface {
	return &ReportRepository{storage: storage, logger: logger}
}

func reportConditions(b sq.SelectBuilder, filter entities.ReportFilter) sq.SelectBuilder {
	if filter.DateFrom != nil {
		b = b.Where(sq.GtOrEq{"cm.date_debut": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		b = b.Where(sq.LtOrEq{"cm.date_debut": *filter.DateTo})
	}
	if len(filter.Statuses) > 0 {
		b = b.Where(sq.Eq{"cm.status": filter.Statuses})
	}
	if len(filter.AgenceIDs) > 0 {
		b = b.Where(sq.Eq{"cm.agence_id": filter.AgenceIDs})
	}
	return b
}

func (r *ReportRepository) GetReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := reportConditions(
		psql.Select("COUNT(cm.id)").From(commandeTable+" AS cm"),
		filter,
	)
	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, translateError(err)
	}
	if total == 0 {
		return []entities.ReportItem{}, 0, nil
	}

	builder := psql.Select(
		"cm.id", "cl.nom_etablissement", "cl.ville",
		"a.nom", "a.code", "q.nom",
		"NULLIF(TRIM(COALESCE(i.nom, '') || ' ' || COALESCE(i.prenom, '')), '')",
		"cm.date_debut", "cm.date_fin", "cm.horaire_debut", "cm.horaire_fin",
		"cm.status", "cm.motif_annulation", "cm.notes", "cm.created_at",
	).From(commandeTable + " AS cm").
		Join("clients cl ON cm.client_id = cl.id").
		LeftJoin("agences a ON cm.agence_id = a.id").
		LeftJoin("qualifications q ON cm.qualification_id = q.id").
		LeftJoin("interimaires i ON cm.interimaire_id = i.id").
		OrderBy("cm.date_debut DESC", "cm.created_at DESC")

	builder = reportConditions(builder, filter)

	if filter.PerPage > 0 {
		builder = builder.Limit(uint64(filter.PerPage))
		if filter.Page > 1 {
			builder = builder.Offset(uint64((filter.Page - 1) * filter.PerPage))
		}
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translateError(err)
	}
	defer rows.Close()

	items := make([]entities.ReportItem, 0, filter.PerPage)
	for rows.Next() {
		var it entities.ReportItem
		err := rows.Scan(
			&it.CommandeID, &it.ClientNom, &it.ClientVille,
			&it.AgenceNom, &it.AgenceCode, &it.QualificationNom,
			&it.InterimaireNom,
			&it.DateDebut, &it.DateFin, &it.HoraireDebut, &it.HoraireFin,
			&it.Status, &it.MotifAnnulation, &it.Notes, &it.CreatedAt,
		)
		if err != nil {
			return nil, 0, translateError(err)
		}
		items = append(items, it)
	}

	return items, total, nil
}
