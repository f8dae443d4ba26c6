// Package record implements the partnership record repository using
// PostgreSQL. The audit engine only reads; the roster service writes.
package record

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/communityops/partnerbot/internal/adapter/postgres"
	"github.com/communityops/partnerbot/internal/domain"
)

const table = "partnership_records"

var columns = []string{
	"id", "guild_id", "owner_id", "manager_id", "action_type", "raw_text",
	"declared_invite_ref", "channel_ref", "message_refs", "created_at",
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides partnership record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new record repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts one partnership record.
func (r *Repo) Create(ctx context.Context, rec domain.PartnershipRecord) (domain.PartnershipRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert(table).
		Columns(columns...).
		Values(rec.ID, rec.GuildID, rec.OwnerID, rec.ManagerID, rec.ActionType.String(),
			rec.RawText, rec.DeclaredInviteRef, rec.ChannelRef, rec.MessageRefs, rec.CreatedAt).
		ToSql()
	if err != nil {
		return domain.PartnershipRecord{}, fmt.Errorf("build insert: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return domain.PartnershipRecord{}, postgres.MapError(err, "partnership_record", rec.ID)
	}
	return rec, nil
}

// ListWindow returns one owner's CREATE records inside [from, to), ordered
// by creation time ascending.
func (r *Repo) ListWindow(ctx context.Context, guildID, ownerID string, from, to time.Time) ([]domain.PartnershipRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"guild_id":    guildID,
			"owner_id":    ownerID,
			"action_type": domain.ActionCreate.String(),
		}).
		Where(squirrel.GtOrEq{"created_at": from}).
		Where(squirrel.Lt{"created_at": to}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list records for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	var records []domain.PartnershipRecord
	for rows.Next() {
		var rec domain.PartnershipRecord
		var actionType string
		if err := rows.Scan(
			&rec.ID, &rec.GuildID, &rec.OwnerID, &rec.ManagerID, &actionType,
			&rec.RawText, &rec.DeclaredInviteRef, &rec.ChannelRef, &rec.MessageRefs, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.ActionType = domain.ActionType(actionType)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}

// ListOwners returns the distinct owners with CREATE records inside
// [from, to), ordered for deterministic runs.
func (r *Repo) ListOwners(ctx context.Context, guildID string, from, to time.Time) ([]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select("DISTINCT owner_id").
		From(table).
		Where(squirrel.Eq{
			"guild_id":    guildID,
			"action_type": domain.ActionCreate.String(),
		}).
		Where(squirrel.GtOrEq{"created_at": from}).
		Where(squirrel.Lt{"created_at": to}).
		OrderBy("owner_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var owner string
		if err := rows.Scan(&owner); err != nil {
			return nil, fmt.Errorf("scan owner: %w", err)
		}
		owners = append(owners, owner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate owners: %w", err)
	}

	return owners, nil
}
