package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/huddle/internal/community/domain"
	"github.com/aussiebroadwan/huddle/internal/community/store"
)

type invitationsRepo struct {
	q querier
}

const invitationColumns = `id, community_id, email, token_hash, status, invited_by,
	accepted_by, accepted_at, expiration_date, created_at, updated_at`

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO invitations
		   (id, community_id, email, token_hash, status, invited_by, expiration_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.CommunityID, inv.Email, inv.TokenHash, string(inv.Status),
		inv.InvitedBy, inv.ExpirationDate.UTC(), inv.CreatedAt.UTC(), inv.UpdatedAt.UTC())
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE id = ?`, id)
	return scanInvitation(row)
}

func (r *invitationsRepo) GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE token_hash = ?`, hash)
	return scanInvitation(row)
}

func (r *invitationsRepo) GetPendingInvitation(ctx context.Context, communityID, email string) (domain.Invitation, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations
		 WHERE community_id = ? AND email = ? AND status = 'pending'`,
		communityID, email)
	return scanInvitation(row)
}

func (r *invitationsRepo) ListInvitations(ctx context.Context, communityID string) ([]domain.Invitation, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations
		 WHERE community_id = ?
		 ORDER BY created_at DESC, id DESC`,
		communityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitationFrom(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

func (r *invitationsRepo) MarkAccepted(ctx context.Context, id, acceptedBy string, acceptedAt time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE invitations
		 SET status = 'accepted', accepted_by = ?, accepted_at = ?, updated_at = ?
		 WHERE id = ? AND status = 'pending'`,
		acceptedBy, acceptedAt.UTC(), acceptedAt.UTC(), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *invitationsRepo) MarkStatus(ctx context.Context, id string, status domain.InvitationStatus) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE invitations
		 SET status = ?, updated_at = ?
		 WHERE id = ? AND status = 'pending'`,
		string(status), time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// requireAffected maps a zero-row conditional update to ErrNotFound. A
// guarded "WHERE status = 'pending'" update that touched nothing means the
// invitation already left the pending state under us.
func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanInvitation(row *sql.Row) (domain.Invitation, error) {
	inv, err := scanInvitationFrom(row)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func scanInvitationFrom(s rowScanner) (domain.Invitation, error) {
	var (
		inv        domain.Invitation
		status     string
		acceptedBy sql.NullString
		acceptedAt sql.NullTime
	)
	err := s.Scan(&inv.ID, &inv.CommunityID, &inv.Email, &inv.TokenHash, &status,
		&inv.InvitedBy, &acceptedBy, &acceptedAt, &inv.ExpirationDate,
		&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return domain.Invitation{}, err
	}
	inv.Status = domain.InvitationStatus(status)
	inv.AcceptedBy = mapNullStringPtr(acceptedBy)
	inv.AcceptedAt = mapNullTimePtr(acceptedAt)
	return inv, nil
}
