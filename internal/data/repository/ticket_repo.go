package repository

import (
	"context"
	"errors"
	"fmt"

	"event-tickets/internal/data/entity"
	"event-tickets/pkg/database"
	"event-tickets/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TicketStats are the dashboard counters
type TicketStats struct {
	Total   int64
	Paid    int64
	Pending int64
	Used    int64
}

type TicketRepository interface {
	// InsertOrGetByPhone inserts the ticket, or returns the existing
	// row when the phone already has one. The UNIQUE constraint on
	// phone makes this atomic against concurrent creations.
	InsertOrGetByPhone(ctx context.Context, ticket *entity.Ticket) (*entity.Ticket, bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	FindByPhone(ctx context.Context, phone string) (*entity.Ticket, error)
	FindAll(ctx context.Context) ([]*entity.Ticket, error)
	Search(ctx context.Context, query string) ([]*entity.Ticket, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) (*entity.Ticket, error)
	UpdateUsed(ctx context.Context, id uuid.UUID, used bool) (*entity.Ticket, error)
	CountStats(ctx context.Context) (*TicketStats, error)
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

const ticketColumns = `id, name, phone, quantity, total_amount, payment_status, used, created_at, updated_at`

func scanTicket(row pgx.Row) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.Name,
		&ticket.Phone,
		&ticket.Quantity,
		&ticket.TotalAmount,
		&ticket.PaymentStatus,
		&ticket.Used,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) InsertOrGetByPhone(ctx context.Context, ticket *entity.Ticket) (*entity.Ticket, bool, error) {
	query := `
		INSERT INTO tickets (id, name, phone, quantity, total_amount, payment_status, used, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (phone) DO NOTHING
		RETURNING ` + ticketColumns

	inserted, err := scanTicket(r.db.QueryRow(ctx, query,
		ticket.ID,
		ticket.Name,
		ticket.Phone,
		ticket.Quantity,
		ticket.TotalAmount,
		ticket.PaymentStatus,
		ticket.Used,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	))

	if err == nil {
		return inserted, true, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		r.log.Error("Failed to insert ticket",
			zap.Error(err),
			zap.String("phone", ticket.Phone),
		)
		return nil, false, fmt.Errorf("insert ticket for %s: %w", ticket.Phone, err)
	}

	// Conflict: a ticket for this phone already exists, hand it back
	existing, err := r.FindByPhone(ctx, ticket.Phone)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		// Row vanished between the conflict and the lookup. No delete
		// path exists, so treat it as a storage fault.
		return nil, false, fmt.Errorf("ticket for %s disappeared after conflict", ticket.Phone)
	}

	return existing, false, nil
}

func (r *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := scanTicket(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ticket by ID",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return nil, fmt.Errorf("find ticket by ID %s: %w", id.String(), err)
	}

	return ticket, nil
}

func (r *ticketRepository) FindByPhone(ctx context.Context, phone string) (*entity.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE phone = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	ticket, err := scanTicket(r.db.QueryRow(ctx, query, phone))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ticket by phone",
			zap.Error(err),
			zap.String("phone", phone),
		)
		return nil, fmt.Errorf("find ticket by phone %s: %w", phone, err)
	}

	return ticket, nil
}

func (r *ticketRepository) FindAll(ctx context.Context) ([]*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all tickets", zap.Error(err))
		return nil, fmt.Errorf("find all tickets: %w", err)
	}
	defer rows.Close()

	return collectTickets(rows)
}

func (r *ticketRepository) Search(ctx context.Context, query string) ([]*entity.Ticket, error) {
	sql := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE name ILIKE $1 OR phone ILIKE $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, sql, "%"+query+"%")
	if err != nil {
		r.log.Error("Failed to search tickets",
			zap.Error(err),
			zap.String("query", query),
		)
		return nil, fmt.Errorf("search tickets %q: %w", query, err)
	}
	defer rows.Close()

	return collectTickets(rows)
}

func collectTickets(rows pgx.Rows) ([]*entity.Ticket, error) {
	var tickets []*entity.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ticket rows: %w", err)
	}

	return tickets, nil
}

func (r *ticketRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) (*entity.Ticket, error) {
	query := `
		UPDATE tickets
		SET payment_status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + ticketColumns

	ticket, err := scanTicket(r.db.QueryRow(ctx, query, id, status))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("ticket %s: %w", id.String(), errs.ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to update payment status",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("update ticket %s payment status to %s: %w", id.String(), string(status), err)
	}

	return ticket, nil
}

func (r *ticketRepository) UpdateUsed(ctx context.Context, id uuid.UUID, used bool) (*entity.Ticket, error) {
	query := `
		UPDATE tickets
		SET used = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + ticketColumns

	ticket, err := scanTicket(r.db.QueryRow(ctx, query, id, used))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("ticket %s: %w", id.String(), errs.ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to update used flag",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
			zap.Bool("used", used),
		)
		return nil, fmt.Errorf("update ticket %s used to %t: %w", id.String(), used, err)
	}

	return ticket, nil
}

func (r *ticketRepository) CountStats(ctx context.Context) (*TicketStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE payment_status = 'confirmed'),
		       COUNT(*) FILTER (WHERE payment_status = 'pending'),
		       COUNT(*) FILTER (WHERE used)
		FROM tickets
	`

	var stats TicketStats
	err := r.db.QueryRow(ctx, query).Scan(&stats.Total, &stats.Paid, &stats.Pending, &stats.Used)
	if err != nil {
		r.log.Error("Failed to count ticket stats", zap.Error(err))
		return nil, fmt.Errorf("count ticket stats: %w", err)
	}

	return &stats, nil
}
