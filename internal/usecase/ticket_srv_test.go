package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"event-tickets/internal/data/entity"
	"event-tickets/internal/data/repository"
	"event-tickets/internal/dto/request"
	"event-tickets/pkg/errs"
	"event-tickets/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeTicketRepo is an in-memory TicketRepository mirroring the
// semantics of the real one: unique phone, read miss is (nil, nil),
// update miss is ErrNotFound.
type fakeTicketRepo struct {
	tickets []*entity.Ticket
}

func (f *fakeTicketRepo) InsertOrGetByPhone(_ context.Context, ticket *entity.Ticket) (*entity.Ticket, bool, error) {
	for _, t := range f.tickets {
		if t.Phone == ticket.Phone {
			return t, false, nil
		}
	}
	copied := *ticket
	f.tickets = append(f.tickets, &copied)
	return &copied, true, nil
}

func (f *fakeTicketRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Ticket, error) {
	for _, t := range f.tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTicketRepo) FindByPhone(_ context.Context, phone string) (*entity.Ticket, error) {
	for _, t := range f.tickets {
		if t.Phone == phone {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTicketRepo) FindAll(_ context.Context) ([]*entity.Ticket, error) {
	sorted := append([]*entity.Ticket(nil), f.tickets...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted, nil
}

func (f *fakeTicketRepo) Search(ctx context.Context, query string) ([]*entity.Ticket, error) {
	all, _ := f.FindAll(ctx)
	q := strings.ToLower(query)
	var matched []*entity.Ticket
	for _, t := range all {
		if strings.Contains(strings.ToLower(t.Name), q) || strings.Contains(strings.ToLower(t.Phone), q) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

func (f *fakeTicketRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) (*entity.Ticket, error) {
	ticket, _ := f.FindByID(ctx, id)
	if ticket == nil {
		return nil, fmt.Errorf("ticket %s: %w", id.String(), errs.ErrNotFound)
	}
	ticket.PaymentStatus = status
	ticket.UpdatedAt = time.Now()
	return ticket, nil
}

func (f *fakeTicketRepo) UpdateUsed(ctx context.Context, id uuid.UUID, used bool) (*entity.Ticket, error) {
	ticket, _ := f.FindByID(ctx, id)
	if ticket == nil {
		return nil, fmt.Errorf("ticket %s: %w", id.String(), errs.ErrNotFound)
	}
	ticket.Used = used
	ticket.UpdatedAt = time.Now()
	return ticket, nil
}

func (f *fakeTicketRepo) CountStats(_ context.Context) (*repository.TicketStats, error) {
	stats := &repository.TicketStats{Total: int64(len(f.tickets))}
	for _, t := range f.tickets {
		if t.PaymentStatus == entity.PaymentStatusConfirmed {
			stats.Paid++
		} else {
			stats.Pending++
		}
		if t.Used {
			stats.Used++
		}
	}
	return stats, nil
}

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{PublicBaseURL: "http://localhost:8080"},
		Ticket: utils.TicketConfig{
			UnitPrice:   decimal.NewFromInt(30),
			MaxQuantity: 6,
		},
	}
}

func newTestService(cfg *utils.Config) (TicketService, *fakeTicketRepo) {
	fake := &fakeTicketRepo{}
	repo := &repository.Repository{Ticket: fake}
	return NewTicketService(repo, cfg, zap.NewNop()), fake
}

func TestCreateTicket(t *testing.T) {
	svc, _ := newTestService(testConfig())

	ticket, created, err := svc.Create(context.Background(), &request.CreateTicketRequest{
		Name:     "Ana Silva",
		Phone:    "(11) 91234-5678",
		Quantity: 2,
	})
	require.NoError(t, err)

	assert.True(t, created)
	assert.Equal(t, "Ana Silva", ticket.Name)
	assert.Equal(t, "(11) 91234-5678", ticket.Phone)
	assert.Equal(t, 2, ticket.Quantity)
	assert.True(t, ticket.TotalAmount.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, entity.PaymentStatusPending, ticket.PaymentStatus)
	assert.False(t, ticket.Used)
	assert.Contains(t, ticket.TicketURL, ticket.ID)

	// Round trip through GetByID
	fetched, err := svc.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, fetched.ID)
	assert.Equal(t, entity.PaymentStatusPending, fetched.PaymentStatus)
}

func TestCreateTicketIdempotentPerPhone(t *testing.T) {
	svc, _ := newTestService(testConfig())

	first, created, err := svc.Create(context.Background(), &request.CreateTicketRequest{
		Name:     "Ana Silva",
		Phone:    "(11) 91234-5678",
		Quantity: 2,
	})
	require.NoError(t, err)
	require.True(t, created)

	// Different name and quantity, same phone: must return the
	// original record untouched
	second, created, err := svc.Create(context.Background(), &request.CreateTicketRequest{
		Name:     "Ana S.",
		Phone:    "(11) 91234-5678",
		Quantity: 5,
	})
	require.NoError(t, err)

	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Ana Silva", second.Name)
	assert.Equal(t, 2, second.Quantity)
	assert.True(t, second.TotalAmount.Equal(decimal.NewFromInt(60)))
}

func TestCreateTicketQuantityBounds(t *testing.T) {
	svc, _ := newTestService(testConfig())

	tests := []struct {
		name     string
		quantity int
	}{
		{"zero", 0},
		{"negative", -3},
		{"above cap", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Create(context.Background(), &request.CreateTicketRequest{
				Name:     "Ana Silva",
				Phone:    "(11) 91234-5678",
				Quantity: tt.quantity,
			})

			var validationErr *errs.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Fields, "Quantity")
		})
	}
}

func TestConfirmPaymentIdempotent(t *testing.T) {
	svc, _ := newTestService(testConfig())

	ticket, _, err := svc.Create(context.Background(), &request.CreateTicketRequest{
		Name:     "Ana Silva",
		Phone:    "(11) 91234-5678",
		Quantity: 1,
	})
	require.NoError(t, err)

	first, err := svc.ConfirmPayment(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusConfirmed, first.PaymentStatus)
	assert.Contains(t, first.WhatsAppURL, "https://wa.me/5511912345678")

	second, err := svc.ConfirmPayment(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusConfirmed, second.PaymentStatus)
	assert.Equal(t, first.ID, second.ID)
}

func TestConfirmPaymentNotFound(t *testing.T) {
	svc, _ := newTestService(testConfig())

	_, err := svc.ConfirmPayment(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestMarkUsedAndRevert(t *testing.T) {
	svc, _ := newTestService(testConfig())

	ticket, _, err := svc.Create(context.Background(), &request.CreateTicketRequest{
		Name:     "Ana Silva",
		Phone:    "(11) 91234-5678",
		Quantity: 1,
	})
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(context.Background(), ticket.ID)
	require.NoError(t, err)

	used, err := svc.MarkUsed(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.True(t, used.Used)
	assert.Equal(t, entity.PaymentStatusConfirmed, used.PaymentStatus)

	// Revert restores used without touching the payment status
	reverted, err := svc.RevertUsed(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.False(t, reverted.Used)
	assert.Equal(t, entity.PaymentStatusConfirmed, reverted.PaymentStatus)
}

func TestMarkUsedOnPendingTicket(t *testing.T) {
	// Default policy: an admin may redeem an unpaid ticket
	svc, _ := newTestService(testConfig())

	ticket, _, err := svc.Create(context.Background(), &request.CreateTicketRequest{
		Name:     "Ana Silva",
		Phone:    "(11) 91234-5678",
		Quantity: 1,
	})
	require.NoError(t, err)

	used, err := svc.MarkUsed(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.True(t, used.Used)
	assert.Equal(t, entity.PaymentStatusPending, used.PaymentStatus)
}

func TestMarkUsedRequiresConfirmedWhenPolicyEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.Ticket.RequireConfirmedBeforeUse = true
	svc, _ := newTestService(cfg)

	ticket, _, err := svc.Create(context.Background(), &request.CreateTicketRequest{
		Name:     "Ana Silva",
		Phone:    "(11) 91234-5678",
		Quantity: 1,
	})
	require.NoError(t, err)

	_, err = svc.MarkUsed(context.Background(), ticket.ID)
	assert.ErrorIs(t, err, errs.ErrPaymentNotConfirmed)

	// Confirming unblocks redemption
	_, err = svc.ConfirmPayment(context.Background(), ticket.ID)
	require.NoError(t, err)

	used, err := svc.MarkUsed(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.True(t, used.Used)
}

func TestSearchMatchesNameAndPhone(t *testing.T) {
	svc, fake := newTestService(testConfig())

	now := time.Now()
	fake.tickets = []*entity.Ticket{
		{
			Base:  entity.Base{ID: uuid.New(), CreatedAt: now},
			Name:  "Ana Silva",
			Phone: "(11) 91234-5678",
		},
		{
			Base:  entity.Base{ID: uuid.New(), CreatedAt: now.Add(time.Second)},
			Name:  "Bruno Costa",
			Phone: "(86) 99800-1122",
		},
	}

	for _, query := range []string{"ana", "SILVA", "1234"} {
		results, err := svc.Search(context.Background(), query)
		require.NoError(t, err)
		require.Len(t, results, 1, "query %q", query)
		assert.Equal(t, "Ana Silva", results[0].Name)
	}

	results, err := svc.Search(context.Background(), "zelda")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchBlankQueryBehavesLikeList(t *testing.T) {
	svc, fake := newTestService(testConfig())

	now := time.Now()
	fake.tickets = []*entity.Ticket{
		{Base: entity.Base{ID: uuid.New(), CreatedAt: now}, Name: "Ana Silva", Phone: "(11) 91234-5678"},
		{Base: entity.Base{ID: uuid.New(), CreatedAt: now.Add(time.Second)}, Name: "Bruno Costa", Phone: "(86) 99800-1122"},
	}

	list, err := svc.List(context.Background())
	require.NoError(t, err)

	for _, query := range []string{"", "   ", "\t"} {
		results, err := svc.Search(context.Background(), query)
		require.NoError(t, err)
		assert.Equal(t, list, results, "query %q", query)
	}

	// Newest first
	require.Len(t, list, 2)
	assert.Equal(t, "Bruno Costa", list[0].Name)
}

func TestStats(t *testing.T) {
	svc, fake := newTestService(testConfig())

	fake.tickets = []*entity.Ticket{
		{Base: entity.Base{ID: uuid.New()}, PaymentStatus: entity.PaymentStatusConfirmed, Used: true},
		{Base: entity.Base{ID: uuid.New()}, PaymentStatus: entity.PaymentStatusConfirmed},
		{Base: entity.Base{ID: uuid.New()}, PaymentStatus: entity.PaymentStatusPending},
	}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Paid)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(1), stats.Used)
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _ := newTestService(testConfig())

	_, err := svc.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestGetByIDInvalidID(t *testing.T) {
	svc, _ := newTestService(testConfig())

	_, err := svc.GetByID(context.Background(), "not-a-uuid")

	var validationErr *errs.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestTicketQRCode(t *testing.T) {
	svc, _ := newTestService(testConfig())

	ticket, _, err := svc.Create(context.Background(), &request.CreateTicketRequest{
		Name:     "Ana Silva",
		Phone:    "(11) 91234-5678",
		Quantity: 1,
	})
	require.NoError(t, err)

	png, err := svc.QRCode(context.Background(), ticket.ID)
	require.NoError(t, err)

	// PNG magic bytes
	require.Greater(t, len(png), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
