package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolinha/backend/internal/app/models"
	"github.com/escolinha/backend/internal/app/models/dto"
	"github.com/escolinha/backend/internal/pkg/apperrors"
)

type fakeTuitionRepo struct {
	store  *fakeStore
	items  []*models.Tuition
	nextID int64
}

func (r *fakeTuitionRepo) Create(_ context.Context, tuition *models.Tuition) error {
	r.nextID++
	tuition.ID = r.nextID
	tuition.CriadoEm = time.Now()
	cp := *tuition
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeTuitionRepo) GetByStudent(_ context.Context, alunoID int64) ([]*models.Tuition, error) {
	var out []*models.Tuition
	for _, t := range r.items {
		if t.AlunoID == alunoID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeLedgerRepo struct {
	entries []*models.LedgerEntry
	nextID  int64
}

func (r *fakeLedgerRepo) Create(_ context.Context, entry *models.LedgerEntry) error {
	r.nextID++
	entry.ID = r.nextID
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeLedgerRepo) GetByID(_ context.Context, id int64) (*models.LedgerEntry, error) {
	for _, e := range r.entries {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, apperrors.ErrLedgerEntryNotFound
}

func (r *fakeLedgerRepo) GetAll(_ context.Context) ([]*models.LedgerEntry, error) {
	out := make([]*models.LedgerEntry, 0, len(r.entries))
	for _, e := range r.entries {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeLedgerRepo) Update(_ context.Context, entry *models.LedgerEntry) error {
	for i, e := range r.entries {
		if e.ID == entry.ID {
			cp := *entry
			r.entries[i] = &cp
			return nil
		}
	}
	return apperrors.ErrLedgerEntryNotFound
}

func (r *fakeLedgerRepo) Delete(_ context.Context, id int64) error {
	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrLedgerEntryNotFound
}

func (r *fakeLedgerRepo) SumBalance(_ context.Context, start, end time.Time) (float64, error) {
	var saldo float64
	for _, e := range r.entries {
		if e.DataPagamento.Before(start) || !e.DataPagamento.Before(end) {
			continue
		}
		if e.Tipo == models.EntryIncome {
			saldo += e.Valor
		} else {
			saldo -= e.Valor
		}
	}
	return saldo, nil
}

type fakeClosingRepo struct {
	closings map[string]*models.MonthlyClosing
	nextID   int64
}

func newFakeClosingRepo() *fakeClosingRepo {
	return &fakeClosingRepo{closings: make(map[string]*models.MonthlyClosing)}
}

func closingKey(ano, mes int) string {
	return time.Date(ano, time.Month(mes), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

func (r *fakeClosingRepo) Upsert(_ context.Context, closing *models.MonthlyClosing) error {
	key := closingKey(closing.Ano, closing.Mes)
	if existing, ok := r.closings[key]; ok {
		closing.ID = existing.ID
	} else {
		r.nextID++
		closing.ID = r.nextID
	}
	closing.DataFechamento = time.Now()
	cp := *closing
	r.closings[key] = &cp
	return nil
}

type financeFixture struct {
	store   *fakeStore
	ledger  *fakeLedgerRepo
	closing *fakeClosingRepo
	svc     FinanceService
}

func newFinanceFixture() *financeFixture {
	store := newFakeStore()
	ledger := &fakeLedgerRepo{}
	closing := newFakeClosingRepo()
	svc := NewFinanceService(
		&fakeTuitionRepo{store: store},
		&fakeExpenseRepo{},
		ledger,
		closing,
		&fakeStudentRepo{store: store},
		zerolog.Nop(),
	)
	return &financeFixture{store: store, ledger: ledger, closing: closing, svc: svc}
}

type fakeExpenseRepo struct {
	expenses []*models.Expense
	nextID   int64
}

func (r *fakeExpenseRepo) Create(_ context.Context, expense *models.Expense) error {
	r.nextID++
	expense.ID = r.nextID
	cp := *expense
	r.expenses = append(r.expenses, &cp)
	return nil
}

func (r *fakeExpenseRepo) GetByID(_ context.Context, id int64) (*models.Expense, error) {
	for _, e := range r.expenses {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, apperrors.ErrExpenseNotFound
}

func (r *fakeExpenseRepo) GetByTeacher(_ context.Context, professorID int64) ([]*models.Expense, error) {
	var out []*models.Expense
	for _, e := range r.expenses {
		if e.ProfessorID != nil && *e.ProfessorID == professorID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeExpenseRepo) Update(_ context.Context, expense *models.Expense) error {
	for i, e := range r.expenses {
		if e.ID == expense.ID {
			cp := *expense
			r.expenses[i] = &cp
			return nil
		}
	}
	return apperrors.ErrExpenseNotFound
}

func (r *fakeExpenseRepo) Delete(_ context.Context, id int64) error {
	for i, e := range r.expenses {
		if e.ID == id {
			r.expenses = append(r.expenses[:i], r.expenses[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrExpenseNotFound
}

func seedLedgerEntry(f *financeFixture, tipo models.EntryType, valor float64, date time.Time) {
	f.ledger.entries = append(f.ledger.entries, &models.LedgerEntry{
		ID:            int64(len(f.ledger.entries) + 1),
		Tipo:          tipo,
		Valor:         valor,
		DataPagamento: date,
	})
}

func TestCloseMonthComputesBalanceForRequestedPeriod(t *testing.T) {
	f := newFinanceFixture()
	seedLedgerEntry(f, models.EntryIncome, 1500, time.Date(2026, time.July, 5, 0, 0, 0, 0, time.UTC))
	seedLedgerEntry(f, models.EntryExpense, 400, time.Date(2026, time.July, 20, 0, 0, 0, 0, time.UTC))
	// Outside the window, must not count.
	seedLedgerEntry(f, models.EntryIncome, 9999, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC))

	payload, err := f.svc.CloseMonth(context.Background(), &dto.ClosingRequest{Mes: 7, Ano: 2026}, "admin@exemplo.com")

	require.NoError(t, err)
	assert.True(t, payload.Sucesso)
	assert.Equal(t, 7, payload.Fechamento.Mes)
	assert.Equal(t, 2026, payload.Fechamento.Ano)
	assert.Equal(t, 1100.0, payload.Fechamento.SaldoFinal)
	assert.Equal(t, "admin@exemplo.com", payload.Fechamento.Usuario)
	assert.Len(t, f.closing.closings, 1)
}

func TestCloseMonthDefaultsToCurrentPeriod(t *testing.T) {
	f := newFinanceFixture()
	impl := f.svc.(*financeServiceImpl)
	impl.now = func() time.Time { return time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC) }

	payload, err := f.svc.CloseMonth(context.Background(), &dto.ClosingRequest{}, "admin@exemplo.com")

	require.NoError(t, err)
	assert.Equal(t, 3, payload.Fechamento.Mes)
	assert.Equal(t, 2026, payload.Fechamento.Ano)
}

func TestCloseMonthRejectsInvalidMonth(t *testing.T) {
	f := newFinanceFixture()

	_, err := f.svc.CloseMonth(context.Background(), &dto.ClosingRequest{Mes: 13, Ano: 2026}, "admin@exemplo.com")

	assert.ErrorIs(t, err, apperrors.ErrInvalidPeriod)
}

func TestCloseMonthTwiceOverwritesSnapshot(t *testing.T) {
	f := newFinanceFixture()
	seedLedgerEntry(f, models.EntryIncome, 100, time.Date(2026, time.July, 5, 0, 0, 0, 0, time.UTC))

	first, err := f.svc.CloseMonth(context.Background(), &dto.ClosingRequest{Mes: 7, Ano: 2026}, "admin@exemplo.com")
	require.NoError(t, err)

	seedLedgerEntry(f, models.EntryIncome, 50, time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC))
	second, err := f.svc.CloseMonth(context.Background(), &dto.ClosingRequest{Mes: 7, Ano: 2026}, "outro@exemplo.com")
	require.NoError(t, err)

	assert.Equal(t, first.Fechamento.ID, second.Fechamento.ID, "same month keeps the same row")
	assert.Equal(t, 150.0, second.Fechamento.SaldoFinal)
	assert.Equal(t, "outro@exemplo.com", second.Fechamento.Usuario)
	assert.Len(t, f.closing.closings, 1)
}

func TestCreateTuitionRejectsInvalidDate(t *testing.T) {
	f := newFinanceFixture()
	f.store.students[1] = &models.Student{ID: 1, Nome: "Ana"}

	_, err := f.svc.CreateTuition(context.Background(), &dto.TuitionRequest{
		AlunoID:       1,
		Valor:         350,
		DataPagamento: "05/07/2026",
		MesReferencia: 7,
		AnoReferencia: 2026,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateTuitionUnknownStudent(t *testing.T) {
	f := newFinanceFixture()

	_, err := f.svc.CreateTuition(context.Background(), &dto.TuitionRequest{
		AlunoID:       999,
		Valor:         350,
		DataPagamento: "2026-07-05",
		MesReferencia: 7,
		AnoReferencia: 2026,
	})

	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestGetTuitionByStudentReturnsEmptySlice(t *testing.T) {
	f := newFinanceFixture()
	f.store.students[1] = &models.Student{ID: 1, Nome: "Ana"}

	tuitions, err := f.svc.GetTuitionByStudent(context.Background(), 1)

	require.NoError(t, err)
	assert.NotNil(t, tuitions)
	assert.Empty(t, tuitions)
}
