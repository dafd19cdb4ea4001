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

type fakeFeedbackRepo struct {
	items  map[int64]*models.Feedback
	nextID int64
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{items: make(map[int64]*models.Feedback)}
}

func (r *fakeFeedbackRepo) Create(_ context.Context, feedback *models.Feedback) error {
	r.nextID++
	feedback.ID = r.nextID
	feedback.CriadoEm = time.Now()
	cp := *feedback
	r.items[feedback.ID] = &cp
	return nil
}

func (r *fakeFeedbackRepo) GetByID(_ context.Context, id int64) (*models.Feedback, error) {
	f, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrFeedbackNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFeedbackRepo) GetByStudent(_ context.Context, alunoID int64) ([]*models.Feedback, error) {
	var out []*models.Feedback
	for _, f := range r.items {
		if f.AlunoID == alunoID {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeFeedbackRepo) Update(_ context.Context, feedback *models.Feedback) error {
	if _, ok := r.items[feedback.ID]; !ok {
		return apperrors.ErrFeedbackNotFound
	}
	cp := *feedback
	r.items[feedback.ID] = &cp
	return nil
}

func (r *fakeFeedbackRepo) MarkRead(_ context.Context, id int64) error {
	f, ok := r.items[id]
	if !ok {
		return apperrors.ErrFeedbackNotFound
	}
	f.LidoPelosPais = true
	return nil
}

func (r *fakeFeedbackRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrFeedbackNotFound
	}
	delete(r.items, id)
	return nil
}

type feedbackFixture struct {
	store *fakeStore
	repo  *fakeFeedbackRepo
	svc   FeedbackService
}

func newFeedbackFixture() *feedbackFixture {
	store := newFakeStore()
	repo := newFakeFeedbackRepo()
	svc := NewFeedbackService(repo, &fakeLinkRepo{store: store}, &fakeStudentRepo{store: store}, zerolog.Nop())
	return &feedbackFixture{store: store, repo: repo, svc: svc}
}

func TestFeedbackCreateRejectsGuardian(t *testing.T) {
	f := newFeedbackFixture()

	_, err := f.svc.Create(context.Background(), &dto.FeedbackRequest{AlunoID: 1, Bimestre: "1º Bimestre"}, 5, models.RoleGuardian)

	require.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	var custom *apperrors.CustomError
	require.ErrorAs(t, err, &custom)
	assert.Equal(t, "Apenas professores e admin podem criar relatórios.", custom.Message)
}

func TestFeedbackCreateNormalizesEmptyFields(t *testing.T) {
	f := newFeedbackFixture()
	f.store.students[1] = &models.Student{ID: 1, Nome: "Ana"}

	feedback, err := f.svc.Create(context.Background(), &dto.FeedbackRequest{
		AlunoID:  1,
		Bimestre: "1º Bimestre",
	}, 5, models.RoleAdmin)

	require.NoError(t, err)
	assert.NotNil(t, feedback.AvaliacaoPedagogica)
	assert.NotNil(t, feedback.AvaliacaoPsico)
	assert.NotNil(t, feedback.Fotos)
	assert.Equal(t, int64(5), feedback.AutorID)
}

func TestFeedbackCreateUnknownStudent(t *testing.T) {
	f := newFeedbackFixture()

	_, err := f.svc.Create(context.Background(), &dto.FeedbackRequest{AlunoID: 99, Bimestre: "1º Bimestre"}, 5, models.RoleAdmin)

	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestFeedbackGetByStudentGuardianNeedsLink(t *testing.T) {
	f := newFeedbackFixture()
	f.store.students[1] = &models.Student{ID: 1, Nome: "Ana"}

	_, err := f.svc.GetByStudent(context.Background(), 1, 7, models.RoleGuardian)
	require.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	f.store.links[1] = &models.GuardianLink{ID: 1, ResponsavelID: 7, AlunoID: 1}
	feedbacks, err := f.svc.GetByStudent(context.Background(), 1, 7, models.RoleGuardian)
	require.NoError(t, err)
	assert.NotNil(t, feedbacks)
}

func TestFeedbackGetByStudentStaffBypassesLinkCheck(t *testing.T) {
	f := newFeedbackFixture()

	feedbacks, err := f.svc.GetByStudent(context.Background(), 1, 7, models.RoleAdmin)

	require.NoError(t, err)
	assert.Empty(t, feedbacks)
}

func TestFeedbackUpdatePartial(t *testing.T) {
	f := newFeedbackFixture()
	f.repo.items[1] = &models.Feedback{
		ID:                  1,
		AlunoID:             1,
		Bimestre:            "1º Bimestre",
		AvaliacaoPedagogica: map[string]string{"leitura": "otimo"},
		Observacao:          "original",
	}
	f.repo.nextID = 1

	updated, err := f.svc.Update(context.Background(), 1, &dto.FeedbackUpdateRequest{Observacao: "nova"}, models.RoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, "nova", updated.Observacao)
	assert.Equal(t, "1º Bimestre", updated.Bimestre, "omitted fields are preserved")
	assert.Equal(t, "otimo", updated.AvaliacaoPedagogica["leitura"])
}

func TestFeedbackMarkRead(t *testing.T) {
	f := newFeedbackFixture()
	f.repo.items[1] = &models.Feedback{ID: 1, AlunoID: 1}
	f.repo.nextID = 1

	require.NoError(t, f.svc.MarkRead(context.Background(), 1))
	assert.True(t, f.repo.items[1].LidoPelosPais)

	assert.ErrorIs(t, f.svc.MarkRead(context.Background(), 99), apperrors.ErrFeedbackNotFound)
}

func TestFeedbackDeleteRejectsGuardian(t *testing.T) {
	f := newFeedbackFixture()
	f.repo.items[1] = &models.Feedback{ID: 1, AlunoID: 1}

	err := f.svc.Delete(context.Background(), 1, models.RoleGuardian)
	require.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Contains(t, f.repo.items, int64(1))

	require.NoError(t, f.svc.Delete(context.Background(), 1, models.RoleAdmin))
	assert.NotContains(t, f.repo.items, int64(1))
}
