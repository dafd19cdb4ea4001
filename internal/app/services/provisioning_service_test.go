package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolinha/backend/internal/app/models"
	"github.com/escolinha/backend/internal/app/repositories"
	"github.com/escolinha/backend/internal/pkg/apperrors"
	"github.com/escolinha/backend/internal/pkg/auth"
)

// fakeStore is a shared in-memory backing for the fake repositories. The fake
// unit of work snapshots it before running the closure and restores the
// snapshot when the closure errors, mirroring a transaction rollback.
type fakeStore struct {
	users         map[int64]*models.User
	students      map[int64]*models.Student
	links         map[int64]*models.GuardianLink
	nextID        int64
	createErr     error
	linkCreateErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[int64]*models.User),
		students: make(map[int64]*models.Student),
		links:    make(map[int64]*models.GuardianLink),
		nextID:   1,
	}
}

func (s *fakeStore) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *fakeStore) snapshot() *fakeStore {
	snap := newFakeStore()
	snap.nextID = s.nextID
	for id, u := range s.users {
		cp := *u
		snap.users[id] = &cp
	}
	for id, st := range s.students {
		cp := *st
		snap.students[id] = &cp
	}
	for id, l := range s.links {
		cp := *l
		snap.links[id] = &cp
	}
	return snap
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.users = snap.users
	s.students = snap.students
	s.links = snap.links
	s.nextID = snap.nextID
}

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if r.store.createErr != nil {
		return r.store.createErr
	}
	for _, u := range r.store.users {
		if u.Email == user.Email {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	user.ID = r.store.id()
	cp := *user
	r.store.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := r.store.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.store.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(context.Background(), email)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeUserRepo) UpdatePlan(_ context.Context, id int64, plano models.PlanTier) error {
	u, ok := r.store.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Plano = plano
	return nil
}

func (r *fakeUserRepo) UpdateEmailAndPlan(_ context.Context, id int64, email string, plano models.PlanTier) error {
	u, ok := r.store.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Email = email
	u.Plano = plano
	return nil
}

func (r *fakeUserRepo) UpdateLastAccess(_ context.Context, id int64) error {
	if _, ok := r.store.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	now := time.Now()
	r.store.users[id].UltimoAcesso = &now
	return nil
}

type fakeStudentRepo struct{ store *fakeStore }

func (r *fakeStudentRepo) Create(_ context.Context, student *models.Student) error {
	student.ID = r.store.id()
	cp := *student
	r.store.students[student.ID] = &cp
	return nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	st, ok := r.store.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *st
	return &cp, nil
}

func (r *fakeStudentRepo) GetAll(_ context.Context) ([]*models.Student, error) {
	var out []*models.Student
	for _, st := range r.store.students {
		cp := *st
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeStudentRepo) Update(_ context.Context, student *models.Student) error {
	if _, ok := r.store.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	cp := *student
	r.store.students[student.ID] = &cp
	return nil
}

func (r *fakeStudentRepo) UpdatePlan(_ context.Context, id int64, plano models.PlanTier) error {
	st, ok := r.store.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	st.Plano = plano
	return nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, id int64) error {
	delete(r.store.students, id)
	return nil
}

type fakeLinkRepo struct{ store *fakeStore }

func (r *fakeLinkRepo) Create(_ context.Context, link *models.GuardianLink) error {
	if r.store.linkCreateErr != nil {
		return r.store.linkCreateErr
	}
	for _, l := range r.store.links {
		if l.ResponsavelID == link.ResponsavelID && l.AlunoID == link.AlunoID {
			return nil // ON CONFLICT DO NOTHING
		}
	}
	link.ID = r.store.id()
	cp := *link
	r.store.links[link.ID] = &cp
	return nil
}

func (r *fakeLinkRepo) GetPrimaryByStudent(_ context.Context, alunoID int64) (*models.GuardianLink, error) {
	var best *models.GuardianLink
	for _, l := range r.store.links {
		if l.AlunoID != alunoID {
			continue
		}
		if best == nil || l.ID < best.ID {
			best = l
		}
	}
	if best == nil {
		return nil, apperrors.ErrGuardianLinkNotFound
	}
	cp := *best
	if u, ok := r.store.users[cp.ResponsavelID]; ok {
		uc := *u
		cp.Responsavel = &uc
	}
	return &cp, nil
}

func (r *fakeLinkRepo) Exists(_ context.Context, responsavelID, alunoID int64) (bool, error) {
	for _, l := range r.store.links {
		if l.ResponsavelID == responsavelID && l.AlunoID == alunoID {
			return true, nil
		}
	}
	return false, nil
}

type fakeUnitOfWork struct{ store *fakeStore }

func (u *fakeUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos *repositories.TxRepos) error) error {
	snap := u.store.snapshot()
	repos := &repositories.TxRepos{
		Users:    &fakeUserRepo{store: u.store},
		Students: &fakeStudentRepo{store: u.store},
		Links:    &fakeLinkRepo{store: u.store},
	}
	if err := fn(ctx, repos); err != nil {
		u.store.restore(snap)
		return err
	}
	return nil
}

func newProvisioningFixture() (*fakeStore, ProvisioningService) {
	store := newFakeStore()
	svc := NewProvisioningService(&fakeUnitOfWork{store: store}, zerolog.Nop())
	return store, svc
}

func birthDate(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestCreateStudentPremiumRequiresGuardianEmail(t *testing.T) {
	store, svc := newProvisioningFixture()

	student := &models.Student{Nome: "Ana", Plano: models.PlanPremium}
	acesso, err := svc.CreateStudent(context.Background(), student, "")

	assert.ErrorIs(t, err, apperrors.ErrGuardianEmailRequired)
	assert.Nil(t, acesso)
	assert.Empty(t, store.students, "validation must run before any write")
	assert.Empty(t, store.users)
}

func TestCreateStudentPremiumCreatesGuardianAccount(t *testing.T) {
	store, svc := newProvisioningFixture()

	student := &models.Student{
		Nome:           "Ana Souza",
		Responsavel:    "Carla Souza",
		DataNascimento: birthDate(2019, time.May, 13),
		Plano:          models.PlanPremium,
	}
	acesso, err := svc.CreateStudent(context.Background(), student, "carla@exemplo.com")

	require.NoError(t, err)
	require.NotNil(t, acesso)
	assert.Equal(t, "carla@exemplo.com", acesso.Email)
	assert.Equal(t, "Acesso premium criado para o responsável.", acesso.Message)

	require.Len(t, store.users, 1)
	var user *models.User
	for _, u := range store.users {
		user = u
	}
	assert.Equal(t, "Carla Souza", user.Nome)
	assert.Equal(t, models.RoleGuardian, user.Role)
	assert.Equal(t, models.PlanPremium, user.Plano)
	assert.True(t, auth.CheckPassword(user.Senha, "20190513"),
		"initial password must be the birth date digits")

	require.Len(t, store.links, 1)
	for _, link := range store.links {
		assert.Equal(t, user.ID, link.ResponsavelID)
		assert.Equal(t, student.ID, link.AlunoID)
		assert.Equal(t, models.DefaultRelationship, link.Parentesco)
	}
}

func TestCreateStudentPremiumWithoutBirthDateUsesFallbackPassword(t *testing.T) {
	store, svc := newProvisioningFixture()

	student := &models.Student{Nome: "Bia", Plano: models.PlanPremium}
	_, err := svc.CreateStudent(context.Background(), student, "bia.mae@exemplo.com")

	require.NoError(t, err)
	require.Len(t, store.users, 1)
	for _, u := range store.users {
		assert.True(t, auth.CheckPassword(u.Senha, auth.DefaultPasswordFallback))
		assert.Equal(t, "Bia", u.Nome, "guardian name falls back to the student name")
	}
}

func TestCreateStudentPremiumReusesExistingUser(t *testing.T) {
	store, svc := newProvisioningFixture()
	store.users[50] = &models.User{
		ID:    50,
		Nome:  "Marcos",
		Email: "marcos@exemplo.com",
		Role:  models.RoleGuardian,
		Plano: models.PlanBasic,
	}
	store.nextID = 51

	student := &models.Student{Nome: "Pedro", Plano: models.PlanPremium}
	acesso, err := svc.CreateStudent(context.Background(), student, "marcos@exemplo.com")

	require.NoError(t, err)
	assert.Equal(t, "Acesso premium já existente foi reutilizado.", acesso.Message)
	assert.Equal(t, models.PlanPremium, store.users[50].Plano, "existing account is promoted")
	assert.Len(t, store.users, 1, "no duplicate account")
	require.Len(t, store.links, 1)
	for _, link := range store.links {
		assert.Equal(t, int64(50), link.ResponsavelID)
	}

	// A sibling enrolled under the same e-mail shares the account through a
	// second link row.
	sibling := &models.Student{Nome: "Paula", Plano: models.PlanPremium}
	acesso, err = svc.CreateStudent(context.Background(), sibling, "marcos@exemplo.com")

	require.NoError(t, err)
	assert.Equal(t, "Acesso premium já existente foi reutilizado.", acesso.Message)
	assert.Len(t, store.users, 1, "one account serves both students")
	require.Len(t, store.links, 2)
	seen := map[int64]bool{}
	for _, link := range store.links {
		assert.Equal(t, int64(50), link.ResponsavelID)
		seen[link.AlunoID] = true
	}
	assert.True(t, seen[student.ID] && seen[sibling.ID], "each student carries its own link")
}

func TestUpdateStudentPremiumReusesLinkedGuardian(t *testing.T) {
	store, svc := newProvisioningFixture()
	store.users[10] = &models.User{ID: 10, Nome: "Joana", Email: "joana@exemplo.com", Role: models.RoleGuardian, Plano: models.PlanBasic}
	store.students[20] = &models.Student{ID: 20, Nome: "Luca", Plano: models.PlanBasic}
	store.links[30] = &models.GuardianLink{ID: 30, ResponsavelID: 10, AlunoID: 20}
	store.nextID = 31

	// No guardian email in the request; the existing link supplies the user.
	student := &models.Student{ID: 20, Nome: "Luca", Plano: models.PlanPremium}
	acesso, err := svc.UpdateStudent(context.Background(), student, "")

	require.NoError(t, err)
	require.NotNil(t, acesso)
	assert.Equal(t, "joana@exemplo.com", acesso.Email)
	assert.Equal(t, "Acesso premium já existente foi reutilizado.", acesso.Message)
	assert.Equal(t, models.PlanPremium, store.users[10].Plano)
	assert.Len(t, store.links, 1, "link insert stays idempotent")
}

func TestUpdateStudentPremiumWithEmailRewritesLinkedGuardian(t *testing.T) {
	store, svc := newProvisioningFixture()
	store.users[10] = &models.User{ID: 10, Nome: "Joana", Email: "antigo@exemplo.com", Role: models.RoleGuardian, Plano: models.PlanPremium}
	store.students[20] = &models.Student{ID: 20, Nome: "Luca", Plano: models.PlanPremium}
	store.links[30] = &models.GuardianLink{ID: 30, ResponsavelID: 10, AlunoID: 20}
	store.nextID = 31

	student := &models.Student{ID: 20, Nome: "Luca", Plano: models.PlanPremium}
	acesso, err := svc.UpdateStudent(context.Background(), student, "novo@exemplo.com")

	require.NoError(t, err)
	assert.Equal(t, "novo@exemplo.com", acesso.Email)
	assert.Equal(t, "novo@exemplo.com", store.users[10].Email)
}

func TestUpdateStudentPremiumWithoutEmailOrLinkFails(t *testing.T) {
	store, svc := newProvisioningFixture()
	store.students[20] = &models.Student{ID: 20, Nome: "Luca", Plano: models.PlanBasic}
	store.nextID = 21

	student := &models.Student{ID: 20, Nome: "Luca", Plano: models.PlanPremium}
	_, err := svc.UpdateStudent(context.Background(), student, "")

	assert.ErrorIs(t, err, apperrors.ErrGuardianEmailRequired)
	assert.Equal(t, models.PlanBasic, store.students[20].Plano, "validation fails before the student write")
}

func TestUpdateStudentDowngradeKeepsGuardianAccount(t *testing.T) {
	store, svc := newProvisioningFixture()
	store.users[10] = &models.User{ID: 10, Nome: "Joana", Email: "joana@exemplo.com", Role: models.RoleGuardian, Plano: models.PlanPremium}
	store.students[20] = &models.Student{ID: 20, Nome: "Luca", Plano: models.PlanPremium}
	store.links[30] = &models.GuardianLink{ID: 30, ResponsavelID: 10, AlunoID: 20}
	store.nextID = 31

	student := &models.Student{ID: 20, Nome: "Luca", Plano: models.PlanBasic}
	acesso, err := svc.UpdateStudent(context.Background(), student, "")

	require.NoError(t, err)
	assert.Nil(t, acesso, "downgrade returns no access info")
	assert.Equal(t, models.PlanBasic, store.users[10].Plano)
	assert.Contains(t, store.users, int64(10), "guardian account is never deleted")
	assert.Contains(t, store.links, int64(30), "link survives the downgrade")
}

func TestUpdateStudentDowngradeTargetsLowestLinkID(t *testing.T) {
	store, svc := newProvisioningFixture()
	store.users[10] = &models.User{ID: 10, Email: "a@exemplo.com", Plano: models.PlanPremium}
	store.users[11] = &models.User{ID: 11, Email: "b@exemplo.com", Plano: models.PlanPremium}
	store.students[20] = &models.Student{ID: 20, Nome: "Luca", Plano: models.PlanPremium}
	store.links[31] = &models.GuardianLink{ID: 31, ResponsavelID: 11, AlunoID: 20}
	store.links[30] = &models.GuardianLink{ID: 30, ResponsavelID: 10, AlunoID: 20}
	store.nextID = 32

	student := &models.Student{ID: 20, Nome: "Luca", Plano: models.PlanBasic}
	_, err := svc.UpdateStudent(context.Background(), student, "")

	require.NoError(t, err)
	assert.Equal(t, models.PlanBasic, store.users[10].Plano, "oldest link wins")
	assert.Equal(t, models.PlanPremium, store.users[11].Plano, "other guardians untouched")
}

func TestCreateStudentGuardianEmailConflict(t *testing.T) {
	store, svc := newProvisioningFixture()
	store.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	student := &models.Student{Nome: "Ana", Plano: models.PlanPremium}
	_, err := svc.CreateStudent(context.Background(), student, "dup@exemplo.com")

	require.Error(t, err)
	var custom *apperrors.CustomError
	require.ErrorAs(t, err, &custom)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "E-mail do responsável já cadastrado.", custom.Message)
}

func TestCreateStudentRollsBackWhenLinkCreationFails(t *testing.T) {
	store, svc := newProvisioningFixture()
	store.linkCreateErr = errors.New("insert into responsaveis_alunos failed")

	student := &models.Student{
		Nome:           "Ana",
		DataNascimento: birthDate(2019, time.May, 13),
		Plano:          models.PlanPremium,
	}
	_, err := svc.CreateStudent(context.Background(), student, "carla@exemplo.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProvisioning)
	assert.Empty(t, store.users, "guardian row must not survive the failed transaction")
	assert.Empty(t, store.students, "student row must not survive the failed transaction")
	assert.Empty(t, store.links)
}

func TestCreateStudentBasicCreatesNoAccess(t *testing.T) {
	store, svc := newProvisioningFixture()

	student := &models.Student{Nome: "Rita", Plano: models.PlanBasic}
	acesso, err := svc.CreateStudent(context.Background(), student, "")

	require.NoError(t, err)
	assert.Nil(t, acesso)
	assert.Len(t, store.students, 1)
	assert.Empty(t, store.users)
	assert.Empty(t, store.links)
}
