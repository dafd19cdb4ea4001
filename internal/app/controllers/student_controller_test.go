package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolinha/backend/internal/app/models/dto"
	"github.com/escolinha/backend/internal/pkg/apperrors"
)

// stubStudentService returns canned values so the controller's wire contract
// can be checked without a database.
type stubStudentService struct {
	payload *dto.StudentPayload
	student *dto.StudentResponse
	err     error
}

func (s *stubStudentService) GetAllStudents(_ context.Context) ([]dto.StudentResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return nil, nil
}

func (s *stubStudentService) GetStudentByID(_ context.Context, _ int64) (*dto.StudentResponse, error) {
	return s.student, s.err
}

func (s *stubStudentService) CreateStudent(_ context.Context, _ *dto.StudentRequest) (*dto.StudentPayload, error) {
	return s.payload, s.err
}

func (s *stubStudentService) UpdateStudent(_ context.Context, _ int64, _ *dto.StudentRequest) (*dto.StudentPayload, error) {
	return s.payload, s.err
}

func (s *stubStudentService) DeleteStudent(_ context.Context, _ int64) (*dto.StudentPayload, error) {
	return s.payload, s.err
}

func studentTestRouter(svc *stubStudentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewStudentController(svc)
	router := gin.New()
	router.GET("/alunos", controller.GetAllStudents)
	router.GET("/alunos/:id", controller.GetStudentByID)
	router.POST("/alunos", controller.CreateStudent)
	router.PUT("/alunos/:id", controller.UpdateStudent)
	router.DELETE("/alunos/:id", controller.DeleteStudent)
	return router
}

func TestCreateStudentReturnsPayloadWithAccess(t *testing.T) {
	svc := &stubStudentService{
		payload: &dto.StudentPayload{
			Message: "Aluno cadastrado com sucesso.",
			Student: dto.StudentResponse{ID: 1, Nome: "Ana", Plano: "premium"},
			Acesso:  &dto.AccessInfo{Email: "carla@exemplo.com", Message: "Acesso premium criado para o responsável."},
		},
	}
	router := studentTestRouter(svc)

	body := bytes.NewBufferString(`{"nome":"Ana","plano":"premium","email_responsavel":"carla@exemplo.com"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/alunos", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Aluno cadastrado com sucesso.", resp["message"])
	acesso, ok := resp["acesso"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "carla@exemplo.com", acesso["email"])
}

func TestCreateStudentBasicHasNullAccess(t *testing.T) {
	svc := &stubStudentService{
		payload: &dto.StudentPayload{
			Message: "Aluno cadastrado com sucesso.",
			Student: dto.StudentResponse{ID: 1, Nome: "Ana", Plano: "basico"},
		},
	}
	router := studentTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/alunos", bytes.NewBufferString(`{"nome":"Ana"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	_, present := resp["acesso"]
	assert.True(t, present, "acesso key is present and null for non-premium")
	assert.Nil(t, resp["acesso"])
}

func TestCreateStudentValidationError(t *testing.T) {
	router := studentTestRouter(&stubStudentService{})

	// nome missing and plano outside the allowed set.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/alunos", bytes.NewBufferString(`{"plano":"gold"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Dados inválidos", resp["error"])
	fields, ok := resp["errors"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, fields)
}

func TestCreateStudentRejectsMalformedDate(t *testing.T) {
	router := studentTestRouter(&stubStudentService{})

	// Dates outside YYYY-MM-DD must fail binding instead of being silently
	// dropped en route to the database.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/alunos",
		bytes.NewBufferString(`{"nome":"Ana","data_nascimento":"13/05/2019"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Dados inválidos", resp["error"])
	fields, ok := resp["errors"].([]any)
	require.True(t, ok)
	require.Len(t, fields, 1)
	field, ok := fields[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "DataNascimento", field["campo"])
}

func TestCreateStudentGuardianEmailRequired(t *testing.T) {
	router := studentTestRouter(&stubStudentService{err: apperrors.ErrGuardianEmailRequired})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/alunos", bytes.NewBufferString(`{"nome":"Ana","plano":"premium"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "E-mail do responsável é obrigatório para o plano premium.", resp["error"])
}

func TestGetStudentByIDNotFound(t *testing.T) {
	router := studentTestRouter(&stubStudentService{err: apperrors.ErrStudentNotFound})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/alunos/42", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Aluno não encontrado.", resp["error"])
}

func TestGetStudentByIDInvalidParam(t *testing.T) {
	router := studentTestRouter(&stubStudentService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/alunos/abc", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ID inválido.", resp["error"])
}

func TestGetAllStudentsEmptyListNotNull(t *testing.T) {
	router := studentTestRouter(&stubStudentService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/alunos", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}
