package dto

import (
	"time"

	"github.com/escolinha/backend/internal/app/models"
	"github.com/escolinha/backend/internal/pkg/helpers"
)

// TeacherRequest is the body accepted by POST/PUT /professores.
type TeacherRequest struct {
	Nome            string  `json:"nome" binding:"required"`
	DataNascimento  string  `json:"data_nascimento"`
	Telefone        string  `json:"telefone"`
	Endereco        string  `json:"endereco"`
	DataContratacao string  `json:"data_contratacao"`
	NivelEnsino     string  `json:"nivel_ensino"`
	Turno           string  `json:"turno"`
	Salario         float64 `json:"salario"`
	Status          string  `json:"status"`
}

// TeacherResponse is the wire form of a teacher, dates formatted YYYY-MM-DD.
type TeacherResponse struct {
	ID              int64   `json:"id"`
	Nome            string  `json:"nome"`
	DataNascimento  string  `json:"data_nascimento,omitempty"`
	Telefone        string  `json:"telefone"`
	Endereco        string  `json:"endereco"`
	DataContratacao string  `json:"data_contratacao,omitempty"`
	NivelEnsino     string  `json:"nivel_ensino"`
	Turno           string  `json:"turno"`
	Salario         float64 `json:"salario"`
	Status          string  `json:"status"`
	CriadoEm        string  `json:"criado_em"`
	AtualizadoEm    string  `json:"atualizado_em"`
}

// TeacherDetailResponse extends TeacherResponse with the teacher's expense
// history (salary payments and reimbursements).
type TeacherDetailResponse struct {
	TeacherResponse
	Movimentacoes []ExpenseResponse `json:"movimentacoes"`
}

// TeacherPayload wraps a teacher write result.
type TeacherPayload struct {
	Message string          `json:"message"`
	Teacher TeacherResponse `json:"teacher"`
}

// NewTeacherResponse converts a teacher model to its wire form.
func NewTeacherResponse(t *models.Teacher) TeacherResponse {
	return TeacherResponse{
		ID:              t.ID,
		Nome:            t.Nome,
		DataNascimento:  helpers.FormatDate(t.DataNascimento),
		Telefone:        t.Telefone,
		Endereco:        t.Endereco,
		DataContratacao: helpers.FormatDate(t.DataContratacao),
		NivelEnsino:     t.NivelEnsino,
		Turno:           t.Turno,
		Salario:         t.Salario,
		Status:          string(t.Status),
		CriadoEm:        t.CriadoEm.Format(time.RFC3339),
		AtualizadoEm:    t.AtualizadoEm.Format(time.RFC3339),
	}
}
