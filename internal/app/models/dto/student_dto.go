package dto

import (
	"time"

	"github.com/escolinha/backend/internal/app/models"
	"github.com/escolinha/backend/internal/pkg/helpers"
)

// StudentRequest is the body accepted by POST/PUT /alunos. It is a superset
// of the plain student fields: plano and email_responsavel feed the guardian
// provisioning workflow.
type StudentRequest struct {
	Nome             string  `json:"nome" binding:"required"`
	DataNascimento   string  `json:"data_nascimento" binding:"omitempty,datetime=2006-01-02"`
	Responsavel      string  `json:"responsavel"`
	Telefone         string  `json:"telefone"`
	DataMatricula    string  `json:"data_matricula" binding:"omitempty,datetime=2006-01-02"`
	ValorMensalidade float64 `json:"valor_mensalidade"`
	Serie            string  `json:"serie"`
	Turno            string  `json:"turno"`
	Observacao       string  `json:"observacao"`
	Status           string  `json:"status"`
	Plano            string  `json:"plano" binding:"omitempty,oneof=basico standard premium"`
	EmailResponsavel string  `json:"email_responsavel" binding:"omitempty,email"`
	FotoURL          string  `json:"foto_url"`
}

// StudentResponse is the wire form of a student, dates formatted YYYY-MM-DD.
type StudentResponse struct {
	ID               int64   `json:"id"`
	Nome             string  `json:"nome"`
	DataNascimento   string  `json:"data_nascimento,omitempty"`
	Responsavel      string  `json:"responsavel"`
	Telefone         string  `json:"telefone"`
	DataMatricula    string  `json:"data_matricula,omitempty"`
	ValorMensalidade float64 `json:"valor_mensalidade"`
	Serie            string  `json:"serie"`
	Turno            string  `json:"turno"`
	Observacao       string  `json:"observacao"`
	Status           string  `json:"status"`
	Plano            string  `json:"plano"`
	FotoURL          string  `json:"foto_url,omitempty"`
	CriadoEm         string  `json:"criado_em"`
	AtualizadoEm     string  `json:"atualizado_em"`
}

// AccessInfo summarizes the guardian access side effect of a student write.
type AccessInfo struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// StudentPayload wraps a student write result: { message, student, acesso }.
// Acesso is null when the requested plan is not premium.
type StudentPayload struct {
	Message string          `json:"message"`
	Student StudentResponse `json:"student"`
	Acesso  *AccessInfo     `json:"acesso"`
}

// NewStudentResponse converts a student model to its wire form.
func NewStudentResponse(s *models.Student) StudentResponse {
	resp := StudentResponse{
		ID:               s.ID,
		Nome:             s.Nome,
		DataNascimento:   helpers.FormatDate(s.DataNascimento),
		Responsavel:      s.Responsavel,
		Telefone:         s.Telefone,
		DataMatricula:    helpers.FormatDate(s.DataMatricula),
		ValorMensalidade: s.ValorMensalidade,
		Serie:            s.Serie,
		Turno:            s.Turno,
		Observacao:       s.Observacao,
		Status:           string(s.Status),
		Plano:            string(s.Plano),
		CriadoEm:         s.CriadoEm.Format(time.RFC3339),
		AtualizadoEm:     s.AtualizadoEm.Format(time.RFC3339),
	}
	if s.FotoURL != nil {
		resp.FotoURL = *s.FotoURL
	}
	return resp
}
