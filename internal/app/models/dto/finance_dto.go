package dto

import (
	"time"

	"github.com/escolinha/backend/internal/app/models"
	"github.com/escolinha/backend/internal/pkg/helpers"
)

// TuitionRequest is the body accepted by POST /mensalidades.
// Every field is required.
type TuitionRequest struct {
	AlunoID       int64   `json:"id_aluno" binding:"required"`
	Valor         float64 `json:"valor" binding:"required"`
	DataPagamento string  `json:"data_pagamento" binding:"required"`
	MesReferencia int     `json:"mes_referencia" binding:"required,min=1,max=12"`
	AnoReferencia int     `json:"ano_referencia" binding:"required"`
}

// TuitionResponse is the wire form of a tuition payment.
type TuitionResponse struct {
	ID            int64   `json:"id"`
	AlunoID       int64   `json:"id_aluno"`
	Valor         float64 `json:"valor"`
	DataPagamento string  `json:"data_pagamento"`
	MesReferencia int     `json:"mes_referencia"`
	AnoReferencia int     `json:"ano_referencia"`
	CriadoEm      string  `json:"criado_em"`
}

// NewTuitionResponse converts a tuition model to its wire form.
func NewTuitionResponse(t *models.Tuition) TuitionResponse {
	return TuitionResponse{
		ID:            t.ID,
		AlunoID:       t.AlunoID,
		Valor:         t.Valor,
		DataPagamento: t.DataPagamento.Format(helpers.DateLayout),
		MesReferencia: t.MesReferencia,
		AnoReferencia: t.AnoReferencia,
		CriadoEm:      t.CriadoEm.Format(time.RFC3339),
	}
}

// ExpenseRequest is the body accepted by POST/PUT /despesas.
type ExpenseRequest struct {
	ProfessorID   *int64  `json:"id_professor"`
	Valor         float64 `json:"valor" binding:"required"`
	DataPagamento string  `json:"data_pagamento" binding:"required"`
	MesReferencia int     `json:"mes_referencia" binding:"required,min=1,max=12"`
	AnoReferencia int     `json:"ano_referencia" binding:"required"`
	Categoria     string  `json:"categoria" binding:"required"`
	Descricao     string  `json:"descricao" binding:"required"`
}

// ExpenseResponse is the wire form of an expense.
type ExpenseResponse struct {
	ID            int64   `json:"id"`
	ProfessorID   *int64  `json:"id_professor,omitempty"`
	Valor         float64 `json:"valor"`
	DataPagamento string  `json:"data_pagamento"`
	MesReferencia int     `json:"mes_referencia"`
	AnoReferencia int     `json:"ano_referencia"`
	Categoria     string  `json:"categoria"`
	Descricao     string  `json:"descricao"`
	CriadoEm      string  `json:"criado_em"`
	AtualizadoEm  string  `json:"atualizado_em"`
}

// NewExpenseResponse converts an expense model to its wire form.
func NewExpenseResponse(e *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		ProfessorID:   e.ProfessorID,
		Valor:         e.Valor,
		DataPagamento: e.DataPagamento.Format(helpers.DateLayout),
		MesReferencia: e.MesReferencia,
		AnoReferencia: e.AnoReferencia,
		Categoria:     e.Categoria,
		Descricao:     e.Descricao,
		CriadoEm:      e.CriadoEm.Format(time.RFC3339),
		AtualizadoEm:  e.AtualizadoEm.Format(time.RFC3339),
	}
}

// LedgerEntryRequest is the body accepted by POST/PUT /lancamentos.
type LedgerEntryRequest struct {
	Tipo          string  `json:"tipo" binding:"required,oneof=receita despesa"`
	Categoria     string  `json:"categoria" binding:"required"`
	Descricao     string  `json:"descricao"`
	Valor         float64 `json:"valor" binding:"required"`
	DataPagamento string  `json:"data_pagamento" binding:"required"`
	AlunoID       *int64  `json:"aluno_id"`
	ProfessorID   *int64  `json:"professor_id"`
}

// LedgerEntryResponse is the wire form of a ledger entry.
type LedgerEntryResponse struct {
	ID            int64   `json:"id"`
	Tipo          string  `json:"tipo"`
	Categoria     string  `json:"categoria"`
	Descricao     string  `json:"descricao"`
	Valor         float64 `json:"valor"`
	DataPagamento string  `json:"data_pagamento"`
	AlunoID       *int64  `json:"aluno_id,omitempty"`
	ProfessorID   *int64  `json:"professor_id,omitempty"`
	CriadoEm      string  `json:"criado_em"`
}

// NewLedgerEntryResponse converts a ledger entry model to its wire form.
func NewLedgerEntryResponse(l *models.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:            l.ID,
		Tipo:          string(l.Tipo),
		Categoria:     l.Categoria,
		Descricao:     l.Descricao,
		Valor:         l.Valor,
		DataPagamento: l.DataPagamento.Format(helpers.DateLayout),
		AlunoID:       l.AlunoID,
		ProfessorID:   l.ProfessorID,
		CriadoEm:      l.CriadoEm.Format(time.RFC3339),
	}
}

// ClosingRequest is the body accepted by POST /caixa. Month and year default
// to the current period when omitted.
type ClosingRequest struct {
	Mes int `json:"mes" binding:"omitempty,min=1,max=12"`
	Ano int `json:"ano"`
}

// ClosingPayload wraps a monthly closing result.
type ClosingPayload struct {
	Sucesso    bool                  `json:"sucesso"`
	Fechamento models.MonthlyClosing `json:"fechamento"`
}
