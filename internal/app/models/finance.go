package models

import "time"

// Tuition is a monthly fee payment based on the 'mensalidades' table.
type Tuition struct {
	ID            int64     `json:"id" db:"id"`
	AlunoID       int64     `json:"id_aluno" db:"aluno_id"`
	Valor         float64   `json:"valor" db:"valor"`
	DataPagamento time.Time `json:"data_pagamento" db:"data_pagamento"`
	MesReferencia int       `json:"mes_referencia" db:"mes_referencia"`
	AnoReferencia int       `json:"ano_referencia" db:"ano_referencia"`
	CriadoEm      time.Time `json:"criado_em" db:"criado_em"`
}

// Expense is an outgoing payment based on the 'despesas' table. Teacher
// salaries land here with the professor_id set.
type Expense struct {
	ID            int64     `json:"id" db:"id"`
	ProfessorID   *int64    `json:"id_professor,omitempty" db:"professor_id"`
	Valor         float64   `json:"valor" db:"valor"`
	DataPagamento time.Time `json:"data_pagamento" db:"data_pagamento"`
	MesReferencia int       `json:"mes_referencia" db:"mes_referencia"`
	AnoReferencia int       `json:"ano_referencia" db:"ano_referencia"`
	Categoria     string    `json:"categoria" db:"categoria"`
	Descricao     string    `json:"descricao" db:"descricao"`
	CriadoEm      time.Time `json:"criado_em" db:"criado_em"`
	AtualizadoEm  time.Time `json:"atualizado_em" db:"atualizado_em"`
}

// LedgerEntry is a cash-flow record based on the 'lancamentos' table.
type LedgerEntry struct {
	ID            int64     `json:"id" db:"id"`
	Tipo          EntryType `json:"tipo" db:"tipo"`
	Categoria     string    `json:"categoria" db:"categoria"`
	Descricao     string    `json:"descricao" db:"descricao"`
	Valor         float64   `json:"valor" db:"valor"`
	DataPagamento time.Time `json:"data_pagamento" db:"data_pagamento"`
	AlunoID       *int64    `json:"aluno_id,omitempty" db:"aluno_id"`
	ProfessorID   *int64    `json:"professor_id,omitempty" db:"professor_id"`
	CriadoEm      time.Time `json:"criado_em" db:"criado_em"`
}

// MonthlyClosing is a month-end cash balance snapshot based on the
// 'fechamentos_mensais' table; unique per (ano, mes).
type MonthlyClosing struct {
	ID             int64     `json:"id" db:"id"`
	Mes            int       `json:"mes" db:"mes"`
	Ano            int       `json:"ano" db:"ano"`
	SaldoFinal     float64   `json:"saldo_final" db:"saldo_final"`
	Usuario        string    `json:"usuario" db:"usuario"`
	DataFechamento time.Time `json:"data_fechamento" db:"data_fechamento"`
}
