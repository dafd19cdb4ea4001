package models

import "time"

// Student defines the student model based on the 'alunos' table.
type Student struct {
	ID               int64           `json:"id" db:"id"`
	Nome             string          `json:"nome" db:"nome"`
	DataNascimento   *time.Time      `json:"data_nascimento,omitempty" db:"data_nascimento"`
	Responsavel      string          `json:"responsavel" db:"responsavel"`
	Telefone         string          `json:"telefone" db:"telefone"`
	DataMatricula    *time.Time      `json:"data_matricula,omitempty" db:"data_matricula"`
	ValorMensalidade float64         `json:"valor_mensalidade" db:"valor_mensalidade"`
	Serie            string          `json:"serie" db:"serie"`
	Turno            string          `json:"turno" db:"turno"`
	Observacao       string          `json:"observacao" db:"observacao"`
	Status           LifecycleStatus `json:"status" db:"status"`
	Plano            PlanTier        `json:"plano" db:"plano"` // denormalized copy of the guardian's tier
	FotoURL          *string         `json:"foto_url,omitempty" db:"foto_url"`
	CriadoEm         time.Time       `json:"criado_em" db:"criado_em"`
	AtualizadoEm     time.Time       `json:"atualizado_em" db:"atualizado_em"`
}
