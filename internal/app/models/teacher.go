package models

import "time"

// Teacher defines the staff model based on the 'professores' table.
type Teacher struct {
	ID              int64           `json:"id" db:"id"`
	Nome            string          `json:"nome" db:"nome"`
	DataNascimento  *time.Time      `json:"data_nascimento,omitempty" db:"data_nascimento"`
	Telefone        string          `json:"telefone" db:"telefone"`
	Endereco        string          `json:"endereco" db:"endereco"`
	DataContratacao *time.Time      `json:"data_contratacao,omitempty" db:"data_contratacao"`
	NivelEnsino     string          `json:"nivel_ensino" db:"nivel_ensino"`
	Turno           string          `json:"turno" db:"turno"`
	Salario         float64         `json:"salario" db:"salario"`
	Status          LifecycleStatus `json:"status" db:"status"`
	CriadoEm        time.Time       `json:"criado_em" db:"criado_em"`
	AtualizadoEm    time.Time       `json:"atualizado_em" db:"atualizado_em"`
}
