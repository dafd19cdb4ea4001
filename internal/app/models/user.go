package models

import "time"

// User defines a login principal based on the 'users' table: school admins,
// teachers and guardians. The plano column here is the source of truth for
// login gating; the copy on alunos is read convenience only.
type User struct {
	ID           int64      `json:"id" db:"id"`
	Nome         string     `json:"nome" db:"nome"`
	Email        string     `json:"email" db:"email"`
	Senha        string     `json:"-" db:"senha"` // bcrypt hash, excluded from JSON
	Role         RoleType   `json:"role" db:"role"`
	Plano        PlanTier   `json:"plano" db:"plano"`
	UltimoAcesso *time.Time `json:"ultimo_acesso,omitempty" db:"ultimo_acesso"`
	CriadoEm     time.Time  `json:"criado_em" db:"criado_em"`
	AtualizadoEm time.Time  `json:"atualizado_em" db:"atualizado_em"`
}

// GuardianLink defines the many-to-many guardian<->student association based
// on the 'responsaveis_alunos' table. The (responsavel_id, aluno_id) pair is
// unique so repeated provisioning stays idempotent.
type GuardianLink struct {
	ID            int64     `json:"id" db:"id"`
	ResponsavelID int64     `json:"responsavel_id" db:"responsavel_id"`
	AlunoID       int64     `json:"aluno_id" db:"aluno_id"`
	Parentesco    string    `json:"parentesco" db:"parentesco"`
	CriadoEm      time.Time `json:"criado_em" db:"criado_em"`

	// Relations (populated when needed)
	Responsavel *User `json:"responsavel,omitempty"`
}
