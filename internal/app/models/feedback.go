package models

import "time"

// Feedback is a bimonthly pedagogical report for a student, based on the
// 'feedbacks' table. The avaliacao maps and the fotos list are stored as JSONB.
type Feedback struct {
	ID                  int64             `json:"id" db:"id"`
	AlunoID             int64             `json:"aluno_id" db:"aluno_id"`
	AutorID             int64             `json:"autor_id" db:"autor_id"`
	Bimestre            string            `json:"bimestre" db:"bimestre"`
	AvaliacaoPedagogica map[string]string `json:"avaliacao_pedagogica" db:"avaliacao_pedagogica"`
	AvaliacaoPsico      map[string]string `json:"avaliacao_psico" db:"avaliacao_psico"`
	Fotos               []string          `json:"fotos" db:"fotos"`
	Observacao          string            `json:"observacao" db:"observacao"`
	LidoPelosPais       bool              `json:"lido_pelos_pais" db:"lido_pelos_pais"`
	CriadoEm            time.Time         `json:"criado_em" db:"criado_em"`
	AtualizadoEm        time.Time         `json:"atualizado_em" db:"atualizado_em"`

	// Relation (populated on listing)
	AutorNome string `json:"autor_nome,omitempty"`
}
