package dto

// FeedbackRequest is the body accepted by POST/PUT /feedbacks.
// The avaliacao maps arrive as free-form criterion→grade pairs.
type FeedbackRequest struct {
	AlunoID             int64             `json:"aluno_id" binding:"required"`
	Bimestre            string            `json:"bimestre" binding:"required"`
	AvaliacaoPedagogica map[string]string `json:"avaliacao_pedagogica"`
	AvaliacaoPsico      map[string]string `json:"avaliacao_psico"`
	Fotos               []string          `json:"fotos"`
	Observacao          string            `json:"observacao"`
}

// FeedbackUpdateRequest allows partial edits; aluno_id is immutable.
type FeedbackUpdateRequest struct {
	Bimestre            string            `json:"bimestre"`
	AvaliacaoPedagogica map[string]string `json:"avaliacao_pedagogica"`
	AvaliacaoPsico      map[string]string `json:"avaliacao_psico"`
	Fotos               []string          `json:"fotos"`
	Observacao          string            `json:"observacao"`
}

// UploadResponse is returned by POST /upload.
type UploadResponse struct {
	Message string   `json:"message"`
	URLs    []string `json:"urls"`
}
