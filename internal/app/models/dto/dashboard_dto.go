package dto

// Birthday is a name plus birth date, used by the dashboard birthday lists.
type Birthday struct {
	Nome           string `json:"nome"`
	DataNascimento string `json:"data_nascimento"`
}

// DashboardResponse aggregates the numbers the admin home screen shows.
type DashboardResponse struct {
	AlunosAtivos              int64            `json:"alunos_ativos"`
	ProfessoresAtivos         int64            `json:"professores_ativos"`
	AlunosPorTurno            map[string]int64 `json:"alunos_por_turno"`
	SaldoCaixa                float64          `json:"saldo_caixa"`
	Aniversariantes           []Birthday       `json:"aniversariantes"`
	ProfessoresAniversariante []Birthday       `json:"professoresAniversariantes"`
	SaldoPrevistoMensalidades float64          `json:"saldo_previsto_mensalidades"`
	SaldoPrevistoSalarios     float64          `json:"saldo_previsto_salarios"`
	MatriculadosMesAtual      int64            `json:"matriculados_mes_atual"`
}

// MonthlyReportResponse is the relatorio-mensal summary.
type MonthlyReportResponse struct {
	TotalReceitas     float64 `json:"total_receitas"`
	TotalDespesas     float64 `json:"total_despesas"`
	Saldo             float64 `json:"saldo"`
	AlunosStatus      int64   `json:"alunos_status"`
	ProfessoresStatus int64   `json:"professores_status"`
}

// Defaulter is an active student with no tuition payment in the queried month.
type Defaulter struct {
	ID               int64   `json:"id"`
	Nome             string  `json:"nome"`
	ValorMensalidade float64 `json:"valor_mensalidade"`
}

// DefaultersResponse wraps the defaulter list.
type DefaultersResponse struct {
	Inadimplentes []Defaulter `json:"inadimplentes"`
}
