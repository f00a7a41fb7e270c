package training

const (
	SourceInternal = "INTERNAL"
	SourceExternal = "EXTERNAL"

	StatusPlanejado   = "PLANEJADO"
	StatusEmAndamento = "EM_ANDAMENTO"
	StatusConcluido   = "CONCLUIDO"
	StatusCancelado   = "CANCELADO"
)

var (
	Sources  = []string{SourceInternal, SourceExternal}
	Statuses = []string{StatusPlanejado, StatusEmAndamento, StatusConcluido, StatusCancelado}
)
