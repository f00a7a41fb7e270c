package evaluation

const (
	StatusPendente  = "Pendente"
	StatusConcluida = "CONCLUIDA"

	DefaultSelfWeight    = 0.4
	DefaultManagerWeight = 0.6

	TopPerformerLimit = 10
)
