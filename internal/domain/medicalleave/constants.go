package medicalleave

const (
	StatusAfastado   = "AFASTADO"
	StatusFinalizado = "FINALIZADO"
	StatusCancelado  = "CANCELADO"
)

var Statuses = []string{StatusAfastado, StatusFinalizado, StatusCancelado}
