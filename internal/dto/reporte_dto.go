package dto

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ReporteFila is one row of the monthly report table: a user's received
// totals, recognition count, points given and per-category breakdown.
type ReporteFila struct {
	UsuarioID       string         `json:"usuario_id"`
	Nombre          string         `json:"nombre"`
	Departamento    string         `json:"departamento"`
	PuntosRecibidos int            `json:"puntos_recibidos"`
	Reconocimientos int            `json:"reconocimientos"`
	PuntosDados     int            `json:"puntos_dados"`
	PorCategoria    map[string]int `json:"por_categoria"`
}

type ReporteMensualResponse struct {
	Mes   string        `json:"mes"`
	Filas []ReporteFila `json:"filas"`
}
