package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearReconocimientoRequest struct {
	ParaUsuarioID string  `json:"para_usuario_id" validate:"required,uuid4"`
	Puntos        int     `json:"puntos"          validate:"required,gt=0,lte=10"`
	Categoria     string  `json:"categoria"       validate:"required,min=2,max=100"`
	Mensaje       *string `json:"mensaje"         validate:"omitempty,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PresupuestoResponse struct {
	Mes             string `json:"mes"`
	PuntosRestantes int    `json:"puntos_restantes"`
	PuntosRecibidos int    `json:"puntos_recibidos"`
}

// ReconocimientoRecibido deliberately omits the sender — recognition is
// anonymous from the receiver's side.
type ReconocimientoRecibido struct {
	ID        string  `json:"id"`
	Puntos    int     `json:"puntos"`
	Categoria string  `json:"categoria"`
	Mensaje   *string `json:"mensaje,omitempty"`
	Mes       string  `json:"mes"`
	CreatedAt string  `json:"created_at"`
}

type ReconocimientoEnviado struct {
	ID          string  `json:"id"`
	ParaUsuario string  `json:"para_usuario"`
	Puntos      int     `json:"puntos"`
	Categoria   string  `json:"categoria"`
	Mensaje     *string `json:"mensaje,omitempty"`
	Mes         string  `json:"mes"`
	CreatedAt   string  `json:"created_at"`
}

// PerfilResponse backs the employee dashboard header: who am I and how does
// my current month look.
type PerfilResponse struct {
	Usuario     UsuarioResponse     `json:"usuario"`
	Presupuesto PresupuestoResponse `json:"presupuesto"`
}

// CompaneroResponse is a colleague eligible to receive points.
type CompaneroResponse struct {
	ID           string `json:"id"`
	Nombre       string `json:"nombre"`
	Departamento string `json:"departamento"`
}
