package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type GuardarPresupuestoRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=150"`
}

type EnviarDocumentoRequest struct {
	Email   string `json:"email"   validate:"required,email"`
	Asunto  string `json:"asunto"  validate:"omitempty,max=200"`
	Mensaje string `json:"mensaje" validate:"omitempty,max=2000"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// PresupuestoResumen is an archive listing entry.
type PresupuestoResumen struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Timestamp int64  `json:"timestamp"`
	CreatedAt string `json:"created_at"`
}

type GuardarPresupuestoResponse struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Timestamp int64  `json:"timestamp"`
	FileName  string `json:"file_name"`
	Saved     bool   `json:"saved"` // false = sink declined, not an error
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=4"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // seconds
	Username    string `json:"username"`
}
