package types

// GenerationRequest is the body posted to the generation webhook.
type GenerationRequest struct {
	TipoLanding          LandingType `json:"tipo_landing" validate:"required"`
	SeccionesSolicitadas []string    `json:"secciones_solicitadas" validate:"required,min=1,dive,required"`
	NombreProducto       string      `json:"nombre_producto" validate:"required"`
	Audiencia            string      `json:"audiencia"`
	MensajesClave        string      `json:"mensajes_clave"`
	Keywords             []string    `json:"keywords"`
	URLsReferencia       []string    `json:"urls_referencia"`
	AIOverview           string      `json:"ai_overview"`
	Timestamp            string      `json:"timestamp"`
}

// RegenerationRequest is the body posted to the regeneration webhook.
type RegenerationRequest struct {
	SessionID       string      `json:"session_id"`
	Seccion         string      `json:"seccion"`
	ContenidoActual string      `json:"contenido_actual"`
	Instruccion     string      `json:"instruccion" validate:"required"`
	TipoLanding     LandingType `json:"tipo_landing"`
	NombreProducto  string      `json:"nombre_producto"`
	Keywords        []string    `json:"keywords"`
}

// RegenerationResponse is the body returned by the regeneration webhook.
type RegenerationResponse struct {
	NuevoContenido string `json:"nuevo_contenido"`
}

// RegenerateInput is the API request body for a regeneration.
type RegenerateInput struct {
	Instruccion string `json:"instruccion" validate:"required"`
}
