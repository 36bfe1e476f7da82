package ussd

import "github.com/jhoicas/obra-stock/internal/domain/entity"

// Marcadores literales del gateway USSD. CON espera un segmento más del usuario;
// END cierra la sesión. No cambiar: el gateway los reconoce tal cual.
const (
	PrefixContinue = "CON "
	PrefixEnd      = "END "

	// Delimiter separa los segmentos acumulados que reenvía el gateway en cada vuelta.
	Delimiter = "*"
)

// EffectKind clasifica el efecto lateral de una respuesta terminal.
type EffectKind string

const (
	EffectReceive EffectKind = "RECEIVED" // suma al stock
	EffectUse     EffectKind = "USED"     // resta del stock (validada en el repositorio)
	EffectCheck   EffectKind = "CHECK"    // sin mutación; copia por SMS al consultante
)

// Effect describe la mutación y/o notificación que el orquestador debe ejecutar
// tras una respuesta terminal. Material es el snapshot usado para numerar el menú.
type Effect struct {
	Kind     EffectKind
	Material entity.Material
	Quantity int64 // siempre positiva; el signo lo aporta Delta
	Delta    int64 // +Quantity para RECEIVED, -Quantity para USED, 0 para CHECK
}

// Result es la salida pura del decodificador: texto de pantalla, si la sesión
// termina y el efecto pendiente (solo en terminales).
type Result struct {
	Text     string
	Terminal bool
	Effect   *Effect
}

// Response devuelve el cuerpo a entregar al gateway, con el marcador correspondiente.
func (r Result) Response() string {
	if r.Terminal {
		return PrefixEnd + r.Text
	}
	return PrefixContinue + r.Text
}
