package ports

import "context"

// Oracle define el puerto de salida hacia el motor de respuestas de texto libre.
// Cualquier adaptador (Gemini, OpenAI, mock) debe implementar esta interfaz.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type Oracle interface {
	// Generate recibe el prompt completo (contexto de stock + consulta) y
	// devuelve el texto de respuesta tal cual lo produjo el modelo.
	Generate(ctx context.Context, prompt string) (string, error)
}
