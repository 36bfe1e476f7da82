package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/obra-stock/internal/application/ports"
	"github.com/jhoicas/obra-stock/internal/domain/entity"
	"github.com/jhoicas/obra-stock/pkg/logger"
)

// Fallback es la respuesta fija cuando el oráculo no está disponible o no
// produce contenido utilizable. El fallo nunca se propaga al flujo de respuesta.
const Fallback = "Sorry, I couldn't process that request right now."

// Definiciones de nivel de stock que acompañan al contexto para que el modelo
// responda "below/sufficient/high" de forma consistente.
const stockDefinitions = "Stock Level Definitions:\n" +
	"- Below Stock: Quantity < 50\n" +
	"- Sufficient Stock: Quantity >= 50\n" +
	"- High Stock: Quantity > 100"

// Relay arma el prompt de contexto de stock y reenvía la consulta de texto libre
// al oráculo externo. Solo lectura: este camino jamás muta el inventario.
type Relay struct {
	oracle ports.Oracle
	log    *logger.Logger
}

// NewRelay construye el relay de respuestas.
func NewRelay(oracle ports.Oracle, log *logger.Logger) *Relay {
	return &Relay{oracle: oracle, log: log}
}

// Answer devuelve el texto del oráculo tal cual, o Fallback si la llamada falla
// o vuelve vacía.
func (r *Relay) Answer(ctx context.Context, query string, stock []entity.Material) string {
	prompt := BuildPrompt(query, stock)

	text, err := r.oracle.Generate(ctx, prompt)
	if err != nil {
		r.log.Error().Err(err).Msg("llamada al oráculo fallida")
		return Fallback
	}
	text = strings.TrimSpace(text)
	if text == "" {
		r.log.Warn().Msg("oráculo devolvió respuesta vacía")
		return Fallback
	}
	return text
}

// BuildPrompt compone el contexto acotado (una línea por material) más la
// consulta literal del usuario y la instrucción de respuesta concisa.
func BuildPrompt(query string, stock []entity.Material) string {
	var b strings.Builder
	b.WriteString("Context:\nCurrent Stock Levels:\n")
	if len(stock) == 0 {
		b.WriteString("Could not retrieve stock data.\n")
	} else {
		for _, m := range stock {
			b.WriteString(fmt.Sprintf("- %s: %d %s\n", m.Name, m.Quantity, m.Unit))
		}
	}
	b.WriteString("\n")
	b.WriteString(stockDefinitions)
	b.WriteString("\n\nUser Query:\n")
	b.WriteString(query)
	b.WriteString("\n\n---\nBased ONLY on the provided context, stock level definitions, and user query, answer the query concisely.")
	return b.String()
}
