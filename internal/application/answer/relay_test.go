package answer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/obra-stock/internal/application/answer"
	"github.com/jhoicas/obra-stock/internal/domain"
	"github.com/jhoicas/obra-stock/internal/domain/entity"
	"github.com/jhoicas/obra-stock/pkg/logger"
)

type stubOracle struct {
	reply      string
	err        error
	lastPrompt string
}

func (s *stubOracle) Generate(ctx context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.reply, s.err
}

func testStock() []entity.Material {
	return []entity.Material{
		{ID: 1, Name: "Cement", Unit: "bags", Quantity: 40},
		{ID: 2, Name: "Sand", Unit: "tonnes", Quantity: 120},
	}
}

func TestAnswer_DevuelveRespuestaDelOraculoTalCual(t *testing.T) {
	oracle := &stubOracle{reply: "Cement is below stock (40 bags)."}
	r := answer.NewRelay(oracle, logger.Nop())

	got := r.Answer(context.Background(), "do we have enough cement?", testStock())

	assert.Equal(t, "Cement is below stock (40 bags).", got)
}

func TestAnswer_PromptLlevaContextoYConsultaLiteral(t *testing.T) {
	oracle := &stubOracle{reply: "ok"}
	r := answer.NewRelay(oracle, logger.Nop())

	query := "how much sand is left?"
	r.Answer(context.Background(), query, testStock())

	require.NotEmpty(t, oracle.lastPrompt)
	assert.Contains(t, oracle.lastPrompt, "- Cement: 40 bags")
	assert.Contains(t, oracle.lastPrompt, "- Sand: 120 tonnes")
	assert.Contains(t, oracle.lastPrompt, "Stock Level Definitions:")
	assert.Contains(t, oracle.lastPrompt, query, "la consulta viaja literal, sin parseo de intención")
}

func TestAnswer_FallbackSiElOraculoFalla(t *testing.T) {
	oracle := &stubOracle{err: domain.ErrOracleUnavailable}
	r := answer.NewRelay(oracle, logger.Nop())

	got := r.Answer(context.Background(), "anything", testStock())

	assert.Equal(t, answer.Fallback, got, "el fallo del oráculo nunca se propaga")
}

func TestAnswer_FallbackSiLaRespuestaVieneVacia(t *testing.T) {
	oracle := &stubOracle{reply: "   \n "}
	r := answer.NewRelay(oracle, logger.Nop())

	got := r.Answer(context.Background(), "anything", testStock())

	assert.Equal(t, answer.Fallback, got)
}

func TestBuildPrompt_SinSnapshotDeStock(t *testing.T) {
	prompt := answer.BuildPrompt("is there cement?", nil)

	assert.Contains(t, prompt, "Could not retrieve stock data.")
	assert.Contains(t, prompt, "is there cement?")
}

func TestAnswer_ErrorGenericoTambienCaeAlFallback(t *testing.T) {
	oracle := &stubOracle{err: errors.New("http 500")}
	r := answer.NewRelay(oracle, logger.Nop())

	assert.Equal(t, answer.Fallback, r.Answer(context.Background(), "q", nil))
}
