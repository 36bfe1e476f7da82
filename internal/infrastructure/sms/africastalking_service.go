package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/obra-stock/internal/application/ports"
	"github.com/jhoicas/obra-stock/internal/domain"
)

// Verificar en tiempo de compilación que AfricasTalkingService implementa SMSSender.
var _ ports.SMSSender = (*AfricasTalkingService)(nil)

const messagingPath = "/version1/messaging"

// AfricasTalkingService adaptador que implementa SMSSender contra la API REST
// de mensajería de Africa's Talking. Usa únicamente net/http: no existe SDK Go
// oficial y el payload es un simple form urlencoded.
type AfricasTalkingService struct {
	username   string
	apiKey     string
	shortCode  string
	baseURL    string
	httpClient *http.Client
}

// NewAfricasTalkingService construye el adaptador. username "sandbox" apunta al
// entorno de pruebas. Si apiKey está vacío, los envíos fallan con ErrDelivery en
// lugar de tumbar el proceso en el arranque.
func NewAfricasTalkingService(username, apiKey, shortCode, baseURL string) *AfricasTalkingService {
	return &AfricasTalkingService{
		username:  username,
		apiKey:    apiKey,
		shortCode: shortCode,
		baseURL:   strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second, // timeout de red; el caller también pone WithTimeout
		},
	}
}

// ── Estructuras internas para la API de Africa's Talking ─────────────────────

type atResponse struct {
	SMSMessageData struct {
		Message    string `json:"Message"`
		Recipients []struct {
			Number     string `json:"number"`
			Status     string `json:"status"`
			StatusCode int    `json:"statusCode"`
			MessageID  string `json:"messageId"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Send entrega un mensaje a un único destinatario. El fan-out multi-destinatario
// es del despachador, así cada número conserva su propio resultado.
func (s *AfricasTalkingService) Send(ctx context.Context, to string, message string) error {
	if s.apiKey == "" {
		return fmt.Errorf("%w: AT_API_KEY no configurado", domain.ErrDelivery)
	}

	form := url.Values{}
	form.Set("username", s.username)
	form.Set("to", to)
	form.Set("message", message)
	if s.shortCode != "" {
		form.Set("from", s.shortCode)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+messagingPath, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: crear HTTP request: %v", domain.ErrDelivery, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: timeout o cancelación: %v", domain.ErrDelivery, ctx.Err())
		}
		return fmt.Errorf("%w: llamada HTTP fallida: %v", domain.ErrDelivery, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("%w: leer respuesta: %v", domain.ErrDelivery, err)
	}

	// El gateway responde 201 Created en envíos aceptados.
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: gateway HTTP %d: %s", domain.ErrDelivery, resp.StatusCode, truncateBody(rawBody))
	}

	var atResp atResponse
	if err := json.Unmarshal(rawBody, &atResp); err != nil {
		return fmt.Errorf("%w: deserializar respuesta: %v", domain.ErrDelivery, err)
	}
	if len(atResp.SMSMessageData.Recipients) == 0 {
		return fmt.Errorf("%w: gateway sin destinatarios: %s", domain.ErrDelivery, atResp.SMSMessageData.Message)
	}

	recipient := atResp.SMSMessageData.Recipients[0]
	// statusCode 100/101/102 = aceptado (en cola o enviado).
	if recipient.StatusCode < 100 || recipient.StatusCode > 102 {
		return fmt.Errorf("%w: destinatario %s rechazado: %s (%d)",
			domain.ErrDelivery, recipient.Number, recipient.Status, recipient.StatusCode)
	}
	return nil
}

func truncateBody(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
