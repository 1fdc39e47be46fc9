package ia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Enriquecedor rewrites the deterministic executive summary in a more
// natural tone. Implementations are best-effort: callers must keep the
// deterministic summary when enrichment fails.
type Enriquecedor interface {
	EnriquecerResumen(ctx context.Context, analisis *Analisis) (string, error)
}

// OpenAIClient enriches summaries through the chat completions API.
type OpenAIClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NuevoOpenAIDesdeEnv returns a client, or nil when OPENAI_API_KEY is not
// set. A nil return is not an error: enrichment is optional and the
// pipeline runs deterministically without it.
func NuevoOpenAIDesdeEnv() *OpenAIClient {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return nil
	}

	baseURL := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	model := strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &OpenAIClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type openAIHTTPError struct {
	StatusCode int
	Body       string
}

func (e *openAIHTTPError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

// EnriquecerResumen asks the model for a short natural-language version of
// the summary. At most 20 products are listed in the prompt to bound its
// size.
func (c *OpenAIClient) EnriquecerResumen(ctx context.Context, analisis *Analisis) (string, error) {
	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{
				Role: "system",
				Content: "Eres un analista de inventarios. Redacta un resumen ejecutivo " +
					"breve y profesional en espanol a partir de los datos entregados. " +
					"No inventes cifras.",
			},
			{Role: "user", Content: promptDeAnalisis(analisis)},
		},
		MaxTokens:   500,
		Temperature: 0.3,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &openAIHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decodificando respuesta openai: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("respuesta openai sin choices")
	}

	texto := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if texto == "" {
		return "", fmt.Errorf("respuesta openai vacia")
	}
	return texto, nil
}

const maxProductosEnPrompt = 20

func promptDeAnalisis(a *Analisis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Empresa: %s (NIT %s)\n", a.Empresa.Nombre, a.Empresa.Nit)
	fmt.Fprintf(&b, "Productos: %d, unidades: %d, valor total COP: %s\n",
		a.TotalProductos, a.TotalUnidades, a.ValorTotal.StringFixed(0))
	fmt.Fprintf(&b, "Sin stock: %d (%.1f%%), stock bajo: %d (%.1f%%)\n",
		len(a.SinStock), a.PctSinStock, len(a.StockBajo), a.PctStockBajo)

	listados := 0
	escribir := func(etiqueta string, items []ItemAnalisis) {
		for _, item := range items {
			if listados >= maxProductosEnPrompt {
				return
			}
			fmt.Fprintf(&b, "- [%s] %s (%s): %d uds\n", etiqueta, item.Nombre, item.Codigo, item.Cantidad)
			listados++
		}
	}
	escribir("agotado", a.SinStock)
	escribir("bajo", a.StockBajo)

	return b.String()
}
