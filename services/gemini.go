package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2/google"
)

type GeminiRequest struct {
	Contents []Content `json:"contents"`
}

type Content struct {
	Parts []Part `json:"parts"`
	Role  string `json:"role"`
}

type Part struct {
	Text string `json:"text"`
}

type GeminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// AnswerGenerator produces one answer per screening question. The
// workflow treats an empty result as "no answers available" and falls
// back to skipping fields, never as a fatal error.
type AnswerGenerator interface {
	GenerateAnswers(ctx context.Context, questions []string, extraContext string) []string
}

// GeminiService calls the Gemini generateContent REST API once per
// question. All questions of one batch run concurrently.
type GeminiService struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1/models"

func NewGeminiService(apiKey, model string) *GeminiService {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GeminiService{
		APIKey:     apiKey,
		Model:      model,
		BaseURL:    defaultGeminiBaseURL,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

var (
	boldSpanPattern = regexp.MustCompile(`\*\*.*?\*\*`)
	newlinePattern  = regexp.MustCompile(`\n+`)
)

// cleanAnswer strips markdown bold spans, collapses newline runs into a
// single space, and trims the result.
func cleanAnswer(raw string) string {
	cleaned := boldSpanPattern.ReplaceAllString(raw, "")
	cleaned = newlinePattern.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// GenerateAnswers returns one cleaned answer per question, in question
// order. An empty questions slice returns immediately without calling the
// provider. If any request in the batch fails, the whole batch reports an
// empty slice and the error is only logged.
func (s *GeminiService) GenerateAnswers(ctx context.Context, questions []string, extraContext string) []string {
	if len(questions) == 0 {
		return []string{}
	}

	answers := make([]string, len(questions))
	errs := make([]error, len(questions))

	var wg sync.WaitGroup
	for i, question := range questions {
		wg.Add(1)
		go func(i int, question string) {
			defer wg.Done()

			raw, err := s.generateContent(ctx, question+" "+extraContext)
			if err != nil {
				errs[i] = err
				return
			}
			answers[i] = cleanAnswer(raw)
		}(i, question)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			log.Printf("Error generating answers: %v", err)
			return []string{}
		}
	}

	return answers
}

// generateContent submits a single prompt. A response that decodes but
// carries no candidate text yields the "No response" placeholder; only
// transport and API failures are returned as errors.
func (s *GeminiService) generateContent(ctx context.Context, prompt string) (string, error) {
	requestBody := GeminiRequest{
		Contents: []Content{
			{
				Role: "user",
				Parts: []Part{
					{Text: prompt},
				},
			},
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent", s.BaseURL, s.Model)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	if s.APIKey != "" {
		q := req.URL.Query()
		q.Set("key", s.APIKey)
		req.URL.RawQuery = q.Encode()
	} else {
		token, err := getAccessToken(ctx)
		if err != nil {
			return "", fmt.Errorf("no GEMINI_API_KEY and no default credentials: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Gemini API error: %s", b)
	}

	var gemResp GeminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gemResp); err != nil {
		return "", err
	}

	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 ||
		gemResp.Candidates[0].Content.Parts[0].Text == "" {
		return "No response", nil
	}

	return gemResp.Candidates[0].Content.Parts[0].Text, nil
}

// getAccessToken resolves an Application Default Credentials token for
// deployments that authenticate to Google Cloud without an API key.
func getAccessToken(ctx context.Context) (string, error) {
	creds, err := google.FindDefaultCredentials(ctx, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return "", err
	}
	token, err := creds.TokenSource.Token()
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}
