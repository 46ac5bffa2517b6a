package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// 기본 생성 설정
	Temperature     = 0.3
	TopK            = 32
	TopP            = 1.0
	MaxOutputTokens = 1024

	RequestTimeout = 30 * time.Second

	rawOutputLimit = 200 // 라벨 파싱 실패 시 잘라서 보여줄 길이
)

var (
	outputPattern      = regexp.MustCompile(`(?is)OUTPUT:\s*(.*?)(?:EXPLANATION:|$)`)
	explanationPattern = regexp.MustCompile(`(?is)EXPLANATION:\s*(.*)$`)
)

// CodeAnalysis 코드 분석 결과
type CodeAnalysis struct {
	Output      string `json:"output"`
	Explanation string `json:"explanation"`
}

// Client 텍스트 생성 API로 코드 분석을 요청하는 클라이언트
// 분석은 부가 기능이라 어떤 실패도 호출자에게 에러로 전파하지 않는다:
// 항상 사용 가능한 CodeAnalysis를 돌려준다 (실패 시 분류된 메시지로 degrade).
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

// NewClient AI 클라이언트 생성
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: RequestTimeout},
		endpoint:   endpoint,
		apiKey:     apiKey,
	}
}

// generateRequest 업스트림 요청 본문
type generateRequest struct {
	Contents []content `json:"contents"`
	Config   genConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type genConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// generateResponse 업스트림 응답 본문
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// AnalyzeCode 코드와 언어를 보내 예상 출력/설명을 받아온다
// 빈 코드는 원격 호출 없이 고정 응답으로 단락 처리.
func (c *Client) AnalyzeCode(ctx context.Context, code, language string) *CodeAnalysis {
	if strings.TrimSpace(code) == "" {
		return &CodeAnalysis{
			Output:      "No code provided",
			Explanation: "Please enter some code to analyze.",
		}
	}

	text, err := c.generate(ctx, buildPrompt(code, language))
	if err != nil {
		log.Printf("⚠️ [AI] code analysis failed: %v", err)
		return degradedResult(err)
	}

	return parseAnalysis(text)
}

// generate 프롬프트 전송 후 생성된 텍스트 반환
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		Config: genConfig{
			Temperature:     Temperature,
			TopK:            TopK,
			TopP:            TopP,
			MaxOutputTokens: MaxOutputTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.endpoint + "?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &networkError{err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &statusError{code: resp.StatusCode}
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from AI service")
	}

	text := parsed.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("empty response from AI service")
	}

	return text, nil
}

// buildPrompt 분석 프롬프트 구성 (OUTPUT/EXPLANATION 라벨 형식 요구)
func buildPrompt(code, language string) string {
	return fmt.Sprintf(`Analyze this %s code and provide:

1. EXPECTED OUTPUT: What this code would output when executed (if it's executable code). If it's not executable (like HTML/CSS), describe what it would create or display. If there are errors, mention them.

2. EXPLANATION: A brief, clear explanation of how the code works, what each main part does, and any important concepts used.

Please format your response as:
OUTPUT:
[the expected output or result description]

EXPLANATION:
[clear explanation of how the code works]

Here's the code:
`+"```%s\n%s\n```", language, language, code)
}

// parseAnalysis 응답 텍스트에서 OUTPUT/EXPLANATION 섹션 추출
// best-effort 파서: 라벨이 없으면 원문을 잘라서 output으로, 고정 문구를 explanation으로.
func parseAnalysis(text string) *CodeAnalysis {
	result := &CodeAnalysis{}

	if m := outputPattern.FindStringSubmatch(text); m != nil {
		result.Output = strings.TrimSpace(m[1])
	}
	if m := explanationPattern.FindStringSubmatch(text); m != nil {
		result.Explanation = strings.TrimSpace(m[1])
	}

	if result.Output == "" {
		raw := text
		if len(raw) > rawOutputLimit {
			// 멀티바이트 문자를 중간에서 자르지 않도록 룬 경계로 내린다
			cut := rawOutputLimit
			for cut > 0 && !utf8.RuneStart(raw[cut]) {
				cut--
			}
			raw = raw[:cut] + "..."
		}
		result.Output = raw
	}
	if result.Explanation == "" {
		result.Explanation = "AI provided analysis but in unexpected format."
	}

	return result
}

// networkError 원격 연결 자체가 실패한 경우
type networkError struct {
	err error
}

func (e *networkError) Error() string {
	return "network error: " + e.err.Error()
}

func (e *networkError) Unwrap() error {
	return e.err
}

// statusError 원격이 비정상 상태 코드를 돌려준 경우
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("API request failed: %d", e.code)
}

// degradedResult 실패 원인별로 분류된 degrade 응답
// 네트워크 / 엔드포인트 없음 / 인증 실패를 구분해서 안내한다.
func degradedResult(err error) *CodeAnalysis {
	var ne *networkError
	var se *statusError

	switch {
	case errors.As(err, &ne):
		return &CodeAnalysis{
			Output:      "Network Error: Unable to connect to AI service.",
			Explanation: "Please check your internet connection and try again.",
		}
	case errors.As(err, &se) && se.code == http.StatusNotFound:
		return &CodeAnalysis{
			Output:      "API Error: Service endpoint not found.",
			Explanation: "The AI analysis service is currently unavailable. Please try again later.",
		}
	case errors.As(err, &se) && (se.code == http.StatusUnauthorized || se.code == http.StatusForbidden):
		return &CodeAnalysis{
			Output:      "Authentication Error: Invalid API key.",
			Explanation: "The API key configuration needs to be updated.",
		}
	}

	return &CodeAnalysis{
		Output:      "Error: Unable to analyze code.",
		Explanation: "Analysis failed: " + err.Error(),
	}
}
