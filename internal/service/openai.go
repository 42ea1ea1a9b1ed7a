package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/LouisDeconinck/ai-real-estate-agent/internal/config"
	"github.com/LouisDeconinck/ai-real-estate-agent/internal/model"
	"github.com/LouisDeconinck/ai-real-estate-agent/internal/utils"
)

const searchExpertSystemPrompt = `You are a real estate search expert.
Your task is to distill the following parameters from a user request:

Essential Parameters:
- search_term: Location to search (e.g. city, zip code)
- for_rent: Search for rentals instead of sales (this is crucial to determine if user wants to rent or buy)

Price Parameters:
- price_min: Minimum price (sale price or rent per month)
- price_max: Maximum price (sale price or rent per month)

Basic Property Features:
- beds_min: Minimum number of bedrooms
- baths_min: Minimum number of bathrooms
- sqft_min: Minimum square footage
- sqft_max: Maximum square footage

Key Amenities:
- garage: Has garage
- ac: Has air conditioning
- pool: Has pool
- single_story_only: Single story only

Views and Location Features:
- waterfront: Is waterfront property
- city_view: Has city view
- mountain_view: Has mountain view

Rental-specific Features (only used if for_rent is true):
- pets_allowed: Pets allowed
- furnished: Furnished property
- utilities_included: Utilities included
- onsite_parking: Onsite parking available

Please extract these parameters accurately from the user's input. Pay special attention to:
- The search location (search_term)
- Whether they want to rent or buy (for_rent parameter)
- Price range and basic requirements (bedrooms, bathrooms)
- Any specific amenities or features they mention

Respond ONLY with a valid JSON object. Omit any parameter that is not mentioned.
Make assumptions for these parameters on a best effort basis.`

const realEstateAgentSystemPrompt = `You are an expert real estate agent tasked with analyzing property listings and selecting the best options for a client.

Your job is to:
1. Review all property listings provided
2. Select the top 5 options that best match the client's search criteria
3. For each selected property, provide a clear explanation of why it's a good match
4. Create a summary that highlights key features of the selected properties

When analyzing properties, consider:
- How well each property matches the search parameters
- Price relative to features and location
- Special amenities or unique selling points
- Potential drawbacks or considerations

Your response MUST be a JSON object with this exact structure:
{
  "properties": [
    {"match_reason": "Detailed explanation of why this property is a good match", "url": "The complete listing URL for the property (CRITICAL - must be exact)"}
  ],
  "summary": "A concise summary comparing the selected properties and highlighting the best overall options"
}

IMPORTANT: You must return exactly 5 properties. Ensure all property data follows the format specified above. The url field is critical for proper functioning.`

// OpenAIClient implements AIClient against an OpenAI-compatible chat API
type OpenAIClient struct {
	config     *config.OpenAIConfig
	httpClient *http.Client
}

// NewOpenAIClient creates a new OpenAI-compatible client
func NewOpenAIClient(cfg *config.OpenAIConfig) *OpenAIClient {
	return &OpenAIClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// IsEnabled returns whether the client is configured and ready
func (c *OpenAIClient) IsEnabled() bool {
	return c.config.Enabled
}

// ChatCompletionRequest represents a chat completion request
type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatMessage represents a single message in the conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat specifies the format of the response
type ResponseFormat struct {
	Type string `json:"type"` // "json_object" or "text"
}

// ChatCompletionResponse represents the API response
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage Usage `json:"usage"`
}

// ChatCompletion performs a chat completion request
func (c *OpenAIClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if !c.config.Enabled {
		return nil, fmt.Errorf("OpenAI API is not enabled (missing API key)")
	}

	if req.MaxTokens == 0 && c.config.MaxTokens > 0 {
		req.MaxTokens = c.config.MaxTokens
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.config.APIBase)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

// ExtractSearchParameters uses the language model to turn a free-text
// client request into structured search parameters
func (c *OpenAIClient) ExtractSearchParameters(ctx context.Context, search string) (*model.SearchParameters, Usage, error) {
	req := ChatCompletionRequest{
		Model: c.config.ExtractModel,
		Messages: []ChatMessage{
			{Role: "system", Content: searchExpertSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("get the search parameters for this request: %s", search)},
		},
		Temperature:    c.config.Temperature,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	resp, err := c.ChatCompletion(ctx, req)
	if err != nil {
		return nil, Usage{}, err
	}

	if len(resp.Choices) == 0 {
		return nil, resp.Usage, fmt.Errorf("no response from model")
	}

	var params model.SearchParameters
	content := resp.Choices[0].Message.Content
	if err := utils.ParseAIJSON(content, &params); err != nil {
		log.Printf("Failed to parse model response, content: %s", content)
		return nil, resp.Usage, fmt.Errorf("failed to parse model response: %w", err)
	}

	if err := validateSearchParameters(&params); err != nil {
		return nil, resp.Usage, fmt.Errorf("model response validation failed: %w", err)
	}

	return &params, resp.Usage, nil
}

// RecommendProperties asks the language model to select and explain the
// top matches from the canonical property list
func (c *OpenAIClient) RecommendProperties(ctx context.Context, search string, properties []model.PropertyRecord) (*model.AgentResult, Usage, error) {
	propertyJSON, err := json.MarshalIndent(properties, "", "  ")
	if err != nil {
		return nil, Usage{}, fmt.Errorf("failed to marshal properties: %w", err)
	}

	userPrompt := fmt.Sprintf(
		"Analyze these properties. Select the top 5 meeting the client's needs, provide your reasoning and an overall summary: %s\n\nHere are all the properties:\n%s",
		search, string(propertyJSON),
	)

	req := ChatCompletionRequest{
		Model: c.config.AgentModel,
		Messages: []ChatMessage{
			{Role: "system", Content: realEstateAgentSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    c.config.Temperature,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	resp, err := c.ChatCompletion(ctx, req)
	if err != nil {
		return nil, Usage{}, err
	}

	if len(resp.Choices) == 0 {
		return nil, resp.Usage, fmt.Errorf("no response from model")
	}

	var result model.AgentResult
	content := resp.Choices[0].Message.Content
	if err := utils.ParseAIJSON(content, &result); err != nil {
		log.Printf("Failed to parse model response, content: %s", content)
		return nil, resp.Usage, fmt.Errorf("failed to parse model response: %w", err)
	}

	// The exact-5 constraint is prompt-enforced only; any count flows through
	return &result, resp.Usage, nil
}

// validateSearchParameters applies basic sanity rules to extracted parameters
func validateSearchParameters(params *model.SearchParameters) error {
	if params.SearchTerm == "" {
		return fmt.Errorf("search_term is required")
	}
	if params.PriceMin != nil && *params.PriceMin < 0 {
		return fmt.Errorf("price_min cannot be negative")
	}
	if params.PriceMax != nil && *params.PriceMax < 0 {
		return fmt.Errorf("price_max cannot be negative")
	}
	if params.PriceMin != nil && params.PriceMax != nil && *params.PriceMin > *params.PriceMax {
		return fmt.Errorf("price_min (%d) cannot be greater than price_max (%d)", *params.PriceMin, *params.PriceMax)
	}
	if params.BedsMin != nil && *params.BedsMin < 0 {
		return fmt.Errorf("beds_min cannot be negative")
	}
	if params.BathsMin != nil && *params.BathsMin < 0 {
		return fmt.Errorf("baths_min cannot be negative")
	}
	if params.SqftMin != nil && *params.SqftMin < 0 {
		return fmt.Errorf("sqft_min cannot be negative")
	}
	if params.SqftMax != nil && *params.SqftMax < 0 {
		return fmt.Errorf("sqft_max cannot be negative")
	}
	return nil
}

// Ensure OpenAIClient implements AIClient
var _ AIClient = (*OpenAIClient)(nil)
