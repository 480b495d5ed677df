// =============================================================================
// Invoice Automator - Extraction Collaborator
// =============================================================================
//
// This module calls the document-extraction service: a vision model that
// turns an invoice image or PDF into a loosely-typed structured record.
// The service is a black box consumed through the Extractor interface;
// everything it returns is best-effort and goes through the normalizer
// before anything trusts it.
//
// The prompt is selected by customer profile. ProfileCombined instructs
// the model to carry a combined "CODE*BATCH" stock value through whole,
// so the sanitizer can split it deterministically instead of trusting the
// model to.
//
// =============================================================================

package extractor

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/types"
)

// =============================================================================
// ERRORS
// =============================================================================

// ExtractionError reports a failed extraction for one document: the
// upstream call errored, returned no data, or the response could not be
// parsed against the expected shape. It is surfaced per document and
// never aborts sibling documents.
type ExtractionError struct {
	Document string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.Document, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// =============================================================================
// INTERFACE
// =============================================================================

// Document is one invoice file submitted for extraction.
type Document struct {
	// Name is the source file name, used in errors and logs.
	Name string

	// Data is the raw document bytes.
	Data []byte

	// MIMEType is the document media type ("application/pdf",
	// "image/png", ...).
	MIMEType string
}

// Extractor turns one document into a raw structured record.
type Extractor interface {
	Extract(ctx context.Context, doc Document, profile types.CustomerProfile) (*types.RawInvoice, error)
}

// =============================================================================
// OPENAI CLIENT
// =============================================================================

// Client is the production Extractor backed by an OpenAI-compatible chat
// completion endpoint with vision input.
type Client struct {
	api   *openai.Client
	model string
	log   *zap.SugaredLogger
}

// New creates a Client for the given API key and model.
func New(apiKey, model string, log *zap.SugaredLogger) *Client {
	return &Client{
		api:   openai.NewClient(apiKey),
		model: model,
		log:   log,
	}
}

// Extract submits the document and decodes the model's JSON response into
// a raw invoice record.
func (c *Client) Extract(ctx context.Context, doc Document, profile types.CustomerProfile) (*types.RawInvoice, error) {
	c.log.Debugw("submitting document for extraction",
		"document", doc.Name,
		"mime", doc.MIMEType,
		"profile", profile,
	)

	dataURL := fmt.Sprintf("data:%s;base64,%s",
		doc.MIMEType, base64.StdEncoding.EncodeToString(doc.Data))

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: dataURL,
						},
					},
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt(profile, doc.MIMEType),
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, &ExtractionError{Document: doc.Name, Err: err}
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, &ExtractionError{Document: doc.Name, Err: fmt.Errorf("no data returned from model")}
	}

	raw, err := Decode(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, &ExtractionError{Document: doc.Name, Err: err}
	}

	c.log.Debugw("extraction complete",
		"document", doc.Name,
		"reference", raw.ReferenceNo,
		"lineItems", len(raw.LineItems),
	)
	return raw, nil
}

// Decode parses a model response into a raw invoice record. Models
// occasionally wrap JSON in a markdown fence despite the response format;
// the fence is stripped before decoding.
func Decode(content string) (*types.RawInvoice, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var raw types.RawInvoice
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("response does not match the expected record shape: %w", err)
	}
	return &raw, nil
}

// =============================================================================
// PROMPTS
// =============================================================================

// prompt selects the extraction instruction for the profile. PDFs get a
// framing hint that the input is a structured document rather than a
// photo.
func prompt(profile types.CustomerProfile, mimeType string) string {
	framing := "Analyze the provided invoice image."
	if mimeType == "application/pdf" {
		framing = "Analyze the provided invoice PDF document. This is a structured document; parse the table structure carefully."
	}

	if profile == types.ProfileCombined {
		return framing + `
Extract the following and answer with a single JSON object:
1. Invoice number (key "referenceNo")
2. Customer name (key "customerName")
3. Customer number / customer code (key "customerCode"); leave empty if not visible
4. Invoice date (key "date", format YYYY-MM-DD)
5. The line items table (key "lineItems", array). For each row:
   - Item number / SKU (key "sku"). IMPORTANT: look at the STOCK column; if it contains data like "CODE*BATCH", extract the ENTIRE string including the asterisk.
   - Description (key "description")
   - Batch number (key "batchId")
   - Quantity (key "quantity", number)
   - Unit price (key "unitPrice", number)
   - Total (key "total", number)
If a field is missing, return an empty string, or 0 for numbers.`
	}

	return framing + `
Extract the following and answer with a single JSON object:
1. Invoice number (key "referenceNo")
2. Customer name (key "customerName")
3. Customer number / customer code (key "customerCode")
4. Invoice date (key "date", format YYYY-MM-DD)
5. The line items table (key "lineItems", array). For each row:
   - Item number / SKU (key "sku")
   - Description (key "description")
   - Batch number (key "batchId")
   - Quantity (key "quantity", number; double check that quantity * unit price equals the total)
   - Unit price (key "unitPrice", number)
   - Total (key "total", number)
If a field is missing, return an empty string, or 0 for numbers.`
}
