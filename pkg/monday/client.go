package monday

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultBaseURL = "https://api.monday.com/v2"

const createItemMutation = `mutation ($boardId: ID!, $itemName: String!, $columnValues: JSON!) {
  create_item (board_id: $boardId, item_name: $itemName, column_values: $columnValues) {
    id
  }
}`

const boardColumnsQuery = `query ($boardId: [ID!]) {
  boards (ids: $boardId) {
    columns {
      id
      title
      type
    }
  }
}`

// NewClient instantiates a Monday.com API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" || cfg.BoardID == "" {
		return nil, fmt.Errorf("monday: api key and board id are required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		apiKey:     cfg.APIKey,
		boardID:    cfg.BoardID,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// CreateItem creates one item on the board and returns its id.
// columnValues is keyed by column id.
func (c *Client) CreateItem(ctx context.Context, itemName string, columnValues map[string]any) (string, error) {
	if c == nil {
		return "", fmt.Errorf("monday: client is nil")
	}

	encoded, err := json.Marshal(columnValues)
	if err != nil {
		return "", fmt.Errorf("monday: encode column values: %w", err)
	}

	var resp graphQLResponse[createItemData]
	err = c.do(ctx, graphQLRequest{
		Query: createItemMutation,
		Variables: map[string]any{
			"boardId":      c.boardID,
			"itemName":     itemName,
			"columnValues": string(encoded),
		},
	}, &resp)
	if err != nil {
		return "", err
	}
	if err := resp.err(); err != nil {
		return "", err
	}

	return resp.Data.CreateItem.ID, nil
}

// BoardColumns lists the columns of the configured board
func (c *Client) BoardColumns(ctx context.Context) ([]Column, error) {
	if c == nil {
		return nil, fmt.Errorf("monday: client is nil")
	}

	var resp graphQLResponse[boardsData]
	err := c.do(ctx, graphQLRequest{
		Query:     boardColumnsQuery,
		Variables: map[string]any{"boardId": []string{c.boardID}},
	}, &resp)
	if err != nil {
		return nil, err
	}
	if err := resp.err(); err != nil {
		return nil, err
	}
	if len(resp.Data.Boards) == 0 {
		return nil, fmt.Errorf("monday: board %s not found", c.boardID)
	}

	return resp.Data.Boards[0].Columns, nil
}

func (c *Client) do(ctx context.Context, body graphQLRequest, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("monday: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("monday: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("monday: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("monday: API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("monday: decode response: %w", err)
	}

	return nil
}

func (r graphQLResponse[T]) err() error {
	if r.ErrorMessage != "" {
		return fmt.Errorf("monday: %s (%s)", r.ErrorMessage, r.ErrorCode)
	}
	if len(r.Errors) == 0 {
		return nil
	}

	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return errors.New("monday: " + strings.Join(msgs, "; "))
}
