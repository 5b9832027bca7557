package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ValueInputRaw stores values exactly as given, without formula parsing.
const ValueInputRaw = "RAW"

type Client struct {
	service *sheets.Service
}

type Config struct {
	CredentialsPath string
	CredentialsJSON []byte
	// Endpoint overrides the API base URL. Used by tests.
	Endpoint string
	Options  []option.ClientOption
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	opts := append([]option.ClientOption{}, cfg.Options...)

	switch {
	case cfg.CredentialsPath != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	case len(cfg.CredentialsJSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(cfg.CredentialsJSON))
	case len(cfg.Options) == 0:
		return nil, fmt.Errorf("sheets: credentials path or JSON is required")
	}

	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: failed to create service: %w", err)
	}

	return &Client{
		service: service,
	}, nil
}

// GetValues reads a range. Trailing empty rows and cells are omitted by the API.
func (c *Client) GetValues(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error) {
	if c.service == nil {
		return nil, fmt.Errorf("sheets: service is nil")
	}

	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, range_).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	return resp.Values, nil
}

func (c *Client) UpdateValues(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error {
	if c.service == nil {
		return fmt.Errorf("sheets: service is nil")
	}

	valueRange := &sheets.ValueRange{
		Values: values,
	}

	_, err := c.service.Spreadsheets.Values.Update(spreadsheetID, range_, valueRange).
		ValueInputOption(ValueInputRaw).
		Context(ctx).
		Do()

	return err
}
