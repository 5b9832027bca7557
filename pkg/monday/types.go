package monday

import (
	"net/http"
)

// Config defines Monday.com API client settings
type Config struct {
	APIKey     string
	BoardID    string
	BaseURL    string
	HTTPClient *http.Client
}

// Client talks to the Monday.com GraphQL API for a single board
type Client struct {
	apiKey     string
	boardID    string
	baseURL    string
	httpClient *http.Client
}

// Column describes one board column
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// LinkValue is the column value shape for link columns
type LinkValue struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// LongTextValue is the column value shape for long text columns
type LongTextValue struct {
	Text string `json:"text"`
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse[T any] struct {
	Data         T              `json:"data"`
	Errors       []graphQLError `json:"errors"`
	ErrorMessage string         `json:"error_message"`
	ErrorCode    string         `json:"error_code"`
}

type createItemData struct {
	CreateItem struct {
		ID string `json:"id"`
	} `json:"create_item"`
}

type boardsData struct {
	Boards []struct {
		Columns []Column `json:"columns"`
	} `json:"boards"`
}
