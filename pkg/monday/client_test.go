package monday

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{APIKey: "secret", BoardID: "42", BaseURL: srv.URL + "/", HTTPClient: srv.Client()})
	require.NoError(t, err)
	return c
}

func decodeRequest(t *testing.T, r *http.Request) graphQLRequest {
	t.Helper()
	var req graphQLRequest
	require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
	return req
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{BoardID: "1"})
	assert.Error(t, err)
	_, err = NewClient(Config{APIKey: "k"})
	assert.Error(t, err)
}

func TestCreateItem(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		req := decodeRequest(t, r)
		assert.Contains(t, req.Query, "create_item")
		assert.Equal(t, "42", req.Variables["boardId"])
		assert.Equal(t, `Engineer "Go"`, req.Variables["itemName"])

		var cols map[string]any
		require.NoError(t, json.Unmarshal([]byte(req.Variables["columnValues"].(string)), &cols))
		assert.Equal(t, "Acme", cols["text_company"])
		assert.Equal(t, map[string]any{"url": "https://x/1", "text": "Job Link"}, cols["link_col"])

		_, _ = io.WriteString(w, `{"data":{"create_item":{"id":"987"}}}`)
	})

	id, err := c.CreateItem(context.Background(), `Engineer "Go"`, map[string]any{
		"text_company": "Acme",
		"link_col":     LinkValue{URL: "https://x/1", Text: "Job Link"},
	})
	require.NoError(t, err)
	assert.Equal(t, "987", id)
}

func TestCreateItem_GraphQLErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"errors":[{"message":"Column not found"},{"message":"Invalid value"}]}`)
	})

	_, err := c.CreateItem(context.Background(), "x", nil)
	assert.EqualError(t, err, "monday: Column not found; Invalid value")
}

func TestCreateItem_ErrorMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"error_message":"User unauthorized","error_code":"UserUnauthorizedException"}`)
	})

	_, err := c.CreateItem(context.Background(), "x", nil)
	assert.EqualError(t, err, "monday: User unauthorized (UserUnauthorizedException)")
}

func TestCreateItem_HTTPStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, "rate limited\n")
	})

	_, err := c.CreateItem(context.Background(), "x", nil)
	assert.EqualError(t, err, "monday: API error (429): rate limited")
}

func TestBoardColumns(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		assert.Contains(t, req.Query, "boards")
		assert.Equal(t, []any{"42"}, req.Variables["boardId"])

		_, _ = io.WriteString(w, `{"data":{"boards":[{"columns":[
			{"id":"name","title":"Name","type":"name"},
			{"id":"link_mknhdsm8","title":"Link","type":"link"}
		]}]}}`)
	})

	cols, err := c.BoardColumns(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Column{
		{ID: "name", Title: "Name", Type: "name"},
		{ID: "link_mknhdsm8", Title: "Link", Type: "link"},
	}, cols)
}

func TestBoardColumns_MissingBoard(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"boards":[]}}`)
	})

	_, err := c.BoardColumns(context.Background())
	assert.EqualError(t, err, "monday: board 42 not found")
}

func TestBoardColumnsIntegration(t *testing.T) {
	apiKey := os.Getenv("MONDAY_API_KEY")
	boardID := os.Getenv("MONDAY_BOARD_ID")
	if apiKey == "" || boardID == "" {
		t.Skip("MONDAY_API_KEY and MONDAY_BOARD_ID must be set to run this test")
	}

	client, err := NewClient(Config{APIKey: apiKey, BoardID: boardID})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cols, err := client.BoardColumns(ctx)
	require.NoError(t, err)
	for _, col := range cols {
		t.Logf("column %s (%s): %s", col.ID, col.Type, col.Title)
	}
}
