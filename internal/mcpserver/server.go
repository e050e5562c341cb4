package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CommitmentMCPServer exposes commitment administration as MCP tools.
// It talks to the running service's admin API over HTTP, so the MCP
// process stays stateless.
type CommitmentMCPServer struct {
	server *mcp.Server
}

var globalClient *adminClient

// adminClient is a thin HTTP client for the admin API.
type adminClient struct {
	baseURL string
	http    *http.Client
}

// NewServer creates the MCP server pointed at the admin API base URL.
func NewServer(adminURL string) *CommitmentMCPServer {
	globalClient = &adminClient{
		baseURL: adminURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "commitment-tools",
		Version: "v1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_commitments",
		Description: "List tracked commitments due after a given time. Omit to_be_completed_after to list commitments due after now.",
	}, handleListCommitments)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_commitment",
		Description: "Delete a commitment by id, removing its mirrored calendar event as well.",
	}, handleDeleteCommitment)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_message_window",
		Description: "Get the in-memory message window for a participant, oldest message first.",
	}, handleGetMessageWindow)

	return &CommitmentMCPServer{server: server}
}

// Commitment mirrors the admin API's commitment shape.
type Commitment struct {
	ID              int64  `json:"id"`
	Participant     string `json:"participant"`
	Description     string `json:"description"`
	CommittedAt     string `json:"committedAt"`
	ToBeCompletedAt string `json:"toBeCompletedAt,omitempty"`
	CalendarEventID string `json:"calendarEventId,omitempty"`
	CreatedAt       string `json:"createdAt"`
}

// WindowMessage mirrors the admin API's window message shape.
type WindowMessage struct {
	SenderName string `json:"senderName"`
	FromMe     bool   `json:"fromMe"`
	Content    string `json:"content"`
	SentAt     string `json:"sentAt"`
}

// ListCommitmentsInput is the input for the list_commitments tool.
type ListCommitmentsInput struct {
	ToBeCompletedAfter string `json:"to_be_completed_after,omitempty" jsonschema:"description=RFC 3339 timestamp; only commitments due after this instant are returned (default now)"`
}

// ListCommitmentsOutput contains the matching commitments.
type ListCommitmentsOutput struct {
	Commitments []Commitment `json:"commitments"`
	Error       string       `json:"error,omitempty"`
}

func handleListCommitments(ctx context.Context, req *mcp.CallToolRequest, input ListCommitmentsInput) (*mcp.CallToolResult, ListCommitmentsOutput, error) {
	query := url.Values{}
	if input.ToBeCompletedAfter != "" {
		query.Set("toBeCompletedAfter", input.ToBeCompletedAfter)
	}

	var out struct {
		Commitments []Commitment `json:"commitments"`
	}
	if err := globalClient.get(ctx, "/api/commitments", query, &out); err != nil {
		return nil, ListCommitmentsOutput{Error: err.Error()}, nil
	}
	return nil, ListCommitmentsOutput{Commitments: out.Commitments}, nil
}

// DeleteCommitmentInput is the input for the delete_commitment tool.
type DeleteCommitmentInput struct {
	ID int64 `json:"id" jsonschema:"description=The id of the commitment to delete"`
}

// DeleteCommitmentOutput is the output for the delete_commitment tool.
type DeleteCommitmentOutput struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func handleDeleteCommitment(ctx context.Context, req *mcp.CallToolRequest, input DeleteCommitmentInput) (*mcp.CallToolResult, DeleteCommitmentOutput, error) {
	if err := globalClient.delete(ctx, fmt.Sprintf("/api/commitments/%d", input.ID)); err != nil {
		return nil, DeleteCommitmentOutput{Success: false, Error: err.Error()}, nil
	}
	return nil, DeleteCommitmentOutput{Success: true}, nil
}

// GetMessageWindowInput is the input for the get_message_window tool.
type GetMessageWindowInput struct {
	Participant string `json:"participant" jsonschema:"description=The participant identifier (mobile number)"`
}

// GetMessageWindowOutput contains the participant's window.
type GetMessageWindowOutput struct {
	Participant string          `json:"participant"`
	Messages    []WindowMessage `json:"messages"`
	Error       string          `json:"error,omitempty"`
}

func handleGetMessageWindow(ctx context.Context, req *mcp.CallToolRequest, input GetMessageWindowInput) (*mcp.CallToolResult, GetMessageWindowOutput, error) {
	var out struct {
		Participant string          `json:"participant"`
		Messages    []WindowMessage `json:"messages"`
	}
	path := "/api/windows/" + url.PathEscape(input.Participant)
	if err := globalClient.get(ctx, path, nil, &out); err != nil {
		return nil, GetMessageWindowOutput{Error: err.Error()}, nil
	}
	return nil, GetMessageWindowOutput{Participant: out.Participant, Messages: out.Messages}, nil
}

func (c *adminClient) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *adminClient) delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *adminClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("admin API unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("admin API returned %d: %s", resp.StatusCode, string(body))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

// Run starts the MCP server on stdio.
func (s *CommitmentMCPServer) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
