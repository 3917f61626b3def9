// Package agent provides the chat loop that connects the LLM to tools.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"chatbot-local/tools"
)

const maxToolRounds = 20 // allow multi-step tool sequences without looping forever

const systemPromptTemplate = `You are a helpful AI assistant with access to tools.

To use a tool, emit a call marker in your reply:
[TOOL:tool_name]arguments[/TOOL]

Arguments are either a single value or key=value pairs separated by |:
[TOOL:calculator]2^3 + 1[/TOOL]
[TOOL:write_file]path=notes.txt|content=Remember the milk[/TOOL]
[TOOL:tavily_search]query=latest Go release|num_results=5[/TOOL]

You may emit several calls in one reply; each result comes back as a tool
message. When you have the results you need, answer the user in plain text
without any call markers.

AVAILABLE TOOLS:
%s`

// Agent handles conversations with the LLM and executes embedded tool calls.
type Agent struct {
	model    string
	url      string
	registry *tools.Registry
	client   *http.Client
}

// Message represents a chat message in the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Message Message `json:"message"`
}

// New creates a new Agent with the given model, URL, and tool registry.
func New(model, url string, registry *tools.Registry) *Agent {
	return &Agent{
		model:    model,
		url:      url,
		registry: registry,
		client: &http.Client{
			Timeout: 120 * time.Second, // LLM responses can be slow
		},
	}
}

// Chat sends a message and handles any embedded tool calls in a loop. Each
// round, the model's reply is scanned for [TOOL:...] markers; every call is
// executed through the registry (which always returns a string) and fed
// back as a tool message.
func (a *Agent) Chat(ctx context.Context, userMessage string) (string, error) {
	messages := []Message{
		{Role: "system", Content: fmt.Sprintf(systemPromptTemplate, a.registry.Describe())},
		{Role: "user", Content: userMessage},
	}

	for i := 0; i < maxToolRounds; i++ {
		resp, err := a.sendRequest(ctx, messages)
		if err != nil {
			return "", err
		}

		calls := tools.ParseCalls(resp.Message.Content)
		if len(calls) == 0 {
			return strings.TrimSpace(resp.Message.Content), nil
		}

		messages = append(messages, Message{Role: "assistant", Content: resp.Message.Content})

		for _, call := range calls {
			log.Printf("[agent] executing tool %s with %d args", call.Tool, len(call.Args))
			result := a.registry.Execute(ctx, call.Tool, call.Args)
			messages = append(messages, Message{Role: "tool", Content: result})
		}
	}

	return "", fmt.Errorf("exceeded maximum tool rounds (%d)", maxToolRounds)
}

func (a *Agent) sendRequest(ctx context.Context, messages []Message) (*chatResponse, error) {
	reqBody := chatRequest{
		Model:    a.model,
		Messages: messages,
		Stream:   false,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Ollama: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Ollama returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	log.Printf("[agent] response: role=%s content_len=%d",
		chatResp.Message.Role, len(chatResp.Message.Content))

	return &chatResp, nil
}
