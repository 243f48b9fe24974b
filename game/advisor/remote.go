package advisor

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/playmesh/tictactoe/game/engine"
)

// DefaultRemoteTimeout bounds the remote suggestion call. The per-game
// exclusive section is never held while waiting on the remote.
const DefaultRemoteTimeout = 2 * time.Second

// completer is the slice of the OpenAI client the remote advisor uses.
type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Remote asks an OpenAI chat model for a move and silently falls back to
// the local policy on timeout, error, or an illegal suggestion.
type Remote struct {
	client   completer
	model    string
	timeout  time.Duration
	fallback *Local
}

// NewRemote creates a remote-backed advisor.
func NewRemote(apiKey string) *Remote {
	return &Remote{
		client:   openai.NewClient(apiKey),
		model:    openai.GPT3Dot5Turbo,
		timeout:  DefaultRemoteTimeout,
		fallback: NewLocal(),
	}
}

// Suggest implements the Advisor interface.
func (r *Remote) Suggest(ctx context.Context, board engine.Board, mark engine.Mark) (int, error) {
	pos, err := r.remoteSuggest(ctx, board, mark)
	if err == nil {
		return pos, nil
	}
	log.Printf("Warning: remote advisor failed, using local policy: %v", err)
	return r.fallback.Suggest(ctx, board, mark)
}

func (r *Remote) remoteSuggest(ctx context.Context, board engine.Board, mark engine.Mark) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a Tic-Tac-Toe expert. Always respond with only a single number (0-8) representing your move.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(board, mark),
			},
		},
		Temperature: 0.1,
		MaxTokens:   10,
	})
	if err != nil {
		return -1, err
	}
	if len(resp.Choices) == 0 {
		return -1, fmt.Errorf("empty completion")
	}

	pos, err := strconv.Atoi(strings.TrimSpace(resp.Choices[0].Message.Content))
	if err != nil {
		return -1, fmt.Errorf("non-numeric suggestion: %w", err)
	}
	if err := engine.Validate(board, pos); err != nil {
		return -1, fmt.Errorf("illegal suggestion %d: %w", pos, err)
	}
	return pos, nil
}

// buildPrompt renders the board the way the model is told to read it:
// positions 0-8 row by row, open cells shown as spaces.
func buildPrompt(board engine.Board, mark engine.Mark) string {
	var rows []string
	for i := 0; i < 3; i++ {
		var cells []string
		for _, cell := range board[i*3 : (i+1)*3] {
			if cell == engine.Empty {
				cells = append(cells, " ")
			} else {
				cells = append(cells, string(cell))
			}
		}
		rows = append(rows, strings.Join(cells, " | "))
	}

	return fmt.Sprintf(`You are playing Tic-Tac-Toe. The board is represented as positions 0-8:
0 1 2
3 4 5
6 7 8

Current board state (You are %s):
%s

Make the best move. Respond with ONLY the position number (0-8) where you want to play.`, mark, strings.Join(rows, "\n"))
}
