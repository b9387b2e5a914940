// Package agent implements the dvt chat assistant on top of the Gemini
// API. The assistant is seeded with the current ledger reports so it
// can answer questions about the user's actual holdings and earnings.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model the assistant chats with.
const DefaultModel = "gemini-2.0-flash"

const systemPrompt = `You are a personal assistant for a dividend tracker
of Taiwan-listed securities. The user's current reports are provided
below in markdown. Amounts are in New Taiwan dollars and quantities in
shares. Answer questions about the holdings, dividends, and earnings
shown in the reports. When a question needs data the reports do not
contain, say so instead of guessing.`

// Agent is the interactive assistant handling one chat session.
type Agent struct {
	w         io.Writer
	r         *bufio.Reader
	modelName string
	reports   string
	chat      *genai.Chat
}

// New creates an assistant writing to w and reading user input from r.
// reports is the markdown of the current ledger views, injected as
// grounding context.
func New(w io.Writer, r io.Reader, reports string) *Agent {
	return &Agent{
		w:         w,
		r:         bufio.NewReader(r),
		modelName: DefaultModel,
		reports:   reports,
	}
}

// Start creates the underlying chat session.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: systemPrompt},
				{Text: a.reports},
			},
		},
	}
	chat, err := client.Chats.Create(ctx, a.modelName, config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	return nil
}

// ask sends one message and returns the text of the first candidate.
func (a *Agent) ask(ctx context.Context, input string) (string, error) {
	resp, err := a.chat.Send(ctx, &genai.Part{Text: input})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from model %s", a.modelName)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

const prompt = "assist> "

// Run starts the interactive REPL session. Any prompts given are
// consumed before reading from the input stream, so a question can be
// asked straight from the command line.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to dvt assist. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		answer, err := a.ask(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, answer)
	}
}
