package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/pable/csinsights/internal/analysis"
)

const askSystemPrompt = `You are a Counter-Strike 2 utility coach. You are given one match report
as JSON and a question from the player.

Rules:
- Answer ONLY from the data provided. Never invent statistics.
- Cite specific throws (by id and round) or numbers when making a claim.
- If the data cannot answer the question, say so.
- Be concise and actionable.

Field glossary:
- player: kills, deaths, assists, adr (damage per round), rating.
- utility: grenade counts; flashAssists are kills on enemies you flashed.
- rounds[]: round number, side (T/CT), won, kills, survived, entry (got the opening kill).
- throws[]: one grenade each. blindMs/teamBlindMs apply to flashes, losBlockMs to
  smokes, areaMs to molotovs. score is 0..1 effectiveness; ineffective throws
  scored below 0.25 or were flashes that blinded teammates more than enemies;
  note "team-flash" marks the latter.
- insights[]: advisories already derived from the throws.`

var (
	askMap      string
	askModel    string
	askAPIKey   string
	askMarkdown bool
)

var askCmd = &cobra.Command{
	Use:   "ask <match-id> <question>",
	Short: "Ask an AI coach about a match report (requires ANTHROPIC_API_KEY)",
	Args:  cobra.ExactArgs(2),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askMap, "map", "", "map label for the report")
	askCmd.Flags().StringVar(&askModel, "model", "", "Anthropic model to use (default from config)")
	askCmd.Flags().StringVar(&askAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	askCmd.Flags().BoolVar(&askMarkdown, "markdown", false, "buffer the answer and render it as markdown")
}

func runAsk(cmd *cobra.Command, args []string) error {
	var mapID *string
	if askMap != "" {
		mapID = &askMap
	}
	a, err := analysis.Generate(args[0], mapID)
	if err != nil {
		return fmt.Errorf("analyze %q: %w", args[0], err)
	}
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	apiKey := askAPIKey
	if apiKey == "" {
		apiKey = cfg.Anthropic.APIKey
	}
	modelID := askModel
	if modelID == "" {
		modelID = cfg.Anthropic.Model
	}
	if !askMarkdown {
		return callAnthropic(cmd.Context(), os.Stdout, apiKey, modelID, string(data), args[1])
	}

	var buf bytes.Buffer
	if err := callAnthropic(cmd.Context(), &buf, apiKey, modelID, string(data), args[1]); err != nil {
		return err
	}
	return renderMarkdown(os.Stdout, buf.String())
}

// renderMarkdown styles md for the terminal, falling back to plain text.
func renderMarkdown(w io.Writer, md string) error {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			_, err = io.WriteString(w, out)
			return err
		}
	}
	_, err = io.WriteString(w, md)
	return err
}

// callAnthropic streams a response from the Anthropic API to w.
func callAnthropic(ctx context.Context, w io.Writer, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(w, "\n─── AI Coach ────────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: askSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(w, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(w, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed: check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
