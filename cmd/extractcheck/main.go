// Command extractcheck runs one transcript extraction against a real
// backend and prints the structured result. Useful for checking prompts,
// credentials and schema conformance outside the server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/studenthub-io/studenthub/internal/common"
	"github.com/studenthub-io/studenthub/internal/encode"
	"github.com/studenthub-io/studenthub/internal/llm"
	"github.com/studenthub-io/studenthub/internal/llm/openai"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <transcript-file>\n", os.Args[0])
		os.Exit(2)
	}
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg := common.LoadConfig()

	uri, err := encode.EncodeFile(os.Args[1])
	if err != nil {
		logger.Error("encoding transcript", "path", os.Args[1], "error", err)
		os.Exit(1)
	}

	client := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	fields, raw, err := client.ExtractTranscript(context.Background(), llm.ExtractRequest{DocumentURI: uri})
	if err != nil {
		logger.Error("extraction failed", "error", err)
		if len(raw) > 0 {
			fmt.Fprintln(os.Stderr, string(raw))
		}
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(fields, "", "  ")
	fmt.Println(string(out))
}
