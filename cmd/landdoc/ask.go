package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/landdoc-verifier/internal/chat"
	"github.com/joseph-ayodele/landdoc-verifier/internal/fields"
	"github.com/joseph-ayodele/landdoc-verifier/internal/pipeline"
)

var askCmd = &cobra.Command{
	Use:   "ask <file> [question...]",
	Short: "Ask a question about a document",
	Long:  "Extracts the document, parses its fields and answers the question. Without a question it prints the welcome message and suggested questions.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)
	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	file, err := pipeline.RawFileFromPath(args[0])
	if err != nil {
		return err
	}
	text, err := a.Processor.Extract.Extract(ctx, file)
	if err != nil {
		return err
	}
	rec, _ := fields.NewParser().ParseWithFallback(text.Text, file.FileName)

	question := strings.TrimSpace(strings.Join(args[1:], " "))
	if question == "" {
		fmt.Println(chat.Welcome(rec))
		for _, q := range chat.Suggestions(rec.DocumentType, 0) {
			fmt.Println("  - " + q)
		}
		return nil
	}
	reply := a.Assistant.Ask(ctx, question, rec, text.Text)
	fmt.Println(reply.Answer)
	return nil
}
