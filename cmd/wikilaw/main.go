package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/openmishpat/wikilaw/pkg/batch"
	"github.com/openmishpat/wikilaw/pkg/extract"
	"github.com/openmishpat/wikilaw/pkg/fetch"
	"github.com/openmishpat/wikilaw/pkg/store"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "wikilaw",
		Short: "Hebrew statute structure extractor",
		Long: `Wikilaw converts raw wiki edit-format Hebrew legal text into flat
per-section records, each tagged with its enclosing part (חלק), chapter
(פרק), and sign (סימן), plus document-level metadata.

Structural problems in a document degrade to warnings; the worst outcome
for a malformed law is a partial record set, never a hard failure.`,
		Version: version,
	}

	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(batchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse one document into section records",
		Long: `Parse a single edit-format document and emit its section records
as a JSON array.

Example:
  wikilaw parse --source laws/privacy.txt --stats
  wikilaw parse --source laws/privacy.txt --output privacy.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			output, _ := cmd.Flags().GetString("output")
			vocabPath, _ := cmd.Flags().GetString("vocabulary")
			showStats, _ := cmd.Flags().GetBool("stats")

			if source == "" {
				return fmt.Errorf("--source flag is required")
			}

			parser, err := newParser(vocabPath)
			if err != nil {
				return err
			}

			file, err := os.Open(source)
			if err != nil {
				return fmt.Errorf("failed to open source: %w", err)
			}
			defer file.Close()

			doc, err := parser.Parse(file)
			if err != nil {
				return fmt.Errorf("failed to parse document: %w", err)
			}

			for _, warning := range doc.Warnings {
				fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
			}

			data, err := json.MarshalIndent(doc.Records, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode records: %w", err)
			}
			data = append(data, '\n')

			if output != "" {
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
				fmt.Printf("Wrote %d records to %s\n", len(doc.Records), output)
			} else {
				os.Stdout.Write(data)
			}

			if showStats {
				fmt.Fprintf(os.Stderr, "law: %s\n", doc.LawName)
				fmt.Fprintf(os.Stderr, "parts: %d, chapters: %d, signs: %d, sections: %d\n",
					doc.Stats.Parts, doc.Stats.Chapters, doc.Stats.Signs, doc.Stats.Sections)
			}
			return nil
		},
	}

	cmd.Flags().String("source", "", "Path to the edit-format document (required)")
	cmd.Flags().String("output", "", "Write records to this file instead of stdout")
	cmd.Flags().String("vocabulary", "", "Path to a YAML vocabulary file")
	cmd.Flags().Bool("stats", false, "Print document statistics to stderr")

	return cmd
}

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Parse a directory of documents concurrently",
		Long: `Parse every .txt document under a directory with bounded
concurrency and emit all section records as JSON lines. A document that
fails to read or parse is reported and skipped; the batch continues.

Example:
  wikilaw batch --dir laws/ --concurrency 8 --output records.jsonl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			output, _ := cmd.Flags().GetString("output")
			vocabPath, _ := cmd.Flags().GetString("vocabulary")
			concurrency, _ := cmd.Flags().GetInt("concurrency")

			if dir == "" {
				return fmt.Errorf("--dir flag is required")
			}

			parser, err := newParser(vocabPath)
			if err != nil {
				return err
			}

			source := fetch.NewDirSource(dir)
			names, err := source.List()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				return fmt.Errorf("no .txt documents found in %s", dir)
			}

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				out = f
			}
			sink := store.NewLinesWriter(out)

			runner := batch.NewRunner(parser, concurrency)
			report, err := runner.Run(context.Background(), source, names, sink)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "parsed %d/%d documents (%d degraded, %d failed), %d sections\n",
				report.Succeeded+report.Degraded, report.Attempted,
				report.Degraded, report.Failed, report.Sections)
			for _, entry := range report.Entries {
				if entry.Error != "" {
					fmt.Fprintf(os.Stderr, "  failed %s: %s\n", entry.Name, entry.Error)
				}
				for _, warning := range entry.Warnings {
					fmt.Fprintf(os.Stderr, "  warning %s: %s\n", entry.Name, warning)
				}
			}
			return nil
		},
	}

	cmd.Flags().String("dir", "", "Directory of .txt documents (required)")
	cmd.Flags().String("output", "", "Write JSON lines to this file instead of stdout")
	cmd.Flags().String("vocabulary", "", "Path to a YAML vocabulary file")
	cmd.Flags().Int("concurrency", 4, "Number of documents parsed in parallel")

	return cmd
}

func newParser(vocabPath string) (*extract.Parser, error) {
	if vocabPath == "" {
		return extract.NewParser(), nil
	}
	vocab, err := extract.LoadVocabulary(vocabPath)
	if err != nil {
		return nil, err
	}
	return extract.NewParserWithVocabulary(vocab), nil
}
