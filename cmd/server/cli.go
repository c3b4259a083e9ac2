package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/saascontratos/contratos/internal/contracts"
	"github.com/saascontratos/contratos/internal/currency"
	"github.com/saascontratos/contratos/internal/document"
	"github.com/saascontratos/contratos/internal/extenso"
)

var extensoCmd = &cobra.Command{
	Use:   "extenso <valor>",
	Short: "Write an amount out in words",
	Long: `Prints the amount in reais written out in Portuguese.

Both "1234,56" and "1234.56" are accepted.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtenso,
}

var (
	renderInput string
	renderOut   string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a contract JSON file",
	Long: `Reads one contract in the API input format and renders it.

With --out the PDF is written to that file; without it the composed
sections are printed as plain text.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "input", "i", "", "contract JSON file (- for stdin)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "PDF output file")
	_ = renderCmd.MarkFlagRequired("input")
}

func runExtenso(cmd *cobra.Command, args []string) error {
	amount, ok := currency.ParseAmount(args[0])
	if !ok {
		return fmt.Errorf("invalid amount %q", args[0])
	}
	words, err := extenso.Spell(amount)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", currency.FormatBRL(amount), words)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sections, err := composeFile(renderInput, cmd.InOrStdin())
	if err != nil {
		return err
	}

	if renderOut == "" {
		return printSections(cmd.OutOrStdout(), sections)
	}

	f, err := os.Create(renderOut)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	renderer := document.NewPDFRenderer(cfg.Document.Author)
	if err := renderer.Render(f, sections); err != nil {
		f.Close()
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", renderOut)
	return nil
}

// composeFile validates the contract in path and composes its sections.
func composeFile(path string, stdin io.Reader) ([]document.Section, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var in contracts.Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	c, err := in.Validate(0)
	if err != nil {
		return nil, err
	}

	fields, err := document.FieldsFor(c)
	if err != nil {
		return nil, err
	}
	return document.Compose(fields), nil
}

func printSections(w io.Writer, sections []document.Section) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", document.Title); err != nil {
		return err
	}
	for _, s := range sections {
		if s.Heading != "" {
			if _, err := fmt.Fprintln(w, s.Heading); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n\n", s.Body); err != nil {
			return err
		}
	}
	return nil
}
