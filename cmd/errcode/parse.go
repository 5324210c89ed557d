package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"errcode/internal/diagfmt"
	"errcode/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.js",
		Short: "Parse a source file and list its error constructions",
		Long: `Parse reports syntax diagnostics and, for a file that parses, every
new Error(...) with the message template the codes would be derived from.`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|sarif)")
	return cmd
}

type constructionJSON struct {
	Line    uint32 `json:"line"`
	Col     uint32 `json:"col"`
	Message string `json:"message"`
	Wrapped bool   `json:"wrapped"`
}

func runParse(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	maxDiag, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}
	res, err := driver.Parse(args[0], maxDiag)
	if err != nil {
		return err
	}
	res.Bag.Sort()
	out := cmd.OutOrStdout()

	switch format {
	case "sarif":
		return diagfmt.Sarif(out, res.Bag, res.FileSet, diagfmt.SarifRunMeta{
			ToolName:       "errcode",
			InvocationArgs: os.Args,
		})
	case "json":
		if res.Bag.Len() > 0 {
			return diagfmt.JSON(out, res.Bag, res.FileSet, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
		}
		items := make([]constructionJSON, 0, len(res.Constructions))
		for _, c := range res.Constructions {
			pos, _ := res.FileSet.Resolve(c.Span)
			items = append(items, constructionJSON{Line: pos.Line, Col: pos.Col, Message: c.Message, Wrapped: c.Wrapped})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	case "pretty":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if res.Bag.HasErrors() {
		diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			Context:   1,
			ShowNotes: true,
		})
		return errors.New("parse failed")
	}
	for _, c := range res.Constructions {
		pos, _ := res.FileSet.Resolve(c.Span)
		mark := ""
		if c.Wrapped {
			mark = "  (has code)"
		}
		fmt.Fprintf(out, "%d:%d  %s%s\n", pos.Line, pos.Col, strconv.Quote(c.Message), mark)
	}
	if !quiet(cmd) {
		fmt.Fprintf(out, "%d error constructions\n", len(res.Constructions))
	}
	return nil
}
