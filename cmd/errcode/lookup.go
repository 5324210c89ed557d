package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"errcode/internal/errcode"
	"errcode/internal/project"
	"errcode/internal/registry"
)

func newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup [flags] code|digest...",
		Short: "Resolve error codes to their registry entries",
		Long: `Lookup finds the registry entry of each code. An argument may also be an
error digest with a code appended ("<digest>;E..."). With --commit the hash
is split off the code exactly; otherwise, or when the code carries another
commit, the longest registry hash that ends the code wins.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runLookup,
	}
	cmd.Flags().String("commit", "", "commit fingerprint of the codes")
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every registry entry",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("verify", false, "only print entries whose file name does not match their content")
	return cmd
}

type entryJSON struct {
	Code            string `json:"code,omitempty"`
	Hash            string `json:"hash"`
	FilePath        string `json:"file_path"`
	ErrorMessage    string `json:"error_message"`
	OccurrenceCount int    `json:"occurrence_count"`
}

func openRegistry() (*registry.Store, *project.Manifest, error) {
	manifest, err := loadProject()
	if err != nil {
		return nil, nil, err
	}
	return registry.Open(manifest.RegistryDir()), manifest, nil
}

// resolveCode finds the entry of code, or ok=false. A code that does not start
// with E<commit> falls back to the hash suffix match over list.
func resolveCode(store *registry.Store, code, commit string, list func() ([]registry.Entry, error)) (registry.Entry, bool, error) {
	if commit != "" {
		if hash, ok := errcode.SplitCode(code, commit); ok {
			exists, err := store.Exists(hash)
			if err != nil || !exists {
				return registry.Entry{}, false, err
			}
			e, err := store.Read(hash)
			return e, err == nil, err
		}
	}
	all, err := list()
	if err != nil {
		return registry.Entry{}, false, err
	}
	// самый длинный хеш, которым заканчивается код
	var best registry.Entry
	found := false
	for _, e := range all {
		if errcode.MatchesHash(code, e.Hash) && len(e.Hash) > len(best.Hash) {
			best, found = e, true
		}
	}
	return best, found, nil
}

func runLookup(cmd *cobra.Command, args []string) error {
	store, _, err := openRegistry()
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	// коды из реестра не зависят от текущего коммита: env и [build].commit
	// здесь не читаются
	commit, _ := cmd.Flags().GetString("commit")
	commit = strings.TrimSpace(commit)

	var all []registry.Entry
	listed := false
	list := func() ([]registry.Entry, error) {
		if !listed {
			var err error
			if all, err = store.List(); err != nil {
				return nil, err
			}
			listed = true
		}
		return all, nil
	}

	var found []entryJSON
	missing := 0
	for _, arg := range args {
		code := arg
		if c, ok := errcode.ExtractFromDigest(arg); ok {
			code = c
		}
		e, ok, err := resolveCode(store, code, commit, list)
		if err != nil {
			return err
		}
		if !ok {
			missing++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: no registry entry\n", arg)
			continue
		}
		found = append(found, toEntryJSON(code, e))
	}

	if err := writeEntries(cmd.OutOrStdout(), format, found); err != nil {
		return err
	}
	if missing > 0 {
		return fmt.Errorf("%d of %d codes not found in %s", missing, len(args), store.Dir())
	}
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	store, _, err := openRegistry()
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	var entries []registry.Entry
	verify, _ := cmd.Flags().GetBool("verify")
	if verify {
		entries, err = store.Verify()
	} else {
		entries, err = store.List()
	}
	if err != nil {
		return err
	}
	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryJSON("", e))
	}
	if err := writeEntries(cmd.OutOrStdout(), format, out); err != nil {
		return err
	}
	if verify && len(entries) > 0 {
		return fmt.Errorf("%d registry entries do not match their hash", len(entries))
	}
	return nil
}

func toEntryJSON(code string, e registry.Entry) entryJSON {
	return entryJSON{
		Code:            code,
		Hash:            e.Hash,
		FilePath:        e.Record.FilePath,
		ErrorMessage:    e.Record.ErrorMessage,
		OccurrenceCount: e.Record.OccurrenceCount,
	}
}

func writeEntries(w io.Writer, format string, entries []entryJSON) error {
	if format == "json" {
		if entries == nil {
			entries = []entryJSON{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	for _, e := range entries {
		key := e.Hash
		if e.Code != "" {
			key = e.Code
		}
		if _, err := fmt.Fprintf(w, "%s  %s #%d  %s\n", key, e.FilePath, e.OccurrenceCount, strconv.Quote(e.ErrorMessage)); err != nil {
			return err
		}
	}
	return nil
}
