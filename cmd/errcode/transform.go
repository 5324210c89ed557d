package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"errcode/internal/config"
	"errcode/internal/diagfmt"
	"errcode/internal/driver"
	"errcode/internal/errcode"
	"errcode/internal/project"
	"errcode/internal/registry"
	"errcode/internal/trace"
)

func newTransformCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transform [flags] file.js",
		Short: "Run the pass over a single unit",
		Long: `Transform rewrites one file and prints the result. The configuration is
the JSON object {"commitHash", "filePath", "mode"} given with --config, or
the equivalent flags; flags win over the file. filePath is the path hashed
into every code; without --config it defaults to the argument. Entries go to
--registry, else to [registry].dir of errcode.toml, else to ./error_codes.
With --dry-run the registry is not touched and only the commit is required.`,
		Args: cobra.ExactArgs(1),
		RunE: runTransform,
	}
	cmd.Flags().String("config", "", "pass configuration JSON file")
	cmd.Flags().String("commit", "", "commit fingerprint (commitHash)")
	cmd.Flags().String("registry", "", "registry directory (default: [registry].dir or error_codes)")
	cmd.Flags().String("mode", "", "generate or check")
	cmd.Flags().String("file-path", "", "path hashed into codes (filePath)")
	cmd.Flags().Bool("dry-run", false, "skip the registry")
	cmd.Flags().StringP("output", "o", "", "write the result here instead of stdout")
	return cmd
}

// transformRegistry is --registry, then [registry].dir of the nearest
// manifest, then DefaultRegistryDir under the working directory.
func transformRegistry(cmd *cobra.Command) (*registry.Store, error) {
	if dir, _ := cmd.Flags().GetString("registry"); dir != "" {
		return registry.Open(dir), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	manifest, ok, err := project.LoadManifest(wd)
	if err != nil {
		return nil, err
	}
	if ok {
		return registry.Open(manifest.RegistryDir()), nil
	}
	return registry.Open(filepath.Join(wd, project.DefaultRegistryDir)), nil
}

// transformConfig merges --config with the flags. arg is the unit on the
// command line; it stands in for filePath only when there is no --config.
func transformConfig(cmd *cobra.Command, arg string) (config.Config, config.Mode, error) {
	flags := cmd.Flags()
	var cfg config.Config
	path, _ := flags.GetString("config")
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, config.ModeUnknown, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		// поля проверяются после наложения флагов
		if cfg, err = config.Decode(data); err != nil {
			return cfg, config.ModeUnknown, fmt.Errorf("%s: %w", path, err)
		}
	}
	if v, _ := flags.GetString("commit"); v != "" {
		cfg.CommitHash = v
	}
	if v, _ := flags.GetString("file-path"); v != "" {
		cfg.FilePath = v
	}
	if cfg.FilePath == "" && path == "" {
		cfg.FilePath = driver.LogicalPath("", arg)
	}
	if v, _ := flags.GetString("mode"); v != "" {
		cfg.Mode = v
	}
	if cfg.CommitHash == "" {
		cfg.CommitHash = os.Getenv(commitEnv)
	}

	if dry, _ := flags.GetBool("dry-run"); dry {
		if cfg.CommitHash == "" {
			return cfg, config.ModeUnknown, errcode.MissingField("commitHash")
		}
		if cfg.FilePath == "" {
			return cfg, config.ModeUnknown, errcode.MissingField("filePath")
		}
		return cfg, config.ModeDryRun, nil
	}
	if err := cfg.Validate(); err != nil {
		return cfg, config.ModeUnknown, err
	}
	return cfg, cfg.ParsedMode(), nil
}

func runTransform(cmd *cobra.Command, args []string) error {
	path := args[0]
	cfg, mode, err := transformConfig(cmd, path)
	if err != nil {
		return err
	}
	var store *registry.Store
	if mode != config.ModeDryRun {
		if store, err = transformRegistry(cmd); err != nil {
			return err
		}
	}
	gw, err := registry.NewGateway(mode, store)
	if err != nil {
		return err
	}
	maxDiag, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	logical := cfg.FilePath

	tracer := trace.FromContext(cmd.Context())
	res, err := driver.TransformSource(path, logical, content, driver.UnitOptions{
		Commit:         cfg.CommitHash,
		Gateway:        gw,
		MaxDiagnostics: maxDiag,
		Tracer:         tracer,
		ParentSpan:     trace.CurrentSpan(cmd.Context()),
	})
	if err != nil {
		var syn *driver.SyntaxError
		if errors.As(err, &syn) {
			syn.Bag.Sort()
			diagfmt.Pretty(cmd.ErrOrStderr(), syn.Bag, syn.FileSet, diagfmt.PrettyOpts{
				Color:     useColor(cmd, os.Stderr),
				Context:   1,
				ShowNotes: true,
			})
		}
		return err
	}

	if out, _ := cmd.Flags().GetString("output"); out != "" {
		if err := os.WriteFile(out, res.Output, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
	} else if _, err := cmd.OutOrStdout().Write(res.Output); err != nil {
		return err
	}
	if !quiet(cmd) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d codes (%d already assigned)\n", logical, len(res.Sites), res.Skipped)
	}
	return nil
}
