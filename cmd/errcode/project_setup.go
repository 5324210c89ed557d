package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"errcode/internal/config"
	"errcode/internal/driver"
	"errcode/internal/errcode"
	"errcode/internal/project"
	"errcode/internal/registry"
)

// commitEnv is consulted when neither --commit nor [build].commit is set.
const commitEnv = "ERRCODE_COMMIT"

// resolveCommit picks the commit: flag, then environment, then manifest.
func resolveCommit(flag string, manifest *project.Manifest) (string, error) {
	if c := strings.TrimSpace(flag); c != "" {
		return c, nil
	}
	if c := strings.TrimSpace(os.Getenv(commitEnv)); c != "" {
		return c, nil
	}
	if manifest != nil {
		if c := strings.TrimSpace(manifest.Config.Build.Commit); c != "" {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w (use --commit or %s)", errcode.MissingField("commitHash"), commitEnv)
}

// loadProject finds errcode.toml above the working directory.
func loadProject() (*project.Manifest, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	manifest, ok, err := project.LoadManifest(wd)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no %s found in %s or its parents (run 'errcode init')", project.ManifestName, wd)
	}
	return manifest, nil
}

func addPassFlags(cmd *cobra.Command) {
	cmd.Flags().String("commit", "", "commit fingerprint embedded in every code (overrides [build].commit)")
	cmd.Flags().Int("jobs", 0, "parallel units (0 = [build].jobs or GOMAXPROCS)")
	cmd.Flags().String("out-dir", "", "write rewritten sources under this directory (overrides [build].out_dir)")
	cmd.Flags().Bool("write", false, "rewrite changed sources in place")
	cmd.Flags().Bool("cache", false, "use the transform cache (overrides [build].cache)")
	cmd.Flags().Bool("no-cache", false, "disable the transform cache")
}

// buildRunOptions assembles driver options from the manifest and flags.
func buildRunOptions(cmd *cobra.Command, args []string, mode config.Mode) (driver.RunOptions, *project.Manifest, error) {
	manifest, err := loadProject()
	if err != nil {
		return driver.RunOptions{}, nil, err
	}
	flags := cmd.Flags()
	commitFlag, _ := flags.GetString("commit")
	commit, err := resolveCommit(commitFlag, manifest)
	if err != nil {
		return driver.RunOptions{}, nil, err
	}
	files, err := manifest.CollectSources(args)
	if err != nil {
		return driver.RunOptions{}, nil, err
	}
	if len(files) == 0 {
		return driver.RunOptions{}, nil, errors.New("no source files found")
	}
	maxDiag, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return driver.RunOptions{}, nil, err
	}

	opts := driver.RunOptions{
		Root:           manifest.Root,
		Files:          files,
		Commit:         commit,
		Mode:           mode,
		Store:          registry.Open(manifest.RegistryDir()),
		Jobs:           manifest.Config.Build.Jobs,
		MaxDiagnostics: maxDiag,
		OutDir:         manifest.OutDir(),
	}
	if jobs, _ := flags.GetInt("jobs"); jobs > 0 {
		opts.Jobs = jobs
	}
	if out, _ := flags.GetString("out-dir"); out != "" {
		opts.OutDir = out
	}
	opts.InPlace, _ = flags.GetBool("write")

	useCache := manifest.Config.Build.Cache
	if flags.Changed("cache") {
		useCache, _ = flags.GetBool("cache")
	}
	if noCache, _ := flags.GetBool("no-cache"); noCache {
		useCache = false
	}
	if useCache {
		dir, err := driver.DefaultCacheDir("errcode")
		if err != nil {
			return driver.RunOptions{}, nil, err
		}
		if opts.Cache, err = driver.OpenDiskCache(dir); err != nil {
			return driver.RunOptions{}, nil, fmt.Errorf("failed to open cache: %w", err)
		}
	}
	return opts, manifest, nil
}
