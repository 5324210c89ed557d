package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch m := uiMode(strings.ToLower(strings.TrimSpace(value))); m {
	case "":
		return uiModeAuto, nil
	case uiModeAuto, uiModeOn, uiModeOff:
		return m, nil
	default:
		return "", fmt.Errorf("--ui: unknown mode %q, want auto, on or off", value)
	}
}

// useProgressUI decides whether a pass over units files gets the TUI.
// --quiet always wins; auto needs a terminal and more than one unit.
func useProgressUI(cmd *cobra.Command, units int) (bool, error) {
	value, _ := cmd.Root().PersistentFlags().GetString("ui")
	mode, err := readUIMode(value)
	if err != nil {
		return false, err
	}
	if quiet(cmd) {
		return false, nil
	}
	switch mode {
	case uiModeOn:
		return true, nil
	case uiModeOff:
		return false, nil
	default:
		return units > 1 && isTerminal(os.Stdout), nil
	}
}
