// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styled output helpers. Styling applies only on a real terminal; piped
// output stays plain for scripting.

var (
	styleOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2CD7C7")).Bold(true)
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75")).Bold(true)
	styleField = lipgloss.NewStyle().Foreground(lipgloss.Color("#1D9EA3"))
)

func stdoutIsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func printOK(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if stdoutIsTTY() {
		msg = styleOK.Render(msg)
	}
	fmt.Println(msg)
}

func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if stdoutIsTTY() {
		msg = styleError.Render(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}

func printField(name, format string, args ...any) {
	label := name + ":"
	if stdoutIsTTY() {
		label = styleField.Render(label)
	}
	fmt.Printf("  %s %s\n", label, fmt.Sprintf(format, args...))
}
