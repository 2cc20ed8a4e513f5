package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

var (
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleSubtle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func printSuccess(format string, args ...any) {
	if quiet {
		return
	}
	fmt.Println(styleSuccess.Render(fmt.Sprintf(format, args...)))
}

func printNotice(format string, args ...any) {
	if quiet {
		return
	}
	fmt.Println(styleSubtle.Render(fmt.Sprintf(format, args...)))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(os.Stderr, styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, styleError.Render("Error: "+err.Error()))
}

// confirm asks a y/n question on the terminal. Without a TTY there is
// nobody to ask, so the answer is "no"; callers treat that as declining.
func confirm(label string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}

	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		// Covers both "no" (promptui.ErrAbort) and actual prompt errors.
		return false
	}
	return true
}
