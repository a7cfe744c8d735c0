package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
)

// Prompter asks on the terminal. With assumeYes every confirmation passes
// without asking.
type Prompter struct {
	out       io.Writer
	assumeYes bool
}

func NewPrompter(out io.Writer, assumeYes bool) *Prompter {
	return &Prompter{out: out, assumeYes: assumeYes}
}

func (p *Prompter) Confirm(message string) bool {
	if p.assumeYes {
		return true
	}

	prompt := promptui.Prompt{
		Label:     message,
		IsConfirm: true,
	}

	_, err := prompt.Run()
	if err != nil && !errors.Is(err, promptui.ErrAbort) {
		fmt.Fprintln(p.out, red(err.Error()))
	}

	return err == nil
}

func (p *Prompter) Alert(message string) {
	fmt.Fprintln(p.out, red("✗ "+message))
}

var (
	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)
