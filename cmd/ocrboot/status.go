package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	orchestrators "github.com/ochairo/ocrboot/internal/domain-orchestrators"
)

type styles struct {
	ok   lipgloss.Style
	warn lipgloss.Style
	fail lipgloss.Style
	dim  lipgloss.Style
}

func newStyles() styles {
	return styles{
		ok:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		warn: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		fail: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		dim:  lipgloss.NewStyle().Faint(true),
	}
}

// printStep writes one status line per bootstrap step
func printStep(w io.Writer, s styles, step orchestrators.StepResult) {
	if step.Error != nil {
		_, _ = fmt.Fprintf(w, "%s %s\n", s.fail.Render("✗"), step.Name)
		return
	}

	state := "already present"
	if step.Installed {
		state = "installed"
	}
	line := fmt.Sprintf("%s %s %s", s.ok.Render("✓"), step.Name, s.dim.Render(state))
	if step.MachinePathUpdated || step.ProcessPathUpdated {
		line += " " + s.warn.Render("(PATH updated)")
	}
	_, _ = fmt.Fprintln(w, line)
}

// printStatus writes one line per dependency for the list command
func printStatus(w io.Writer, s styles, st orchestrators.DependencyStatus) {
	d := st.Descriptor
	mark := s.fail.Render("✗")
	state := "missing"
	if st.Present {
		mark = s.ok.Render("✓")
		state = "installed"
	}

	name := d.Name
	if d.Version != "" {
		name += " " + d.Version
	}
	_, _ = fmt.Fprintf(w, "%s %-28s %s\n", mark, name, s.dim.Render(state+" ("+d.Install.Method+")"))
	if d.Description != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", d.Description)
	}
}
