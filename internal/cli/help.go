package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

// Custom help styles
var (
	helpDescStyle = lipgloss.NewStyle().
			Foreground(boostColor).
			Italic(true).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(boostColor).
				MarginTop(1)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AA00")).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AAAA")).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)
)

// StyledHelpPrinter returns a kong help printer with lipgloss styling. It
// lists the commands of the application, or the arguments and flags of the
// selected command.
func StyledHelpPrinter(options kong.HelpOptions) kong.HelpPrinter {
	return func(options kong.HelpOptions, ctx *kong.Context) error {
		var sb strings.Builder

		node := ctx.Model.Node
		if sel := ctx.Selected(); sel != nil {
			node = sel
		}

		sb.WriteString(TitleStyle.Render(ctx.Model.Name))
		sb.WriteString("\n")
		if help := node.Help; help != "" {
			sb.WriteString(helpDescStyle.Render(help))
			sb.WriteString("\n")
		}

		sb.WriteString(helpSectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(node.Summary())
		sb.WriteString("\n")

		writeSection(&sb, "Commands:", helpArgStyle, commands(node))
		writeSection(&sb, "Arguments:", helpArgStyle, arguments(node))
		writeSection(&sb, "Flags:", helpFlagStyle, flags(node))

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())
		return nil
	}
}

type helpEntry struct {
	name       string
	help       string
	defaultVal string
}

func writeSection(sb *strings.Builder, title string, style lipgloss.Style, entries []helpEntry) {
	if len(entries) == 0 {
		return
	}

	sb.WriteString("\n")
	sb.WriteString(helpSectionStyle.Render(title))
	sb.WriteString("\n")
	for _, e := range entries {
		sb.WriteString("  ")
		sb.WriteString(style.Render(e.name))
		if e.help != "" {
			sb.WriteString("  ")
			sb.WriteString(e.help)
		}
		if e.defaultVal != "" {
			sb.WriteString(" ")
			sb.WriteString(helpDefaultStyle.Render("(default: " + e.defaultVal + ")"))
		}
		sb.WriteString("\n")
	}
}

func commands(node *kong.Node) []helpEntry {
	var out []helpEntry
	for _, child := range node.Children {
		if child.Hidden {
			continue
		}
		out = append(out, helpEntry{name: child.Name, help: child.Help})
	}

	return out
}

func arguments(node *kong.Node) []helpEntry {
	var out []helpEntry
	for _, arg := range node.Positional {
		out = append(out, helpEntry{name: arg.Summary(), help: arg.Help})
	}

	return out
}

func flags(node *kong.Node) []helpEntry {
	out := []helpEntry{{name: "-h, --help", help: "Show context-sensitive help."}}

	for _, group := range node.AllFlags(true) {
		for _, f := range group {
			if f.Name == "help" {
				continue
			}

			name := "--" + f.Name
			if f.Short != 0 {
				name = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
			}
			if !f.IsBool() {
				name += "=" + strings.ToUpper(f.FormatPlaceHolder())
			}

			out = append(out, helpEntry{name: name, help: f.Help, defaultVal: f.Default})
		}
	}

	return out
}
