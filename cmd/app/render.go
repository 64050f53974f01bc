package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/astrosteveo/awesome-copilot-tui/internal/usecase"
)

// renderViews writes one table row per view, grouped by kind in the order
// instructions, prompts, chatmodes, collections, the way the status and list
// commands share a single table shape.
func renderViews(w io.Writer, views []usecase.AssetView, useColor bool) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.AppendHeader(table.Row{"Enabled", "Kind", "Key", "Name", "Status", "Collections"})

	for _, v := range views {
		tbl.AppendRow(table.Row{
			enabledCell(v.EffectiveEnabled, useColor),
			v.Kind,
			v.Key().String(),
			v.Name,
			statusCell(v, useColor),
			strings.Join(v.Collections, ","),
		})
	}
	tbl.AppendFooter(table.Row{"", "", "", "", "", fmt.Sprintf("%d assets", len(views))})
	tbl.Render()
}

func enabledCell(enabled bool, useColor bool) string {
	if !useColor {
		if enabled {
			return "on"
		}
		return "off"
	}
	if enabled {
		return color.New(color.FgGreen).Sprint("on")
	}
	return color.New(color.FgHiBlack).Sprint("off")
}

func statusCell(v usecase.AssetView, useColor bool) string {
	if v.Kind == usecase.KindCollection {
		return fmt.Sprintf("%d/%d enabled, %d diff", v.EnabledCount, v.MemberCount, v.DiffCount)
	}
	if !useColor {
		return string(v.LocalStatus)
	}
	switch v.LocalStatus {
	case usecase.StatusSame:
		return color.New(color.FgGreen).Sprint(v.LocalStatus)
	case usecase.StatusDiff:
		return color.New(color.FgYellow).Sprint(v.LocalStatus)
	case usecase.StatusMissing:
		return color.New(color.FgHiBlack).Sprint(v.LocalStatus)
	default:
		return string(v.LocalStatus)
	}
}

// renderWarnings prints one line per accumulated session warning.
func renderWarnings(w io.Writer, warnings []error, useColor bool) {
	if len(warnings) == 0 {
		return
	}
	label := "warning:"
	for _, e := range warnings {
		if useColor {
			color.New(color.FgYellow).Fprintf(w, "%s %s\n", label, e)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", label, e)
	}
}
