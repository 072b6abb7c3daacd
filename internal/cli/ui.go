package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/genai-bias/biasplot/pkg/errors"
)

// Terminal palette (ANSI 256).
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleCached  = lipgloss.NewStyle().Foreground(colorGreen)
	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

// Status line prefixes.
var (
	prefixSuccess = lipgloss.NewStyle().Foreground(colorGreen).Render("✓")
	prefixError   = lipgloss.NewStyle().Foreground(colorRed).Render("✗")
	prefixWarning = lipgloss.NewStyle().Foreground(colorYellow).Render("!")
	prefixInfo    = lipgloss.NewStyle().Foreground(colorGray).Render("›")
)

// maxWarningDetails bounds the messages listed per warning code.
const maxWarningDetails = 3

func printStatus(prefix, msg string) {
	fmt.Println(prefix + " " + msg)
}

func printSuccess(format string, args ...any) {
	printStatus(prefixSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printStatus(prefixError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printStatus(prefixWarning, styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printStatus(prefixInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}

// printWarnings prints data-quality warnings grouped by code, listing at
// most a few messages per code.
func printWarnings(warnings []errors.Warning) {
	var codes []errors.Code
	byCode := make(map[errors.Code][]string)
	for _, w := range warnings {
		if _, ok := byCode[w.Code]; !ok {
			codes = append(codes, w.Code)
		}
		byCode[w.Code] = append(byCode[w.Code], w.Message)
	}
	for _, code := range codes {
		msgs := byCode[code]
		if len(msgs) == 1 {
			printWarning("%s", msgs[0])
			continue
		}
		printWarning("%d warnings (%s)", len(msgs), code)
		for i, m := range msgs {
			if i == maxWarningDetails {
				printDetail("... and %d more", len(msgs)-maxWarningDetails)
				break
			}
			printDetail("%s", m)
		}
	}
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Println("  " + styleDim.Render("→") + " " + styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + styleValue.Render(value))
}

// printStats prints a plot run summary on one line, e.g.
// "3 sources · 41 occupations · 4/6 cached".
func printStats(sources, occupations, hits, artifacts int) {
	parts := []string{
		styleDim.Render(fmt.Sprintf("%d sources", sources)),
		styleDim.Render(fmt.Sprintf("%d occupations", occupations)),
	}
	switch {
	case artifacts > 0 && hits == artifacts:
		parts = append(parts, styleCached.Render("cached"))
	case hits > 0:
		parts = append(parts, styleCached.Render(fmt.Sprintf("%d/%d cached", hits, artifacts)))
	default:
		parts = append(parts, styleDim.Render("fresh"))
	}
	fmt.Println("  " + strings.Join(parts, styleDim.Render(" · ")))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(styleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}
