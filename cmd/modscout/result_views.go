package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"modscout/internal/match"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func statusColor(status match.Status) string {
	switch status {
	case match.StatusAutoMatched:
		return ansiGreen
	case match.StatusNeedsReview:
		return ansiYellow
	case match.StatusNoMatch:
		return ansiRed
	default:
		return ""
	}
}

func formatStatusLabel(value string) string {
	parts := strings.Split(strings.TrimSpace(value), "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printResult renders one match result: a status headline, the candidate
// table, and the evidence summary.
func printResult(out io.Writer, folder string, result match.Result) {
	colorize := shouldColorize(out)

	headline := formatStatusLabel(string(result.Status))
	if result.Summary != "" {
		headline += ": " + result.Summary
	}
	if colorize {
		if color := statusColor(result.Status); color != "" {
			headline = color + headline + ansiReset
		}
	}
	fmt.Fprintf(out, "%s\n%s\n", folder, headline)

	if len(result.Candidates) > 0 {
		rows := make([][]string, 0, len(result.Candidates))
		for _, candidate := range result.Candidates {
			rows = append(rows, []string{
				candidate.Name,
				candidate.Type,
				fmt.Sprintf("%.1f", candidate.Score),
				string(candidate.Confidence),
				describeReasons(candidate.Reasons),
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Entity", "Type", "Score", "Confidence", "Evidence"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
		))
	}

	if len(result.Evidence.MatchedHashes) > 0 {
		fmt.Fprintf(out, "Matched hashes: %s\n", strings.Join(result.Evidence.MatchedHashes, ", "))
	}
	if len(result.Evidence.MatchedTokens) > 0 {
		fmt.Fprintf(out, "Matched tokens: %s\n", strings.Join(result.Evidence.MatchedTokens, ", "))
	}
	if len(result.Evidence.MatchedSections) > 0 {
		fmt.Fprintf(out, "Matched sections: %s\n", strings.Join(result.Evidence.MatchedSections, ", "))
	}
}

// describeReasons compresses a candidate's reasons into "kind xN" pairs,
// keeping the table narrow.
func describeReasons(reasons []match.Reason) string {
	if len(reasons) == 0 {
		return ""
	}
	counts := make(map[match.ReasonKind]int)
	order := make([]match.ReasonKind, 0, len(reasons))
	for _, reason := range reasons {
		if counts[reason.Kind] == 0 {
			order = append(order, reason.Kind)
		}
		counts[reason.Kind]++
	}
	parts := make([]string, 0, len(order))
	for _, kind := range order {
		label := string(kind)
		if counts[kind] > 1 {
			label = fmt.Sprintf("%s x%d", label, counts[kind])
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, ", ")
}
