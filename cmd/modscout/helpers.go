package main

import (
	"context"

	"modscout/internal/match"
	"modscout/internal/scan"
)

// matchFolder runs the staged match: a quick scan first, escalating to a
// full scan when the quick pass did not auto-match. fullOnly skips the
// quick pass.
func matchFolder(ctx context.Context, scanner *scan.Scanner, matcher *match.Matcher, folder, expectedType string, fullOnly bool) (match.Result, error) {
	if !fullOnly {
		signals, err := scanner.Collect(ctx, folder, match.ModeQuick)
		if err != nil {
			return match.Result{}, err
		}
		result := matcher.Match(signals, expectedType)
		if result.Status == match.StatusAutoMatched {
			return result, nil
		}
	}

	signals, err := scanner.Collect(ctx, folder, match.ModeFullScoring)
	if err != nil {
		return match.Result{}, err
	}
	return matcher.Match(signals, expectedType), nil
}
