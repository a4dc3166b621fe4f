package main

import (
	"fmt"
	"strings"

	"github.com/ahrav/go-ballot/internal/domain"
)

// renderReport formats a simulation report as the line-oriented text the
// CLI prints. Sections appear only for the methods that ran.
func renderReport(r *domain.Report) string {
	var b strings.Builder

	if r.ElectionName != "" {
		fmt.Fprintf(&b, "Election: %s\n", r.ElectionName)
	}
	fmt.Fprintf(&b, "Total ballots: %d\n\n", r.TotalWeight)

	if r.IRV != nil {
		renderIRV(&b, r.IRV)
	}
	if r.Borda != nil {
		renderBorda(&b, r.Borda)
	}
	if r.Condorcet != nil {
		renderCondorcet(&b, r.Condorcet, r.Candidates)
	}

	return b.String()
}

func renderIRV(b *strings.Builder, result *domain.IRVResult) {
	b.WriteString("Instant Runoff (IRV)\n")
	for i, round := range result.Rounds {
		fmt.Fprintf(b, "  Round %d (remaining: %s):\n", i+1, strings.Join(round.Remaining, ", "))
		for _, candidate := range round.Remaining {
			fmt.Fprintf(b, "    %s: %d\n", candidate, round.Tally[candidate])
		}
		fmt.Fprintf(b, "    Total counted: %d\n", round.Total)
	}
	if winner, ok := result.WinnerName(); ok {
		fmt.Fprintf(b, "  Winner: %s\n", winner)
	} else {
		b.WriteString("  Winner: No winner\n")
	}
	b.WriteString("\n")
}

func renderBorda(b *strings.Builder, result *domain.BordaResult) {
	b.WriteString("Borda Count\n")
	for _, candidate := range result.Standing {
		fmt.Fprintf(b, "  %s: %d points\n", candidate, result.Scores[candidate])
	}
	fmt.Fprintf(b, "  Winner: %s\n\n", result.Winner)
}

func renderCondorcet(b *strings.Builder, result *domain.CondorcetResult, candidates []string) {
	b.WriteString("Condorcet (pairwise)\n")
	for _, candidate := range candidates {
		fmt.Fprintf(b, "  %s: %d pairwise wins\n", candidate, result.Victories[candidate])
	}
	if winner, ok := result.WinnerName(); ok {
		fmt.Fprintf(b, "  Condorcet winner: %s\n", winner)
	} else {
		b.WriteString("  No Condorcet winner found.\n")
	}
	b.WriteString("\n")
}
