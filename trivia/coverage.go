package trivia

import (
	"fmt"
	"sort"
)

// Difficulties a complete catalogue is expected to cover in every category.
var StandardDifficulties = []string{"EASY", "MEDIUM", "HARD"}

// CategoryCoverage counts questions per standard difficulty.
type CategoryCoverage struct {
	Category string
	Counts   map[string]int
}

// CoverageReport summarises how well a catalogue can feed full matches.
type CoverageReport struct {
	Categories   []CategoryCoverage
	Total        int
	Minimum      int
	Insufficient []string
}

// Coverage counts questions per category and difficulty and lists every
// combination holding fewer than min questions.
func Coverage(questions []Question, min int) CoverageReport {
	counts := make(map[string]map[string]int)
	for _, q := range questions {
		byDifficulty, ok := counts[q.Category]
		if !ok {
			byDifficulty = make(map[string]int)
			counts[q.Category] = byDifficulty
		}
		byDifficulty[difficultyKey(q.Difficulty)]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	report := CoverageReport{Total: len(questions), Minimum: min}
	for _, name := range names {
		report.Categories = append(report.Categories, CategoryCoverage{Category: name, Counts: counts[name]})
		for _, difficulty := range StandardDifficulties {
			if n := counts[name][difficulty]; n < min {
				report.Insufficient = append(report.Insufficient, fmt.Sprintf("%s %s (%d/%d)", name, difficulty, n, min))
			}
		}
	}
	return report
}
