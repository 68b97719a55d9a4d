// Command checkquestions reports whether a question catalogue holds enough
// questions for every category and difficulty.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/airylvat/mindwars/config"
	"github.com/airylvat/mindwars/db"
	"github.com/airylvat/mindwars/trivia"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var path string
	var fromDB bool
	var minimum int
	flag.StringVar(&path, "path", cfg.QuestionsPath, "JSON catalogue to check")
	flag.BoolVar(&fromDB, "db", false, "check the questions stored in DATABASE_PATH instead of a file")
	flag.IntVar(&minimum, "min", cfg.QuestionsPerPlayer, "minimum questions per category and difficulty")
	flag.Parse()

	questions, err := load(path, fromDB, cfg.DatabasePath)
	if err != nil {
		log.Fatal(err)
	}

	report := trivia.Coverage(questions, minimum)
	printReport(os.Stdout, report)
	if len(report.Insufficient) > 0 {
		os.Exit(1)
	}
}

func load(path string, fromDB bool, dbPath string) ([]trivia.Question, error) {
	if fromDB {
		store, err := db.NewDB(dbPath)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.ListQuestions()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return trivia.DecodeQuestions(f)
}

func printReport(w io.Writer, report trivia.CoverageReport) {
	fmt.Fprintln(w, "\nDistinct categories:")
	for _, c := range report.Categories {
		fmt.Fprintf(w, "  - %s\n", c.Category)
	}
	fmt.Fprintf(w, "\nTotal categories: %d\n", len(report.Categories))

	fmt.Fprintf(w, "\nComplete distribution (minimum required: %d):\n", report.Minimum)
	fmt.Fprintf(w, "%-20s", "Category")
	for _, d := range trivia.StandardDifficulties {
		fmt.Fprintf(w, " %-8s", d)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", 50))
	for _, c := range report.Categories {
		fmt.Fprintf(w, "%-20s", c.Category)
		for _, d := range trivia.StandardDifficulties {
			fmt.Fprintf(w, " %-8d", c.Counts[d])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\nTotal questions: %d\n", report.Total)
	if len(report.Insufficient) == 0 {
		fmt.Fprintf(w, "\nAll combinations have at least %d questions.\n", report.Minimum)
		return
	}
	fmt.Fprintf(w, "\nInsufficient combinations (<%d questions):\n", report.Minimum)
	for _, combo := range report.Insufficient {
		fmt.Fprintf(w, "  - %s\n", combo)
	}
	fmt.Fprintf(w, "\nTotal insufficient combinations: %d\n", len(report.Insufficient))
}
