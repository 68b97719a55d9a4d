package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/airylvat/mindwars/bot"
	"github.com/airylvat/mindwars/config"
	"github.com/airylvat/mindwars/console"
	"github.com/airylvat/mindwars/db"
	"github.com/airylvat/mindwars/game"
	"github.com/airylvat/mindwars/trivia"
)

func main() {
	importPath := flag.String("import", "", "import a JSON question catalogue into the database and exit")
	history := flag.Int("history", 0, "print the last N match results and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var logFile *os.File
	if cfg.LogPath != "" {
		logFile, err = os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		log.SetOutput(logFile)
	}

	err = run(cfg, *importPath, *history, os.Stdin, os.Stdout)
	if err != nil {
		log.Print(err)
		fmt.Fprintln(os.Stderr, "mindwars:", err)
	}
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

// run opens the store and performs one command: import, history or a match
// played over in/out (or Discord when configured).
func run(cfg config.Config, importPath string, history int, in io.Reader, out io.Writer) error {
	store, err := db.NewDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	switch {
	case importPath != "":
		n, err := importCatalogue(store, importPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Imported %d questions from %s\n", n, importPath)
		return nil
	case history > 0:
		return printHistory(out, store, history)
	}

	questions, err := loadQuestions(store, cfg.QuestionsPath)
	if err != nil {
		return err
	}
	bank := trivia.NewBank(questions, nil)

	if cfg.Transport == config.TransportDiscord {
		b, err := bot.NewBot(cfg.DiscordToken, cfg.DiscordChannelID, cfg.AdminID, cfg.AdminRoleID)
		if err != nil {
			return err
		}
		if err := b.Start(); err != nil {
			return err
		}
		defer b.Close()
		in, out = b.Channel, b.Channel
	}

	outcome, err := game.New(console.New(in, out), bank, cfg.Settings()).Run()
	if errors.Is(err, game.ErrNoQuestions) {
		return nil
	}
	if err != nil {
		log.Printf("Match ended: %v", err)
		return nil
	}

	if err := store.RecordMatch(db.NewMatchRecord(outcome, time.Now())); err != nil {
		log.Printf("Error recording match %s: %v", outcome.MatchID, err)
	}
	return nil
}

func importCatalogue(store *db.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	questions, err := trivia.DecodeQuestions(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	if err := store.AddQuestions(questions); err != nil {
		return 0, err
	}
	log.Printf("Imported %d questions from %s", len(questions), path)
	return len(questions), nil
}

// loadQuestions reads the store, seeding it from the JSON catalogue the
// first time.
func loadQuestions(store *db.DB, catalogue string) ([]trivia.Question, error) {
	n, err := store.CountQuestions()
	if err != nil {
		return nil, err
	}
	if n == 0 && catalogue != "" {
		if _, err := importCatalogue(store, catalogue); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	questions, err := store.ListQuestions()
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d questions", len(questions))
	return questions, nil
}

func printHistory(w io.Writer, store *db.DB, limit int) error {
	matches, err := store.ListMatches(limit)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matches played yet.")
		return nil
	}
	for _, m := range matches {
		result := "tie"
		if m.Winner != "" {
			result = "winner " + m.Winner
		}
		fmt.Fprintf(w, "%s  %-12s %-8s %s %d (%.2fs) vs %s %d (%.2fs)  %s\n",
			m.PlayedAt.Local().Format("2006-01-02 15:04"), m.Category, m.Difficulty,
			m.Player1, m.Score1, m.Elapsed1.Seconds(), m.Player2, m.Score2, m.Elapsed2.Seconds(), result)
	}
	return nil
}
