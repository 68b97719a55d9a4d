package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/airylvat/mindwars/trivia"
)

type DB struct {
	*sql.DB
}

// Fixed width, so played_at sorts as text.
const playedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

func NewDB(path string) (*DB, error) {
	if path == "" {
		path = "./mindwars.db" // Fallback for local development
	}
	log.Printf("Opening database at: %s", path)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Initialize tables
	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS questions (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            type TEXT NOT NULL,
            category TEXT NOT NULL,
            difficulty TEXT NOT NULL,
            prompt TEXT NOT NULL,
            choices TEXT,
            answer TEXT,
            numeric_answer REAL,
            tolerance REAL,
            ordering_answer TEXT
        );
        CREATE TABLE IF NOT EXISTS matches (
            id TEXT PRIMARY KEY,
            played_at TEXT NOT NULL,
            category TEXT,
            difficulty TEXT,
            player1 TEXT,
            player2 TEXT,
            score1 INTEGER,
            score2 INTEGER,
            elapsed1_ms INTEGER,
            elapsed2_ms INTEGER,
            territory1 INTEGER,
            territory2 INTEGER,
            winner TEXT,
            ended_early INTEGER
        );
    `)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db}, nil
}

// AddQuestions stores the questions in one transaction.
func (db *DB) AddQuestions(questions []trivia.Question) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO questions
        (type, category, difficulty, prompt, choices, answer, numeric_answer, tolerance, ordering_answer)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, q := range questions {
		r := trivia.RecordOf(q)
		choices, err := encodeList(r.Choices)
		if err != nil {
			return err
		}
		order, err := encodeList(r.OrderingAnswer)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(string(r.Type), r.Category, r.Difficulty, r.Prompt, choices, r.Answer, r.NumericAnswer, r.Tolerance, order); err != nil {
			return fmt.Errorf("insert question %q: %w", r.Prompt, err)
		}
	}
	return tx.Commit()
}

func (db *DB) AddQuestion(q trivia.Question) error {
	return db.AddQuestions([]trivia.Question{q})
}

func (db *DB) CountQuestions() (int, error) {
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM questions").Scan(&n)
	return n, err
}

func (db *DB) ListQuestions() ([]trivia.Question, error) {
	rows, err := db.Query(`SELECT id, type, category, difficulty, prompt, choices, answer, numeric_answer, tolerance, ordering_answer
        FROM questions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []trivia.Question
	for rows.Next() {
		var (
			id                int
			r                 trivia.Record
			choices, order    sql.NullString
			answer            sql.NullString
			numeric, tolerant sql.NullFloat64
		)
		if err := rows.Scan(&id, &r.Type, &r.Category, &r.Difficulty, &r.Prompt, &choices, &answer, &numeric, &tolerant, &order); err != nil {
			return nil, err
		}
		r.Answer = answer.String
		r.NumericAnswer = numeric.Float64
		r.Tolerance = tolerant.Float64
		if r.Choices, err = decodeList(choices); err != nil {
			return nil, fmt.Errorf("question %d choices: %w", id, err)
		}
		if r.OrderingAnswer, err = decodeList(order); err != nil {
			return nil, fmt.Errorf("question %d ordering: %w", id, err)
		}

		q, err := r.Question()
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", id, err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// RecordMatch appends a finished match to the history. A missing ID gets a
// fresh one.
func (db *DB) RecordMatch(m MatchRecord) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	_, err := db.Exec(`INSERT INTO matches
        (id, played_at, category, difficulty, player1, player2, score1, score2, elapsed1_ms, elapsed2_ms, territory1, territory2, winner, ended_early)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.PlayedAt.UTC().Format(playedAtLayout), m.Category, m.Difficulty,
		m.Player1, m.Player2, m.Score1, m.Score2,
		m.Elapsed1.Milliseconds(), m.Elapsed2.Milliseconds(),
		m.Territory1, m.Territory2, m.Winner, m.EndedEarly)
	return err
}

// ListMatches returns the most recent matches first.
func (db *DB) ListMatches(limit int) ([]MatchRecord, error) {
	rows, err := db.Query(`SELECT id, played_at, category, difficulty, player1, player2, score1, score2,
        elapsed1_ms, elapsed2_ms, territory1, territory2, winner, ended_early
        FROM matches ORDER BY played_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []MatchRecord
	for rows.Next() {
		var (
			m                  MatchRecord
			playedAt           string
			elapsed1, elapsed2 int64
		)
		if err := rows.Scan(&m.ID, &playedAt, &m.Category, &m.Difficulty, &m.Player1, &m.Player2, &m.Score1, &m.Score2,
			&elapsed1, &elapsed2, &m.Territory1, &m.Territory2, &m.Winner, &m.EndedEarly); err != nil {
			return nil, err
		}
		if m.PlayedAt, err = time.Parse(playedAtLayout, playedAt); err != nil {
			return nil, fmt.Errorf("match %s played_at: %w", m.ID, err)
		}
		m.Elapsed1 = time.Duration(elapsed1) * time.Millisecond
		m.Elapsed2 = time.Duration(elapsed2) * time.Millisecond
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func encodeList(items []string) (sql.NullString, error) {
	if len(items) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeList(s sql.NullString) ([]string, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var items []string
	err := json.Unmarshal([]byte(s.String), &items)
	return items, err
}
