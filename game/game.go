package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/airylvat/mindwars/player"
	"github.com/airylvat/mindwars/trivia"
)

const (
	DefaultQuestionsPerPlayer = 3
	DefaultAnswerTimeLimit    = 15 * time.Second

	winnerClaims = 2
	loserClaims  = 1
)

var (
	ErrNoQuestions = errors.New("no questions available")
	ErrBoardFull   = errors.New("no free cells left on the map")
)

// QuestionSource hands out questions; every draw removes the question.
type QuestionSource interface {
	Categories() []string
	Difficulties(category string) []string
	Draw(category, difficulty string) (trivia.Question, bool)
	DrawAny() (trivia.Question, bool)
}

// IO is the interactive console. ReadNonEmptyLine re-prompts on blank
// input and SelectOne returns one of options.
type IO interface {
	Print(line string)
	ReadLine(prompt string) (string, error)
	ReadNonEmptyLine(prompt string) (string, error)
	SelectOne(prompt string, options []string) (string, error)
}

type Settings struct {
	QuestionsPerPlayer int
	BoardSize          int
	AnswerTimeLimit    time.Duration
	// MixedCategories skips category and difficulty selection and draws
	// from the whole bank.
	MixedCategories bool
}

func (s Settings) withDefaults() Settings {
	if s.QuestionsPerPlayer < 1 {
		s.QuestionsPerPlayer = DefaultQuestionsPerPlayer
	}
	if s.BoardSize < 1 {
		s.BoardSize = DefaultBoardSize
	}
	if s.AnswerTimeLimit <= 0 {
		s.AnswerTimeLimit = DefaultAnswerTimeLimit
	}
	return s
}

// Outcome is the terminal state of a match.
type Outcome struct {
	MatchID    string
	Category   string
	Difficulty string
	Players    []*player.Player
	Winner     *player.Player
	Tie        bool
	Territory  [2]int
	Rounds     []RoundResult
	EndedEarly bool
}

type Option func(*Game)

func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.log = l }
}

// WithClock replaces time.Now for answer timing.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// WithChooser replaces the random pick of the seat that chooses the category.
func WithChooser(intN func(n int) int) Option {
	return func(g *Game) { g.intN = intN }
}

// Game runs one hot-seat match from setup to results.
type Game struct {
	io       IO
	source   QuestionSource
	settings Settings
	log      *log.Logger
	now      func() time.Time
	intN     func(n int) int
}

func New(io IO, source QuestionSource, settings Settings, opts ...Option) *Game {
	g := &Game{
		io:       io,
		source:   source,
		settings: settings.withDefaults(),
		log:      log.Default(),
		now:      time.Now,
		intN:     rand.IntN,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run plays the match. ErrNoQuestions is returned when nothing can be drawn;
// any other error comes from the IO.
func (g *Game) Run() (Outcome, error) {
	out := Outcome{MatchID: uuid.NewString()}
	g.printWelcome()

	players, err := g.setupPlayers()
	if err != nil {
		return out, err
	}
	out.Players = players
	g.io.Print("")
	g.io.Print(fmt.Sprintf("  %s will go first.", players[0].Name()))
	g.log.Printf("Match %s started: %s vs %s", out.MatchID, players[0].Name(), players[1].Name())

	questions, err := g.acquireQuestions(players, &out)
	if err != nil {
		g.log.Printf("Match %s aborted: %v", out.MatchID, err)
		return out, err
	}

	board := NewBoard(g.settings.BoardSize)
	for i, q := range questions {
		r, err := g.playRound(i, len(questions), q, players)
		if err != nil {
			return out, err
		}

		g.announceEstimate(r, players)
		if seat, ok := speedBonusSeat(r); ok {
			players[seat].AwardSpeedBonus()
			r.SpeedBonus = seat
			g.io.Print(fmt.Sprintf("  %s was faster and earns a +%d speed bonus.", players[seat].Name(), player.SpeedBonus))
		}

		r.Conqueror = conqueror(r)
		out.Rounds = append(out.Rounds, r)
		g.log.Printf("Match %s round %d conquered by %s", out.MatchID, r.Number, players[r.Conqueror].Name())

		if err := g.territoryPhase(r, players, board); err != nil {
			if !errors.Is(err, ErrBoardFull) {
				return out, err
			}
			g.log.Printf("Match %s map full after round %d", out.MatchID, r.Number)
			out.EndedEarly = true
			break
		}
	}

	out.Territory = [2]int{board.Count(Player1), board.Count(Player2)}
	out.Winner, _ = Winner(players)
	out.Tie = out.Winner == nil
	g.printResults(out)

	if out.Tie {
		g.log.Printf("Match %s finished in a tie", out.MatchID)
	} else {
		g.log.Printf("Match %s won by %s", out.MatchID, out.Winner.Name())
	}
	return out, nil
}

func (g *Game) setupPlayers() ([]*player.Player, error) {
	g.io.Print("  The game requires 2 players.")
	players := make([]*player.Player, 0, 2)
	for i := 1; i <= 2; i++ {
		for {
			name, err := g.io.ReadNonEmptyLine(fmt.Sprintf("Enter name for Player %d:", i))
			if err != nil {
				return nil, err
			}
			p, err := player.New(name)
			if err != nil {
				g.io.Print("  Error: " + err.Error())
				continue
			}
			if len(players) == 1 && strings.EqualFold(players[0].Name(), p.Name()) {
				g.io.Print("  That name is taken. Please choose another one.")
				continue
			}
			players = append(players, p)
			break
		}
	}
	return players, nil
}

func (g *Game) acquireQuestions(players []*player.Player, out *Outcome) ([]trivia.Question, error) {
	n := g.settings.QuestionsPerPlayer
	var questions []trivia.Question

	if g.settings.MixedCategories {
		out.Category, out.Difficulty = "mixed", "mixed"
		for len(questions) < n {
			q, ok := g.source.DrawAny()
			if !ok {
				break
			}
			questions = append(questions, q)
		}
	} else {
		categories := g.source.Categories()
		if len(categories) == 0 {
			g.io.Print("  No questions are available. The match cannot start.")
			return nil, ErrNoQuestions
		}

		chooser := g.intN(2)
		category, err := g.io.SelectOne(fmt.Sprintf("  %s, choose a category:", players[chooser].Name()), categories)
		if err != nil {
			return nil, err
		}
		difficulties := g.source.Difficulties(category)
		if len(difficulties) == 0 {
			g.io.Print(fmt.Sprintf("  No questions are available for %s. The match cannot start.", category))
			return nil, ErrNoQuestions
		}
		difficulty, err := g.io.SelectOne(fmt.Sprintf("  %s, choose the difficulty:", players[1-chooser].Name()), difficulties)
		if err != nil {
			return nil, err
		}
		out.Category, out.Difficulty = category, difficulty

		for len(questions) < n {
			q, ok := g.source.Draw(category, difficulty)
			if !ok {
				break
			}
			questions = append(questions, q)
		}
	}

	if len(questions) == 0 {
		g.io.Print(fmt.Sprintf("  No questions are available for %s (%s). The match cannot start.", out.Category, out.Difficulty))
		return nil, ErrNoQuestions
	}
	if len(questions) < n {
		g.io.Print(fmt.Sprintf("  Warning: only %d of %d questions are available. Playing %d rounds.", len(questions), n, len(questions)))
	}
	g.log.Printf("Drew %d questions for %s (%s)", len(questions), out.Category, out.Difficulty)
	return questions, nil
}

func (g *Game) playRound(i, total int, q trivia.Question, players []*player.Player) (RoundResult, error) {
	r := RoundResult{Number: i + 1, Question: q, SpeedBonus: -1}
	final := i == total-1

	g.io.Print("")
	g.io.Print(fmt.Sprintf("  =========== ROUND %d of %d ===========", r.Number, total))

	for seat, p := range players {
		a, err := g.answer(p, q, r.Number, total, final)
		if err != nil {
			return r, err
		}
		r.Answers[seat] = a
	}
	return r, nil
}

func (g *Game) answer(p *player.Player, q trivia.Question, number, total int, final bool) (Answer, error) {
	var a Answer
	if err := g.handoff(p); err != nil {
		return a, err
	}

	if final && p.CanWager() {
		stake, err := g.offerWager(p)
		if err != nil {
			return a, err
		}
		a.Wager = stake
	}

	g.io.Print("")
	g.io.Print(fmt.Sprintf("  %s - Question %d of %d", p.Name(), number, total))
	g.io.Print("  ----------------------------------------")
	g.io.Print("  " + strings.ReplaceAll(strings.TrimRight(trivia.Format(q), "\n"), "\n", "\n  "))

	start := g.now()
	response, err := g.readValidAnswer(q)
	if err != nil {
		return a, err
	}
	a.Response = response
	a.Elapsed = g.now().Sub(start)
	p.AddElapsed(a.Elapsed)

	a.Correct = trivia.IsCorrect(q, response)
	if a.Correct && a.Elapsed > g.settings.AnswerTimeLimit {
		a.Correct = false
		a.TooSlow = true
	}

	switch {
	case a.Wager > 0:
		delta, err := p.SettleWager(a.Wager, a.Correct)
		if err != nil {
			return a, fmt.Errorf("settle wager for %s: %w", p.Name(), err)
		}
		a.Delta = delta
	case a.Correct:
		award := p.AwardCorrect(q.Difficulty)
		a.Delta = award.Total()
		if award.StreakBonus > 0 {
			g.io.Print(fmt.Sprintf("  >> STREAK! %d in a row, +%d bonus", p.Streak(), award.StreakBonus))
		}
	default:
		p.RecordIncorrect()
	}

	switch {
	case a.Correct:
		g.io.Print(fmt.Sprintf("  >> CORRECT! %+d points", a.Delta))
	case a.TooSlow:
		g.io.Print(fmt.Sprintf("  >> Correct, but too slow (over %s). It counts as wrong.", g.settings.AnswerTimeLimit))
	default:
		g.io.Print("  >> WRONG! The answer was: " + q.CanonicalAnswer())
	}
	if a.Wager > 0 && !a.Correct {
		g.io.Print(fmt.Sprintf("  >> You lose your wager of %d points.", a.Wager))
	}
	g.io.Print(fmt.Sprintf("  Score: %d (%.2fs)", p.Score(), a.Elapsed.Seconds()))
	return a, nil
}

func (g *Game) handoff(p *player.Player) error {
	g.io.Print("")
	g.io.Print("  +----------------------------------------+")
	g.io.Print("  |                                        |")
	g.io.Print(fmt.Sprintf("  |     PASS THE DEVICE TO %-15s |", strings.ToUpper(p.Name())))
	g.io.Print("  |     Other player, look away!           |")
	g.io.Print("  |                                        |")
	g.io.Print("  +----------------------------------------+")
	_, err := g.io.ReadLine("  Press ENTER when ready...")
	return err
}

func (g *Game) offerWager(p *player.Player) (int, error) {
	choice, err := g.io.SelectOne(fmt.Sprintf("  Final round! %s, do you want to wager points? (score: %d)", p.Name(), p.Score()), []string{"No", "Yes"})
	if err != nil || choice != "Yes" {
		return 0, err
	}
	for {
		raw, err := g.io.ReadNonEmptyLine(fmt.Sprintf("  How many points do you stake? (1-%d)", p.Score()))
		if err != nil {
			return 0, err
		}
		stake, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			g.io.Print("  Invalid input. Please enter a whole number.")
			continue
		}
		if err := p.ValidateWager(stake); err != nil {
			g.io.Print(fmt.Sprintf("  Please enter a number between 1 and %d.", p.Score()))
			continue
		}
		return stake, nil
	}
}

func (g *Game) readValidAnswer(q trivia.Question) (string, error) {
	for {
		response, err := g.io.ReadNonEmptyLine("  Your answer:")
		if err != nil {
			return "", err
		}
		if trivia.IsValidAnswer(q, response) {
			return response, nil
		}
		g.io.Print("  Invalid answer. Please enter a valid option.")
	}
}

func (g *Game) announceEstimate(r RoundResult, players []*player.Player) {
	body, ok := r.Question.Body.(trivia.Numeric)
	if !ok {
		return
	}
	responses := make([]EstimationResponse, 0, len(players))
	for seat, p := range players {
		v, ok := trivia.ParseNumeric(r.Answers[seat].Response)
		if !ok {
			continue
		}
		responses = append(responses, EstimationResponse{Player: p, Value: v, Elapsed: r.Answers[seat].Elapsed})
	}
	if closest := EstimationWinner(body.Answer, responses); closest != nil {
		g.io.Print(fmt.Sprintf("  Closest estimate to %g: %s", body.Answer, closest.Name()))
	}
}

func (g *Game) territoryPhase(r RoundResult, players []*player.Player, board *Board) error {
	winner := r.Conqueror
	loser := 1 - winner

	g.io.Print("")
	g.io.Print(fmt.Sprintf("  %s conquers round %d and claims %d cells. %s claims %d.",
		players[winner].Name(), r.Number, winnerClaims, players[loser].Name(), loserClaims))

	for i := 0; i < winnerClaims; i++ {
		if err := g.claim(board, winner, players[winner]); err != nil {
			return err
		}
	}
	for i := 0; i < loserClaims; i++ {
		if err := g.claim(board, loser, players[loser]); err != nil {
			return err
		}
	}
	g.io.Print("")
	g.io.Print("  " + strings.ReplaceAll(strings.TrimRight(board.Render(), "\n"), "\n", "\n  "))
	return nil
}

func (g *Game) claim(board *Board, seat int, p *player.Player) error {
	if board.Free() == 0 {
		g.io.Print("  The map is full. The match ends here.")
		return ErrBoardFull
	}
	owner := OwnerOf(seat)

	g.io.Print("")
	g.io.Print("  CURRENT MAP:")
	g.io.Print("  " + strings.ReplaceAll(strings.TrimRight(board.Render(), "\n"), "\n", "\n  "))
	for {
		raw, err := g.io.ReadNonEmptyLine(fmt.Sprintf("  %s (%c), pick a cell as row col:", p.Name(), owner.Glyph()))
		if err != nil {
			return err
		}
		row, col, err := ParseCell(raw)
		if err == nil {
			err = board.Claim(owner, row, col)
		}
		if err != nil {
			g.io.Print("  " + err.Error() + ". Try again.")
			continue
		}
		return nil
	}
}

func (g *Game) printWelcome() {
	g.io.Print("")
	g.io.Print("  +========================================+")
	g.io.Print("  |                                        |")
	g.io.Print("  |      M I N D W A R S  T R I V I A      |")
	g.io.Print("  |       -  Where Brains Conquer  -       |")
	g.io.Print("  |                                        |")
	g.io.Print("  +========================================+")
	g.io.Print("")
}

func (g *Game) printResults(out Outcome) {
	g.io.Print("")
	g.io.Print("  +========================================+")
	g.io.Print("  |           FINAL SCOREBOARD             |")
	g.io.Print("  +========================================+")
	g.io.Print("")
	for seat, p := range out.Players {
		g.io.Print(fmt.Sprintf("    %-15s %-10s %-9s %d cells", p.Name(), fmt.Sprintf("%d pts", p.Score()), p.FormatElapsed(), out.Territory[seat]))
	}
	g.io.Print("")
	g.io.Print("  ------------------------------------------")
	if out.Tie {
		g.io.Print("  It's a TIE! Same score and response time.")
	} else {
		g.io.Print(fmt.Sprintf("  WINNER: %s!", out.Winner.Name()))
	}
	g.io.Print("  ------------------------------------------")
	g.io.Print("")
	g.io.Print("  Thanks for playing MindWars!")
}
