package triage

import (
	"fmt"
	"io"
	"log/slog"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/mmcdole/malplan/internal/domain"
	"github.com/mmcdole/malplan/internal/tui/styles"
)

// Opener shows an item's page outside the terminal
type Opener interface {
	Open(url string) error
}

// Session runs the interactive triage loop over a rune source
type Session struct {
	in        io.RuneReader
	out       io.Writer
	keys      KeyMap
	help      help.Model
	highlight func(title string) []int
	opener    Opener
	logger    *slog.Logger

	position int
	total    int
}

// NewSession creates a session reading one character per decision from in
func NewSession(in io.RuneReader, out io.Writer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		in:     in,
		out:    out,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		logger: logger,
	}
}

// SetHighlighter sets the function returning title byte offsets to emphasize
func (s *Session) SetHighlighter(fn func(title string) []int) {
	s.highlight = fn
}

// SetOpener sets where the o key sends the item page
func (s *Session) SetOpener(o Opener) {
	s.opener = o
}

// SetTotal sets the item count shown in the [n/total] counter
func (s *Session) SetTotal(total int) {
	s.total = total
	s.position = 0
}

// Run triages every item in order, starting from ledger.
// A failed read aborts the whole run and the partial state is discarded.
func (s *Session) Run(items []domain.TrackedItem, ledger []domain.HandledDecision) (State, error) {
	s.SetTotal(len(items))
	st := NewState(ledger)
	for _, item := range items {
		var err error
		st, err = s.Triage(st, item)
		if err != nil {
			return State{}, err
		}
	}
	return st, nil
}

// Triage presents one item and reads input until the loop can advance.
// Items reached after a quit are kept without prompting.
func (s *Session) Triage(st State, item domain.TrackedItem) (State, error) {
	s.position++
	if st.Quitting {
		next, _ := Step(st, item, ActionUnknown)
		return next, nil
	}

	var matched []int
	if s.highlight != nil {
		matched = s.highlight(item.Title)
	}
	fmt.Fprint(s.out, renderItem(item, s.position, max(s.total, s.position), matched))

	for {
		fmt.Fprint(s.out, s.help.ShortHelpView(s.keys.ShortHelp()), "\n", promptMarker)

		r, err := s.readKey()
		if err != nil {
			s.logger.Error("failed to read triage input", "error", err, "itemID", item.ID)
			return State{}, fmt.Errorf("failed to read input: %w", err)
		}
		fmt.Fprintln(s.out)

		action := s.keys.Action(r)
		next, outcome := Step(st, item, action)
		switch outcome {
		case OutcomeHelp:
			fmt.Fprintln(s.out, s.help.FullHelpView(s.keys.FullHelp()))
			continue
		case OutcomeOpen:
			s.open(item)
			continue
		case OutcomeUnknown:
			fmt.Fprintln(s.out, styles.ErrorStyle.Render(fmt.Sprintf("unknown input %q, press h for help", r)))
			continue
		}

		var decision domain.Decision
		if outcome == OutcomeRecorded {
			decision = next.Ledger[len(next.Ledger)-1].How
		}
		s.logger.Debug("triaged item", "itemID", item.ID, "outcome", outcome, "decision", decision)
		fmt.Fprintln(s.out, renderOutcome(outcome, decision))
		fmt.Fprintln(s.out)
		return next, nil
	}
}

// open shows the item page; failures are reported and the same item is asked again
func (s *Session) open(item domain.TrackedItem) {
	if s.opener == nil {
		fmt.Fprintln(s.out, styles.ErrorStyle.Render("no browser configured"))
		return
	}
	if err := s.opener.Open(item.URL); err != nil {
		s.logger.Warn("failed to open item page", "error", err, "itemID", item.ID, "url", item.URL)
		fmt.Fprintln(s.out, styles.ErrorStyle.Render(fmt.Sprintf("could not open page: %v", err)))
		return
	}
	fmt.Fprintln(s.out, styles.DimStyle.Render("opened "+item.URL))
}

// readKey returns the next non-whitespace character. Newlines from
// line-buffered input and stray spaces never count as an answer.
func (s *Session) readKey() (rune, error) {
	for {
		r, _, err := s.in.ReadRune()
		if err != nil {
			return 0, err
		}
		if !unicode.IsSpace(r) {
			return r, nil
		}
	}
}
