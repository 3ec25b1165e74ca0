package parser

import (
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/avraj/courseforge/internal/model"
)

// quizState names the position of the line scanner inside a question block.
type quizState int

const (
	stateIdle quizState = iota
	stateInQuestion
	stateInOption
	stateInExplanation
)

// lineCategory classifies one line of quiz text. Categories are evaluated
// in priority order: question start, option, correct answer, explanation;
// anything else is a continuation.
type lineCategory int

const (
	lineQuestion lineCategory = iota
	lineOption
	lineCorrect
	lineExplanation
	lineContinuation
)

var (
	questionStartRe = regexp.MustCompile(`(?i)^Q(\d+)[.:)]?\s*(.*)$`)
	optionRe        = regexp.MustCompile(`^([A-D])[.:)]\s*(.*)$`)
	correctRe       = regexp.MustCompile(`(?i)^(?:Correct|Answer)\s*:?\s*\(?([A-D])\)?\b`)
	explanationRe   = regexp.MustCompile(`(?i)^Explanation\s*:?\s*(.*)$`)
	// Paired markdown emphasis only: "**Q1.**" classifies like "Q1.", while
	// unpaired markers inside content such as snake_case or 2*3 survive.
	emphasisRe = regexp.MustCompile(`\*\*([^*]+)\*\*|\*([^*]+)\*|__([^_]+)__|_([^_]+)_`)
)

// quizBuilder accumulates one in-progress question.
type quizBuilder struct {
	number      int
	text        string
	options     map[string]string
	optionOrder []string
	correct     string
	explanation string
}

// ExtractQuiz parses generated quiz text into validated questions. It
// returns the questions that passed validation and the number of blocks
// that were dropped. Malformed input never produces an error; at worst the
// result is empty.
func ExtractQuiz(text string) ([]model.QuizQuestion, int) {
	var (
		questions []model.QuizQuestion
		dropped   int
		cur       *quizBuilder
		state     = stateIdle
	)

	flush := func() {
		if cur == nil {
			return
		}
		if q, ok := cur.validate(); ok {
			questions = append(questions, q)
		} else {
			dropped++
		}
		cur = nil
		state = stateIdle
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(emphasisRe.ReplaceAllString(raw, "${1}${2}${3}${4}"))
		if line == "" {
			continue
		}

		switch classifyQuizLine(line) {
		case lineQuestion:
			flush()
			m := questionStartRe.FindStringSubmatch(line)
			num, _ := strconv.Atoi(m[1])
			cur = &quizBuilder{number: num, text: strings.TrimSpace(m[2]), options: map[string]string{}}
			state = stateInQuestion

		case lineOption:
			if cur == nil {
				continue
			}
			m := optionRe.FindStringSubmatch(line)
			letter := m[1]
			if _, exists := cur.options[letter]; !exists {
				cur.optionOrder = append(cur.optionOrder, letter)
			}
			cur.options[letter] = strings.TrimSpace(m[2])
			state = stateInOption

		case lineCorrect:
			if cur == nil {
				continue
			}
			m := correctRe.FindStringSubmatch(line)
			cur.correct = strings.ToUpper(m[1])

		case lineExplanation:
			if cur == nil {
				continue
			}
			m := explanationRe.FindStringSubmatch(line)
			cur.explanation = strings.TrimSpace(m[1])
			state = stateInExplanation

		case lineContinuation:
			if cur == nil {
				continue
			}
			// Generated text wraps long options and explanations across
			// lines; fold the continuation into whichever field is open.
			switch {
			case state == stateInExplanation && cur.explanation != "":
				cur.explanation += " " + line
			case len(cur.optionOrder) > 0:
				last := cur.lastOption()
				cur.options[last] = strings.TrimSpace(cur.options[last] + " " + line)
			case cur.text != "":
				cur.text += " " + line
			}
		}
	}

	flush()
	return questions, dropped
}

func classifyQuizLine(line string) lineCategory {
	switch {
	case questionStartRe.MatchString(line):
		return lineQuestion
	case optionRe.MatchString(line):
		return lineOption
	case correctRe.MatchString(line):
		return lineCorrect
	case explanationRe.MatchString(line):
		return lineExplanation
	default:
		return lineContinuation
	}
}

// lastOption returns the highest option letter recorded so far.
func (b *quizBuilder) lastOption() string {
	letters := append([]string(nil), b.optionOrder...)
	sort.Strings(letters)
	return letters[len(letters)-1]
}

// validate checks the completeness invariants: at least one option, a
// correct letter that is a recorded option key, and an explanation.
func (b *quizBuilder) validate() (model.QuizQuestion, bool) {
	var reason string
	switch {
	case b.text == "":
		reason = "empty question text"
	case len(b.options) == 0:
		reason = "no options"
	case b.correct == "":
		reason = "no correct answer"
	case b.explanation == "":
		reason = "no explanation"
	default:
		if _, ok := b.options[b.correct]; !ok {
			reason = "correct letter not among options"
		}
	}
	if reason != "" {
		slog.Debug("dropping malformed quiz question", "number", b.number, "reason", reason)
		return model.QuizQuestion{}, false
	}
	return model.QuizQuestion{
		Number:      b.number,
		Text:        b.text,
		Options:     b.options,
		Correct:     b.correct,
		Explanation: b.explanation,
	}, true
}
