package roster

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUndecodableRecord is returned when a record string cannot be mapped to
// wins, losses, and draws.
var ErrUndecodableRecord = errors.New("undecodable record")

// Record strings carry three counts followed by the outcome letter each count
// belongs to, e.g. "21-3-0 (W-L-D)" or "21 3 0 W L D". Separators are ignored.
var reRecordToken = regexp.MustCompile(`\d+|[WLDwld]`)

// Tally holds the outcome counts decoded from a record string.
type Tally struct {
	Wins   int
	Losses int
	Draws  int
}

func (t Tally) Fights() int {
	return t.Wins + t.Losses + t.Draws
}

// DecodeRecord binds the first three numeric tokens of a record string to the
// three outcome letters that follow them, by position. All of W, L and D must
// appear exactly once.
func DecodeRecord(record string) (Tally, error) {
	tokens := reRecordToken.FindAllString(record, -1)
	if len(tokens) < 6 {
		return Tally{}, fmt.Errorf("%w: %q needs three counts and W, L, D", ErrUndecodableRecord, record)
	}

	byLetter := make(map[string]int, 3)
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(tokens[i])
		if err != nil {
			return Tally{}, fmt.Errorf("%w: %q: count %d is %q", ErrUndecodableRecord, record, i+1, tokens[i])
		}
		letter := strings.ToUpper(tokens[3+i])
		if !strings.Contains("WLD", letter) {
			return Tally{}, fmt.Errorf("%w: %q: expected an outcome letter, got %q", ErrUndecodableRecord, record, letter)
		}
		if _, dup := byLetter[letter]; dup {
			return Tally{}, fmt.Errorf("%w: %q repeats outcome %s", ErrUndecodableRecord, record, letter)
		}
		byLetter[letter] = n
	}

	var t Tally
	for _, outcome := range []struct {
		letter string
		dst    *int
	}{
		{"W", &t.Wins},
		{"L", &t.Losses},
		{"D", &t.Draws},
	} {
		n, ok := byLetter[outcome.letter]
		if !ok {
			return Tally{}, fmt.Errorf("%w: %q has no %s outcome", ErrUndecodableRecord, record, outcome.letter)
		}
		*outcome.dst = n
	}
	return t, nil
}
