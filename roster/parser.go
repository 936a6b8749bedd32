package roster

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"roster-backend/models"
)

const (
	selEntry    = "div.c-listing-athlete__text"
	selNickname = "span.c-listing-athlete__nickname"
	selFullname = "span.c-listing-athlete__name"
	selWeight   = "span.c-listing-athlete__title"
	selRecord   = "span.c-listing-athlete__record"
)

// ParseListing extracts every athlete entry from one listing page, in
// document order. Missing fields are left empty; an entry whose record cannot
// be decoded fails the whole page.
func ParseListing(r io.Reader) ([]models.AthleteRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	out := make([]models.AthleteRecord, 0, 12)
	var decodeErr error

	doc.Find(selEntry).EachWithBreak(func(i int, card *goquery.Selection) bool {
		a := models.AthleteRecord{
			Nickname: fieldText(card, selNickname),
			Fullname: fieldText(card, selFullname),
			Weight:   fieldText(card, selWeight),
			Record:   fieldText(card, selRecord),
		}

		t, err := DecodeRecord(a.Record)
		if err != nil {
			decodeErr = fmt.Errorf("entry %d (%q): %w", i+1, a.Fullname, err)
			return false
		}
		a.TotalWins = models.Count(t.Wins)
		a.TotalLosses = models.Count(t.Losses)
		a.TotalDraws = models.Count(t.Draws)
		a.Recount()

		out = append(out, a)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}

	return out, nil
}

func fieldText(card *goquery.Selection, selector string) string {
	sel := card.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(sel.Text())
}
