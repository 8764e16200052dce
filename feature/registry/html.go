package registry

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"matchup-model/core/utils"

	"github.com/PuerkitoBio/goquery"
)

// TeamPolicyEvent is the event name a team page must carry to be imported.
const TeamPolicyEvent = "Team Policy Debate"

// ErrNotTeamPolicy is returned for profile pages of other events.
var ErrNotTeamPolicy = errors.New("not a team policy entry")

var yearPattern = regexp.MustCompile(`20\d{2}`)

// ParseTeamPage reads a saved team profile page.
//
// The title carries the season ("2009-2010 Team Policy Debate"); the record
// takes the later year. The summary table holds the counters and ranks, the
// listing table the tournaments after two header rows.
func ParseTeamPage(r io.Reader, id int, url string) (TeamRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return TeamRecord{}, fmt.Errorf("failed to parse team page %d: %w", id, err)
	}

	body := doc.Find("div#body").First()
	title := strings.TrimSpace(body.Find("h1").First().Text())
	if !strings.Contains(title, TeamPolicyEvent) {
		return TeamRecord{}, fmt.Errorf("entry %d: %w", id, ErrNotTeamPolicy)
	}

	team := TeamRecord{TeamID: id, URL: url, Tournaments: []TournamentResult{}}
	if years := yearPattern.FindAllString(title, 2); len(years) > 0 {
		team.Year = years[len(years)-1]
	}

	links := body.Find("a")
	if links.Length() >= 2 {
		team.Debater1 = debaterFrom(links.Eq(0))
		team.Debater2 = debaterFrom(links.Eq(1))
	}

	doc.Find("table.summary").First().Find("tr").Each(func(_ int, row *goquery.Selection) {
		th, td := row.Find("th").First(), row.Find("td").First()
		if th.Length() == 0 || td.Length() == 0 {
			return
		}
		label := strings.ToLower(strings.TrimSpace(th.Text()))
		value := strings.TrimSpace(td.Text())

		switch {
		case strings.Contains(label, "rank points"):
			team.RankPoints = value
		case strings.Contains(label, "total rounds won"):
			team.TotalWins = value
		case strings.Contains(label, "total rounds lost"):
			team.TotalLosses = value
		case strings.Contains(label, "prelim rounds won"):
			team.PrelimWins = value
		case strings.Contains(label, "prelim rounds lost"):
			team.PrelimLosses = value
		case strings.Contains(label, "national rank"):
			team.NationalRank = digitsOnly(value)
		case strings.Contains(label, "rank"):
			team.State = strings.ToUpper(strings.Fields(label)[0])
			team.StateRank = digitsOnly(value)
		}
	})

	doc.Find("table.listing").First().Find("tr").Each(func(i int, row *goquery.Selection) {
		if i < 2 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 6 {
			return
		}
		link := cells.Eq(0).Find("a").First()
		if link.Length() == 0 {
			return
		}
		href, _ := link.Attr("href")
		team.Tournaments = append(team.Tournaments, TournamentResult{
			Name:          strings.TrimSpace(link.Text()),
			URL:           href,
			Place:         digitsOnly(cells.Eq(1).Text()),
			PrelimRecord:  strings.TrimSpace(cells.Eq(2).Text()),
			OverallRecord: strings.TrimSpace(cells.Eq(3).Text()),
			Points:        strings.TrimSpace(cells.Eq(4).Text()),
			Checkmarks:    countCheckmarks(cells.Eq(5)),
		})
	})

	return team, nil
}

// ParseTournamentList reads the season's tournament list. Each entry carries
// its state as the first class prefix ("tx-region") and the raw date after
// the last ": ".
func ParseTournamentList(r io.Reader) ([]EventRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tournament list: %w", err)
	}

	events := []EventRecord{}
	doc.Find("ul#tournament-list li").Each(func(_ int, item *goquery.Selection) {
		link := item.Find("a").First()
		if link.Length() == 0 {
			return
		}
		href, _ := link.Attr("href")

		ev := EventRecord{
			Name:   strings.TrimSpace(link.Text()),
			URL:    href,
			Events: []SubEvent{},
		}
		if class, ok := item.Attr("class"); ok {
			if fields := strings.Fields(class); len(fields) > 0 {
				ev.State = strings.Split(fields[0], "-")[0]
			}
		}
		parts := strings.Split(item.Text(), ": ")
		if len(parts) > 1 {
			ev.DateRaw = strings.TrimSpace(parts[len(parts)-1])
		}
		events = append(events, ev)
	})
	return events, nil
}

// ParseTournamentPage reads a tournament detail page.
func ParseTournamentPage(r io.Reader) (EventDetails, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return EventDetails{}, fmt.Errorf("failed to parse tournament page: %w", err)
	}

	var d EventDetails
	doc.Find("table.summary").First().Find("tr").Each(func(_ int, row *goquery.Selection) {
		th, td := row.Find("th").First(), row.Find("td").First()
		if th.Length() == 0 || td.Length() == 0 {
			return
		}
		label := strings.ToLower(strings.TrimSpace(th.Text()))
		value := strings.TrimSpace(td.Text())
		switch {
		case strings.Contains(label, "location"):
			d.Location = value
		case strings.Contains(label, "start date"):
			d.StartDate = value
		case strings.Contains(label, "end date"):
			d.EndDate = value
		}
	})

	d.Events = []SubEvent{}
	doc.Find("table.listing").First().Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		d.Events = append(d.Events, SubEvent{
			Name:       strings.TrimSpace(cells.Eq(0).Text()),
			Population: strings.TrimSpace(cells.Eq(1).Text()),
		})
	})
	return d, nil
}

func debaterFrom(a *goquery.Selection) Debater {
	href, _ := a.Attr("href")
	return Debater{Name: strings.TrimSpace(a.Text()), URL: href}
}

// countCheckmarks counts tick images; "x4" style text overrides the count.
func countCheckmarks(cell *goquery.Selection) int {
	ticks := cell.Find("img").Length()
	if ticks == 0 {
		return 0
	}
	text := cell.Text()
	if strings.Contains(text, "x") {
		if d := digitsOnly(text); d != "" {
			return utils.ToInt(d)
		}
	}
	return ticks
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
