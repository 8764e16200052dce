package cumulative

import (
	"path"
	"strings"

	"matchup-model/core/model"
	"matchup-model/core/utils"
)

// Defaults used when a document carries no recognizable context.
const (
	UnknownTournament = "Unknown Tournament"
	UnknownYear       = "Unknown"
)

// YearStrategy selects where the tournament year comes from.
type YearStrategy int

const (
	// FilenameThenContent prefers a leading "20xx" in the document name and falls
	// back to the first boilerplate line carrying a year.
	FilenameThenContent YearStrategy = iota
	// ContentOnly ignores the document name.
	ContentOnly
)

func (s YearStrategy) String() string {
	if s == ContentOnly {
		return "content_only"
	}
	return "filename_then_content"
}

// YearFromName returns the leading four characters of the base name when they
// are digits starting with "20".
func YearFromName(name string) (string, bool) {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if len(base) < 4 {
		return "", false
	}
	y := base[:4]
	if strings.HasPrefix(y, "20") && utils.IsDigits(y) {
		return y, true
	}
	return "", false
}

// InferContext derives the event context of a document.
//
// The tournament name is the first year-bearing boilerplate line with the year
// removed, unless that leaves nothing or a weekday. Otherwise it is the first
// boilerplate line that only matches an extra noise marker.
func (f *NoiseFilter) InferContext(doc Document, strategy YearStrategy) model.EventContext {
	ctx := model.EventContext{Source: doc.Name}

	var contentYear, tournament string
	for _, line := range doc.Lines {
		if line == "" || !f.IsNoise(line) {
			continue
		}
		m := yearPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		contentYear = m[1]
		rest := strings.Join(strings.Fields(strings.ReplaceAll(line, contentYear, "")), " ")
		if rest != "" && !containsAny(rest, Weekdays) {
			tournament = rest
		}
		break
	}

	if tournament == "" {
		for _, line := range doc.Lines {
			if line == "" || !f.IsNoise(line) || yearPattern.MatchString(line) || isStandard(line) {
				continue
			}
			tournament = line
			break
		}
	}

	year := ""
	if strategy == FilenameThenContent {
		if y, ok := YearFromName(doc.Name); ok {
			year = y
		}
	}
	if year == "" {
		year = contentYear
	}

	ctx.Year = year
	ctx.Tournament = tournament
	if ctx.Year == "" {
		ctx.Year = UnknownYear
	}
	if ctx.Tournament == "" {
		ctx.Tournament = UnknownTournament
	}
	return ctx
}

// InferContext derives the event context using the default noise filter.
func InferContext(doc Document, strategy YearStrategy) model.EventContext {
	return defaultNoise.InferContext(doc, strategy)
}
