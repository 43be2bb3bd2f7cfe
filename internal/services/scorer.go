package services

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/vaaler2/hirewise-backend/internal/models"
)

// professionKeywords maps a lowercased profession label to the terms the
// heuristic looks for in a candidate's self-pitch. Professions outside the
// table simply contribute no keyword term to the score.
var professionKeywords = map[string][]string{
	"asztalos":           {"fa", "bútor", "csiszol", "fűrész", "gyalu", "lakkoz"},
	"carpenter":          {"wood", "furniture", "sand", "saw", "joinery", "varnish"},
	"szoftverfejlesztő":  {"kód", "program", "szoftver", "fejleszt", "teszt", "algoritmus"},
	"software developer": {"code", "software", "api", "database", "test", "debug"},
	"villanyszerelő":     {"áram", "vezeték", "kapcsol", "biztosíték", "feszültség", "szerel"},
	"hegesztő":           {"hegeszt", "fém", "varrat", "acél", "láng"},
}

// scoreNormalizer divides the raw weighted sum before scaling to 100.
// The attainable maximum is 8.5, so a candidate hitting every term can
// score above 100. Intentional headroom carried over from the product.
const scoreNormalizer = 7.5

// LocalScorer is the deterministic offline fallback for the AI evaluator.
type LocalScorer struct{}

func NewLocalScorer() *LocalScorer {
	return &LocalScorer{}
}

// Score maps one application and a profession label to a score, rounded to
// one decimal place. Pure: identical inputs always produce the identical
// value.
func (s *LocalScorer) Score(app *models.Application, profession string) float64 {
	prof := strings.ToLower(strings.TrimSpace(profession))
	pitch := strings.ToLower(app.About)

	var profHit float64
	if prof != "" && strings.Contains(pitch, prof) {
		profHit = 1
	}

	var hits int
	for _, kw := range professionKeywords[prof] {
		if strings.Contains(pitch, kw) {
			hits++
		}
	}
	kwScore := math.Min(float64(hits)/3, 1)

	lenBonus := math.Min(float64(utf8.RuneCountInString(app.About))/400, 1)

	raw := 2*profHit + 2*kwScore + 1.5*lenBonus
	raw += presence(app.Name) + presence(app.Phone) + presence(app.Email)

	return math.Round(raw/scoreNormalizer*100*10) / 10
}

// ScoreAndRank recomputes every application's score from scratch, sorts the
// set by descending score (stable, so ties keep their prior relative order)
// and assigns dense 1-based ranks in that order. The returned slice is the
// new stored order.
func (s *LocalScorer) ScoreAndRank(apps []models.Application, profession string) []models.Application {
	scored := make([]models.Application, len(apps))
	copy(scored, apps)

	for i := range scored {
		v := s.Score(&scored[i], profession)
		scored[i].Score = &v
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return *scored[i].Score > *scored[j].Score
	})

	for i := range scored {
		rank := i + 1
		scored[i].Rank = &rank
	}

	return scored
}

func presence(field string) float64 {
	if strings.TrimSpace(field) != "" {
		return 1
	}
	return 0
}
