package services

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/qadigest/internal/core/domain"
)

// Orchestration constants.
const (
	sentenceBonusCap     = 0.5
	sentenceBonusDivisor = 500.0
	previewLength        = 180

	// KeyInsightsSection collects sentences that match none of the role's sections.
	KeyInsightsSection = "Key Insights"
)

var (
	sentenceEnd = regexp.MustCompile(`[.!?]\s+`)
	acronyms    = regexp.MustCompile(`\b(QA|CAPA|SOP|IQ|OQ|PQ)\b`)
)

// Sentence is a candidate extraction unit. It only lives during orchestration.
type Sentence struct {
	Text    string
	ChunkID string
	Section string
	Page    int

	// Weight ranks the sentence: chunk score plus a capped length bonus.
	Weight float64

	// RawScore is the source chunk's retrieval score.
	RawScore float64

	// Order is the insertion index used to break weight ties.
	Order int
}

// Orchestration is the output of extraction, selection, citation and rendering.
type Orchestration struct {
	Candidates int
	Selected   []Sentence
	Citations  []domain.Citation
	Summary    string
}

// Orchestrate turns retrieved chunks into a cited, role-formatted summary.
func Orchestrate(retrieved []domain.RetrievedChunk, mode domain.Mode) Orchestration {
	plan := mode.Detail.Plan()

	candidates := ExtractSentences(retrieved, plan.TargetSentences)
	selected := SelectSentences(candidates, plan.TargetSentences)
	citations, numbers := AssignCitations(selected)

	return Orchestration{
		Candidates: len(candidates),
		Selected:   selected,
		Citations:  citations,
		Summary:    Render(selected, numbers, mode.Role.Profile()),
	}
}

// ExtractSentences splits retrieved chunks into weighted sentences and keeps
// the best 2*target of them. Ties keep insertion order.
func ExtractSentences(retrieved []domain.RetrievedChunk, target int) []Sentence {
	var out []Sentence
	for _, rc := range retrieved {
		for _, text := range splitSentences(rc.Text) {
			bonus := math.Min(sentenceBonusCap, float64(utf8.RuneCountInString(text))/sentenceBonusDivisor)
			out = append(out, Sentence{
				Text:     text,
				ChunkID:  rc.ID,
				Section:  rc.Section,
				Page:     rc.Page,
				Weight:   rc.Score + bonus,
				RawScore: rc.Score,
				Order:    len(out),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Order < out[j].Order
	})

	if limit := 2 * target; len(out) > limit {
		out = out[:max(limit, 0)]
	}
	return out
}

// splitSentences cuts text after sentence-ending punctuation that is followed by whitespace.
func splitSentences(text string) []string {
	var out []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[start : loc[0]+1]); s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// SelectSentences picks up to target sentences in ranked order.
// A sentence is accepted when its section has not been seen yet, or while
// fewer than half of the target have been selected.
func SelectSentences(candidates []Sentence, target int) []Sentence {
	seen := make(map[string]struct{})
	selected := make([]Sentence, 0, max(target, 0))

	for _, s := range candidates {
		if len(selected) >= target {
			break
		}
		key := strings.ToLower(s.Section)
		_, dup := seen[key]
		if !dup || float64(len(selected)) < float64(target)/2 {
			selected = append(selected, s)
			seen[key] = struct{}{}
		}
	}
	return selected
}

// AssignCitations numbers source chunks in first-seen order.
// It returns the citations and a chunk id to citation number map.
func AssignCitations(selected []Sentence) ([]domain.Citation, map[string]int) {
	numbers := make(map[string]int)
	citations := make([]domain.Citation, 0)

	for _, s := range selected {
		if _, ok := numbers[s.ChunkID]; ok {
			continue
		}
		n := len(citations) + 1
		numbers[s.ChunkID] = n
		citations = append(citations, domain.Citation{
			Number:  n,
			ChunkID: s.ChunkID,
			Section: s.Section,
			Page:    s.Page,
			Preview: truncateRunes(s.Text, previewLength),
			Score:   round(s.RawScore, 3),
		})
	}
	return citations, numbers
}

type renderGroup struct {
	title string
	key   string
	lines []string
}

// Render groups selected sentences under the role's section titles.
// Sentences that match no title go under Key Insights, which renders last.
func Render(selected []Sentence, numbers map[string]int, profile domain.RoleProfile) string {
	groups := make([]*renderGroup, 0, len(profile.Sections)+1)
	for _, title := range profile.Sections {
		key, _, _ := strings.Cut(title, "&")
		groups = append(groups, &renderGroup{
			title: title,
			key:   strings.ToLower(strings.TrimSpace(key)),
		})
	}
	insights := &renderGroup{title: KeyInsightsSection}

	for _, s := range selected {
		line := "- " + styleSentence(s.Text, profile.Tone)
		if n, ok := numbers[s.ChunkID]; ok {
			line += " [" + strconv.Itoa(n) + "]"
		}

		target := insights
		section := strings.ToLower(s.Section)
		for _, g := range groups {
			if g.key != "" && strings.Contains(section, g.key) {
				target = g
				break
			}
		}
		target.lines = append(target.lines, line)
	}

	var blocks []string
	for _, g := range append(groups, insights) {
		if len(g.lines) == 0 {
			continue
		}
		blocks = append(blocks, "### "+g.title+"\n"+strings.Join(g.lines, "\n"))
	}
	return strings.TrimSpace(strings.Join(blocks, "\n\n"))
}

func styleSentence(text string, tone domain.Tone) string {
	if tone == domain.ToneAccessible {
		return acronyms.ReplaceAllString(text, "$1 (see glossary)")
	}
	return text
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
