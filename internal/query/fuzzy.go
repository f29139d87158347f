package query

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"

	"github.com/cinelog/cinelog/internal/domain"
)

// Match is a fuzzy search hit with metadata for result ordering and
// match highlighting.
type Match struct {
	Movie          domain.Movie
	Score          int   // Levenshtein distance to the query, lower is better
	MatchedIndexes []int // Character positions in the title that matched
}

// Index is a fuzzy title index over a movie collection. It implements
// sahilm/fuzzy.Source so matched character positions come out for free.
type Index struct {
	movies      []domain.Movie
	lowerTitles []string // Pre-computed lowercase titles
}

// NewIndex builds an index over a snapshot of the collection.
func NewIndex(movies []domain.Movie) *Index {
	idx := &Index{
		movies:      copyMovies(movies),
		lowerTitles: make([]string, len(movies)),
	}
	for i, m := range movies {
		idx.lowerTitles[i] = strings.ToLower(m.Title)
	}
	return idx
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *Index) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of indexed movies (implements fuzzy.Source)
func (idx *Index) Len() int { return len(idx.movies) }

// Search returns movies whose titles fuzzily match the query, best first.
// An empty query returns no matches.
func (idx *Index) Search(query string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || idx.Len() == 0 {
		return nil
	}

	ranks := fuzzy.RankFindFold(query, idx.lowerTitles)
	if len(ranks) == 0 {
		return nil
	}
	sort.Sort(ranks)

	// Second pass for highlight positions
	positions := make(map[int][]int)
	for _, m := range sahilm.FindFrom(query, idx) {
		positions[m.Index] = m.MatchedIndexes
	}

	matches := make([]Match, 0, len(ranks))
	for _, r := range ranks {
		matches = append(matches, Match{
			Movie:          idx.movies[r.OriginalIndex],
			Score:          r.Distance,
			MatchedIndexes: positions[r.OriginalIndex],
		})
	}
	return matches
}
