package store

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Selector picks one catalog query, or SelectAll for the whole catalog.
type Selector int

const (
	SelectAll Selector = iota
	SelectMoviesByActor
	SelectCharactersByActor
	SelectCollaborators
	SelectBornBetween
	SelectBornInYearWorkedWith
	SelectCategoryInGenre
	SelectSharedTitles
)

var selectorNames = [...]string{
	SelectAll:                  "all",
	SelectMoviesByActor:        "movies by actor",
	SelectCharactersByActor:    "characters by actor",
	SelectCollaborators:        "collaborators",
	SelectBornBetween:          "born between",
	SelectBornInYearWorkedWith: "born in year worked with",
	SelectCategoryInGenre:      "category in genre",
	SelectSharedTitles:         "shared titles",
}

func (s Selector) String() string {
	if s.Validate() != nil {
		return "selector(" + strconv.Itoa(int(s)) + ")"
	}
	return selectorNames[s]
}

// Validate reports ErrInvalidSelector for anything outside 0..7.
func (s Selector) Validate() error {
	if s < SelectAll || s > SelectSharedTitles {
		return fmt.Errorf("%w: must be between 0 and 7, got %d", ErrInvalidSelector, int(s))
	}
	return nil
}

// Catalog lists every query selector in catalog order.
func Catalog() []Selector {
	return []Selector{
		SelectMoviesByActor,
		SelectCharactersByActor,
		SelectCollaborators,
		SelectBornBetween,
		SelectBornInYearWorkedWith,
		SelectCategoryInGenre,
		SelectSharedTitles,
	}
}

// ParseSelector parses a command line selector. Only plain digits are
// accepted; an empty argument means SelectAll.
func ParseSelector(arg string) (Selector, error) {
	if arg == "" {
		return SelectAll, nil
	}
	if strings.TrimLeft(arg, "0123456789") != "" {
		return 0, fmt.Errorf("%w: %q is not a digit", ErrInvalidSelector, arg)
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidSelector, arg, err)
	}
	sel := Selector(n)
	if err := sel.Validate(); err != nil {
		return 0, err
	}
	return sel, nil
}

// CatalogParams holds the literals the batch catalog runs with.
type CatalogParams struct {
	Subject     string `yaml:"subject"`
	BornFrom    int    `yaml:"born_from"`
	BornTo      int    `yaml:"born_to"`
	BirthYear   int    `yaml:"birth_year"`
	Partner     string `yaml:"partner"`
	PartnerBorn int    `yaml:"partner_born"`
	Category    string `yaml:"category"`
	Genre       string `yaml:"genre"`
	CoStar      string `yaml:"co_star"`
}

// DefaultCatalogParams returns the catalog's stock subjects.
func DefaultCatalogParams() CatalogParams {
	return CatalogParams{
		Subject:     "Tom Hardy",
		BornFrom:    1975,
		BornTo:      1976,
		BirthYear:   1975,
		Partner:     "Will Ferrell",
		PartnerBorn: 1967,
		Category:    "director",
		Genre:       "Fantasy",
		CoStar:      "James Gandolfini",
	}
}

// Status classifies a Result.
type Status int

const (
	StatusRows Status = iota
	StatusEmpty
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusRows:
		return "rows"
	case StatusEmpty:
		return "empty"
	default:
		return "failed"
	}
}

// Result is the outcome of one catalog query. Items holds the transformed
// rows; the characters query also fills Credits.
type Result struct {
	Selector Selector
	Items    []string
	Credits  []CharacterCredit
	Err      error
}

// Status distinguishes rows, no rows and a store failure.
func (r Result) Status() Status {
	switch {
	case r.Err != nil:
		return StatusFailed
	case len(r.Items) == 0:
		return StatusEmpty
	default:
		return StatusRows
	}
}

// Run validates sel and executes one query, or the whole catalog for
// SelectAll. An invalid selector is rejected before the store is touched.
// Query failures are logged and carried in each Result; the caller decides
// whether they are fatal.
func (e *Engine) Run(ctx context.Context, sel Selector, p CatalogParams) ([]Result, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	sels := []Selector{sel}
	if sel == SelectAll {
		sels = Catalog()
	}

	results := make([]Result, 0, len(sels))
	for _, s := range sels {
		res := e.runOne(ctx, s, p)
		if res.Err != nil {
			e.logger.Printf("catalog: query %d (%s) failed: %v", int(s), s, res.Err)
		} else if e.verbose != nil {
			writeSummary(e.verbose, res, p)
		}
		results = append(results, res)
	}
	return results, nil
}

func (e *Engine) runOne(ctx context.Context, sel Selector, p CatalogParams) Result {
	res := Result{Selector: sel}
	switch sel {
	case SelectMoviesByActor:
		res.Items, res.Err = e.MoviesByActor(ctx, p.Subject)
	case SelectCharactersByActor:
		res.Credits, res.Err = e.CharactersByActor(ctx, p.Subject)
		for _, c := range res.Credits {
			res.Items = append(res.Items, fmt.Sprintf("Character: %s, Title: %s", c.Characters, c.Title))
		}
	case SelectCollaborators:
		res.Items, res.Err = e.Collaborators(ctx, p.Subject)
	case SelectBornBetween:
		res.Items, res.Err = e.BornBetween(ctx, p.BornFrom, p.BornTo)
	case SelectBornInYearWorkedWith:
		res.Items, res.Err = e.BornInYearWorkedWith(ctx, p.BirthYear, p.Partner, p.PartnerBorn)
	case SelectCategoryInGenre:
		res.Items, res.Err = e.CategoryInGenre(ctx, p.Category, p.Genre)
	case SelectSharedTitles:
		res.Items, res.Err = e.SharedTitles(ctx, p.Subject, p.CoStar)
	}
	return res
}

// writeSummary prints the console report for one successful query.
func writeSummary(w io.Writer, res Result, p CatalogParams) {
	if res.Selector == SelectCharactersByActor {
		if len(res.Items) == 0 {
			fmt.Fprintf(w, "No characters found for %s.\n", p.Subject)
			return
		}
		fmt.Fprintf(w, "Characters played by %s:\n", p.Subject)
		for _, item := range res.Items {
			fmt.Fprintln(w, item)
		}
		return
	}

	var header string
	switch res.Selector {
	case SelectMoviesByActor:
		header = fmt.Sprintf("%s has starred in the following movies:", p.Subject)
	case SelectCollaborators:
		header = fmt.Sprintf("%s has worked with the following people:", p.Subject)
	case SelectBornBetween:
		header = fmt.Sprintf("The following people were born between %d and %d, inclusive:", p.BornFrom, p.BornTo)
	case SelectBornInYearWorkedWith:
		header = fmt.Sprintf("The following people were born in %d and also worked with %s (%d):", p.BirthYear, p.Partner, p.PartnerBorn)
	case SelectCategoryInGenre:
		header = fmt.Sprintf("The following are %ss of %q movies:", p.Category, p.Genre)
	case SelectSharedTitles:
		header = fmt.Sprintf("%s and %s have worked together on the following movies:", p.Subject, p.CoStar)
	}
	fmt.Fprintln(w, header)
	for _, item := range res.Items {
		fmt.Fprintf(w, " - %s\n", item)
	}
}
