package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/cinelog/cinelog/internal/config"
	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/log"
	"github.com/cinelog/cinelog/internal/query"
	"github.com/cinelog/cinelog/internal/repository"
	"github.com/cinelog/cinelog/internal/repository/local"
	"github.com/cinelog/cinelog/internal/usecase"
)

// Version is set at build time via -ldflags
var Version = "dev"

const usage = `Usage: cinelog <command> [flags]

Commands:
  list      show the collection (filter/sort flags below)
  get       show one movie by ID
  add       add a movie
  update    update fields of a movie
  delete    delete a movie by ID
  favorite  toggle the favorite flag
  search    fuzzy title search
  motd      print the movie of the day
  stats     print genres and year/rating ranges
  seed      replace the local collection with the sample set
  clear     empty the local collection
`

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if showVersion {
		fmt.Printf("cinelog %s\n", Version)
		return
	}

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	factory := repository.NewFactory(cfg, logger)
	defer factory.Reset()

	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("missing command")
	}

	ctx := context.Background()
	cmd, rest := args[0], args[1:]

	svc, err := service(factory, logger)
	if err != nil {
		return err
	}

	switch cmd {
	case "list":
		return runList(ctx, svc, rest)
	case "get":
		return runGet(ctx, svc, rest)
	case "add":
		return runAdd(ctx, svc, rest)
	case "update":
		return runUpdate(ctx, svc, rest)
	case "delete":
		return runDelete(ctx, svc, rest)
	case "favorite":
		return runFavorite(ctx, svc, rest)
	case "search":
		return runSearch(ctx, svc, rest)
	case "motd":
		return runMOTD(ctx, svc)
	case "stats":
		return runStats(ctx, svc)
	case "seed":
		return runSeed(ctx, factory)
	case "clear":
		return runClear(ctx, factory)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func service(factory *repository.Factory, logger *slog.Logger) (*usecase.Service, error) {
	repo, err := factory.Get("")
	if err != nil {
		return nil, err
	}
	return usecase.NewService(repo, logger), nil
}

// localRepo returns the local backend regardless of the environment policy;
// seed and clear only make sense there.
func localRepo(factory *repository.Factory) (*local.Repository, error) {
	repo, err := factory.Get(config.KindLocal)
	if err != nil {
		return nil, err
	}
	lr, ok := repo.(*local.Repository)
	if !ok {
		return nil, fmt.Errorf("local repository unavailable")
	}
	return lr, nil
}

func runList(ctx context.Context, svc *usecase.Service, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	favorites := fs.Bool("favorites", false, "show only favorites")
	q := fs.String("query", "", "free-text search")
	by := fs.String("by", "any", "search field: title, director, releaseYear, rating, any")
	genre := fs.String("genre", "", "exact genre filter (\"all\" disables)")
	sortBy := fs.String("sort", "", "sort key: title, director, releaseYear, rating")
	fs.Parse(args)

	movies, err := svc.GetAll(ctx)
	if err != nil {
		return err
	}

	shown := query.Apply(movies, query.Filters{
		OnlyFavorites: *favorites,
		Query:         *q,
		Criteria:      query.Criteria(*by),
		Genre:         *genre,
		SortBy:        query.SortKey(*sortBy),
	})
	for _, m := range shown {
		printMovie(m)
	}
	fmt.Printf("%d of %d movies\n", len(shown), len(movies))
	return nil
}

func runGet(ctx context.Context, svc *usecase.Service, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: cinelog get <id>")
	}
	movie, err := svc.GetByID(ctx, args[0])
	if err != nil {
		return err
	}
	if movie == nil {
		return fmt.Errorf("movie with ID %s: %w", args[0], domain.ErrNotFound)
	}
	printMovie(*movie)
	return nil
}

func runAdd(ctx context.Context, svc *usecase.Service, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	title := fs.String("title", "", "movie title")
	director := fs.String("director", "", "director name")
	year := fs.Int("year", 0, "release year")
	genre := fs.String("genre", "", "genre")
	rating := fs.Float64("rating", 0, "rating (0-10)")
	favorite := fs.Bool("favorite", false, "mark as favorite")
	fs.Parse(args)

	created, err := svc.Create(ctx, domain.Movie{
		Title:       *title,
		Director:    *director,
		ReleaseYear: *year,
		Genre:       *genre,
		Rating:      *rating,
		Favorite:    *favorite,
	})
	if err != nil {
		return err
	}
	fmt.Printf("added %s\n", created.ID)
	return nil
}

func runUpdate(ctx context.Context, svc *usecase.Service, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: cinelog update <id> [flags]")
	}
	id, rest := args[0], args[1:]

	fs := flag.NewFlagSet("update", flag.ExitOnError)
	title := fs.String("title", "", "movie title")
	director := fs.String("director", "", "director name")
	year := fs.Int("year", 0, "release year")
	genre := fs.String("genre", "", "genre")
	rating := fs.Float64("rating", 0, "rating (0-10)")
	favorite := fs.Bool("favorite", false, "favorite flag")
	fs.Parse(rest)

	// Only flags the user actually set participate in the partial update.
	var in usecase.UpdateInput
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			in.Title = title
		case "director":
			in.Director = director
		case "year":
			in.ReleaseYear = year
		case "genre":
			in.Genre = genre
		case "rating":
			in.Rating = rating
		case "favorite":
			in.Favorite = favorite
		}
	})

	updated, err := svc.Update(ctx, id, in)
	if err != nil {
		return err
	}
	printMovie(*updated)
	return nil
}

func runDelete(ctx context.Context, svc *usecase.Service, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: cinelog delete <id>")
	}
	if err := svc.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func runFavorite(ctx context.Context, svc *usecase.Service, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: cinelog favorite <id>")
	}
	updated, err := svc.ToggleFavorite(ctx, args[0])
	if err != nil {
		return err
	}
	printMovie(*updated)
	return nil
}

func runSearch(ctx context.Context, svc *usecase.Service, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: cinelog search <query>")
	}
	matches, err := svc.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	for _, m := range matches {
		fmt.Printf("%-40s %s\n", m.Movie.Title, m.Movie.Description())
	}
	fmt.Printf("%d matches\n", len(matches))
	return nil
}

func runMOTD(ctx context.Context, svc *usecase.Service) error {
	movie, err := svc.MovieOfTheDay(ctx)
	if err != nil {
		return err
	}
	if movie == nil {
		fmt.Println("no favorites yet")
		return nil
	}
	printMovie(*movie)
	return nil
}

func runStats(ctx context.Context, svc *usecase.Service) error {
	movies, err := svc.GetAll(ctx)
	if err != nil {
		return err
	}
	minYear, maxYear := query.YearRange(movies)
	minRating, maxRating := query.RatingRange(movies)
	fmt.Printf("movies:  %d\n", len(movies))
	fmt.Printf("genres:  %s\n", strings.Join(query.Genres(movies), ", "))
	fmt.Printf("years:   %d-%d\n", minYear, maxYear)
	fmt.Printf("ratings: %.1f-%.1f\n", minRating, maxRating)
	return nil
}

func runSeed(ctx context.Context, factory *repository.Factory) error {
	repo, err := localRepo(factory)
	if err != nil {
		return err
	}
	if err := repo.SeedWithSample(ctx); err != nil {
		return err
	}
	fmt.Println("seeded sample movies")
	return nil
}

func runClear(ctx context.Context, factory *repository.Factory) error {
	repo, err := localRepo(factory)
	if err != nil {
		return err
	}
	if err := repo.Clear(ctx); err != nil {
		return err
	}
	fmt.Println("collection cleared")
	return nil
}

func printMovie(m domain.Movie) {
	fav := " "
	if m.Favorite {
		fav = "★"
	}
	fmt.Printf("%s %-40s %-24s %4d  %-10s %4.1f  %s\n",
		fav, m.Title, m.Director, m.ReleaseYear, m.Genre, m.Rating, m.ID)
}
