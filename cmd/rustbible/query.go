package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rustbible/internal/navigation"
	"rustbible/internal/search"
	"rustbible/internal/service"
	"rustbible/internal/verses"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search books, chapters, lessons and sections",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var verseCmd = &cobra.Command{
	Use:   "verse",
	Short: "Print a random verse, or the verse of the day with --daily",
	Args:  cobra.NoArgs,
	RunE:  runVerse,
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List every static route of the site",
	Args:  cobra.NoArgs,
	RunE:  runRoutes,
}

func init() {
	verseCmd.Flags().Bool("daily", false, "Pick the verse of the day instead of a random one")
}

// newReadService returns a SiteService without reading-state storage.
func newReadService(cmd *cobra.Command) service.SiteService {
	cfg := configFrom(cmd)
	return service.NewSiteService(contentStore(cfg), nil, nil, service.SiteConfig{
		VersePolicy: cfg.VersePolicy,
		SearchLimit: cfg.SearchLimit,
	})
}

func runSearch(cmd *cobra.Command, args []string) error {
	results, err := newReadService(cmd).Search(cmd.Context(), args[0], 0)
	if err != nil {
		return err
	}
	printResults(cmd.OutOrStdout(), results)
	return nil
}

func printResults(w io.Writer, results []search.Entry) {
	if len(results) == 0 {
		fmt.Fprintln(w, styles.Dim.Render("No results"))
		return
	}
	for _, e := range results {
		fmt.Fprintf(w, "%s %s\n  %s\n", styles.Kind.Render(fmt.Sprintf("[%s]", e.Kind)), styles.Title.Render(e.Title), styles.Path.Render(e.URL))
	}
}

func runVerse(cmd *cobra.Command, args []string) error {
	mode := service.VerseRandom
	if daily, _ := cmd.Flags().GetBool("daily"); daily {
		mode = service.VerseDaily
	}

	v, err := newReadService(cmd).Verse(cmd.Context(), mode)
	if err != nil {
		return err
	}
	printVerse(cmd.OutOrStdout(), v)
	return nil
}

func printVerse(w io.Writer, v verses.Verse) {
	fmt.Fprintln(w, styles.Verse.Render(v.Text))
	ref := fmt.Sprintf("%s %d:%d", v.Book, v.ChapterNumber, v.Number)
	if v.Chapter == "" {
		ref = fmt.Sprintf("%s %d", v.Book, v.Number)
	}
	fmt.Fprintf(w, "%s %s\n", styles.Title.Render(ref), styles.Path.Render(v.URL()))
}

func runRoutes(cmd *cobra.Command, args []string) error {
	ix, err := newReadService(cmd).Navigation(cmd.Context())
	if err != nil {
		return err
	}
	printRoutes(cmd.OutOrStdout(), ix)
	return nil
}

func printRoutes(w io.Writer, ix *navigation.Index) {
	for _, route := range ix.Routes() {
		fmt.Fprintln(w, route)
	}
}
