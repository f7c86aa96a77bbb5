package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"rustbible/internal/indexer"
	"rustbible/internal/metrics"
	"rustbible/internal/search"
	"rustbible/internal/storage"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write search-index.json and sitemap.xml into the public directory",
	Args:  cobra.NoArgs,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().Bool("no-manifest", false, "Skip recording document hashes in the database")
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := configFrom(cmd)

	var (
		documents storage.DocumentStore
		builds    storage.BuildStore
	)
	if skip, _ := cmd.Flags().GetBool("no-manifest"); !skip {
		db, err := openDatabase(cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() {
			_ = db.Close()
		}()

		documents = storage.NewDocumentRepo(db)
		builds = storage.NewBuildRepo(db)
	}

	pipeline := indexer.NewPipeline(
		contentStore(cfg),
		documents,
		builds,
		metrics.New(version, runtime.Version()),
		cfg.SiteBaseURL,
	)

	res, err := pipeline.Build(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styles.Title.Render("Build complete"))
	fmt.Fprintf(out, "%s %d books, %d chapters, %d lessons, %d sections\n",
		styles.Label.Render("content:"), res.Stats.Books, res.Stats.Chapters, res.Stats.Lessons, res.Stats.Sections)
	for _, kind := range search.Kinds() {
		fmt.Fprintf(out, "%s %d\n", styles.Label.Render(string(kind)+":"), res.Stats.EntriesByKind[kind])
	}
	fmt.Fprintf(out, "%s %s\n", styles.Label.Render("search index:"), styles.Path.Render(res.SearchIndexPath))
	fmt.Fprintf(out, "%s %s\n", styles.Label.Render("sitemap:"), styles.Path.Render(res.SitemapPath))
	if documents != nil {
		fmt.Fprintf(out, "%s %d changed, %d removed\n", styles.Label.Render("manifest:"), len(res.Changed), res.Removed)
	}
	return nil
}
