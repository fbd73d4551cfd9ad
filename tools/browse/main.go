// Command browse is a terminal client for the movie catalog. It fetches
// the list from a running server, applies search, category filter, and
// pagination locally, and can toggle the watched mark for a movie.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"hometheater/client"
	"hometheater/services/query"
	"hometheater/services/watched"
)

func main() {
	var (
		server      = flag.String("server", "http://127.0.0.1:3000", "Base URL of the home theater server")
		dataDir     = flag.String("data", "cache", "Directory holding watched.json")
		search      = flag.String("search", "", "Filter titles by substring")
		genre       = flag.String("genre", "", "Filter by genre")
		watchedOnly = flag.Bool("watched", false, "Show only watched movies")
		page        = flag.Int("page", 1, "Page to display")
		toggle      = flag.String("toggle", "", "Toggle the watched mark for this movie id and exit")
	)
	flag.Parse()

	store, err := watched.NewService(*dataDir)
	if err != nil {
		log.Fatalf("open watched store: %v", err)
	}

	if *toggle != "" {
		nowWatched, err := store.Toggle(*toggle)
		if err != nil {
			log.Fatalf("toggle %q: %v", *toggle, err)
		}
		if nowWatched {
			fmt.Printf("%s is now marked watched\n", *toggle)
		} else {
			fmt.Printf("%s is no longer marked watched\n", *toggle)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, err := client.NewFetcher(*server).FetchCatalog(ctx)
	if err != nil {
		log.Fatalf("fetch catalog: %v", err)
	}

	engine := query.NewEngine(store, query.DefaultPageSize)
	engine.ApplySnapshot(snap.Seq, snap.Entries)
	if *search != "" {
		engine.SetSearchTerm(*search)
	}
	switch {
	case *watchedOnly:
		engine.SetCategoryFilter(query.FilterWatched)
	case *genre != "":
		engine.SetCategoryFilter(*genre)
	}
	engine.SetPage(*page)

	switch engine.Status() {
	case query.StateEmptyCatalog:
		fmt.Println("The catalog is empty. Add movie folders to the media root.")
		return
	case query.StateEmptyAfterFilter:
		fmt.Println("No movies match the current search and filter.")
		return
	}

	for _, entry := range engine.Visible() {
		marker := " "
		if store.IsWatched(entry.ID) {
			marker = "*"
		}
		year := ""
		if entry.Metadata.Year > 0 {
			year = fmt.Sprintf(" (%d)", entry.Metadata.Year)
		}
		fmt.Printf("%s %s%s\n    id: %s\n", marker, entry.Title, year, entry.ID)
	}
	fmt.Printf("\npage %d of %d, %d matching movie(s)\n", engine.Page(), engine.TotalPages(), len(engine.Recompute()))
}
