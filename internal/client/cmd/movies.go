package cmd

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/ljxowen/movie-recommender/internal/shared/models"
)

// movieDetails maps --set key=value pairs onto the optional movie fields,
// keyed by their JSON names (plot, imdb_rating, box_office, ...).
func movieDetails(kv map[string]string) (models.MovieDetails, error) {
	var d models.MovieDetails
	if len(kv) == 0 {
		return d, nil
	}
	b, err := json.Marshal(kv)
	if err != nil {
		return d, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return d, fmt.Errorf("invalid --set: %w", err)
	}
	return d, nil
}

func newMoviesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "movies", Short: "Browse and manage movies"}

	var list listFlags
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List movies",
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) (any, error) {
			return a.client.Movies.List(ctx, list.params(cmd))
		}),
	}
	addListFlags(listCmd, &list)
	cmd.AddCommand(listCmd)

	var (
		title, year, imdbID string
		details             map[string]string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a movie",
		RunE: a.run(func(ctx context.Context, _ *cobra.Command, _ []string) (any, error) {
			d, err := movieDetails(details)
			if err != nil {
				return nil, err
			}
			return a.client.Movies.Create(ctx, models.MovieCreate{Title: title, Year: year, IMDbID: imdbID, MovieDetails: d})
		}),
	}
	add.Flags().StringVar(&title, "title", "", "title")
	add.Flags().StringVar(&year, "year", "", "release year")
	add.Flags().StringVar(&imdbID, "imdb-id", "", "IMDb identifier, e.g. tt0113277")
	add.Flags().StringToStringVar(&details, "set", nil, "optional field as key=value, repeatable")
	for _, f := range []string{"title", "year", "imdb-id"} {
		_ = add.MarkFlagRequired(f)
	}
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "liked",
		Short: "List the movies in your like list",
		RunE: a.run(func(ctx context.Context, _ *cobra.Command, _ []string) (any, error) {
			return a.client.Movies.Liked(ctx)
		}),
	})

	cmd.AddCommand(a.movieIDCmd("get <id>", "Show a movie", func(ctx context.Context, id int) (any, error) {
		return a.client.Movies.Get(ctx, id)
	}))
	cmd.AddCommand(a.movieIDCmd("show <id>", "Show a movie with your like status", func(ctx context.Context, id int) (any, error) {
		return a.client.MovieDetail(ctx, id)
	}))
	cmd.AddCommand(a.movieIDCmd("delete <id>", "Delete a movie", func(ctx context.Context, id int) (any, error) {
		return a.client.Movies.Delete(ctx, id)
	}))
	cmd.AddCommand(a.movieIDCmd("like <id>", "Add a movie to your like list", func(ctx context.Context, id int) (any, error) {
		return a.client.SetLiked(ctx, id, true)
	}))
	cmd.AddCommand(a.movieIDCmd("unlike <id>", "Remove a movie from your like list", func(ctx context.Context, id int) (any, error) {
		return a.client.SetLiked(ctx, id, false)
	}))

	var (
		updTitle, updYear, updIMDb string
		updDetails                 map[string]string
	)
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a movie's fields; optional fields not given keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			d, err := movieDetails(updDetails)
			if err != nil {
				return nil, err
			}
			return a.client.Movies.Update(ctx, id, models.MovieUpdate{
				Title:        optString(cmd, "title", updTitle),
				Year:         updYear,
				IMDbID:       updIMDb,
				MovieDetails: d,
			})
		}),
	}
	update.Flags().StringVar(&updTitle, "title", "", "new title")
	update.Flags().StringVar(&updYear, "year", "", "release year")
	update.Flags().StringVar(&updIMDb, "imdb-id", "", "IMDb identifier")
	update.Flags().StringToStringVar(&updDetails, "set", nil, "optional field as key=value, repeatable")
	_ = update.MarkFlagRequired("year")
	_ = update.MarkFlagRequired("imdb-id")
	cmd.AddCommand(update)

	return cmd
}

func (a *app) movieIDCmd(use, short string, fn func(context.Context, int) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, _ *cobra.Command, args []string) (any, error) {
			id, err := parseID(args[0])
			if err != nil {
				return nil, err
			}
			return fn(ctx, id)
		}),
	}
}
