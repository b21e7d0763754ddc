package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ljxowen/movie-recommender/internal/shared/models"
)

func newLikesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "likes", Short: "Manage your like list"}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show your like list",
		RunE: a.run(func(ctx context.Context, _ *cobra.Command, _ []string) (any, error) {
			return a.client.UserMovie.Read(ctx)
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "create [movie-id...]",
		Short: "Create your like list",
		RunE: a.run(func(ctx context.Context, _ *cobra.Command, args []string) (any, error) {
			ids, err := parseIDs(args)
			if err != nil {
				return nil, err
			}
			return a.client.UserMovie.Create(ctx, models.UserMovieIn{Movies: ids})
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set [movie-id...]",
		Short: "Replace your like list",
		RunE: a.run(func(ctx context.Context, _ *cobra.Command, args []string) (any, error) {
			ids, err := parseIDs(args)
			if err != nil {
				return nil, err
			}
			return a.client.UserMovie.Replace(ctx, models.UserMovieIn{Movies: ids})
		}),
	})
	cmd.AddCommand(a.movieIDCmd("add <movie-id>", "Add a movie to your like list", func(ctx context.Context, id int) (any, error) {
		return a.client.UserMovie.Add(ctx, id)
	}))
	cmd.AddCommand(a.movieIDCmd("remove <movie-id>", "Remove a movie from your like list", func(ctx context.Context, id int) (any, error) {
		return a.client.UserMovie.Remove(ctx, id)
	}))
	cmd.AddCommand(a.movieIDCmd("delete <owner-id>", "Delete the like list owned by a user", func(ctx context.Context, id int) (any, error) {
		return a.client.UserMovie.Delete(ctx, id)
	}))
	return cmd
}
