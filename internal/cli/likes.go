package cli

import (
	"strconv"

	"github.com/GabrijelGordic/ShoeSteraj/internal/api"

	"github.com/spf13/cobra"
)

// likeResult is a LikeState that records the settled value for output.
type likeResult struct {
	id    int64
	liked bool
}

func (r *likeResult) SetLiked(id int64, liked bool) {
	if id == r.id {
		r.liked = liked
	}
}

func newLikeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "like <listing-id>",
		Short: "Toggle a listing on/off your wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return writeErr(cmd, err)
			}
			e, err := buildEnv(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			e.svc.Restore(cmd.Context())
			if !e.session.Authenticated() {
				return writeErr(cmd, errNotLoggedIn)
			}

			// The current value comes from the detail endpoint so the
			// toggle starts from what the server believes.
			l, err := e.client.Listing(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}

			res := &likeResult{id: id, liked: l.Liked}
			toggler := api.NewLikeToggler(e.client, res, e.session.Authenticated)
			if err := toggler.Toggle(cmd.Context(), id, l.Liked); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"id": id, "liked": res.liked})
		},
	}
}

func newWishlistCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "wishlist",
		Short: "Show the listings you have liked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			e.svc.Restore(cmd.Context())
			if !e.session.Authenticated() {
				return writeErr(cmd, errNotLoggedIn)
			}
			items, err := e.client.Favorites(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			_ = e.cache.Remember(cmd.Context(), items...)
			return writeOut(cmd, app, items)
		},
	}
}
