package cli

import (
	"strconv"

	"github.com/GabrijelGordic/ShoeSteraj/internal/api"
	"github.com/GabrijelGordic/ShoeSteraj/internal/model"

	"github.com/spf13/cobra"
)

type listFlags struct {
	search    string
	brand     string
	condition string
	seller    string
	ordering  string
	page      int
	pageSize  int
}

func (f listFlags) query() api.ListQuery {
	q := api.NewListQuery()
	if f.search != "" {
		q = q.WithSearch(f.search)
	}
	if f.brand != "" {
		q = q.WithFilter("brand", f.brand)
	}
	if f.condition != "" {
		q = q.WithFilter("condition", f.condition)
	}
	if f.seller != "" {
		q = q.WithFilter("seller__username", f.seller)
	}
	if f.ordering != "" {
		q = q.WithOrdering(f.ordering)
	}
	if f.pageSize > 0 {
		q = q.WithPageSize(f.pageSize)
	}
	// Page last: the other setters reset it to 1.
	if f.page > 0 {
		q = q.WithPage(f.page)
	}
	return q
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "Free-text search")
	cmd.Flags().StringVar(&f.brand, "brand", "", "Filter by brand")
	cmd.Flags().StringVar(&f.condition, "condition", "", "Filter by condition (New|Used)")
	cmd.Flags().StringVar(&f.seller, "seller", "", "Filter by seller username")
	cmd.Flags().StringVar(&f.ordering, "ordering", "", "Sort order (e.g. price, -price)")
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&f.pageSize, "page-size", api.DefaultPageSize, "Results per page")
}

func newBrowseCmd(app *App) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			fetcher := api.NewListFetcher(e.client, api.ListingsPath)
			page, err := fetcher.Fetch(cmd.Context(), flags.query())
			if err != nil {
				return writeErr(cmd, err)
			}
			// Best-effort history; a broken cache must not break browsing.
			_ = e.cache.Remember(cmd.Context(), page.Items...)
			return writeOut(cmd, app, struct {
				api.ListPage
				TotalPages int `json:"total_pages"`
			}{page, page.TotalPages()})
		},
	}
	flags.register(cmd)
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <listing-id>",
		Short: "Show one listing",
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
			l, err := e.client.Listing(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			_ = e.cache.Remember(cmd.Context(), l)
			_ = e.cache.MarkViewed(cmd.Context(), l.ID)
			return writeOut(cmd, app, l)
		},
	}
}

func newRecentCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show recently viewed listings (local history, works offline)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			items, err := e.cache.RecentlyViewed(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, items)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Max entries")
	return cmd
}

func newSellCmd(app *App) *cobra.Command {
	var nl model.NewListing
	var condition string

	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Publish a listing",
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
			nl.Condition = model.Condition(condition)
			l, err := e.client.PublishListing(cmd.Context(), nl)
			if err != nil {
				return writeErr(cmd, err)
			}
			_ = e.cache.Remember(cmd.Context(), l)
			return writeOut(cmd, app, l)
		},
	}
	cmd.Flags().StringVar(&nl.Title, "title", "", "Listing title (required)")
	cmd.Flags().StringVar(&nl.Brand, "brand", "", "Brand (required)")
	cmd.Flags().StringVar(&nl.Price, "price", "", "Price (required)")
	cmd.Flags().StringVar(&nl.Currency, "currency", "", "Currency code (EUR default server-side)")
	cmd.Flags().StringVar(&nl.Size, "size", "", "EU size, halves allowed (required)")
	cmd.Flags().StringVar(&condition, "cond", string(model.ConditionNew), "Condition (New|Used)")
	cmd.Flags().StringVar(&nl.Description, "description", "", "Description (markdown)")
	cmd.Flags().StringVar(&nl.Image, "image", "", "Cover image URL")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("brand")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("size")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <listing-id>",
		Short: "Delete one of your listings",
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
			if err := e.client.DeleteListing(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
}

func newMineCmd(app *App) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Browse your own listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			e.svc.Restore(cmd.Context())
			id := e.session.Identity()
			if id == nil {
				return writeErr(cmd, errNotLoggedIn)
			}
			flags.seller = id.Username
			fetcher := api.NewListFetcher(e.client, api.ListingsPath)
			page, err := fetcher.Fetch(cmd.Context(), flags.query())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, page)
		},
	}
	cmd.Flags().IntVar(&flags.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&flags.pageSize, "page-size", api.DefaultPageSize, "Results per page")
	return cmd
}
