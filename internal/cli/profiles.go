package cli

import (
	"errors"
	"strconv"
	"strings"

	"github.com/GabrijelGordic/ShoeSteraj/internal/model"

	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Seller profiles",
	}
	cmd.AddCommand(newProfileShowCmd(app))
	cmd.AddCommand(newProfileUpdateCmd(app))
	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [username]",
		Short: "Show a seller profile (defaults to your own)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var username string
			if len(args) == 1 {
				username = args[0]
			} else {
				e.svc.Restore(cmd.Context())
				id := e.session.Identity()
				if id == nil {
					return writeErr(cmd, errNotLoggedIn)
				}
				username = id.Username
			}
			p, err := e.client.Profile(cmd.Context(), username)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, p)
		},
	}
}

func newProfileUpdateCmd(app *App) *cobra.Command {
	var avatar, location, phone string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update your profile",
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

			var patch model.ProfilePatch
			if cmd.Flags().Changed("avatar") {
				patch.Avatar = &avatar
			}
			if cmd.Flags().Changed("location") {
				patch.Location = &location
			}
			if cmd.Flags().Changed("phone") {
				patch.PhoneNumber = &phone
			}
			if patch.Avatar == nil && patch.Location == nil && patch.PhoneNumber == nil {
				return writeErr(cmd, errors.New("nothing to update (pass --avatar, --location or --phone)"))
			}

			p, err := e.client.UpdateProfile(cmd.Context(), id.Username, patch)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, p)
		},
	}
	cmd.Flags().StringVar(&avatar, "avatar", "", "Avatar image URL")
	cmd.Flags().StringVar(&location, "location", "", "City / location")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone number")
	return cmd
}

func newReviewCmd(app *App) *cobra.Command {
	var rating int
	var comment string

	cmd := &cobra.Command{
		Use:   "review <seller-id>",
		Short: "Leave a rating for a seller",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sellerID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(comment) == "" {
				return writeErr(cmd, errors.New("missing --comment"))
			}
			e, err := buildEnv(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			e.svc.Restore(cmd.Context())
			if !e.session.Authenticated() {
				return writeErr(cmd, errNotLoggedIn)
			}
			r, err := e.client.SubmitReview(cmd.Context(), sellerID, rating, comment)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, r)
		},
	}
	cmd.Flags().IntVar(&rating, "rating", 0, "Rating 1-5 (required)")
	cmd.Flags().StringVar(&comment, "comment", "", "Review text (required)")
	_ = cmd.MarkFlagRequired("rating")
	return cmd
}
