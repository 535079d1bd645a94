package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/postboard/postboard/internal/domain"
	"github.com/postboard/postboard/internal/dto"
)

func newUsersCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage users",
	}

	cmd.AddCommand(
		newUsersListCmd(opts),
		newUsersGetCmd(opts),
		newUsersCreateCmd(opts),
		newUsersUpdateCmd(opts),
		newUsersDeleteCmd(opts),
		newUsersPostsCmd(opts),
		newUsersCheckCmd(opts),
	)
	return cmd
}

func newUsersListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := opts.client().ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), users, func(tw *tabwriter.Writer) {
				writeUsers(tw, users)
			})
		},
	}
}

func newUsersGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			user, err := opts.client().GetUser(cmd.Context(), id)
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), user, func(tw *tabwriter.Writer) {
				writeUsers(tw, []domain.User{*user})
			})
		},
	}
}

func newUsersCreateCmd(opts *options) *cobra.Command {
	var req dto.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := opts.client().CreateUser(cmd.Context(), req)
			if err != nil {
				return err
			}
			opts.logVerbose("created user %d", user.ID)
			return opts.render(cmd.OutOrStdout(), user, func(tw *tabwriter.Writer) {
				writeUsers(tw, []domain.User{*user})
			})
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&req.Username, "username", "", "Username")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newUsersUpdateCmd(opts *options) *cobra.Command {
	var name, username, email string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update the given fields of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			// Only flags that were passed end up in the patch
			var req dto.UpdateUserRequest
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("username") {
				req.Username = &username
			}
			if cmd.Flags().Changed("email") {
				req.Email = &email
			}

			user, err := opts.client().UpdateUser(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), user, func(tw *tabwriter.Writer) {
				writeUsers(tw, []domain.User{*user})
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	return cmd
}

func newUsersDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a user. Their posts are kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			if err := opts.client().DeleteUser(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted user %d\n", id)
			return nil
		},
	}
}

func newUsersPostsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "posts ID",
		Short: "List a user's posts, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			posts, err := opts.client().ListUserPosts(cmd.Context(), id)
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), posts, func(tw *tabwriter.Writer) {
				writePosts(tw, posts)
			})
		},
	}
}

func newUsersCheckCmd(opts *options) *cobra.Command {
	var username, email string
	var exclude int

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a username or email is free",
		Example: `  postctl users check --username emre
  postctl users check --email ayse.demir@gmail.com --exclude 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var excludeID *int
			if cmd.Flags().Changed("exclude") {
				excludeID = &exclude
			}

			c := opts.client()
			var result *domain.Availability
			var err error
			if username != "" {
				result, err = c.CheckUsername(cmd.Context(), username, excludeID)
			} else {
				result, err = c.CheckEmail(cmd.Context(), email, excludeID)
			}
			if err != nil {
				return err
			}

			return opts.render(cmd.OutOrStdout(), result, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "FIELD\tVALUE\tAVAILABLE")
				fmt.Fprintf(tw, "%s\t%s\t%t\n", result.Field, result.Value, result.Available)
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username to check")
	cmd.Flags().StringVar(&email, "email", "", "Email to check")
	cmd.Flags().IntVar(&exclude, "exclude", 0, "User id to ignore, e.g. the one being edited")
	cmd.MarkFlagsMutuallyExclusive("username", "email")
	cmd.MarkFlagsOneRequired("username", "email")
	return cmd
}

func writeUsers(tw *tabwriter.Writer, users []domain.User) {
	fmt.Fprintln(tw, "ID\tNAME\tUSERNAME\tEMAIL")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Username, u.Email)
	}
}
