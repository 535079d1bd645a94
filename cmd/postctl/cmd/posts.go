package cmd

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/postboard/postboard/internal/domain"
	"github.com/postboard/postboard/internal/dto"
)

// titleWidth truncates titles in table output
const titleWidth = 48

func newPostsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "posts",
		Aliases: []string{"post"},
		Short:   "Manage posts",
	}

	cmd.AddCommand(
		newPostsListCmd(opts),
		newPostsGetCmd(opts),
		newPostsCreateCmd(opts),
		newPostsUpdateCmd(opts),
		newPostsDeleteCmd(opts),
		newPostsSearchCmd(opts),
		newPostsStatsCmd(opts),
	)
	return cmd
}

func newPostsListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := opts.client().ListPosts(cmd.Context())
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), posts, func(tw *tabwriter.Writer) {
				writePosts(tw, posts)
			})
		},
	}
}

func newPostsGetCmd(opts *options) *cobra.Command {
	var withAuthor bool

	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			c := opts.client()
			post, err := c.GetPost(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !withAuthor {
				return opts.render(cmd.OutOrStdout(), post, func(tw *tabwriter.Writer) {
					writePost(tw, post, "")
				})
			}

			author, err := c.PostAuthor(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := struct {
				*domain.Post
				Author string `json:"author"`
			}{post, author.Name}
			return opts.render(cmd.OutOrStdout(), out, func(tw *tabwriter.Writer) {
				writePost(tw, post, author.Name)
			})
		},
	}

	cmd.Flags().BoolVar(&withAuthor, "author", false, "Include the author's display name")
	return cmd
}

func newPostsCreateCmd(opts *options) *cobra.Command {
	var req dto.CreatePostRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			post, err := opts.client().CreatePost(cmd.Context(), req)
			if err != nil {
				return err
			}
			opts.logVerbose("created post %d", post.ID)
			return opts.render(cmd.OutOrStdout(), post, func(tw *tabwriter.Writer) {
				writePost(tw, post, "")
			})
		},
	}

	cmd.Flags().IntVar(&req.UserID, "user", 0, "Author user id")
	cmd.Flags().StringVar(&req.Title, "title", "", "Title")
	cmd.Flags().StringVar(&req.Body, "body", "", "Body text")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newPostsUpdateCmd(opts *options) *cobra.Command {
	var userID int
	var title, body string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update the given fields of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			var req dto.UpdatePostRequest
			if cmd.Flags().Changed("user") {
				req.UserID = &userID
			}
			if cmd.Flags().Changed("title") {
				req.Title = &title
			}
			if cmd.Flags().Changed("body") {
				req.Body = &body
			}

			post, err := opts.client().UpdatePost(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), post, func(tw *tabwriter.Writer) {
				writePost(tw, post, "")
			})
		},
	}

	cmd.Flags().IntVar(&userID, "user", 0, "Author user id")
	cmd.Flags().StringVar(&title, "title", "", "Title")
	cmd.Flags().StringVar(&body, "body", "", "Body text")
	return cmd
}

func newPostsDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			if err := opts.client().DeletePost(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted post %d\n", id)
			return nil
		},
	}
}

func newPostsSearchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search [QUERY...]",
		Short: "Search post titles and bodies, case-insensitively",
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := opts.client().SearchPosts(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), posts, func(tw *tabwriter.Writer) {
				writePosts(tw, posts)
			})
		},
	}
}

func newPostsStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show post counts per author",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := opts.client().PostStats(cmd.Context())
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), stats, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "TOTAL POSTS\t%d\n", stats.TotalPosts)
				fmt.Fprintf(tw, "AUTHORS\t%d\n", len(stats.PostsByUser))
				fmt.Fprintf(tw, "AVERAGE PER AUTHOR\t%.1f\n", stats.AveragePostsPerUser)
				fmt.Fprintln(tw)
				fmt.Fprintln(tw, "USER ID\tPOSTS")

				ids := make([]int, 0, len(stats.PostsByUser))
				for id := range stats.PostsByUser {
					ids = append(ids, id)
				}
				slices.Sort(ids)
				for _, id := range ids {
					fmt.Fprintf(tw, "%d\t%d\n", id, stats.PostsByUser[id])
				}
			})
		},
	}
}

func writePosts(tw *tabwriter.Writer, posts []domain.Post) {
	fmt.Fprintln(tw, "ID\tUSER\tTITLE")
	for _, p := range posts {
		fmt.Fprintf(tw, "%d\t%d\t%s\n", p.ID, p.UserID, truncate(p.Title, titleWidth))
	}
}

func writePost(tw *tabwriter.Writer, p *domain.Post, author string) {
	fmt.Fprintf(tw, "ID\t%d\n", p.ID)
	fmt.Fprintf(tw, "USER\t%d\n", p.UserID)
	if author != "" {
		fmt.Fprintf(tw, "AUTHOR\t%s\n", author)
	}
	fmt.Fprintf(tw, "TITLE\t%s\n", p.Title)
	fmt.Fprintf(tw, "BODY\t%s\n", p.Body)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
