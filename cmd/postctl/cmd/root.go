package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/postboard/postboard/internal/client"
)

// Version is set at build time
var Version = "0.1.0"

const (
	defaultHost = "http://localhost:3000"
	hostEnv     = "POSTBOARD_API_URL"
)

// options holds the global flags
type options struct {
	host    string
	output  string
	timeout time.Duration
	retries int
	verbose bool
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "postctl",
		Short: "postctl - manage users and posts on a postboard server",
		Long: `postctl talks to a running postboard API.

Commands:
  users   - list, create, update, delete users and check availability
  posts   - list, create, update, delete, search posts and show stats

Example:
  postctl users list
  postctl users check --username aysedemir --exclude 2
  postctl posts search react -o json
  postctl --host http://api.internal:3000 posts stats`,
		Version:       Version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.host, "host", "", "postboard API URL (or set "+hostEnv+")")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "Output format: table or json")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Per-request timeout")
	root.PersistentFlags().IntVar(&opts.retries, "retries", 3, "Retries for idempotent requests")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")

	root.AddCommand(newUsersCmd(opts))
	root.AddCommand(newPostsCmd(opts))

	return root
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}

// getHost returns the API host from flag, environment or default
func (o *options) getHost() string {
	if o.host != "" {
		return o.host
	}
	if h := os.Getenv(hostEnv); h != "" {
		return h
	}
	return defaultHost
}

func (o *options) client() *client.Client {
	cfg := client.DefaultConfig()
	cfg.BaseURL = o.getHost()
	cfg.Timeout = o.timeout
	cfg.MaxRetries = o.retries
	o.logVerbose("using %s", cfg.BaseURL)
	return client.New(cfg)
}

// logVerbose logs a message if verbose mode is enabled
func (o *options) logVerbose(format string, args ...any) {
	if o.verbose {
		fmt.Fprintf(os.Stderr, "[postctl] "+format+"\n", args...)
	}
}

// render writes v as indented JSON, or calls table for the tabular form
func (o *options) render(w io.Writer, v any, table func(tw *tabwriter.Writer)) error {
	switch o.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		table(tw)
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", o.output)
	}
}

func parseIDArg(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
