package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sourav-hati/bookstore/pkg/client"
)

type rootOptions struct {
	server  string
	session string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "bookctl",
		Short:         "Manage the bookstore catalog from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.server, "server", envOr("BOOKSTORE_URL", "http://localhost:5000"), "bookstore API base URL")
	cmd.PersistentFlags().StringVar(&opts.session, "session", "", "session file (default: user config dir)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "request timeout")

	cmd.AddCommand(
		newRegisterCmd(opts),
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newWhoamiCmd(opts),
		newBooksCmd(opts),
	)
	return cmd
}

// client builds an API client bound to the persisted session. The default
// book refresh is disabled since each command fetches what it prints.
func (o *rootOptions) client() (*client.Client, error) {
	path := o.session
	if path == "" {
		p, err := client.DefaultSessionPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return client.New(o.server,
		client.WithSessionStore(client.NewFileStore(path)),
		client.WithTimeout(o.timeout),
		client.OnTokenChange(nil),
	)
}
