package command

import (
	"fmt"
	"log"

	"github.com/marqueehq/marquee/internal/api"
	"github.com/marqueehq/marquee/internal/core"
	"github.com/marqueehq/marquee/internal/events"
	"github.com/marqueehq/marquee/internal/favorites"
	"github.com/marqueehq/marquee/internal/query"
	"github.com/marqueehq/marquee/internal/session"
	"github.com/marqueehq/marquee/internal/store"
	"github.com/marqueehq/marquee/internal/tickets"
	"github.com/spf13/cobra"
)

// Context carries everything a command needs: config, the device store,
// the API client, the session, and the cache-backed services.
type Context struct {
	Config    core.GlobalConfig
	Store     *store.Store
	Client    *api.Client
	Session   *session.Store
	Cache     *query.Cache
	Events    *events.Service
	Tickets   *tickets.Service
	Favorites *favorites.Service
	Logger    *log.Logger
	JSONMode  bool
}

// GetContext assembles the command context. The session is restored from
// the persisted token before any command logic runs.
func GetContext(cmd *cobra.Command) (*Context, error) {
	jsonMode, _ := cmd.Flags().GetBool("json")
	verbose, _ := cmd.Flags().GetBool("verbose")

	var logger *log.Logger
	if verbose {
		logger = log.New(cmd.ErrOrStderr(), AppName+" ", log.LstdFlags)
	}

	config, err := core.ReadGlobalConfig()
	if err != nil {
		return nil, err
	}
	baseURL, err := config.ResolveBaseURL()
	if err != nil {
		return nil, err
	}

	dataDir, err := core.DataDir()
	if err != nil {
		return nil, err
	}
	kv, err := store.Open(dataDir)
	if err != nil {
		return nil, err
	}

	client, err := api.NewClient(baseURL, "")
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	sess := session.New(kv, client, logger)
	sess.CheckStatus()
	client.SetToken(sess.Token())
	if installID, err := sess.InstallID(); err == nil {
		client.SetInstallID(installID)
	}

	cache := query.New(logger)

	return &Context{
		Config:    config,
		Store:     kv,
		Client:    client,
		Session:   sess,
		Cache:     cache,
		Events:    events.New(cache, client, sess),
		Tickets:   tickets.New(cache, client, sess),
		Favorites: favorites.New(cache, client, sess, logger),
		Logger:    logger,
		JSONMode:  jsonMode,
	}, nil
}

// Close releases the context's device store handle.
func (c *Context) Close() {
	_ = c.Store.Close()
}

// requireAuth fails with a login hint when no session is active.
func requireAuth(ctx *Context) error {
	if ctx.Session.Status() != session.StatusAuthenticated {
		return fmt.Errorf("not logged in. Run '%s login' first", AppName)
	}
	return nil
}
