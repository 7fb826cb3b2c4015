package gateway

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/makeajourney/asnisum/cmd/asnisum/internal"
	"github.com/makeajourney/asnisum/pkg/admin"
	"github.com/makeajourney/asnisum/pkg/catalog"
	"github.com/makeajourney/asnisum/pkg/logger"
	"github.com/makeajourney/asnisum/pkg/session"
	"github.com/makeajourney/asnisum/pkg/slackbot"
	"github.com/makeajourney/asnisum/pkg/store"
	"github.com/makeajourney/asnisum/pkg/store/sqlite"
)

func gatewayCmd(debug bool) error {
	_ = godotenv.Load()

	if debug {
		logger.SetLevel(logger.DEBUG)
		fmt.Println("🔍 Debug mode enabled")
	}

	cfg, err := internal.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	var sessionStore store.Store
	if cfg.Storage.Path != "" {
		sessionStore, err = sqlite.Open(cfg.Storage.Path)
		if err != nil {
			return fmt.Errorf("error opening session store: %w", err)
		}
		fmt.Printf("✓ Session store: %s\n", cfg.Storage.Path)
	} else {
		sessionStore = store.NewMemory()
		fmt.Println("⚠ Session store: in-memory (sessions will not survive restarts)")
	}
	defer sessionStore.Close()

	catalogs, err := catalog.NewStore(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("error loading catalog: %w", err)
	}
	fmt.Printf("✓ Catalog: %d menus\n", len(catalogs.Current().Menus))

	manager := session.NewManager(sessionStore)

	bot, err := slackbot.NewBot(
		cfg.Slack.BotToken,
		cfg.Slack.AppToken,
		manager,
		catalogs,
		cfg.Slack.Command,
		cfg.Slack.SummaryChannel,
	)
	if err != nil {
		return fmt.Errorf("error creating bot: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Admin.Enabled {
		adminServer := admin.NewServer(cfg.Admin, catalogs)
		go func() {
			if err := adminServer.Start(ctx); err != nil {
				logger.ErrorCF("admin", "Admin server error", map[string]any{
					"error": err.Error(),
				})
			}
		}()
		fmt.Printf("✓ Admin page available at http://%s:%d/\n", cfg.Admin.Host, cfg.Admin.Port)
	}

	botErr := make(chan error, 1)
	go func() {
		botErr <- bot.Run(ctx)
	}()

	fmt.Printf("✓ Gateway started, answering %s\n", cfg.Slack.Command)
	fmt.Println("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	select {
	case <-sigChan:
		fmt.Println("\nShutting down...")
		cancel()
		<-botErr
	case err := <-botErr:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("gateway error: %w", err)
		}
	}

	fmt.Println("✓ Gateway stopped")
	return nil
}
