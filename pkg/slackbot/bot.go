// Package slackbot runs the Slack gateway: a Socket Mode connection
// that turns slash commands, button clicks and modal submissions into
// session operations.
package slackbot

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"

	"github.com/makeajourney/asnisum/pkg/catalog"
	"github.com/makeajourney/asnisum/pkg/logger"
	"github.com/makeajourney/asnisum/pkg/session"
)

type Bot struct {
	socket  *socketmode.Client
	handler *Handler
	command string
	running atomic.Bool
}

// NewBot wires a Socket Mode client to the session manager. botToken is
// the xoxb bot token, appToken the xapp app-level token.
func NewBot(
	botToken, appToken string,
	manager *session.Manager,
	catalogs *catalog.Store,
	command, summaryChannel string,
) (*Bot, error) {
	if botToken == "" || appToken == "" {
		return nil, fmt.Errorf("slack bot and app tokens are required")
	}

	api := slack.New(botToken, slack.OptionAppLevelToken(appToken))
	socket := socketmode.New(api)

	return &Bot{
		socket:  socket,
		handler: NewHandler(api, manager, catalogs, command, summaryChannel),
		command: command,
	}, nil
}

func (b *Bot) IsRunning() bool {
	return b.running.Load()
}

// Run connects and processes events until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.running.Store(true)
	defer b.running.Store(false)

	go func() {
		if err := b.socket.RunContext(ctx); err != nil && ctx.Err() == nil {
			logger.ErrorCF("slackbot", "Socket mode connection failed", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt, ok := <-b.socket.Events:
			if !ok {
				return nil
			}
			b.dispatch(ctx, evt)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, evt socketmode.Event) {
	switch evt.Type {
	case socketmode.EventTypeConnected:
		logger.InfoC("slackbot", "Connected to Slack")
	case socketmode.EventTypeConnectionError:
		logger.WarnC("slackbot", "Slack connection error, reconnecting")
	case socketmode.EventTypeSlashCommand:
		cmd, ok := evt.Data.(slack.SlashCommand)
		if !ok || evt.Request == nil {
			return
		}
		b.socket.Ack(*evt.Request)
		if cmd.Command != b.command {
			return
		}
		go b.handler.HandleCommand(ctx, cmd)
	case socketmode.EventTypeInteractive:
		callback, ok := evt.Data.(slack.InteractionCallback)
		if !ok || evt.Request == nil {
			return
		}
		switch callback.Type {
		case slack.InteractionTypeBlockActions:
			b.socket.Ack(*evt.Request)
			go b.handler.HandleBlockAction(ctx, callback)
		case slack.InteractionTypeViewSubmission:
			if callback.View.CallbackID != callbackOrderSubmission {
				b.socket.Ack(*evt.Request)
				return
			}
			// Validation errors ride on the ack, so this one stays
			// synchronous.
			if errs := b.handler.HandleViewSubmission(ctx, callback); errs != nil {
				b.socket.Ack(*evt.Request, map[string]any{
					"response_action": "errors",
					"errors":          errs,
				})
			} else {
				b.socket.Ack(*evt.Request)
			}
		default:
			b.socket.Ack(*evt.Request)
		}
	}
}
