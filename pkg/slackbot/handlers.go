package slackbot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/slack-go/slack"

	"github.com/makeajourney/asnisum/pkg/catalog"
	"github.com/makeajourney/asnisum/pkg/logger"
	"github.com/makeajourney/asnisum/pkg/order"
	"github.com/makeajourney/asnisum/pkg/session"
)

// SlackAPI is the subset of the Slack Web API the handlers use. It is
// satisfied by *slack.Client and faked in tests.
type SlackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	PostEphemeralContext(ctx context.Context, channelID, userID string, options ...slack.MsgOption) (string, error)
	OpenViewContext(ctx context.Context, triggerID string, view slack.ModalViewRequest) (*slack.ViewResponse, error)
	GetConversationInfoContext(ctx context.Context, input *slack.GetConversationInfoInput) (*slack.Channel, error)
	GetUserInfoContext(ctx context.Context, user string) (*slack.User, error)
}

// Handler implements the bot's command and interaction semantics on top
// of the session manager. It holds no per-channel state of its own.
type Handler struct {
	api            SlackAPI
	manager        *session.Manager
	catalogs       *catalog.Store
	collator       *order.Collator
	command        string
	summaryChannel string
	now            func() time.Time
}

func NewHandler(
	api SlackAPI,
	manager *session.Manager,
	catalogs *catalog.Store,
	command string,
	summaryChannel string,
) *Handler {
	return &Handler{
		api:            api,
		manager:        manager,
		catalogs:       catalogs,
		collator:       order.NewCollator(catalogs.Current().Language),
		command:        command,
		summaryChannel: summaryChannel,
		now:            time.Now,
	}
}

// snapshot pins the catalog for one request so admin edits cannot shift
// labels mid-render.
func (h *Handler) snapshot() (*catalog.Catalog, *order.Formatter, *order.Aggregator) {
	cat := h.catalogs.Current()
	formatter := order.NewFormatter(cat)
	return cat, formatter, order.NewAggregator(formatter, h.collator)
}

var subteamPattern = regexp.MustCompile(`<!subteam\^([A-Z0-9]+)(?:\|[^>]*)?>`)

// HandleCommand dispatches a slash command to its subcommand handler.
func (h *Handler) HandleCommand(ctx context.Context, cmd slack.SlashCommand) {
	parts := strings.Fields(cmd.Text)
	sub := ""
	if len(parts) > 0 {
		sub = parts[0]
	}

	logger.InfoCF("slackbot", "Slash command received", map[string]any{
		"channel":    cmd.ChannelID,
		"user":       cmd.UserID,
		"subcommand": sub,
	})

	var err error
	switch sub {
	case "주문시작", "주문", "주문하기":
		err = h.handleStart(ctx, cmd.ChannelID, cmd.UserID, cmd.Text)
	case "주문현황":
		err = h.handleStatus(ctx, cmd.ChannelID, cmd.UserID)
	case "주문마감":
		err = h.handleClose(ctx, cmd.ChannelID, cmd.UserID)
	case "도움말", "":
		err = h.handleHelp(ctx, cmd.ChannelID, cmd.UserID)
	default:
		err = h.ephemeral(ctx, cmd.ChannelID, cmd.UserID, msgUnknownSubcommand(h.command))
	}
	if err != nil {
		logger.ErrorCF("slackbot", "Command handling failed", map[string]any{
			"channel":    cmd.ChannelID,
			"subcommand": sub,
			"error":      err.Error(),
		})
	}
}

// HandleBlockAction dispatches a button click.
func (h *Handler) HandleBlockAction(ctx context.Context, callback slack.InteractionCallback) {
	if len(callback.ActionCallback.BlockActions) == 0 {
		return
	}
	actionID := callback.ActionCallback.BlockActions[0].ActionID
	channelID := callback.Channel.ID
	userID := callback.User.ID

	var err error
	switch actionID {
	case actionOrderButton:
		err = h.handleOrderButton(ctx, callback.TriggerID, channelID, userID)
	case actionStatusButton:
		err = h.handleStatus(ctx, channelID, userID)
	case actionCloseButton:
		err = h.handleClose(ctx, channelID, userID)
	default:
		return
	}
	if err != nil {
		logger.ErrorCF("slackbot", "Block action handling failed", map[string]any{
			"channel": channelID,
			"action":  actionID,
			"error":   err.Error(),
		})
	}
}

// HandleViewSubmission appends the submitted order. The returned map is
// nil on success; otherwise it carries field errors for the modal's
// response_action payload.
func (h *Handler) HandleViewSubmission(ctx context.Context, callback slack.InteractionCallback) map[string]string {
	channelID := callback.View.PrivateMetadata
	userID := callback.User.ID
	sub := parseSubmission(callback.View)

	if sub.Menu == "" {
		return map[string]string{blockMenu: "메뉴를 선택해주세요."}
	}
	if sub.Temperature == "" {
		return map[string]string{blockTemperature: "온도를 선택해주세요."}
	}

	sess, err := h.manager.Get(ctx, channelID)
	if err != nil {
		if errors.Is(err, session.ErrExpired) {
			return map[string]string{blockMenu: msgSessionExpired}
		}
		logger.ErrorCF("slackbot", "Session lookup failed", map[string]any{
			"channel": channelID,
			"error":   err.Error(),
		})
		return map[string]string{blockMenu: msgOrderFailed}
	}

	cat, formatter, _ := h.snapshot()
	o := order.New(cat, userID, sub.Menu, order.Temperature(sub.Temperature), sub.BeanOption, sub.Extras, sub.Note)
	if err := h.manager.AddOrder(ctx, channelID, o); err != nil {
		if errors.Is(err, session.ErrExpired) {
			return map[string]string{blockMenu: msgSessionExpired}
		}
		logger.ErrorCF("slackbot", "Order append failed", map[string]any{
			"channel": channelID,
			"user":    userID,
			"error":   err.Error(),
		})
		return map[string]string{blockMenu: msgOrderFailed}
	}

	text := formatter.Format(o, true)
	if _, _, err := h.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionTS(sess.MessageTS)); err != nil {
		logger.ErrorCF("slackbot", "Order confirmation post failed", map[string]any{
			"channel": channelID,
			"error":   err.Error(),
		})
	}

	logger.InfoCF("slackbot", "Order accepted", map[string]any{
		"channel": channelID,
		"user":    userID,
		"menu":    o.Menu,
	})
	return nil
}

func (h *Handler) handleStart(ctx context.Context, channelID, userID, text string) error {
	active, err := h.manager.IsActive(ctx, channelID)
	if err != nil {
		return fmt.Errorf("check session: %w", err)
	}
	if active {
		return h.ephemeral(ctx, channelID, userID, msgActiveSession)
	}

	userGroupID := ""
	if m := subteamPattern.FindStringSubmatch(text); m != nil {
		userGroupID = m[1]
	}

	fallback, blocks := startBlocks(userGroupID)
	_, ts, err := h.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(fallback, false),
		slack.MsgOptionBlocks(blocks...))
	if err != nil {
		return fmt.Errorf("post start message: %w", err)
	}

	if _, err := h.manager.Start(ctx, channelID, ts, userID); err != nil {
		if errors.Is(err, session.ErrConflict) {
			return h.ephemeral(ctx, channelID, userID, msgActiveSession)
		}
		return fmt.Errorf("start session: %w", err)
	}

	// Thread hint so latecomers know how to check the tally.
	hint := fmt.Sprintf("💡 `%s 주문현황` 명령어 또는 주문현황 버튼으로 현재까지의 주문을 확인할 수 있습니다.", h.command)
	if _, _, err := h.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(hint, false),
		slack.MsgOptionTS(ts)); err != nil {
		logger.WarnCF("slackbot", "Status hint post failed", map[string]any{
			"channel": channelID,
			"error":   err.Error(),
		})
	}
	return nil
}

func (h *Handler) handleStatus(ctx context.Context, channelID, userID string) error {
	sess, err := h.manager.Get(ctx, channelID)
	if err != nil {
		if errors.Is(err, session.ErrExpired) {
			return h.ephemeral(ctx, channelID, userID, msgNoActiveSession)
		}
		return fmt.Errorf("load session: %w", err)
	}

	if len(sess.Orders) == 0 {
		return h.ephemeral(ctx, channelID, userID, msgNoOrdersYet)
	}

	_, _, aggregator := h.snapshot()
	lines := aggregator.LiveStatus(sess.Orders)
	summary := statusText(lines, len(sess.Orders))
	_, _, err = h.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(summary, false),
		slack.MsgOptionBlocks(statusBlocks(summary, h.command)...),
		slack.MsgOptionTS(sess.MessageTS))
	if err != nil {
		return fmt.Errorf("post status: %w", err)
	}
	return nil
}

func (h *Handler) handleClose(ctx context.Context, channelID, userID string) error {
	sess, err := h.manager.Get(ctx, channelID)
	if err != nil {
		if errors.Is(err, session.ErrExpired) {
			return h.ephemeral(ctx, channelID, userID, msgNoActiveSession)
		}
		return fmt.Errorf("load session: %w", err)
	}

	if len(sess.Orders) == 0 {
		if err := h.manager.Clear(ctx, channelID); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		_, _, err := h.api.PostMessageContext(ctx, channelID,
			slack.MsgOptionText(msgNoOrdersAtClose, false))
		return err
	}

	_, formatter, aggregator := h.snapshot()

	// Per-order recap in the session thread, in submission order.
	var recap strings.Builder
	recap.WriteString("*주문 내역*\n")
	for _, o := range sess.Orders {
		fmt.Fprintf(&recap, "• %s\n", formatter.Format(o, true))
	}
	if _, _, err := h.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(strings.TrimRight(recap.String(), "\n"), false),
		slack.MsgOptionTS(sess.MessageTS)); err != nil {
		logger.WarnCF("slackbot", "Recap post failed", map[string]any{
			"channel": channelID,
			"error":   err.Error(),
		})
	}

	h.postSummary(ctx, channelID, sess, aggregator)

	if err := h.manager.Clear(ctx, channelID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	_, _, err = h.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(fmt.Sprintf("%s (총 %d건)", msgClosed, len(sess.Orders)), false))
	if err != nil {
		return fmt.Errorf("post close notice: %w", err)
	}

	logger.InfoCF("slackbot", "Order round closed", map[string]any{
		"channel": channelID,
		"orders":  len(sess.Orders),
	})
	return nil
}

// postSummary sends the grouped closing summary to the summary channel.
// Failures are logged but never block closing the round.
func (h *Handler) postSummary(ctx context.Context, channelID string, sess *session.Session, aggregator *order.Aggregator) {
	if h.summaryChannel == "" {
		return
	}

	channelName := ""
	if info, err := h.api.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{
		ChannelID: channelID,
	}); err == nil {
		channelName = info.Name
	} else {
		logger.WarnCF("slackbot", "Channel info lookup failed", map[string]any{
			"channel": channelID,
			"error":   err.Error(),
		})
	}

	starterName := ""
	if user, err := h.api.GetUserInfoContext(ctx, sess.StartedBy); err == nil {
		starterName = user.Profile.DisplayName
		if starterName == "" {
			starterName = user.RealName
		}
	} else {
		logger.WarnCF("slackbot", "User info lookup failed", map[string]any{
			"user":  sess.StartedBy,
			"error": err.Error(),
		})
	}

	lines := aggregator.CloseSummary(sess.Orders)
	blocks := summaryBlocks(channelID, channelName, sess.StartedBy, starterName, lines, len(sess.Orders), h.now())
	if _, _, err := h.api.PostMessageContext(ctx, h.summaryChannel,
		slack.MsgOptionText("📋 아즈니섬 주문 내역", false),
		slack.MsgOptionBlocks(blocks...)); err != nil {
		logger.WarnCF("slackbot", "Summary post failed", map[string]any{
			"channel": h.summaryChannel,
			"error":   err.Error(),
		})
	}
}

func (h *Handler) handleOrderButton(ctx context.Context, triggerID, channelID, userID string) error {
	active, err := h.manager.IsActive(ctx, channelID)
	if err != nil {
		return fmt.Errorf("check session: %w", err)
	}
	if !active {
		return h.ephemeral(ctx, channelID, userID, msgNoActiveSession)
	}
	if _, err := h.api.OpenViewContext(ctx, triggerID, orderModal(h.catalogs.Current(), channelID)); err != nil {
		return fmt.Errorf("open order modal: %w", err)
	}
	return nil
}

func (h *Handler) handleHelp(ctx context.Context, channelID, userID string) error {
	return h.ephemeral(ctx, channelID, userID, helpText(h.command))
}

func (h *Handler) ephemeral(ctx context.Context, channelID, userID, text string) error {
	_, err := h.api.PostEphemeralContext(ctx, channelID, userID, slack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("post ephemeral: %w", err)
	}
	return nil
}
