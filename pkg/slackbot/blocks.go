package slackbot

import (
	"fmt"
	"strings"
	"time"

	"github.com/slack-go/slack"

	"github.com/makeajourney/asnisum/pkg/order"
)

// Block action IDs wired to the interactive handlers.
const (
	actionOrderButton  = "order_button"
	actionStatusButton = "check_status_button"
	actionCloseButton  = "end_order_button"

	callbackOrderSubmission = "order_submission"
)

func plainText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, true, false)
}

func mrkdwnText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, text, false, false)
}

// startBlocks builds the anchor message posted when a round opens.
// userGroupID, when set, mentions the group so members get notified.
func startBlocks(userGroupID string) (string, []slack.Block) {
	text := "☕ 아즈니섬 주문을 시작합니다!"
	if userGroupID != "" {
		text = fmt.Sprintf("<!subteam^%s> %s", userGroupID, text)
	}

	orderBtn := slack.NewButtonBlockElement(actionOrderButton, "order", plainText("주문하기"))
	orderBtn.Style = slack.StylePrimary
	statusBtn := slack.NewButtonBlockElement(actionStatusButton, "status", plainText("주문현황"))

	return text, []slack.Block{
		slack.NewSectionBlock(mrkdwnText(text), nil, nil),
		slack.NewActionBlock("start_actions", orderBtn, statusBtn),
	}
}

// statusText renders the live tally body for a status reply.
func statusText(lines []order.Line, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*현재 주문 현황* (총 %d건)\n", total)
	for _, line := range lines {
		fmt.Fprintf(&b, "• %s (%d건)\n", line.Text, line.Count)
	}
	return strings.TrimRight(b.String(), "\n")
}

// statusBlocks wraps the live tally with a close button.
func statusBlocks(summary, command string) []slack.Block {
	closeBtn := slack.NewButtonBlockElement(actionCloseButton, "close", plainText("주문 마감하기"))
	closeBtn.Style = slack.StylePrimary

	return []slack.Block{
		slack.NewSectionBlock(mrkdwnText(summary), nil, nil),
		slack.NewActionBlock("status_actions", closeBtn),
		slack.NewContextBlock("status_hint",
			mrkdwnText(fmt.Sprintf("💡 버튼을 클릭하거나 `%s 주문마감` 명령어로 주문을 마감할 수 있습니다.", command))),
	}
}

// summaryBlocks builds the closing summary posted to the summary channel.
func summaryBlocks(channelID, channelName, startedBy, starterName string, lines []order.Line, total int, closedAt time.Time) []slack.Block {
	channelRef := fmt.Sprintf("<#%s>", channelID)
	if channelName != "" {
		channelRef = fmt.Sprintf("<#%s|%s>", channelID, channelName)
	}
	starterRef := fmt.Sprintf("<@%s>", startedBy)
	if starterName != "" {
		starterRef = fmt.Sprintf("%s (<@%s>)", starterName, startedBy)
	}

	var body strings.Builder
	for _, line := range lines {
		fmt.Fprintf(&body, "• %s (%d건)\n", line.Text, line.Count)
	}

	return []slack.Block{
		slack.NewHeaderBlock(plainText("📋 아즈니섬 주문 내역")),
		slack.NewSectionBlock(mrkdwnText(
			fmt.Sprintf("*주문 채널:* %s\n*주문자:* %s", channelRef, starterRef)), nil, nil),
		slack.NewDividerBlock(),
		slack.NewSectionBlock(mrkdwnText(strings.TrimRight(body.String(), "\n")), nil, nil),
		slack.NewContextBlock("summary_footer",
			mrkdwnText(fmt.Sprintf("%s 주문 마감 | 총 %d건", closedAt.Format("2006-01-02 15:04"), total))),
	}
}
