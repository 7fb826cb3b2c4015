package slackbot

import "fmt"

// User-facing message texts. The bot speaks Korean; these are the only
// strings it emits besides formatted order lines.
const (
	msgNoActiveSession = "현재 진행 중인 주문이 없습니다. 주문시작 명령어로 새 주문을 시작해주세요."
	msgActiveSession   = "이미 진행 중인 주문이 있습니다. 먼저 주문을 마감해주세요."
	msgNoOrdersYet     = "아직 접수된 주문이 없습니다."
	msgNoOrdersAtClose = "접수된 주문이 없어 주문을 마감합니다."
	msgClosed          = "주문이 마감되었습니다."
	msgSessionExpired  = "주문 세션이 만료되었습니다. 새로운 주문을 시작해주세요."
	msgOrderFailed     = "주문 처리 중 오류가 발생했습니다. 다시 시도해주세요."
	msgInternalError   = "요청 처리 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
)

func msgUnknownSubcommand(command string) string {
	return fmt.Sprintf("알 수 없는 명령어입니다. `%s 도움말`을 입력하여 사용 가능한 명령어를 확인하세요.", command)
}

func helpText(command string) string {
	return fmt.Sprintf(
		"🍵 *아즈니섬 주문봇 사용 가이드*\n\n"+
			"• `%[1]s 주문시작` — 채널에 새 주문 라운드를 엽니다.\n"+
			"• `%[1]s 주문현황` — 현재까지 접수된 주문을 집계해 보여줍니다.\n"+
			"• `%[1]s 주문마감` — 주문을 마감하고 내역을 정리합니다.\n"+
			"• 주문하기 버튼을 눌러 메뉴/온도/원두/추가 옵션을 선택해 주문을 제출합니다.",
		command)
}
