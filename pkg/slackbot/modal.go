package slackbot

import (
	"github.com/slack-go/slack"

	"github.com/makeajourney/asnisum/pkg/catalog"
)

// Modal block and action IDs. View submissions address state values by
// these, so they must stay in sync with parseSubmission.
const (
	blockMenu        = "menu"
	blockTemperature = "temperature"
	blockBeanOption  = "bean_option"
	blockExtras      = "extra_options"
	blockNote        = "options"

	inputMenu        = "menu_input"
	inputTemperature = "temperature_input"
	inputBeanOption  = "bean_option_input"
	inputExtras      = "extra_options_input"
	inputNote        = "options_input"
)

func selectOption(value, text string) *slack.OptionBlockObject {
	return slack.NewOptionBlockObject(value, plainText(text), nil)
}

// orderModal builds the order form from the catalog. The originating
// channel travels in private_metadata so the submission can find its
// session.
func orderModal(cat *catalog.Catalog, channelID string) slack.ModalViewRequest {
	menuOptions := make([]*slack.OptionBlockObject, 0, len(cat.Menus))
	for _, m := range cat.Menus {
		menuOptions = append(menuOptions, selectOption(m.Value, m.Text))
	}
	menuSelect := slack.NewOptionsSelectBlockElement(
		slack.OptTypeStatic, plainText("메뉴를 선택해주세요"), inputMenu, menuOptions...)
	menuBlock := slack.NewInputBlock(blockMenu, plainText("메뉴"), nil, menuSelect)

	tempOptions := make([]*slack.OptionBlockObject, 0, len(cat.TemperatureOptions))
	for _, o := range cat.TemperatureOptions {
		tempOptions = append(tempOptions, selectOption(o.Value, o.Text))
	}
	tempBlock := slack.NewInputBlock(blockTemperature, plainText("온도"), nil,
		slack.NewRadioButtonsBlockElement(inputTemperature, tempOptions...))

	beanOptions := make([]*slack.OptionBlockObject, 0, len(cat.BeanOptions))
	for _, o := range cat.BeanOptions {
		beanOptions = append(beanOptions, selectOption(o.Value, o.Text))
	}
	beanBlock := slack.NewInputBlock(blockBeanOption, plainText("원두 (커피 메뉴만 해당)"), nil,
		slack.NewRadioButtonsBlockElement(inputBeanOption, beanOptions...))
	beanBlock.Optional = true

	extraOptions := make([]*slack.OptionBlockObject, 0, len(cat.ExtraOptions))
	for _, o := range cat.ExtraOptions {
		extraOptions = append(extraOptions, selectOption(o.Value, o.Text))
	}
	extrasBlock := slack.NewInputBlock(blockExtras, plainText("추가 옵션"), nil,
		slack.NewCheckboxGroupsBlockElement(inputExtras, extraOptions...))
	extrasBlock.Optional = true

	noteBlock := slack.NewInputBlock(blockNote, plainText("요청사항"), nil,
		slack.NewPlainTextInputBlockElement(plainText("예: 샷 추가는 1샷만"), inputNote))
	noteBlock.Optional = true

	return slack.ModalViewRequest{
		Type:            slack.VTModal,
		Title:           plainText("아즈니섬 주문"),
		Submit:          plainText("주문하기"),
		Close:           plainText("취소"),
		CallbackID:      callbackOrderSubmission,
		PrivateMetadata: channelID,
		Blocks: slack.Blocks{BlockSet: []slack.Block{
			menuBlock, tempBlock, beanBlock, extrasBlock, noteBlock,
		}},
	}
}

// submission is the raw modal state as the user filled it in. Bean
// defaulting happens later in order.New, not here.
type submission struct {
	Menu        string
	Temperature string
	BeanOption  string
	Extras      []string
	Note        string
}

func parseSubmission(view slack.View) submission {
	if view.State == nil {
		return submission{}
	}
	values := view.State.Values
	sub := submission{
		Menu:        values[blockMenu][inputMenu].SelectedOption.Value,
		Temperature: values[blockTemperature][inputTemperature].SelectedOption.Value,
		BeanOption:  values[blockBeanOption][inputBeanOption].SelectedOption.Value,
		Note:        values[blockNote][inputNote].Value,
	}
	for _, opt := range values[blockExtras][inputExtras].SelectedOptions {
		sub.Extras = append(sub.Extras, opt.Value)
	}
	return sub
}
