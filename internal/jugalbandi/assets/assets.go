package assets

import _ "embed" // 에셋 임베드용

// BotMessagesYAML: 사용자에게 보내는 메시지 번들입니다. 언어별 문구는 언어 이름 키 아래에 둡니다.
//
//go:embed messages/bot-messages.yml
var BotMessagesYAML string
