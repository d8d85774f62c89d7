package dispatcher

import (
	"net/url"

	"github.com/OpenNyAI/telegram-integration-jugalbandi/internal/jugalbandi/model"
)

// QA API 엔드포인트 경로 (base URL 기준 상대 경로)
const (
	EndpointLangchain = "query-with-langchain-gpt4"
	EndpointVoice     = "query-using-voice-gpt4"
)

const (
	outputFormatVoice = "Voice"
	outputFormatText  = "Text"
)

// endpointCall: 선택된 엔드포인트와 쿼리 파라미터
type endpointCall struct {
	endpoint string
	params   url.Values
}

// selectEndpoint: 요청 하나를 정확히 하나의 원격 호출로 매핑한다.
// 음성이 있으면 텍스트/언어와 무관하게 음성 엔드포인트, 영어 텍스트는 langchain, 그 외 언어 텍스트는 음성 엔드포인트의 Text 출력.
func selectEndpoint(uuidNumber string, req model.QueryRequest) endpointCall {
	params := url.Values{}
	params.Set("uuid_number", uuidNumber)

	switch {
	case req.HasVoice():
		params.Set("audio_url", req.VoiceURL)
		params.Set("input_language", string(req.Language))
		params.Set("output_format", outputFormatVoice)
		return endpointCall{endpoint: EndpointVoice, params: params}
	case req.Language == model.LanguageEnglish:
		params.Set("query_string", req.Text)
		return endpointCall{endpoint: EndpointLangchain, params: params}
	default:
		params.Set("query_text", req.Text)
		params.Set("audio_url", "")
		params.Set("input_language", string(req.Language))
		params.Set("output_format", outputFormatText)
		return endpointCall{endpoint: EndpointVoice, params: params}
	}
}

func (c endpointCall) resolve(base *url.URL) string {
	target := base.ResolveReference(&url.URL{Path: c.endpoint})
	target.RawQuery = c.params.Encode()
	return target.String()
}
