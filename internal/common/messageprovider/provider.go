// Package messageprovider: YAML 메시지 번들에서 점(.) 경로 키로 사용자 메시지를 조회합니다.
package messageprovider

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider: 파싱된 메시지 트리를 보관합니다. 생성 후에는 읽기 전용이라 동시 사용에 안전합니다.
type Provider struct {
	root map[string]any
}

// NewFromYAML: YAML 문자열로 Provider를 생성합니다. 루트는 매핑이어야 합니다.
func NewFromYAML(yamlContent string) (*Provider, error) {
	var raw any
	if err := yaml.Unmarshal([]byte(yamlContent), &raw); err != nil {
		return nil, fmt.Errorf("unmarshal yaml failed: %w", err)
	}

	if raw == nil {
		return &Provider{root: make(map[string]any)}, nil
	}

	root, ok := normalizeYAMLValue(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected yaml root type: %T", raw)
	}

	return &Provider{root: root}, nil
}

// Get: key에 해당하는 템플릿을 찾아 {param} 자리표시자를 치환합니다.
// 키가 없으면 key 자체를 반환합니다.
func (p *Provider) Get(key string, params ...Param) string {
	if p == nil || strings.TrimSpace(key) == "" {
		return key
	}

	value, ok := resolveDottedKey(p.root, key)
	if !ok {
		return key
	}

	template, ok := value.(string)
	if !ok {
		return fmt.Sprint(value)
	}

	out := template
	for _, param := range params {
		out = strings.ReplaceAll(out, "{"+param.Key+"}", fmt.Sprint(param.Value))
	}
	return out
}

// Has: key가 문자열 메시지로 존재하는지 확인합니다.
func (p *Provider) Has(key string) bool {
	if p == nil {
		return false
	}
	value, ok := resolveDottedKey(p.root, key)
	if !ok {
		return false
	}
	_, isString := value.(string)
	return isString
}

// Require: 모든 key가 존재하는지 검사합니다. 시작 시 번들 누락을 조기에 발견하기 위해 사용합니다.
func (p *Provider) Require(keys ...string) error {
	var missing []string
	for _, key := range keys {
		if !p.Has(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing message keys: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Param: 템플릿 치환 파라미터
type Param struct {
	Key   string
	Value any
}

// P: Param 생성 헬퍼
func P(key string, value any) Param {
	return Param{Key: key, Value: value}
}

func resolveDottedKey(root map[string]any, key string) (any, bool) {
	var current any = root
	for _, part := range strings.Split(key, ".") {
		nextMap, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		next, ok := nextMap[part]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// normalizeYAMLValue: map[any]any 를 map[string]any 로 재귀 변환합니다.
func normalizeYAMLValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, vv := range typed {
			out[k] = normalizeYAMLValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, vv := range typed {
			out[fmt.Sprint(k)] = normalizeYAMLValue(vv)
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, vv := range typed {
			out = append(out, normalizeYAMLValue(vv))
		}
		return out
	default:
		return v
	}
}
