package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "view").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			msg = "型が不正です"
		case "invalid_format":
			msg = "形式が不正です"
		case "required":
			msg = "必須フィールドが不足しています"
		case "unknown_key":
			msg = "未知のキーです"
		case "unknown_field":
			msg = "スキーマに存在しないフィールドです"
		case "duplicate_field":
			msg = "フィールドが重複しています"
		case "duplicate_key":
			msg = "キーが重複しています"
		case "unknown_policy":
			msg = "未知のポリシーです"
		case "duplicate_policy":
			msg = "ポリシー名が重複しています"
		case "not_permitted":
			msg = "このビューでは公開されていないフィールドです"
		case "schema_derivation":
			msg = "フィルタ済みドキュメントの生成に失敗しました"
		case "parse_error":
			msg = "解析エラー"
		case "encode_error":
			msg = "シリアライズエラー"
		case "too_small":
			msg = "小さすぎます"
		case "too_big":
			msg = "大きすぎます"
		case "too_long":
			msg = "長すぎます"
		case "invalid_enum":
			msg = "許可されていない値です"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			msg = "invalid type"
		case "invalid_format":
			msg = "invalid format"
		case "required":
			msg = "required field missing"
		case "unknown_key":
			msg = "unknown key"
		case "unknown_field":
			msg = "field {field} is not declared"
		case "duplicate_field":
			msg = "duplicate field {field}"
		case "duplicate_key":
			msg = "duplicate key {field}"
		case "unknown_policy":
			msg = "unknown policy {policy}"
		case "duplicate_policy":
			msg = "policy {policy} is already registered"
		case "not_permitted":
			msg = "field {field} is not exposed by view {view}"
		case "schema_derivation":
			msg = "filtered document derivation failed"
		case "parse_error":
			msg = "parse error"
		case "encode_error":
			msg = "encode error"
		case "too_small":
			msg = "must be >= {min}"
		case "too_big":
			msg = "must be <= {max}"
		case "too_long":
			msg = "length must be <= {max}"
		case "invalid_enum":
			msg = "value {got} is not allowed"
		}
	}
	if msg == "" {
		return code
	}
	return expand(msg, data)
}

// expand replaces {key} placeholders with values from data; unknown
// placeholders are kept verbatim.
func expand(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
