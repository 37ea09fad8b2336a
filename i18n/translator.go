package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "got"); placeholders are written as {name}.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"schema_mismatch":            "column names do not match the expected schema: expected {expected}, got {got}",
		"unexpected_category":        "unexpected neighbourhood_group \"{value}\"",
		"missing_category":           "neighbourhood_group \"{value}\" is missing",
		"out_of_bounds":              "{violations} record(s) with {field} outside [{min}, {max}], first value {got}",
		"out_of_bounds.row_count":    "row count {got} is not within ({min}, {max})",
		"distribution_drift":         "neighbourhood_group KL divergence {divergence} is not below threshold {threshold}",
		"distribution_drift.support": "neighbourhood_group support differs from reference (missing {missing}, extra {extra}); divergence is infinite",
		"distribution_drift.empty":   "neighbourhood_group distribution is empty; divergence is undefined",
		"invalid_type":               "invalid {column} value {got}",
		"invalid_format":             "invalid format",
		"parse_error":                "parse error",
		"dependency_unavailable":     "{what} not provided",
	},
	"ja": {
		"schema_mismatch":            "列名が期待するスキーマと一致しません: 期待値 {expected}, 実際 {got}",
		"unexpected_category":        "想定外の neighbourhood_group \"{value}\"",
		"missing_category":           "neighbourhood_group \"{value}\" が存在しません",
		"out_of_bounds":              "{field} が [{min}, {max}] の範囲外のレコードが {violations} 件あります (最初の値 {got})",
		"out_of_bounds.row_count":    "行数 {got} が ({min}, {max}) の範囲外です",
		"distribution_drift":         "neighbourhood_group の KL ダイバージェンス {divergence} が閾値 {threshold} 未満ではありません",
		"distribution_drift.support": "neighbourhood_group の値集合が参照データと異なります (不足 {missing}, 余分 {extra})。ダイバージェンスは無限大です",
		"distribution_drift.empty":   "neighbourhood_group の分布が空のためダイバージェンスを定義できません",
		"invalid_type":               "{column} の値 {got} が不正です",
		"invalid_format":             "形式が不正です",
		"parse_error":                "解析エラー",
		"dependency_unavailable":     "{what} が指定されていません",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	dict, ok := dictionaries[t.lang]
	if !ok {
		dict = dictionaries["en"]
	}
	msg, ok := dict[code]
	if !ok {
		return code
	}
	return expand(msg, data)
}

// expand replaces {name} placeholders with values from data. Unknown
// placeholders are left as written.
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
