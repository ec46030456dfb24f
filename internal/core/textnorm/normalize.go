package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// 雙重編碼的葡文字串中，重音字母的首位元組會以 Ã 或 Â 顯示
const mojibakeMarkers = "ÃÂ"

// Normalize 修復亂碼後去除重音、轉小寫並合併空白
func Normalize(text string) string {
	return Fold(RepairMojibake(text))
}

// RepairMojibake 將被誤當 Latin-1 解讀的 UTF-8 字串還原；無法還原時回傳原字串
func RepairMojibake(text string) string {
	if text == "" || !strings.ContainsAny(text, mojibakeMarkers) {
		return text
	}
	raw, err := charmap.ISO8859_1.NewEncoder().String(text)
	if err != nil {
		return text
	}
	if !utf8.ValidString(raw) {
		return text
	}
	return raw
}

// Fold NFD 分解後移除 Mn 類字元，再轉小寫、去頭尾空白並合併連續空白
func Fold(text string) string {
	if text == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		out = text
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

// StripParentheses 移除括號本身，保留其中文字
func StripParentheses(text string) string {
	return strings.NewReplacer("(", " ", ")", " ").Replace(text)
}
