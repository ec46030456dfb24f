package common

import (
	"encoding/json"
	"strings"
)

// IngredientRecord 一行已拆解的食材記錄，由上游抽取服務產生，核心只讀不改
type IngredientRecord struct {
	RawText  string `json:"raw_text,omitempty"`
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"` // 可能是小數、分數、帶分數或 "a gosto"
	Unit     string `json:"unit,omitempty"`
	Note     string `json:"note,omitempty"`
}

// 上游抽取服務使用的欄位別名
var ingredientKeyAliases = map[string][]string{
	"raw_text": {"raw_text", "texto_original"},
	"name":     {"name", "nome_ingrediente", "nome"},
	"quantity": {"quantity", "quantidade"},
	"unit":     {"unit", "unidade"},
	"note":     {"note", "observacao", "observação"},
}

// UnmarshalJSON 接受英文或葡文鍵名，數量可為數字、字串或 null
func (r *IngredientRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	pick := func(field string) json.RawMessage {
		for _, key := range ingredientKeyAliases[field] {
			if v, ok := raw[key]; ok {
				return v
			}
		}
		return nil
	}

	r.RawText = coerceString(pick("raw_text"))
	r.Name = coerceString(pick("name"))
	r.Quantity = coerceString(pick("quantity"))
	r.Unit = coerceString(pick("unit"))
	r.Note = coerceString(pick("note"))
	return nil
}

// coerceString 將 JSON 值轉為文字形式；null 與物件、陣列視為空字串
func coerceString(v json.RawMessage) string {
	s := strings.TrimSpace(string(v))
	if s == "" || s == "null" {
		return ""
	}
	switch s[0] {
	case '"':
		var out string
		if err := json.Unmarshal(v, &out); err != nil {
			return ""
		}
		return strings.TrimSpace(out)
	case '{', '[':
		return ""
	case 't', 'f':
		return ""
	}
	return s
}

// Label 用於日誌與顯示的名稱
func (r IngredientRecord) Label() string {
	if r.RawText != "" {
		return r.RawText
	}
	return strings.TrimSpace(strings.Join([]string{r.Quantity, r.Unit, r.Name}, " "))
}
