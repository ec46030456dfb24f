package nutrition

import (
	"regexp"
	"sort"
	"strings"

	"nutriai/internal/core/textnorm"
)

// 不具營養意義的名稱片段（水、鹽、裝飾、適量等）
var defaultBlacklist = []string{
	"água", "agua", "sal", "gelo", "palito de dente", "papel chumbo", "receita de", "a gosto",
	"quanto baste", "q.b.", "fritadeira elétrica", "cravo-da-índia", "ervas finas", "pimenta biquinho",
	"cravo", "água morna", "açúcar ou adoçante", "becel amanteigado", "becel", "canela em pau",
	"doritos grande", "essência de baunilha", "folhas de hortelã", "frutas (morango, uva ou pessego)",
	"garam masala",
}

// Blacklist 以整字比對排除不計算營養的食材
type Blacklist struct {
	pattern *regexp.Regexp
}

// NewBlacklist 以詞彙建立黑名單；詞彙會先正規化
func NewBlacklist(terms []string) *Blacklist {
	seen := make(map[string]bool, len(terms))
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		n := textnorm.Normalize(term)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		quoted = append(quoted, n)
	}
	// 較長的詞優先
	sort.Slice(quoted, func(i, j int) bool { return len(quoted[i]) > len(quoted[j]) })
	for i, q := range quoted {
		quoted[i] = regexp.QuoteMeta(q)
	}
	if len(quoted) == 0 {
		return &Blacklist{}
	}
	expr := `(?:^|[^\p{L}\p{N}])(?:` + strings.Join(quoted, "|") + `)(?:$|[^\p{L}\p{N}])`
	return &Blacklist{pattern: regexp.MustCompile(expr)}
}

// DefaultBlacklist 內建黑名單
func DefaultBlacklist() *Blacklist {
	return NewBlacklist(defaultBlacklist)
}

// Match 名稱是否命中黑名單
func (b *Blacklist) Match(name string) bool {
	if b == nil || b.pattern == nil {
		return false
	}
	return b.pattern.MatchString(textnorm.Normalize(name))
}
