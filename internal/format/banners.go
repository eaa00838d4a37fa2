package format

import (
	"regexp"
	"slices"
	"strings"
)

// Category identifies one of the standard file sections marked by a banner
// comment.
type Category uint8

const (
	CategoryHeaderIncludes Category = iota
	CategoryExternFuncDecls
	CategoryExternDecls
	CategoryMacroDefs
	CategoryTypeDefs
	CategoryGlobalVars
	CategoryModuleVars
	CategoryForwardDecls
	CategoryFuncImpls
)

func (c Category) String() string {
	switch c {
	case CategoryHeaderIncludes:
		return "header-includes"
	case CategoryExternFuncDecls:
		return "extern-func-decls"
	case CategoryExternDecls:
		return "extern-decls"
	case CategoryMacroDefs:
		return "macro-defs"
	case CategoryTypeDefs:
		return "type-defs"
	case CategoryGlobalVars:
		return "global-vars"
	case CategoryModuleVars:
		return "module-vars"
	case CategoryForwardDecls:
		return "forward-decls"
	case CategoryFuncImpls:
		return "func-impls"
	default:
		return "unknown"
	}
}

const (
	bannerStarsBefore = 27
	bannerStarsAfter  = 28
)

// BannerRule maps a section keyword to its canonical banner. Keyword is the
// rune sequence that identifies the section inside an existing comment;
// Canonical is the fixed-width banner that replaces the whole comment span.
type BannerRule struct {
	Category  Category
	Keyword   string
	Label     string
	Canonical string

	pattern *regexp.Regexp
}

func newBannerRule(cat Category, keyword, label string) BannerRule {
	return BannerRule{
		Category:  cat,
		Keyword:   keyword,
		Label:     label,
		Canonical: canonicalBanner(label),
		pattern:   bannerPattern(keyword),
	}
}

func canonicalBanner(label string) string {
	return "/" + strings.Repeat("*", bannerStarsBefore) + " " + label + " " + strings.Repeat("*", bannerStarsAfter) + "/"
}

// bannerPattern tolerates spaces and tabs between the keyword runes, since
// historical banners pad them apart (头 文 件). `.` never matches '\n', so a
// match cannot cross a line boundary.
func bannerPattern(keyword string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString(`/\*.*`)
	for i, r := range []rune(keyword) {
		if i > 0 {
			b.WriteString(`[ \t]*`)
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	b.WriteString(`.*\*/`)
	return regexp.MustCompile(b.String())
}

// bannerRules is applied in order; each rule scans text already rewritten by
// the rules before it. The header section is the only one whose keyword and
// label differ: old banners say 头文件, the canonical label is 头文件包含.
var bannerRules = []BannerRule{
	newBannerRule(CategoryHeaderIncludes, "头文件", "头文件包含"),
	newBannerRule(CategoryExternFuncDecls, "外部函数声明", "外部函数声明"),
	newBannerRule(CategoryExternDecls, "外部声明", "外部声明"),
	newBannerRule(CategoryMacroDefs, "宏定义", "宏定义"),
	newBannerRule(CategoryTypeDefs, "类型定义", "类型定义"),
	newBannerRule(CategoryGlobalVars, "全局变量", "全局变量"),
	newBannerRule(CategoryModuleVars, "模块变量", "模块变量"),
	newBannerRule(CategoryForwardDecls, "前向声明", "前向声明"),
	newBannerRule(CategoryFuncImpls, "函数实现", "函数实现"),
}

// BannerRules returns the rewrite table in application order.
func BannerRules() []BannerRule {
	return slices.Clone(bannerRules)
}

// NormalizeBanners rewrites every section banner comment to its canonical
// fixed-width form and reports how many lines changed. Comments that name no
// known section are left alone. A canonical banner re-matches its own rule
// and is replaced by identical text, so the pass is a fixed point on already
// normalized input.
func NormalizeBanners(lines []string) ([]string, int) {
	out := make([]string, len(lines))
	changed := 0
	for i, line := range lines {
		next := line
		for _, rule := range bannerRules {
			next = rule.pattern.ReplaceAllLiteralString(next, rule.Canonical)
		}
		if next != line {
			changed++
		}
		out[i] = next
	}
	return out, changed
}
