package pattern

import "github.com/ppiankov/geoscope/internal/model"

// Well-known category names the impression composer and recommendation
// rules key on.
const (
	CategoryAuthority  = "authority"
	CategoryStatistics = "statistics"
	CategoryCitations  = "citations"
	CategoryExpert     = "expert_language"
)

// DefaultCategories returns the built-in (Turkish) rhetorical signal
// table. Linguistic rules scan case-insensitively; numeric rules are
// case-sensitive since casing carries no meaning for digits and the
// narrower scan keeps them cheap.
func DefaultCategories() []model.PatternCategory {
	return []model.PatternCategory{
		{
			Name:            CategoryAuthority,
			CaseInsensitive: true,
			Weight:          0.4,
			Rules: []string{
				`araştırmalar gösteriyor`,
				`uzmanlar belirtiyor`,
				`bilimsel veriler`,
				`kanıtlanmış`,
				`çalışmalar gösteriyor`,
			},
		},
		{
			Name:            CategoryStatistics,
			CaseInsensitive: false,
			Weight:          0.6,
			Rules: []string{
				`\d+%`,
				`\d+ kişi`,
				`\d+\.\d+`,
				`\d+ (milyon|milyar)`,
			},
		},
		{
			Name:            CategoryCitations,
			CaseInsensitive: true,
			Rules: []string{
				`kaynak:`,
				`referans:`,
				`alıntı:`,
				`\[\d+\]`,
				`\(\d{4}\)`,
			},
		},
		{
			Name:            CategoryExpert,
			CaseInsensitive: true,
			Rules: []string{
				`analiz`,
				`metodoloji`,
				`hipotez`,
				`sonuç olarak`,
				`bu bağlamda`,
			},
		},
	}
}
