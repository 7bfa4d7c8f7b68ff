package types

// Pillar is a top-level life area. Every sub-category belongs to exactly
// one pillar; the mapping below is the only place that knowledge lives.
type Pillar string

const (
	PillarBody Pillar = "BODY"
	PillarMind Pillar = "MIND"
)

type SubCategory string

const (
	SubCategoryTraining   SubCategory = "training"
	SubCategorySleep      SubCategory = "sleep"
	SubCategoryNutrition  SubCategory = "nutrition"
	SubCategoryMeditation SubCategory = "meditation"
	SubCategoryReading    SubCategory = "reading"
	SubCategoryLearning   SubCategory = "learning"
	SubCategoryJournaling SubCategory = "journaling"
)

var subCategoryPillars = map[SubCategory]Pillar{
	SubCategoryTraining:   PillarBody,
	SubCategorySleep:      PillarBody,
	SubCategoryNutrition:  PillarBody,
	SubCategoryMeditation: PillarMind,
	SubCategoryReading:    PillarMind,
	SubCategoryLearning:   PillarMind,
	SubCategoryJournaling: PillarMind,
}

func (p Pillar) Valid() bool {
	return p == PillarBody || p == PillarMind
}

func (s SubCategory) Valid() bool {
	_, ok := subCategoryPillars[s]
	return ok
}

// Pillar returns the pillar s belongs to. ok is false for unknown
// sub-categories so invalid combinations cannot slip through.
func (s SubCategory) Pillar() (Pillar, bool) {
	p, ok := subCategoryPillars[s]
	return p, ok
}

func AllSubCategories() []SubCategory {
	return []SubCategory{
		SubCategoryTraining,
		SubCategorySleep,
		SubCategoryNutrition,
		SubCategoryMeditation,
		SubCategoryReading,
		SubCategoryLearning,
		SubCategoryJournaling,
	}
}

func PillarSubCategories(p Pillar) []SubCategory {
	var out []SubCategory
	for _, s := range AllSubCategories() {
		if subCategoryPillars[s] == p {
			out = append(out, s)
		}
	}
	return out
}
