package usecase

import (
	"regexp"
	"strings"

	"github.com/cafeassist/backend/internal/domain"
)

// Vocabulary tables for intent extraction. Keyword lists are matched as
// substrings unless stated otherwise; Turkish entries are given in their
// ASCII-folded form because they are checked against folded text.

// categoryPatterns are evaluated against lower-cased, diacritic-preserving text
var categoryPatterns = []struct {
	category domain.Category
	pattern  *regexp.Regexp
}{
	{domain.CategoryCoffee, wordPattern("coffee", "kahve", "espresso", "latte", "americano", "cappuccino")},
	{domain.CategoryTea, wordPattern("tea", "cay", "çay", "matcha")},
	{domain.CategorySweet, wordPattern("dessert", "sweet", "tatli", "tatlı", "cake", "kek", "pastry", "cookie")},
	{domain.CategoryCold, wordPattern("cold", "iced", "soguk", "soğuk", "lemonade", "milkshake", "smoothie")},
}

// wordPattern matches any of the words as a whole word. Go's \b only knows
// ASCII word characters, so boundaries are spelled out with Unicode classes.
func wordPattern(words ...string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return wordRegexp(quoted...)
}

// wordRegexp is wordPattern for alternatives that are already regular expressions
func wordRegexp(alternatives ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])(?:` + strings.Join(alternatives, "|") + `)(?:[^\p{L}\p{N}_]|$)`)
}

// Negation markers. foldedNegationMarkers are Turkish suffixes and words
// ("-siz", "olmasın", "yok"); textNegationMarkers are English.
var (
	foldedNegationMarkers = []string{"siz", "suz", "olmasin", "olmadan", "yok", "haric"}
	textNegationMarkers   = []string{"no ", "without", "free", "not "}
)

var (
	veganKeywords      = []string{"vegan"}
	lowCalorieKeywords = []string{"diet", "diyet", "light", "fit"}
	sugarFreeKeywords  = []string{"sugar-free", "sugar free", "sekersiz", "no sugar"}
	allergyKeywords    = []string{"allergy", "allergic", "alerji"}
	fruitKeywords      = []string{"fruit", "meyve"}
	nutKeywords        = []string{"nuts", "nut", "kuruyemis", "peanut", "fistik", "almond", "badem"}
	dairyKeywords      = []string{"milk", "sut", "dairy", "laktoz", "lactose"}
)

// Canonical label sets added as a whole when a family is excluded
var (
	fruitLabels = []string{"apple", "banana", "blueberry", "strawberry", "pineapple", "watermelon", "kiwi", "orange", "lemon"}
	nutLabels   = []string{"nuts", "almond", "peanut"}
	dairyLabel  = "milk"
)

// turkishSuffix admits the plural, "with", "without" and accusative endings
// of a folded Turkish noun: cilekli, muzsuz, limonlar, cikolatayi
const turkishSuffix = `(?:l[ae]r)?(?:l[iu]|s[iu]z|[yn]?[iu])?`

// ingredientWords map ingredient names, as they appear in folded text, to
// their canonical label. Each is a whole word so "lemonade" leaves lemon
// alone and "pineapple" leaves apple alone.
var ingredientWords = []struct {
	pattern *regexp.Regexp
	label   string
}{
	{wordRegexp("elma" + turkishSuffix), "apple"},
	{wordRegexp("cilek" + turkishSuffix), "strawberry"},
	{wordRegexp("muz" + turkishSuffix), "banana"},
	{wordRegexp("kivi" + turkishSuffix), "kiwi"},
	{wordRegexp("ananas" + turkishSuffix), "pineapple"},
	{wordRegexp("portakal" + turkishSuffix), "orange"},
	{wordRegexp("limon" + turkishSuffix), "lemon"},
	{wordRegexp("karpuz" + turkishSuffix), "watermelon"},
	{wordRegexp("yaban mersin" + turkishSuffix), "blueberry"},
	{wordRegexp("ahududu" + turkishSuffix), "raspberry"},
	{wordRegexp("tarcin" + turkishSuffix), "cinnamon"},
	{wordRegexp("cikolata" + turkishSuffix), "chocolate"},
	{wordRegexp("yumurta" + turkishSuffix), "egg"},
	{wordRegexp(`apples?`), "apple"},
	{wordRegexp(`strawberr(?:y|ies)`), "strawberry"},
	{wordRegexp(`bananas?`), "banana"},
	{wordRegexp(`kiwis?`), "kiwi"},
	{wordRegexp(`pineapples?`), "pineapple"},
	{wordRegexp(`blueberr(?:y|ies)`), "blueberry"},
	{wordRegexp(`raspberr(?:y|ies)`), "raspberry"},
	{wordRegexp(`watermelons?`), "watermelon"},
	{wordRegexp(`oranges?`), "orange"},
	{wordRegexp(`lemons?`), "lemon"},
	{wordRegexp(`cinnamon`), "cinnamon"},
	{wordRegexp(`chocolates?`), "chocolate"},
	{wordRegexp(`eggs?`), "egg"},
	{wordRegexp(`gluten`), "gluten"},
	{wordRegexp(`ginger`), "ginger"},
}

// Product labels required by the dietary flags. Sugar-free accepts exactly
// two spellings.
var (
	veganProductLabel      = "vegan"
	lowCalorieProductLabel = "low calorie"
	sugarFreeProductLabels = []string{"sugar free", "sekersiz"}
)

// categoryKeywords map raw catalog category names to canonical categories.
// Order matters: the first containing keyword wins.
var categoryKeywords = []struct {
	keywords []string
	category domain.Category
}{
	{[]string{"coffee"}, domain.CategoryCoffee},
	{[]string{"tea"}, domain.CategoryTea},
	{[]string{"cold", "beverage"}, domain.CategoryCold},
	{[]string{"dessert", "sweet", "cake"}, domain.CategorySweet},
}

// containsAny reports whether s contains any of the keywords
func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
