package lang

// entry maps one source-language phrase to its canonical English token.
// The tables below are ordered: multi-word phrases come before any phrase
// that appears inside them as a single word, so "tsiku lino" wins over a
// later bare "lino" and compound numbers win over their first word.
type entry struct {
	phrase string
	token  string
}

// pricePhrases are rewritten to "at" before anything else runs, so that
// "pa 500" and "pa mtengo wa 500" both end up as "at 500".
var pricePhrases = []string{
	"at the price of",
	"pa mtengo wa",
	"pa mtengo",
	"mtengo wa",
	"pa",
}

// numberWords covers spelled-out quantities in both languages. Compound
// Chichewa numbers (zisanu ndi ...) must precede "zisanu" itself.
var numberWords = []entry{
	{"zisanu ndi chimodzi", "6"},
	{"zisanu ndi ziwiri", "7"},
	{"zisanu ndi zitatu", "8"},
	{"zisanu ndi zinayi", "9"},
	{"chimodzi", "1"},
	{"imodzi", "1"},
	{"ziwiri", "2"},
	{"awiri", "2"},
	{"zitatu", "3"},
	{"atatu", "3"},
	{"zinayi", "4"},
	{"anayi", "4"},
	{"zisanu", "5"},
	{"asanu", "5"},
	{"khumi", "10"},
	{"one", "1"},
	{"two", "2"},
	{"three", "3"},
	{"four", "4"},
	{"five", "5"},
	{"six", "6"},
	{"seven", "7"},
	{"eight", "8"},
	{"nine", "9"},
	{"ten", "10"},
}

// keywords is the bilingual business vocabulary.
var keywords = []entry{
	// sales
	{"ndagulitsa", "sold"},
	{"anagulitsa", "sold"},
	{"kugulitsa", "sold"},
	{"gulitsa", "sold"},
	{"malonda", "sale"},

	// purchases and expenses
	{"ndagula", "bought"},
	{"anagula", "bought"},
	{"nagula", "bought"},
	{"kugula", "bought"},
	{"gula", "bought"},
	{"ndalipira", "paid"},
	{"nalipira", "paid"},
	{"lipirani", "paid"},
	{"lipira", "paid"},
	{"chiwongola", "expense"},

	// inventory
	{"ndaonjezera", "add"},
	{"onjezerani", "add"},
	{"onjeza", "add"},
	{"katundu", "stock"},
	{"zinthu", "inventory"},
	{"ku", "to"},

	// reports
	{"phindu", "profit"},
	{"chidule", "summary"},
	{"thandizo", "help"},
	{"tsiku lino", "today"},
	{"lero", "today"},
	{"mlungu", "week"},
	{"sabata", "week"},
	{"mwezi", "month"},
}
