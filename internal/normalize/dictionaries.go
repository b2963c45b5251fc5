package normalize

import "sort"

// Language is the closed set of languages the keyword dictionaries cover.
type Language string

const (
	LangFR      Language = "fr"
	LangEN      Language = "en"
	LangGeneric Language = "generic"
)

// Keyword sets used by DetectLanguage. Diacritics are compared after
// stripping, so "désignation" hits "designation".
var (
	frenchKeywords  = []string{"facture", "designation", "montant", "ttc", "tva", "qte"}
	englishKeywords = []string{"invoice", "description", "amount", "total", "vat", "qty"}
)

// TermDictionary maps business terms found on invoices to standardized
// field names. Dictionaries are statically enumerated per language so
// that term substitution stays total and testable.
type TermDictionary map[string]string

var frenchTerms = TermDictionary{
	"facture":     "invoice",
	"designation": "description",
	"montant":     "amount",
	"qte":         "quantity",
	"quantite":    "quantity",
	"ttc":         "incl_tax",
	"ht":          "excl_tax",
	"tva":         "vat",
	"remise":      "discount",
	"echeance":    "due_date",
}

var englishTerms = TermDictionary{
	"qty":      "quantity",
	"amt":      "amount",
	"subtotal": "net_total",
	"vat":      "vat",
	"due date": "due_date",
	"discount": "discount",
}

// DictionaryFor returns the business-term dictionary for a language.
// Generic (and unknown) languages get an empty dictionary, which makes
// Text a pure whitespace cleanup.
func DictionaryFor(lang Language) TermDictionary {
	switch lang {
	case LangFR:
		return frenchTerms
	case LangEN:
		return englishTerms
	default:
		return TermDictionary{}
	}
}

// terms returns the dictionary keys longest-first, so that multi-word
// terms are substituted before their substrings.
func (d TermDictionary) terms() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
