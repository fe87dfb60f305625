package importance

// stopWords are filtered out of title tokens before clustering. Besides
// the usual function words it carries news-generic filler nouns that
// otherwise glue unrelated headlines into false clusters.
var stopWords = map[string]struct{}{
	// Function words
	"the": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"with": {}, "without": {}, "from": {}, "into": {}, "onto": {},
	"over": {}, "under": {}, "after": {}, "before": {}, "between": {},
	"against": {}, "about": {}, "above": {}, "below": {}, "during": {},
	"amid": {}, "among": {}, "through": {}, "their": {}, "there": {},
	"have": {}, "has": {}, "had": {}, "been": {}, "being": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "might": {},
	"must": {}, "more": {}, "most": {}, "less": {}, "least": {},
	"than": {}, "then": {}, "when": {}, "where": {}, "while": {},
	"what": {}, "which": {}, "whose": {}, "says": {}, "said": {},
	"also": {}, "just": {}, "only": {}, "still": {}, "very": {},
	"some": {}, "such": {}, "each": {}, "every": {}, "other": {},
	"another": {}, "again": {}, "here": {}, "your": {}, "yours": {},

	// News-generic nouns
	"world": {}, "country": {}, "president": {}, "government": {},
	"minister": {}, "politics": {}, "economy": {}, "society": {},
	"history": {}, "international": {}, "national": {}, "local": {},
	"people": {}, "years": {}, "year": {}, "days": {}, "time": {},
	"times": {}, "week": {}, "today": {}, "city": {}, "region": {},
	"question": {}, "problem": {}, "solution": {}, "project": {},
	"plan": {}, "impact": {}, "report": {}, "reports": {},
	"news": {}, "live": {}, "update": {}, "updates": {},
	"breaking": {}, "exclusive": {}, "urgent": {}, "video": {},
	"photo": {}, "photos": {}, "images": {}, "podcast": {},
	"interview": {}, "analysis": {}, "explained": {}, "opinion": {},
	"everything": {}, "know": {}, "need": {}, "first": {}, "last": {},
	"latest": {}, "major": {}, "huge": {}, "biggest": {},
}
