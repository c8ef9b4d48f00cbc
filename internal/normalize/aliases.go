package normalize

// defaultAliases is the built-in affiliation alias table. It covers the
// abbreviations that show up most often in conference author fields.
// Venue-specific spellings belong in the config file, not here.
var defaultAliases = map[string]string{
	// Singapore
	"nus":  "national university of singapore",
	"ntu":  "nanyang technological university",
	"smu":  "singapore management university",
	"sutd": "singapore university of technology and design",

	// United States
	"mit":                                "massachusetts institute of technology",
	"cmu":                                "carnegie mellon university",
	"carnegie mellon":                    "carnegie mellon university",
	"stanford":                           "stanford university",
	"berkeley":                           "uc berkeley",
	"ucb":                                "uc berkeley",
	"university of california, berkeley": "uc berkeley",
	"ucla":                               "university of california, los angeles",
	"ucsd":                               "university of california, san diego",
	"uiuc":                               "university of illinois urbana-champaign",
	"gatech":                             "georgia institute of technology",
	"georgia tech":                       "georgia institute of technology",
	"nyu":                                "new york university",

	// Europe
	"eth":               "eth zurich",
	"ethz":              "eth zurich",
	"eth zurich":        "eth zurich",
	"epfl":              "ecole polytechnique federale de lausanne",
	"oxford":            "university of oxford",
	"oxford university": "university of oxford",
	"cambridge":         "university of cambridge",
	"tum":               "technical university of munich",
	"kth":               "kth royal institute of technology",

	// Asia-Pacific
	"kaist":    "korea advanced institute of science and technology",
	"tsinghua": "tsinghua university",
	"pku":      "peking university",
	"hkust":    "hong kong university of science and technology",
	"cuhk":     "chinese university of hong kong",
	"iit":      "indian institute of technology",
	"anu":      "australian national university",
	"unsw":     "university of new south wales",
	"u tokyo":  "university of tokyo",
	"utokyo":   "university of tokyo",

	// Industry labs
	"google":         "google research",
	"msr":            "microsoft research",
	"meta ai":        "meta ai research",
	"fair":           "meta ai research",
	"ibm":            "ibm research",
	"deepmind":       "google deepmind",
	"bell labs":      "nokia bell labs",
	"aws":            "amazon web services",
	"amazon science": "amazon",
}
