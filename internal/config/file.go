package config

// File is the YAML configuration file (".authcheck" by default). Its
// main purpose is the venue-specific affiliation alias table; limit and
// threshold can also be set here so a program committee shares one
// policy file.
type File struct {
	// SubmissionLimit overrides the default submission limit when set
	// to a positive value. CLI flags still win over the file.
	SubmissionLimit int `yaml:"submission_limit,omitempty"`

	// SimilarityThreshold overrides the default clustering threshold
	// when set to a positive value.
	SimilarityThreshold int `yaml:"similarity_threshold,omitempty"`

	// Aliases maps affiliation spellings to their canonical expansion,
	// e.g. "nus: National University of Singapore". Matching is
	// case-insensitive on the whole affiliation string. Entries extend
	// and override the built-in table.
	Aliases map[string]string `yaml:"aliases,omitempty"`
}
