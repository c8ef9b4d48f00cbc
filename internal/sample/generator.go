package sample

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/authcheck/authcheck/internal/config"
)

// DefaultSeed is the seed used when none is supplied. Generation with
// the same seed always produces the same file.
const DefaultSeed = 1

// authorProfile describes one author in the sample pool: the entry
// variants to cycle through and how many papers the author submits.
type authorProfile struct {
	variants    []string
	submissions int
}

// pool holds the sample authors. Alice Zhang, Carol Chen, Frank Mueller
// and Isabella Rodriguez exceed the default limit of two; Carol's
// variants use three different email addresses so her duplicates stay
// advisory rather than auto-mergeable.
var pool = []authorProfile{
	{
		variants: []string{
			"Alice Zhang <alice.zhang@nus.edu.sg> (National University of Singapore)",
			"Zhang, Alice <alice.zhang@nus.edu.sg> (NUS)",
			"Alice Y. Zhang <alice.zhang@nus.edu.sg> (National University of Singapore)",
		},
		submissions: 3,
	},
	{
		variants: []string{
			"Bob Li <bob.li@google.com> (Google Research)",
			"Bob Li <bob.li@google.com> (Google Research)",
		},
		submissions: 2,
	},
	{
		variants: []string{
			"Carol Chen <cchen@stanford.edu> (Stanford University)",
			"C. Chen <carol.chen@stanford.edu> (Stanford)",
			"Carol Chen <carol@cs.stanford.edu> (Stanford University)",
		},
		submissions: 3,
	},
	{
		variants: []string{
			"David Kumar <d.kumar@mit.edu> (MIT)",
		},
		submissions: 1,
	},
	{
		variants: []string{
			"Emily Wang <ewang@berkeley.edu> (UC Berkeley)",
			"Emily Wang <ewang@berkeley.edu> (University of California, Berkeley)",
		},
		submissions: 2,
	},
	{
		variants: []string{
			"Frank Mueller <frank.mueller@ethz.ch> (ETH Zurich)",
			"F. Mueller <frank.mueller@ethz.ch> (ETH)",
			"Frank Mueller <frank.mueller@ethz.ch> (ETH Zurich)",
			"Mueller, Frank <frank.mueller@ethz.ch> (ETH Zurich)",
		},
		submissions: 4,
	},
	{
		variants: []string{
			"Grace Park <gpark@kaist.ac.kr> (KAIST)",
		},
		submissions: 1,
	},
	{
		variants: []string{
			"Henry Thompson <h.thompson@oxford.ac.uk> (University of Oxford)",
			"H. Thompson <h.thompson@oxford.ac.uk> (Oxford University)",
		},
		submissions: 2,
	},
	{
		variants: []string{
			"Isabella Rodriguez <i.rodriguez@cmu.edu> (Carnegie Mellon)",
			"I. Rodriguez <isabella.rodriguez@cmu.edu> (CMU)",
			"Rodriguez, Isabella <i.rodriguez@cmu.edu> (Carnegie Mellon University)",
		},
		submissions: 3,
	},
}

// titles are rotated across the generated papers.
var titles = []string{
	"Efficient Query Processing in Distributed Databases",
	"A Novel Approach to Transaction Management",
	"Optimizing Index Structures for Large-Scale Data",
	"Machine Learning for Query Optimization",
	"Scalable Data Integration Techniques",
	"Real-Time Analytics on Streaming Data",
	"Privacy-Preserving Data Mining Methods",
	"Blockchain-Based Database Systems",
	"Graph Database Query Languages",
	"Automated Database Tuning Using AI",
	"Consistency Models in Distributed Systems",
	"Efficient Join Algorithms for Big Data",
	"Cloud-Native Database Architectures",
	"Time-Series Data Management at Scale",
	"Federated Learning for Database Applications",
	"Semantic Query Optimization Techniques",
	"In-Memory Database Systems",
	"Multi-Model Database Design Patterns",
	"Database Security and Access Control",
	"Approximate Query Processing Methods",
}

// coauthors are filler collaborators appended after each pool author.
// They always submit under one exact variant, so they add realistic
// crowd without producing duplicate candidates.
var coauthors = []string{
	"John Smith <jsmith@example.com>",
	"Maria Garcia <mgarcia@example.org>",
	"James Wilson <jwilson@example.net>",
	"Sarah Johnson <sjohnson@example.edu>",
	"Michael Brown <mbrown@example.com>",
	"Lisa Anderson <landerson@example.org>",
	"Robert Taylor <rtaylor@example.net>",
	"Jennifer Martinez <jmartinez@example.edu>",
}

// statuses weights Under Review heavily, matching what a mid-cycle
// conference export looks like.
var statuses = []string{"Under Review", "Under Review", "Under Review", "Withdrawn"}

// Generate writes sample submission CSV data to w using the given seed.
// Returns the number of submissions written.
func Generate(w io.Writer, seed int64) (int, error) {
	rng := rand.New(rand.NewSource(seed))

	cw := csv.NewWriter(w)
	header := []string{
		config.DefaultIDColumn,
		config.DefaultTitleColumn,
		config.DefaultAuthorColumn,
		config.DefaultDateColumn,
		config.DefaultStatusColumn,
	}
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	baseDate := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	paperID := 1

	for _, profile := range pool {
		for i := 0; i < profile.submissions; i++ {
			variant := profile.variants[0]
			if i < len(profile.variants) {
				variant = profile.variants[i]
			}

			authors := variant
			for _, idx := range rng.Perm(len(coauthors))[:1+rng.Intn(2)] {
				authors += "; " + coauthors[idx]
			}

			record := []string{
				fmt.Sprintf("CONF2024-%03d", paperID),
				titles[(paperID-1)%len(titles)],
				authors,
				baseDate.AddDate(0, 0, rng.Intn(31)).Format("2006-01-02"),
				statuses[rng.Intn(len(statuses))],
			}
			if err := cw.Write(record); err != nil {
				return 0, fmt.Errorf("failed to write record: %w", err)
			}
			paperID++
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush sample data: %w", err)
	}
	return paperID - 1, nil
}

// GenerateFile writes sample data to the given path, creating parent
// directories as needed. Returns the number of submissions written.
func GenerateFile(path string, seed int64) (int, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return 0, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // path comes from the user's own CLI argument
	if err != nil {
		return 0, fmt.Errorf("failed to create sample file: %w", err)
	}

	n, err := Generate(f, seed)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}
