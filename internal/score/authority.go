package score

import (
	"net/url"
	"strings"
)

// AuthorityTier classifies source quality for confidence weighting
type AuthorityTier int

const (
	TierUnknown   AuthorityTier = 0
	TierPrimary   AuthorityTier = 1 // Academic papers, standards bodies, official documents
	TierSecondary AuthorityTier = 2 // Encyclopedias, major publishers, reputable media
	TierTertiary  AuthorityTier = 3 // Blogs, personal sites, content farms
)

func (t AuthorityTier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

var primaryHosts = map[string]bool{
	"arxiv.org":          true,
	"doi.org":            true,
	"pubmed.ncbi.nlm.nih.gov": true,
	"www.nature.com":     true,
	"www.science.org":    true,
	"dl.acm.org":         true,
	"ieeexplore.ieee.org": true,
}

var secondaryHosts = map[string]bool{
	"en.wikipedia.org":      true,
	"www.britannica.com":    true,
	"www.scientificamerican.com": true,
	"www.nationalgeographic.com": true,
	"ocw.mit.edu":           true,
	"www.khanacademy.org":   true,
}

// ClassifyAuthority buckets a source URL into an authority tier using host
// heuristics. Unparseable URLs are treated as tertiary.
func ClassifyAuthority(rawURL string) AuthorityTier {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return TierTertiary
	}

	host := parsed.Host
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}

	if primaryHosts[host] {
		return TierPrimary
	}
	if secondaryHosts[host] {
		return TierSecondary
	}

	// Government and academic domains count as primary
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") ||
		strings.Contains(host, ".gov.") || strings.Contains(host, ".edu.") ||
		strings.HasSuffix(host, ".ac.uk") {
		return TierPrimary
	}

	return TierTertiary
}
