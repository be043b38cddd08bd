package announce

import "strings"

// listing title markers, matched case-insensitively.
var listingMarkers = []string{"WILL LIST", "NEW LISTING", "LISTING"}

// IsListingTitle reports whether an announcement title describes a new
// spot listing for a pair quoted in quoteCoin.
func IsListingTitle(title, quoteCoin string) bool {
	upper := strings.ToUpper(title)
	if !strings.Contains(upper, strings.ToUpper(quoteCoin)) {
		return false
	}
	for _, marker := range listingMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}

// ExtractSymbols pulls pair symbols (words ending in quoteCoin) out of an
// announcement title. Surrounding punctuation is stripped; duplicates are
// collapsed. Titles routinely look like:
//
//	"New Listing: NEWCOINUSDT Now Available for Spot Trading!"
func ExtractSymbols(title, quoteCoin string) []string {
	quote := strings.ToUpper(quoteCoin)

	var symbols []string
	seen := make(map[string]struct{})

	for _, word := range strings.Fields(title) {
		candidate := strings.ToUpper(strings.Trim(word, ".,:;!?()[]\"'"))

		if !strings.HasSuffix(candidate, quote) {
			continue
		}
		base := strings.TrimSuffix(candidate, quote)
		if base == "" || !isCoinName(base) {
			continue
		}

		symbol := base + quote
		if _, ok := seen[symbol]; ok {
			continue
		}
		seen[symbol] = struct{}{}
		symbols = append(symbols, symbol)
	}

	return symbols
}

// isCoinName reports whether s looks like a coin ticker: uppercase
// letters and digits with at least one letter. Digits may lead, as in
// the 1000-multiplied meme pairs (e.g., "10000LADYS").
func isCoinName(s string) bool {
	hasLetter := false
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return hasLetter
}
