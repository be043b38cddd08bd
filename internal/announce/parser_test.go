package announce

import "testing"

func TestIsListingTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{
			name:  "will list",
			title: "Bybit Will List NEWCOINUSDT in the Innovation Zone",
			want:  true,
		},
		{
			name:  "new listing",
			title: "New Listing: NEWCOINUSDT Now Available for Spot Trading",
			want:  true,
		},
		{
			name:  "lowercase markers",
			title: "new listing: newcoinusdt spot trading opens soon",
			want:  true,
		},
		{
			name:  "listing without quote coin",
			title: "New Listing: NEWCOINBTC Perpetual Contract",
			want:  false,
		},
		{
			name:  "unrelated announcement",
			title: "Scheduled System Maintenance on USDT Settlement",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsListingTitle(tt.title, "USDT"); got != tt.want {
				t.Errorf("IsListingTitle(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestExtractSymbols(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  []string
	}{
		{
			name:  "plain symbol",
			title: "Bybit Will List NEWCOINUSDT in the Innovation Zone",
			want:  []string{"NEWCOINUSDT"},
		},
		{
			name:  "trailing punctuation",
			title: "New Listing: NEWCOINUSDT, Now Available!",
			want:  []string{"NEWCOINUSDT"},
		},
		{
			name:  "multiple symbols",
			title: "Bybit Will List AAAUSDT and BBBUSDT",
			want:  []string{"AAAUSDT", "BBBUSDT"},
		},
		{
			name:  "duplicate symbols collapse",
			title: "NEWCOINUSDT Listing: Trade NEWCOINUSDT Today",
			want:  []string{"NEWCOINUSDT"},
		},
		{
			name:  "digit-prefixed pair",
			title: "Bybit Will List 10000LADYSUSDT",
			want:  []string{"10000LADYSUSDT"},
		},
		{
			name:  "bare quote coin is not a symbol",
			title: "Deposit USDT to Earn Rewards",
			want:  nil,
		},
		{
			name:  "no match",
			title: "Bybit Will List NEWCOIN Perpetual Contract",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSymbols(tt.title, "USDT")
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractSymbols(%q) = %v, want %v", tt.title, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ExtractSymbols(%q)[%d] = %q, want %q", tt.title, i, got[i], tt.want[i])
				}
			}
		})
	}
}
