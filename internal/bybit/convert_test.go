package bybit

import "testing"

func TestAPIInstrumentToModel(t *testing.T) {
	api := APIInstrument{
		Symbol:    "BTCUSDT",
		BaseCoin:  "BTC",
		QuoteCoin: "USDT",
		Status:    "Trading",
	}

	m := api.ToModel()

	if m.Symbol != "BTCUSDT" || m.BaseCoin != "BTC" || m.QuoteCoin != "USDT" || m.Status != "Trading" {
		t.Errorf("ToModel() = %+v", m)
	}
}

func TestIsTrading(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"Trading", true},
		{"PreLaunch", false},
		{"Delivering", false},
		{"Closed", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			i := APIInstrument{Symbol: "XUSDT", Status: tt.status}
			if got := i.IsTrading(); got != tt.want {
				t.Errorf("IsTrading() = %v, want %v", got, tt.want)
			}
		})
	}
}
