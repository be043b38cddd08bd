package bybit

import "github.com/avasilyev/bybit-listings/internal/model"

// StatusTrading is the instrument status for live tradable pairs.
const StatusTrading = "Trading"

// ToModel converts an API instrument to the internal model type.
func (i APIInstrument) ToModel() model.Instrument {
	return model.Instrument{
		Symbol:    i.Symbol,
		BaseCoin:  i.BaseCoin,
		QuoteCoin: i.QuoteCoin,
		Status:    i.Status,
	}
}

// IsTrading reports whether the instrument is currently open for trading.
func (i APIInstrument) IsTrading() bool {
	return i.Status == StatusTrading
}
