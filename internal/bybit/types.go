package bybit

// CategorySpot is the market category this watcher observes.
const CategorySpot = "spot"

// InstrumentsResult from GET /v5/market/instruments-info
type InstrumentsResult struct {
	Category       string          `json:"category"`
	List           []APIInstrument `json:"list"`
	NextPageCursor string          `json:"nextPageCursor"`
}

// APIInstrument represents a spot instrument from the Bybit API.
type APIInstrument struct {
	Symbol        string `json:"symbol"`
	BaseCoin      string `json:"baseCoin"`
	QuoteCoin     string `json:"quoteCoin"`
	Status        string `json:"status"` // "Trading", "PreLaunch", "Delivering", "Closed"
	Innovation    string `json:"innovation"`
	MarginTrading string `json:"marginTrading"`
}

// TickersResult from GET /v5/market/tickers
type TickersResult struct {
	Category string      `json:"category"`
	List     []APITicker `json:"list"`
}

// APITicker represents a spot ticker snapshot from the Bybit API.
// Numeric fields arrive as decimal strings.
type APITicker struct {
	Symbol       string `json:"symbol"`
	LastPrice    string `json:"lastPrice"`
	HighPrice24h string `json:"highPrice24h"`
	LowPrice24h  string `json:"lowPrice24h"`
	PrevPrice24h string `json:"prevPrice24h"`
	Price24hPcnt string `json:"price24hPcnt"`
	Volume24h    string `json:"volume24h"`
	Turnover24h  string `json:"turnover24h"`
}

// ServerTimeResult from GET /v5/market/time
type ServerTimeResult struct {
	TimeSecond string `json:"timeSecond"`
	TimeNano   string `json:"timeNano"`
}

// AnnouncementsResult from GET /v5/announcements/index
type AnnouncementsResult struct {
	Total int               `json:"total"`
	List  []APIAnnouncement `json:"list"`
}

// APIAnnouncement represents an exchange announcement.
// Announcements carry no ID; the URL is the stable identity.
type APIAnnouncement struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Type        AnnouncementType `json:"type"`
	Tags        []string         `json:"tags"`
	URL         string           `json:"url"`
	// Timestamps in milliseconds since epoch
	DateTimestamp      int64 `json:"dateTimestamp"`
	StartDateTimestamp int64 `json:"startDateTimestamp"`
	EndDateTimestamp   int64 `json:"endDateTimestamp"`
}

// AnnouncementType categorizes an announcement.
type AnnouncementType struct {
	Title string `json:"title"`
	Key   string `json:"key"` // e.g., "new_crypto"
}

// GetInstrumentsOptions configures a GetInstruments request.
type GetInstrumentsOptions struct {
	Symbol string
	Status string
	Limit  int
	Cursor string
}

// GetAnnouncementsOptions configures a GetAnnouncements request.
type GetAnnouncementsOptions struct {
	Locale string // Default "en-US"
	Type   string // e.g., "new_crypto"
	Tag    string
	Page   int
	Limit  int
}
