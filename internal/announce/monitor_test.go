package announce

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/avasilyev/bybit-listings/internal/bybit"
	"github.com/avasilyev/bybit-listings/internal/model"
)

type pageResponse struct {
	list []bybit.APIAnnouncement
	err  error
}

// fakeFeed returns scripted announcement pages in order, repeating the last.
type fakeFeed struct {
	mu    sync.Mutex
	pages []pageResponse
}

func (f *fakeFeed) GetAnnouncements(ctx context.Context, opts bybit.GetAnnouncementsOptions) (*bybit.AnnouncementsResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.pages) == 0 {
		return nil, errors.New("no scripted page")
	}
	p := f.pages[0]
	if len(f.pages) > 1 {
		f.pages = f.pages[1:]
	}
	if p.err != nil {
		return nil, p.err
	}
	return &bybit.AnnouncementsResult{Total: len(p.list), List: p.list}, nil
}

type captureNotifier struct {
	mu     sync.Mutex
	events []model.ListingEvent
}

func (n *captureNotifier) Notify(ctx context.Context, ev model.ListingEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	return nil
}

func (n *captureNotifier) symbols() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, ev := range n.events {
		out = append(out, ev.Symbol)
	}
	return out
}

func listing(url, title string) bybit.APIAnnouncement {
	return bybit.APIAnnouncement{
		Title:         title,
		URL:           url,
		DateTimestamp: time.Now().UnixMilli(),
	}
}

func startMonitor(t *testing.T, feed *fakeFeed, notifier Notifier) *Monitor {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Interval = time.Hour // Polls are triggered manually in tests.
	m := New(cfg, feed, notifier, nil)

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		m.Stop(stopCtx)
	})

	return m
}

func TestSeedFiresNoNotifications(t *testing.T) {
	feed := &fakeFeed{pages: []pageResponse{
		{list: []bybit.APIAnnouncement{
			listing("https://x/1", "Bybit Will List OLDCOINUSDT"),
		}},
	}}
	notifier := &captureNotifier{}

	m := startMonitor(t, feed, notifier)
	m.poll()

	if got := notifier.symbols(); len(got) != 0 {
		t.Errorf("seeded announcements notified %v, want none", got)
	}
}

func TestNewAnnouncementNotifiesOnce(t *testing.T) {
	first := listing("https://x/1", "Bybit Will List OLDCOINUSDT")
	second := listing("https://x/2", "New Listing: NEWCOINUSDT Now Available for Spot Trading")

	feed := &fakeFeed{pages: []pageResponse{
		{list: []bybit.APIAnnouncement{first}},
		{list: []bybit.APIAnnouncement{second, first}},
	}}
	notifier := &captureNotifier{}

	m := startMonitor(t, feed, notifier)

	m.poll()
	got := notifier.symbols()
	if len(got) != 1 || got[0] != "NEWCOINUSDT" {
		t.Fatalf("notified %v, want [NEWCOINUSDT]", got)
	}

	ev := notifier.events[0]
	if ev.Source != "announcement" {
		t.Errorf("Source = %q, want announcement", ev.Source)
	}
	if ev.BaseCoin != "NEWCOIN" || ev.QuoteCoin != "USDT" {
		t.Errorf("coins = %q/%q, want NEWCOIN/USDT", ev.BaseCoin, ev.QuoteCoin)
	}

	// The same page seen again stays silent.
	m.poll()
	if got := notifier.symbols(); len(got) != 1 {
		t.Errorf("second poll notified %v, want still one event", got)
	}
}

func TestSymbolNotifiedOnlyOnceAcrossAnnouncements(t *testing.T) {
	feed := &fakeFeed{pages: []pageResponse{
		{list: nil},
		{list: []bybit.APIAnnouncement{
			listing("https://x/1", "Bybit Will List NEWCOINUSDT"),
		}},
		{list: []bybit.APIAnnouncement{
			listing("https://x/1", "Bybit Will List NEWCOINUSDT"),
			listing("https://x/2", "NEWCOINUSDT Listing Postponed"),
		}},
	}}
	notifier := &captureNotifier{}

	m := startMonitor(t, feed, notifier)

	m.poll()
	m.poll()

	if got := notifier.symbols(); len(got) != 1 {
		t.Errorf("notified %v, want one event for NEWCOINUSDT", got)
	}
}

func TestNonListingAnnouncementsIgnored(t *testing.T) {
	feed := &fakeFeed{pages: []pageResponse{
		{list: nil},
		{list: []bybit.APIAnnouncement{
			listing("https://x/1", "Scheduled Maintenance for USDT Withdrawals"),
		}},
	}}
	notifier := &captureNotifier{}

	m := startMonitor(t, feed, notifier)
	m.poll()

	if got := notifier.symbols(); len(got) != 0 {
		t.Errorf("notified %v, want none", got)
	}
}

func TestFetchErrorSkipsPoll(t *testing.T) {
	feed := &fakeFeed{pages: []pageResponse{
		{list: nil},
		{err: errors.New("timeout")},
		{list: []bybit.APIAnnouncement{
			listing("https://x/1", "Bybit Will List NEWCOINUSDT"),
		}},
	}}
	notifier := &captureNotifier{}

	m := startMonitor(t, feed, notifier)

	m.poll() // fails, skipped
	if got := notifier.symbols(); len(got) != 0 {
		t.Fatalf("failed poll notified %v, want none", got)
	}

	m.poll() // recovers
	got := notifier.symbols()
	if len(got) != 1 || got[0] != "NEWCOINUSDT" {
		t.Errorf("notified %v, want [NEWCOINUSDT]", got)
	}
}

func TestInitialFetchFailureIsFatal(t *testing.T) {
	feed := &fakeFeed{pages: []pageResponse{
		{err: errors.New("connection refused")},
	}}

	m := New(DefaultConfig(), feed, &captureNotifier{}, nil)

	if err := m.Start(context.Background()); err == nil {
		t.Fatal("Start should fail when the initial fetch fails")
	}
}
