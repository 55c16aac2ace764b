package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/neurosoup/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPopulationCrash     BookmarkType = "population_crash"
	BookmarkExtinction          BookmarkType = "extinction"
	BookmarkGenerationMilestone BookmarkType = "generation_milestone"
	BookmarkGiant               BookmarkType = "giant"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	cfg config.BookmarksConfig

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	lastMilestone int  // highest generation milestone already reported
	giantSeen     bool // largest agent is above the giant threshold
	extinct       bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, cfg config.BookmarksConfig) *BookmarkDetector {
	if historySize < 2 {
		historySize = 2
	}
	return &BookmarkDetector{
		cfg:         cfg,
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkPopulationCrash(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkExtinction(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkGenerationMilestone(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkGiant(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkPopulationCrash fires when the population falls by more than
// drop_percent (and at least min_drop agents) from the peak in the history.
func (bd *BookmarkDetector) checkPopulationCrash(stats WindowStats) *Bookmark {
	peak := 0
	for _, h := range bd.getHistory() {
		peak = max(peak, h.Population)
	}
	if peak == 0 {
		return nil
	}

	drop := 1.0 - float64(stats.Population)/float64(peak)
	if drop <= bd.cfg.PopulationCrash.DropPercent || peak-stats.Population < bd.cfg.PopulationCrash.MinDrop {
		return nil
	}

	// Forget the old peak so a single crash reports once.
	for i := range bd.history {
		bd.history[i].Population = min(bd.history[i].Population, stats.Population)
	}

	return &Bookmark{
		Type:        BookmarkPopulationCrash,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Population crashed %.0f%% from peak %d to %d", drop*100, peak, stats.Population),
	}
}

func (bd *BookmarkDetector) checkExtinction(stats WindowStats) *Bookmark {
	if stats.Population > 0 {
		bd.extinct = false
		return nil
	}
	if bd.extinct {
		return nil
	}
	bd.extinct = true
	return &Bookmark{
		Type:        BookmarkExtinction,
		Tick:        stats.WindowEndTick,
		Description: "No agents alive at window end",
	}
}

func (bd *BookmarkDetector) checkGenerationMilestone(stats WindowStats) *Bookmark {
	every := bd.cfg.GenerationMilestone.Every
	if every <= 0 {
		return nil
	}
	milestone := int(stats.Generation.Max) / every * every
	if milestone <= bd.lastMilestone {
		return nil
	}
	bd.lastMilestone = milestone
	return &Bookmark{
		Type:        BookmarkGenerationMilestone,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Deepest lineage reached generation %d", int(stats.Generation.Max)),
	}
}

// checkGiant fires when the largest agent crosses the giant threshold from below.
func (bd *BookmarkDetector) checkGiant(stats WindowStats) *Bookmark {
	above := stats.Size.Max > bd.cfg.Giant.MinSize
	defer func() { bd.giantSeen = above }()
	if !above || bd.giantSeen {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkGiant,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Largest agent reached size %.1f", stats.Size.Max),
	}
}
