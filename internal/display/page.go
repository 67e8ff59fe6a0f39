package display

import (
	"errors"
	"html/template"
	"sync"
)

var (
	// ErrUnknownRegion is returned when a region name is not part of the page.
	ErrUnknownRegion = errors.New("unknown display region")
)

// RegionState is the current content of one region.
type RegionState struct {
	ID      Region        `json:"id"`
	HTML    template.HTML `json:"html"`
	Opacity float64       `json:"opacity"`
	Visible bool          `json:"visible"`
	Version uint64        `json:"version"`
}

// Snapshot is a consistent copy of the whole page.
type Snapshot struct {
	Version uint64        `json:"version"`
	Regions []RegionState `json:"regions"`
}

// Page is a concurrency-safe in-memory Surface backing the served board.
type Page struct {
	mu sync.RWMutex

	// key: region, value: current state
	regions map[Region]*RegionState
	version uint64
}

// NewPage creates a page with every region empty and opaque.
// The loader starts visible and the main content hidden until the first load completes.
func NewPage() *Page {
	p := &Page{regions: make(map[Region]*RegionState, len(Regions))}
	for _, r := range Regions {
		p.regions[r] = &RegionState{ID: r, Opacity: 1, Visible: r != RegionMainContent}
	}
	return p
}

func (p *Page) SetHTML(r Region, html template.HTML) {
	p.update(r, func(s *RegionState) { s.HTML = html })
}

// SetText stores text escaped so it can be served as HTML.
func (p *Page) SetText(r Region, text string) {
	p.SetHTML(r, template.HTML(template.HTMLEscapeString(text)))
}

func (p *Page) SetOpacity(r Region, opacity float64) {
	p.update(r, func(s *RegionState) { s.Opacity = opacity })
}

func (p *Page) SetVisible(r Region, visible bool) {
	p.update(r, func(s *RegionState) { s.Visible = visible })
}

func (p *Page) update(r Region, apply func(*RegionState)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.regions[r]
	if !ok {
		s = &RegionState{ID: r, Opacity: 1, Visible: true}
		p.regions[r] = s
	}

	apply(s)
	p.version++
	s.Version = p.version
}

// Region returns the current state of a single region.
func (p *Page) Region(r Region) (RegionState, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s, ok := p.regions[r]
	if !ok {
		return RegionState{}, ErrUnknownRegion
	}
	return *s, nil
}

// Snapshot returns every known region in page order.
func (p *Page) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := Snapshot{Version: p.version, Regions: make([]RegionState, 0, len(p.regions))}
	for _, r := range Regions {
		if s, ok := p.regions[r]; ok {
			out.Regions = append(out.Regions, *s)
		}
	}
	return out
}
