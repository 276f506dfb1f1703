package scroll

// Delegate answers whether nested content can still scroll. Direction
// follows the platform convention: -1 asks about scrolling up.
type Delegate interface {
	CanScrollVertically(direction int) bool
}

// DelegateFunc adapts a function to Delegate.
type DelegateFunc func(direction int) bool

func (f DelegateFunc) CanScrollVertically(direction int) bool { return f(direction) }

// Content is a page the container can hand scroll to.
type Content interface {
	Delegate
	ScrollByOffset(dy int)
}

// Pager holds the content pages and tells observers which one is current.
type Pager struct {
	pages     []Content
	current   int
	observers []func(index int, page Content)
}

func NewPager(pages ...Content) *Pager {
	return &Pager{pages: pages}
}

func (p *Pager) Len() int { return len(p.pages) }

func (p *Pager) Index() int { return p.current }

// Current returns the selected page, or nil when there are none.
func (p *Pager) Current() Content {
	if p.current < 0 || p.current >= len(p.pages) {
		return nil
	}
	return p.pages[p.current]
}

func (p *Pager) Page(i int) Content {
	if i < 0 || i >= len(p.pages) {
		return nil
	}
	return p.pages[i]
}

// Select makes page i current and notifies observers. Out of range
// indexes are ignored.
func (p *Pager) Select(i int) {
	if i < 0 || i >= len(p.pages) || i == p.current {
		return
	}
	p.current = i
	for _, fn := range p.observers {
		fn(i, p.pages[i])
	}
}

// Next and Prev wrap around.
func (p *Pager) Next() {
	if len(p.pages) > 0 {
		p.Select((p.current + 1) % len(p.pages))
	}
}

func (p *Pager) Prev() {
	if len(p.pages) > 0 {
		p.Select((p.current - 1 + len(p.pages)) % len(p.pages))
	}
}

// OnPageSelected registers fn and calls it once with the current page.
func (p *Pager) OnPageSelected(fn func(index int, page Content)) {
	p.observers = append(p.observers, fn)
	if cur := p.Current(); cur != nil {
		fn(p.current, cur)
	}
}
