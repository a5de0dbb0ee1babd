package graph

// Tooltips is the set of points of one chart whose tooltip is shown.
// Every operation is idempotent and reports whether the state changed.
type Tooltips struct {
	size   int
	active []int
}

func NewTooltips(size int) *Tooltips {
	return &Tooltips{size: size}
}

func (t *Tooltips) Show(point int) bool {
	if point < 0 || point >= t.size || t.IsActive(point) {
		return false
	}
	t.active = append(t.active, point)
	return true
}

func (t *Tooltips) Hide(point int) bool {
	for i, p := range t.active {
		if p == point {
			t.active = append(t.active[:i], t.active[i+1:]...)
			return true
		}
	}
	return false
}

func (t *Tooltips) HideAll() bool {
	if len(t.active) == 0 {
		return false
	}
	t.active = nil
	return true
}

func (t *Tooltips) IsActive(point int) bool {
	for _, p := range t.active {
		if p == point {
			return true
		}
	}
	return false
}

// Active returns the shown points in the order they were shown.
func (t *Tooltips) Active() []int {
	out := make([]int, len(t.active))
	copy(out, t.active)
	return out
}

// Sync mirrors hovering over one table onto the charts of its columns.
type Sync struct {
	charts map[int]*Chart
}

func NewSync() *Sync {
	return &Sync{charts: map[int]*Chart{}}
}

// Attach registers the chart of column, replacing any previous one.
func (s *Sync) Attach(column int, c *Chart) {
	s.charts[column] = c
}

func (s *Sync) Detach(column int) {
	delete(s.charts, column)
}

// Hover shows the tooltip of the point describing p on the column's chart,
// hiding whatever that chart showed before. It returns the point, or -1.
func (s *Sync) Hover(column int, p DataPoint) int {
	c, ok := s.charts[column]
	if !ok || c.Destroyed() {
		return -1
	}
	c.Tooltips.HideAll()

	point := c.MapDataPoint(p)
	if !c.Tooltips.Show(point) {
		return -1
	}
	return point
}

// Leave hides every tooltip of the table.
func (s *Sync) Leave() {
	for _, c := range s.charts {
		c.Tooltips.HideAll()
	}
}
