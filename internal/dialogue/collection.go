package dialogue

// New returns an empty collection.
func New() *Collection {
	return &Collection{
		Speakers: []Speaker{},
		Lines:    []Line{},
	}
}

// AddSpeaker appends s to the speaker list.
func (c *Collection) AddSpeaker(s Speaker) {
	c.Speakers = append(c.Speakers, s)
}

// AddLine appends l to the line list.
func (c *Collection) AddLine(l Line) {
	c.Lines = append(c.Lines, l)
}

// Speaker returns the first speaker declaring id.
func (c *Collection) Speaker(id int) (Speaker, bool) {
	for _, s := range c.Speakers {
		if s.ID == id {
			return s, true
		}
	}
	return Speaker{}, false
}

// NextSpeakerID returns one past the largest declared speaker id, or 0 for an
// empty collection.
func (c *Collection) NextSpeakerID() int {
	next := 0
	for _, s := range c.Speakers {
		if s.ID >= next {
			next = s.ID + 1
		}
	}
	return next
}

// Normalize replaces nil lists with empty ones and upper-cases valid colours.
// Invalid colours are left untouched so Check can report them.
func (c *Collection) Normalize() {
	if c.Speakers == nil {
		c.Speakers = []Speaker{}
	}
	if c.Lines == nil {
		c.Lines = []Line{}
	}
	for i := range c.Speakers {
		if normalized, err := NormalizeColor(c.Speakers[i].Color); err == nil {
			c.Speakers[i].Color = normalized
		}
	}
}

// Stats summarizes a collection.
type Stats struct {
	Speakers          int
	Lines             int
	LinesBySpeaker    map[int]int
	UnattributedLines int
}

// Stats counts speakers, lines, and lines per declared speaker id.
func (c *Collection) Stats() Stats {
	stats := Stats{
		Speakers:       len(c.Speakers),
		Lines:          len(c.Lines),
		LinesBySpeaker: make(map[int]int, len(c.Speakers)),
	}
	for _, s := range c.Speakers {
		stats.LinesBySpeaker[s.ID] = 0
	}
	for _, l := range c.Lines {
		if _, ok := c.Speaker(l.SpeakerID); !ok {
			stats.UnattributedLines++
			continue
		}
		stats.LinesBySpeaker[l.SpeakerID]++
	}
	return stats
}
