package dialogue

import (
	"encoding/json"
	"fmt"
)

// DefaultScale is applied to speakers whose document omits a scaling factor.
var DefaultScale = Scale{X: 1.0, Y: 1.0}

// Scale is a portrait scaling factor, encoded as a two-element JSON array.
type Scale struct {
	X float64
	Y float64
}

func (s Scale) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{s.X, s.Y})
}

func (s *Scale) UnmarshalJSON(data []byte) error {
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	if len(values) != 2 {
		return fmt.Errorf("portrait_scaling_factor: expected 2 numbers, got %d", len(values))
	}
	s.X, s.Y = values[0], values[1]
	return nil
}

// Rect is a texture region, encoded as [x, y, width, height].
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (r Rect) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]int{r.X, r.Y, r.Width, r.Height})
}

func (r *Rect) UnmarshalJSON(data []byte) error {
	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	if len(values) != 4 {
		return fmt.Errorf("texture_rect: expected 4 integers, got %d", len(values))
	}
	r.X, r.Y, r.Width, r.Height = values[0], values[1], values[2], values[3]
	return nil
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d, %d, %d, %d]", r.X, r.Y, r.Width, r.Height)
}

// Speaker is a named dialogue participant.
type Speaker struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Portrait    string `json:"portrait"`
	Scale       Scale  `json:"portrait_scaling_factor"`
	TextureRect *Rect  `json:"texture_rect,omitempty"`
}

// UnmarshalJSON applies DefaultScale before decoding so documents written
// without a scaling factor keep the game's default.
func (s *Speaker) UnmarshalJSON(data []byte) error {
	type plain Speaker
	decoded := plain{Scale: DefaultScale}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*s = Speaker(decoded)
	return nil
}

// Line is a single utterance attributed to a speaker by numeric id.
type Line struct {
	SpeakerID int    `json:"speaker_id"`
	Text      string `json:"text"`
}

// Collection is the top-level dialogue document.
type Collection struct {
	Speakers []Speaker `json:"speakers"`
	Lines    []Line    `json:"lines"`
}
