package domain

import "strings"

// DefaultWeight is the weight given to pairs that don't carry one
const DefaultWeight = 1

// revealSeparator sits between the shown and hidden text of a revealed card
var revealSeparator = strings.Repeat("-", 20)

// WordPair represents a front/back vocabulary entry
type WordPair struct {
	Front  string
	Back   string
	Weight int
}

// NewWordPair creates a pair with the default weight
func NewWordPair(front, back string) WordPair {
	return WordPair{Front: front, Back: back, Weight: DefaultWeight}
}

// Matches reports whether both faces are exactly equal to the given values
func (p WordPair) Matches(front, back string) bool {
	return p.Front == front && p.Back == back
}

// Selection is a (front, back) pair offered to the user for picking
type Selection struct {
	Front string
	Back  string
}

// Side names one face of a pair
type Side int

const (
	SideFront Side = iota
	SideBack
)

func (s Side) String() string {
	if s == SideBack {
		return "back"
	}
	return "front"
}

// CardFacing is one directional presentation of a pair
type CardFacing struct {
	Shown  string
	Hidden string
}

// Facings returns the pair drilled in both directions, front first
func (p WordPair) Facings() [2]CardFacing {
	return [2]CardFacing{
		{Shown: p.Front, Hidden: p.Back},
		{Shown: p.Back, Hidden: p.Front},
	}
}

// Text returns the card text as displayed to the user.
// Once revealed, the hidden side follows the shown side below a separator line.
func (f CardFacing) Text(revealed bool) string {
	if !revealed {
		return f.Shown
	}
	return f.Shown + "\n" + revealSeparator + "\n" + f.Hidden
}
