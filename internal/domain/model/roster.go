package model

// Athlete is a competitor identified by bib number.
type Athlete struct {
	Bib  string `json:"bib"`
	Name string `json:"name"`
}

// Category groups the athletes judged together. Bibs are unique within a category.
type Category struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Athletes []Athlete `json:"athletes"`
}

// HasAthlete reports whether bib is on the category's start list.
func (c Category) HasAthlete(bib string) bool {
	for _, a := range c.Athletes {
		if a.Bib == bib {
			return true
		}
	}
	return false
}

// LiveState marks the athlete and run currently being judged.
// The zero value means nothing is live.
type LiveState struct {
	CategoryID string `json:"category_id"`
	Bib        string `json:"bib"`
	Run        int    `json:"run"`
	Attempt    int    `json:"attempt"`
}

// Active reports whether an athlete is live.
func (l LiveState) Active() bool {
	return l.CategoryID != "" && l.Bib != ""
}
