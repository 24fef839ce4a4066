package models

type Event struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Venue          string  `json:"venue"`
	City           string  `json:"city"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Category       string  `json:"category"` // Concert, Workshop, Conference, Sports, Theatre, Festival
	Price          float64 `json:"price"`
	ImageURL       string  `json:"image_url"`
	OrganizerID    string  `json:"organizer_id"`
	OrganizerName  string  `json:"organizer_name"`
	AvailableSeats int     `json:"available_seats"`
	TotalSeats     int     `json:"total_seats"`
}

// EventCategories lists the categories an organizer can publish under.
var EventCategories = []string{"Concert", "Workshop", "Conference", "Sports", "Theatre", "Festival"}

func ValidCategory(category string) bool {
	for _, c := range EventCategories {
		if c == category {
			return true
		}
	}
	return false
}
