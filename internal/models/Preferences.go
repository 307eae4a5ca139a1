package models

// Preferences are the per-user dashboard settings.
type Preferences struct {
	Units     Units    `json:"units"`
	Favorites []string `json:"favorites"`
	DarkMode  bool     `json:"dark_mode"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Units:     MetricUnits(),
		Favorites: []string{},
	}
}

// Clone returns a copy that shares no slices with p.
func (p Preferences) Clone() Preferences {
	favorites := make([]string, len(p.Favorites))
	copy(favorites, p.Favorites)
	p.Favorites = favorites
	return p
}

func (p Preferences) IsFavorite(city string) bool {
	for _, fav := range p.Favorites {
		if fav == city {
			return true
		}
	}
	return false
}
