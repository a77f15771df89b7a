package hijri

const (
	SlugRamadan    = "ramadan"
	SlugDhulHijjah = "dhulhijjah"
	SlugArafah     = "arafah"
	SlugEidAdha    = "eidadha"
	SlugNewYear    = "newyear"
)

// Event describes a milestone for the detail view
type Event struct {
	Slug        string
	Title       string
	Icon        string
	Description string
}

var events = []Event{
	{
		Slug:        SlugRamadan,
		Title:       "Ramadan",
		Icon:        "🌙",
		Description: "Ramadan is the month in which the Qur’an was revealed. Muslims fast from dawn to sunset, focusing on worship, self-discipline, and closeness to God.",
	},
	{
		Slug:        SlugDhulHijjah,
		Title:       "Dhul Hijjah",
		Icon:        "🕋",
		Description: "Dhul Hijjah is the month of Hajj. Its first ten days are among the most blessed days in Islam.",
	},
	{
		Slug:        SlugArafah,
		Title:       "Day of Arafah",
		Icon:        "⛰️",
		Description: "The Day of Arafah is the most sacred day of Hajj. Many Muslims fast on this day, seeking forgiveness and mercy.",
	},
	{
		Slug:        SlugEidAdha,
		Title:       "Eid al-Adha",
		Icon:        "🎉",
		Description: "Eid al-Adha commemorates Ibrahim’s devotion. It is marked by prayer, charity, and remembrance of God.",
	},
	{
		Slug:        SlugNewYear,
		Title:       "Islamic New Year",
		Icon:        "✨",
		Description: "The Islamic New Year marks the start of the Hijri calendar year (Muharram). Many use it for reflection and fresh intentions.",
	},
}

// Events returns the known milestone descriptions in display order.
func Events() []Event {
	return append([]Event(nil), events...)
}

// EventInfo looks up a milestone description by slug.
func EventInfo(slug string) (Event, bool) {
	for _, e := range events {
		if e.Slug == slug {
			return e, true
		}
	}
	return Event{}, false
}
