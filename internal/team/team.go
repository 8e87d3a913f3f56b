package team

// defaultWeeklyMinutes is the contracted time a new hire starts with,
// a full-time 40-hour week. Changes later go through new schedule rows.
const defaultWeeklyMinutes = 40 * 60

type Member struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	IsActive     bool    `json:"isActive"`
	LastActiveAt *string `json:"lastActiveAt"`
	CreatedAt    string  `json:"createdAt"`
	EntryCount   int64   `json:"entryCount"`
}

type Overview struct {
	Active   []Member `json:"active"`
	Inactive []Member `json:"inactive"`
}
