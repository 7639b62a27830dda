package model

import "time"

// Manufacturer represents a supplier entity as stored in the
// `manufacturers` table. Only the name is mandatory; contact details are
// free-form and optional. Color holds the hex value of the badge shown in
// the catalogue and is assigned from the palette when the client does not
// pick one.
//
// These rows are serialized to the API verbatim, hence the json tags.
type Manufacturer struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson *string   `json:"contact_person"`
	Phone         *string   `json:"phone"`
	Email         *string   `json:"email"`
	Address       *string   `json:"address"`
	Color         string    `json:"color"`
	CreatedAt     time.Time `json:"created_at"`
}
