package models

// Participant is one member of a group. Participants are owned by their
// group and are identified by ID everywhere else in the system.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string

	// Name is the display name shown in settlement instructions.
	Name string
}

// Group represents a set of people who share expenses.
// It is the unit of settlement: balances and settlements are always
// computed across all expenses of a single group, in a single currency.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the human-readable name for the group.
	Name string

	// Currency is the ISO 4217 code shared by every expense in the group.
	// The calculators are currency-agnostic; this is used for rendering only.
	Currency string

	// Participants is the list of group members.
	Participants []Participant

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Participant returns the member with the given ID, or false if the ID
// is not part of the group.
func (g *Group) Participant(id string) (Participant, bool) {
	for _, p := range g.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return Participant{}, false
}
