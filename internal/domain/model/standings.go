package model

// Counters tallies a team's results. Played always equals Won+Lost+Tied.
type Counters struct {
	Played int
	Won    int
	Lost   int
	Tied   int
}

// Table maps a team name to its counters.
type Table map[string]*Counters

// Row is one ranked line of the standings. The JSON keys are the contract
// of the published standings page.
type Row struct {
	Team          string `json:"equipo"`
	Participant   string `json:"participante"`
	Scheduled     int    `json:"prog"`
	Played        int    `json:"j"`
	Won           int    `json:"g"`
	Lost          int    `json:"p"`
	Remaining     int    `json:"por_jugar"`
	Points        int    `json:"pts"`
	MercyGiven    int    `json:"mg"`
	MercyReceived int    `json:"mr"`
	Forfeits      int    `json:"ab"`
	Tied          int    `json:"e"`
}
