package model

import "time"

// MatchID uniquely identifies a match
type MatchID string

// PlayerID uniquely identifies a player
type PlayerID string

// PlayerSlot is the fixed designation of a match participant: slot 1 is
// the creator, slot 2 the joiner. A player's slot never changes once
// assigned.
type PlayerSlot int

const (
	SlotNone PlayerSlot = 0
	Slot1    PlayerSlot = 1
	Slot2    PlayerSlot = 2
)

// Other returns the opposing slot
func (s PlayerSlot) Other() PlayerSlot {
	switch s {
	case Slot1:
		return Slot2
	case Slot2:
		return Slot1
	}
	return SlotNone
}

// MatchStatus represents the lifecycle phase of a match.
// Transitions are monotonic: waiting -> active -> {completed, cancelled}.
type MatchStatus string

const (
	StatusWaiting   MatchStatus = "waiting"
	StatusActive    MatchStatus = "active"
	StatusCompleted MatchStatus = "completed"
	StatusCancelled MatchStatus = "cancelled"
)

// Winner identifies the outcome of a completed match
type Winner string

const (
	WinnerNone  Winner = ""
	WinnerSlot1 Winner = "1"
	WinnerSlot2 Winner = "2"
	WinnerTie   Winner = "tie"
)

// WinnerForSlot converts a player slot to its Winner value
func WinnerForSlot(s PlayerSlot) Winner {
	switch s {
	case Slot1:
		return WinnerSlot1
	case Slot2:
		return WinnerSlot2
	}
	return WinnerNone
}

// EndReason records why a match completed
type EndReason string

const (
	EndReasonNone        EndReason = ""
	EndReasonNormal      EndReason = "normal"
	EndReasonTurnTimeout EndReason = "turn_timeout"
)

// Participant is a player occupying a match slot
type Participant struct {
	ID       PlayerID  `json:"id"`
	Name     string    `json:"name"`
	IsBot    bool      `json:"is_bot,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}

// Line is a drawn edge. Lines are append-only: once drawn they are never
// removed or modified.
type Line struct {
	Edge    Edge       `json:"edge"`
	Player  PlayerSlot `json:"player"`
	DrawnAt time.Time  `json:"drawn_at"`
}

// CellState tracks ownership of a single cell. Owner is SlotNone until
// the cell's fourth bounding edge is drawn, and is set exactly once.
type CellState struct {
	Cell  Cell       `json:"cell"`
	Owner PlayerSlot `json:"owner"`
}

// TurnRecord is one entry of the turn history log
type TurnRecord struct {
	Player         PlayerSlot `json:"player"`
	CellsCompleted int        `json:"cells_completed"`
}

// Settings holds per-match configuration fixed at creation time
type Settings struct {
	GridSize     int           `json:"grid_size"`
	Public       bool          `json:"public"`
	AutoStart    bool          `json:"auto_start"`
	TurnDuration time.Duration `json:"turn_duration"`
}

// Match is the aggregate root for a single game of dots and boxes.
// All mutation goes through the match orchestrator's read-modify-write
// cycle; Version is the optimistic concurrency token checked by the
// storage layer's conditional update.
type Match struct {
	ID      MatchID `json:"id"`
	Version int64   `json:"version"`

	Status   MatchStatus `json:"status"`
	Settings Settings    `json:"settings"`

	Player1 *Participant `json:"player1"`
	Player2 *Participant `json:"player2,omitempty"`

	// Board state
	Lines []Line      `json:"lines"`
	Cells []CellState `json:"cells"`

	Scores      map[PlayerSlot]int `json:"scores"`
	CurrentTurn PlayerSlot         `json:"current_turn"`
	TurnHistory []TurnRecord       `json:"turn_history,omitempty"`

	// Timer state
	TurnStartedAt time.Time          `json:"turn_started_at"`
	MissedTurns   map[PlayerSlot]int `json:"missed_turns"`

	// Terminal state
	GameOver  bool      `json:"game_over"`
	Winner    Winner    `json:"winner,omitempty"`
	EndReason EndReason `json:"end_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GridSize returns the match's grid size
func (m *Match) GridSize() int {
	return m.Settings.GridSize
}

// TotalCells returns the number of claimable cells, (N-1)^2
func (m *Match) TotalCells() int {
	n := m.Settings.GridSize
	return (n - 1) * (n - 1)
}

// ClaimedCells counts cells with an owner
func (m *Match) ClaimedCells() int {
	count := 0
	for _, c := range m.Cells {
		if c.Owner != SlotNone {
			count++
		}
	}
	return count
}

// SlotOf returns the slot occupied by the given player, or SlotNone
func (m *Match) SlotOf(playerID PlayerID) PlayerSlot {
	if m.Player1 != nil && m.Player1.ID == playerID {
		return Slot1
	}
	if m.Player2 != nil && m.Player2.ID == playerID {
		return Slot2
	}
	return SlotNone
}

// ParticipantInSlot returns the participant in the given slot, or nil
func (m *Match) ParticipantInSlot(s PlayerSlot) *Participant {
	switch s {
	case Slot1:
		return m.Player1
	case Slot2:
		return m.Player2
	}
	return nil
}

// HasEdge reports whether the edge has already been drawn. Comparison is
// structural: edges are canonicalized, so reversed endpoint order matches.
func (m *Match) HasEdge(e Edge) bool {
	for _, l := range m.Lines {
		if l.Edge == e {
			return true
		}
	}
	return false
}

// CellIndex returns the index of the given cell in m.Cells, or -1
func (m *Match) CellIndex(c Cell) int {
	for i := range m.Cells {
		if m.Cells[i].Cell == c {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the match. Orchestrator operations mutate
// a clone of the read snapshot, never the snapshot itself.
func (m *Match) Clone() *Match {
	out := *m

	if m.Player1 != nil {
		p1 := *m.Player1
		out.Player1 = &p1
	}
	if m.Player2 != nil {
		p2 := *m.Player2
		out.Player2 = &p2
	}

	out.Lines = make([]Line, len(m.Lines))
	copy(out.Lines, m.Lines)

	out.Cells = make([]CellState, len(m.Cells))
	copy(out.Cells, m.Cells)

	out.TurnHistory = make([]TurnRecord, len(m.TurnHistory))
	copy(out.TurnHistory, m.TurnHistory)

	out.Scores = make(map[PlayerSlot]int, len(m.Scores))
	for k, v := range m.Scores {
		out.Scores[k] = v
	}

	out.MissedTurns = make(map[PlayerSlot]int, len(m.MissedTurns))
	for k, v := range m.MissedTurns {
		out.MissedTurns[k] = v
	}

	return &out
}
