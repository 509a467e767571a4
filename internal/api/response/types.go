package response

import (
	"time"

	"github.com/dotgrid/dotsboxes-go/internal/model"
	"github.com/dotgrid/dotsboxes-go/internal/services/match"
)

// Participant represents a match participant in API responses
type Participant struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	IsBot    bool      `json:"is_bot,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}

// ParticipantFromModel converts a model.Participant
func ParticipantFromModel(p *model.Participant) *Participant {
	if p == nil {
		return nil
	}
	return &Participant{
		ID:       string(p.ID),
		Name:     p.Name,
		IsBot:    p.IsBot,
		JoinedAt: p.JoinedAt,
	}
}

// Dot is a grid point
type Dot struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Line is a drawn edge
type Line struct {
	Start   Dot       `json:"start"`
	End     Dot       `json:"end"`
	Player  int       `json:"player"`
	DrawnAt time.Time `json:"drawn_at"`
}

// Cell is a claimable grid cell
type Cell struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Owner int `json:"owner"` // 0 while unclaimed
}

// Match represents a match in API responses
type Match struct {
	ID                  string         `json:"id"`
	Status              string         `json:"status"`
	GridSize            int            `json:"grid_size"`
	Public              bool           `json:"public"`
	AutoStart           bool           `json:"auto_start"`
	TurnDurationSeconds int            `json:"turn_duration_seconds"`
	Player1             *Participant   `json:"player1"`
	Player2             *Participant   `json:"player2,omitempty"`
	Lines               []Line         `json:"lines"`
	Cells               []Cell         `json:"cells"`
	Scores              map[string]int `json:"scores"`
	CurrentTurn         int            `json:"current_turn"`
	TurnStartedAt       time.Time      `json:"turn_started_at"`
	MissedTurns         map[string]int `json:"missed_turns"`
	GameOver            bool           `json:"game_over"`
	Winner              string         `json:"winner,omitempty"`
	EndReason           string         `json:"end_reason,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	Insights            *Insights      `json:"insights,omitempty"`
}

// PlayerTurnStats summarizes one player's share of the turn history
type PlayerTurnStats struct {
	Turns          int `json:"turns"`
	CellsCompleted int `json:"cells_completed"`
}

// Insights carries advisory statistics attached to single-match reads
type Insights struct {
	TotalTurns       int                        `json:"total_turns"`
	ConsecutiveTurns int                        `json:"consecutive_turns"`
	Players          map[string]PlayerTurnStats `json:"players"`
	PredictedWinner  string                     `json:"predicted_winner,omitempty"`
	Confidence       float64                    `json:"confidence"`
}

// InsightsFromModel converts orchestrator insights
func InsightsFromModel(in match.Insights) *Insights {
	return &Insights{
		TotalTurns:       in.Turn.TotalTurns,
		ConsecutiveTurns: in.Turn.ConsecutiveTurns,
		Players: map[string]PlayerTurnStats{
			"1": {
				Turns:          in.Turn.TurnsBySlot[model.Slot1],
				CellsCompleted: in.Turn.CellsBySlot[model.Slot1],
			},
			"2": {
				Turns:          in.Turn.TurnsBySlot[model.Slot2],
				CellsCompleted: in.Turn.CellsBySlot[model.Slot2],
			},
		},
		PredictedWinner: string(in.Prediction.Winner),
		Confidence:      in.Prediction.Confidence,
	}
}

// MatchFromModel converts a model.Match
func MatchFromModel(m *model.Match) Match {
	lines := make([]Line, len(m.Lines))
	for i, l := range m.Lines {
		lines[i] = Line{
			Start:   Dot{Row: l.Edge.A.Row, Col: l.Edge.A.Col},
			End:     Dot{Row: l.Edge.B.Row, Col: l.Edge.B.Col},
			Player:  int(l.Player),
			DrawnAt: l.DrawnAt,
		}
	}

	cells := make([]Cell, len(m.Cells))
	for i, c := range m.Cells {
		cells[i] = Cell{
			Row:   c.Cell.Row,
			Col:   c.Cell.Col,
			Owner: int(c.Owner),
		}
	}

	scores := map[string]int{
		"1": m.Scores[model.Slot1],
		"2": m.Scores[model.Slot2],
	}
	missed := map[string]int{
		"1": m.MissedTurns[model.Slot1],
		"2": m.MissedTurns[model.Slot2],
	}

	return Match{
		ID:                  string(m.ID),
		Status:              string(m.Status),
		GridSize:            m.Settings.GridSize,
		Public:              m.Settings.Public,
		AutoStart:           m.Settings.AutoStart,
		TurnDurationSeconds: int(m.Settings.TurnDuration.Seconds()),
		Player1:             ParticipantFromModel(m.Player1),
		Player2:             ParticipantFromModel(m.Player2),
		Lines:               lines,
		Cells:               cells,
		Scores:              scores,
		CurrentTurn:         int(m.CurrentTurn),
		TurnStartedAt:       m.TurnStartedAt,
		MissedTurns:         missed,
		GameOver:            m.GameOver,
		Winner:              string(m.Winner),
		EndReason:           string(m.EndReason),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// MatchList is the response for listing open matches
type MatchList struct {
	Matches []Match `json:"matches"`
}

// MoveResult is the response for an accepted move
type MoveResult struct {
	Success        bool   `json:"success"`
	SquaresClaimed int    `json:"squares_claimed"`
	GameCompleted  bool   `json:"game_completed"`
	Winner         string `json:"winner,omitempty"`
}
