package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Match:
		o.printMatch(v)
	case MatchList:
		o.printMatchList(v)
	case MoveResult:
		o.printMoveResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Participant response type (matches API)
type Participant struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	IsBot    bool      `json:"is_bot,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}

// Dot response type
type Dot struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Line response type
type Line struct {
	Start   Dot       `json:"start"`
	End     Dot       `json:"end"`
	Player  int       `json:"player"`
	DrawnAt time.Time `json:"drawn_at"`
}

// Cell response type
type Cell struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Owner int `json:"owner"`
}

// Match response type
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
}

// MatchList response type
type MatchList struct {
	Matches []Match `json:"matches"`
}

// MoveResult response type
type MoveResult struct {
	Success        bool   `json:"success"`
	SquaresClaimed int    `json:"squares_claimed"`
	GameCompleted  bool   `json:"game_completed"`
	Winner         string `json:"winner,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printMatch(m Match) {
	fmt.Printf("Match: %s\n", m.ID)
	fmt.Printf("Status: %s\n", m.Status)
	fmt.Printf("Grid Size: %d\n", m.GridSize)
	o.printParticipant(1, m.Player1)
	o.printParticipant(2, m.Player2)

	if m.Status == "active" {
		fmt.Printf("Turn: player %d\n", m.CurrentTurn)
	}
	fmt.Printf("Score: %d - %d\n", m.Scores["1"], m.Scores["2"])

	if m.GameOver {
		switch m.Winner {
		case "tie":
			fmt.Println("Result: tie")
		default:
			fmt.Printf("Winner: player %s\n", m.Winner)
		}
		if m.EndReason != "" && m.EndReason != "normal" {
			fmt.Printf("End Reason: %s\n", m.EndReason)
		}
	}

	fmt.Println()
	o.printGrid(m)
}

func (o *Output) printParticipant(slot int, p *Participant) {
	if p == nil {
		fmt.Printf("Player %d: (open)\n", slot)
		return
	}
	botStr := ""
	if p.IsBot {
		botStr = " [bot]"
	}
	fmt.Printf("Player %d: %s (%s)%s\n", slot, p.Name, p.ID, botStr)
}

// printGrid draws the board: dots joined by drawn lines, with claimed
// cells showing their owner's slot number
func (o *Output) printGrid(m Match) {
	horiz := make(map[[2]int]bool)
	vert := make(map[[2]int]bool)
	for _, l := range m.Lines {
		if l.Start.Row == l.End.Row {
			horiz[[2]int{l.Start.Row, min(l.Start.Col, l.End.Col)}] = true
		} else {
			vert[[2]int{min(l.Start.Row, l.End.Row), l.Start.Col}] = true
		}
	}

	owners := make(map[[2]int]int)
	for _, c := range m.Cells {
		owners[[2]int{c.Row, c.Col}] = c.Owner
	}

	for row := 0; row < m.GridSize; row++ {
		for col := 0; col < m.GridSize; col++ {
			fmt.Print("+")
			if col < m.GridSize-1 {
				if horiz[[2]int{row, col}] {
					fmt.Print("---")
				} else {
					fmt.Print("   ")
				}
			}
		}
		fmt.Println()

		if row < m.GridSize-1 {
			for col := 0; col < m.GridSize; col++ {
				if vert[[2]int{row, col}] {
					fmt.Print("|")
				} else {
					fmt.Print(" ")
				}
				if col < m.GridSize-1 {
					if owner := owners[[2]int{row, col}]; owner != 0 {
						fmt.Printf(" %d ", owner)
					} else {
						fmt.Print("   ")
					}
				}
			}
			fmt.Println()
		}
	}
}

func (o *Output) printMatchList(l MatchList) {
	if len(l.Matches) == 0 {
		fmt.Println("No open matches")
		return
	}

	fmt.Printf("Open matches (%d):\n", len(l.Matches))
	for _, m := range l.Matches {
		creator := "(unknown)"
		if m.Player1 != nil {
			creator = m.Player1.Name
		}
		fmt.Printf("  %s  grid=%d  by %s\n", m.ID, m.GridSize, creator)
	}
}

func (o *Output) printMoveResult(r MoveResult) {
	if r.SquaresClaimed > 0 {
		fmt.Printf("Claimed %d square(s), go again!\n", r.SquaresClaimed)
	} else {
		fmt.Println("Line drawn")
	}

	if r.GameCompleted {
		fmt.Println("Game complete!")
		if r.Winner == "tie" {
			fmt.Println("Result: tie")
		} else if r.Winner != "" {
			fmt.Printf("Winner: player %s\n", r.Winner)
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
