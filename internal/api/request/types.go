package request

// DotRef identifies a dot by grid coordinates
type DotRef struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// CreateMatch is the request body for creating a match
type CreateMatch struct {
	PlayerID            string `json:"player_id"`
	PlayerName          string `json:"player_name"`
	GridSize            int    `json:"grid_size"`
	Public              *bool  `json:"public,omitempty"`
	AutoStart           bool   `json:"auto_start"`
	TurnDurationSeconds int    `json:"turn_duration_seconds"`
}

// JoinMatch is the request body for joining a match
type JoinMatch struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// StartMatch is the request body for starting a match
type StartMatch struct {
	PlayerID string `json:"player_id"`
}

// CancelMatch is the request body for cancelling a match
type CancelMatch struct {
	PlayerID string `json:"player_id"`
}

// PlayMove is the request body for submitting a move
type PlayMove struct {
	PlayerID string `json:"player_id"`
	StartDot DotRef `json:"start_dot"`
	EndDot   DotRef `json:"end_dot"`
}

// Rematch is the request body for creating a rematch
type Rematch struct {
	PlayerID string `json:"player_id"`
}
