package request

// PlayRequest is the request body for starting a round
type PlayRequest struct {
	PlayerID string `json:"player_id,omitempty"`
}

// GuessRequest is the request body for submitting a guess
type GuessRequest struct {
	PlayerID string  `json:"player_id"`
	Guess    float64 `json:"guess"`
}
