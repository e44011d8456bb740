package domain

// Validate checks that an event carries every field mandatory for its
// kind. It is pure: reference checks against other events belong to the
// caller (the store knows the log, this package does not).
func (e *GameEvent) Validate() error {
	if e.GameID == "" {
		return &MissingFieldError{Kind: string(e.Type), Field: "game_id"}
	}
	if e.TeamID == "" {
		return &MissingFieldError{Kind: string(e.Type), Field: "team_id"}
	}

	switch e.Type {
	case EventShot:
		if e.ShotOutcome == "" {
			return &MissingFieldError{Kind: string(e.Type), Field: "shot_outcome"}
		}
		switch e.ShotOutcome {
		case ShotGoal, ShotSaved, ShotMissed, ShotBlocked:
		default:
			return &MissingFieldError{Kind: string(e.Type), Field: "shot_outcome"}
		}
		if e.ScorerPlayerID == "" {
			return &MissingFieldError{Kind: string(e.Type), Field: "scorer_player_id"}
		}
	case EventGroundBall:
		if e.GroundBallPlayerID == "" {
			return &MissingFieldError{Kind: string(e.Type), Field: "ground_ball_player_id"}
		}
	case EventTurnover:
		// turnover_player_id may be empty: shot clock violations and
		// similar team turnovers are attributed to nobody
	case EventCausedTurnover:
		if e.CausedByPlayerID == "" {
			return &MissingFieldError{Kind: string(e.Type), Field: "caused_by_player_id"}
		}
		if e.LinkedEventID == "" {
			return &MissingFieldError{Kind: string(e.Type), Field: "linked_event_id"}
		}
	case EventPenalty:
		if e.PenaltyType == "" {
			return &MissingFieldError{Kind: string(e.Type), Field: "penalty_type"}
		}
		if e.PenaltyDuration < 0 {
			return &MissingFieldError{Kind: string(e.Type), Field: "penalty_duration"}
		}
	case EventFaceoff:
		if e.FaceoffPlayer1ID == "" {
			return &MissingFieldError{Kind: string(e.Type), Field: "faceoff_player1_id"}
		}
		if e.FaceoffPlayer2ID == "" {
			return &MissingFieldError{Kind: string(e.Type), Field: "faceoff_player2_id"}
		}
		if e.FaceoffWinnerTeamID == "" {
			return &MissingFieldError{Kind: string(e.Type), Field: "faceoff_winner_team_id"}
		}
	case EventClear:
		// clear_success is a plain bool, nothing else required
	default:
		return &MissingFieldError{Kind: string(e.Type), Field: "event_type"}
	}

	return nil
}

// ValidateLink checks the pairing invariant between a caused_turnover and
// the turnover it references: the linked event must be a turnover on the
// opposite side of the same game.
func (e *GameEvent) ValidateLink(linked *GameEvent) error {
	if e.Type != EventCausedTurnover {
		return nil
	}
	if linked == nil || linked.ID != e.LinkedEventID {
		return ErrInvalidReference
	}
	if linked.Type != EventTurnover || linked.GameID != e.GameID {
		return ErrInvalidReference
	}
	if linked.IsOpponent == e.IsOpponent {
		return ErrInvalidReference
	}
	return nil
}
