package model

// Team is the roster of one color. Spymaster is empty while the slot is vacant.
type Team struct {
	Spymaster  PlayerID
	Operatives []PlayerID
}

// HasSpymaster returns true if the spymaster slot is occupied
func (t *Team) HasSpymaster() bool {
	return t != nil && t.Spymaster != ""
}

// IsValid returns true if the team can play: a spymaster and at least one operative
func (t *Team) IsValid() bool {
	return t.HasSpymaster() && len(t.Operatives) > 0
}

// HasOperative returns true if the player is one of the team's operatives
func (t *Team) HasOperative(playerID PlayerID) bool {
	if t == nil {
		return false
	}
	for _, op := range t.Operatives {
		if op == playerID {
			return true
		}
	}
	return false
}

// Members returns the spymaster (if any) followed by the operatives
func (t *Team) Members() []PlayerID {
	if t == nil {
		return nil
	}
	members := make([]PlayerID, 0, len(t.Operatives)+1)
	if t.Spymaster != "" {
		members = append(members, t.Spymaster)
	}
	return append(members, t.Operatives...)
}

// Clone returns a deep copy of the team
func (t *Team) Clone() *Team {
	if t == nil {
		return nil
	}
	ops := make([]PlayerID, len(t.Operatives))
	copy(ops, t.Operatives)
	return &Team{Spymaster: t.Spymaster, Operatives: ops}
}
