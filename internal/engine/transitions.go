package engine

type Transition struct {
	From Phase
	Cmd  CommandType
}

var Transitions = []Transition{
	{From: PhaseSealed, Cmd: CmdReveal},
	{From: PhaseRevealed, Cmd: CmdAdvance},
	{From: PhaseComplete, Cmd: CmdReset},
}

func allowed(phase Phase, cmd CommandType) bool {
	for _, t := range Transitions {
		if t.From == phase && t.Cmd == cmd {
			return true
		}
	}
	return false
}

// PrimaryCommand is the single control offered in a phase.
func PrimaryCommand(phase Phase) CommandType {
	for _, t := range Transitions {
		if t.From == phase {
			return t.Cmd
		}
	}
	return ""
}
