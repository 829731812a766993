package flight

// Mode selects what the attitude system holds.
type Mode int

const (
	ModeManual Mode = iota
	ModeStability
	ModePrograde
	ModeRetrograde
)

func (m Mode) String() string {
	switch m {
	case ModeStability:
		return "SAS"
	case ModePrograde:
		return "PRO"
	case ModeRetrograde:
		return "RETRO"
	default:
		return "MAN"
	}
}

// ParseMode maps a mission plan keyword to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "manual":
		return ModeManual, true
	case "stability", "sas":
		return ModeStability, true
	case "prograde":
		return ModePrograde, true
	case "retrograde":
		return ModeRetrograde, true
	}
	return ModeManual, false
}

// Input is the pilot command set sampled once per tick. Stage and Deploy
// are edge-triggered: true fires the action exactly once this tick.
type Input struct {
	Throttle float64 // 0..1
	Turn     float64 // -1 full left .. +1 full right
	Mode     Mode
	Warp     float64 // requested time warp, clamped to config
	Stage    bool
	Deploy   bool
}
