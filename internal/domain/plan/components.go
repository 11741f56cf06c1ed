package plan

// Canonical component slot names. A plan may carry any subset; list engines
// address slots by these names.
const (
	ComponentChecklist = "checklist"
	ComponentSchedule  = "schedule"
	ComponentGuestlist = "guestlist"
	ComponentTeam      = "team"
	ComponentTimeline  = "timeline"
	ComponentSupplies  = "supplies"
)

// ComponentNames lists the canonical slots in default render order.
var ComponentNames = []string{
	ComponentChecklist,
	ComponentSchedule,
	ComponentGuestlist,
	ComponentTeam,
	ComponentTimeline,
	ComponentSupplies,
}

// KnownComponent reports whether name is one of the canonical slots.
func KnownComponent(name string) bool {
	for _, n := range ComponentNames {
		if n == name {
			return true
		}
	}
	return false
}
