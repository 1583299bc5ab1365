package banner

// State is the lifecycle state of a View.
type State int

const (
	StateHidden State = iota
	StateEntering
	StateDisplayed
	StateDismissing
	StateDestroyed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StateEntering:
		return "entering"
	case StateDisplayed:
		return "displayed"
	case StateDismissing:
		return "dismissing"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Visible reports whether a view in state s is attached to its host.
func (s State) Visible() bool {
	return s == StateEntering || s == StateDisplayed || s == StateDismissing
}

// DismissReason describes why a banner went away.
type DismissReason int

const (
	// ReasonExpired indicates the display duration elapsed.
	ReasonExpired DismissReason = iota + 1
	// ReasonTapped indicates the user tapped the banner.
	ReasonTapped
	// ReasonSwiped indicates the user swiped the banner away.
	ReasonSwiped
	// ReasonDismissed indicates the banner was dismissed through the API.
	ReasonDismissed
)

// String returns the string representation of the reason.
func (r DismissReason) String() string {
	switch r {
	case ReasonExpired:
		return "expired"
	case ReasonTapped:
		return "tapped"
	case ReasonSwiped:
		return "swiped"
	case ReasonDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

// Direction is the direction of a swipe gesture.
type Direction int

const (
	SwipeUp Direction = iota
	SwipeDown
)

// String returns the direction name.
func (d Direction) String() string {
	if d == SwipeDown {
		return "down"
	}
	return "up"
}
