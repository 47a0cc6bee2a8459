package workflow

// Trigger represents an event that can move an approval status
type Trigger string

const (
	// TriggerDecide runs the approve/reject decision
	TriggerDecide Trigger = "DECIDE"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
