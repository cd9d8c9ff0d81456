package models

import (
	"fmt"
	"time"
)

// WorkOrderStatus is the authoritative work order lifecycle state.
// Legacy rows carry a wider set of raw values; NormalizeStatus folds
// them into these four at the mapping boundary.
type WorkOrderStatus string

const (
	StatusPending    WorkOrderStatus = "pending"
	StatusInProgress WorkOrderStatus = "in-progress"
	StatusCompleted  WorkOrderStatus = "completed"
	StatusCancelled  WorkOrderStatus = "cancelled"
)

// WorkOrderPriority orders the urgency of a work order.
type WorkOrderPriority string

const (
	PriorityLow    WorkOrderPriority = "low"
	PriorityMedium WorkOrderPriority = "medium"
	PriorityHigh   WorkOrderPriority = "high"
	PriorityUrgent WorkOrderPriority = "urgent"
)

// StatusConfig carries display metadata and the legal transition set
// for one status. Transition options shown to the client are derived
// from AllowedTransitions so the two can never drift.
type StatusConfig struct {
	Label        string            `json:"label"`
	ColorClasses string            `json:"colorClasses"`
	Icon         string            `json:"icon"`
	Description  string            `json:"description"`
	Allowed      []WorkOrderStatus `json:"allowedTransitions"`
}

// StatusOption is one selectable next status.
type StatusOption struct {
	Status WorkOrderStatus `json:"status"`
	Label  string          `json:"label"`
}

// statusRegistry is the single source of truth for the state machine.
// No state is absorbing: completed and cancelled orders can be
// reopened to correct mistaken transitions.
var statusRegistry = map[WorkOrderStatus]StatusConfig{
	StatusPending: {
		Label:        "Pending",
		ColorClasses: "bg-yellow-100 text-yellow-800",
		Icon:         "clock",
		Description:  "Work order created, not yet started",
		Allowed:      []WorkOrderStatus{StatusInProgress, StatusCancelled},
	},
	StatusInProgress: {
		Label:        "In Progress",
		ColorClasses: "bg-blue-100 text-blue-800",
		Icon:         "wrench",
		Description:  "Technician is actively working",
		Allowed:      []WorkOrderStatus{StatusCompleted, StatusCancelled, StatusPending},
	},
	StatusCompleted: {
		Label:        "Completed",
		ColorClasses: "bg-green-100 text-green-800",
		Icon:         "check-circle",
		Description:  "All job lines finished",
		Allowed:      []WorkOrderStatus{StatusInProgress},
	},
	StatusCancelled: {
		Label:        "Cancelled",
		ColorClasses: "bg-red-100 text-red-800",
		Icon:         "x-circle",
		Description:  "Work order abandoned",
		Allowed:      []WorkOrderStatus{StatusPending, StatusInProgress},
	},
}

var priorityRegistry = map[WorkOrderPriority]StatusConfig{
	PriorityLow:    {Label: "Low", ColorClasses: "bg-gray-100 text-gray-800", Icon: "arrow-down"},
	PriorityMedium: {Label: "Medium", ColorClasses: "bg-blue-100 text-blue-800", Icon: "minus"},
	PriorityHigh:   {Label: "High", ColorClasses: "bg-orange-100 text-orange-800", Icon: "arrow-up"},
	PriorityUrgent: {Label: "Urgent", ColorClasses: "bg-red-100 text-red-800", Icon: "alert-triangle"},
}

// StatusRegistry returns the config for a status and whether it is known.
func StatusRegistry(s WorkOrderStatus) (StatusConfig, bool) {
	cfg, ok := statusRegistry[s]
	return cfg, ok
}

// PriorityRegistry returns the config for a priority and whether it is known.
func PriorityRegistry(p WorkOrderPriority) (StatusConfig, bool) {
	cfg, ok := priorityRegistry[p]
	return cfg, ok
}

// AllStatuses lists every registered status in lifecycle order.
func AllStatuses() []WorkOrderStatus {
	return []WorkOrderStatus{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}
}

// NormalizeStatus maps raw storage values onto the registry. Unknown or
// empty values fall back to pending. Wider legacy vocabularies
// ("awaiting-parts", "quality-check", ...) collapse onto the nearest of
// the four canonical states.
func NormalizeStatus(raw string) WorkOrderStatus {
	if _, ok := statusRegistry[WorkOrderStatus(raw)]; ok {
		return WorkOrderStatus(raw)
	}
	switch raw {
	case "in_progress", "working", "awaiting-parts", "parts-ordered", "quality-check", "on-hold", "waiting-approval":
		return StatusInProgress
	case "done", "closed", "invoiced", "paid", "delivered":
		return StatusCompleted
	case "void", "rejected", "no-show":
		return StatusCancelled
	default:
		return StatusPending
	}
}

// NormalizePriority falls back to medium for unrecognized values.
func NormalizePriority(raw string) WorkOrderPriority {
	if _, ok := priorityRegistry[WorkOrderPriority(raw)]; ok {
		return WorkOrderPriority(raw)
	}
	return PriorityMedium
}

// ValidateStatusTransition reports whether current -> next is legal.
// A self-transition is never legal.
func ValidateStatusTransition(current, next WorkOrderStatus) bool {
	if current == next {
		return false
	}
	cfg, ok := statusRegistry[current]
	if !ok {
		return false
	}
	for _, s := range cfg.Allowed {
		if s == next {
			return true
		}
	}
	return false
}

// NextStatusOptions returns the selectable transitions out of current,
// derived directly from the registry's allowed set.
func NextStatusOptions(current WorkOrderStatus) []StatusOption {
	cfg, ok := statusRegistry[current]
	if !ok {
		return nil
	}
	opts := make([]StatusOption, 0, len(cfg.Allowed))
	for _, s := range cfg.Allowed {
		opts = append(opts, StatusOption{Status: s, Label: statusRegistry[s].Label})
	}
	return opts
}

// ApplyStatusTransition moves a work order to next, stamping the
// side-effect timestamps: StartTime on first entry to in-progress,
// EndTime on entry to completed or cancelled.
func ApplyStatusTransition(wo *WorkOrder, next WorkOrderStatus) error {
	if !ValidateStatusTransition(wo.Status, next) {
		return fmt.Errorf("illegal status transition %s -> %s", wo.Status, next)
	}
	now := time.Now()
	wo.Status = next
	switch next {
	case StatusInProgress:
		if wo.StartTime == nil {
			wo.StartTime = &now
		}
	case StatusCompleted, StatusCancelled:
		wo.EndTime = &now
	}
	return nil
}
