package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ResolutionAction how an admin resolves overlapping rentals on confirmation
type ResolutionAction string

const (
	// ResolutionConfirm plain confirmation, offered only when nothing overlaps
	ResolutionConfirm         ResolutionAction = "confirm"
	ResolutionTransfer        ResolutionAction = "transfer"
	ResolutionRejectCurrent   ResolutionAction = "reject_current"
	ResolutionRejectConflicts ResolutionAction = "reject_conflicts"
	ResolutionConfirmAnyway   ResolutionAction = "confirm_anyway"
)

// WarningLevel severity of the force-confirm warning
type WarningLevel string

const (
	WarningNone     WarningLevel = "none"
	WarningStandard WarningLevel = "standard"
	WarningStrong   WarningLevel = "strong"
)

const (
	warningTextStandard = "Confirming anyway will overlap pending requests for this unit."
	warningTextStrong   = "Confirming anyway will double-book a customer whose rental on this unit is already confirmed."
)

var (
	// ErrActionNotOffered возвращается, если действие недоступно для текущего набора конфликтов
	ErrActionNotOffered = errors.New("resolution action is not available for this rental")

	// ErrUnitRequired возвращается, если для переноса не выбран юнит
	ErrUnitRequired = errors.New("selected unit is required for transfer")

	// ErrUnitNotAvailable возвращается, если выбранный юнит не входит в список свободных
	ErrUnitNotAvailable = errors.New("selected unit is not available for the rental dates")

	// ErrReasonRequired возвращается, если не указана причина отказа
	ErrReasonRequired = errors.New("rejection reason is required")
)

// ConflictSet other rentals on the same unit whose range intersects the rental being confirmed
type ConflictSet struct {
	Confirmed []*Rental // blocking, cannot be auto-rejected
	Pending   []*Rental // resolvable by rejection
}

// HasAny returns true if at least one conflict exists
func (c ConflictSet) HasAny() bool {
	return len(c.Confirmed) > 0 || len(c.Pending) > 0
}

// PendingIDs ids of pending conflicts
func (c ConflictSet) PendingIDs() []int64 {
	ids := make([]int64, 0, len(c.Pending))
	for _, r := range c.Pending {
		ids = append(ids, r.ID)
	}
	return ids
}

// PartitionConflicts раскладывает пересекающиеся аренды на блокирующие и ожидающие.
// Аренды в прочих статусах игнорируются.
func PartitionConflicts(rentals []*Rental) ConflictSet {
	set := ConflictSet{
		Confirmed: make([]*Rental, 0),
		Pending:   make([]*Rental, 0),
	}

	for _, r := range rentals {
		switch {
		case r.IsBlocking():
			set.Confirmed = append(set.Confirmed, r)
		case r.IsPending():
			set.Pending = append(set.Pending, r)
		}
	}

	return set
}

// ResolutionOptions what the admin may do when confirming a rental
type ResolutionOptions struct {
	HasConflicts   bool
	Conflicts      ConflictSet
	AvailableUnits []*Camera
	Actions        []ResolutionAction
	Default        ResolutionAction
	Warning        WarningLevel
	WarningText    string
}

// Offers проверяет, что действие есть среди предложенных
func (o ResolutionOptions) Offers(action ResolutionAction) bool {
	for _, a := range o.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// HasUnit проверяет, что юнит есть среди свободных
func (o ResolutionOptions) HasUnit(cameraID int64) bool {
	for _, u := range o.AvailableUnits {
		if u.ID == cameraID {
			return true
		}
	}
	return false
}

// BuildResolutionOptions строит набор взаимоисключающих вариантов разрешения конфликта
func BuildResolutionOptions(conflicts ConflictSet, availableUnits []*Camera) ResolutionOptions {
	opts := ResolutionOptions{
		Conflicts:      conflicts,
		AvailableUnits: availableUnits,
		Warning:        WarningNone,
	}

	if !conflicts.HasAny() {
		opts.Actions = []ResolutionAction{ResolutionConfirm}
		opts.Default = ResolutionConfirm
		return opts
	}

	opts.HasConflicts = true
	canTransfer := len(availableUnits) > 0

	if canTransfer {
		opts.Actions = append(opts.Actions, ResolutionTransfer)
	} else {
		opts.Actions = append(opts.Actions, ResolutionRejectCurrent)
	}

	if len(conflicts.Pending) > 0 {
		opts.Actions = append(opts.Actions, ResolutionRejectConflicts)
	}

	// Escape hatch всегда доступен
	opts.Actions = append(opts.Actions, ResolutionConfirmAnyway)

	if canTransfer {
		opts.Default = ResolutionTransfer
	} else {
		opts.Default = ResolutionRejectCurrent
	}

	if len(conflicts.Confirmed) > 0 {
		opts.Warning = WarningStrong
		opts.WarningText = warningTextStrong
	} else {
		opts.Warning = WarningStandard
		opts.WarningText = warningTextStandard
	}

	return opts
}

// ResolutionDecision admin's submitted choice
type ResolutionDecision struct {
	Action          ResolutionAction
	SelectedUnitID  *int64
	RejectionReason string
}

// Reason причина отказа без пробелов по краям
func (d ResolutionDecision) Reason() string {
	return strings.TrimSpace(d.RejectionReason)
}

// ValidateResolution проверяет, что для выбранного действия переданы обязательные данные
func ValidateResolution(opts ResolutionOptions, d ResolutionDecision) error {
	if !opts.Offers(d.Action) {
		return fmt.Errorf("%w: %s", ErrActionNotOffered, d.Action)
	}

	switch d.Action {
	case ResolutionTransfer:
		if d.SelectedUnitID == nil {
			return ErrUnitRequired
		}
		if !opts.HasUnit(*d.SelectedUnitID) {
			return fmt.Errorf("%w: unit id=%d", ErrUnitNotAvailable, *d.SelectedUnitID)
		}
	case ResolutionRejectCurrent, ResolutionRejectConflicts:
		if d.Reason() == "" {
			return ErrReasonRequired
		}
	}

	return nil
}
