package services

// Storage is the full persistence surface the processors need. It is
// satisfied by database.Store.
type Storage interface {
	StudentDirectory
	AcademicCalendar
	PolicyStore
	FeeSchedules
	PaymentLedger
	ReminderStore
	NotificationLog
}

// Services wires the fee compliance processors against shared collaborators.
type Services struct {
	DueDates   *DueDateService
	Cycle      *ReminderCycleService
	LateFees   *LateFeeService
	Reconciler *ReconcileService
	Scheduler  *Scheduler
}

func New(store Storage, email EmailSender, sms SMSSender, push PushSender) *Services {
	dueDates := &DueDateService{
		Students:  store,
		Calendar:  store,
		Policies:  store,
		Schedules: store,
		Reminders: store,
	}

	cycle := &ReminderCycleService{
		Reminders:     store,
		Students:      store,
		Policies:      store,
		Notifications: store,
		Push:          push,
		Email:         email,
		SMS:           sms,
	}

	lateFees := &LateFeeService{
		Reminders: store,
		Students:  store,
		Policies:  store,
		Schedules: store,
		Payments:  store,
		Resolver:  dueDates,
	}

	reconciler := &ReconcileService{
		Reminders: store,
		Payments:  store,
	}

	return &Services{
		DueDates:   dueDates,
		Cycle:      cycle,
		LateFees:   lateFees,
		Reconciler: reconciler,
		Scheduler:  &Scheduler{Cycle: cycle, LateFees: lateFees},
	}
}
