package constvars

const (
	SlotGenerationDays = 7

	FallbackWindowStartMinutes = 10 * 60
	FallbackWindowEndMinutes   = 21 * 60
	FallbackSlotDuration       = 30
)

// AllowedSlotDurations lists the slot lengths in minutes a doctor may configure.
var AllowedSlotDurations = []int{15, 30, 45, 60}

var Weekdays = []string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

const (
	CancelReasonUser    = "user"
	CancelReasonDoctor  = "doctor"
	CancelReasonExpired = "expired"
)

const (
	ISODateLayout   = "2006-01-02"
	ClockLayout     = "15:04"
	TimeLabelLayout = "3:04 PM"
)

const (
	NotificationMessageAutoExpired = "Your appointment was automatically cancelled due to time expiration"
	NotificationMessageCancelled   = "Your appointment has been cancelled"
	NotificationMessageBooked      = "Your appointment has been booked"
	NotificationMessageCompleted   = "Your appointment has been completed"
)
