package domain

// NotificationState is the moment a reminder preview represents.
type NotificationState string

const (
	NotificationComingUp NotificationState = "coming-up"
	NotificationDue      NotificationState = "due"
	NotificationOverdue  NotificationState = "overdue"
)

// Notification is a rendered mock of a push notification for a task.
type Notification struct {
	State    NotificationState `json:"state"`
	Section  string            `json:"section"`
	AppName  string            `json:"appName"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Time     string            `json:"time"`
	Icon     string            `json:"icon"`
	Accent   string            `json:"accent"`
	Category string            `json:"category,omitempty"`
}

// DictationStatus is the phase of a voice capture.
type DictationStatus string

const (
	DictationIdle        DictationStatus = "idle"
	DictationListening   DictationStatus = "listening"
	DictationTranscribed DictationStatus = "transcribed"
)

// DictationEvent reports a dictation phase change. Transcript is set once transcribed.
type DictationEvent struct {
	Status     DictationStatus `json:"status"`
	Transcript string          `json:"transcript,omitempty"`
}
