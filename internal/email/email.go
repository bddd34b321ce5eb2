package email

import "time"

// Status values an email record moves through. Records are queued by the
// application and drained by the mailer worker.
const (
	StatusQueued = 0
	StatusSent   = 1
	StatusFailed = 2
)

const (
	// DefaultFrom is the sender on every outbound message.
	DefaultFrom = "no-reply@inntrac.com"

	TemplateWelcome = "Welcome"
	TemplateTimeOff = "TimeOffRequest"
)

type Email struct {
	ID        string    `json:"id" gorm:"primaryKey;column:id"`
	From      string    `json:"from" gorm:"column:from_address"`
	To        string    `json:"to" gorm:"column:to_address"`
	Template  string    `json:"template" gorm:"column:template"`
	Subject   string    `json:"subject" gorm:"column:subject"`
	Body      string    `json:"body" gorm:"column:body"`
	Status    int       `json:"status" gorm:"column:status"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (Email) TableName() string {
	return "emails"
}

// Repository defines the data access methods for queued emails
type Repository interface {
	Enqueue(e *Email) error
	NextBatch(limit int) ([]*Email, error)
	MarkSent(id string) error
	MarkFailed(id string) error
}
