package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSecretary  Role = "secretary"
	RoleTechnician Role = "technician"
	RoleNone       Role = ""
)

func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleSecretary, RoleTechnician:
		return Role(s)
	}
	return RoleNone
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserProfile struct {
	ID       int64          `json:"id"`
	UserID   int64          `json:"user"`
	Color    string         `json:"color"`
	Phone    string         `json:"phone"`
	Address  map[string]any `json:"address"`
	IsActive bool           `json:"is_active"`
}

// Employee is the read-only shape served under /api/employees/.
type Employee struct {
	User
	Profile *UserProfile `json:"profile,omitempty"`
}

type Client struct {
	ID            int64          `json:"id"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	AddressStreet string         `json:"address_street"`
	AddressCity   string         `json:"address_city"`
	AddressState  string         `json:"address_state"`
	AddressZip    string         `json:"address_zip"`
	PhoneNumber   string         `json:"phone_number"`
	Email         string         `json:"email"`
	IsActive      bool           `json:"is_active"`
	Preferences   map[string]any `json:"preferences"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (c *Client) Summary() string {
	return fmt.Sprintf("%s %s", c.FirstName, c.LastName)
}

func (c *Client) OwningClientID() int64 { return c.ID }

type JobType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Appointment statuses.
const (
	ApptScheduled          = "scheduled"
	ApptInProgress         = "in_progress"
	ApptCompleted          = "completed"
	ApptPartiallyCompleted = "partially_completed"
	ApptPending            = "pending"
)

var AppointmentStatuses = []string{
	ApptScheduled, ApptInProgress, ApptCompleted, ApptPartiallyCompleted, ApptPending,
}

func ValidAppointmentStatus(s string) bool { return oneOf(s, AppointmentStatuses) }

func oneOf(s string, opts []string) bool {
	for _, o := range opts {
		if o == s {
			return true
		}
	}
	return false
}

type Appointment struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	ClientID       int64     `json:"client"`
	TechnicianIDs  []int64   `json:"technicians"`
	JobTypeID      *int64    `json:"job_type"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Location       string    `json:"location"`
	Notes          string    `json:"notes"`
	TravelTime     int       `json:"travel_time"`
	IsPriority     bool      `json:"is_priority"`
	Status         string    `json:"status"`
	RecurrenceRule string    `json:"recurrence_rule"`
}

type Equipment struct {
	ID                     int64   `json:"id"`
	ClientID               int64   `json:"client"`
	EquipmentType          string  `json:"equipment_type"`
	Manufacturer           string  `json:"manufacturer"`
	ModelNumber            string  `json:"model_number"`
	SerialNumber           *string `json:"serial_number"`
	InstallationDate       *Date   `json:"installation_date"`
	WarrantyExpirationDate *Date   `json:"warranty_expiration_date"`
	FilterSize             string  `json:"filter_size"`
}

func (e *Equipment) Summary() string {
	return fmt.Sprintf("%s - %s %s", e.EquipmentType, e.Manufacturer, e.ModelNumber)
}

func (e *Equipment) OwningClientID() int64 { return e.ClientID }

var EquipmentTypes = []string{
	"Furnace", "Air Conditioner", "Humidifier", "Coil", "Thermostat",
	"Tank Water Heater", "Tankless Water Heater", "Water Softener", "Mini Split",
}

func ValidEquipmentType(s string) bool { return oneOf(s, EquipmentTypes) }

type Part struct {
	ID           int64           `json:"id"`
	ModelNumber  string          `json:"model_number"`
	PartName     string          `json:"part_name"`
	Manufacturer string          `json:"manufacturer"`
	Specs        map[string]any  `json:"specs"`
	ManualURL    string          `json:"manual_url"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	CreatedAt    time.Time       `json:"created_at"`
}

// EquipmentDatabase is a catalog entry describing a unit model,
// independent of any client-owned Equipment record.
type EquipmentDatabase struct {
	ID            int64          `json:"id"`
	ModelNumber   string         `json:"model_number"`
	EquipmentType string         `json:"equipment_type"`
	Manufacturer  string         `json:"manufacturer"`
	Description   string         `json:"description"`
	Specs         map[string]any `json:"specs"`
	ManualURL     string         `json:"manual_url"`
	CreatedAt     time.Time      `json:"created_at"`
}

type ServiceHistory struct {
	ID             int64           `json:"id"`
	EquipmentID    int64           `json:"equipment"`
	ServiceDate    Date            `json:"service_date"`
	TechnicianName string          `json:"technician_name"`
	Description    string          `json:"description"`
	Cost           decimal.Decimal `json:"cost"`
}

func (s *ServiceHistory) Summary() string {
	return fmt.Sprintf("Service on %s: %s", s.ServiceDate, s.Description)
}

// Invoice statuses.
const (
	InvoicePaid           = "Paid"
	InvoiceUnpaid         = "Unpaid"
	InvoiceOverdue        = "Overdue"
	InvoicePendingPayment = "Pending Payment"
)

var InvoiceStatuses = []string{InvoicePaid, InvoiceUnpaid, InvoiceOverdue, InvoicePendingPayment}

func ValidInvoiceStatus(s string) bool { return oneOf(s, InvoiceStatuses) }

var PaymentMethods = []string{"Credit Card", "Check", "Cash", "Bank Loan", "N/A"}

func ValidPaymentMethod(s string) bool { return oneOf(s, PaymentMethods) }

type Invoice struct {
	ID               int64           `json:"id"`
	ServiceHistoryID *int64          `json:"service_history"`
	ClientID         int64           `json:"client"`
	InvoiceDate      Date            `json:"invoice_date"`
	DueDate          *Date           `json:"due_date"`
	AmountDue        decimal.Decimal `json:"amount_due"`
	Status           string          `json:"status"`
	PaymentMethod    string          `json:"payment_method"`
	CheckNumber      string          `json:"check_number"`
	IsEstimate       bool            `json:"is_estimate"`
}

func (i *Invoice) Summary() string {
	return fmt.Sprintf("Invoice #%d for client %d", i.ID, i.ClientID)
}

func (i *Invoice) OwningClientID() int64 { return i.ClientID }

type Note struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client"`
	NoteText  string    `json:"note_text"`
	CreatedAt time.Time `json:"created_at"`
}

func (n *Note) Summary() string {
	return fmt.Sprintf("Note for client %d on %s", n.ClientID, n.CreatedAt.Format("2006-01-02"))
}

func (n *Note) OwningClientID() int64 { return n.ClientID }

type MaintenanceReminder struct {
	ID           int64  `json:"id"`
	EquipmentID  int64  `json:"equipment"`
	ReminderDate Date   `json:"reminder_date"`
	ReminderType string `json:"reminder_type"`
	Status       string `json:"status"`
}

var ReminderStatuses = []string{"Scheduled", "Sent", "Completed"}

func ValidReminderStatus(s string) bool { return oneOf(s, ReminderStatuses) }

type TimeLog struct {
	ID         int64      `json:"id"`
	EmployeeID int64      `json:"employee"`
	ClockIn    time.Time  `json:"clock_in"`
	ClockOut   *time.Time `json:"clock_out"`
	CreatedAt  time.Time  `json:"created_at"`
}

type PTORequest struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employee"`
	StartDate  Date      `json:"start_date"`
	EndDate    Date      `json:"end_date"`
	Notes      string    `json:"notes"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

var PTOStatuses = []string{"pending", "approved", "denied"}

func ValidPTOStatus(s string) bool { return oneOf(s, PTOStatuses) }

type Attachment struct {
	ID               int64     `json:"id"`
	FileName         string    `json:"file_name"`
	StoragePath      string    `json:"storage_path"`
	ContentType      string    `json:"content_type"`
	UploadedAt       time.Time `json:"uploaded_at"`
	ServiceHistoryID *int64    `json:"service_history"`
	InvoiceID        *int64    `json:"invoice"`
	AppointmentID    *int64    `json:"appointment"`
}

func (a *Attachment) Summary() string { return a.FileName }

type Notification struct {
	ID                int64      `json:"id"`
	RecipientID       *int64     `json:"recipient"`
	ClientRecipientID *int64     `json:"client_recipient"`
	Channel           string     `json:"channel"`
	Content           string     `json:"content"`
	Status            string     `json:"status"`
	SentAt            *time.Time `json:"sent_at"`
	CreatedAt         time.Time  `json:"created_at"`
}

var (
	NotificationChannels = []string{"sms", "email"}
	NotificationStatuses = []string{"pending", "sent", "failed"}
)

func ValidNotificationChannel(s string) bool { return oneOf(s, NotificationChannels) }

func ValidNotificationStatus(s string) bool { return oneOf(s, NotificationStatuses) }

type AuditLog struct {
	ID         int64          `json:"id"`
	UserID     *int64         `json:"user"`
	ClientID   *int64         `json:"client"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Metadata   map[string]any `json:"metadata"`
	Timestamp  time.Time      `json:"timestamp"`
}

// ClientOwned marks entities that reference their owning client
// directly. Entities that only hold a parent id (ServiceHistory,
// Attachment) are resolved through the store instead.
type ClientOwned interface {
	OwningClientID() int64
}
