package model

import "testing"

func TestStatusValidators(t *testing.T) {
	tests := []struct {
		name  string
		valid func(string) bool
		ok    []string
		bad   []string
	}{
		{"appointment", ValidAppointmentStatus,
			[]string{ApptScheduled, ApptInProgress, ApptCompleted, ApptPartiallyCompleted, ApptPending},
			[]string{"", "done", "Scheduled", "cancelled"}},
		{"invoice", ValidInvoiceStatus,
			[]string{InvoicePaid, InvoiceUnpaid, InvoiceOverdue, InvoicePendingPayment},
			[]string{"", "paid", "pending"}},
		{"reminder", ValidReminderStatus,
			[]string{"Scheduled", "Sent", "Completed"},
			[]string{"", "scheduled", "Done"}},
		{"pto", ValidPTOStatus,
			[]string{"pending", "approved", "denied"},
			[]string{"", "Pending", "rejected"}},
		{"notification channel", ValidNotificationChannel,
			[]string{"sms", "email"},
			[]string{"", "fax", "SMS"}},
		{"notification status", ValidNotificationStatus,
			[]string{"pending", "sent", "failed"},
			[]string{"", "queued", "Sent"}},
		{"equipment type", ValidEquipmentType,
			[]string{"Furnace", "Mini Split"},
			[]string{"", "furnace", "Boiler"}},
		{"payment method", ValidPaymentMethod,
			[]string{"Credit Card", "N/A"},
			[]string{"", "Bitcoin", "cash"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range tt.ok {
				if !tt.valid(s) {
					t.Errorf("%q rejected, want accepted", s)
				}
			}
			for _, s := range tt.bad {
				if tt.valid(s) {
					t.Errorf("%q accepted, want rejected", s)
				}
			}
		})
	}
}
