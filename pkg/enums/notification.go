package enums

import "fmt"

// NotificationType names the alert categories the shop surfaces.
type NotificationType string

const (
	NotificationTypeLowStock   NotificationType = "low_stock"
	NotificationTypeOutOfStock NotificationType = "out_of_stock"
	NotificationTypeBillDue    NotificationType = "bill_due"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeLowStock,
	NotificationTypeOutOfStock,
	NotificationTypeBillDue,
}

// String implements fmt.Stringer.
func (n NotificationType) String() string {
	return string(n)
}

// IsValid reports whether the value is a known NotificationType.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw input into a NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
