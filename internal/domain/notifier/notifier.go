package notifier

import "context"

// Permission is the owner's consent state for notifications.
type Permission string

const (
	PermissionDefault Permission = "default" // Not asked yet
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Notification is a fire-and-forget message raised to the owner.
type Notification struct {
	Title string
	Body  string
	Icon  string // Optional icon reference, usually a URL
}

// Notifier raises notifications on the host platform.
// This keeps the session logic independent of the concrete delivery channel.
type Notifier interface {
	Permission(ctx context.Context) (Permission, error)
	RequestPermission(ctx context.Context) (Permission, error)
	Notify(ctx context.Context, n Notification) error
}

// InstallOffer is a deferred "install this app" action offered by the host.
type InstallOffer interface {
	Prompt(ctx context.Context) (accepted bool, err error)
}
