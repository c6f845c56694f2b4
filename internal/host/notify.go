package host

import (
	"log"
	"os/exec"
)

// Button is an action offered on a notification.
type Button struct {
	Title string
}

// Notification is a host notification with optional action buttons.
// Button clicks re-enter the daemon through the HTTP API.
type Notification struct {
	Title   string
	Body    string
	Buttons []Button
}

// Notifier delivers notifications to the user.
type Notifier interface {
	Notify(id string, n Notification) error
	Clear(id string)
}

// LogNotifier writes notifications to the process log. It is the default
// when no notify command is configured, and keeps the daemon functional
// on headless systems.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(id string, n Notification) error {
	log.Printf("notification %s: title=%q body=%q", id, n.Title, n.Body)
	return nil
}

// Clear implements Notifier.
func (LogNotifier) Clear(id string) {
	log.Printf("notification %s cleared", id)
}

// CommandNotifier shells out to an external notification command
// (e.g. notify-send) with the title and body as arguments.
type CommandNotifier struct {
	Command string
}

// Notify implements Notifier.
func (c CommandNotifier) Notify(id string, n Notification) error {
	cmd := exec.Command(c.Command, n.Title, n.Body)
	if err := cmd.Run(); err != nil {
		return err
	}
	return nil
}

// Clear implements Notifier. External commands have no dismissal handle,
// so this is a no-op.
func (c CommandNotifier) Clear(id string) {}
