// internal/app/session_controller.go
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"ambient_validation_bot/internal/domain/affirmation"
	"ambient_validation_bot/internal/domain/notifier"
	"ambient_validation_bot/internal/domain/session"
	idb "ambient_validation_bot/internal/infra/database" // For ErrStateNotFound

	"github.com/sirupsen/logrus"
)

// View is the screen the session is currently on.
type View string

const (
	ViewOnboarding View = "onboarding"
	ViewDashboard  View = "dashboard"
	ViewSettings   View = "settings"
)

const (
	// MaxOnboardingCategories caps the selection during first-run onboarding only.
	MaxOnboardingCategories = 3
	// WelcomeDelay is how long after a schedule (re)start the first notification fires.
	WelcomeDelay = 5 * time.Second

	// EmptySelectionMessage is shown on the dashboard when nothing is selected.
	EmptySelectionMessage = "Select categories in settings to receive affirmations."

	NotificationTitle      = "Your Ambient Validation"
	FirstNotificationTitle = "Your First Ambient Validation"
	WelcomeTitle           = "Welcome to Ambient Validation Loops"
	WelcomeBody            = "Your affirmations will appear here. Stay tuned for your first validation!"
)

// Snapshot is a read-only copy of the session handed to renderers.
type Snapshot struct {
	View               View
	State              session.State
	CurrentAffirmation string
	DraftFrequency     session.Frequency // Only meaningful in ViewSettings
	ScheduleInterval   time.Duration     // Zero when no schedule is running
	CanInstall         bool
}

// Deps bundles the collaborators of a SessionController.
type Deps struct {
	Catalog  *affirmation.Catalog
	Store    session.Store
	Notifier notifier.Notifier // nil when the host cannot notify
	Timer    Timer
	Rand     affirmation.Rand
	Now      func() time.Time
	Icon     string
	Logger   *logrus.Entry
}

// SessionController owns the session state, drives the view state machine
// and the notification schedule, and persists after every mutation.
// All exported methods are safe for concurrent use; they are serialized.
type SessionController struct {
	mu sync.Mutex

	catalog  *affirmation.Catalog
	store    session.Store
	notifier notifier.Notifier
	timer    Timer
	rng      affirmation.Rand
	now      func() time.Time
	icon     string
	logger   *logrus.Entry

	state          session.State
	view           View
	current        string
	draftFrequency session.Frequency

	interval       time.Duration
	cancelInterval func()
	cancelWelcome  func()
	// generation changes on every schedule start and stop; jobs from an
	// older schedule see a mismatch and do nothing.
	generation uint64

	installOffer notifier.InstallOffer
}

func NewSessionController(deps Deps) *SessionController {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &SessionController{
		catalog:  deps.Catalog,
		store:    deps.Store,
		notifier: deps.Notifier,
		timer:    deps.Timer,
		rng:      deps.Rand,
		now:      now,
		icon:     deps.Icon,
		logger:   logger.WithField("component", "session_controller"),
		state:    session.Defaults(),
		view:     ViewOnboarding,
	}
}

// Start loads persisted state, selects the initial view and resumes the
// notification schedule when it was enabled and permission is still granted.
func (c *SessionController) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = c.load(ctx)
	if c.state.FirstRun || len(c.state.SelectedCategories) == 0 {
		c.view = ViewOnboarding
	} else {
		c.view = ViewDashboard
		c.nextAffirmationLocked(ctx)
	}
	c.persist(ctx)
	c.logger.WithFields(logrus.Fields{
		"view":       c.view,
		"categories": len(c.state.SelectedCategories),
		"frequency":  c.state.NotificationFrequency,
	}).Info("Session started")

	if !c.state.NotificationsEnabled {
		return
	}
	if c.permissionLocked(ctx) != notifier.PermissionGranted {
		c.logger.Info("Notifications were enabled but permission is not granted. Schedule not started.")
		return
	}
	c.startScheduleLocked(ctx)
}

// Stop cancels any running schedule.
func (c *SessionController) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopScheduleLocked()
	c.logger.Info("Session stopped")
}

// Snapshot returns a copy of the session for rendering.
func (c *SessionController) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		View:               c.view,
		State:              c.state.Clone(),
		CurrentAffirmation: c.current,
		DraftFrequency:     c.draftFrequency,
		ScheduleInterval:   c.interval,
		CanInstall:         c.installOffer != nil,
	}
}

// Catalog exposes the content store the controller draws from.
func (c *SessionController) Catalog() *affirmation.Catalog {
	return c.catalog
}

// ToggleCategory adds or removes a category from the selection. While
// onboarding, adding beyond MaxOnboardingCategories is ignored and reported
// as changed=false.
func (c *SessionController) ToggleCategory(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.catalog.Has(id) {
		return false, ErrUnknownCategory
	}

	selected := c.state.SelectedCategories
	for i, sel := range selected {
		if sel == id {
			c.state.SelectedCategories = append(selected[:i:i], selected[i+1:]...)
			c.persist(ctx)
			return true, nil
		}
	}

	if c.view == ViewOnboarding && len(selected) >= MaxOnboardingCategories {
		c.logger.WithField("category", id).Debug("Onboarding selection limit reached, toggle ignored")
		return false, nil
	}
	c.state.SelectedCategories = append(selected, id)
	c.persist(ctx)
	return true, nil
}

// CompleteOnboarding leaves onboarding for the dashboard and asks for
// notification permission. It fails with ErrNoCategoriesSelected when the
// selection is empty.
func (c *SessionController) CompleteOnboarding(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view != ViewOnboarding {
		return ErrInvalidTransition
	}
	if len(c.state.SelectedCategories) == 0 {
		return ErrNoCategoriesSelected
	}

	c.state.FirstRun = false
	c.persist(ctx)
	c.enterDashboardLocked(ctx)
	c.logger.WithField("categories", c.state.SelectedCategories).Info("Onboarding completed")

	c.requestPermissionLocked(ctx)
	return nil
}

// OpenSettings moves from the dashboard to settings.
func (c *SessionController) OpenSettings() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view != ViewDashboard {
		return ErrInvalidTransition
	}
	c.view = ViewSettings
	c.draftFrequency = c.state.NotificationFrequency
	return nil
}

// SelectFrequency changes the draft cadence shown in settings. Nothing is
// persisted until SaveSettings.
func (c *SessionController) SelectFrequency(f session.Frequency) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view != ViewSettings {
		return ErrInvalidTransition
	}
	if _, ok := session.ParseFrequency(string(f)); !ok {
		return ErrInvalidFrequency
	}
	c.draftFrequency = f
	return nil
}

// CancelSettings discards the draft cadence and returns to the dashboard.
// Category toggles made in settings were already persisted and stay.
func (c *SessionController) CancelSettings(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view != ViewSettings {
		return ErrInvalidTransition
	}
	c.draftFrequency = ""
	c.enterDashboardLocked(ctx)
	return nil
}

// SaveSettings persists the draft cadence, restarts the schedule when
// notifications are enabled and returns to the dashboard.
func (c *SessionController) SaveSettings(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view != ViewSettings {
		return ErrInvalidTransition
	}
	if c.draftFrequency != "" {
		c.state.NotificationFrequency = c.draftFrequency
	}
	c.draftFrequency = ""
	c.persist(ctx)
	c.logger.WithField("frequency", c.state.NotificationFrequency).Info("Settings saved")

	if c.state.NotificationsEnabled {
		c.startScheduleLocked(ctx)
	}
	c.enterDashboardLocked(ctx)
	return nil
}

// NextAffirmation draws a new affirmation for the dashboard and counts it.
// With no categories selected it returns EmptySelectionMessage uncounted.
func (c *SessionController) NextAffirmation(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nextAffirmationLocked(ctx)
}

// ToggleNotifications flips the enabled flag when permission is granted,
// starting or stopping the schedule. Otherwise it asks for permission.
func (c *SessionController) ToggleNotifications(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.permissionLocked(ctx) != notifier.PermissionGranted {
		c.requestPermissionLocked(ctx)
		return
	}

	c.state.NotificationsEnabled = !c.state.NotificationsEnabled
	if c.state.NotificationsEnabled {
		c.startScheduleLocked(ctx)
	} else {
		c.stopScheduleLocked()
	}
	c.persist(ctx)
	c.logger.WithField("enabled", c.state.NotificationsEnabled).Info("Notifications toggled")
}

// RequestPermission asks the host for notification permission. A grant
// enables notifications, starts the schedule and sends a welcome message.
// Denial or a missing notifier leaves the feature off without retrying.
func (c *SessionController) RequestPermission(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestPermissionLocked(ctx)
}

// RolloverDay resets the daily counter once the last delivery is on a
// previous calendar day.
func (c *SessionController) RolloverDay(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.LastNotificationTime == nil || session.SameLocalDay(c.state.LastNotificationTime, c.now()) {
		return
	}
	if c.state.TodayCount == 0 {
		return
	}
	c.state.TodayCount = 0
	c.persist(ctx)
	c.logger.Info("Daily counter reset for new day")
}

// OfferInstall stores a deferred install offer, replacing any previous one.
func (c *SessionController) OfferInstall(offer notifier.InstallOffer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.installOffer = offer
}

// Install replays the stored offer once. The offer is discarded whatever
// the outcome. Without an offer it reports false.
func (c *SessionController) Install(ctx context.Context) (bool, error) {
	c.mu.Lock()
	offer := c.installOffer
	c.installOffer = nil
	c.mu.Unlock()

	if offer == nil {
		return false, nil
	}
	accepted, err := offer.Prompt(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("Install prompt failed")
		return false, err
	}
	c.logger.WithField("accepted", accepted).Info("Install prompt answered")
	return accepted, nil
}

func (c *SessionController) enterDashboardLocked(ctx context.Context) {
	c.view = ViewDashboard
	c.nextAffirmationLocked(ctx)
}

func (c *SessionController) nextAffirmationLocked(ctx context.Context) string {
	if len(c.state.SelectedCategories) == 0 {
		c.current = EmptySelectionMessage
		return c.current
	}
	c.current = c.catalog.RandomAffirmation(c.state.SelectedCategories, c.rng)
	c.state.RecordAffirmation(c.now())
	c.persist(ctx)
	return c.current
}

func (c *SessionController) permissionLocked(ctx context.Context) notifier.Permission {
	if c.notifier == nil {
		return notifier.PermissionDenied
	}
	perm, err := c.notifier.Permission(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to query notification permission")
		return notifier.PermissionDefault
	}
	return perm
}

func (c *SessionController) requestPermissionLocked(ctx context.Context) {
	if c.notifier == nil {
		c.logger.Debug("Notifications are not supported on this host")
		return
	}
	perm, err := c.notifier.RequestPermission(ctx)
	if err != nil {
		c.logger.WithError(err).Error("Error requesting notification permission")
		return
	}
	if perm != notifier.PermissionGranted {
		c.logger.WithField("permission", perm).Info("Notification permission not granted")
		return
	}

	c.state.NotificationsEnabled = true
	c.startScheduleLocked(ctx)
	c.persist(ctx)
	c.notify(ctx, WelcomeTitle, WelcomeBody)
}

func (c *SessionController) startScheduleLocked(ctx context.Context) {
	if !c.state.NotificationsEnabled || c.notifier == nil || c.timer == nil {
		return
	}
	c.stopScheduleLocked()

	gen := c.generation
	c.interval = c.state.NotificationFrequency.Interval(c.rng)
	c.cancelInterval = c.timer.Every(c.interval, func() {
		c.deliverScheduled(context.Background(), gen, NotificationTitle)
	})
	c.cancelWelcome = c.timer.After(WelcomeDelay, func() {
		c.deliverScheduled(context.Background(), gen, FirstNotificationTitle)
	})
	c.logger.WithFields(logrus.Fields{
		"frequency": c.state.NotificationFrequency,
		"interval":  c.interval.String(),
	}).Info("Notification schedule started")
}

func (c *SessionController) stopScheduleLocked() {
	if c.cancelInterval != nil {
		c.cancelInterval()
		c.cancelInterval = nil
	}
	if c.cancelWelcome != nil {
		c.cancelWelcome()
		c.cancelWelcome = nil
	}
	c.interval = 0
	c.generation++
}

// deliverScheduled is the timer callback for both the repeating and the
// one-shot job. A job that fired just before its schedule was replaced
// or stopped carries a stale generation and is dropped.
func (c *SessionController) deliverScheduled(ctx context.Context, gen uint64, title string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug("Scheduled tick dropped, schedule was replaced")
		return
	}

	if len(c.state.SelectedCategories) == 0 {
		c.logger.Debug("Scheduled tick skipped, no categories selected")
		return
	}
	text := c.catalog.RandomAffirmation(c.state.SelectedCategories, c.rng)
	c.notify(ctx, title, text)
	c.state.RecordAffirmation(c.now())
	c.persist(ctx)
}

func (c *SessionController) notify(ctx context.Context, title, body string) {
	err := c.notifier.Notify(ctx, notifier.Notification{Title: title, Body: body, Icon: c.icon})
	if err != nil {
		c.logger.WithError(err).WithField("title", title).Error("Failed to send notification")
	}
}

func (c *SessionController) load(ctx context.Context) session.State {
	data, err := c.store.Get(ctx, session.StateKey)
	if err != nil {
		if errors.Is(err, idb.ErrStateNotFound) {
			c.logger.Info("No saved state found, starting fresh")
		} else {
			c.logger.WithError(err).Error("Error loading state, using defaults")
		}
		return session.Defaults()
	}

	state, repaired := session.Decode(data, c.catalog.Has)
	if len(repaired) > 0 {
		c.logger.WithField("fields", repaired).Warn("Repaired malformed saved state")
	}
	return state
}

// persist writes the full state. Failures are logged; the session keeps
// running in memory.
func (c *SessionController) persist(ctx context.Context) {
	data, err := session.Encode(c.state)
	if err != nil {
		c.logger.WithError(err).Error("Error encoding state")
		return
	}
	if err := c.store.Put(ctx, session.StateKey, data); err != nil {
		c.logger.WithError(err).Error("Error saving state")
	}
}
