// Package notification fans a single Dispatch call out to an in-app
// notification row, an optional email (immediate, held for morning, or
// batched weekly, per the owner's preference) and a realtime event. All
// side effects are best-effort: a failed dispatch never fails the operation
// that triggered it.
package notification

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"

	"obnavi/backend/internal/config"
	"obnavi/backend/internal/logger"
	"obnavi/backend/internal/models"
)

// QueueMorning and QueueWeekly name the Redis-backed delivery queues.
const (
	QueueMorning = "morning"
	QueueWeekly  = "weekly"
)

// Store is the persistence slice the dispatcher needs.
type Store interface {
	GetUserByID(id string) (*models.User, error)
	CreateNotification(n *models.Notification) error
	EnqueueEmail(queue string, payload []byte) error
	DrainEmailQueue(queue string) ([][]byte, error)
	PublishUserEvent(userID string, payload []byte) error
}

// EmailSink delivers one email envelope. The real sink is the external
// delivery service; the default is a logging stub.
type EmailSink interface {
	Send(env EmailEnvelope) error
}

// EmailEnvelope is what rides the queues and reaches the sink.
type EmailEnvelope struct {
	UserID   string    `json:"userId"`
	Type     string    `json:"type"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	Link     string    `json:"link"`
	QueuedAt time.Time `json:"queuedAt"`
}

// LogSink logs envelopes instead of sending them.
type LogSink struct{}

// Send implements EmailSink.
func (LogSink) Send(env EmailEnvelope) error {
	logger.Log.Infof("email to %s: %s", env.UserID, env.Title)
	return nil
}

// Dispatcher routes notifications.
type Dispatcher struct {
	store Store
	sink  EmailSink
	loc   *time.Location

	// now is swappable in tests.
	now func() time.Time
}

// NewDispatcher builds a dispatcher. The sink may be nil, in which case
// emails are logged.
func NewDispatcher(store Store, sink EmailSink) *Dispatcher {
	if sink == nil {
		sink = LogSink{}
	}
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		logger.Log.Warnf("failed to load Asia/Tokyo, using local time: %v", err)
		loc = time.Local
	}
	return &Dispatcher{store: store, sink: sink, loc: loc, now: time.Now}
}

// Dispatch writes the in-app row, then routes email and realtime delivery.
// Errors are logged and swallowed.
func (d *Dispatcher) Dispatch(userID string, typ models.NotificationType, title, body, link string) {
	n := &models.Notification{
		UserID: userID,
		Type:   typ,
		Title:  title,
		Body:   body,
		Link:   link,
		Data:   contextData(link),
	}
	if err := d.store.CreateNotification(n); err != nil {
		logger.Log.Errorf("failed to write notification for %s: %v", userID, err)
		return
	}

	d.publishRealtime(userID, n)
	d.routeEmail(userID, typ, title, body, link)
}

// contextData builds the typed client payload for the row. Thread links
// carry the thread id so clients can route without parsing the link.
func contextData(link string) datatypes.JSON {
	if link == "" {
		return nil
	}
	ctx := map[string]string{"link": link}
	if tid := strings.TrimPrefix(link, "/messages/"); tid != link && tid != "" {
		ctx["threadId"] = tid
	}
	b, err := json.Marshal(ctx)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func (d *Dispatcher) publishRealtime(userID string, n *models.Notification) {
	payload, err := json.Marshal(map[string]interface{}{
		"event":        "notification.created",
		"notification": n,
	})
	if err != nil {
		return
	}
	if err := d.store.PublishUserEvent(userID, payload); err != nil {
		logger.Log.Debugf("realtime publish failed for %s: %v", userID, err)
	}
}

func (d *Dispatcher) routeEmail(userID string, typ models.NotificationType, title, body, link string) {
	user, err := d.store.GetUserByID(userID)
	if err != nil {
		logger.Log.Warnf("email routing: cannot load user %s: %v", userID, err)
		return
	}
	if user == nil {
		logger.Log.Warnf("email routing: user %s not found", userID)
		return
	}

	pref := user.EmailPreference
	if pref == models.EmailOff {
		return
	}

	env := EmailEnvelope{
		UserID:   userID,
		Type:     string(typ),
		Title:    title,
		Body:     body,
		Link:     link,
		QueuedAt: d.now(),
	}

	// Immediate sends during quiet hours are held for the morning flush.
	if pref == models.EmailImmediate && d.inQuietHours() {
		pref = models.EmailMorning
	}

	switch pref {
	case models.EmailImmediate:
		if err := d.sink.Send(env); err != nil {
			logger.Log.Warnf("immediate email to %s failed: %v", userID, err)
		}
	case models.EmailMorning:
		d.enqueue(QueueMorning, env)
	case models.EmailWeekly:
		d.enqueue(QueueWeekly, env)
	}
}

func (d *Dispatcher) enqueue(queue string, env EmailEnvelope) {
	payload, err := json.Marshal(env)
	if err != nil {
		return
	}
	if err := d.store.EnqueueEmail(queue, payload); err != nil {
		logger.Log.Warnf("failed to enqueue %s email for %s: %v", queue, env.UserID, err)
	}
}

func (d *Dispatcher) inQuietHours() bool {
	h := d.now().In(d.loc).Hour()
	return h >= config.QuietHoursStart || h < config.QuietHoursEnd
}

// Flush drains a delivery queue into the sink. Called by the scheduler.
func (d *Dispatcher) Flush(queue string) {
	payloads, err := d.store.DrainEmailQueue(queue)
	if err != nil {
		logger.Log.Errorf("failed to drain %s queue: %v", queue, err)
		return
	}
	for _, p := range payloads {
		var env EmailEnvelope
		if err := json.Unmarshal(p, &env); err != nil {
			logger.Log.Warnf("bad envelope on %s queue: %v", queue, err)
			continue
		}
		if err := d.sink.Send(env); err != nil {
			logger.Log.Warnf("queued email to %s failed: %v", env.UserID, err)
		}
	}
	if len(payloads) > 0 {
		logger.Log.Infof("flushed %d emails from %s queue", len(payloads), queue)
	}
}
