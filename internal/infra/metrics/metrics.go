package metrics

import "sync/atomic"

type Counters struct {
	WebhooksReceived    uint64
	WebhooksRejected    uint64
	WebhooksIgnored     uint64
	NotificationsSent   uint64
	NotificationsFailed uint64
	DuplicatesSkipped   uint64
	PollRuns            uint64
	PollFailures        uint64
}

func (c *Counters) IncWebhookReceived() {
	atomic.AddUint64(&c.WebhooksReceived, 1)
}

func (c *Counters) IncWebhookRejected() {
	atomic.AddUint64(&c.WebhooksRejected, 1)
}

func (c *Counters) IncWebhookIgnored() {
	atomic.AddUint64(&c.WebhooksIgnored, 1)
}

func (c *Counters) IncSent() {
	atomic.AddUint64(&c.NotificationsSent, 1)
}

func (c *Counters) IncFailed() {
	atomic.AddUint64(&c.NotificationsFailed, 1)
}

func (c *Counters) IncDuplicate() {
	atomic.AddUint64(&c.DuplicatesSkipped, 1)
}

func (c *Counters) IncPollRun() {
	atomic.AddUint64(&c.PollRuns, 1)
}

func (c *Counters) IncPollFailure() {
	atomic.AddUint64(&c.PollFailures, 1)
}

type Snapshot struct {
	WebhooksReceived    uint64 `json:"webhooksReceived"`
	WebhooksRejected    uint64 `json:"webhooksRejected"`
	WebhooksIgnored     uint64 `json:"webhooksIgnored"`
	NotificationsSent   uint64 `json:"notificationsSent"`
	NotificationsFailed uint64 `json:"notificationsFailed"`
	DuplicatesSkipped   uint64 `json:"duplicatesSkipped"`
	PollRuns            uint64 `json:"pollRuns"`
	PollFailures        uint64 `json:"pollFailures"`
}

func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		WebhooksReceived:    atomic.LoadUint64(&c.WebhooksReceived),
		WebhooksRejected:    atomic.LoadUint64(&c.WebhooksRejected),
		WebhooksIgnored:     atomic.LoadUint64(&c.WebhooksIgnored),
		NotificationsSent:   atomic.LoadUint64(&c.NotificationsSent),
		NotificationsFailed: atomic.LoadUint64(&c.NotificationsFailed),
		DuplicatesSkipped:   atomic.LoadUint64(&c.DuplicatesSkipped),
		PollRuns:            atomic.LoadUint64(&c.PollRuns),
		PollFailures:        atomic.LoadUint64(&c.PollFailures),
	}
}
