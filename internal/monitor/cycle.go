package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"annwatch/internal/notify"
	"annwatch/internal/state"
)

// Config holds the settings for one monitoring cycle. The struct is decoupled
// from Viper so the controller is easy to construct and test on its own.
type Config struct {
	TargetURL         string
	Keywords          []string
	Threshold         float64
	ErrorThrottle     time.Duration
	ChannelID         string
	OwnerChatID       string
	MonitoringEnabled bool
}

// Controller orchestrates one run: fetch, extract, match, compare with the
// stored state, notify if new, then persist. Any step failing short-circuits
// to persistence so the state document always reflects the latest attempt.
type Controller struct {
	cfg       Config
	fetcher   Fetcher
	extractor Extractor
	matcher   *Matcher
	store     StateStore
	notifier  Notifier
	clock     Clock
	logger    *zap.Logger
}

// NewController wires the cycle dependencies together.
func NewController(
	cfg Config,
	fetcher Fetcher,
	extractor Extractor,
	store StateStore,
	notifier Notifier,
	clock Clock,
	logger *zap.Logger,
) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		cfg:       cfg,
		fetcher:   fetcher,
		extractor: extractor,
		matcher:   NewMatcher(cfg.Keywords, cfg.Threshold),
		store:     store,
		notifier:  notifier,
		clock:     clock,
		logger:    logger,
	}
}

// Run executes exactly one monitoring cycle. A cycle that completes with a
// recorded failure still returns nil; only a failure to persist the state
// document is returned as an error, since that would leave the status page
// lying about the run.
func (c *Controller) Run(ctx context.Context) error {
	log := c.logger.With(zap.String("run_id", uuid.NewString()))

	st, loadErr := c.store.Load()
	var cycleErr *CycleError
	if loadErr != nil {
		// Degraded but not fatal: continue on the default state and surface
		// the corruption in the persisted error fields.
		log.Warn("State document unreadable, proceeding with defaults", zap.Error(loadErr))
		cycleErr = asCycleError(loadErr, CategoryState)
	}
	st.MonitoringEnabled = c.cfg.MonitoringEnabled

	if !c.cfg.MonitoringEnabled {
		log.Info("Monitoring disabled, skipping fetch")
		now := c.clock.Now()
		st.LastRunTime = &now
		return c.persist(st, log)
	}

	if runErr := c.observe(ctx, &st, log); runErr != nil {
		cycleErr = runErr
	}

	now := c.clock.Now()
	st.LastRunTime = &now

	if cycleErr == nil {
		st.LastRunStatus = state.RunStatusSuccess
		st.ClearError()
		cyclesTotal.WithLabelValues(string(state.RunStatusSuccess)).Inc()
	} else {
		st.RecordError(cycleErr.Error())
		c.alertOwner(ctx, &st, cycleErr, now, log)
		cyclesTotal.WithLabelValues(string(state.RunStatusFailure)).Inc()
	}

	return c.persist(st, log)
}

// observe performs the fetch-extract-match-compare-notify pipeline, mutating
// st with any newly detected announcement. It returns the first error that
// aborted the pipeline.
func (c *Controller) observe(ctx context.Context, st *state.MonitorState, log *zap.Logger) *CycleError {
	page, err := c.fetcher.Fetch(ctx, c.cfg.TargetURL)
	if err != nil {
		log.Error("Fetch failed", zap.String("url", c.cfg.TargetURL), zap.Error(err))
		return asCycleError(err, CategoryFetch)
	}
	log.Info("Fetched target page",
		zap.Int("status", page.StatusCode),
		zap.Int("bytes", page.ContentLength()))

	candidates, err := c.extractor.Extract(page.Body)
	if err != nil {
		// Unparseable content degrades to an empty candidate set rather than
		// failing the cycle.
		log.Warn("Extraction failed, treating as zero candidates", zap.Error(err))
		candidates = nil
	}
	candidatesTotal.Add(float64(len(candidates)))
	log.Info("Extracted candidates", zap.Int("count", len(candidates)))

	match, ok := c.matcher.Best(candidates)
	if !ok {
		log.Info("No candidate matched the keyword set")
		return nil
	}
	log.Info("Keyword match",
		zap.Float64("score", match.Score),
		zap.String("text", truncate(match.Candidate.Text, 120)))

	if !c.isNew(match, st) {
		log.Info("Announcement already seen, skipping notification")
		return nil
	}

	now := c.clock.Now()
	st.LastAnnouncement = &state.Announcement{
		ID:            announcementID(match.Candidate),
		Text:          match.Candidate.Text,
		PDFURL:        match.Candidate.PDFURL,
		FirstDetected: now,
	}

	// Delivery failure does not roll back the announcement above; recording
	// it as seen prevents re-notification storms on a flaky channel.
	msg := notify.AnnouncementMessage(match.Candidate.Text, match.Candidate.PDFURL, c.cfg.TargetURL)
	if err := c.notifier.Send(ctx, c.cfg.ChannelID, msg); err != nil {
		log.Error("Announcement notification failed", zap.Error(err))
		return asCycleError(err, CategoryNotify)
	}
	notificationsTotal.WithLabelValues("announcement").Inc()
	log.Info("Announcement notification sent", zap.String("chat_id", c.cfg.ChannelID))
	return nil
}

// isNew reports whether the matched announcement differs from the stored one.
// Texts at or above the similarity threshold are judged to be the same
// announcement, so near-duplicate rewordings do not re-notify.
func (c *Controller) isNew(match Match, st *state.MonitorState) bool {
	if st.LastAnnouncement == nil {
		return true
	}
	return Similarity(match.Candidate.Text, st.LastAnnouncement.Text) < c.cfg.Threshold
}

// alertOwner sends the private error alert unless an identical signature was
// already alerted within the throttle window. The signature fields are only
// advanced on a successful send so a failed alert is retried next cycle.
func (c *Controller) alertOwner(ctx context.Context, st *state.MonitorState, cycleErr *CycleError, now time.Time, log *zap.Logger) {
	sig := cycleErr.Signature()
	if !c.shouldAlert(st, sig, now) {
		alertsThrottledTotal.Inc()
		log.Info("Owner alert suppressed by throttle", zap.String("signature", sig))
		return
	}

	msg := notify.ErrorAlertMessage(cycleErr.Error())
	if err := c.notifier.Send(ctx, c.cfg.OwnerChatID, msg); err != nil {
		log.Warn("Owner alert delivery failed", zap.Error(err))
		return
	}
	notificationsTotal.WithLabelValues("owner_alert").Inc()
	st.LastErrorSignature = sig
	st.LastErrorTime = &now
}

func (c *Controller) shouldAlert(st *state.MonitorState, sig string, now time.Time) bool {
	if st.LastErrorSignature == "" || st.LastErrorSignature != sig {
		return true
	}
	if st.LastErrorTime == nil {
		return true
	}
	return now.Sub(*st.LastErrorTime) >= c.cfg.ErrorThrottle
}

func (c *Controller) persist(st state.MonitorState, log *zap.Logger) error {
	if err := c.store.Save(st); err != nil {
		log.Error("Failed to persist state document", zap.Error(err))
		return fmt.Errorf("persist state: %w", err)
	}
	log.Info("State persisted", zap.String("status", string(st.LastRunStatus)))
	return nil
}

// announcementID mirrors the status page contract: the announcement text,
// plus the PDF URL when one is attached.
func announcementID(c Candidate) string {
	if c.PDFURL != "" {
		return c.Text + "|" + c.PDFURL
	}
	return c.Text
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
