// Package detail drives the detail view of one selected item: it builds
// the view from a fresh read of the feedback store and applies the two
// mutations a visitor can make (reaction click, comment submit).
package detail

import (
	"context"
	"errors"
	"sync"
	"time"

	"playground/internal/feedback"
	"playground/internal/metrics"
	"playground/internal/models"

	"go.uber.org/zap"
)

var (
	ErrUnknownItem     = errors.New("detail: unknown item")
	ErrUnknownReaction = errors.New("detail: unknown reaction kind")
)

const (
	MsgEmptyComment = "If you want to leave a comment, please type a few words first."
	MsgCommentSaved = "Thank you — your comment is saved on this device."
)

// Catalog is the read-only source of items.
type Catalog interface {
	Find(id string) (models.Item, bool)
}

// Controller is safe for concurrent use. Mutations run one at a time, so two
// requests served by this process never interleave their read-modify-write.
// Other processes sharing the same storage are not covered.
type Controller struct {
	mu        sync.Mutex
	store     *feedback.Store
	catalog   Catalog
	reactions []models.ReactionKind
	now       func() time.Time
	loc       *time.Location
}

type Option func(*Controller)

// WithClock replaces time.Now for comment timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithReactions replaces the default reaction catalog.
func WithReactions(kinds []models.ReactionKind) Option {
	return func(c *Controller) { c.reactions = kinds }
}

// WithLocation sets the zone used for date labels.
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) { c.loc = loc }
}

func NewController(store *feedback.Store, catalog Catalog, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		catalog:   catalog,
		reactions: models.Reactions,
		now:       time.Now,
		loc:       time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Select builds the detail view for id from the current stored record.
func (c *Controller) Select(ctx context.Context, id string) (*Detail, error) {
	item, ok := c.catalog.Find(id)
	if !ok {
		return nil, ErrUnknownItem
	}
	rec := c.store.GetRecord(ctx, id)
	return c.buildDetail(item, rec), nil
}

// ReactionPatch is the one count that changed after a reaction click.
type ReactionPatch struct {
	ItemID string
	Kind   string
	Count  int
	// Saved is false when the store dropped the write. Count still shows the
	// incremented value, as the visitor saw it.
	Saved bool
}

// React increments kind on item id by one.
func (c *Controller) React(ctx context.Context, id, kind string) (ReactionPatch, error) {
	if _, ok := c.catalog.Find(id); !ok {
		return ReactionPatch{}, ErrUnknownItem
	}
	if _, ok := models.FindReaction(c.reactions, kind); !ok {
		return ReactionPatch{}, ErrUnknownReaction
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	rec := c.store.GetRecord(ctx, id)
	rec.Reactions[kind]++
	res := c.store.SetRecord(ctx, id, rec)

	metrics.ReactionsTotal.WithLabelValues(kind).Inc()
	zap.L().Debug("reaction added",
		zap.String("item", id), zap.String("kind", kind),
		zap.Int("count", rec.Reactions[kind]), zap.Bool("saved", res.Persisted))

	return ReactionPatch{ItemID: id, Kind: kind, Count: rec.Reactions[kind], Saved: res.Persisted}, nil
}

// CommentOutcome is the result of a comment submission.
type CommentOutcome struct {
	Accepted bool
	Message  string
	// Comment is the stored comment when Accepted.
	Comment models.Comment
	// Comments is the rebuilt list, newest first. Empty when not Accepted.
	Comments []CommentView
	Saved    bool
}

// SubmitComment validates raw and appends it to the comments of item id.
// Blank input is not an error: it yields an outcome with Accepted false and
// leaves the store untouched.
func (c *Controller) SubmitComment(ctx context.Context, id, raw string) (CommentOutcome, error) {
	if _, ok := c.catalog.Find(id); !ok {
		return CommentOutcome{}, ErrUnknownItem
	}

	text, ok := models.NormalizeCommentText(raw)
	if !ok {
		metrics.CommentsTotal.WithLabelValues("rejected").Inc()
		return CommentOutcome{Message: MsgEmptyComment}, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	rec := c.store.GetRecord(ctx, id)
	comment := models.Comment{Text: text, Timestamp: c.now().UnixMilli()}
	rec.Comments = append(rec.Comments, comment)
	res := c.store.SetRecord(ctx, id, rec)

	result := "saved"
	if !res.Persisted {
		result = "dropped"
	}
	metrics.CommentsTotal.WithLabelValues(result).Inc()
	zap.L().Debug("comment added", zap.String("item", id), zap.Int("len", len(text)), zap.Bool("saved", res.Persisted))

	return CommentOutcome{
		Accepted: true,
		Message:  MsgCommentSaved,
		Comment:  comment,
		Comments: c.commentViews(rec.Comments),
		Saved:    res.Persisted,
	}, nil
}
