package engine

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/udisondev/balatrogo/internal/card"
	"github.com/udisondev/balatrogo/internal/effect"
	"github.com/udisondev/balatrogo/internal/joker"
)

const (
	// DefaultMaxRetriggers caps the repetitions retriggers may add within one
	// evaluation.
	DefaultMaxRetriggers = 100

	// maxValidRetrigger is the largest per-effect retrigger ValidateEffects accepts.
	maxValidRetrigger = 10

	// KillscreenMessage is appended when the score math leaves the finite range.
	KillscreenMessage = "KILLSCREEN"
)

// ErrNoState is returned when the evaluation context carries no state store.
var ErrNoState = errors.New("engine: context has no state store")

// CardScoring decides how often card-scored callbacks fire during ScoreHand.
type CardScoring uint8

const (
	// CardScoringPerCard fires once for every scoring card.
	CardScoringPerCard CardScoring = iota
	// CardScoringPerPass fires once per scoring pass, with the first scoring card.
	CardScoringPerPass
)

func (m CardScoring) String() string {
	switch m {
	case CardScoringPerCard:
		return "per_card"
	case CardScoringPerPass:
		return "per_pass"
	default:
		return fmt.Sprintf("card_scoring(%d)", uint8(m))
	}
}

// ParseCardScoring parses the names produced by CardScoring.String.
func ParseCardScoring(s string) (CardScoring, error) {
	switch s {
	case "per_card":
		return CardScoringPerCard, nil
	case "per_pass":
		return CardScoringPerPass, nil
	default:
		return 0, fmt.Errorf("unknown card scoring mode %q", s)
	}
}

// Options configure a Processor for one session.
type Options struct {
	Policy Policy
	// CacheEnabled memoizes capability shapes. Results do not depend on it.
	CacheEnabled bool
	// OrderByPriority stable-sorts Gameplay jokers by Priority, lowest first.
	// Other jokers count as priority 0.
	OrderByPriority bool
	// MaxRetriggers caps added repetitions per evaluation. Zero means
	// DefaultMaxRetriggers.
	MaxRetriggers int
	// Diagnostics adds one message per contributing joker.
	Diagnostics bool
	// ValidateEffects reports suspicious effects as messages.
	ValidateEffects bool
	CardScoring     CardScoring
}

// DefaultOptions returns the session defaults: Sum policy, cache on.
func DefaultOptions() Options {
	return Options{
		Policy:        PolicySum,
		CacheEnabled:  true,
		MaxRetriggers: DefaultMaxRetriggers,
		CardScoring:   CardScoringPerCard,
	}
}

// Result is the aggregate contribution of the owned jokers.
type Result struct {
	Chips          int
	Mult           int
	Money          int
	MultMultiplier float64
	Messages       []string

	HandSizeMod       int
	DiscardMod        int
	SellValueIncrease int

	// Destroyed lists jokers that asked to destroy themselves.
	Destroyed      []joker.ID
	DestroyOthers  []string
	TransformCards []card.Card

	// Processed counts non-empty contributions.
	Processed  int
	Retriggers int
	Killscreen bool
}

// Score applies the result to a base chips/mult pair.
func (r Result) Score(baseChips, baseMult int) float64 {
	return float64(baseChips+r.Chips) * float64(baseMult+r.Mult) * r.MultMultiplier
}

// Processor evaluates joker collections. A Processor holds no per-call state
// and may be shared; the jokers' mutable state lives in Context.States.
type Processor struct {
	opts       Options
	reduce     reducer
	classifier *Classifier
}

// NewProcessor validates opts and selects the reducer once.
func NewProcessor(opts Options) (*Processor, error) {
	reduce, err := opts.Policy.reducer()
	if err != nil {
		return nil, err
	}
	switch opts.CardScoring {
	case CardScoringPerCard, CardScoringPerPass:
	default:
		return nil, fmt.Errorf("unknown card scoring mode %s", opts.CardScoring)
	}
	if opts.MaxRetriggers < 0 {
		return nil, fmt.Errorf("max retriggers must not be negative, got %d", opts.MaxRetriggers)
	}
	if opts.MaxRetriggers == 0 {
		opts.MaxRetriggers = DefaultMaxRetriggers
	}

	return &Processor{
		opts:       opts,
		reduce:     reduce,
		classifier: NewClassifier(opts.CacheEnabled),
	}, nil
}

// Options returns the effective options.
func (p *Processor) Options() Options {
	return p.opts
}

// Classifier returns the processor's capability classifier.
func (p *Processor) Classifier() *Classifier {
	return p.classifier
}

// Metrics is shorthand for Classifier().Metrics().
func (p *Processor) Metrics() Metrics {
	return p.classifier.Metrics()
}

// EvaluateHandPlayed evaluates the hand-played callbacks.
func (p *Processor) EvaluateHandPlayed(jokers []joker.Joker, ctx *joker.Context, hand *card.Hand) (Result, error) {
	return p.Evaluate(jokers, ctx, HandPlayed(hand))
}

// EvaluateCardScored evaluates the card-scored callbacks for one card.
func (p *Processor) EvaluateCardScored(jokers []joker.Joker, ctx *joker.Context, c card.Card) (Result, error) {
	return p.Evaluate(jokers, ctx, CardScored(nil, c))
}

// Evaluate delivers the scaling events implied by t, then evaluates every
// joker for t in stored (or priority) order and reduces the contributions.
// The only error is an unusable state store.
func (p *Processor) Evaluate(jokers []joker.Joker, ctx *joker.Context, t Trigger) (Result, error) {
	if err := checkContext(ctx); err != nil {
		return Result{}, err
	}
	for _, ev := range t.events() {
		if err := p.Dispatch(jokers, ctx, ev); err != nil {
			return Result{}, err
		}
	}
	return p.run(jokers, ctx, []Trigger{t})
}

// ScoreHand runs one scoring pass: hand-played once, then card-scored per
// the CardScoring mode, reduced together into a single Result.
func (p *Processor) ScoreHand(jokers []joker.Joker, ctx *joker.Context, hand *card.Hand) (Result, error) {
	if err := checkContext(ctx); err != nil {
		return Result{}, err
	}
	if hand == nil {
		return Result{}, errors.New("engine: scoring a nil hand")
	}

	if err := p.Dispatch(jokers, ctx, joker.HandPlayed(hand.Rank)); err != nil {
		return Result{}, err
	}

	triggers := []Trigger{HandPlayed(hand)}
	scoring := hand.ScoringCards()
	switch p.opts.CardScoring {
	case CardScoringPerCard:
		for _, c := range scoring {
			triggers = append(triggers, CardScored(hand, c))
		}
	case CardScoringPerPass:
		if len(scoring) > 0 {
			triggers = append(triggers, CardScored(hand, scoring[0]))
		}
	}
	return p.run(jokers, ctx, triggers)
}

// Dispatch delivers ev to every joker listening for events. All listeners
// run; their errors are joined.
func (p *Processor) Dispatch(jokers []joker.Joker, ctx *joker.Context, ev joker.Event) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	var errs []error
	for _, j := range jokers {
		if j == nil || !p.classifier.Classify(j).Caps.Has(joker.CapEvents) {
			continue
		}
		l, ok := j.(joker.EventListener)
		if !ok {
			continue
		}
		if err := l.OnEvent(ctx, ev); err != nil {
			errs = append(errs, fmt.Errorf("joker %s: %w", j.ID(), err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("dispatching %s: %w", ev, err)
	}
	return nil
}

func checkContext(ctx *joker.Context) error {
	if ctx == nil || ctx.States == nil {
		return ErrNoState
	}
	return ctx.States.Err()
}

type entry struct {
	j        joker.Joker
	shape    Shape
	priority int
}

// order classifies the jokers and applies the optional priority sort.
func (p *Processor) order(jokers []joker.Joker, stage joker.Stage) []entry {
	entries := make([]entry, 0, len(jokers))
	for _, j := range jokers {
		if j == nil {
			continue
		}
		en := entry{j: j, shape: p.classifier.Classify(j)}
		if p.opts.OrderByPriority && en.shape.Specialized() {
			if g, ok := j.(joker.Gameplay); ok {
				en.priority = g.Priority(stage)
			}
		}
		entries = append(entries, en)
	}

	if p.opts.OrderByPriority {
		slices.SortStableFunc(entries, func(a, b entry) int {
			return cmp.Compare(a.priority, b.priority)
		})
	}
	return entries
}

func (p *Processor) run(jokers []joker.Joker, ctx *joker.Context, triggers []Trigger) (Result, error) {
	entries := p.order(jokers, ctx.Stage)

	ev := evaluation{p: p, ctx: ctx}
	for _, t := range triggers {
		for _, en := range entries {
			ev.apply(en, t)
		}
	}

	if err := ctx.States.Err(); err != nil {
		return Result{}, fmt.Errorf("evaluating jokers: %w", err)
	}
	return ev.result(), nil
}

// invoke obtains one effect. ok is false when CanTrigger filtered the joker.
// The specialized path yields the same record as the unified callback: an
// EffectProcessor supplies it whole, otherwise Process overrides the
// additive fields of the callback's effect.
func (p *Processor) invoke(en entry, ctx *joker.Context, t Trigger) (e effect.Effect, ok bool) {
	if t.scoring() && en.shape.Specialized() {
		if g, isGameplay := en.j.(joker.Gameplay); isGameplay {
			pc := processContext(ctx, t)
			if !g.CanTrigger(ctx.Stage, pc) {
				return effect.None, false
			}
			p.classifier.recordDispatch(true)
			if ep, full := en.j.(joker.EffectProcessor); full {
				return ep.ProcessEffect(ctx.Stage, pc), true
			}
			return overlay(t.invoke(en.j, ctx), g.Process(ctx.Stage, pc)), true
		}
	}

	p.classifier.recordDispatch(false)
	return t.invoke(en.j, ctx), true
}

func processContext(ctx *joker.Context, t Trigger) *joker.ProcessContext {
	pc := &joker.ProcessContext{
		Game:  ctx,
		Score: joker.HandScore{Chips: ctx.Chips, Mult: float64(ctx.Mult)},
		Held:  ctx.Held,
		Hand:  t.Hand,
	}
	if t.Hand != nil {
		pc.Played = t.Hand.Cards
	}
	if t.Kind == TriggerCardScored {
		c := t.Card
		pc.Card = &c
	}
	return pc
}

// overlay replaces the additive fields of e with r and keeps the rest.
func overlay(e effect.Effect, r joker.ProcessResult) effect.Effect {
	e.Chips = r.ChipsAdded
	e.Mult = int(r.MultAdded)
	if r.Retriggered && e.Retrigger == 0 {
		e.Retrigger = 1
	}
	return e
}

// expand applies 1+retrigger repetitions: additive values scale, the
// multiplier compounds once per repetition. An absent (0.0) multiplier stays
// absent.
func expand(e effect.Effect, reps int) effect.Effect {
	out := e
	out.Chips = e.Chips * reps
	out.Mult = e.Mult * reps
	out.Money = e.Money * reps
	if e.HasMultiplier() {
		m := 1.0
		for range reps {
			m *= e.MultMultiplier
		}
		out.MultMultiplier = m
	}
	out.Retrigger = uint(reps - 1)
	return out
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// evaluation accumulates one Evaluate/ScoreHand call.
type evaluation struct {
	p   *Processor
	ctx *joker.Context

	contributions []effect.Effect
	destroyed     []joker.ID
	diagnostics   []string
	warnings      []string
	retriggers    int
	capped        bool
}

func (ev *evaluation) apply(en entry, t Trigger) {
	e, ok := ev.p.invoke(en, ev.ctx, t)
	if !ok {
		return
	}

	id := en.j.ID()
	if ev.p.opts.ValidateEffects {
		ev.validate(id, e)
	}
	if e.IsEmpty() {
		return
	}

	c := expand(e, 1+ev.allow(e.Retrigger))
	ev.contributions = append(ev.contributions, c)

	if e.DestroySelf && !slices.Contains(ev.destroyed, id) {
		ev.destroyed = append(ev.destroyed, id)
	}
	if ev.p.opts.Diagnostics {
		ev.diagnostics = append(ev.diagnostics, fmt.Sprintf("%s: %s", en.j.Name(), c.Describe()))
	}
	if IsDebugEnabled() {
		slog.Debug("joker evaluated",
			"joker", id,
			"trigger", t.Kind,
			"specialized", en.shape.Specialized(),
			"effect", c.Describe())
	}
}

// allow grants up to r retriggers from the evaluation budget. The budget is
// never negative, so the comparison stays in uint.
func (ev *evaluation) allow(r uint) int {
	remaining := uint(ev.p.opts.MaxRetriggers - ev.retriggers)
	if r > remaining {
		r = remaining
		ev.capped = true
	}
	ev.retriggers += int(r)
	return int(r)
}

func (ev *evaluation) validate(id joker.ID, e effect.Effect) {
	if e.MultMultiplier < 0 {
		ev.warn(fmt.Sprintf("%s: mult multiplier %g cannot be negative", id, e.MultMultiplier))
	}
	if e.Retrigger > maxValidRetrigger {
		ev.warn(fmt.Sprintf("%s: %d retriggers exceed the maximum of %d", id, e.Retrigger, maxValidRetrigger))
	}
}

func (ev *evaluation) warn(msg string) {
	slog.Warn("invalid joker effect", "reason", msg)
	ev.warnings = append(ev.warnings, msg)
}

func (ev *evaluation) result() Result {
	agg := ev.p.reduce(ev.contributions)

	r := Result{
		Chips:             agg.Chips,
		Mult:              agg.Mult,
		Money:             agg.Money,
		MultMultiplier:    agg.Multiplier(),
		HandSizeMod:       agg.HandSizeMod,
		DiscardMod:        agg.DiscardMod,
		SellValueIncrease: agg.SellValueIncrease,
		Destroyed:         ev.destroyed,
		DestroyOthers:     agg.DestroyOthers,
		TransformCards:    agg.TransformCards,
		Processed:         len(ev.contributions),
		Retriggers:        ev.retriggers,
		Messages:          make([]string, 0, len(ev.diagnostics)+len(ev.warnings)),
	}

	r.Messages = append(r.Messages, ev.diagnostics...)
	if agg.Message != "" {
		r.Messages = append(r.Messages, agg.Message)
	}
	r.Messages = append(r.Messages, ev.warnings...)

	if ev.capped {
		slog.Warn("retrigger limit reached", "limit", ev.p.opts.MaxRetriggers)
		r.Messages = append(r.Messages, fmt.Sprintf("retrigger limit of %d reached", ev.p.opts.MaxRetriggers))
	}

	score := r.Score(ev.ctx.Chips, ev.ctx.Mult)
	if !finite(r.MultMultiplier) || !finite(score) {
		slog.Warn("score is not finite", "mult_multiplier", r.MultMultiplier, "score", score)
		r.Killscreen = true
		r.Messages = append(r.Messages, KillscreenMessage)
	}
	return r
}
