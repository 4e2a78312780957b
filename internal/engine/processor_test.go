package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/balatrogo/internal/card"
	"github.com/udisondev/balatrogo/internal/catalog"
	"github.com/udisondev/balatrogo/internal/effect"
	"github.com/udisondev/balatrogo/internal/joker"
	"github.com/udisondev/balatrogo/internal/state"
)

func pairHand(cards ...card.Card) *card.Hand {
	return card.NewHand(card.OnePair, cards...)
}

func TestEvaluateHandPlayed_EmptyCollection(t *testing.T) {
	p := mustProcessor(t, DefaultOptions())

	r, err := p.EvaluateHandPlayed(nil, newContext(), pairHand())
	require.NoError(t, err)

	assert.Equal(t, 0, r.Chips)
	assert.Equal(t, 0, r.Mult)
	assert.Equal(t, 0, r.Money)
	assert.Equal(t, 1.0, r.MultMultiplier)
	assert.NotNil(t, r.Messages)
	assert.Empty(t, r.Messages)
	assert.False(t, r.Killscreen)
}

func TestEvaluateHandPlayed_SumIsOrderIndependent(t *testing.T) {
	jokers := []joker.Joker{
		onHand("a", effect.Effect{Chips: 30, Mult: 4}),
		onHand("b", effect.Effect{Mult: 7, Money: 2}),
		onHand("c", effect.Effect{Chips: 5, Money: -1}.WithRetrigger(1)),
		onHand("d", effect.XMult(1.5)),
	}
	p := mustProcessor(t, DefaultOptions())

	want, err := p.EvaluateHandPlayed(jokers, newContext(), pairHand())
	require.NoError(t, err)

	for _, perm := range permutations(jokers) {
		got, err := p.EvaluateHandPlayed(perm, newContext(), pairHand())
		require.NoError(t, err)
		assert.Equal(t, want.Chips, got.Chips)
		assert.Equal(t, want.Mult, got.Mult)
		assert.Equal(t, want.Money, got.Money)
		assert.InDelta(t, want.MultMultiplier, got.MultMultiplier, 1e-12)
	}
	assert.Equal(t, 40, want.Chips)
	assert.Equal(t, 11, want.Mult)
	assert.Equal(t, 0, want.Money)
}

func TestEvaluateHandPlayed_ZeroMultiplierIsAbsent(t *testing.T) {
	p := mustProcessor(t, DefaultOptions())

	r, err := p.EvaluateHandPlayed([]joker.Joker{
		onHand("doubler", effect.XMult(2.0)),
		onHand("zero", effect.Effect{Mult: 1, MultMultiplier: 0}),
	}, newContext(), pairHand())
	require.NoError(t, err)
	assert.Equal(t, 2.0, r.MultMultiplier)
	assert.Equal(t, 1, r.Mult)

	// A bare 0.0 multiplier is an empty effect and does not participate.
	r, err = p.EvaluateHandPlayed([]joker.Joker{
		onHand("zero", effect.XMult(0)),
	}, newContext(), pairHand())
	require.NoError(t, err)
	assert.Equal(t, 1.0, r.MultMultiplier)
	assert.Zero(t, r.Processed)
}

func TestEvaluateHandPlayed_RetriggerRepeats(t *testing.T) {
	for r := range uint(3) {
		t.Run(effect.Mult(3).WithRetrigger(r).Describe(), func(t *testing.T) {
			p := mustProcessor(t, DefaultOptions())

			res, err := p.EvaluateHandPlayed([]joker.Joker{
				onHand("repeat", effect.Effect{Mult: 3, Chips: 10, Money: 1}.WithRetrigger(r)),
			}, newContext(), pairHand())
			require.NoError(t, err)

			reps := int(r) + 1
			assert.Equal(t, 3*reps, res.Mult)
			assert.Equal(t, 10*reps, res.Chips)
			assert.Equal(t, reps, res.Money)
			assert.Equal(t, int(r), res.Retriggers)
		})
	}
}

func TestEvaluateHandPlayed_RetriggerCompoundsMultiplier(t *testing.T) {
	p := mustProcessor(t, DefaultOptions())

	r, err := p.EvaluateHandPlayed([]joker.Joker{
		onHand("x2", effect.XMult(2).WithRetrigger(2)),
	}, newContext(), pairHand())
	require.NoError(t, err)
	assert.Equal(t, 8.0, r.MultMultiplier)
}

func TestEvaluateHandPlayed_MultipliersMultiply(t *testing.T) {
	p := mustProcessor(t, DefaultOptions())

	r, err := p.EvaluateHandPlayed([]joker.Joker{
		onHand("x2", effect.XMult(2.0)),
		onHand("x1.5", effect.XMult(1.5)),
	}, newContext(), pairHand())
	require.NoError(t, err)
	assert.InDelta(t, 3.0, r.MultMultiplier, 1e-12)
	assert.Zero(t, r.Chips)
	assert.Zero(t, r.Mult)
}

func TestEvaluateHandPlayed_Killscreen(t *testing.T) {
	p := mustProcessor(t, DefaultOptions())

	r, err := p.EvaluateHandPlayed([]joker.Joker{
		onHand("inf", effect.XMult(math.Inf(1))),
		onHand("mult", effect.Mult(4)),
	}, newContext(), pairHand())
	require.NoError(t, err)

	assert.True(t, math.IsInf(r.MultMultiplier, 1))
	assert.True(t, r.Killscreen)
	assert.Contains(t, r.Messages, KillscreenMessage)
	assert.Equal(t, 4, r.Mult)
}

func TestEvaluateHandPlayed_KillscreenOnDerivedScore(t *testing.T) {
	p := mustProcessor(t, DefaultOptions())
	ctx := newContext()
	ctx.Chips = math.MaxInt64 / 2
	ctx.Mult = math.MaxInt64 / 2

	r, err := p.EvaluateHandPlayed([]joker.Joker{
		onHand("huge", effect.XMult(math.MaxFloat64)),
	}, ctx, pairHand())
	require.NoError(t, err)
	assert.True(t, r.Killscreen)
}

func TestScoreHand_SingleScoringCard(t *testing.T) {
	p := mustProcessor(t, DefaultOptions())
	jokers := []joker.Joker{
		onHand("hand", effect.Effect{Chips: 5, Mult: 3, Money: 1}),
		onCard("card", effect.Effect{Chips: 1, Mult: 1}),
	}

	r, err := p.ScoreHand(jokers, newContext(), card.NewHand(card.HighCard, card.New(card.Ace, card.Spade)))
	require.NoError(t, err)

	assert.Equal(t, 6, r.Chips)
	assert.Equal(t, 4, r.Mult)
	assert.Equal(t, 1, r.Money)
	assert.Equal(t, 1.0, r.MultMultiplier)
}

func TestScoreHand_CardScoredFiresPerCard(t *testing.T) {
	jokers := []joker.Joker{
		onHand("hand", effect.Effect{Chips: 5, Mult: 3, Money: 1}),
		onCard("card", effect.Effect{Chips: 1, Mult: 1}),
	}
	hand := pairHand(card.New(card.Nine, card.Spade), card.New(card.Nine, card.Heart))

	perCard := mustProcessor(t, DefaultOptions())
	r, err := perCard.ScoreHand(jokers, newContext(), hand)
	require.NoError(t, err)
	assert.Equal(t, 7, r.Chips)
	assert.Equal(t, 5, r.Mult)
	assert.Equal(t, 1, r.Money)

	opts := DefaultOptions()
	opts.CardScoring = CardScoringPerPass
	perPass := mustProcessor(t, opts)
	r, err = perPass.ScoreHand(jokers, newContext(), hand)
	require.NoError(t, err)
	assert.Equal(t, 6, r.Chips)
	assert.Equal(t, 4, r.Mult)
	assert.Equal(t, 1, r.Money)
}

func TestScoreHand_OnlyScoringCardsFire(t *testing.T) {
	p := mustProcessor(t, DefaultOptions())
	nine := card.New(card.Nine, card.Spade)
	hand := pairHand(nine, card.New(card.Nine, card.Club), card.New(card.Two, card.Heart))
	hand.Scoring = hand.Cards[:2]

	r, err := p.ScoreHand([]joker.Joker{onCard("card", effect.Chips(10))}, newContext(), hand)
	require.NoError(t, err)
	assert.Equal(t, 20, r.Chips)
}

func TestEvaluate_CacheDoesNotChangeResults(t *testing.T) {
	build := func() []joker.Joker {
		trousers, err := joker.NewScaling(
			joker.NewBase("trousers", "Trousers", "", joker.Uncommon, 6),
			joker.ScalingConfig{
				Trigger:   joker.Condition{Kind: joker.EventHandPlayed, Rank: card.OnePair},
				Effect:    joker.ScaleMult,
				Increment: 2,
			})
		require.NoError(t, err)
		return []joker.Joker{
			onHand("plain", effect.Effect{Chips: 20, Mult: 2}),
			newGameplay("gameplay", 0, 15),
			onCard("cards", effect.Mult(1).WithRetrigger(1)),
			trousers,
			joker.NewAdapter(onHand("adapted", effect.XMult(1.5))),
		}
	}
	hand := pairHand(card.New(card.King, card.Spade), card.New(card.King, card.Diamond))

	run := func(cache bool) ([]Result, Metrics) {
		opts := DefaultOptions()
		opts.CacheEnabled = cache
		p := mustProcessor(t, opts)
		ctx := newContext()
		jokers := build()

		var results []Result
		for range 3 {
			r, err := p.ScoreHand(jokers, ctx, hand)
			require.NoError(t, err)
			results = append(results, r)
		}
		return results, p.Metrics()
	}

	cached, warm := run(true)
	uncached, cold := run(false)

	assert.Equal(t, cached, uncached)
	assert.Positive(t, warm.WarmHits)
	assert.Zero(t, cold.WarmHits)
	assert.Equal(t, warm.TotalDispatches(), cold.TotalDispatches())
	assert.Equal(t, 4, cached[2].Mult-cached[0].Mult, "scaling joker grows by 2 per pair")
}

func TestEvaluate_GameplayPath(t *testing.T) {
	p := mustProcessor(t, DefaultOptions())

	var calls int
	blocked := newGameplay("blocked", 0, 100)
	blocked.allow = false
	blocked.processed = &calls

	active := newGameplay("active", 0, 0)
	active.result = joker.ProcessResult{ChipsAdded: 10, MultAdded: 2.9, Retriggered: true}

	r, err := p.EvaluateHandPlayed([]joker.Joker{blocked, active, onHand("legacy", effect.Mult(1))}, newContext(), pairHand())
	require.NoError(t, err)

	assert.Zero(t, calls, "CanTrigger must filter before Process")
	assert.Equal(t, 20, r.Chips)
	assert.Equal(t, 5, r.Mult)
	assert.Equal(t, 1, r.Retriggers)

	m := p.Metrics()
	assert.Equal(t, uint64(1), m.SpecializedDispatches)
	assert.Equal(t, uint64(1), m.LegacyDispatches)
	assert.InDelta(t, 0.5, m.SpecializedRatio(), 1e-12)
}

func TestEvaluateHandPlayed_AdapterKeepsFullEffect(t *testing.T) {
	joker.RegisterLegacyProfile("full_effect", joker.LegacyProfile{Gameplay: true})
	legacy := onHand("full_effect", effect.Effect{
		Mult:           1,
		Money:          3,
		MultMultiplier: 2,
		Retrigger:      2,
		Message:        "Doubled",
	})

	unified, err := mustProcessor(t, DefaultOptions()).EvaluateHandPlayed([]joker.Joker{legacy}, newContext(), pairHand())
	require.NoError(t, err)

	p := mustProcessor(t, DefaultOptions())
	adapted, err := p.EvaluateHandPlayed([]joker.Joker{joker.NewAdapter(legacy)}, newContext(), pairHand())
	require.NoError(t, err)

	assert.Equal(t, 3, unified.Mult)
	assert.Equal(t, 9, unified.Money)
	assert.InDelta(t, 8.0, unified.MultMultiplier, 1e-12)
	assert.Equal(t, 2, unified.Retriggers)
	assert.Equal(t, unified, adapted)
	assert.Equal(t, uint64(1), p.Metrics().SpecializedDispatches)
}

func TestEvaluateCardScored_AdapterKeepsFullEffect(t *testing.T) {
	joker.RegisterLegacyProfile("full_card_effect", joker.LegacyProfile{Gameplay: true})
	legacy := onCard("full_card_effect", effect.Effect{
		Chips:          5,
		DestroySelf:    true,
		DestroyOthers:  []string{"joker"},
		TransformCards: []card.Card{card.New(card.Ace, card.Spade)},
		Message:        "Gone",
	})
	c := card.New(card.Seven, card.Heart)

	unified, err := mustProcessor(t, DefaultOptions()).EvaluateCardScored([]joker.Joker{legacy}, newContext(), c)
	require.NoError(t, err)
	adapted, err := mustProcessor(t, DefaultOptions()).EvaluateCardScored([]joker.Joker{joker.NewAdapter(legacy)}, newContext(), c)
	require.NoError(t, err)

	assert.Equal(t, []joker.ID{"full_card_effect"}, unified.Destroyed)
	assert.Equal(t, unified, adapted)
}

func TestScoreHand_FastPathMatchesUnifiedPath(t *testing.T) {
	joker.RegisterLegacyProfile("greedy_money", joker.LegacyProfile{Gameplay: true})

	mustCreate := func(id joker.ID) joker.Joker {
		j, err := catalog.Create(id)
		require.NoError(t, err)
		return j
	}

	tests := []struct {
		name    string
		fast    joker.Joker
		unified joker.Joker
	}{
		{
			name:    "money on the callback",
			fast:    newDual("dual_money", effect.Effect{Chips: 10, Mult: 2, Money: 4}),
			unified: unifiedOnly{newDual("dual_money", effect.Effect{Chips: 10, Mult: 2, Money: 4})},
		},
		{
			name:    "multiplier on the callback",
			fast:    newDual("dual_xmult", effect.Effect{Mult: 3, MultMultiplier: 1.5}),
			unified: unifiedOnly{newDual("dual_xmult", effect.Effect{Mult: 3, MultMultiplier: 1.5})},
		},
		{
			name:    "retrigger above one",
			fast:    newDual("dual_retrigger", effect.Chips(5).WithRetrigger(3)),
			unified: unifiedOnly{newDual("dual_retrigger", effect.Chips(5).WithRetrigger(3))},
		},
		{
			name:    "destroy and message",
			fast:    newDual("dual_destroy", effect.Effect{Mult: 1, DestroySelf: true, Message: "Bye"}),
			unified: unifiedOnly{newDual("dual_destroy", effect.Effect{Mult: 1, DestroySelf: true, Message: "Bye"})},
		},
		{
			name:    "adapted suit joker with money",
			fast:    joker.NewAdapter(onCard("greedy_money", effect.Effect{Mult: 3, Money: 1})),
			unified: onCard("greedy_money", effect.Effect{Mult: 3, Money: 1}),
		},
		{
			name:    "catalog face joker",
			fast:    mustCreate("scary_face"),
			unified: unifiedOnly{mustCreate("scary_face")},
		},
		{
			name:    "catalog greedy joker",
			fast:    joker.NewAdapter(mustCreate("greedy_joker")),
			unified: mustCreate("greedy_joker"),
		},
	}

	hand := pairHand(card.New(card.King, card.Diamond), card.New(card.King, card.Heart))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fastProc := mustProcessor(t, DefaultOptions())
			fast, err := fastProc.ScoreHand([]joker.Joker{tt.fast}, newContext(), hand)
			require.NoError(t, err)

			unifiedProc := mustProcessor(t, DefaultOptions())
			unified, err := unifiedProc.ScoreHand([]joker.Joker{tt.unified}, newContext(), hand)
			require.NoError(t, err)

			assert.Equal(t, unified, fast)
			assert.Positive(t, unified.Processed)
			assert.Positive(t, fastProc.Metrics().SpecializedDispatches)
			assert.Zero(t, unifiedProc.Metrics().SpecializedDispatches)
		})
	}
}

func TestEvaluate_GameplayJokerUsesCallbacksOutsideScoring(t *testing.T) {
	p := mustProcessor(t, DefaultOptions())
	g := newGameplay("g", 0, 50)

	r, err := p.Evaluate([]joker.Joker{g}, newContext(), BlindStart())
	require.NoError(t, err)
	assert.Zero(t, r.Chips)
	assert.Equal(t, uint64(1), p.Metrics().LegacyDispatches)
}

func TestEvaluate_PriorityOrdering(t *testing.T) {
	jokers := []joker.Joker{
		newGameplay("late", 2, 10),
		newGameplay("early", 1, 20),
	}

	opts := DefaultOptions()
	opts.Policy = PolicyLastWins

	stored := mustProcessor(t, opts)
	r, err := stored.EvaluateHandPlayed(jokers, newContext(), pairHand())
	require.NoError(t, err)
	assert.Equal(t, 20, r.Chips)

	opts.OrderByPriority = true
	sorted := mustProcessor(t, opts)
	r, err = sorted.EvaluateHandPlayed(jokers, newContext(), pairHand())
	require.NoError(t, err)
	assert.Equal(t, 10, r.Chips)
}

func TestEvaluate_Policies(t *testing.T) {
	jokers := []joker.Joker{
		onHand("nothing", effect.None),
		onHand("a", effect.Effect{Chips: 10, Mult: 1, MultMultiplier: 2}),
		onHand("b", effect.Effect{Chips: 30, Mult: 5}),
		onHand("c", effect.Effect{Chips: 20, Mult: 3, MultMultiplier: 0.5}),
	}

	tests := []struct {
		policy Policy
		chips  int
		mult   int
		xmult  float64
	}{
		{PolicySum, 60, 9, 1.0},
		{PolicyMaximum, 30, 5, 2.0},
		{PolicyMinimum, 10, 1, 0.5},
		{PolicyFirstWins, 10, 1, 2.0},
		{PolicyLastWins, 20, 3, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Policy = tt.policy
			p := mustProcessor(t, opts)

			r, err := p.EvaluateHandPlayed(jokers, newContext(), pairHand())
			require.NoError(t, err)
			assert.Equal(t, tt.chips, r.Chips)
			assert.Equal(t, tt.mult, r.Mult)
			assert.InDelta(t, tt.xmult, r.MultMultiplier, 1e-12)
			assert.Equal(t, 3, r.Processed)
		})
	}
}

func TestEvaluate_RetriggerLimit(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxRetriggers = 3
	p := mustProcessor(t, opts)

	r, err := p.EvaluateHandPlayed([]joker.Joker{
		onHand("a", effect.Mult(1).WithRetrigger(2)),
		onHand("b", effect.Mult(1).WithRetrigger(2)),
		onHand("c", effect.Mult(1).WithRetrigger(2)),
	}, newContext(), pairHand())
	require.NoError(t, err)

	// 3 + 2 + 1 repetitions.
	assert.Equal(t, 6, r.Mult)
	assert.Equal(t, 3, r.Retriggers)
	assert.Contains(t, r.Messages, "retrigger limit of 3 reached")
}

func TestEvaluate_HugeRetriggerIsClamped(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxRetriggers = 3
	p := mustProcessor(t, opts)

	r, err := p.EvaluateHandPlayed([]joker.Joker{
		onHand("huge", effect.Mult(1).WithRetrigger(math.MaxUint)),
	}, newContext(), pairHand())
	require.NoError(t, err)

	assert.Equal(t, 4, r.Mult)
	assert.Equal(t, 3, r.Retriggers)
	assert.Contains(t, r.Messages, "retrigger limit of 3 reached")
}

func TestEvaluate_Validation(t *testing.T) {
	opts := DefaultOptions()
	opts.ValidateEffects = true
	p := mustProcessor(t, opts)

	r, err := p.EvaluateHandPlayed([]joker.Joker{
		onHand("negative", effect.XMult(-2)),
		onHand("loop", effect.Mult(1).WithRetrigger(11)),
	}, newContext(), pairHand())
	require.NoError(t, err)

	assert.Contains(t, r.Messages, "negative: mult multiplier -2 cannot be negative")
	assert.Contains(t, r.Messages, "loop: 11 retriggers exceed the maximum of 10")
	assert.Equal(t, 12, r.Mult, "validation reports but does not drop")
}

func TestEvaluate_Diagnostics(t *testing.T) {
	opts := DefaultOptions()
	opts.Diagnostics = true
	p := mustProcessor(t, opts)

	r, err := p.EvaluateHandPlayed([]joker.Joker{
		onHand("joker", effect.Mult(4)),
		onHand("idle", effect.None),
		onHand("talker", effect.Chips(30).WithMessage("Nice!")),
	}, newContext(), pairHand())
	require.NoError(t, err)

	assert.Equal(t, []string{"joker: +4 Mult", "talker: +30 Chips", "Nice!"}, r.Messages)
}

func TestEvaluate_DestroyAndTransform(t *testing.T) {
	p := mustProcessor(t, DefaultOptions())
	ace := card.New(card.Ace, card.Heart)

	r, err := p.Evaluate([]joker.Joker{
		fixedJoker{Base: joker.NewBase("fragile", "Fragile", "", joker.Common, 1), round: effect.Effect{DestroySelf: true}},
		fixedJoker{Base: joker.NewBase("alchemist", "Alchemist", "", joker.Common, 1), round: effect.Effect{
			TransformCards: []card.Card{ace},
			DestroyOthers:  []string{"fragile"},
			Money:          3,
		}},
	}, newContext(), RoundEnd())
	require.NoError(t, err)

	assert.Equal(t, []joker.ID{"fragile"}, r.Destroyed)
	assert.Equal(t, []string{"fragile"}, r.DestroyOthers)
	assert.Equal(t, []card.Card{ace}, r.TransformCards)
	assert.Equal(t, 3, r.Money)
}

func TestEvaluate_PoisonedStore(t *testing.T) {
	p := mustProcessor(t, DefaultOptions())
	ctx := newContext()

	err := ctx.States.UpdateState("broken", func(*state.State) { panic("boom") })
	require.ErrorIs(t, err, state.ErrPoisoned)

	_, err = p.EvaluateHandPlayed([]joker.Joker{onHand("a", effect.Mult(1))}, ctx, pairHand())
	assert.ErrorIs(t, err, state.ErrPoisoned)
}

func TestEvaluate_RequiresStateStore(t *testing.T) {
	p := mustProcessor(t, DefaultOptions())

	_, err := p.EvaluateHandPlayed(nil, nil, pairHand())
	assert.ErrorIs(t, err, ErrNoState)

	_, err = p.EvaluateCardScored(nil, &joker.Context{}, card.New(card.Two, card.Club))
	assert.ErrorIs(t, err, ErrNoState)
}

func TestEvaluate_DiscardFeedsScaling(t *testing.T) {
	p := mustProcessor(t, DefaultOptions())
	ctx := newContext()

	hoarder, err := joker.NewScaling(
		joker.NewBase("hoarder", "Hoarder", "", joker.Common, 5),
		joker.ScalingConfig{
			Trigger:   joker.Condition{Kind: joker.EventCardDiscarded},
			Effect:    joker.ScaleChips,
			Increment: 5,
			Reset:     &joker.Condition{Kind: joker.EventRoundEnd},
		})
	require.NoError(t, err)
	jokers := []joker.Joker{hoarder}

	_, err = p.Evaluate(jokers, ctx, Discard([]card.Card{
		card.New(card.Two, card.Club),
		card.New(card.Three, card.Club),
	}))
	require.NoError(t, err)

	r, err := p.EvaluateHandPlayed(jokers, ctx, pairHand())
	require.NoError(t, err)
	assert.Equal(t, 10, r.Chips)

	_, err = p.EndRound(jokers, ctx)
	require.NoError(t, err)
	r, err = p.EvaluateHandPlayed(jokers, ctx, pairHand())
	require.NoError(t, err)
	assert.Zero(t, r.Chips)
}

func TestDispatch_AdaptedScalingStillAccumulates(t *testing.T) {
	p := mustProcessor(t, DefaultOptions())
	ctx := newContext()

	trousers, err := joker.NewScaling(
		joker.NewBase("adapted_trousers", "Trousers", "", joker.Uncommon, 6),
		joker.ScalingConfig{
			Trigger:     joker.Condition{Kind: joker.EventHandPlayed, Rank: card.OnePair},
			Effect:      joker.ScaleMult,
			Increment:   2,
			PerInstance: true,
		})
	require.NoError(t, err)
	jokers := []joker.Joker{joker.NewAdapter(trousers)}

	r, err := p.EvaluateHandPlayed(jokers, ctx, pairHand())
	require.NoError(t, err)
	assert.Equal(t, 2, r.Mult)

	r, err = p.EvaluateHandPlayed(jokers, ctx, pairHand())
	require.NoError(t, err)
	assert.Equal(t, 4, r.Mult)
}

func TestNewProcessor_RejectsInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Policy = Policy(42)
	_, err := NewProcessor(opts)
	assert.Error(t, err)

	opts = DefaultOptions()
	opts.CardScoring = CardScoring(9)
	_, err = NewProcessor(opts)
	assert.Error(t, err)

	opts = DefaultOptions()
	opts.MaxRetriggers = -1
	_, err = NewProcessor(opts)
	assert.Error(t, err)

	opts = DefaultOptions()
	opts.MaxRetriggers = 0
	p, err := NewProcessor(opts)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxRetriggers, p.Options().MaxRetriggers)
}
