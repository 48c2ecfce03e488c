package negotiation_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/playperu/arcade/internal/arcade"
	"github.com/playperu/arcade/internal/negotiation"
)

func newEngine(t *testing.T) *negotiation.Engine {
	t.Helper()
	e, err := negotiation.New(negotiation.DefaultParams())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func TestNewRejectsBadParams(t *testing.T) {
	tests := []struct {
		name   string
		params negotiation.Params
	}{
		{"min above start", negotiation.Params{Budget: 100, StartingPrice: 50, MinPrice: 60, StartingTrust: 50}},
		{"negative min", negotiation.Params{Budget: 100, StartingPrice: 50, MinPrice: -1, StartingTrust: 50}},
		{"zero price", negotiation.Params{Budget: 100, StartingPrice: 0, MinPrice: 0, StartingTrust: 50}},
		{"trust above 100", negotiation.Params{Budget: 100, StartingPrice: 50, MinPrice: 10, StartingTrust: 101}},
		{"trust below 0", negotiation.Params{Budget: 100, StartingPrice: 50, MinPrice: 10, StartingTrust: -1}},
		{"negative budget", negotiation.Params{Budget: -5, StartingPrice: 50, MinPrice: 10, StartingTrust: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := negotiation.New(tt.params)
			if !errors.Is(err, arcade.ErrInvalidArgument) {
				t.Fatalf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestMakeOfferScenarios(t *testing.T) {
	tests := []struct {
		name   string
		amount int
		tone   negotiation.Tone
		want   negotiation.OfferResult
	}{
		{
			name:   "lowball fair",
			amount: 4000,
			tone:   negotiation.ToneFair,
			want: negotiation.OfferResult{
				Amount: 4000, Tone: negotiation.ToneFair, TrustDelta: -20,
				Response: "Are you mocking me? This is an insult.", Mood: negotiation.MoodAngry,
				NewPrice: 8450, NewTrust: 30, Turn: 1,
			},
		},
		{
			name:   "asking price polite",
			amount: 8500,
			tone:   negotiation.TonePolite,
			want: negotiation.OfferResult{
				Amount: 8500, Tone: negotiation.TonePolite, TrustDelta: 10,
				Response: "We're talking now. But I need more than that.", Mood: negotiation.MoodInterested,
				NewPrice: 8400, NewTrust: 60, Turn: 1,
			},
		},
		{
			name:   "aggressive firm",
			amount: 6000,
			tone:   negotiation.ToneFirm,
			want: negotiation.OfferResult{
				Amount: 6000, Tone: negotiation.ToneFirm, TrustDelta: -15,
				Response: "That's far too low. I know the value of what I hold.", Mood: negotiation.MoodAnnoyed,
				// 8500 - 2500*35/1500 = 8441.67
				NewPrice: 8442, NewTrust: 35, Turn: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t)
			got, err := e.MakeOffer(tt.amount, tt.tone)
			if err != nil {
				t.Fatalf("make offer: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("offer result mismatch (-want +got):\n%s", diff)
			}
			if e.State().Turn != 2 {
				t.Errorf("turn = %d, want 2", e.State().Turn)
			}
		})
	}
}

func TestOverpayDecaysSameTurn(t *testing.T) {
	p := negotiation.DefaultParams()
	p.Budget = 20000
	e, err := negotiation.New(p)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	// The offer becomes the asking price, then decay runs against it:
	// 12000 - 6000*65/1500 = 11740.
	got, err := e.MakeOffer(12000, negotiation.ToneFair)
	if err != nil {
		t.Fatalf("offer: %v", err)
	}
	want := negotiation.OfferResult{
		Amount: 12000, Tone: negotiation.ToneFair, TrustDelta: 15,
		Response: "A generous offer! I like your style.", Mood: negotiation.MoodHappy,
		NewPrice: 11740, NewTrust: 65, Turn: 1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("offer result mismatch (-want +got):\n%s", diff)
	}
}

func TestDecayRoundsHalfUp(t *testing.T) {
	tests := []struct {
		name      string
		price     int
		trust     int // before the +5 of an interested fair offer
		wantPrice int
	}{
		// 750*51/1500 = 25.5 off, a tie: rounds away from the floor price.
		{"tie", 6750, 46, 6725},
		// 1000*52/1500 = 34.67 off.
		{"above half", 7000, 47, 6965},
		// 1000*53/1500 = 35.33 off.
		{"below half", 7000, 48, 6965},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := negotiation.New(negotiation.Params{
				Budget: 10000, StartingPrice: tt.price, MinPrice: 6000, StartingTrust: tt.trust,
			})
			if err != nil {
				t.Fatalf("new: %v", err)
			}

			got, err := e.MakeOffer(tt.price, negotiation.ToneFair)
			if err != nil {
				t.Fatalf("offer: %v", err)
			}
			if got.Mood != negotiation.MoodInterested || got.NewTrust != tt.trust+5 {
				t.Fatalf("mood=%s trust=%d, want interested/%d", got.Mood, got.NewTrust, tt.trust+5)
			}
			if got.NewPrice != tt.wantPrice {
				t.Errorf("price = %d, want %d", got.NewPrice, tt.wantPrice)
			}
		})
	}
}

func TestRatioBoundaries(t *testing.T) {
	// Asking price 8500: 0.5 → 4250, 0.8 → 6800, 1.2 → 10200.
	p := negotiation.Params{Budget: 20000, StartingPrice: 8500, MinPrice: 6000, StartingTrust: 50}
	tests := []struct {
		amount int
		want   negotiation.Mood
	}{
		{4249, negotiation.MoodAngry},
		{4250, negotiation.MoodAnnoyed},
		{6799, negotiation.MoodAnnoyed},
		{6800, negotiation.MoodInterested},
		{10200, negotiation.MoodInterested},
		{10201, negotiation.MoodHappy},
	}

	for _, tt := range tests {
		e, err := negotiation.New(p)
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		got, err := e.MakeOffer(tt.amount, negotiation.ToneFair)
		if err != nil {
			t.Fatalf("offer %d: %v", tt.amount, err)
		}
		if got.Mood != tt.want {
			t.Errorf("offer %d: mood = %s, want %s", tt.amount, got.Mood, tt.want)
		}
	}
}

func TestPatienceOverride(t *testing.T) {
	p := negotiation.DefaultParams()
	p.StartingTrust = 20
	e, err := negotiation.New(p)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	// Interested tier, but firm tone leaves trust at 20 - 5 + 5 = 20: no override.
	got, _ := e.MakeOffer(8500, negotiation.ToneFirm)
	if got.Mood != negotiation.MoodInterested {
		t.Fatalf("mood = %s, want interested", got.Mood)
	}

	// Annoyed tier drops trust to 10: override to angry with the warning.
	got, _ = e.MakeOffer(6000, negotiation.ToneFair)
	if got.Mood != negotiation.MoodAngry {
		t.Errorf("mood = %s, want angry", got.Mood)
	}
	if got.Response != "I'm losing my patience. One more move like that and the deal is off." {
		t.Errorf("response = %q", got.Response)
	}
}

func TestCollapse(t *testing.T) {
	e := newEngine(t)

	first, err := e.MakeOffer(1000, negotiation.ToneFirm)
	if err != nil {
		t.Fatalf("first offer: %v", err)
	}
	if first.Collapsed || first.NewTrust != 25 {
		t.Fatalf("first offer = %+v, want trust 25 and no collapse", first)
	}

	second, err := e.MakeOffer(1000, negotiation.ToneFirm)
	if err != nil {
		t.Fatalf("second offer: %v", err)
	}
	if !second.Collapsed || second.NewTrust != 0 {
		t.Fatalf("second offer = %+v, want collapse at trust 0", second)
	}

	st := e.State()
	if !st.GameOver || st.Outcome != negotiation.OutcomeCollapsed {
		t.Errorf("state = %+v, want collapsed game over", st)
	}
	if st.Turn != 2 {
		t.Errorf("turn = %d, want 2 (collapsed offer does not advance)", st.Turn)
	}

	if _, err := e.MakeOffer(8000, negotiation.TonePolite); !errors.Is(err, arcade.ErrInvalidState) {
		t.Errorf("offer after collapse: err = %v, want ErrInvalidState", err)
	}
	if _, err := e.Accept(); !errors.Is(err, arcade.ErrInvalidState) {
		t.Errorf("accept after collapse: err = %v, want ErrInvalidState", err)
	}
	if err := e.WalkAway(); !errors.Is(err, arcade.ErrInvalidState) {
		t.Errorf("walk away after collapse: err = %v, want ErrInvalidState", err)
	}
}

func TestAccept(t *testing.T) {
	e := newEngine(t)
	if _, err := e.MakeOffer(8500, negotiation.TonePolite); err != nil {
		t.Fatalf("offer: %v", err)
	}
	price := e.State().CurrentPrice

	deal, err := e.Accept()
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if deal.FinalPrice != price || deal.FinalPrice != 8400 {
		t.Errorf("final price = %d, want %d", deal.FinalPrice, price)
	}
	if deal.RemainingBudget != 1600 {
		t.Errorf("remaining budget = %d, want 1600", deal.RemainingBudget)
	}
	if !e.GameOver() {
		t.Error("expected game over after accept")
	}
	title, _ := e.EndScreen()
	if title != "Deal Successful" {
		t.Errorf("end title = %q", title)
	}
	if _, err := e.Accept(); !errors.Is(err, arcade.ErrInvalidState) {
		t.Errorf("second accept: err = %v, want ErrInvalidState", err)
	}
}

func TestWalkAway(t *testing.T) {
	e := newEngine(t)
	if err := e.WalkAway(); err != nil {
		t.Fatalf("walk away: %v", err)
	}
	if e.State().Outcome != negotiation.OutcomeWithdrawn {
		t.Errorf("outcome = %s, want withdrawn", e.State().Outcome)
	}
	if _, err := e.MakeOffer(7000, negotiation.ToneFair); !errors.Is(err, arcade.ErrInvalidState) {
		t.Errorf("offer after walk away: err = %v, want ErrInvalidState", err)
	}
}

func TestMakeOfferRejectsBadInput(t *testing.T) {
	e := newEngine(t)
	for _, amount := range []int{-1, 10001} {
		if _, err := e.MakeOffer(amount, negotiation.ToneFair); !errors.Is(err, arcade.ErrInvalidArgument) {
			t.Errorf("amount %d: err = %v, want ErrInvalidArgument", amount, err)
		}
	}
	if _, err := e.MakeOffer(7000, negotiation.Tone("rude")); !errors.Is(err, arcade.ErrInvalidArgument) {
		t.Errorf("bad tone: err = %v, want ErrInvalidArgument", err)
	}
	if e.State().Turn != 1 || len(e.History()) != 0 {
		t.Error("rejected offers must not change state")
	}
}

func TestInvariantsUnderRandomPlay(t *testing.T) {
	tones := []negotiation.Tone{negotiation.TonePolite, negotiation.ToneFair, negotiation.ToneFirm}
	for seed := range 200 {
		e := newEngine(t)
		prev := e.State().CurrentPrice
		for step := 0; !e.GameOver() && step < 40; step++ {
			amount := (seed*7919 + step*104729) % 10001
			res, err := e.MakeOffer(amount, tones[(seed+step)%3])
			if err != nil {
				t.Fatalf("seed %d step %d: %v", seed, step, err)
			}
			if res.NewTrust < 0 || res.NewTrust > 100 {
				t.Fatalf("seed %d step %d: trust %d out of range", seed, step, res.NewTrust)
			}
			if res.NewPrice < 6000 {
				t.Fatalf("seed %d step %d: price %d below floor", seed, step, res.NewPrice)
			}
			overpay := 5*amount > 6*prev
			if !overpay && res.NewPrice > prev {
				t.Fatalf("seed %d step %d: price rose from %d to %d without overpay", seed, step, prev, res.NewPrice)
			}
			prev = res.NewPrice
		}
	}
}

func TestParseTone(t *testing.T) {
	tests := []struct {
		in      string
		want    negotiation.Tone
		wantErr bool
	}{
		{"polite", negotiation.TonePolite, false},
		{" FIRM ", negotiation.ToneFirm, false},
		{"", negotiation.ToneFair, false},
		{"smug", "", true},
	}
	for _, tt := range tests {
		got, err := negotiation.ParseTone(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTone(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseTone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMoodLabels(t *testing.T) {
	if got := negotiation.MoodHappy.Label(); got != "Great" {
		t.Errorf("happy label = %q, want Great", got)
	}
	if got := negotiation.MoodNeutral.Label(); got != "Neutral" {
		t.Errorf("neutral label = %q, want Neutral", got)
	}
}
