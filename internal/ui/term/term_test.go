package term

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"tomato/internal/core/clock"
	"tomato/internal/core/model"
	"tomato/internal/core/timekeeper"
	"tomato/internal/ui/controls"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newKeeper(t *testing.T) (*timekeeper.TimeKeeper, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(time.Date(2024, 11, 3, 9, 0, 0, 0, time.UTC))
	keeper := timekeeper.New(model.DefaultTimerConfig(), timekeeper.Config{
		Clock:        fake,
		TickInterval: time.Hour,
	})
	t.Cleanup(keeper.Close)
	return keeper, fake
}

func run(t *testing.T, keeper *timekeeper.TimeKeeper, input string) string {
	t.Helper()
	var out bytes.Buffer
	ui := New(strings.NewReader(input), &out, controls.New(keeper))
	require.NoError(t, ui.Run(context.Background()))
	return out.String()
}

func TestRunTogglesAndQuits(t *testing.T) {
	keeper, _ := newKeeper(t)

	out := run(t, keeper, "t\nq\nt\n")

	assert.True(t, keeper.Status().Active)
	assert.Contains(t, out, "[work] 25:00 idle (5 min break)")
	assert.Contains(t, out, "[work] 25:00 running")
}

func TestEmptyLineToggles(t *testing.T) {
	keeper, _ := newKeeper(t)

	run(t, keeper, "\n\n")

	assert.False(t, keeper.Status().Active)
}

func TestCrownUnits(t *testing.T) {
	keeper, fake := newKeeper(t)
	keeper.Start()
	fake.Advance(time.Minute)

	out := run(t, keeper, "-5\n+\n+2\n")

	assert.Equal(t, 1438*time.Second, keeper.Status().Remaining)
	assert.Contains(t, out, "[work] 23:58 running")
}

func TestCrownBeyondFullIsRejected(t *testing.T) {
	keeper, _ := newKeeper(t)
	keeper.Start()

	run(t, keeper, "+\n")

	assert.Equal(t, 1500*time.Second, keeper.Status().Remaining)
}

func TestResetAsksForConfirmation(t *testing.T) {
	keeper, fake := newKeeper(t)
	keeper.Start()
	fake.Advance(time.Minute)

	out := run(t, keeper, "r\nn\n")
	assert.True(t, keeper.Status().Active)
	assert.Contains(t, out, "End Pomodoro? [y/N]")
	assert.NotContains(t, out, "Bye")

	out = run(t, keeper, "r\ny\n")
	status := keeper.Status()
	assert.False(t, status.Active)
	assert.Equal(t, 1500*time.Second, status.Remaining)
	assert.Contains(t, out, "Bye")
}

func TestEditSettings(t *testing.T) {
	keeper, _ := newKeeper(t)

	out := run(t, keeper, "e 50 10\ne 0 10\ne 61 5\ne x\n")

	status := keeper.Status()
	assert.Equal(t, 50*time.Minute, status.FocusDuration)
	assert.Equal(t, 10*time.Minute, status.BreakDuration)
	assert.Contains(t, out, "[work] 50:00 idle (10 min break)")
	assert.Contains(t, out, model.ErrFocusRequired.Error())
	assert.Contains(t, out, model.ErrMinutesOutOfRange.Error())
	assert.Contains(t, out, "usage e FOCUS BREAK")
}

func TestUnknownCommand(t *testing.T) {
	keeper, _ := newKeeper(t)

	out := run(t, keeper, "jump\n+x\n")

	assert.Contains(t, out, `bad command: "jump"`)
	assert.Contains(t, out, `crown units "+x"`)
}

func TestRunStopsWithContext(t *testing.T) {
	keeper, _ := newKeeper(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	ui := New(strings.NewReader("t\n"), &out, controls.New(keeper))

	assert.NoError(t, ui.Run(ctx))
}

func TestWatchPrintsSessionSwitch(t *testing.T) {
	keeper, fake := newKeeper(t)
	events := keeper.Subscribe(8)
	var out bytes.Buffer
	ui := New(strings.NewReader(""), &out, controls.New(keeper))

	keeper.Start()
	fake.Advance(1500 * time.Second)
	keeper.Recompute()
	keeper.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		ui.Watch(events)
	}()
	keeper.Close()
	<-done

	assert.Contains(t, out.String(), "Break Time!\n[break] 05:00 running")
	assert.Contains(t, out.String(), "[break] 05:00 idle (5 min break)")
}

func TestParseCrown(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "+", want: 1},
		{in: "-", want: -1},
		{in: "+12", want: 12},
		{in: "-3", want: -3},
		{in: "+0", wantErr: true},
		{in: "--", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseCrown(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrBadCommand, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
