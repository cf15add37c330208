package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/offshore/core/events"
	"github.com/kilianp07/offshore/internal/eventbus"
)

func TestSnapshotIsDetached(t *testing.T) {
	p := newPlatform(t, Config{Start: "10:00"})
	require.True(t, p.DockShip(30))
	p.StepN(4)

	st := p.Snapshot()
	assert.Equal(t, p.RunID(), st.RunID)
	assert.Equal(t, p.Clock(), st.Clock)
	assert.Equal(t, p.Cranes(), st.Cranes)

	st.Cranes.Cranes[0].Progress = 99
	st.Config.CranesTiming.Windows[0].From = 0
	assert.NotEqual(t, 99, p.Cranes().Cranes[0].Progress)
	assert.Equal(t, 6, p.Config().CranesTiming.Windows[0].From)
}

func TestRestoreContinuesIdentically(t *testing.T) {
	p := newPlatform(t, Config{Start: "13:58"})
	p.SetActiveMaxCranes(4)
	require.True(t, p.DockShip(500))
	p.StepN(37)

	r, err := Restore(p.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, p.RunID(), r.RunID())
	for i := 0; i < 400; i++ {
		a, b := p.Tick(), r.Tick()
		require.Equal(t, a, b, "tick %d", i)
	}
	assert.InDelta(t, p.TotalCost(), r.TotalCost(), 1e-9)
	assert.Equal(t, p.Snapshot(), r.Snapshot())
}

func TestForecastLeavesPlatformUntouched(t *testing.T) {
	bus := eventbus.New[events.Event]()
	sub := bus.Subscribe()
	sink := &captureSink{}
	p := newPlatform(t, Config{Start: "10:00"}, WithEventBus(bus), WithSink(sink))
	require.True(t, p.DockShip(20))
	drain(sub)

	before := p.Snapshot()
	cost, err := p.Forecast(300)
	require.NoError(t, err)
	assert.Equal(t, before, p.Snapshot())
	assert.Empty(t, sink.samples)
	assert.Empty(t, drain(sub))

	actual := p.StepN(300)
	assert.InDelta(t, actual, cost, 1e-9)
}
