package axis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll_DependencyOrder(t *testing.T) {
	axes := All()
	require.GreaterOrEqual(t, len(axes), 4)

	// The coupled project tuple resolves first.
	assert.Equal(t, Project, axes[0].Name)
	assert.Equal(t, Performance, axes[1].Name)
	assert.Equal(t, DevelopmentPhase, axes[2].Name)
	assert.Equal(t, Market, axes[3].Name)
}

func TestAll_ClosedSets(t *testing.T) {
	for _, a := range All() {
		t.Run(string(a.Name), func(t *testing.T) {
			require.NotEmpty(t, a.Members)

			seen := make(map[string]bool)
			for _, m := range a.Members {
				assert.False(t, seen[m], "duplicate member %q", m)
				seen[m] = true
				assert.True(t, a.Contains(m))
			}
			assert.False(t, a.Contains("no-such-member"))
		})
	}
}

func TestLookup(t *testing.T) {
	a, ok := Lookup(GateIC)
	require.True(t, ok)
	assert.Len(t, a.Members, 8)

	_, ok = Lookup(Name("bogus"))
	assert.False(t, ok)
}

func TestParseMember(t *testing.T) {
	tests := []struct {
		axis    Name
		member  string
		wantErr bool
	}{
		{GateIC, GateICType7, false},
		{PowerModule, PowerModuleCVeGT, false},
		{MotCurrentSensor, CurSensorMot400Hall, false},
		{GateIC, "type9", true},
		{Name("bogus"), "x", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.axis)+"/"+tt.member, func(t *testing.T) {
			got, err := ParseMember(tt.axis, tt.member)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.member, got)
		})
	}
}

func TestIsTupleAxis(t *testing.T) {
	assert.True(t, IsTupleAxis(Project))
	assert.True(t, IsTupleAxis(Market))
	assert.False(t, IsTupleAxis(GateIC))
	assert.Len(t, TupleAxes(), 4)
}

func TestTargets_FixedOrder(t *testing.T) {
	ts := Targets()
	require.Len(t, ts, TargetCount)
	assert.Equal(t, TargetMot, ts[0])
	assert.Equal(t, TargetHsg, ts[1])
	assert.Equal(t, "MOT", TargetMot.String())
	assert.Equal(t, "HSG", TargetHsg.String())
}
